package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jimyag/tagd/internal/tagd/repository/model"
	"github.com/jimyag/tagd/pkg/idgen"
	"gorm.io/gorm"
)

// StemRepository 词干仓库接口
type StemRepository interface {
	// Resolve 返回 (name, language) 对应的词干，不存在时创建一个计数为 0 的
	Resolve(ctx context.Context, name string, language int) (*model.Stem, error)
	// Increment 词干引用计数加一
	Increment(ctx context.Context, stemID string) error
	// Decrement 词干引用计数减一，降到 0 时删除词干
	Decrement(ctx context.Context, stemID string) error
	GetByID(ctx context.Context, stemID string) (*model.Stem, error)
	GetByKey(ctx context.Context, name string, language int) (*model.Stem, error)
	List(ctx context.Context) ([]*model.Stem, error)
}

type stemRepository struct {
	db *gorm.DB
}

// NewStemRepository 创建词干仓库
func NewStemRepository(db *gorm.DB) StemRepository {
	return &stemRepository{db: db}
}

// Resolve 获取或创建 (name, language) 对应的词干
func (r *stemRepository) Resolve(ctx context.Context, name string, language int) (*model.Stem, error) {
	var stem *model.Stem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		stem, txErr = resolveStem(tx, name, language)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return stem, nil
}

// Increment 词干引用计数加一
func (r *stemRepository) Increment(ctx context.Context, stemID string) error {
	return model.IncStemCount(r.db.WithContext(ctx), stemID)
}

// Decrement 词干引用计数减一，降到 0 时删除词干
func (r *stemRepository) Decrement(ctx context.Context, stemID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return model.DecStemCount(tx, stemID)
	})
}

// GetByID 按 ID 获取词干
func (r *stemRepository) GetByID(ctx context.Context, stemID string) (*model.Stem, error) {
	var stem model.Stem
	if err := r.db.WithContext(ctx).
		Where("id = ?", stemID).
		First(&stem).Error; err != nil {
		return nil, err
	}
	return &stem, nil
}

// GetByKey 按 (name, language) 获取词干
func (r *stemRepository) GetByKey(ctx context.Context, name string, language int) (*model.Stem, error) {
	var stem model.Stem
	if err := r.db.WithContext(ctx).
		Where("name = ? AND language = ?", name, language).
		First(&stem).Error; err != nil {
		return nil, err
	}
	return &stem, nil
}

// List 返回所有词干
func (r *stemRepository) List(ctx context.Context) ([]*model.Stem, error) {
	var stems []*model.Stem
	if err := r.db.WithContext(ctx).
		Order("name, language").
		Find(&stems).Error; err != nil {
		return nil, err
	}
	return stems, nil
}

// resolveStem 在事务中获取或创建词干
//
// 并发为同一个未知的 (name, language) 调用时，由 stems 表的唯一索引保证
// 最多只创建一个词干：插入撞上唯一约束说明别人已经创建了，重新读取即可。
func resolveStem(tx *gorm.DB, name string, language int) (*model.Stem, error) {
	var stem model.Stem
	err := tx.Where("name = ? AND language = ?", name, language).First(&stem).Error
	if err == nil {
		return &stem, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	stemID, err := idgen.GenerateStemID()
	if err != nil {
		return nil, err
	}
	stem = model.Stem{
		ID:        stemID,
		Name:      name,
		Language:  language,
		TagCount:  0,
		CreatedAt: time.Now(),
	}
	err = tx.Create(&stem).Error
	if err == nil {
		return &stem, nil
	}
	if isUniqueViolation(err) {
		// 并发创建，重新读取对方创建的词干
		if refetchErr := tx.Where("name = ? AND language = ?", name, language).
			First(&stem).Error; refetchErr == nil {
			return &stem, nil
		}
	}
	return nil, err
}

// isUniqueViolation 判断错误是否为唯一约束冲突
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
