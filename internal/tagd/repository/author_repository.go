package repository

import (
	"context"

	"github.com/jimyag/tagd/internal/tagd/repository/model"
	"gorm.io/gorm"
)

// AuthorRepository 作者仓库接口
type AuthorRepository interface {
	Create(ctx context.Context, author *model.Author) error
	GetByID(ctx context.Context, authorID string) (*model.Author, error)
	GetByIDs(ctx context.Context, authorIDs []string) ([]*model.Author, error)
	List(ctx context.Context) ([]*model.Author, error)
	Delete(ctx context.Context, authorID string) error
}

type authorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository 创建作者仓库
func NewAuthorRepository(db *gorm.DB) AuthorRepository {
	return &authorRepository{db: db}
}

// Create 创建作者
func (r *authorRepository) Create(ctx context.Context, author *model.Author) error {
	return r.db.WithContext(ctx).Create(author).Error
}

// GetByID 按 ID 获取作者
func (r *authorRepository) GetByID(ctx context.Context, authorID string) (*model.Author, error) {
	var author model.Author
	if err := r.db.WithContext(ctx).
		Where("id = ?", authorID).
		First(&author).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

// GetByIDs 批量获取作者
func (r *authorRepository) GetByIDs(ctx context.Context, authorIDs []string) ([]*model.Author, error) {
	var authors []*model.Author
	if err := r.db.WithContext(ctx).
		Where("id IN ?", authorIDs).
		Find(&authors).Error; err != nil {
		return nil, err
	}
	return authors, nil
}

// List 返回所有作者
func (r *authorRepository) List(ctx context.Context) ([]*model.Author, error) {
	var authors []*model.Author
	if err := r.db.WithContext(ctx).
		Order("created_at").
		Find(&authors).Error; err != nil {
		return nil, err
	}
	return authors, nil
}

// Delete 软删除作者
func (r *authorRepository) Delete(ctx context.Context, authorID string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", authorID).
		Delete(&model.Author{}).Error
}
