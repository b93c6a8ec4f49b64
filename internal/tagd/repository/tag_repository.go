package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jimyag/tagd/internal/tagd/repository/model"
	"gorm.io/gorm"
)

// TagFilter 标签查询的可选过滤条件，零值字段不参与过滤
type TagFilter struct {
	Names        []string
	Language     *int
	AuthorID     string
	OfficialOnly bool
	EntityType   string
}

// TagRepository 标签仓库接口
//
// 所有写操作都在单个事务内同时调整标签行和词干计数，
// 保证 stem.tag_count 始终等于引用它的存活标签行数
type TagRepository interface {
	// Create 创建标签：解析词干、计数加一、插入标签行
	// 同一 (实体, 名称, 语言, 作者) 的标签已存在时返回已有标签，不重复计数
	Create(ctx context.Context, tag *model.Tag) error
	// Update 保存标签：名称或语言变了时重新解析词干并迁移计数
	Update(ctx context.Context, tag *model.Tag) error
	// Delete 删除标签，词干计数经由删除钩子减一
	Delete(ctx context.Context, tag *model.Tag) error
	// FindOne 查找 (实体, 名称, 语言, 作者) 唯一对应的标签
	FindOne(ctx context.Context, entityType, entityID, name string, language int, authorID string) (*model.Tag, error)
	// GetByID 按 ID 查找标签
	GetByID(ctx context.Context, id string) (*model.Tag, error)
	// GetByEntity 返回实体的所有标签
	GetByEntity(ctx context.Context, entityType, entityID string) ([]*model.Tag, error)
	// DeleteByEntity 删除实体上匹配过滤条件的所有标签，返回删除数量
	DeleteByEntity(ctx context.Context, entityType, entityID string, filter TagFilter) (int64, error)
	// Scan 按过滤条件批量读取标签（相似度计算的批量读路径）
	Scan(ctx context.Context, filter TagFilter) ([]*model.Tag, error)
	// StemsByEntity 返回实体上去重后的词干
	StemsByEntity(ctx context.Context, entityType, entityID string, filter TagFilter) ([]*model.Stem, error)
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository 创建标签仓库
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// Create 创建标签
func (r *tagRepository) Create(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 重复打同一个标签是幂等的：返回已有行，不再计数
		var existing model.Tag
		err := tx.Where(
			"entity_type = ? AND entity_id = ? AND name = ? AND language = ? AND author_id = ?",
			tag.EntityType, tag.EntityID, tag.Name, tag.Language, tag.AuthorID,
		).First(&existing).Error
		if err == nil {
			*tag = existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		stem, err := resolveStem(tx, tag.Name, tag.Language)
		if err != nil {
			return err
		}
		tag.StemID = stem.ID
		now := time.Now()
		if tag.CreatedAt.IsZero() {
			tag.CreatedAt = now
		}
		tag.UpdatedAt = now
		if err := tx.Create(tag).Error; err != nil {
			return err
		}
		return model.IncStemCount(tx, stem.ID)
	})
}

// Update 保存标签，名称或语言变化时迁移词干计数
func (r *tagRepository) Update(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stem, err := resolveStem(tx, tag.Name, tag.Language)
		if err != nil {
			return err
		}
		if stem.ID != tag.StemID {
			// 之前没有词干，或者 name/language 变了
			if tag.StemID != "" {
				if err := model.DecStemCount(tx, tag.StemID); err != nil {
					return err
				}
			}
			tag.StemID = stem.ID
			if err := model.IncStemCount(tx, stem.ID); err != nil {
				return err
			}
		}
		tag.UpdatedAt = time.Now()
		return tx.Save(tag).Error
	})
}

// Delete 删除标签（软删除），词干计数在 Tag.AfterDelete 钩子里减一
func (r *tagRepository) Delete(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Delete(tag).Error
}

// FindOne 查找 (实体, 名称, 语言, 作者) 唯一对应的标签
func (r *tagRepository) FindOne(ctx context.Context, entityType, entityID, name string, language int, authorID string) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ? AND name = ? AND language = ? AND author_id = ?",
			entityType, entityID, name, language, authorID).
		First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetByID 按 ID 查找标签
func (r *tagRepository) GetByID(ctx context.Context, id string) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetByEntity 返回实体的所有标签
func (r *tagRepository) GetByEntity(ctx context.Context, entityType, entityID string) ([]*model.Tag, error) {
	var tags []*model.Tag
	if err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at").
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// DeleteByEntity 删除实体上匹配过滤条件的所有标签
//
// 逐行删除而不是批量 DELETE：GORM 的批量删除不会触发钩子，
// 而词干计数的维护依赖 Tag.AfterDelete
func (r *tagRepository) DeleteByEntity(ctx context.Context, entityType, entityID string, filter TagFilter) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Where("entity_type = ? AND entity_id = ?", entityType, entityID)
		query = applyTagFilter(query, filter)

		var tags []*model.Tag
		if err := query.Find(&tags).Error; err != nil {
			return err
		}
		for _, tag := range tags {
			if err := tx.Delete(tag).Error; err != nil {
				return err
			}
			deleted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// Scan 按过滤条件批量读取标签
func (r *tagRepository) Scan(ctx context.Context, filter TagFilter) ([]*model.Tag, error) {
	query := r.db.WithContext(ctx).Model(&model.Tag{})
	query = applyTagFilter(query, filter)
	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", filter.EntityType)
	}

	var tags []*model.Tag
	if err := query.Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// StemsByEntity 返回实体上去重后的词干
func (r *tagRepository) StemsByEntity(ctx context.Context, entityType, entityID string, filter TagFilter) ([]*model.Stem, error) {
	query := r.db.WithContext(ctx).Model(&model.Tag{}).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID)
	query = applyTagFilter(query, filter)

	var stemIDs []string
	if err := query.Distinct("stem_id").Pluck("stem_id", &stemIDs).Error; err != nil {
		return nil, err
	}
	if len(stemIDs) == 0 {
		return nil, nil
	}

	var stems []*model.Stem
	if err := r.db.WithContext(ctx).
		Where("id IN ?", stemIDs).
		Order("name, language").
		Find(&stems).Error; err != nil {
		return nil, err
	}
	return stems, nil
}

// applyTagFilter 应用可选过滤条件（EntityType 由调用方单独处理）
func applyTagFilter(query *gorm.DB, filter TagFilter) *gorm.DB {
	if len(filter.Names) > 0 {
		query = query.Where("name IN ?", filter.Names)
	}
	if filter.Language != nil {
		query = query.Where("language = ?", *filter.Language)
	}
	if filter.AuthorID != "" {
		query = query.Where("author_id = ?", filter.AuthorID)
	}
	if filter.OfficialOnly {
		query = query.Where("official = ?", true)
	}
	return query
}
