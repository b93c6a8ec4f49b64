package model

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Tag 标签表（通用设计，支持任意实体类型）
// 每行是一条 (词干, 实体, 作者, 语言, 官方标志) 关联
type Tag struct {
	ID         string         `gorm:"primaryKey;type:text;column:id" json:"id"`                                            // tag-{sonyflake}
	Name       string         `gorm:"type:text;not null;column:name" json:"name"`                                          // 原始标签名，和 stem.name 冗余（名称/语言可能在词干解析前被编辑）
	Language   int            `gorm:"type:integer;not null;column:language" json:"language"`                               // 语言编码（见 pkg/lang）
	StemID     string         `gorm:"type:text;index:idx_tags_stem_id;column:stem_id" json:"stemID"`                       // 关联 stems.id，保存前可以为空
	AuthorID   string         `gorm:"type:text;not null;index:idx_tags_author_id;column:author_id" json:"authorID"`        // 关联 authors.id
	Official   bool           `gorm:"type:integer;not null;default:false;column:official" json:"official"`                 // staff 作者打的标签自动为官方标签
	EntityType string         `gorm:"type:text;not null;index:idx_tags_entity;column:entity_type" json:"entityType"`       // 实体类型名
	EntityID   string         `gorm:"type:text;not null;index:idx_tags_entity;column:entity_id" json:"entityID"`           // 实体实例 ID
	CreatedAt  time.Time      `gorm:"type:datetime;not null;column:created_at" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"type:datetime;not null;column:updated_at" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"type:datetime;index:idx_tags_deleted_at;column:deleted_at" json:"deleted_at,omitempty"` // 软删除
}

// TableName 指定表名
func (Tag) TableName() string {
	return "tags"
}

// AfterDelete 在标签删除时减少词干引用计数
//
// 挂在 GORM 删除钩子上而不是只放在显式的 untag 路径里，
// 这样任何经过 ORM 的删除（包括批量清理逐行删除）都不会让计数泄漏。
// 钩子和删除语句共享同一个事务，计数调整和标签删除是一个原子单元。
func (t *Tag) AfterDelete(tx *gorm.DB) error {
	if t.StemID == "" {
		return nil
	}
	return DecStemCount(tx, t.StemID)
}

// DecStemCount 减少词干引用计数
// 计数大于 1 时减一；降到 0 时直接删除词干行（引用计数为 0 的词干不存在）。
// 词干不存在时是无操作（可能已被并发的减计数删除）。
func DecStemCount(tx *gorm.DB, stemID string) error {
	var stem Stem
	if err := tx.Where("id = ?", stemID).First(&stem).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if stem.TagCount > 1 {
		return tx.Model(&Stem{}).
			Where("id = ?", stemID).
			UpdateColumn("tag_count", gorm.Expr("tag_count - 1")).Error
	}
	return tx.Delete(&stem).Error
}

// IncStemCount 增加词干引用计数
func IncStemCount(tx *gorm.DB, stemID string) error {
	return tx.Model(&Stem{}).
		Where("id = ?", stemID).
		UpdateColumn("tag_count", gorm.Expr("tag_count + 1")).Error
}
