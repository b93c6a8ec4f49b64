package model

import (
	"time"

	"gorm.io/gorm"
)

// Author 作者表
// Staff 为 true 的作者打出的标签在保存时自动标记为官方标签
type Author struct {
	ID        string         `gorm:"primaryKey;type:text;column:id" json:"id"`                   // author-{sonyflake}
	Name      string         `gorm:"type:text;not null;column:name" json:"name"`                 // 作者名称
	Staff     bool           `gorm:"type:integer;not null;default:false;column:staff" json:"staff"` // 是否为特权（staff）身份
	CreatedAt time.Time      `gorm:"type:datetime;not null;column:created_at" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"type:datetime;index:idx_authors_deleted_at;column:deleted_at" json:"deleted_at,omitempty"` // 软删除
}

// TableName 指定表名
func (Author) TableName() string {
	return "authors"
}
