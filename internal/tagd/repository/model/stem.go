package model

import (
	"time"

	"gorm.io/gorm"
)

// Stem 词干表：一个规范的 (名称, 语言) 组合，携带存活标签的引用计数
// (name, language) 的唯一约束在 repository.createIndexes 中创建
// （部分索引，只约束未软删除的行）
type Stem struct {
	ID        string         `gorm:"primaryKey;type:text;column:id" json:"id"`                 // stem-{sonyflake}
	Name      string         `gorm:"type:text;not null;column:name" json:"name"`               // 规范标签名
	Language  int            `gorm:"type:integer;not null;column:language" json:"language"`    // 语言编码（见 pkg/lang）
	TagCount  uint           `gorm:"type:integer;not null;default:0;column:tag_count" json:"tagCount"` // 存活标签数，等于引用该词干的 Tag 行数
	CreatedAt time.Time      `gorm:"type:datetime;not null;column:created_at" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"type:datetime;index:idx_stems_deleted_at;column:deleted_at" json:"deleted_at,omitempty"` // 软删除
}

// TableName 指定表名
func (Stem) TableName() string {
	return "stems"
}
