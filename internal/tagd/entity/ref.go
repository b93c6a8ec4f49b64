package entity

import (
	"fmt"
	"strings"
)

// Ref 不透明的实体引用（实体类型 + 实例 ID）
// 任何可以被打标签的对象都通过 Ref 标识，不依赖固定的外键
type Ref struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// String 返回 "type:id" 形式的字符串表示
func (r Ref) String() string {
	return r.Type + ":" + r.ID
}

// IsZero 判断引用是否为空
func (r Ref) IsZero() bool {
	return r.Type == "" && r.ID == ""
}

// Less 提供确定性的引用排序（先按类型，再按 ID）
func (r Ref) Less(other Ref) bool {
	if r.Type != other.Type {
		return r.Type < other.Type
	}
	return r.ID < other.ID
}

// ParseRef 解析 "type:id" 形式的实体引用
func ParseRef(s string) (Ref, error) {
	idx := strings.Index(s, ":")
	if idx <= 0 || idx == len(s)-1 {
		return Ref{}, fmt.Errorf("invalid entity reference %q, expected \"type:id\"", s)
	}
	return Ref{Type: s[:idx], ID: s[idx+1:]}, nil
}

// Taggable 可以被打标签的实体
// 实体类型只需要能提供自己的 Ref，不需要继承任何基类
type Taggable interface {
	EntityRef() Ref
}
