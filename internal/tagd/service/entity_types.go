package service

import (
	"fmt"
	"sort"
	"sync"

	"github.com/jimyag/tagd/internal/tagd/entity"
	"github.com/jimyag/tagd/pkg/apierror"
)

// EntityTypes 可打标签实体类型的注册表
//
// 实体记录本身存在外部系统里，这里只登记类型名，
// 用来在解析实体引用时拒绝未知类型
type EntityTypes struct {
	mu    sync.RWMutex
	types map[string]struct{}
}

// NewEntityTypes 创建实体类型注册表
func NewEntityTypes(names ...string) *EntityTypes {
	t := &EntityTypes{types: make(map[string]struct{}, len(names))}
	for _, name := range names {
		t.types[name] = struct{}{}
	}
	return t
}

// Register 登记一个实体类型
func (t *EntityTypes) Register(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.types[name] = struct{}{}
}

// Known 判断实体类型是否已登记
func (t *EntityTypes) Known(name string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.types[name]
	return ok
}

// Names 返回所有已登记的类型名，按字典序
func (t *EntityTypes) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	names := make([]string, 0, len(t.types))
	for name := range t.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve 把任意形式的实体引用值解析为 entity.Ref
//
// 接受 entity.Ref、*entity.Ref、"type:id" 字符串或实现了 entity.Taggable 的值。
// 类型未登记或缺少实例 ID 时返回 EntityResolutionFailed。
func (t *EntityTypes) Resolve(v any) (entity.Ref, error) {
	var ref entity.Ref
	switch rv := v.(type) {
	case entity.Ref:
		ref = rv
	case *entity.Ref:
		if rv == nil {
			return entity.Ref{}, apierror.WrapError(apierror.ErrEntityResolutionFailed,
				"nil entity reference", nil)
		}
		ref = *rv
	case entity.Taggable:
		ref = rv.EntityRef()
	case string:
		parsed, err := entity.ParseRef(rv)
		if err != nil {
			return entity.Ref{}, apierror.WrapError(apierror.ErrEntityResolutionFailed,
				err.Error(), err)
		}
		ref = parsed
	default:
		return entity.Ref{}, apierror.WrapError(apierror.ErrEntityResolutionFailed,
			fmt.Sprintf("unsupported entity reference type %T", v), nil)
	}

	if ref.ID == "" {
		return entity.Ref{}, apierror.WrapError(apierror.ErrEntityResolutionFailed,
			fmt.Sprintf("entity reference %q has no instance ID", ref.Type), nil)
	}
	if !t.Known(ref.Type) {
		return entity.Ref{}, apierror.WrapError(apierror.ErrEntityResolutionFailed,
			fmt.Sprintf("unknown entity type %q", ref.Type), nil)
	}
	return ref, nil
}
