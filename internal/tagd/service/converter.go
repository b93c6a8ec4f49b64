// Package service 提供业务逻辑层的服务实现
package service

import (
	"time"

	"github.com/jimyag/tagd/internal/tagd/entity"
	"github.com/jimyag/tagd/internal/tagd/repository/model"
	"github.com/jimyag/tagd/pkg/lang"
	"github.com/jinzhu/copier"
)

// tagModelToEntity 将 model.Tag 转换为 entity.Tag
func tagModelToEntity(m *model.Tag) (*entity.Tag, error) {
	e := &entity.Tag{}
	if err := copier.Copy(e, m); err != nil {
		return nil, err
	}

	e.Entity = entity.Ref{Type: m.EntityType, ID: m.EntityID}
	if choice, err := lang.FromCode(m.Language); err == nil {
		e.LanguageName = choice.Name
	}

	// 处理时间字段
	e.CreatedAt = m.CreatedAt.Format(time.RFC3339)
	e.UpdatedAt = m.UpdatedAt.Format(time.RFC3339)

	return e, nil
}

// stemModelToEntity 将 model.Stem 转换为 entity.Stem
func stemModelToEntity(m *model.Stem) (*entity.Stem, error) {
	e := &entity.Stem{}
	if err := copier.Copy(e, m); err != nil {
		return nil, err
	}

	if choice, err := lang.FromCode(m.Language); err == nil {
		e.LanguageName = choice.Name
	}

	return e, nil
}

// authorModelToEntity 将 model.Author 转换为 entity.Author
func authorModelToEntity(m *model.Author) (*entity.Author, error) {
	e := &entity.Author{}
	if err := copier.Copy(e, m); err != nil {
		return nil, err
	}

	// 处理时间字段
	e.CreatedAt = m.CreatedAt.Format(time.RFC3339)

	return e, nil
}
