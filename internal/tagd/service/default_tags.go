package service

import (
	"context"

	"github.com/jimyag/tagd/pkg/apierror"
	"github.com/jimyag/tagd/pkg/tagparse"
	"github.com/rs/zerolog"
)

// SyncConfig 默认标签同步的固定身份：
// 外部记录上维护的标签文本统一归属到这个作者和语言之下
type SyncConfig struct {
	Author   any
	Language any
}

// DefaultTagsSyncer 把外部记录上的标签文本字段同步为标签行
//
// 典型用法是实体自带一个逗号分隔的标签字段，保存记录时调用 Save，
// 文本会被解析成标签并以配置的作者、语言落库。
// 同步假定 (作者, 语言) 组合归它独占：Save 会先清掉该组合下的旧标签，
// 其他作者或语言的标签不受影响。
type DefaultTagsSyncer struct {
	tags *TagService
	cfg  SyncConfig
}

// NewDefaultTagsSyncer 创建默认标签同步器
func NewDefaultTagsSyncer(tags *TagService, cfg SyncConfig) *DefaultTagsSyncer {
	return &DefaultTagsSyncer{tags: tags, cfg: cfg}
}

// Normalize 把标签文本解析后再序列化回规范形式
// 去掉重复项和多余空白，含逗号或引号的名称加引号
func (s *DefaultTagsSyncer) Normalize(text string) string {
	return tagparse.Join(tagparse.Parse(text))
}

// Save 保存一条带标签文本的外部记录并同步其标签
//
// tagText 为 nil 表示记录没有标签字段，只执行 persist。
// isNew 为 false（更新已有记录）时先清掉同 (作者, 语言) 的旧标签，
// 再按新文本打标签，最后 persist；isNew 为 true（新建记录）时
// 先 persist 再打标签，避免给尚不存在的记录留下孤儿标签。
func (s *DefaultTagsSyncer) Save(ctx context.Context, ref any, tagText *string, isNew bool, persist func(context.Context) error) error {
	logger := zerolog.Ctx(ctx)

	if err := s.checkConfig(); err != nil {
		return err
	}
	if tagText == nil {
		return persist(ctx)
	}

	normalized := s.Normalize(*tagText)
	*tagText = normalized

	if isNew {
		if err := persist(ctx); err != nil {
			return err
		}
		if normalized != "" {
			if _, err := s.tags.Tag(ctx, ref, normalized, s.cfg.Language, s.cfg.Author); err != nil {
				return err
			}
		}
		logger.Debug().Str("tags", normalized).Msg("Default tags created")
		return nil
	}

	deleted, err := s.tags.UntagAll(ctx, ref, UntagAllOptions{
		Language: s.cfg.Language,
		Author:   s.cfg.Author,
	})
	if err != nil {
		return err
	}
	if normalized != "" {
		if _, err := s.tags.Tag(ctx, ref, normalized, s.cfg.Language, s.cfg.Author); err != nil {
			return err
		}
	}
	if err := persist(ctx); err != nil {
		return err
	}

	logger.Debug().
		Int64("replaced", deleted).
		Str("tags", normalized).
		Msg("Default tags synced")

	return nil
}

// checkConfig 校验同步身份已经配置
func (s *DefaultTagsSyncer) checkConfig() error {
	if s.cfg.Author == nil {
		return apierror.WrapError(apierror.ErrConfiguration,
			"default tags author is not configured", nil)
	}
	if s.cfg.Language == nil {
		return apierror.WrapError(apierror.ErrConfiguration,
			"default tags language is not configured", nil)
	}
	return nil
}
