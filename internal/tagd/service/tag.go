package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jimyag/tagd/internal/tagd/entity"
	"github.com/jimyag/tagd/internal/tagd/repository"
	"github.com/jimyag/tagd/internal/tagd/repository/model"
	"github.com/jimyag/tagd/pkg/apierror"
	"github.com/jimyag/tagd/pkg/idgen"
	"github.com/jimyag/tagd/pkg/lang"
	"github.com/jimyag/tagd/pkg/tagparse"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// TagService 标签服务：面向实体的打标签、去标签和查询操作
type TagService struct {
	tagRepo  repository.TagRepository
	stemRepo repository.StemRepository
	authors  *AuthorService
	types    *EntityTypes
	idGen    *idgen.Generator
}

// NewTagService 创建标签服务
func NewTagService(
	tagRepo repository.TagRepository,
	stemRepo repository.StemRepository,
	authors *AuthorService,
	types *EntityTypes,
) *TagService {
	return &TagService{
		tagRepo:  tagRepo,
		stemRepo: stemRepo,
		authors:  authors,
		types:    types,
		idGen:    idgen.New(),
	}
}

// resolveLanguage 把任意形式的语言值解析为整数编码
func resolveLanguage(v any) (int, error) {
	code, err := lang.Resolve(v)
	if err != nil {
		return 0, apierror.WrapError(apierror.ErrLanguageResolutionFailed, err.Error(), err)
	}
	return code, nil
}

// Tag 给实体打标签
//
// names 是标签输入文本（见 pkg/tagparse），每个解析出的标签名创建一条标签。
// 作者或语言解析失败时整个调用失败，不会部分生效。
// staff 作者打的标签自动标记为官方标签。
func (s *TagService) Tag(ctx context.Context, ref any, names string, language any, author any) ([]entity.Tag, error) {
	logger := zerolog.Ctx(ctx)

	target, err := s.types.Resolve(ref)
	if err != nil {
		return nil, err
	}
	resolvedAuthor, err := s.authors.Resolve(ctx, author)
	if err != nil {
		return nil, err
	}
	languageCode, err := resolveLanguage(language)
	if err != nil {
		return nil, err
	}

	parsed := parseNames(names)
	created := make([]entity.Tag, 0, len(parsed))
	for _, name := range parsed {
		tagID, err := s.idGen.GenerateTagID()
		if err != nil {
			return nil, apierror.WrapError(apierror.ErrInternalError, "Failed to generate tag ID", err)
		}
		m := &model.Tag{
			ID:         tagID,
			Name:       name,
			Language:   languageCode,
			AuthorID:   resolvedAuthor.ID,
			Official:   resolvedAuthor.Staff,
			EntityType: target.Type,
			EntityID:   target.ID,
			CreatedAt:  time.Now(),
		}
		if err := s.tagRepo.Create(ctx, m); err != nil {
			logger.Error().Err(err).
				Str("entity", target.String()).
				Str("name", name).
				Msg("Failed to create tag")
			return nil, apierror.WrapError(apierror.ErrInternalError, "Failed to create tag", err)
		}
		e, err := tagModelToEntity(m)
		if err != nil {
			return nil, apierror.WrapError(apierror.ErrInternalError, "Failed to convert tag", err)
		}
		created = append(created, *e)
	}

	logger.Info().
		Str("entity", target.String()).
		Int("count", len(created)).
		Int("language", languageCode).
		Str("author_id", resolvedAuthor.ID).
		Msg("Entity tagged")

	return created, nil
}

// Untag 移除实体上指定名称、语言、作者的标签
//
// 移除不存在的标签不是错误：去标签是幂等的。
func (s *TagService) Untag(ctx context.Context, ref any, names string, language any, author any) error {
	logger := zerolog.Ctx(ctx)

	target, err := s.types.Resolve(ref)
	if err != nil {
		return err
	}
	resolvedAuthor, err := s.authors.Resolve(ctx, author)
	if err != nil {
		return err
	}
	languageCode, err := resolveLanguage(language)
	if err != nil {
		return err
	}

	for _, name := range parseNames(names) {
		tag, err := s.tagRepo.FindOne(ctx, target.Type, target.ID, name, languageCode, resolvedAuthor.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// 标签本来就不存在，视为去标签成功
				continue
			}
			return apierror.WrapError(apierror.ErrInternalError, "Failed to look up tag", err)
		}
		if err := s.tagRepo.Delete(ctx, tag); err != nil {
			return apierror.WrapError(apierror.ErrInternalError, "Failed to delete tag", err)
		}
	}

	logger.Info().
		Str("entity", target.String()).
		Str("names", names).
		Msg("Entity untagged")

	return nil
}

// UntagAllOptions 批量去标签的可选过滤条件，nil/空值表示不过滤
type UntagAllOptions struct {
	Names    string
	Language any
	Author   any
}

// UntagAll 移除实体上所有匹配过滤条件的标签，返回删除数量
func (s *TagService) UntagAll(ctx context.Context, ref any, opts UntagAllOptions) (int64, error) {
	logger := zerolog.Ctx(ctx)

	target, err := s.types.Resolve(ref)
	if err != nil {
		return 0, err
	}
	filter, err := s.buildFilter(ctx, opts.Names, opts.Language, opts.Author, false)
	if err != nil {
		return 0, err
	}

	deleted, err := s.tagRepo.DeleteByEntity(ctx, target.Type, target.ID, filter)
	if err != nil {
		return 0, apierror.WrapError(apierror.ErrInternalError, "Failed to delete tags", err)
	}

	logger.Info().
		Str("entity", target.String()).
		Int64("deleted", deleted).
		Msg("Entity tags cleared")

	return deleted, nil
}

// UpdateTag 修改已有标签的名称或语言
//
// 名称或语言变化时词干会重新解析，旧词干计数减一、新词干计数加一。
// official 标志按作者当前的 staff 身份重新计算。
func (s *TagService) UpdateTag(ctx context.Context, tagID, newName string, newLanguage any) (*entity.Tag, error) {
	logger := zerolog.Ctx(ctx)

	tag, err := s.findTagByID(ctx, tagID)
	if err != nil {
		return nil, err
	}

	if newName != "" {
		tag.Name = newName
	}
	if newLanguage != nil {
		languageCode, err := resolveLanguage(newLanguage)
		if err != nil {
			return nil, err
		}
		tag.Language = languageCode
	}

	// official 永远从作者当前身份重新计算，不允许直接设置
	author, err := s.authors.Resolve(ctx, tag.AuthorID)
	if err != nil {
		return nil, err
	}
	tag.Official = author.Staff

	if err := s.tagRepo.Update(ctx, tag); err != nil {
		logger.Error().Err(err).Str("tag_id", tagID).Msg("Failed to update tag")
		return nil, apierror.WrapError(apierror.ErrInternalError, "Failed to update tag", err)
	}

	logger.Info().
		Str("tag_id", tag.ID).
		Str("name", tag.Name).
		Int("language", tag.Language).
		Msg("Tag updated")

	return tagModelToEntity(tag)
}

// TagsFor 返回实体的所有标签
func (s *TagService) TagsFor(ctx context.Context, ref any) ([]entity.Tag, error) {
	target, err := s.types.Resolve(ref)
	if err != nil {
		return nil, err
	}

	ms, err := s.tagRepo.GetByEntity(ctx, target.Type, target.ID)
	if err != nil {
		return nil, apierror.WrapError(apierror.ErrInternalError, "Failed to list tags", err)
	}

	tags := make([]entity.Tag, 0, len(ms))
	for _, m := range ms {
		e, convErr := tagModelToEntity(m)
		if convErr != nil {
			return nil, apierror.WrapError(apierror.ErrInternalError, "Failed to convert tag", convErr)
		}
		tags = append(tags, *e)
	}
	return tags, nil
}

// StemFilter 词干查询的可选过滤条件
type StemFilter struct {
	OfficialOnly bool
	Author       any
	Language     any
}

// StemsFor 返回实体上去重后的词干
func (s *TagService) StemsFor(ctx context.Context, ref any, opts StemFilter) ([]entity.Stem, error) {
	target, err := s.types.Resolve(ref)
	if err != nil {
		return nil, err
	}
	filter, err := s.buildFilter(ctx, "", opts.Language, opts.Author, opts.OfficialOnly)
	if err != nil {
		return nil, err
	}

	ms, err := s.tagRepo.StemsByEntity(ctx, target.Type, target.ID, filter)
	if err != nil {
		return nil, apierror.WrapError(apierror.ErrInternalError, "Failed to list stems", err)
	}
	return stemModelsToEntities(ms)
}

// ListStems 返回所有词干
func (s *TagService) ListStems(ctx context.Context) ([]entity.Stem, error) {
	ms, err := s.stemRepo.List(ctx)
	if err != nil {
		return nil, apierror.WrapError(apierror.ErrInternalError, "Failed to list stems", err)
	}
	return stemModelsToEntities(ms)
}

// findTagByID 按 ID 查找标签
func (s *TagService) findTagByID(ctx context.Context, tagID string) (*model.Tag, error) {
	tag, err := s.tagRepo.GetByID(ctx, tagID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.WrapError(apierror.ErrResourceNotFound,
				fmt.Sprintf("tag %q does not exist", tagID), err)
		}
		return nil, apierror.WrapError(apierror.ErrInternalError, "Failed to look up tag", err)
	}
	return tag, nil
}

// buildFilter 把可选的名称文本、语言、作者解析为仓库层过滤条件
// nil/空值跳过；非空但无法解析的值是调用方错误，立即失败
func (s *TagService) buildFilter(ctx context.Context, names string, language, author any, officialOnly bool) (repository.TagFilter, error) {
	filter := repository.TagFilter{OfficialOnly: officialOnly}
	if names != "" {
		filter.Names = parseNames(names)
	}
	if language != nil {
		languageCode, err := resolveLanguage(language)
		if err != nil {
			return repository.TagFilter{}, err
		}
		filter.Language = &languageCode
	}
	if author != nil {
		resolvedAuthor, err := s.authors.Resolve(ctx, author)
		if err != nil {
			return repository.TagFilter{}, err
		}
		filter.AuthorID = resolvedAuthor.ID
	}
	return filter, nil
}

// parseNames 把标签输入文本解析为去重后的标签名列表
func parseNames(names string) []string {
	return tagparse.Parse(names)
}

// stemModelsToEntities 批量转换词干
func stemModelsToEntities(ms []*model.Stem) ([]entity.Stem, error) {
	stems := make([]entity.Stem, 0, len(ms))
	for _, m := range ms {
		e, err := stemModelToEntity(m)
		if err != nil {
			return nil, apierror.WrapError(apierror.ErrInternalError, "Failed to convert stem", err)
		}
		stems = append(stems, *e)
	}
	return stems, nil
}
