package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jimyag/tagd/internal/tagd/entity"
	"github.com/jimyag/tagd/internal/tagd/service"
	"github.com/jimyag/tagd/pkg/ginx"
	"github.com/rs/zerolog"
)

// TagServiceInterface 定义标签服务的接口
type TagServiceInterface interface {
	Tag(ctx context.Context, ref any, names string, language any, author any) ([]entity.Tag, error)
	Untag(ctx context.Context, ref any, names string, language any, author any) error
	UntagAll(ctx context.Context, ref any, opts service.UntagAllOptions) (int64, error)
	TagsFor(ctx context.Context, ref any) ([]entity.Tag, error)
	SimilarObjects(ctx context.Context, ref any, opts service.SimilarOptions) ([]entity.SimilarObject, error)
}

type Tag struct {
	tagService TagServiceInterface
}

func NewTag(tagService *service.TagService) *Tag {
	return &Tag{
		tagService: tagService,
	}
}

func (t *Tag) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/tag-entity", ginx.Adapt5(t.TagEntity))
	router.POST("/untag-entity", ginx.Adapt5(t.UntagEntity))
	router.POST("/untag-all", ginx.Adapt5(t.UntagAll))
	router.POST("/describe-tags", ginx.Adapt5(t.DescribeTags))
	router.POST("/describe-similar", ginx.Adapt5(t.DescribeSimilar))
}

func (t *Tag) TagEntity(ctx *gin.Context, req *entity.TagEntityRequest) (*entity.TagEntityResponse, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().
		Str("entity_type", req.EntityType).
		Str("entity_id", req.EntityID).
		Str("names", req.Names).
		Msg("TagEntity called")

	ref := entity.Ref{Type: req.EntityType, ID: req.EntityID}
	tags, err := t.tagService.Tag(ctx, ref, req.Names, req.Language, req.Author)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("Failed to tag entity")
		return nil, err
	}

	logger.Info().
		Str("entity", ref.String()).
		Int("count", len(tags)).
		Msg("Entity tagged successfully")

	return &entity.TagEntityResponse{Tags: tags}, nil
}

func (t *Tag) UntagEntity(ctx *gin.Context, req *entity.UntagEntityRequest) (*entity.UntagEntityResponse, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().
		Str("entity_type", req.EntityType).
		Str("entity_id", req.EntityID).
		Str("names", req.Names).
		Msg("UntagEntity called")

	ref := entity.Ref{Type: req.EntityType, ID: req.EntityID}
	if err := t.tagService.Untag(ctx, ref, req.Names, req.Language, req.Author); err != nil {
		logger.Error().
			Err(err).
			Msg("Failed to untag entity")
		return nil, err
	}

	return &entity.UntagEntityResponse{Return: true}, nil
}

func (t *Tag) UntagAll(ctx *gin.Context, req *entity.UntagAllRequest) (*entity.UntagAllResponse, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().
		Str("entity_type", req.EntityType).
		Str("entity_id", req.EntityID).
		Msg("UntagAll called")

	opts := service.UntagAllOptions{
		Names:    req.Names,
		Language: req.Language,
	}
	if req.Author != "" {
		opts.Author = req.Author
	}

	ref := entity.Ref{Type: req.EntityType, ID: req.EntityID}
	deleted, err := t.tagService.UntagAll(ctx, ref, opts)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("Failed to untag all")
		return nil, err
	}

	logger.Info().
		Str("entity", ref.String()).
		Int64("deleted", deleted).
		Msg("Entity tags cleared successfully")

	return &entity.UntagAllResponse{Deleted: deleted}, nil
}

func (t *Tag) DescribeTags(ctx *gin.Context, req *entity.DescribeTagsRequest) (*entity.DescribeTagsResponse, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().
		Str("entity_type", req.EntityType).
		Str("entity_id", req.EntityID).
		Msg("DescribeTags called")

	ref := entity.Ref{Type: req.EntityType, ID: req.EntityID}
	tags, err := t.tagService.TagsFor(ctx, ref)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("Failed to describe tags")
		return nil, err
	}

	return &entity.DescribeTagsResponse{Tags: tags}, nil
}

func (t *Tag) DescribeSimilar(ctx *gin.Context, req *entity.DescribeSimilarRequest) (*entity.DescribeSimilarResponse, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().
		Str("entity_type", req.EntityType).
		Str("entity_id", req.EntityID).
		Msg("DescribeSimilar called")

	opts := service.SimilarOptions{
		SameType:     req.SameType,
		OfficialOnly: req.OfficialOnly,
		Language:     req.Language,
	}
	if req.Author != "" {
		opts.Author = req.Author
	}

	ref := entity.Ref{Type: req.EntityType, ID: req.EntityID}
	similar, err := t.tagService.SimilarObjects(ctx, ref, opts)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("Failed to describe similar entities")
		return nil, err
	}

	logger.Info().
		Str("entity", ref.String()).
		Int("count", len(similar)).
		Msg("Similar entities described successfully")

	return &entity.DescribeSimilarResponse{Similar: similar}, nil
}
