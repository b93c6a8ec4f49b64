package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jimyag/tagd/internal/tagd/entity"
	"github.com/jimyag/tagd/internal/tagd/service"
	"github.com/jimyag/tagd/pkg/ginx"
	"github.com/rs/zerolog"
)

// DefaultTagsSyncerInterface 定义默认标签同步器的接口
type DefaultTagsSyncerInterface interface {
	Normalize(text string) string
	Save(ctx context.Context, ref any, tagText *string, isNew bool, persist func(context.Context) error) error
}

type DefaultTags struct {
	syncer     DefaultTagsSyncerInterface
	tagService TagServiceInterface
}

func NewDefaultTags(syncer *service.DefaultTagsSyncer, tagService *service.TagService) *DefaultTags {
	return &DefaultTags{
		syncer:     syncer,
		tagService: tagService,
	}
}

func (d *DefaultTags) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/sync-default-tags", ginx.Adapt5(d.SyncDefaultTags))
}

func (d *DefaultTags) SyncDefaultTags(ctx *gin.Context, req *entity.SyncDefaultTagsRequest) (*entity.SyncDefaultTagsResponse, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().
		Str("entity_type", req.EntityType).
		Str("entity_id", req.EntityID).
		Str("text", req.Text).
		Msg("SyncDefaultTags called")

	ref := entity.Ref{Type: req.EntityType, ID: req.EntityID}
	text := req.Text
	// 记录本身存在外部系统里，这里只同步标签
	noop := func(context.Context) error { return nil }
	if err := d.syncer.Save(ctx, ref, &text, false, noop); err != nil {
		logger.Error().
			Err(err).
			Msg("Failed to sync default tags")
		return nil, err
	}

	tags, err := d.tagService.TagsFor(ctx, ref)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("Failed to list tags after sync")
		return nil, err
	}

	logger.Info().
		Str("entity", ref.String()).
		Str("text", text).
		Msg("Default tags synced successfully")

	return &entity.SyncDefaultTagsResponse{Text: text, Tags: tags}, nil
}
