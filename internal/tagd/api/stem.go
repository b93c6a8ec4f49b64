package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jimyag/tagd/internal/tagd/entity"
	"github.com/jimyag/tagd/internal/tagd/service"
	"github.com/jimyag/tagd/pkg/ginx"
	"github.com/rs/zerolog"
)

// StemServiceInterface 定义词干服务的接口
type StemServiceInterface interface {
	StemsFor(ctx context.Context, ref any, opts service.StemFilter) ([]entity.Stem, error)
	ListStems(ctx context.Context) ([]entity.Stem, error)
}

type Stem struct {
	stemService StemServiceInterface
}

func NewStem(tagService *service.TagService) *Stem {
	return &Stem{
		stemService: tagService,
	}
}

func (s *Stem) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/describe-stems", ginx.Adapt5(s.DescribeStems))
}

func (s *Stem) DescribeStems(ctx *gin.Context, req *entity.DescribeStemsRequest) (*entity.DescribeStemsResponse, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().
		Str("entity_type", req.EntityType).
		Str("entity_id", req.EntityID).
		Msg("DescribeStems called")

	var (
		stems []entity.Stem
		err   error
	)
	if req.EntityType == "" && req.EntityID == "" {
		stems, err = s.stemService.ListStems(ctx)
	} else {
		ref := entity.Ref{Type: req.EntityType, ID: req.EntityID}
		stems, err = s.stemService.StemsFor(ctx, ref, service.StemFilter{
			OfficialOnly: req.OfficialOnly,
			Language:     req.Language,
		})
	}
	if err != nil {
		logger.Error().
			Err(err).
			Msg("Failed to describe stems")
		return nil, err
	}

	logger.Info().
		Int("count", len(stems)).
		Msg("Stems described successfully")

	return &entity.DescribeStemsResponse{Stems: stems}, nil
}
