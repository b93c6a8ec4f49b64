package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jimyag/tagd/internal/tagd/entity"
	"github.com/jimyag/tagd/internal/tagd/service"
	"github.com/jimyag/tagd/pkg/ginx"
	"github.com/rs/zerolog"
)

// AuthorServiceInterface 定义作者服务的接口
type AuthorServiceInterface interface {
	CreateAuthor(ctx context.Context, req *entity.CreateAuthorRequest) (*entity.CreateAuthorResponse, error)
	DescribeAuthors(ctx context.Context, req *entity.DescribeAuthorsRequest) (*entity.DescribeAuthorsResponse, error)
}

type Author struct {
	authorService AuthorServiceInterface
}

func NewAuthor(authorService *service.AuthorService) *Author {
	return &Author{
		authorService: authorService,
	}
}

func (a *Author) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/create-author", ginx.Adapt5(a.CreateAuthor))
	router.POST("/describe-authors", ginx.Adapt5(a.DescribeAuthors))
}

func (a *Author) CreateAuthor(ctx *gin.Context, req *entity.CreateAuthorRequest) (*entity.CreateAuthorResponse, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().
		Str("name", req.Name).
		Bool("staff", req.Staff).
		Msg("CreateAuthor called")

	response, err := a.authorService.CreateAuthor(ctx, req)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("Failed to create author")
		return nil, err
	}

	logger.Info().
		Str("author_id", response.Author.ID).
		Str("name", response.Author.Name).
		Msg("Author created successfully")

	return response, nil
}

func (a *Author) DescribeAuthors(ctx *gin.Context, req *entity.DescribeAuthorsRequest) (*entity.DescribeAuthorsResponse, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().
		Interface("request", req).
		Msg("DescribeAuthors called")

	response, err := a.authorService.DescribeAuthors(ctx, req)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("Failed to describe authors")
		return nil, err
	}

	logger.Info().
		Int("count", len(response.Authors)).
		Msg("Authors described successfully")

	return response, nil
}
