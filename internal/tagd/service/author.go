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
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// AuthorService 作者服务
type AuthorService struct {
	authorRepo repository.AuthorRepository
	idGen      *idgen.Generator
}

// NewAuthorService 创建作者服务
func NewAuthorService(authorRepo repository.AuthorRepository) *AuthorService {
	return &AuthorService{
		authorRepo: authorRepo,
		idGen:      idgen.New(),
	}
}

// CreateAuthor 创建作者
func (s *AuthorService) CreateAuthor(ctx context.Context, req *entity.CreateAuthorRequest) (*entity.CreateAuthorResponse, error) {
	logger := zerolog.Ctx(ctx)

	authorID, err := s.idGen.GenerateAuthorID()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to generate author ID")
		return nil, apierror.WrapError(apierror.ErrInternalError, "Failed to generate author ID", err)
	}

	m := &model.Author{
		ID:        authorID,
		Name:      req.Name,
		Staff:     req.Staff,
		CreatedAt: time.Now(),
	}
	if err := s.authorRepo.Create(ctx, m); err != nil {
		logger.Error().Err(err).Msg("Failed to save author")
		return nil, apierror.WrapError(apierror.ErrInternalError, "Failed to save author", err)
	}

	logger.Info().
		Str("author_id", m.ID).
		Str("name", m.Name).
		Bool("staff", m.Staff).
		Msg("Author created successfully")

	author, err := authorModelToEntity(m)
	if err != nil {
		return nil, apierror.WrapError(apierror.ErrInternalError, "Failed to convert author", err)
	}
	return &entity.CreateAuthorResponse{Author: author}, nil
}

// DescribeAuthors 查询作者，AuthorIDs 为空时返回全部
func (s *AuthorService) DescribeAuthors(ctx context.Context, req *entity.DescribeAuthorsRequest) (*entity.DescribeAuthorsResponse, error) {
	var (
		ms  []*model.Author
		err error
	)
	if len(req.AuthorIDs) > 0 {
		ms, err = s.authorRepo.GetByIDs(ctx, req.AuthorIDs)
	} else {
		ms, err = s.authorRepo.List(ctx)
	}
	if err != nil {
		return nil, apierror.WrapError(apierror.ErrInternalError, "Failed to list authors", err)
	}

	authors := make([]entity.Author, 0, len(ms))
	for _, m := range ms {
		author, convErr := authorModelToEntity(m)
		if convErr != nil {
			return nil, apierror.WrapError(apierror.ErrInternalError, "Failed to convert author", convErr)
		}
		authors = append(authors, *author)
	}
	return &entity.DescribeAuthorsResponse{Authors: authors}, nil
}

// Resolve 把任意形式的作者值解析为 entity.Author
//
// 依次尝试：值本身就是 Author；值实现了 entity.Authorable；
// 值是作者 ID 字符串（查库）。都不匹配时返回 AuthorResolutionFailed。
func (s *AuthorService) Resolve(ctx context.Context, v any) (*entity.Author, error) {
	switch av := v.(type) {
	case *entity.Author:
		if av == nil {
			return nil, apierror.WrapError(apierror.ErrAuthorResolutionFailed,
				"nil author", nil)
		}
		return av, nil
	case entity.Author:
		return &av, nil
	case entity.Authorable:
		author := av.TagAuthor()
		if author == nil {
			return nil, apierror.WrapError(apierror.ErrAuthorResolutionFailed,
				"TagAuthor returned nil", nil)
		}
		return author, nil
	case interface{ TagUser() *entity.Author }:
		// 兼容把作者挂在用户对象上的调用方
		author := av.TagUser()
		if author == nil {
			return nil, apierror.WrapError(apierror.ErrAuthorResolutionFailed,
				"TagUser returned nil", nil)
		}
		return author, nil
	case string:
		m, err := s.authorRepo.GetByID(ctx, av)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.WrapError(apierror.ErrAuthorResolutionFailed,
					fmt.Sprintf("author %q does not exist", av), err)
			}
			return nil, apierror.WrapError(apierror.ErrInternalError, "Failed to look up author", err)
		}
		return authorModelToEntity(m)
	default:
		return nil, apierror.WrapError(apierror.ErrAuthorResolutionFailed,
			fmt.Sprintf("unsupported author type %T", v), nil)
	}
}
