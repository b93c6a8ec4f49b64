package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jimyag/tagd/internal/tagd/entity"
	"github.com/jimyag/tagd/internal/tagd/repository"
	"github.com/jimyag/tagd/internal/tagd/repository/model"
	"github.com/jimyag/tagd/pkg/idgen"
	"github.com/stretchr/testify/require"
)

// testEnv 服务层测试环境，每个测试用独立的临时数据库
type testEnv struct {
	tags     *TagService
	authors  *AuthorService
	stemRepo repository.StemRepository
	tagRepo  repository.TagRepository
}

// setupTestServices 创建测试服务环境
func setupTestServices(t *testing.T, entityTypes ...string) *testEnv {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	repo, err := repository.New(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = repo.Close()
	})

	if len(entityTypes) == 0 {
		entityTypes = []string{"article", "video"}
	}

	tagRepo := repository.NewTagRepository(repo.DB())
	stemRepo := repository.NewStemRepository(repo.DB())
	authorRepo := repository.NewAuthorRepository(repo.DB())
	authors := NewAuthorService(authorRepo)
	tags := NewTagService(tagRepo, stemRepo, authors, NewEntityTypes(entityTypes...))

	return &testEnv{
		tags:     tags,
		authors:  authors,
		stemRepo: stemRepo,
		tagRepo:  tagRepo,
	}
}

// createTestAuthor 创建一个测试作者并返回其 ID
func createTestAuthor(t *testing.T, env *testEnv, name string, staff bool) string {
	t.Helper()

	resp, err := env.authors.CreateAuthor(context.Background(), &entity.CreateAuthorRequest{
		Name:  name,
		Staff: staff,
	})
	require.NoError(t, err)
	return resp.Author.ID
}

// createTestTag 直接在仓库层插入一条标签（绕过服务层的解析逻辑）
func createTestTag(t *testing.T, env *testEnv, ref entity.Ref, name string, language int, authorID string, official bool) *model.Tag {
	t.Helper()

	tagID, err := idgen.GenerateTagID()
	require.NoError(t, err)
	m := &model.Tag{
		ID:         tagID,
		Name:       name,
		Language:   language,
		AuthorID:   authorID,
		Official:   official,
		EntityType: ref.Type,
		EntityID:   ref.ID,
		CreatedAt:  time.Now(),
	}
	require.NoError(t, env.tagRepo.Create(context.Background(), m))
	return m
}
