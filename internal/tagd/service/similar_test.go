package service

import (
	"context"
	"testing"

	"github.com/jimyag/tagd/internal/tagd/entity"
	"github.com/jimyag/tagd/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagService_SimilarObjects(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("symmetric difference distance", func(t *testing.T) {
		t.Parallel()

		env := setupTestServices(t)
		authorID := createTestAuthor(t, env, "reader", false)

		// article:1 {red, blue}  article:2 {blue, green} → 距离 2
		_, err := env.tags.Tag(ctx, entity.Ref{Type: "article", ID: "1"}, "red, blue", lang.En, authorID)
		require.NoError(t, err)
		_, err = env.tags.Tag(ctx, entity.Ref{Type: "article", ID: "2"}, "blue, green", lang.En, authorID)
		require.NoError(t, err)

		similar, err := env.tags.SimilarObjects(ctx, entity.Ref{Type: "article", ID: "1"}, SimilarOptions{})
		require.NoError(t, err)
		require.Len(t, similar, 1)
		assert.Equal(t, entity.Ref{Type: "article", ID: "2"}, similar[0].Entity)
		assert.Equal(t, 2, similar[0].Distance)
	})

	t.Run("identical stem sets rank first with distance zero", func(t *testing.T) {
		t.Parallel()

		env := setupTestServices(t)
		authorID := createTestAuthor(t, env, "reader", false)

		_, err := env.tags.Tag(ctx, entity.Ref{Type: "article", ID: "1"}, "red, blue", lang.En, authorID)
		require.NoError(t, err)
		_, err = env.tags.Tag(ctx, entity.Ref{Type: "article", ID: "2"}, "red, blue", lang.En, authorID)
		require.NoError(t, err)
		_, err = env.tags.Tag(ctx, entity.Ref{Type: "article", ID: "3"}, "red", lang.En, authorID)
		require.NoError(t, err)

		similar, err := env.tags.SimilarObjects(ctx, entity.Ref{Type: "article", ID: "1"}, SimilarOptions{})
		require.NoError(t, err)
		require.Len(t, similar, 2)
		assert.Equal(t, entity.Ref{Type: "article", ID: "2"}, similar[0].Entity)
		assert.Equal(t, 0, similar[0].Distance)
		assert.Equal(t, entity.Ref{Type: "article", ID: "3"}, similar[1].Entity)
		assert.Equal(t, 1, similar[1].Distance)
	})

	t.Run("disjoint entities are excluded", func(t *testing.T) {
		t.Parallel()

		env := setupTestServices(t)
		authorID := createTestAuthor(t, env, "reader", false)

		_, err := env.tags.Tag(ctx, entity.Ref{Type: "article", ID: "1"}, "red", lang.En, authorID)
		require.NoError(t, err)
		_, err = env.tags.Tag(ctx, entity.Ref{Type: "article", ID: "2"}, "green", lang.En, authorID)
		require.NoError(t, err)

		similar, err := env.tags.SimilarObjects(ctx, entity.Ref{Type: "article", ID: "1"}, SimilarOptions{})
		require.NoError(t, err)
		assert.Empty(t, similar)
	})

	t.Run("entity without stems has no similar objects", func(t *testing.T) {
		t.Parallel()

		env := setupTestServices(t)
		authorID := createTestAuthor(t, env, "reader", false)

		_, err := env.tags.Tag(ctx, entity.Ref{Type: "article", ID: "2"}, "red", lang.En, authorID)
		require.NoError(t, err)

		similar, err := env.tags.SimilarObjects(ctx, entity.Ref{Type: "article", ID: "1"}, SimilarOptions{})
		require.NoError(t, err)
		assert.Empty(t, similar)
	})

	t.Run("same stem name in different language does not match", func(t *testing.T) {
		t.Parallel()

		env := setupTestServices(t)
		authorID := createTestAuthor(t, env, "reader", false)

		_, err := env.tags.Tag(ctx, entity.Ref{Type: "article", ID: "1"}, "film", lang.En, authorID)
		require.NoError(t, err)
		_, err = env.tags.Tag(ctx, entity.Ref{Type: "article", ID: "2"}, "film", lang.Pl, authorID)
		require.NoError(t, err)

		similar, err := env.tags.SimilarObjects(ctx, entity.Ref{Type: "article", ID: "1"}, SimilarOptions{})
		require.NoError(t, err)
		assert.Empty(t, similar)
	})

	t.Run("same type filter", func(t *testing.T) {
		t.Parallel()

		env := setupTestServices(t)
		authorID := createTestAuthor(t, env, "reader", false)

		_, err := env.tags.Tag(ctx, entity.Ref{Type: "article", ID: "1"}, "red", lang.En, authorID)
		require.NoError(t, err)
		_, err = env.tags.Tag(ctx, entity.Ref{Type: "article", ID: "2"}, "red", lang.En, authorID)
		require.NoError(t, err)
		_, err = env.tags.Tag(ctx, entity.Ref{Type: "video", ID: "1"}, "red", lang.En, authorID)
		require.NoError(t, err)

		similar, err := env.tags.SimilarObjects(ctx, entity.Ref{Type: "article", ID: "1"}, SimilarOptions{SameType: true})
		require.NoError(t, err)
		require.Len(t, similar, 1)
		assert.Equal(t, "article", similar[0].Entity.Type)
	})

	t.Run("official only filter narrows stem sets", func(t *testing.T) {
		t.Parallel()

		env := setupTestServices(t)
		staffID := createTestAuthor(t, env, "editor", true)
		reader := createTestAuthor(t, env, "reader", false)

		_, err := env.tags.Tag(ctx, entity.Ref{Type: "article", ID: "1"}, "red", lang.En, staffID)
		require.NoError(t, err)
		// article:2 只有非官方标签，OfficialOnly 下没有词干可比
		_, err = env.tags.Tag(ctx, entity.Ref{Type: "article", ID: "2"}, "red", lang.En, reader)
		require.NoError(t, err)
		_, err = env.tags.Tag(ctx, entity.Ref{Type: "article", ID: "3"}, "red", lang.En, staffID)
		require.NoError(t, err)

		similar, err := env.tags.SimilarObjects(ctx, entity.Ref{Type: "article", ID: "1"}, SimilarOptions{OfficialOnly: true})
		require.NoError(t, err)
		require.Len(t, similar, 1)
		assert.Equal(t, entity.Ref{Type: "article", ID: "3"}, similar[0].Entity)
	})

	t.Run("equal distances ordered by entity reference", func(t *testing.T) {
		t.Parallel()

		env := setupTestServices(t)
		authorID := createTestAuthor(t, env, "reader", false)

		_, err := env.tags.Tag(ctx, entity.Ref{Type: "article", ID: "1"}, "red, blue", lang.En, authorID)
		require.NoError(t, err)
		_, err = env.tags.Tag(ctx, entity.Ref{Type: "video", ID: "9"}, "red, blue", lang.En, authorID)
		require.NoError(t, err)
		_, err = env.tags.Tag(ctx, entity.Ref{Type: "article", ID: "5"}, "red, blue", lang.En, authorID)
		require.NoError(t, err)

		similar, err := env.tags.SimilarObjects(ctx, entity.Ref{Type: "article", ID: "1"}, SimilarOptions{})
		require.NoError(t, err)
		require.Len(t, similar, 2)
		assert.Equal(t, entity.Ref{Type: "article", ID: "5"}, similar[0].Entity)
		assert.Equal(t, entity.Ref{Type: "video", ID: "9"}, similar[1].Entity)
	})
}
