package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jimyag/tagd/internal/tagd/repository/model"
	"github.com/jimyag/tagd/pkg/idgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestTag(t *testing.T, entityType, entityID, name string, language int, authorID string) *model.Tag {
	t.Helper()
	tagID, err := idgen.GenerateTagID()
	require.NoError(t, err)
	return &model.Tag{
		ID:         tagID,
		Name:       name,
		Language:   language,
		AuthorID:   authorID,
		EntityType: entityType,
		EntityID:   entityID,
		CreatedAt:  time.Now(),
	}
}

// liveTagCount 统计引用某词干的存活标签行数（用于验证计数不变式）
func liveTagCount(t *testing.T, repo *Repository, stemID string) int64 {
	t.Helper()
	var count int64
	err := repo.DB().Model(&model.Tag{}).Where("stem_id = ?", stemID).Count(&count).Error
	require.NoError(t, err)
	return count
}

func TestTagRepository(t *testing.T) {
	t.Parallel()

	repo := setupTestDB(t)

	tagRepo := NewTagRepository(repo.DB())
	stemRepo := NewStemRepository(repo.DB())
	ctx := context.Background()

	t.Run("Create resolves stem and increments count", func(t *testing.T) {
		tag := newTestTag(t, "note", "n-1", "red", 1, "author-1")
		require.NoError(t, tagRepo.Create(ctx, tag))
		assert.NotEmpty(t, tag.StemID)

		stem, err := stemRepo.GetByID(ctx, tag.StemID)
		require.NoError(t, err)
		assert.Equal(t, uint(1), stem.TagCount)
		assert.Equal(t, liveTagCount(t, repo, stem.ID), int64(stem.TagCount))
	})

	t.Run("Create is idempotent per entity name language author", func(t *testing.T) {
		first := newTestTag(t, "note", "n-2", "blue", 1, "author-1")
		require.NoError(t, tagRepo.Create(ctx, first))

		second := newTestTag(t, "note", "n-2", "blue", 1, "author-1")
		require.NoError(t, tagRepo.Create(ctx, second))
		assert.Equal(t, first.ID, second.ID)

		stem, err := stemRepo.GetByID(ctx, first.StemID)
		require.NoError(t, err)
		assert.Equal(t, uint(1), stem.TagCount)
	})

	t.Run("Two tags sharing a name share the stem", func(t *testing.T) {
		one := newTestTag(t, "note", "n-3", "shared", 1, "author-1")
		require.NoError(t, tagRepo.Create(ctx, one))

		two := newTestTag(t, "post", "p-1", "shared", 1, "author-2")
		require.NoError(t, tagRepo.Create(ctx, two))

		assert.Equal(t, one.StemID, two.StemID)

		stem, err := stemRepo.GetByID(ctx, one.StemID)
		require.NoError(t, err)
		assert.Equal(t, uint(2), stem.TagCount)
	})

	t.Run("Update migrates stem counts on rename", func(t *testing.T) {
		tag := newTestTag(t, "note", "n-4", "x", 1, "author-1")
		require.NoError(t, tagRepo.Create(ctx, tag))
		oldStemID := tag.StemID

		tag.Name = "y"
		require.NoError(t, tagRepo.Update(ctx, tag))
		assert.NotEqual(t, oldStemID, tag.StemID)

		// Stem("x") 计数降到 0，被删除
		_, err := stemRepo.GetByKey(ctx, "x", 1)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		// Stem("y") 计数为 1
		newStem, err := stemRepo.GetByKey(ctx, "y", 1)
		require.NoError(t, err)
		assert.Equal(t, uint(1), newStem.TagCount)
	})

	t.Run("Update with unchanged key keeps counts", func(t *testing.T) {
		tag := newTestTag(t, "note", "n-5", "stable", 1, "author-1")
		require.NoError(t, tagRepo.Create(ctx, tag))

		tag.Official = true
		require.NoError(t, tagRepo.Update(ctx, tag))

		stem, err := stemRepo.GetByID(ctx, tag.StemID)
		require.NoError(t, err)
		assert.Equal(t, uint(1), stem.TagCount)
	})

	t.Run("Update migrates stem counts on language change", func(t *testing.T) {
		tag := newTestTag(t, "note", "n-6", "wald", 1, "author-1")
		require.NoError(t, tagRepo.Create(ctx, tag))

		tag.Language = 4
		require.NoError(t, tagRepo.Update(ctx, tag))

		_, err := stemRepo.GetByKey(ctx, "wald", 1)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		stem, err := stemRepo.GetByKey(ctx, "wald", 4)
		require.NoError(t, err)
		assert.Equal(t, uint(1), stem.TagCount)
	})

	t.Run("Delete decrements stem via hook", func(t *testing.T) {
		keep := newTestTag(t, "note", "n-7", "held", 1, "author-1")
		require.NoError(t, tagRepo.Create(ctx, keep))
		gone := newTestTag(t, "note", "n-8", "held", 1, "author-1")
		require.NoError(t, tagRepo.Create(ctx, gone))

		require.NoError(t, tagRepo.Delete(ctx, gone))

		stem, err := stemRepo.GetByID(ctx, keep.StemID)
		require.NoError(t, err)
		assert.Equal(t, uint(1), stem.TagCount)
		assert.Equal(t, liveTagCount(t, repo, stem.ID), int64(stem.TagCount))
	})

	t.Run("Delete of last tag deletes the stem", func(t *testing.T) {
		tag := newTestTag(t, "note", "n-9", "lonely", 1, "author-1")
		require.NoError(t, tagRepo.Create(ctx, tag))

		require.NoError(t, tagRepo.Delete(ctx, tag))

		_, err := stemRepo.GetByKey(ctx, "lonely", 1)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("FindOne", func(t *testing.T) {
		tag := newTestTag(t, "note", "n-10", "findable", 1, "author-9")
		require.NoError(t, tagRepo.Create(ctx, tag))

		got, err := tagRepo.FindOne(ctx, "note", "n-10", "findable", 1, "author-9")
		require.NoError(t, err)
		assert.Equal(t, tag.ID, got.ID)

		_, err = tagRepo.FindOne(ctx, "note", "n-10", "findable", 1, "someone-else")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("DeleteByEntity removes all and cleans stems", func(t *testing.T) {
		for _, name := range []string{"a", "b", "c"} {
			tag := newTestTag(t, "note", "n-11", name, 1, "author-1")
			require.NoError(t, tagRepo.Create(ctx, tag))
		}

		deleted, err := tagRepo.DeleteByEntity(ctx, "note", "n-11", TagFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), deleted)

		// 三个词干都只被这一个实体引用，必须全部被删除
		for _, name := range []string{"a", "b", "c"} {
			_, err := stemRepo.GetByKey(ctx, name, 1)
			assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "stem %q should be gone", name)
		}

		tags, err := tagRepo.GetByEntity(ctx, "note", "n-11")
		require.NoError(t, err)
		assert.Len(t, tags, 0)
	})

	t.Run("DeleteByEntity honors author filter", func(t *testing.T) {
		mine := newTestTag(t, "note", "n-12", "mine", 1, "author-1")
		require.NoError(t, tagRepo.Create(ctx, mine))
		theirs := newTestTag(t, "note", "n-12", "theirs", 1, "author-2")
		require.NoError(t, tagRepo.Create(ctx, theirs))

		deleted, err := tagRepo.DeleteByEntity(ctx, "note", "n-12", TagFilter{AuthorID: "author-1"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)

		tags, err := tagRepo.GetByEntity(ctx, "note", "n-12")
		require.NoError(t, err)
		require.Len(t, tags, 1)
		assert.Equal(t, "theirs", tags[0].Name)
	})

	t.Run("Scan filters by official and entity type", func(t *testing.T) {
		official := newTestTag(t, "book", "b-1", "classic", 1, "author-1")
		official.Official = true
		require.NoError(t, tagRepo.Create(ctx, official))
		casual := newTestTag(t, "book", "b-2", "casual", 1, "author-1")
		require.NoError(t, tagRepo.Create(ctx, casual))

		got, err := tagRepo.Scan(ctx, TagFilter{EntityType: "book", OfficialOnly: true})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "classic", got[0].Name)
	})

	t.Run("StemsByEntity returns distinct stems", func(t *testing.T) {
		for _, authorID := range []string{"author-1", "author-2"} {
			tag := newTestTag(t, "film", "f-1", "noir", 1, authorID)
			require.NoError(t, tagRepo.Create(ctx, tag))
		}
		other := newTestTag(t, "film", "f-1", "classic", 1, "author-1")
		require.NoError(t, tagRepo.Create(ctx, other))

		stems, err := tagRepo.StemsByEntity(ctx, "film", "f-1", TagFilter{})
		require.NoError(t, err)
		// 两个作者打了同名标签，词干只出现一次
		assert.Len(t, stems, 2)
	})
}
