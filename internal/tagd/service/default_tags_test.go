package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jimyag/tagd/internal/tagd/entity"
	"github.com/jimyag/tagd/pkg/apierror"
	"github.com/jimyag/tagd/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTagsSyncer(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	noop := func(context.Context) error { return nil }

	t.Run("create syncs tags after persist", func(t *testing.T) {
		t.Parallel()

		env := setupTestServices(t)
		authorID := createTestAuthor(t, env, "importer", true)
		syncer := NewDefaultTagsSyncer(env.tags, SyncConfig{Author: authorID, Language: lang.En})
		ref := entity.Ref{Type: "article", ID: "1"}

		persisted := false
		text := "golang,  golang , testing"
		err := syncer.Save(ctx, ref, &text, true, func(context.Context) error {
			persisted = true
			return nil
		})
		require.NoError(t, err)
		assert.True(t, persisted)
		assert.Equal(t, "golang, testing", text)

		got, err := env.tags.TagsFor(ctx, ref)
		require.NoError(t, err)
		require.Len(t, got, 2)
		for _, tag := range got {
			assert.Equal(t, authorID, tag.AuthorID)
			assert.True(t, tag.Official)
		}
	})

	t.Run("update replaces previous default tags", func(t *testing.T) {
		t.Parallel()

		env := setupTestServices(t)
		authorID := createTestAuthor(t, env, "importer", false)
		syncer := NewDefaultTagsSyncer(env.tags, SyncConfig{Author: authorID, Language: lang.En})
		ref := entity.Ref{Type: "article", ID: "1"}

		text := "red, blue"
		require.NoError(t, syncer.Save(ctx, ref, &text, true, noop))

		text = "blue, green"
		require.NoError(t, syncer.Save(ctx, ref, &text, false, noop))

		got, err := env.tags.TagsFor(ctx, ref)
		require.NoError(t, err)
		names := make([]string, 0, len(got))
		for _, tag := range got {
			names = append(names, tag.Name)
		}
		assert.ElementsMatch(t, []string{"blue", "green"}, names)

		// red 的最后一个引用已消失
		_, err = env.stemRepo.GetByKey(ctx, "red", lang.En.ID)
		assert.Error(t, err)
	})

	t.Run("leaves other authors' tags alone", func(t *testing.T) {
		t.Parallel()

		env := setupTestServices(t)
		importer := createTestAuthor(t, env, "importer", false)
		reader := createTestAuthor(t, env, "reader", false)
		syncer := NewDefaultTagsSyncer(env.tags, SyncConfig{Author: importer, Language: lang.En})
		ref := entity.Ref{Type: "article", ID: "1"}

		_, err := env.tags.Tag(ctx, ref, "manual", lang.En, reader)
		require.NoError(t, err)

		text := "imported"
		require.NoError(t, syncer.Save(ctx, ref, &text, false, noop))

		got, err := env.tags.TagsFor(ctx, ref)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("nil tag text only persists", func(t *testing.T) {
		t.Parallel()

		env := setupTestServices(t)
		authorID := createTestAuthor(t, env, "importer", false)
		syncer := NewDefaultTagsSyncer(env.tags, SyncConfig{Author: authorID, Language: lang.En})

		persisted := false
		err := syncer.Save(ctx, entity.Ref{Type: "article", ID: "1"}, nil, true, func(context.Context) error {
			persisted = true
			return nil
		})
		require.NoError(t, err)
		assert.True(t, persisted)
	})

	t.Run("empty text on update clears default tags", func(t *testing.T) {
		t.Parallel()

		env := setupTestServices(t)
		authorID := createTestAuthor(t, env, "importer", false)
		syncer := NewDefaultTagsSyncer(env.tags, SyncConfig{Author: authorID, Language: lang.En})
		ref := entity.Ref{Type: "article", ID: "1"}

		text := "red"
		require.NoError(t, syncer.Save(ctx, ref, &text, true, noop))

		text = ""
		require.NoError(t, syncer.Save(ctx, ref, &text, false, noop))

		got, err := env.tags.TagsFor(ctx, ref)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("missing config fails", func(t *testing.T) {
		t.Parallel()

		env := setupTestServices(t)
		syncer := NewDefaultTagsSyncer(env.tags, SyncConfig{})

		text := "red"
		err := syncer.Save(ctx, entity.Ref{Type: "article", ID: "1"}, &text, true, noop)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apierror.ErrConfiguration))
	})

	t.Run("persist failure on create skips tagging", func(t *testing.T) {
		t.Parallel()

		env := setupTestServices(t)
		authorID := createTestAuthor(t, env, "importer", false)
		syncer := NewDefaultTagsSyncer(env.tags, SyncConfig{Author: authorID, Language: lang.En})
		ref := entity.Ref{Type: "article", ID: "1"}

		text := "red"
		persistErr := errors.New("disk full")
		err := syncer.Save(ctx, ref, &text, true, func(context.Context) error {
			return persistErr
		})
		require.ErrorIs(t, err, persistErr)

		got, err := env.tags.TagsFor(ctx, ref)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("normalize quotes names with commas", func(t *testing.T) {
		t.Parallel()

		env := setupTestServices(t)
		syncer := NewDefaultTagsSyncer(env.tags, SyncConfig{Author: "author-1", Language: lang.En})

		assert.Equal(t, `"co za asy", wtf`, syncer.Normalize(`"co za asy",wtf`))
		assert.Equal(t, "golang, testing", syncer.Normalize("  golang   testing "))
	})
}
