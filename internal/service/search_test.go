package service

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f246632/rijeka-online/internal/domain"
	"github.com/f246632/rijeka-online/internal/search"
	"github.com/f246632/rijeka-online/internal/validation"
)

func newSearchEnv(t *testing.T) (*testEnv, *SearchService) {
	t.Helper()
	env := newTestEnv(t)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	idx, err := search.NewIndex(search.Options{DataPath: t.TempDir(), Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })

	searchSvc := NewSearchService(env.store, idx, logger)
	env.articles = NewArticleService(env.store, validation.New(), searchSvc, logger)
	return env, searchSvc
}

func TestSearch_FollowsLifecycle(t *testing.T) {
	env, searchSvc := newSearchEnv(t)
	ctx := context.Background()

	req := env.createRequest()
	req.Title = "Obnova riječke tržnice"
	a, err := env.articles.Create(ctx, req, env.author)
	require.NoError(t, err)

	// Drafts are invisible to search.
	result, err := searchSvc.Search(ctx, search.Params{Query: "tržnice", Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, result.Total)

	_, err = env.articles.Transition(ctx, a.ID, domain.StatusPublished, nil, env.editor)
	require.NoError(t, err)

	result, err = searchSvc.Search(ctx, search.Params{Query: "tržnice", Limit: 10})
	require.NoError(t, err)
	require.NotZero(t, result.Total)
	hit := result.Hits[0]
	assert.Equal(t, a.ID, hit.ID)
	assert.Equal(t, "vijesti", hit.CategorySlug, "category slug is denormalized into the document")
	assert.Equal(t, "Test user-author", hit.AuthorName)

	// Archiving removes the article from the index.
	_, err = env.articles.Transition(ctx, a.ID, domain.StatusArchived, nil, env.editor)
	require.NoError(t, err)

	result, err = searchSvc.Search(ctx, search.Params{Query: "tržnice", Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, result.Total)
}

func TestReindex(t *testing.T) {
	env, searchSvc := newSearchEnv(t)
	ctx := context.Background()

	for _, title := range []string{"Prvi objavljeni članak", "Drugi objavljeni članak"} {
		req := env.createRequest()
		req.Title = title
		a, err := env.articles.Create(ctx, req, env.author)
		require.NoError(t, err)
		_, err = env.articles.Transition(ctx, a.ID, domain.StatusPublished, nil, env.editor)
		require.NoError(t, err)
	}

	// One draft that must not be indexed.
	req := env.createRequest()
	req.Title = "Neobjavljeni nacrt"
	_, err := env.articles.Create(ctx, req, env.author)
	require.NoError(t, err)

	indexed, err := searchSvc.Reindex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, indexed)

	count, err := searchSvc.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)
}
