package scheduler

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f246632/rijeka-online/internal/domain"
	"github.com/f246632/rijeka-online/internal/store/memory"
)

func seedScheduled(t *testing.T, st *memory.Store, id string, publishAt time.Time) *domain.Article {
	t.Helper()
	ctx := context.Background()

	c := &domain.Category{Timestamps: domain.Timestamps{ID: "cat-" + id}, Name: "Kategorija " + id, Slug: "kategorija-" + id}
	c.InitTimestamps()
	require.NoError(t, st.CreateCategory(ctx, c))

	a := &domain.Article{
		Timestamps:  domain.Timestamps{ID: id},
		Slug:        "clanak-" + id,
		Title:       "Zakazani članak " + id,
		Excerpt:     "Sažetak",
		Content:     "<p>Tijelo</p>",
		CategoryID:  c.ID,
		Status:      domain.StatusScheduled,
		PublishedAt: &publishAt,
		AuthorID:    "user-1",
	}
	a.InitTimestamps()
	require.NoError(t, st.CreateArticle(ctx, a))
	return a
}

func TestPromoteDue(t *testing.T) {
	st := memory.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	s := New(st, nil, nil, time.Minute, logger)
	ctx := context.Background()

	now := time.Now()
	due := seedScheduled(t, st, "art-due", now.Add(-time.Minute))
	notDue := seedScheduled(t, st, "art-kasnije", now.Add(time.Hour))

	promoted, err := s.PromoteDue(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, promoted)

	got, err := st.GetArticleByID(ctx, due.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPublished, got.Status)
	require.NotNil(t, got.PublishedAt)
	assert.True(t, got.PublishedAt.Equal(*due.PublishedAt), "promotion keeps the scheduled instant")

	got, err = st.GetArticleByID(ctx, notDue.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusScheduled, got.Status)
}

func TestPromoteDue_RaceLost(t *testing.T) {
	st := memory.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	s := New(st, nil, nil, time.Minute, logger)
	ctx := context.Background()

	now := time.Now()
	a := seedScheduled(t, st, "art-utrka", now.Add(-time.Minute))

	// An editor cancels the schedule between listing and promotion.
	require.NoError(t, st.UpdateArticleStatus(ctx, a.ID, domain.StatusScheduled, domain.StatusDraft, nil))

	// Simulate the sweep's view by asking for the same instant.
	promoted, err := s.PromoteDue(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, promoted)

	got, err := st.GetArticleByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, got.Status)
}

func TestStartStop(t *testing.T) {
	st := memory.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	s := New(st, nil, nil, 10*time.Millisecond, logger)

	seedScheduled(t, st, "art-sweep", time.Now().Add(-time.Second))

	s.Start(context.Background())
	defer s.Stop()

	deadline := time.After(2 * time.Second)
	for {
		got, err := st.GetArticleByID(context.Background(), "art-sweep")
		require.NoError(t, err)
		if got.Status == domain.StatusPublished {
			return
		}
		select {
		case <-deadline:
			t.Fatal("sweep never promoted the due article")
		case <-time.After(10 * time.Millisecond):
		}
	}
}
