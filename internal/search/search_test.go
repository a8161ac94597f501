package search

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/f246632/rijeka-online/internal/domain"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	idx, err := NewIndex(Options{DataPath: t.TempDir(), Logger: logger})
	if err != nil {
		t.Fatalf("create index: %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx
}

func testDocs() []*Document {
	now := time.Now()
	mk := func(id, slug, title, excerpt, catSlug string, tags []string, publishedAt time.Time, views int64) *Document {
		a := &domain.Article{
			Timestamps:  domain.Timestamps{ID: id, CreatedAt: now, UpdatedAt: now},
			Slug:        slug,
			Title:       title,
			Excerpt:     excerpt,
			ContentText: "Tekst članka o temi " + title,
			Status:      domain.StatusPublished,
			PublishedAt: &publishedAt,
			ViewCount:   views,
		}
		return ArticleToDocument(a, catSlug, catSlug, "Ana Anić", tags)
	}

	return []*Document{
		mk("art-1", "obnova-luke", "Obnova riječke luke počinje", "Radovi kreću na jesen",
			"gospodarstvo", []string{"luka"}, now.Add(-3*time.Hour), 120),
		mk("art-2", "koncert-na-trsatu", "Koncert na Trsatu", "Glazbena večer na gradini",
			"kultura", []string{"trsat", "glazba"}, now.Add(-2*time.Hour), 80),
		mk("art-3", "derbi-rijeka-hajduk", "Derbi Rijeka - Hajduk", "Utakmica sezone na Rujevici",
			"sport", []string{"nogomet"}, now.Add(-time.Hour), 300),
	}
}

func TestIndexAndSearch(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	if err := idx.IndexArticles(testDocs()); err != nil {
		t.Fatalf("index: %v", err)
	}

	count, err := idx.DocumentCount()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}

	result, err := idx.Search(ctx, Params{Query: "luke", Limit: 10})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if result.Total == 0 {
		t.Fatal("expected a hit for 'luke'")
	}
	if result.Hits[0].Slug != "obnova-luke" {
		t.Errorf("top hit = %s, want obnova-luke", result.Hits[0].Slug)
	}
}

func TestSearch_FuzzyTitle(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	if err := idx.IndexArticles(testDocs()); err != nil {
		t.Fatalf("index: %v", err)
	}

	// One-character typo should still match via the fuzzy query.
	result, err := idx.Search(ctx, Params{Query: "koncrt", Limit: 10})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if result.Total == 0 {
		t.Error("expected fuzzy match for 'koncrt'")
	}
}

func TestSearch_CategoryAndTagFilter(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	if err := idx.IndexArticles(testDocs()); err != nil {
		t.Fatalf("index: %v", err)
	}

	result, err := idx.Search(ctx, Params{CategorySlug: "sport", Limit: 10})
	if err != nil {
		t.Fatalf("search by category: %v", err)
	}
	if result.Total != 1 || result.Hits[0].Slug != "derbi-rijeka-hajduk" {
		t.Errorf("category filter hits = %+v", result.Hits)
	}

	result, err = idx.Search(ctx, Params{TagSlug: "glazba", Limit: 10})
	if err != nil {
		t.Fatalf("search by tag: %v", err)
	}
	if result.Total != 1 || result.Hits[0].Slug != "koncert-na-trsatu" {
		t.Errorf("tag filter hits = %+v", result.Hits)
	}
}

func TestSearch_Sorting(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	if err := idx.IndexArticles(testDocs()); err != nil {
		t.Fatalf("index: %v", err)
	}

	recent, err := idx.Search(ctx, Params{SortBy: "recent", Limit: 10})
	if err != nil {
		t.Fatalf("search recent: %v", err)
	}
	if recent.Hits[0].Slug != "derbi-rijeka-hajduk" {
		t.Errorf("recent top = %s, want derbi-rijeka-hajduk", recent.Hits[0].Slug)
	}

	popular, err := idx.Search(ctx, Params{SortBy: "popular", Limit: 10})
	if err != nil {
		t.Fatalf("search popular: %v", err)
	}
	if popular.Hits[0].Slug != "derbi-rijeka-hajduk" {
		t.Errorf("popular top = %s, want derbi-rijeka-hajduk", popular.Hits[0].Slug)
	}
}

func TestDeleteArticle(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	if err := idx.IndexArticles(testDocs()); err != nil {
		t.Fatalf("index: %v", err)
	}

	if err := idx.DeleteArticle("art-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	result, err := idx.Search(ctx, Params{Query: "luke", Limit: 10})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	for _, h := range result.Hits {
		if h.ID == "art-1" {
			t.Error("deleted document still in results")
		}
	}
}

func TestRebuild(t *testing.T) {
	idx := newTestIndex(t)

	if err := idx.IndexArticles(testDocs()); err != nil {
		t.Fatalf("index: %v", err)
	}
	if err := idx.Rebuild(); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	count, err := idx.DocumentCount()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("count after rebuild = %d, want 0", count)
	}

	// The rebuilt index accepts new documents.
	if err := idx.IndexArticle(testDocs()[0]); err != nil {
		t.Fatalf("index after rebuild: %v", err)
	}
}
