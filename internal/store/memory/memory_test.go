package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/f246632/rijeka-online/internal/domain"
	"github.com/f246632/rijeka-online/internal/store"
)

func seedFixtures(t *testing.T, s *Store) (*domain.User, *domain.Category) {
	t.Helper()
	ctx := context.Background()
	now := time.Now()

	u := &domain.User{
		Timestamps:   domain.Timestamps{ID: "user-1", CreatedAt: now, UpdatedAt: now},
		Name:         "Ana",
		Email:        "ana@rijeka.online",
		PasswordHash: "$argon2id$fake",
		Role:         domain.RoleAuthor,
	}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	c := &domain.Category{
		Timestamps: domain.Timestamps{ID: "cat-1", CreatedAt: now, UpdatedAt: now},
		Name:       "Vijesti",
		Slug:       "vijesti",
		Color:      "#1e90ff",
	}
	if err := s.CreateCategory(ctx, c); err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return u, c
}

func newArticle(id, slug string, status domain.ArticleStatus, createdAt time.Time) *domain.Article {
	return &domain.Article{
		Timestamps: domain.Timestamps{ID: id, CreatedAt: createdAt, UpdatedAt: createdAt},
		Slug:       slug,
		Title:      "Naslov " + slug,
		Excerpt:    "Sažetak " + slug,
		Content:    "<p>x</p>",
		CategoryID: "cat-1",
		Status:     status,
		AuthorID:   "user-1",
	}
}

func TestArticleLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()
	seedFixtures(t, s)

	a := newArticle("art-1", "prvi-clanak", domain.StatusDraft, time.Now())
	if err := s.CreateArticle(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Duplicate slug rejected.
	dup := newArticle("art-2", "prvi-clanak", domain.StatusDraft, time.Now())
	if err := s.CreateArticle(ctx, dup); !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("dup: err = %v, want ErrAlreadyExists", err)
	}

	// CAS transition.
	now := time.Now()
	if err := s.UpdateArticleStatus(ctx, "art-1", domain.StatusDraft, domain.StatusPublished, &now); err != nil {
		t.Fatalf("transition: %v", err)
	}
	if err := s.UpdateArticleStatus(ctx, "art-1", domain.StatusDraft, domain.StatusPublished, &now); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("stale CAS: err = %v, want ErrConflict", err)
	}

	// Views counted only when published.
	if err := s.IncrementViewCount(ctx, "art-1"); err != nil {
		t.Fatalf("increment: %v", err)
	}
	got, err := s.GetArticleByID(ctx, "art-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ViewCount != 1 {
		t.Errorf("view_count = %d, want 1", got.ViewCount)
	}

	// Soft delete frees the slug.
	if err := s.SoftDeleteArticle(ctx, "art-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.CreateArticle(ctx, newArticle("art-3", "prvi-clanak", domain.StatusDraft, time.Now())); err != nil {
		t.Fatalf("reuse slug: %v", err)
	}
}

func TestConcurrentViews(t *testing.T) {
	s := New()
	ctx := context.Background()
	seedFixtures(t, s)

	a := newArticle("art-v", "gledani", domain.StatusPublished, time.Now())
	now := time.Now()
	a.PublishedAt = &now
	if err := s.CreateArticle(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}

	const viewers = 50
	var wg sync.WaitGroup
	for range viewers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.IncrementViewCount(ctx, "art-v"); err != nil {
				t.Errorf("increment: %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := s.GetArticleByID(ctx, "art-v")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ViewCount != viewers {
		t.Errorf("view_count = %d, want %d", got.ViewCount, viewers)
	}
}

func TestConcurrentStatusCAS(t *testing.T) {
	s := New()
	ctx := context.Background()
	seedFixtures(t, s)

	a := newArticle("art-race", "utrka", domain.StatusDraft, time.Now())
	if err := s.CreateArticle(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Two racers attempt the same transition; exactly one may win.
	now := time.Now()
	results := make([]error, 2)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = s.UpdateArticleStatus(ctx, "art-race", domain.StatusDraft, domain.StatusPublished, &now)
		}()
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, store.ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || conflicts != 1 {
		t.Fatalf("wins = %d, conflicts = %d; want exactly one of each", wins, conflicts)
	}
}

func TestListArticles_OrderFiltersTotal(t *testing.T) {
	s := New()
	ctx := context.Background()
	seedFixtures(t, s)

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	for i, slug := range []string{"a", "b", "c"} {
		a := newArticle("art-"+slug, slug, domain.StatusDraft, base.Add(time.Duration(i)*time.Hour))
		if err := s.CreateArticle(ctx, a); err != nil {
			t.Fatalf("create %s: %v", slug, err)
		}
	}

	page, err := s.ListArticles(ctx, store.ArticleFilter{}, store.ListParams{Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 3 || len(page.Items) != 2 {
		t.Fatalf("total = %d items = %d, want 3/2", page.Total, len(page.Items))
	}
	if page.Items[0].Slug != "c" || page.Items[1].Slug != "b" {
		t.Errorf("order = %s, %s; want c, b", page.Items[0].Slug, page.Items[1].Slug)
	}

	// Substring query.
	page, err = s.ListArticles(ctx, store.ArticleFilter{Query: "NASLOV A"}, store.ListParams{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if page.Total != 1 || page.Items[0].Slug != "a" {
		t.Errorf("query match = %+v", page.Items)
	}
}

func TestTagsAndCategories(t *testing.T) {
	s := New()
	ctx := context.Background()
	seedFixtures(t, s)

	tag, created, err := s.FindOrCreateTagBySlug(ctx, "advent", "Advent")
	if err != nil || !created {
		t.Fatalf("create tag: %v created=%v", err, created)
	}
	again, created, err := s.FindOrCreateTagBySlug(ctx, "advent", "Advent 2026")
	if err != nil || created {
		t.Fatalf("find tag: %v created=%v", err, created)
	}
	if again.ID != tag.ID {
		t.Errorf("idempotent create returned different tag")
	}

	a := newArticle("art-t", "advent-program", domain.StatusDraft, time.Now())
	a.TagIDs = []string{tag.ID}
	if err := s.CreateArticle(ctx, a); err != nil {
		t.Fatalf("create article: %v", err)
	}

	if err := s.DeleteTag(ctx, tag.ID); err != nil {
		t.Fatalf("delete tag: %v", err)
	}
	tagIDs, err := s.GetArticleTags(ctx, "art-t")
	if err != nil {
		t.Fatalf("get tags: %v", err)
	}
	if len(tagIDs) != 0 {
		t.Errorf("tag should be detached, got %v", tagIDs)
	}

	// Category counts include only live articles.
	cats, err := s.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(cats) != 1 || cats[0].ArticleCount != 1 {
		t.Errorf("cats = %+v", cats)
	}
}

func TestSessions(t *testing.T) {
	s := New()
	ctx := context.Background()
	u, _ := seedFixtures(t, s)

	sess := &domain.Session{
		ID:               "sess-1",
		UserID:           u.ID,
		RefreshTokenHash: "hash-1",
		ExpiresAt:        time.Now().Add(-time.Minute),
		CreatedAt:        time.Now(),
		LastSeenAt:       time.Now(),
	}
	if err := s.CreateSession(ctx, sess); err != nil {
		t.Fatalf("create session: %v", err)
	}

	got, err := s.GetSessionByTokenHash(ctx, "hash-1")
	if err != nil || got.ID != "sess-1" {
		t.Fatalf("get session: %v %+v", err, got)
	}

	n, err := s.DeleteExpiredSessions(ctx)
	if err != nil || n != 1 {
		t.Fatalf("delete expired: %v n=%d", err, n)
	}
	if _, err := s.GetSessionByTokenHash(ctx, "hash-1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expired session should be gone, err = %v", err)
	}
}
