package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/f246632/rijeka-online/internal/domain"
	"github.com/f246632/rijeka-online/internal/store"
)

func TestCreateGetCategory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := seedCategory(t, s, "gospodarstvo")

	got, err := s.GetCategoryByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.Slug != "gospodarstvo" {
		t.Errorf("slug = %q", got.Slug)
	}

	bySlug, err := s.GetCategoryBySlug(ctx, "gospodarstvo")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if bySlug.ID != c.ID {
		t.Errorf("got %s, want %s", bySlug.ID, c.ID)
	}

	if _, err := s.GetCategoryBySlug(ctx, "nepostojeca"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("missing: err = %v, want ErrNotFound", err)
	}
}

func TestCreateCategory_DuplicateSlug(t *testing.T) {
	s := newTestStore(t)

	seedCategory(t, s, "sport")

	now := time.Now()
	dup := &domain.Category{
		Timestamps: domain.Timestamps{ID: "cat-dup", CreatedAt: now, UpdatedAt: now},
		Name:       "Sport 2",
		Slug:       "sport",
		Color:      "#ff0000",
	}
	err := s.CreateCategory(context.Background(), dup)
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("err = %v, want ErrAlreadyExists", err)
	}
}

func TestListCategories_OrderAndCounts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	author := seedUser(t, s, domain.RoleAuthor)

	now := time.Now()
	mk := func(id, slug string, order int) {
		c := &domain.Category{
			Timestamps:   domain.Timestamps{ID: id, CreatedAt: now, UpdatedAt: now},
			Name:         slug,
			Slug:         slug,
			Color:        "#333333",
			DisplayOrder: order,
		}
		if err := s.CreateCategory(ctx, c); err != nil {
			t.Fatalf("create %s: %v", slug, err)
		}
	}
	mk("cat-z", "zadnja", 2)
	mk("cat-p", "prva", 0)
	mk("cat-s", "srednja", 1)

	seedArticle(t, s, "clanak-1", domain.StatusPublished, "cat-p", author.ID)
	seedArticle(t, s, "clanak-2", domain.StatusDraft, "cat-p", author.ID)

	cats, err := s.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cats) != 3 {
		t.Fatalf("len = %d, want 3", len(cats))
	}
	want := []string{"prva", "srednja", "zadnja"}
	for i, c := range cats {
		if c.Slug != want[i] {
			t.Errorf("cats[%d] = %s, want %s", i, c.Slug, want[i])
		}
	}
	if cats[0].ArticleCount != 2 {
		t.Errorf("prva article_count = %d, want 2", cats[0].ArticleCount)
	}
	if cats[1].ArticleCount != 0 {
		t.Errorf("srednja article_count = %d, want 0", cats[1].ArticleCount)
	}
}

func TestUpdateCategory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := seedCategory(t, s, "kultura")

	c.Name = "Kultura i scena"
	c.Color = "#aa00aa"
	c.Touch()
	if err := s.UpdateCategory(ctx, c); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := s.GetCategoryByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Kultura i scena" || got.Color != "#aa00aa" {
		t.Errorf("got %+v", got)
	}

	missing := &domain.Category{Timestamps: domain.Timestamps{ID: "cat-missing"}, Slug: "x", Color: "#000000"}
	if err := s.UpdateCategory(ctx, missing); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("missing: err = %v, want ErrNotFound", err)
	}
}

func TestDeleteCategory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := seedCategory(t, s, "privremena")

	if err := s.DeleteCategory(ctx, c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetCategoryByID(ctx, c.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("get deleted: err = %v, want ErrNotFound", err)
	}
	if err := s.DeleteCategory(ctx, c.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("double delete: err = %v, want ErrNotFound", err)
	}
}

func TestReorderCategories(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := seedCategory(t, s, "a")
	b := seedCategory(t, s, "b")
	c := seedCategory(t, s, "c")

	if err := s.ReorderCategories(ctx, []string{c.ID, a.ID, b.ID}); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	cats, err := s.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"c", "a", "b"}
	for i, cat := range cats {
		if cat.Slug != want[i] {
			t.Errorf("cats[%d] = %s, want %s", i, cat.Slug, want[i])
		}
	}

	// An unknown ID rolls the whole reorder back.
	if err := s.ReorderCategories(ctx, []string{a.ID, "cat-missing"}); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("reorder with missing: err = %v, want ErrNotFound", err)
	}
	cats, err = s.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list after failed reorder: %v", err)
	}
	if cats[0].Slug != "c" {
		t.Errorf("order changed despite rollback: first = %s", cats[0].Slug)
	}
}
