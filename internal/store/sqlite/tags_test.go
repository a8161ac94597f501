package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/f246632/rijeka-online/internal/domain"
	"github.com/f246632/rijeka-online/internal/store"
)

func TestFindOrCreateTagBySlug(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tag, created, err := s.FindOrCreateTagBySlug(ctx, "gradska-uprava", "Gradska uprava")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !created {
		t.Error("expected created=true on first call")
	}
	if tag.Slug != "gradska-uprava" || tag.Name != "Gradska uprava" {
		t.Errorf("tag = %+v", tag)
	}

	// Same slug returns the existing tag, idempotently.
	again, created, err := s.FindOrCreateTagBySlug(ctx, "gradska-uprava", "Gradska Uprava (drugi naziv)")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if created {
		t.Error("expected created=false on second call")
	}
	if again.ID != tag.ID {
		t.Errorf("id = %s, want %s", again.ID, tag.ID)
	}
	if again.Name != "Gradska uprava" {
		t.Errorf("existing name must win, got %q", again.Name)
	}
}

func TestListTags(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, slug := range []string{"rijeka", "promet", "advent"} {
		if _, _, err := s.FindOrCreateTagBySlug(ctx, slug, slug); err != nil {
			t.Fatalf("create %s: %v", slug, err)
		}
	}

	tags, err := s.ListTags(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"advent", "promet", "rijeka"}
	if len(tags) != len(want) {
		t.Fatalf("len = %d, want %d", len(tags), len(want))
	}
	for i, tag := range tags {
		if tag.Slug != want[i] {
			t.Errorf("tags[%d] = %s, want %s", i, tag.Slug, want[i])
		}
	}
}

func TestDeleteTag_Detaches(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	author := seedUser(t, s, domain.RoleAuthor)
	cat := seedCategory(t, s, "promet")
	a := seedArticle(t, s, "novi-most", domain.StatusDraft, cat.ID, author.ID)

	tag, _, err := s.FindOrCreateTagBySlug(ctx, "mostovi", "Mostovi")
	if err != nil {
		t.Fatalf("tag: %v", err)
	}
	if err := s.SetArticleTags(ctx, a.ID, []string{tag.ID}); err != nil {
		t.Fatalf("set tags: %v", err)
	}

	if err := s.DeleteTag(ctx, tag.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// The association is gone; the article survives.
	tagIDs, err := s.GetArticleTags(ctx, a.ID)
	if err != nil {
		t.Fatalf("get tags: %v", err)
	}
	if len(tagIDs) != 0 {
		t.Errorf("tag ids = %v, want empty", tagIDs)
	}
	if _, err := s.GetArticleByID(ctx, a.ID); err != nil {
		t.Fatalf("article should survive tag deletion: %v", err)
	}

	if err := s.DeleteTag(ctx, tag.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("double delete: err = %v, want ErrNotFound", err)
	}
}
