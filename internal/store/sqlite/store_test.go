package sqlite

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/f246632/rijeka-online/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

var seedSeq int

// seedUser inserts a user fixture and returns it.
func seedUser(t *testing.T, s *Store, role domain.Role) *domain.User {
	t.Helper()
	seedSeq++
	now := time.Now()
	u := &domain.User{
		Timestamps: domain.Timestamps{
			ID:        fmt.Sprintf("user-%d", seedSeq),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         fmt.Sprintf("User %d", seedSeq),
		Email:        fmt.Sprintf("user%d@rijeka.online", seedSeq),
		PasswordHash: "$argon2id$fake",
		Role:         role,
	}
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

// seedCategory inserts a category fixture and returns it.
func seedCategory(t *testing.T, s *Store, slug string) *domain.Category {
	t.Helper()
	seedSeq++
	now := time.Now()
	c := &domain.Category{
		Timestamps: domain.Timestamps{
			ID:        fmt.Sprintf("cat-%d", seedSeq),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:  slug,
		Slug:  slug,
		Color: "#1e90ff",
	}
	if err := s.CreateCategory(context.Background(), c); err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return c
}

// seedArticle inserts an article fixture with the given slug and status.
func seedArticle(t *testing.T, s *Store, slug string, status domain.ArticleStatus, categoryID, authorID string) *domain.Article {
	t.Helper()
	seedSeq++
	now := time.Now()
	a := &domain.Article{
		Timestamps: domain.Timestamps{
			ID:        fmt.Sprintf("art-%d", seedSeq),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Slug:       slug,
		Title:      "Naslov " + slug,
		Excerpt:    "Sažetak " + slug,
		Content:    "<p>Sadržaj</p>",
		CategoryID: categoryID,
		Status:     status,
		AuthorID:   authorID,
	}
	if status == domain.StatusPublished {
		a.PublishedAt = &now
	}
	if err := s.CreateArticle(context.Background(), a); err != nil {
		t.Fatalf("seed article: %v", err)
	}
	return a
}

func TestOpen(t *testing.T) {
	s := newTestStore(t)

	// Verify WAL mode is set.
	var journalMode string
	err := s.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode)
	if err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("expected wal, got %s", journalMode)
	}

	// Verify foreign keys are enabled.
	var fk int
	err = s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk)
	if err != nil {
		t.Fatalf("query foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("expected foreign_keys=1, got %d", fk)
	}

	// Verify tables exist.
	tables := []string{"users", "sessions", "categories", "tags", "articles", "article_tags"}
	for _, table := range tables {
		var name string
		err := s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}
}

func TestOpenClose(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	// Re-open should work (schema is idempotent).
	s2, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("re-open store: %v", err)
	}
	defer s2.Close()
}

func TestPing(t *testing.T) {
	s := newTestStore(t)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
