// Package memory provides an in-memory implementation of store.Store for
// tests and early development. It honors the same contract as the sqlite
// store, including CAS transition semantics and soft deletes.
package memory

import (
	"context"
	"sync"

	"github.com/f246632/rijeka-online/internal/domain"
	"github.com/f246632/rijeka-online/internal/store"
)

// Store keeps all entities in maps guarded by a single mutex.
type Store struct {
	mu sync.RWMutex

	articles    map[string]*domain.Article
	categories  map[string]*domain.Category
	tags        map[string]*domain.Tag
	users       map[string]*domain.User
	sessions    map[string]*domain.Session
	articleTags map[string][]string // article ID -> tag IDs
}

// Compile-time interface check.
var _ store.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		articles:    make(map[string]*domain.Article),
		categories:  make(map[string]*domain.Category),
		tags:        make(map[string]*domain.Tag),
		users:       make(map[string]*domain.User),
		sessions:    make(map[string]*domain.Session),
		articleTags: make(map[string][]string),
	}
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() error { return nil }

// cloneArticle returns a deep copy so callers cannot mutate stored state.
func cloneArticle(a *domain.Article) *domain.Article {
	c := *a
	if a.PublishedAt != nil {
		t := *a.PublishedAt
		c.PublishedAt = &t
	}
	if a.DeletedAt != nil {
		t := *a.DeletedAt
		c.DeletedAt = &t
	}
	c.TagIDs = append([]string(nil), a.TagIDs...)
	c.MetaKeywords = append([]string(nil), a.MetaKeywords...)
	return &c
}

func cloneCategory(c *domain.Category) *domain.Category {
	cp := *c
	return &cp
}

func cloneTag(t *domain.Tag) *domain.Tag {
	cp := *t
	return &cp
}

func cloneUser(u *domain.User) *domain.User {
	cp := *u
	if u.DeletedAt != nil {
		t := *u.DeletedAt
		cp.DeletedAt = &t
	}
	return &cp
}

func cloneSession(s *domain.Session) *domain.Session {
	cp := *s
	return &cp
}
