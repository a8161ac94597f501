// Package store defines the persistence contract for the portal.
// Implementations live in the sqlite and memory subpackages.
package store

import (
	"context"
	"time"

	"github.com/f246632/rijeka-online/internal/domain"
)

// ArticleFilter restricts an article listing. Zero-valued fields mean
// "no restriction on that dimension".
type ArticleFilter struct {
	// Query matches case-insensitively as a substring of title or excerpt.
	Query string

	Status     domain.ArticleStatus
	CategoryID string
	TagID      string
	AuthorID   string
}

// Store is the persistence interface consumed by the service layer.
// All methods return sentinel errors from this package on failure;
// implementations must never leak driver-specific errors.
type Store interface {
	ArticleStore
	CategoryStore
	TagStore
	UserStore
	SessionStore

	Ping(ctx context.Context) error
	Close() error
}

// ArticleStore persists articles and their lifecycle state.
type ArticleStore interface {
	CreateArticle(ctx context.Context, a *domain.Article) error
	GetArticleByID(ctx context.Context, id string) (*domain.Article, error)
	GetArticleBySlug(ctx context.Context, slug string) (*domain.Article, error)
	UpdateArticle(ctx context.Context, a *domain.Article) error
	SoftDeleteArticle(ctx context.Context, id string) error

	// UpdateArticleStatus performs a compare-and-swap status transition:
	// the row is updated only if its current status still equals from.
	// published_at is overwritten with publishedAt (nil clears it).
	// Returns ErrNotFound if the article does not exist and ErrConflict
	// if it exists but its status no longer matches from.
	UpdateArticleStatus(ctx context.Context, id string, from, to domain.ArticleStatus, publishedAt *time.Time) error

	// IncrementViewCount atomically bumps the view counter of a published
	// article. Views on non-published articles are silently not counted.
	IncrementViewCount(ctx context.Context, id string) error

	// ListArticles returns a deterministically ordered page of articles
	// (created_at descending, ties broken by id ascending) plus the total
	// count of the filtered result set.
	ListArticles(ctx context.Context, filter ArticleFilter, page ListParams) (*Page[*domain.Article], error)

	// ListDueArticles returns scheduled articles whose publication instant
	// is at or before now, oldest first.
	ListDueArticles(ctx context.Context, now time.Time, limit int) ([]*domain.Article, error)

	CountArticlesByCategory(ctx context.Context, categoryID string) (int, error)

	SetArticleTags(ctx context.Context, articleID string, tagIDs []string) error
	GetArticleTags(ctx context.Context, articleID string) ([]string, error)
}

// CategoryStore persists the flat, manually ordered category list.
type CategoryStore interface {
	CreateCategory(ctx context.Context, c *domain.Category) error
	GetCategoryByID(ctx context.Context, id string) (*domain.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	UpdateCategory(ctx context.Context, c *domain.Category) error

	// DeleteCategory hard-deletes a category. The service layer must
	// verify the category is unused first via CountArticlesByCategory.
	DeleteCategory(ctx context.Context, id string) error

	// ReorderCategories assigns display_order 0..n-1 following the given
	// ID order, in a single transaction.
	ReorderCategories(ctx context.Context, orderedIDs []string) error
}

// TagStore persists tags and their article associations.
type TagStore interface {
	CreateTag(ctx context.Context, t *domain.Tag) error
	GetTagByID(ctx context.Context, id string) (*domain.Tag, error)
	GetTagBySlug(ctx context.Context, slug string) (*domain.Tag, error)
	ListTags(ctx context.Context) ([]*domain.Tag, error)

	// FindOrCreateTagBySlug finds an existing tag by slug or creates a
	// new one. Returns (tag, created, error).
	FindOrCreateTagBySlug(ctx context.Context, slug, name string) (*domain.Tag, bool, error)

	// DeleteTag removes a tag and detaches it from all articles.
	DeleteTag(ctx context.Context, id string) error
}

// UserStore persists newsroom accounts.
type UserStore interface {
	CreateUser(ctx context.Context, u *domain.User) error
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	UpdateUser(ctx context.Context, u *domain.User) error
}

// SessionStore persists refresh-token sessions.
type SessionStore interface {
	CreateSession(ctx context.Context, s *domain.Session) error
	GetSessionByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error)
	UpdateSession(ctx context.Context, s *domain.Session) error
	DeleteSession(ctx context.Context, id string) error
	DeleteUserSessions(ctx context.Context, userID string) error

	// DeleteExpiredSessions removes sessions past their expiry and
	// returns the number deleted.
	DeleteExpiredSessions(ctx context.Context) (int, error)
}
