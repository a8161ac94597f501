package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/f246632/rijeka-online/internal/content"
	"github.com/f246632/rijeka-online/internal/domain"
	domainerrors "github.com/f246632/rijeka-online/internal/errors"
	"github.com/f246632/rijeka-online/internal/id"
	"github.com/f246632/rijeka-online/internal/slug"
	"github.com/f246632/rijeka-online/internal/store"
	"github.com/f246632/rijeka-online/internal/validation"
)

// excerptMaxLength bounds auto-derived excerpts.
const excerptMaxLength = 300

// slugSuffixLimit bounds the collision suffix search. A title colliding
// with a thousand live articles is an operator problem, not a loop.
const slugSuffixLimit = 1000

// ArticleService owns the article lifecycle: creation, editing, status
// transitions, view counting and deletion.
type ArticleService struct {
	store     store.Store
	validator *validation.Validator
	search    *SearchService
	logger    *slog.Logger
}

// NewArticleService creates a new article service.
func NewArticleService(st store.Store, validator *validation.Validator, search *SearchService, logger *slog.Logger) *ArticleService {
	return &ArticleService{
		store:     st,
		validator: validator,
		search:    search,
		logger:    logger,
	}
}

// CreateArticleRequest contains a new article submission.
type CreateArticleRequest struct {
	Title    string `json:"title" validate:"required,min=3,max=200"`
	Subtitle string `json:"subtitle" validate:"max=300"`
	Excerpt  string `json:"excerpt" validate:"max=500"`
	Content  string `json:"content" validate:"required"`

	// Slug is optional; when empty it is derived from the title.
	Slug string `json:"slug" validate:"omitempty,slug,max=200"`

	// Status lets publishers skip the draft stage. Empty means DRAFT;
	// PUBLISHED is gated by the same permission as publishing a draft.
	Status string `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED"`

	FeaturedImage string   `json:"featured_image" validate:"omitempty,url"`
	CategoryID    string   `json:"category_id" validate:"required"`
	TagIDs        []string `json:"tag_ids" validate:"max=20"`

	MetaTitle       string   `json:"meta_title" validate:"max=200"`
	MetaDescription string   `json:"meta_description" validate:"max=300"`
	MetaKeywords    []string `json:"meta_keywords" validate:"max=20,dive,max=50"`
}

// UpdateArticleRequest contains an edit to an existing article's content.
// Status and view count are never edited through this path.
type UpdateArticleRequest struct {
	Title    string `json:"title" validate:"required,min=3,max=200"`
	Subtitle string `json:"subtitle" validate:"max=300"`
	Excerpt  string `json:"excerpt" validate:"max=500"`
	Content  string `json:"content" validate:"required"`

	Slug string `json:"slug" validate:"omitempty,slug,max=200"`

	FeaturedImage string   `json:"featured_image" validate:"omitempty,url"`
	CategoryID    string   `json:"category_id" validate:"required"`
	TagIDs        []string `json:"tag_ids" validate:"max=20"`

	MetaTitle       string   `json:"meta_title" validate:"max=200"`
	MetaDescription string   `json:"meta_description" validate:"max=300"`
	MetaKeywords    []string `json:"meta_keywords" validate:"max=20,dive,max=50"`
}

// Create validates a submission, resolves its references, assigns a unique
// slug and persists the article, owned by the actor. New articles start as
// DRAFT unless a publisher submits them directly as PUBLISHED, in which
// case publishedAt is stamped with the creation instant.
func (s *ArticleService) Create(ctx context.Context, req CreateArticleRequest, actor domain.Actor) (*domain.Article, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, req.CategoryID, req.TagIDs); err != nil {
		return nil, err
	}

	status := domain.StatusDraft
	if req.Status != "" {
		status = domain.ArticleStatus(req.Status)
	}
	var publishedAt *time.Time
	if status == domain.StatusPublished {
		if !domain.TransitionPermitted(domain.StatusDraft, domain.StatusPublished, actor.Role) {
			return nil, domainerrors.Forbiddenf("role %s may not create published articles", actor.Role)
		}
		now := time.Now()
		publishedAt = &now
	}

	articleID, err := id.Generate("art")
	if err != nil {
		return nil, fmt.Errorf("generate article id: %w", err)
	}

	plainText := content.PlainText(req.Content)
	excerpt := req.Excerpt
	if excerpt == "" {
		excerpt = content.Summarize(plainText, excerptMaxLength)
	}

	a := &domain.Article{
		Timestamps:      domain.Timestamps{ID: articleID},
		Title:           req.Title,
		Subtitle:        req.Subtitle,
		Excerpt:         excerpt,
		Content:         req.Content,
		ContentText:     plainText,
		FeaturedImage:   req.FeaturedImage,
		CategoryID:      req.CategoryID,
		TagIDs:          req.TagIDs,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		MetaKeywords:    dedupeKeywords(req.MetaKeywords),
		Status:          status,
		PublishedAt:     publishedAt,
		AuthorID:        actor.UserID,
	}
	a.InitTimestamps()

	if req.Slug != "" {
		// Explicit slug: a collision is the caller's error.
		a.Slug = req.Slug
		if err := s.store.CreateArticle(ctx, a); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return nil, domainerrors.DuplicateSlug(req.Slug)
			}
			return nil, mapArticleErr(err)
		}
	} else if err := s.createWithGeneratedSlug(ctx, a); err != nil {
		return nil, err
	}

	if a.IsPublished() {
		s.indexArticle(ctx, a)
	}

	s.logger.Info("article created",
		"article_id", a.ID,
		"slug", a.Slug,
		"status", a.Status,
		"author_id", actor.UserID,
	)

	return a, nil
}

// dedupeKeywords drops repeated meta keywords, case-insensitively, keeping
// first occurrences in order. Blank entries are dropped too.
func dedupeKeywords(keywords []string) []string {
	if len(keywords) == 0 {
		return keywords
	}
	seen := make(map[string]bool, len(keywords))
	out := keywords[:0:0]
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		key := strings.ToLower(kw)
		if kw == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, kw)
	}
	return out
}

// createWithGeneratedSlug derives the slug from the title and retries with
// numeric suffixes (-2, -3, ...) until the insert wins. Retrying on the
// unique constraint rather than pre-checking keeps concurrent creates safe.
func (s *ArticleService) createWithGeneratedSlug(ctx context.Context, a *domain.Article) error {
	base := slug.Make(a.Title)
	if base == "" {
		return domainerrors.Validation("title produces an empty slug")
	}

	candidate := base
	for suffix := 2; suffix <= slugSuffixLimit; suffix++ {
		a.Slug = candidate
		err := s.store.CreateArticle(ctx, a)
		if err == nil {
			return nil
		}
		if !errors.Is(err, store.ErrAlreadyExists) {
			return mapArticleErr(err)
		}
		candidate = fmt.Sprintf("%s-%d", base, suffix)
	}
	return domainerrors.Conflict("could not find a free slug for title")
}

// Get returns an article by ID.
func (s *ArticleService) Get(ctx context.Context, articleID string) (*domain.Article, error) {
	a, err := s.store.GetArticleByID(ctx, articleID)
	if err != nil {
		return nil, mapArticleErr(err)
	}
	return a, nil
}

// GetBySlug returns an article by slug. When the article is scheduled and
// its publication instant has passed, it is promoted to PUBLISHED on the
// way out, so a public read never shows a stale scheduled state even if
// the background sweeper hasn't run yet.
func (s *ArticleService) GetBySlug(ctx context.Context, articleSlug string) (*domain.Article, error) {
	a, err := s.store.GetArticleBySlug(ctx, articleSlug)
	if err != nil {
		return nil, mapArticleErr(err)
	}

	if a.IsDue(time.Now()) {
		if promoted, err := s.promoteDue(ctx, a); err == nil {
			return promoted, nil
		}
		// Promotion lost a race or failed; serve the stored state.
	}

	return a, nil
}

// promoteDue publishes a due scheduled article through the same CAS path
// as an explicit transition.
func (s *ArticleService) promoteDue(ctx context.Context, a *domain.Article) (*domain.Article, error) {
	err := s.store.UpdateArticleStatus(ctx, a.ID, domain.StatusScheduled, domain.StatusPublished, a.PublishedAt)
	if err != nil {
		return nil, mapArticleErr(err)
	}

	promoted, err := s.store.GetArticleByID(ctx, a.ID)
	if err != nil {
		return nil, mapArticleErr(err)
	}

	s.indexArticle(ctx, promoted)
	s.logger.Info("scheduled article published on read", "article_id", a.ID, "slug", a.Slug)
	return promoted, nil
}

// Update edits an article's content. Authors may only edit their own
// drafts and review submissions; editors and admins may edit anything.
func (s *ArticleService) Update(ctx context.Context, articleID string, req UpdateArticleRequest, actor domain.Actor) (*domain.Article, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	a, err := s.store.GetArticleByID(ctx, articleID)
	if err != nil {
		return nil, mapArticleErr(err)
	}

	user := &domain.User{Timestamps: domain.Timestamps{ID: actor.UserID}, Role: actor.Role}
	if !a.EditableBy(user) {
		return nil, domainerrors.Forbidden("you may not edit this article")
	}

	if err := s.checkReferences(ctx, req.CategoryID, req.TagIDs); err != nil {
		return nil, err
	}

	plainText := content.PlainText(req.Content)
	excerpt := req.Excerpt
	if excerpt == "" {
		excerpt = content.Summarize(plainText, excerptMaxLength)
	}

	a.Title = req.Title
	a.Subtitle = req.Subtitle
	a.Excerpt = excerpt
	a.Content = req.Content
	a.ContentText = plainText
	a.FeaturedImage = req.FeaturedImage
	a.CategoryID = req.CategoryID
	a.TagIDs = req.TagIDs
	a.MetaTitle = req.MetaTitle
	a.MetaDescription = req.MetaDescription
	a.MetaKeywords = dedupeKeywords(req.MetaKeywords)
	if req.Slug != "" {
		a.Slug = req.Slug
	}
	a.Touch()

	if err := s.store.UpdateArticle(ctx, a); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.DuplicateSlug(a.Slug)
		}
		return nil, mapArticleErr(err)
	}

	if a.IsPublished() {
		s.indexArticle(ctx, a)
	}

	s.logger.Info("article updated", "article_id", a.ID, "editor_id", actor.UserID)

	return a, nil
}

// Transition moves an article along the lifecycle state machine.
// scheduledAt is required for transitions into SCHEDULED and ignored
// otherwise. The first arrival in PUBLISHED stamps publishedAt; later
// republications keep the original instant.
func (s *ArticleService) Transition(ctx context.Context, articleID string, target domain.ArticleStatus, scheduledAt *time.Time, actor domain.Actor) (*domain.Article, error) {
	if !target.Valid() {
		return nil, domainerrors.Validation(fmt.Sprintf("unknown status %q", target))
	}

	a, err := s.store.GetArticleByID(ctx, articleID)
	if err != nil {
		return nil, mapArticleErr(err)
	}

	from := a.Status
	if !domain.TransitionAllowed(from, target) {
		return nil, domainerrors.InvalidTransition(string(from), string(target))
	}
	if !domain.TransitionPermitted(from, target, actor.Role) {
		return nil, domainerrors.Forbiddenf("role %s may not transition %s to %s", actor.Role, from, target)
	}

	publishedAt, err := s.nextPublishedAt(a, target, scheduledAt)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateArticleStatus(ctx, articleID, from, target, publishedAt); err != nil {
		return nil, mapArticleErr(err)
	}

	updated, err := s.store.GetArticleByID(ctx, articleID)
	if err != nil {
		return nil, mapArticleErr(err)
	}

	// Keep the search index in step with public visibility.
	if target == domain.StatusPublished {
		s.indexArticle(ctx, updated)
	} else if from == domain.StatusPublished {
		s.deindexArticle(updated.ID)
	}

	s.logger.Info("article transitioned",
		"article_id", articleID,
		"from", from,
		"to", target,
		"actor_id", actor.UserID,
		"actor_role", actor.Role,
	)

	return updated, nil
}

// nextPublishedAt computes the published_at value a transition must leave
// behind. The rules:
//   - into SCHEDULED: a future scheduledAt is required and stored.
//   - into PUBLISHED: the existing instant is kept if one was ever set
//     (scheduled instant or original publication); otherwise now.
//   - SCHEDULED back to DRAFT: the pending instant is cleared.
//   - anything else keeps the current value.
func (s *ArticleService) nextPublishedAt(a *domain.Article, target domain.ArticleStatus, scheduledAt *time.Time) (*time.Time, error) {
	switch target {
	case domain.StatusScheduled:
		if scheduledAt == nil {
			return nil, domainerrors.Validation("scheduling requires a publication instant")
		}
		if !scheduledAt.After(time.Now()) {
			return nil, domainerrors.Validation("scheduled publication must be in the future")
		}
		t := *scheduledAt
		return &t, nil
	case domain.StatusPublished:
		if a.PublishedAt != nil {
			return a.PublishedAt, nil
		}
		now := time.Now()
		return &now, nil
	case domain.StatusDraft:
		if a.Status == domain.StatusScheduled {
			return nil, nil
		}
		return a.PublishedAt, nil
	default:
		return a.PublishedAt, nil
	}
}

// ExportMarkdown returns an article together with its body converted to
// Markdown, for offline editing and syndication.
func (s *ArticleService) ExportMarkdown(ctx context.Context, articleID string) (*domain.Article, string, error) {
	a, err := s.store.GetArticleByID(ctx, articleID)
	if err != nil {
		return nil, "", mapArticleErr(err)
	}
	return a, content.Markdown(a.Content), nil
}

// RecordView bumps the view counter of a published article. Views on
// non-published articles are dropped silently.
func (s *ArticleService) RecordView(ctx context.Context, articleID string) error {
	if err := s.store.IncrementViewCount(ctx, articleID); err != nil {
		return mapArticleErr(err)
	}
	return nil
}

// Delete soft-deletes an article, freeing its slug. Only editors and
// admins may delete; the article disappears from the index if published.
func (s *ArticleService) Delete(ctx context.Context, articleID string, actor domain.Actor) error {
	if !actor.Role.Valid() || actor.Role == domain.RoleAuthor {
		return domainerrors.Forbidden("only editors and admins may delete articles")
	}

	a, err := s.store.GetArticleByID(ctx, articleID)
	if err != nil {
		return mapArticleErr(err)
	}

	if err := s.store.SoftDeleteArticle(ctx, articleID); err != nil {
		return mapArticleErr(err)
	}

	if a.IsPublished() {
		s.deindexArticle(articleID)
	}

	s.logger.Info("article deleted", "article_id", articleID, "actor_id", actor.UserID)
	return nil
}

// checkReferences verifies the category and every tag exist.
func (s *ArticleService) checkReferences(ctx context.Context, categoryID string, tagIDs []string) error {
	if _, err := s.store.GetCategoryByID(ctx, categoryID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.ReferenceNotFoundf("category %s does not exist", categoryID)
		}
		return mapCategoryErr(err)
	}
	for _, tagID := range tagIDs {
		if _, err := s.store.GetTagByID(ctx, tagID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domainerrors.ReferenceNotFoundf("tag %s does not exist", tagID)
			}
			return mapTagErr(err)
		}
	}
	return nil
}

// indexArticle updates the search index, best effort.
func (s *ArticleService) indexArticle(ctx context.Context, a *domain.Article) {
	if s.search == nil {
		return
	}
	if err := s.search.IndexArticle(ctx, a); err != nil {
		s.logger.Warn("failed to index article", "article_id", a.ID, "error", err)
	}
}

// deindexArticle removes an article from the search index, best effort.
func (s *ArticleService) deindexArticle(articleID string) {
	if s.search == nil {
		return
	}
	if err := s.search.RemoveArticle(articleID); err != nil {
		s.logger.Warn("failed to deindex article", "article_id", articleID, "error", err)
	}
}
