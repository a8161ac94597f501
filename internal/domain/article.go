// Package domain defines the core entities of the news portal: articles,
// categories, tags and users. It stays free of storage and transport concerns.
package domain

import "time"

// ArticleStatus represents where an article sits in its publication lifecycle.
type ArticleStatus string

// Article lifecycle states.
const (
	StatusDraft     ArticleStatus = "DRAFT"
	StatusReview    ArticleStatus = "REVIEW"
	StatusScheduled ArticleStatus = "SCHEDULED"
	StatusPublished ArticleStatus = "PUBLISHED"
	StatusArchived  ArticleStatus = "ARCHIVED"
)

// Valid reports whether s is a known lifecycle state.
func (s ArticleStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusReview, StatusScheduled, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// Article is a single news story, from draft through publication.
type Article struct {
	Timestamps
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Excerpt  string `json:"excerpt"`

	// Content is the rich-text HTML body as authored in the admin console.
	// ContentText is the derived plain-text form used for search indexing
	// and excerpt fallback.
	Content     string `json:"content"`
	ContentText string `json:"content_text,omitempty"`

	FeaturedImage string `json:"featured_image,omitempty"`

	CategoryID string   `json:"category_id"`
	TagIDs     []string `json:"tag_ids,omitempty"`

	MetaTitle       string   `json:"meta_title,omitempty"`
	MetaDescription string   `json:"meta_description,omitempty"`
	MetaKeywords    []string `json:"meta_keywords,omitempty"`

	Status      ArticleStatus `json:"status"`
	PublishedAt *time.Time    `json:"published_at,omitempty"`
	ViewCount   int64         `json:"view_count"`

	// AuthorID is set at creation and never changes afterwards.
	AuthorID string `json:"author_id"`
}

// IsPublished reports whether the article is currently visible to the public.
func (a *Article) IsPublished() bool {
	return a.Status == StatusPublished
}

// IsDue reports whether a scheduled article's publication instant has elapsed.
func (a *Article) IsDue(now time.Time) bool {
	return a.Status == StatusScheduled && a.PublishedAt != nil && !a.PublishedAt.After(now)
}

// EditableBy reports whether the given user may edit this article's content.
// Authors may only touch their own drafts and review submissions; editors and
// admins may edit anything.
func (a *Article) EditableBy(u *User) bool {
	if u.Role == RoleAdmin || u.Role == RoleEditor {
		return true
	}
	if a.AuthorID != u.ID {
		return false
	}
	return a.Status == StatusDraft || a.Status == StatusReview
}

// transitionRule describes one edge of the lifecycle state machine.
type transitionRule struct {
	from, to ArticleStatus
	roles    []Role
}

// transitionTable enumerates every allowed status transition and the roles
// permitted to trigger it. Anything absent here is an invalid transition.
var transitionTable = []transitionRule{
	{StatusDraft, StatusReview, []Role{RoleAuthor, RoleEditor, RoleAdmin}},
	{StatusReview, StatusDraft, []Role{RoleEditor, RoleAdmin}},
	{StatusReview, StatusScheduled, []Role{RoleEditor, RoleAdmin}},
	{StatusReview, StatusPublished, []Role{RoleEditor, RoleAdmin}},
	{StatusScheduled, StatusPublished, []Role{RoleEditor, RoleAdmin}},
	{StatusScheduled, StatusDraft, []Role{RoleEditor, RoleAdmin}},
	{StatusPublished, StatusArchived, []Role{RoleEditor, RoleAdmin}},
	{StatusArchived, StatusPublished, []Role{RoleEditor, RoleAdmin}},
	{StatusDraft, StatusPublished, []Role{RoleEditor, RoleAdmin}},
}

// TransitionAllowed reports whether from → to is an edge of the state machine
// at all, regardless of who asks.
func TransitionAllowed(from, to ArticleStatus) bool {
	for _, r := range transitionTable {
		if r.from == from && r.to == to {
			return true
		}
	}
	return false
}

// TransitionPermitted reports whether the given role may trigger from → to.
// Returns false for edges that do not exist; callers should check
// TransitionAllowed first to distinguish "invalid" from "forbidden".
func TransitionPermitted(from, to ArticleStatus, role Role) bool {
	for _, r := range transitionTable {
		if r.from != from || r.to != to {
			continue
		}
		for _, allowed := range r.roles {
			if allowed == role {
				return true
			}
		}
		return false
	}
	return false
}
