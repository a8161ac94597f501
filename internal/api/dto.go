package api

import (
	"context"
	"time"

	"github.com/f246632/rijeka-online/internal/domain"
	"github.com/f246632/rijeka-online/internal/store"
)

// MessageResponse is a simple confirmation message.
type MessageResponse struct {
	Message string `json:"message" doc:"Confirmation message"`
}

// MessageOutput wraps a confirmation message for Huma.
type MessageOutput struct {
	Body MessageResponse
}

// PageMeta carries pagination metadata on list responses.
type PageMeta struct {
	Total  int  `json:"total" doc:"Total matching items before pagination"`
	Offset int  `json:"offset" doc:"Number of items skipped"`
	Limit  int  `json:"limit" doc:"Page size"`
	More   bool `json:"more" doc:"Whether more items exist past this page"`
}

// ArticleResponse contains article data in API responses.
type ArticleResponse struct {
	ID              string     `json:"id" doc:"Article ID"`
	Slug            string     `json:"slug" doc:"URL-safe slug"`
	Title           string     `json:"title" doc:"Headline"`
	Subtitle        string     `json:"subtitle,omitempty" doc:"Subheadline"`
	Excerpt         string     `json:"excerpt" doc:"Listing excerpt"`
	Content         string     `json:"content,omitempty" doc:"Rich-text HTML body"`
	FeaturedImage   string     `json:"featured_image,omitempty" doc:"Lead image URL"`
	CategoryID      string     `json:"category_id" doc:"Category ID"`
	CategoryName    string     `json:"category_name,omitempty" doc:"Resolved category name"`
	CategorySlug    string     `json:"category_slug,omitempty" doc:"Resolved category slug"`
	CategoryColor   string     `json:"category_color,omitempty" doc:"Resolved category badge color"`
	TagIDs          []string   `json:"tag_ids,omitempty" doc:"Attached tag IDs"`
	MetaTitle       string     `json:"meta_title,omitempty" doc:"SEO title override"`
	MetaDescription string     `json:"meta_description,omitempty" doc:"SEO description"`
	MetaKeywords    []string   `json:"meta_keywords,omitempty" doc:"SEO keywords"`
	Status          string     `json:"status" doc:"Lifecycle status"`
	PublishedAt     *time.Time `json:"published_at,omitempty" doc:"Publication instant"`
	ViewCount       int64      `json:"view_count" doc:"Public view count"`
	AuthorID        string     `json:"author_id" doc:"Author user ID"`
	AuthorName      string     `json:"author_name,omitempty" doc:"Resolved author display name"`
	CreatedAt       time.Time  `json:"created_at" doc:"Creation time"`
	UpdatedAt       time.Time  `json:"updated_at" doc:"Last update time"`
}

// toArticleResponse converts a domain article. includeBody controls whether
// the full HTML content ships; listings leave it out.
func toArticleResponse(a *domain.Article, includeBody bool) ArticleResponse {
	resp := ArticleResponse{
		ID:              a.ID,
		Slug:            a.Slug,
		Title:           a.Title,
		Subtitle:        a.Subtitle,
		Excerpt:         a.Excerpt,
		FeaturedImage:   a.FeaturedImage,
		CategoryID:      a.CategoryID,
		TagIDs:          a.TagIDs,
		MetaTitle:       a.MetaTitle,
		MetaDescription: a.MetaDescription,
		MetaKeywords:    a.MetaKeywords,
		Status:          string(a.Status),
		PublishedAt:     a.PublishedAt,
		ViewCount:       a.ViewCount,
		AuthorID:        a.AuthorID,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
	if includeBody {
		resp.Content = a.Content
	}
	return resp
}

// annotateArticle resolves the author and category display fields in place.
// A dangling reference leaves the fields empty rather than failing the
// response.
func (s *Server) annotateArticle(ctx context.Context, resp *ArticleResponse) {
	if cat, err := s.store.GetCategoryByID(ctx, resp.CategoryID); err == nil {
		resp.CategoryName = cat.Name
		resp.CategorySlug = cat.Slug
		resp.CategoryColor = cat.Color
	}
	if author, err := s.store.GetUserByID(ctx, resp.AuthorID); err == nil {
		resp.AuthorName = author.Name
	}
}

// annotateArticles resolves display fields for a whole listing, caching
// lookups since pages repeat categories and authors.
func (s *Server) annotateArticles(ctx context.Context, articles []ArticleResponse) {
	categories := map[string]*domain.Category{}
	authorNames := map[string]string{}

	for i := range articles {
		resp := &articles[i]

		cat, ok := categories[resp.CategoryID]
		if !ok {
			cat, _ = s.store.GetCategoryByID(ctx, resp.CategoryID)
			categories[resp.CategoryID] = cat
		}
		if cat != nil {
			resp.CategoryName = cat.Name
			resp.CategorySlug = cat.Slug
			resp.CategoryColor = cat.Color
		}

		name, ok := authorNames[resp.AuthorID]
		if !ok {
			if author, err := s.store.GetUserByID(ctx, resp.AuthorID); err == nil {
				name = author.Name
			}
			authorNames[resp.AuthorID] = name
		}
		resp.AuthorName = name
	}
}

// ArticleListResponse contains a page of articles.
type ArticleListResponse struct {
	Articles []ArticleResponse `json:"articles" doc:"Articles on this page"`
	Page     PageMeta          `json:"page" doc:"Pagination metadata"`
}

// toArticleListResponse converts a store page.
func toArticleListResponse(page *store.Page[*domain.Article]) ArticleListResponse {
	articles := make([]ArticleResponse, len(page.Items))
	for i, a := range page.Items {
		articles[i] = toArticleResponse(a, false)
	}
	return ArticleListResponse{
		Articles: articles,
		Page: PageMeta{
			Total:  page.Total,
			Offset: page.Offset,
			Limit:  page.Limit,
			More:   page.HasMore(),
		},
	}
}

// CategoryResponse contains category data in API responses.
type CategoryResponse struct {
	ID           string    `json:"id" doc:"Category ID"`
	Name         string    `json:"name" doc:"Display name"`
	Slug         string    `json:"slug" doc:"URL-safe slug"`
	Description  string    `json:"description,omitempty" doc:"Description"`
	Color        string    `json:"color,omitempty" doc:"Hex color for UI badges"`
	Icon         string    `json:"icon,omitempty" doc:"Icon identifier"`
	DisplayOrder int       `json:"display_order" doc:"Manual presentation order"`
	ArticleCount int       `json:"article_count" doc:"Number of live articles"`
	CreatedAt    time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt    time.Time `json:"updated_at" doc:"Last update time"`
}

func toCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		Slug:         c.Slug,
		Description:  c.Description,
		Color:        c.Color,
		Icon:         c.Icon,
		DisplayOrder: c.DisplayOrder,
		ArticleCount: c.ArticleCount,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// TagResponse contains tag data in API responses.
type TagResponse struct {
	ID        string    `json:"id" doc:"Tag ID"`
	Name      string    `json:"name" doc:"Display name"`
	Slug      string    `json:"slug" doc:"URL-safe slug"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last update time"`
}

func toTagResponse(t *domain.Tag) TagResponse {
	return TagResponse{
		ID:        t.ID,
		Name:      t.Name,
		Slug:      t.Slug,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// UserResponse contains account data in API responses. Never includes the
// password hash.
type UserResponse struct {
	ID          string    `json:"id" doc:"User ID"`
	Name        string    `json:"name" doc:"Display name"`
	Email       string    `json:"email" doc:"Email address"`
	Role        string    `json:"role" doc:"Newsroom role"`
	Bio         string    `json:"bio,omitempty" doc:"Short biography"`
	Avatar      string    `json:"avatar,omitempty" doc:"Avatar image URL"`
	LastLoginAt time.Time `json:"last_login_at,omitzero" doc:"Last login time"`
	CreatedAt   time.Time `json:"created_at" doc:"Creation time"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        string(u.Role),
		Bio:         u.Bio,
		Avatar:      u.Avatar,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
