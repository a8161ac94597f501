package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/f246632/rijeka-online/internal/domain"
	"github.com/f246632/rijeka-online/internal/store"
)

// articleColumns is the ordered list of columns selected in article queries.
// Must match the scan order in scanArticle.
const articleColumns = `id, created_at, updated_at, deleted_at, slug, title, subtitle,
	excerpt, content, content_text, featured_image, category_id,
	meta_title, meta_description, meta_keywords,
	status, published_at, view_count, author_id`

// scanArticle scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.Article. TagIDs are not populated; callers attach them separately.
func scanArticle(scanner interface{ Scan(dest ...any) error }) (*domain.Article, error) {
	var a domain.Article

	var (
		createdAt   string
		updatedAt   string
		deletedAt   sql.NullString
		subtitle    sql.NullString
		contentText sql.NullString
		featured    sql.NullString
		metaTitle   sql.NullString
		metaDesc    sql.NullString
		metaKw      sql.NullString
		status      string
		publishedAt sql.NullString
	)

	err := scanner.Scan(
		&a.ID,
		&createdAt,
		&updatedAt,
		&deletedAt,
		&a.Slug,
		&a.Title,
		&subtitle,
		&a.Excerpt,
		&a.Content,
		&contentText,
		&featured,
		&a.CategoryID,
		&metaTitle,
		&metaDesc,
		&metaKw,
		&status,
		&publishedAt,
		&a.ViewCount,
		&a.AuthorID,
	)
	if err != nil {
		return nil, err
	}

	a.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	a.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	a.DeletedAt, err = parseNullableTime(deletedAt)
	if err != nil {
		return nil, err
	}
	a.PublishedAt, err = parseNullableTime(publishedAt)
	if err != nil {
		return nil, err
	}

	if subtitle.Valid {
		a.Subtitle = subtitle.String
	}
	if contentText.Valid {
		a.ContentText = contentText.String
	}
	if featured.Valid {
		a.FeaturedImage = featured.String
	}
	if metaTitle.Valid {
		a.MetaTitle = metaTitle.String
	}
	if metaDesc.Valid {
		a.MetaDescription = metaDesc.String
	}
	a.MetaKeywords = splitKeywords(metaKw)

	a.Status = domain.ArticleStatus(status)

	return &a, nil
}

// CreateArticle inserts a new article into the database.
// Returns store.ErrAlreadyExists on duplicate slug.
func (s *Store) CreateArticle(ctx context.Context, a *domain.Article) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO articles (
			id, created_at, updated_at, deleted_at, slug, title, subtitle,
			excerpt, content, content_text, featured_image, category_id,
			meta_title, meta_description, meta_keywords,
			status, published_at, view_count, author_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID,
		formatTime(a.CreatedAt),
		formatTime(a.UpdatedAt),
		nullTimeString(a.DeletedAt),
		a.Slug,
		a.Title,
		nullString(a.Subtitle),
		a.Excerpt,
		a.Content,
		nullString(a.ContentText),
		nullString(a.FeaturedImage),
		a.CategoryID,
		nullString(a.MetaTitle),
		nullString(a.MetaDescription),
		joinKeywords(a.MetaKeywords),
		string(a.Status),
		nullTimeString(a.PublishedAt),
		a.ViewCount,
		a.AuthorID,
	)
	if err != nil {
		return mapErr(err)
	}

	if len(a.TagIDs) > 0 {
		return s.SetArticleTags(ctx, a.ID, a.TagIDs)
	}
	return nil
}

// GetArticleByID retrieves a live article by its ID, tags attached.
// Returns store.ErrNotFound if the article does not exist or is soft-deleted.
func (s *Store) GetArticleByID(ctx context.Context, id string) (*domain.Article, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE id = ? AND deleted_at IS NULL`, id)

	a, err := scanArticle(row)
	if err != nil {
		return nil, mapErr(err)
	}
	if err := s.attachTags(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// GetArticleBySlug retrieves a live article by its slug, tags attached.
func (s *Store) GetArticleBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE slug = ? AND deleted_at IS NULL`, slug)

	a, err := scanArticle(row)
	if err != nil {
		return nil, mapErr(err)
	}
	if err := s.attachTags(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateArticle performs a full row update on an existing article.
// Status and view_count are deliberately excluded: status moves only
// through UpdateArticleStatus and view_count only through IncrementViewCount.
func (s *Store) UpdateArticle(ctx context.Context, a *domain.Article) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE articles SET
			updated_at = ?,
			slug = ?,
			title = ?,
			subtitle = ?,
			excerpt = ?,
			content = ?,
			content_text = ?,
			featured_image = ?,
			category_id = ?,
			meta_title = ?,
			meta_description = ?,
			meta_keywords = ?
		WHERE id = ? AND deleted_at IS NULL`,
		formatTime(a.UpdatedAt),
		a.Slug,
		a.Title,
		nullString(a.Subtitle),
		a.Excerpt,
		a.Content,
		nullString(a.ContentText),
		nullString(a.FeaturedImage),
		a.CategoryID,
		nullString(a.MetaTitle),
		nullString(a.MetaDescription),
		joinKeywords(a.MetaKeywords),
		a.ID,
	)
	if err != nil {
		return mapErr(err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}

	return s.SetArticleTags(ctx, a.ID, a.TagIDs)
}

// SoftDeleteArticle marks an article deleted, freeing its slug for reuse.
func (s *Store) SoftDeleteArticle(ctx context.Context, id string) error {
	now := formatTime(time.Now())

	result, err := s.db.ExecContext(ctx, `
		UPDATE articles SET deleted_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		now, now, id)
	if err != nil {
		return mapErr(err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// UpdateArticleStatus performs a compare-and-swap status transition.
// The row is updated only when its current status still equals from, which
// serializes concurrent transitions on the same article: exactly one racer
// wins, the rest get store.ErrConflict.
func (s *Store) UpdateArticleStatus(ctx context.Context, id string, from, to domain.ArticleStatus, publishedAt *time.Time) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE articles SET status = ?, published_at = ?, updated_at = ?
		WHERE id = ? AND status = ? AND deleted_at IS NULL`,
		string(to),
		nullTimeString(publishedAt),
		formatTime(time.Now()),
		id,
		string(from),
	)
	if err != nil {
		return mapErr(err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	// Distinguish a missing article from a lost race.
	var exists int
	err = s.db.QueryRowContext(ctx,
		`SELECT 1 FROM articles WHERE id = ? AND deleted_at IS NULL`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	if err != nil {
		return mapErr(err)
	}
	return store.ErrConflict
}

// IncrementViewCount atomically bumps the view counter of a published
// article. Non-published articles are left untouched without error, so a
// stale public page cannot inflate counts on an article pulled back to draft.
func (s *Store) IncrementViewCount(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE articles SET view_count = view_count + 1
		WHERE id = ? AND status = ? AND deleted_at IS NULL`,
		id, string(domain.StatusPublished))
	if err != nil {
		return mapErr(err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	var exists int
	err = s.db.QueryRowContext(ctx,
		`SELECT 1 FROM articles WHERE id = ? AND deleted_at IS NULL`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return mapErr(err)
}

// ListArticles returns a page of live articles matching the filter, ordered
// by created_at descending with ties broken by id ascending, plus the total
// count of the filtered result set.
func (s *Store) ListArticles(ctx context.Context, filter store.ArticleFilter, page store.ListParams) (*store.Page[*domain.Article], error) {
	page.Normalize()

	where := []string{"a.deleted_at IS NULL"}
	var args []any

	if filter.Status != "" {
		where = append(where, "a.status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.CategoryID != "" {
		where = append(where, "a.category_id = ?")
		args = append(args, filter.CategoryID)
	}
	if filter.AuthorID != "" {
		where = append(where, "a.author_id = ?")
		args = append(args, filter.AuthorID)
	}
	if filter.TagID != "" {
		where = append(where, "EXISTS (SELECT 1 FROM article_tags at WHERE at.article_id = a.id AND at.tag_id = ?)")
		args = append(args, filter.TagID)
	}
	if filter.Query != "" {
		// LIKE is case-insensitive for ASCII; lower() covers the rest of
		// the alphabet well enough for substring matching.
		where = append(where, "(lower(a.title) LIKE ? OR lower(a.excerpt) LIKE ?)")
		pattern := "%" + strings.ToLower(filter.Query) + "%"
		args = append(args, pattern, pattern)
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM articles a WHERE `+whereClause, args...).Scan(&total)
	if err != nil {
		return nil, mapErr(err)
	}

	query := `SELECT ` + prefixColumns("a", articleColumns) + `
		FROM articles a
		WHERE ` + whereClause + `
		ORDER BY a.created_at DESC, a.id ASC
		LIMIT ? OFFSET ?`
	rows, err := s.db.QueryContext(ctx, query, append(args, page.Limit, page.Offset)...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	articles := []*domain.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr(err)
	}

	if err := s.attachTagsBatch(ctx, articles); err != nil {
		return nil, err
	}

	return &store.Page[*domain.Article]{
		Items:  articles,
		Total:  total,
		Offset: page.Offset,
		Limit:  page.Limit,
	}, nil
}

// ListDueArticles returns scheduled articles whose publication instant is at
// or before now, oldest first.
func (s *Store) ListDueArticles(ctx context.Context, now time.Time, limit int) ([]*domain.Article, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+articleColumns+` FROM articles
		WHERE status = ? AND deleted_at IS NULL
		  AND published_at IS NOT NULL AND published_at <= ?
		ORDER BY published_at ASC
		LIMIT ?`,
		string(domain.StatusScheduled), formatTime(now), limit)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var due []*domain.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		due = append(due, a)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr(err)
	}
	return due, nil
}

// CountArticlesByCategory counts live articles referencing a category.
func (s *Store) CountArticlesByCategory(ctx context.Context, categoryID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM articles
		WHERE category_id = ? AND deleted_at IS NULL`, categoryID).Scan(&count)
	if err != nil {
		return 0, mapErr(err)
	}
	return count, nil
}

// SetArticleTags replaces all tags for an article in a single transaction.
func (s *Store) SetArticleTags(ctx context.Context, articleID string, tagIDs []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return mapErr(err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM article_tags WHERE article_id = ?`, articleID); err != nil {
		return fmt.Errorf("delete article_tags: %w", err)
	}

	now := formatTime(time.Now())
	for _, tagID := range tagIDs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO article_tags (article_id, tag_id, created_at)
			VALUES (?, ?, ?)`,
			articleID, tagID, now)
		if err != nil {
			return fmt.Errorf("insert article_tag: %w", err)
		}
	}

	return tx.Commit()
}

// GetArticleTags returns the tag IDs associated with an article.
func (s *Store) GetArticleTags(ctx context.Context, articleID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT tag_id FROM article_tags WHERE article_id = ? ORDER BY tag_id ASC`, articleID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var tagIDs []string
	for rows.Next() {
		var tagID string
		if err := rows.Scan(&tagID); err != nil {
			return nil, err
		}
		tagIDs = append(tagIDs, tagID)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr(err)
	}
	return tagIDs, nil
}

// attachTags populates TagIDs on a single article.
func (s *Store) attachTags(ctx context.Context, a *domain.Article) error {
	tagIDs, err := s.GetArticleTags(ctx, a.ID)
	if err != nil {
		return err
	}
	a.TagIDs = tagIDs
	return nil
}

// attachTagsBatch populates TagIDs for a page of articles in one query.
func (s *Store) attachTagsBatch(ctx context.Context, articles []*domain.Article) error {
	if len(articles) == 0 {
		return nil
	}

	placeholders := make([]string, len(articles))
	args := make([]any, len(articles))
	byID := make(map[string]*domain.Article, len(articles))
	for i, a := range articles {
		placeholders[i] = "?"
		args[i] = a.ID
		byID[a.ID] = a
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT article_id, tag_id FROM article_tags
		WHERE article_id IN (`+strings.Join(placeholders, ", ")+`)
		ORDER BY tag_id ASC`, args...)
	if err != nil {
		return mapErr(err)
	}
	defer rows.Close()

	for rows.Next() {
		var articleID, tagID string
		if err := rows.Scan(&articleID, &tagID); err != nil {
			return err
		}
		if a, ok := byID[articleID]; ok {
			a.TagIDs = append(a.TagIDs, tagID)
		}
	}
	return rows.Err()
}

// prefixColumns prefixes every column in a comma-separated list with a
// table alias for use in joined queries.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
