package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/f246632/rijeka-online/internal/domain"
	"github.com/f246632/rijeka-online/internal/id"
	"github.com/f246632/rijeka-online/internal/store"
)

// tagColumns is the ordered list of columns selected in tag queries.
// Must match the scan order in scanTag.
const tagColumns = `id, created_at, updated_at, name, slug`

// scanTag scans a sql.Row (or sql.Rows via its Scan method) into a domain.Tag.
func scanTag(scanner interface{ Scan(dest ...any) error }) (*domain.Tag, error) {
	var t domain.Tag

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&t.ID,
		&createdAt,
		&updatedAt,
		&t.Name,
		&t.Slug,
	)
	if err != nil {
		return nil, err
	}

	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	t.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// CreateTag inserts a new tag into the database.
// Returns store.ErrAlreadyExists on duplicate slug.
func (s *Store) CreateTag(ctx context.Context, t *domain.Tag) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tags (id, created_at, updated_at, name, slug)
		VALUES (?, ?, ?, ?, ?)`,
		t.ID,
		formatTime(t.CreatedAt),
		formatTime(t.UpdatedAt),
		t.Name,
		t.Slug,
	)
	return mapErr(err)
}

// GetTagByID retrieves a tag by its ID.
func (s *Store) GetTagByID(ctx context.Context, tagID string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE id = ?`, tagID)

	t, err := scanTag(row)
	if err != nil {
		return nil, mapErr(err)
	}
	return t, nil
}

// GetTagBySlug retrieves a tag by its slug.
func (s *Store) GetTagBySlug(ctx context.Context, slug string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE slug = ?`, slug)

	t, err := scanTag(row)
	if err != nil {
		return nil, mapErr(err)
	}
	return t, nil
}

// ListTags returns all tags ordered by slug.
func (s *Store) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tagColumns+` FROM tags ORDER BY slug ASC`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	tags := []*domain.Tag{}
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr(err)
	}
	return tags, nil
}

// FindOrCreateTagBySlug finds an existing tag by slug or creates a new one.
// Tag identity is the slug; creating an existing slug returns the existing
// tag. Returns (tag, created, error) where created is true for a new tag.
func (s *Store) FindOrCreateTagBySlug(ctx context.Context, slug, name string) (*domain.Tag, bool, error) {
	existing, err := s.GetTagBySlug(ctx, slug)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, false, err
	}

	tagID, err := id.Generate("tag")
	if err != nil {
		return nil, false, fmt.Errorf("generate tag id: %w", err)
	}

	now := time.Now()
	t := &domain.Tag{
		Timestamps: domain.Timestamps{ID: tagID, CreatedAt: now, UpdatedAt: now},
		Name:       name,
		Slug:       slug,
	}

	if err := s.CreateTag(ctx, t); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Race: another request created it first.
			existing, err := s.GetTagBySlug(ctx, slug)
			if err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	return t, true, nil
}

// DeleteTag removes a tag. The article_tags foreign key cascades, so the
// tag is detached from every article in the same statement.
func (s *Store) DeleteTag(ctx context.Context, tagID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, tagID)
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
