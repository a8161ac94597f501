package sqlite

import (
	"context"
	"time"

	"github.com/f246632/rijeka-online/internal/domain"
	"github.com/f246632/rijeka-online/internal/store"
)

// categoryColumns is the ordered list of columns selected in category
// queries. Must match the scan order in scanCategory.
const categoryColumns = `id, created_at, updated_at, name, slug, description, color, icon, display_order`

// scanCategory scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.Category. ArticleCount is left as 0 unless the query selects it.
func scanCategory(scanner interface{ Scan(dest ...any) error }) (*domain.Category, error) {
	var c domain.Category

	var (
		createdAt   string
		updatedAt   string
		description *string
		icon        *string
	)

	err := scanner.Scan(
		&c.ID,
		&createdAt,
		&updatedAt,
		&c.Name,
		&c.Slug,
		&description,
		&c.Color,
		&icon,
		&c.DisplayOrder,
	)
	if err != nil {
		return nil, err
	}

	c.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	c.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	if description != nil {
		c.Description = *description
	}
	if icon != nil {
		c.Icon = *icon
	}

	return &c, nil
}

// CreateCategory inserts a new category into the database.
// Returns store.ErrAlreadyExists on duplicate slug.
func (s *Store) CreateCategory(ctx context.Context, c *domain.Category) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, created_at, updated_at, name, slug, description, color, icon, display_order)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID,
		formatTime(c.CreatedAt),
		formatTime(c.UpdatedAt),
		c.Name,
		c.Slug,
		nullString(c.Description),
		c.Color,
		nullString(c.Icon),
		c.DisplayOrder,
	)
	return mapErr(err)
}

// GetCategoryByID retrieves a category by its ID.
func (s *Store) GetCategoryByID(ctx context.Context, id string) (*domain.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = ?`, id)

	c, err := scanCategory(row)
	if err != nil {
		return nil, mapErr(err)
	}
	return c, nil
}

// GetCategoryBySlug retrieves a category by its slug.
func (s *Store) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE slug = ?`, slug)

	c, err := scanCategory(row)
	if err != nil {
		return nil, mapErr(err)
	}
	return c, nil
}

// ListCategories returns all categories ordered by display_order with their
// live article counts attached.
func (s *Store) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.created_at, c.updated_at, c.name, c.slug, c.description,
			c.color, c.icon, c.display_order,
			(SELECT COUNT(*) FROM articles a
				WHERE a.category_id = c.id AND a.deleted_at IS NULL) AS article_count
		FROM categories c
		ORDER BY c.display_order ASC, c.name ASC`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	categories := []*domain.Category{}
	for rows.Next() {
		var c domain.Category
		var (
			createdAt   string
			updatedAt   string
			description *string
			icon        *string
		)
		err := rows.Scan(
			&c.ID, &createdAt, &updatedAt, &c.Name, &c.Slug, &description,
			&c.Color, &icon, &c.DisplayOrder, &c.ArticleCount,
		)
		if err != nil {
			return nil, err
		}
		c.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, err
		}
		c.UpdatedAt, err = parseTime(updatedAt)
		if err != nil {
			return nil, err
		}
		if description != nil {
			c.Description = *description
		}
		if icon != nil {
			c.Icon = *icon
		}
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr(err)
	}
	return categories, nil
}

// UpdateCategory performs a full row update on an existing category.
// Returns store.ErrAlreadyExists if the new slug collides.
func (s *Store) UpdateCategory(ctx context.Context, c *domain.Category) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE categories SET
			updated_at = ?,
			name = ?,
			slug = ?,
			description = ?,
			color = ?,
			icon = ?,
			display_order = ?
		WHERE id = ?`,
		formatTime(c.UpdatedAt),
		c.Name,
		c.Slug,
		nullString(c.Description),
		c.Color,
		nullString(c.Icon),
		c.DisplayOrder,
		c.ID,
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
	return nil
}

// DeleteCategory hard-deletes a category. Callers must verify the category
// is unused first; the articles foreign key would otherwise reject this.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM categories WHERE id = ?`, id)
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

// ReorderCategories assigns display_order 0..n-1 following the given ID
// order, in a single transaction. IDs absent from the list keep their order.
func (s *Store) ReorderCategories(ctx context.Context, orderedIDs []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return mapErr(err)
	}
	defer tx.Rollback()

	now := formatTime(time.Now())
	for i, id := range orderedIDs {
		result, err := tx.ExecContext(ctx, `
			UPDATE categories SET display_order = ?, updated_at = ? WHERE id = ?`,
			i, now, id)
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
	}

	return tx.Commit()
}
