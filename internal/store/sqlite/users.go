package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/f246632/rijeka-online/internal/domain"
	"github.com/f246632/rijeka-online/internal/store"
)

// userColumns is the ordered list of columns selected in user queries.
// Must match the scan order in scanUser.
const userColumns = `id, created_at, updated_at, deleted_at, name, email,
	password_hash, role, bio, avatar, last_login_at`

// scanUser scans a sql.Row (or sql.Rows via its Scan method) into a domain.User.
func scanUser(scanner interface{ Scan(dest ...any) error }) (*domain.User, error) {
	var u domain.User

	var (
		createdAt   string
		updatedAt   string
		deletedAt   sql.NullString
		role        string
		bio         sql.NullString
		avatar      sql.NullString
		lastLoginAt sql.NullString
	)

	err := scanner.Scan(
		&u.ID,
		&createdAt,
		&updatedAt,
		&deletedAt,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&role,
		&bio,
		&avatar,
		&lastLoginAt,
	)
	if err != nil {
		return nil, err
	}

	u.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	u.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	u.DeletedAt, err = parseNullableTime(deletedAt)
	if err != nil {
		return nil, err
	}

	u.Role = domain.Role(role)

	if bio.Valid {
		u.Bio = bio.String
	}
	if avatar.Valid {
		u.Avatar = avatar.String
	}
	if lastLoginAt.Valid && lastLoginAt.String != "" {
		u.LastLoginAt, err = parseTime(lastLoginAt.String)
		if err != nil {
			return nil, err
		}
	}

	return &u, nil
}

// normalizeEmail lowercases and trims an email for case-insensitive lookup.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser inserts a new user into the database.
// Returns store.ErrAlreadyExists if the email is already registered.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	var lastLogin sql.NullString
	if !user.LastLoginAt.IsZero() {
		lastLogin = sql.NullString{String: formatTime(user.LastLoginAt), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (
			id, created_at, updated_at, deleted_at, name, email, email_lower,
			password_hash, role, bio, avatar, last_login_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		formatTime(user.CreatedAt),
		formatTime(user.UpdatedAt),
		nullTimeString(user.DeletedAt),
		user.Name,
		user.Email,
		normalizeEmail(user.Email),
		user.PasswordHash,
		string(user.Role),
		nullString(user.Bio),
		nullString(user.Avatar),
		lastLogin,
	)
	return mapErr(err)
}

// GetUserByID retrieves a live user by ID.
func (s *Store) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ? AND deleted_at IS NULL`, id)

	u, err := scanUser(row)
	if err != nil {
		return nil, mapErr(err)
	}
	return u, nil
}

// GetUserByEmail retrieves a live user by email, case-insensitively.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email_lower = ? AND deleted_at IS NULL`,
		normalizeEmail(email))

	u, err := scanUser(row)
	if err != nil {
		return nil, mapErr(err)
	}
	return u, nil
}

// ListUsers returns all live users ordered by name.
func (s *Store) ListUsers(ctx context.Context) ([]*domain.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE deleted_at IS NULL ORDER BY name ASC`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	users := []*domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr(err)
	}
	return users, nil
}

// UpdateUser performs a full row update on an existing user.
func (s *Store) UpdateUser(ctx context.Context, user *domain.User) error {
	var lastLogin sql.NullString
	if !user.LastLoginAt.IsZero() {
		lastLogin = sql.NullString{String: formatTime(user.LastLoginAt), Valid: true}
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE users SET
			updated_at = ?,
			deleted_at = ?,
			name = ?,
			email = ?,
			email_lower = ?,
			password_hash = ?,
			role = ?,
			bio = ?,
			avatar = ?,
			last_login_at = ?
		WHERE id = ?`,
		formatTime(user.UpdatedAt),
		nullTimeString(user.DeletedAt),
		user.Name,
		user.Email,
		normalizeEmail(user.Email),
		user.PasswordHash,
		string(user.Role),
		nullString(user.Bio),
		nullString(user.Avatar),
		lastLogin,
		user.ID,
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
