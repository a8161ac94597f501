package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/f246632/rijeka-online/internal/domain"
	"github.com/f246632/rijeka-online/internal/store"
)

// sessionColumns is the ordered list of columns selected in session queries.
// Must match the scan order in scanSession.
const sessionColumns = `id, user_id, refresh_token_hash, expires_at, created_at,
	last_seen_at, ip_address, user_agent`

// scanSession scans a sql.Row (or sql.Rows via its Scan method) into a domain.Session.
func scanSession(scanner interface{ Scan(dest ...any) error }) (*domain.Session, error) {
	var s domain.Session

	var (
		expiresAt  string
		createdAt  string
		lastSeenAt string
		ipAddress  sql.NullString
		userAgent  sql.NullString
	)

	err := scanner.Scan(
		&s.ID,
		&s.UserID,
		&s.RefreshTokenHash,
		&expiresAt,
		&createdAt,
		&lastSeenAt,
		&ipAddress,
		&userAgent,
	)
	if err != nil {
		return nil, err
	}

	s.ExpiresAt, err = parseTime(expiresAt)
	if err != nil {
		return nil, err
	}
	s.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	s.LastSeenAt, err = parseTime(lastSeenAt)
	if err != nil {
		return nil, err
	}

	if ipAddress.Valid {
		s.IPAddress = ipAddress.String
	}
	if userAgent.Valid {
		s.UserAgent = userAgent.String
	}

	return &s, nil
}

// CreateSession inserts a new session into the database.
func (s *Store) CreateSession(ctx context.Context, session *domain.Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (
			id, user_id, refresh_token_hash, expires_at, created_at,
			last_seen_at, ip_address, user_agent
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		session.ID,
		session.UserID,
		session.RefreshTokenHash,
		formatTime(session.ExpiresAt),
		formatTime(session.CreatedAt),
		formatTime(session.LastSeenAt),
		nullString(session.IPAddress),
		nullString(session.UserAgent),
	)
	return mapErr(err)
}

// GetSessionByTokenHash retrieves a session by its refresh token hash.
func (s *Store) GetSessionByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE refresh_token_hash = ?`, tokenHash)

	sess, err := scanSession(row)
	if err != nil {
		return nil, mapErr(err)
	}
	return sess, nil
}

// UpdateSession performs a full row update on an existing session.
func (s *Store) UpdateSession(ctx context.Context, session *domain.Session) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE sessions SET
			user_id = ?,
			refresh_token_hash = ?,
			expires_at = ?,
			last_seen_at = ?,
			ip_address = ?,
			user_agent = ?
		WHERE id = ?`,
		session.UserID,
		session.RefreshTokenHash,
		formatTime(session.ExpiresAt),
		formatTime(session.LastSeenAt),
		nullString(session.IPAddress),
		nullString(session.UserAgent),
		session.ID,
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

// DeleteSession performs a hard delete of a session by ID.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE id = ?`, id)
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

// DeleteUserSessions removes every session belonging to a user.
func (s *Store) DeleteUserSessions(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE user_id = ?`, userID)
	return mapErr(err)
}

// DeleteExpiredSessions deletes all sessions past their expiry.
// Returns the number of sessions deleted.
func (s *Store) DeleteExpiredSessions(ctx context.Context) (int, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at < ?`, formatTime(time.Now()))
	if err != nil {
		return 0, mapErr(err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
