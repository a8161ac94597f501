package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/f246632/rijeka-online/internal/domain"
	"github.com/f246632/rijeka-online/internal/store"
)

// CreateUser inserts a new user.
// Returns store.ErrAlreadyExists when the email is already registered.
func (s *Store) CreateUser(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; ok {
		return store.ErrAlreadyExists
	}
	email := normalizeEmail(u.Email)
	for _, other := range s.users {
		if other.DeletedAt == nil && normalizeEmail(other.Email) == email {
			return store.ErrAlreadyExists
		}
	}
	s.users[u.ID] = cloneUser(u)
	return nil
}

// GetUserByID retrieves a live user by ID.
func (s *Store) GetUserByID(_ context.Context, userID string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok || u.DeletedAt != nil {
		return nil, store.ErrNotFound
	}
	return cloneUser(u), nil
}

// GetUserByEmail retrieves a live user by email, case-insensitively.
func (s *Store) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := normalizeEmail(email)
	for _, u := range s.users {
		if u.DeletedAt == nil && normalizeEmail(u.Email) == needle {
			return cloneUser(u), nil
		}
	}
	return nil, store.ErrNotFound
}

// ListUsers returns all live users ordered by name.
func (s *Store) ListUsers(_ context.Context) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		if u.DeletedAt == nil {
			users = append(users, cloneUser(u))
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

// UpdateUser performs a full update of an existing user.
func (s *Store) UpdateUser(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; !ok {
		return store.ErrNotFound
	}
	s.users[u.ID] = cloneUser(u)
	return nil
}

// CreateSession inserts a new session.
func (s *Store) CreateSession(_ context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sess.ID]; ok {
		return store.ErrAlreadyExists
	}
	s.sessions[sess.ID] = cloneSession(sess)
	return nil
}

// GetSessionByTokenHash retrieves a session by its refresh token hash.
func (s *Store) GetSessionByTokenHash(_ context.Context, tokenHash string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sess := range s.sessions {
		if sess.RefreshTokenHash == tokenHash {
			return cloneSession(sess), nil
		}
	}
	return nil, store.ErrNotFound
}

// UpdateSession performs a full update of an existing session.
func (s *Store) UpdateSession(_ context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sess.ID]; !ok {
		return store.ErrNotFound
	}
	s.sessions[sess.ID] = cloneSession(sess)
	return nil
}

// DeleteSession removes a session by ID.
func (s *Store) DeleteSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return store.ErrNotFound
	}
	delete(s.sessions, sessionID)
	return nil
}

// DeleteUserSessions removes every session belonging to a user.
func (s *Store) DeleteUserSessions(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for sessionID, sess := range s.sessions {
		if sess.UserID == userID {
			delete(s.sessions, sessionID)
		}
	}
	return nil
}

// DeleteExpiredSessions removes sessions past their expiry.
func (s *Store) DeleteExpiredSessions(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	deleted := 0
	for sessionID, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, sessionID)
			deleted++
		}
	}
	return deleted, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
