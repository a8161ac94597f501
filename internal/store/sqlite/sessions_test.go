package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/f246632/rijeka-online/internal/domain"
	"github.com/f246632/rijeka-online/internal/store"
)

func seedSession(t *testing.T, s *Store, userID, tokenHash string, expiresAt time.Time) *domain.Session {
	t.Helper()
	seedSeq++
	now := time.Now()
	sess := &domain.Session{
		ID:               "sess-" + tokenHash,
		UserID:           userID,
		RefreshTokenHash: tokenHash,
		ExpiresAt:        expiresAt,
		CreatedAt:        now,
		LastSeenAt:       now,
		IPAddress:        "10.0.0.1",
		UserAgent:        "test-agent",
	}
	if err := s.CreateSession(context.Background(), sess); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return sess
}

func TestSessionRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, domain.RoleAuthor)
	sess := seedSession(t, s, u.ID, "hash-1", time.Now().Add(time.Hour))

	got, err := s.GetSessionByTokenHash(ctx, "hash-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != sess.ID || got.UserID != u.ID {
		t.Errorf("got %+v", got)
	}
	if got.IPAddress != "10.0.0.1" || got.UserAgent != "test-agent" {
		t.Errorf("metadata not round-tripped: %+v", got)
	}

	if _, err := s.GetSessionByTokenHash(ctx, "hash-unknown"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("missing: err = %v, want ErrNotFound", err)
	}
}

func TestUpdateSession_Rotation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, domain.RoleAuthor)
	sess := seedSession(t, s, u.ID, "hash-old", time.Now().Add(time.Hour))

	sess.RefreshTokenHash = "hash-new"
	sess.LastSeenAt = time.Now()
	if err := s.UpdateSession(ctx, sess); err != nil {
		t.Fatalf("update: %v", err)
	}

	if _, err := s.GetSessionByTokenHash(ctx, "hash-old"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("old hash should be gone: err = %v", err)
	}
	got, err := s.GetSessionByTokenHash(ctx, "hash-new")
	if err != nil {
		t.Fatalf("get new: %v", err)
	}
	if got.ID != sess.ID {
		t.Errorf("got %s, want %s", got.ID, sess.ID)
	}
}

func TestDeleteSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, domain.RoleAuthor)
	sess := seedSession(t, s, u.ID, "hash-del", time.Now().Add(time.Hour))

	if err := s.DeleteSession(ctx, sess.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteSession(ctx, sess.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("double delete: err = %v, want ErrNotFound", err)
	}
}

func TestDeleteUserSessions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, domain.RoleAuthor)
	other := seedUser(t, s, domain.RoleEditor)
	seedSession(t, s, u.ID, "hash-a", time.Now().Add(time.Hour))
	seedSession(t, s, u.ID, "hash-b", time.Now().Add(time.Hour))
	keep := seedSession(t, s, other.ID, "hash-keep", time.Now().Add(time.Hour))

	if err := s.DeleteUserSessions(ctx, u.ID); err != nil {
		t.Fatalf("delete user sessions: %v", err)
	}

	if _, err := s.GetSessionByTokenHash(ctx, "hash-a"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("hash-a should be gone")
	}
	if _, err := s.GetSessionByTokenHash(ctx, keep.RefreshTokenHash); err != nil {
		t.Fatalf("other user's session should survive: %v", err)
	}
}

func TestDeleteExpiredSessions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, domain.RoleAuthor)
	seedSession(t, s, u.ID, "hash-expired", time.Now().Add(-time.Minute))
	seedSession(t, s, u.ID, "hash-live", time.Now().Add(time.Hour))

	n, err := s.DeleteExpiredSessions(ctx)
	if err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted = %d, want 1", n)
	}
	if _, err := s.GetSessionByTokenHash(ctx, "hash-live"); err != nil {
		t.Fatalf("live session should survive: %v", err)
	}
}
