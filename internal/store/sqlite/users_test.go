package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/f246632/rijeka-online/internal/domain"
	"github.com/f246632/rijeka-online/internal/store"
)

func TestCreateGetUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, domain.RoleEditor)

	got, err := s.GetUserByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.Role != domain.RoleEditor {
		t.Errorf("role = %q, want EDITOR", got.Role)
	}
	if got.PasswordHash != u.PasswordHash {
		t.Errorf("password hash not round-tripped")
	}
}

func TestGetUserByEmail_CaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	now := time.Now()
	u := &domain.User{
		Timestamps:   domain.Timestamps{ID: "user-case", CreatedAt: now, UpdatedAt: now},
		Name:         "Ana Anić",
		Email:        "Ana.Anic@Rijeka.Online",
		PasswordHash: "$argon2id$fake",
		Role:         domain.RoleAuthor,
	}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.GetUserByEmail(ctx, "ana.anic@rijeka.online")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("got %s, want %s", got.ID, u.ID)
	}
	// Original casing is preserved in the stored email.
	if got.Email != "Ana.Anic@Rijeka.Online" {
		t.Errorf("email = %q", got.Email)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, domain.RoleAuthor)

	now := time.Now()
	dup := &domain.User{
		Timestamps:   domain.Timestamps{ID: "user-dup", CreatedAt: now, UpdatedAt: now},
		Name:         "Dupla",
		Email:        u.Email,
		PasswordHash: "$argon2id$fake",
		Role:         domain.RoleAuthor,
	}
	if err := s.CreateUser(ctx, dup); !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("err = %v, want ErrAlreadyExists", err)
	}
}

func TestUpdateUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, domain.RoleAuthor)

	u.Bio = "Novinarka gradske rubrike"
	u.LastLoginAt = time.Now()
	u.Touch()
	if err := s.UpdateUser(ctx, u); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := s.GetUserByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Bio != "Novinarka gradske rubrike" {
		t.Errorf("bio = %q", got.Bio)
	}
	if got.LastLoginAt.IsZero() {
		t.Error("last_login_at should be set")
	}
}

func TestListUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, domain.RoleAdmin)
	seedUser(t, s, domain.RoleAuthor)

	users, err := s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("len = %d, want 2", len(users))
	}
}
