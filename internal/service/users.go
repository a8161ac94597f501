package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/f246632/rijeka-online/internal/auth"
	"github.com/f246632/rijeka-online/internal/domain"
	domainerrors "github.com/f246632/rijeka-online/internal/errors"
	"github.com/f246632/rijeka-online/internal/id"
	"github.com/f246632/rijeka-online/internal/store"
	"github.com/f246632/rijeka-online/internal/validation"
)

// UserService manages newsroom accounts. All operations are admin-only.
type UserService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(st store.Store, validator *validation.Validator, logger *slog.Logger) *UserService {
	return &UserService{store: st, validator: validator, logger: logger}
}

// CreateUserRequest contains a new newsroom account.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=10,max=128"`
	Role     string `json:"role" validate:"required,oneof=ADMIN EDITOR AUTHOR"`
	Bio      string `json:"bio" validate:"max=1000"`
	Avatar   string `json:"avatar" validate:"omitempty,url"`
}

// UpdateUserRequest contains an account edit. Password changes go through
// a separate flow.
type UpdateUserRequest struct {
	Name   string `json:"name" validate:"required,min=2,max=100"`
	Role   string `json:"role" validate:"required,oneof=ADMIN EDITOR AUTHOR"`
	Bio    string `json:"bio" validate:"max=1000"`
	Avatar string `json:"avatar" validate:"omitempty,url"`
}

// Create adds a newsroom account. Emails are unique case-insensitively.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest, actor domain.Actor) (*domain.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, domainerrors.Validation(err.Error())
	}

	userID, err := id.Generate("user")
	if err != nil {
		return nil, fmt.Errorf("generate user id: %w", err)
	}

	u := &domain.User{
		Timestamps:   domain.Timestamps{ID: userID},
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         domain.Role(req.Role),
		Bio:          req.Bio,
		Avatar:       req.Avatar,
	}
	u.InitTimestamps()

	if err := s.store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("an account with this email already exists")
		}
		return nil, mapUserErr(err)
	}

	s.logger.Info("user created", "user_id", u.ID, "role", u.Role, "actor_id", actor.UserID)
	return sanitizeUser(u), nil
}

// Get returns an account by ID.
func (s *UserService) Get(ctx context.Context, userID string, actor domain.Actor) (*domain.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	u, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, mapUserErr(err)
	}
	return sanitizeUser(u), nil
}

// List returns all newsroom accounts.
func (s *UserService) List(ctx context.Context, actor domain.Actor) ([]*domain.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, mapUserErr(err)
	}
	out := make([]*domain.User, 0, len(users))
	for _, u := range users {
		out = append(out, sanitizeUser(u))
	}
	return out, nil
}

// Update edits an account's profile and role. An admin cannot demote
// themselves, which keeps at least one admin reachable.
func (s *UserService) Update(ctx context.Context, userID string, req UpdateUserRequest, actor domain.Actor) (*domain.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	u, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, mapUserErr(err)
	}

	newRole := domain.Role(req.Role)
	if u.ID == actor.UserID && u.Role == domain.RoleAdmin && newRole != domain.RoleAdmin {
		return nil, domainerrors.Validation("admins cannot demote themselves")
	}

	u.Name = req.Name
	u.Role = newRole
	u.Bio = req.Bio
	u.Avatar = req.Avatar
	u.Touch()

	if err := s.store.UpdateUser(ctx, u); err != nil {
		return nil, mapUserErr(err)
	}

	s.logger.Info("user updated", "user_id", u.ID, "actor_id", actor.UserID)
	return sanitizeUser(u), nil
}

// requireAdmin rejects non-admin actors.
func requireAdmin(actor domain.Actor) error {
	if actor.Role == domain.RoleAdmin {
		return nil
	}
	return domainerrors.Forbidden("requires admin role")
}
