package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/f246632/rijeka-online/internal/service"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createUser",
		Method:      http.MethodPost,
		Path:        "/api/v1/users",
		Summary:     "Create user",
		Description: "Creates a newsroom account (admin only)",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "listUsers",
		Method:      http.MethodGet,
		Path:        "/api/v1/users",
		Summary:     "List users",
		Description: "Returns all newsroom accounts (admin only)",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListUsers)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{id}",
		Summary:     "Get user",
		Description: "Returns a newsroom account by ID (admin only)",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateUser",
		Method:      http.MethodPatch,
		Path:        "/api/v1/users/{id}",
		Summary:     "Update user",
		Description: "Edits an account's profile and role (admin only)",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateUser)
}

// === DTOs ===

// CreateUserRequest is the request body for creating an account.
type CreateUserRequest struct {
	Name     string `json:"name" doc:"Display name"`
	Email    string `json:"email" doc:"Email address, unique case-insensitively"`
	Password string `json:"password" doc:"Initial password"`
	Role     string `json:"role" doc:"ADMIN, EDITOR or AUTHOR"`
	Bio      string `json:"bio,omitempty" doc:"Short biography"`
	Avatar   string `json:"avatar,omitempty" doc:"Avatar image URL"`
}

// CreateUserInput wraps the create request for Huma.
type CreateUserInput struct {
	Authorization string `header:"Authorization"`
	Body          CreateUserRequest
}

// ListUsersInput carries the authorization header.
type ListUsersInput struct {
	Authorization string `header:"Authorization"`
}

// UserListResponse contains all accounts.
type UserListResponse struct {
	Users []UserResponse `json:"users" doc:"Newsroom accounts"`
}

// UserListOutput wraps the user list for Huma.
type UserListOutput struct {
	Body UserListResponse
}

// GetUserInput contains parameters for getting an account.
type GetUserInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"User ID"`
}

// UpdateUserRequest is the request body for editing an account.
type UpdateUserRequest struct {
	Name   string `json:"name" doc:"Display name"`
	Role   string `json:"role" doc:"ADMIN, EDITOR or AUTHOR"`
	Bio    string `json:"bio,omitempty" doc:"Short biography"`
	Avatar string `json:"avatar,omitempty" doc:"Avatar image URL"`
}

// UpdateUserInput wraps the update request for Huma.
type UpdateUserInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"User ID"`
	Body          UpdateUserRequest
}

// === Handlers ===

func (s *Server) handleCreateUser(ctx context.Context, input *CreateUserInput) (*UserOutput, error) {
	actor, err := GetActor(ctx)
	if err != nil {
		return nil, err
	}

	u, err := s.services.Users.Create(ctx, service.CreateUserRequest{
		Name:     input.Body.Name,
		Email:    input.Body.Email,
		Password: input.Body.Password,
		Role:     input.Body.Role,
		Bio:      input.Body.Bio,
		Avatar:   input.Body.Avatar,
	}, actor)
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: toUserResponse(u)}, nil
}

func (s *Server) handleListUsers(ctx context.Context, _ *ListUsersInput) (*UserListOutput, error) {
	actor, err := GetActor(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.services.Users.List(ctx, actor)
	if err != nil {
		return nil, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = toUserResponse(u)
	}

	return &UserListOutput{Body: UserListResponse{Users: resp}}, nil
}

func (s *Server) handleGetUser(ctx context.Context, input *GetUserInput) (*UserOutput, error) {
	actor, err := GetActor(ctx)
	if err != nil {
		return nil, err
	}

	u, err := s.services.Users.Get(ctx, input.ID, actor)
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: toUserResponse(u)}, nil
}

func (s *Server) handleUpdateUser(ctx context.Context, input *UpdateUserInput) (*UserOutput, error) {
	actor, err := GetActor(ctx)
	if err != nil {
		return nil, err
	}

	u, err := s.services.Users.Update(ctx, input.ID, service.UpdateUserRequest{
		Name:   input.Body.Name,
		Role:   input.Body.Role,
		Bio:    input.Body.Bio,
		Avatar: input.Body.Avatar,
	}, actor)
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: toUserResponse(u)}, nil
}
