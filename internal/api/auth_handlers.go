package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/f246632/rijeka-online/internal/service"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/login",
		Summary:     "Log in",
		Description: "Verifies credentials and returns a token pair",
		Tags:        []string{"Auth"},
	}, s.handleLogin)

	huma.Register(s.api, huma.Operation{
		OperationID: "refresh",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/refresh",
		Summary:     "Refresh tokens",
		Description: "Rotates the refresh token and issues a new access token",
		Tags:        []string{"Auth"},
	}, s.handleRefresh)

	huma.Register(s.api, huma.Operation{
		OperationID: "logout",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/logout",
		Summary:     "Log out",
		Description: "Revokes the session behind the refresh token",
		Tags:        []string{"Auth"},
	}, s.handleLogout)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCurrentUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/auth/me",
		Summary:     "Current user",
		Description: "Returns the authenticated user's profile",
		Tags:        []string{"Auth"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetCurrentUser)
}

// === DTOs ===

// LoginRequest is the request body for logging in.
type LoginRequest struct {
	Email    string `json:"email" doc:"Account email"`
	Password string `json:"password" doc:"Account password"`
}

// LoginInput wraps the login request for Huma.
type LoginInput struct {
	Body LoginRequest
}

// AuthResponse contains the token pair issued on login and refresh.
type AuthResponse struct {
	AccessToken  string       `json:"access_token" doc:"PASETO access token"`
	RefreshToken string       `json:"refresh_token" doc:"Opaque refresh token"`
	ExpiresIn    int64        `json:"expires_in" doc:"Access token lifetime in seconds"`
	User         UserResponse `json:"user" doc:"Authenticated account"`
}

// AuthOutput wraps the auth response for Huma.
type AuthOutput struct {
	Body AuthResponse
}

// RefreshRequest is the request body for refreshing tokens.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" doc:"Refresh token from a previous login or refresh"`
}

// RefreshInput wraps the refresh request for Huma.
type RefreshInput struct {
	Body RefreshRequest
}

// LogoutInput wraps the logout request for Huma.
type LogoutInput struct {
	Body RefreshRequest
}

// CurrentUserInput carries the authorization header.
type CurrentUserInput struct {
	Authorization string `header:"Authorization"`
}

// UserOutput wraps a single user for Huma.
type UserOutput struct {
	Body UserResponse
}

// === Handlers ===

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*AuthOutput, error) {
	info := getClientInfo(ctx)

	pair, err := s.services.Auth.Login(ctx, service.LoginRequest{
		Email:    input.Body.Email,
		Password: input.Body.Password,
	}, info.IP, info.UserAgent)
	if err != nil {
		return nil, err
	}

	return &AuthOutput{Body: toAuthResponse(pair)}, nil
}

func (s *Server) handleRefresh(ctx context.Context, input *RefreshInput) (*AuthOutput, error) {
	info := getClientInfo(ctx)

	pair, err := s.services.Auth.Refresh(ctx, input.Body.RefreshToken, info.IP, info.UserAgent)
	if err != nil {
		return nil, err
	}

	return &AuthOutput{Body: toAuthResponse(pair)}, nil
}

func (s *Server) handleLogout(ctx context.Context, input *LogoutInput) (*MessageOutput, error) {
	if err := s.services.Auth.Logout(ctx, input.Body.RefreshToken); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Logged out"}}, nil
}

func (s *Server) handleGetCurrentUser(ctx context.Context, _ *CurrentUserInput) (*UserOutput, error) {
	actor, err := GetActor(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.services.Auth.Me(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: toUserResponse(user)}, nil
}

func toAuthResponse(pair *service.TokenPair) AuthResponse {
	return AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		User:         toUserResponse(pair.User),
	}
}
