package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/f246632/rijeka-online/internal/auth"
	"github.com/f246632/rijeka-online/internal/domain"
	domainerrors "github.com/f246632/rijeka-online/internal/errors"
	"github.com/f246632/rijeka-online/internal/id"
	"github.com/f246632/rijeka-online/internal/ratelimit"
	"github.com/f246632/rijeka-online/internal/store"
	"github.com/f246632/rijeka-online/internal/validation"
)

// AuthService handles login, token refresh and session management.
type AuthService struct {
	store      store.Store
	tokens     *auth.TokenService
	validator  *validation.Validator
	loginLimit *ratelimit.KeyedRateLimiter
	logger     *slog.Logger
}

// NewAuthService creates a new auth service. loginRatePerMinute caps login
// attempts per client IP.
func NewAuthService(st store.Store, tokens *auth.TokenService, validator *validation.Validator, loginRatePerMinute int, logger *slog.Logger) *AuthService {
	if loginRatePerMinute <= 0 {
		loginRatePerMinute = 10
	}
	return &AuthService{
		store:      st,
		tokens:     tokens,
		validator:  validator,
		loginLimit: ratelimit.New(float64(loginRatePerMinute)/60.0, loginRatePerMinute),
		logger:     logger,
	}
}

// LoginRequest contains login credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenPair is issued on login and refresh.
type TokenPair struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"` // Access token lifetime in seconds
	User         *domain.User `json:"user"`
}

// Login verifies credentials and opens a session. Attempts are rate limited
// per client IP; failures return the same InvalidCredentials error whether
// the account exists or not.
func (s *AuthService) Login(ctx context.Context, req LoginRequest, clientIP, userAgent string) (*TokenPair, error) {
	if !s.loginLimit.Allow(clientIP) {
		return nil, domainerrors.Conflict("too many login attempts, try again later")
	}

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn a comparable amount of time so the response doesn't
			// reveal whether the account exists.
			_, _ = auth.VerifyPassword("$argon2id$v=19$m=65536,t=3,p=2$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", req.Password)
			return nil, domainerrors.InvalidCredentials("invalid email or password")
		}
		return nil, mapUserErr(err)
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil || !ok {
		s.logger.Warn("failed login attempt", "email", req.Email, "client_ip", clientIP)
		return nil, domainerrors.InvalidCredentials("invalid email or password")
	}

	pair, err := s.openSession(ctx, user, clientIP, userAgent)
	if err != nil {
		return nil, err
	}

	user.LastLoginAt = time.Now()
	user.Touch()
	if err := s.store.UpdateUser(ctx, user); err != nil {
		s.logger.Warn("failed to record last login", "user_id", user.ID, "error", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID, "role", user.Role, "client_ip", clientIP)
	return pair, nil
}

// Refresh rotates a refresh token: the presented token's session gets a new
// token hash and expiry, and a fresh access token is issued. A token that
// doesn't match any live session is rejected.
func (s *AuthService) Refresh(ctx context.Context, refreshToken, clientIP, userAgent string) (*TokenPair, error) {
	hash := auth.HashRefreshToken(refreshToken)

	session, err := s.store.GetSessionByTokenHash(ctx, hash)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.Unauthorized("invalid refresh token")
		}
		return nil, mapSessionErr(err)
	}

	if session.Expired(time.Now()) {
		_ = s.store.DeleteSession(ctx, session.ID)
		return nil, domainerrors.TokenExpired("refresh token expired")
	}

	user, err := s.store.GetUserByID(ctx, session.UserID)
	if err != nil {
		return nil, domainerrors.Unauthorized("session user no longer exists")
	}

	newToken, err := s.tokens.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("rotate refresh token: %w", err)
	}

	now := time.Now()
	session.RefreshTokenHash = auth.HashRefreshToken(newToken)
	session.ExpiresAt = now.Add(s.tokens.RefreshTokenDuration())
	session.LastSeenAt = now
	session.IPAddress = clientIP
	session.UserAgent = userAgent

	if err := s.store.UpdateSession(ctx, session); err != nil {
		return nil, mapSessionErr(err)
	}

	accessToken, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: newToken,
		ExpiresIn:    int64(s.tokens.AccessTokenDuration().Seconds()),
		User:         sanitizeUser(user),
	}, nil
}

// Logout deletes the session behind the refresh token. An unknown token is
// a no-op so logout is idempotent.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	hash := auth.HashRefreshToken(refreshToken)

	session, err := s.store.GetSessionByTokenHash(ctx, hash)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return mapSessionErr(err)
	}

	if err := s.store.DeleteSession(ctx, session.ID); err != nil {
		return mapSessionErr(err)
	}

	s.logger.Info("user logged out", "user_id", session.UserID)
	return nil
}

// LogoutAll deletes every session of a user, e.g. after a password change.
func (s *AuthService) LogoutAll(ctx context.Context, userID string) error {
	if err := s.store.DeleteUserSessions(ctx, userID); err != nil {
		return mapUserErr(err)
	}
	s.logger.Info("all sessions revoked", "user_id", userID)
	return nil
}

// Verify validates an access token and returns the actor it carries.
func (s *AuthService) Verify(tokenString string) (domain.Actor, error) {
	claims, err := s.tokens.VerifyAccessToken(tokenString)
	if err != nil {
		return domain.Actor{}, domainerrors.Unauthorized("invalid or expired access token")
	}
	if !claims.Role.Valid() {
		return domain.Actor{}, domainerrors.Unauthorized("token carries an unknown role")
	}
	return domain.Actor{UserID: claims.UserID, Role: claims.Role}, nil
}

// Me returns the profile of the authenticated user.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, mapUserErr(err)
	}
	return sanitizeUser(user), nil
}

// PurgeExpiredSessions removes dead sessions; called periodically by the
// background sweeper.
func (s *AuthService) PurgeExpiredSessions(ctx context.Context) (int, error) {
	n, err := s.store.DeleteExpiredSessions(ctx)
	if err != nil {
		return 0, mapSessionErr(err)
	}
	if n > 0 {
		s.logger.Info("expired sessions purged", "count", n)
	}
	return n, nil
}

// openSession creates a session row and issues the token pair.
func (s *AuthService) openSession(ctx context.Context, user *domain.User, clientIP, userAgent string) (*TokenPair, error) {
	refreshToken, err := s.tokens.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	sessionID, err := id.Generate("sess")
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}

	now := time.Now()
	session := &domain.Session{
		ID:               sessionID,
		UserID:           user.ID,
		RefreshTokenHash: auth.HashRefreshToken(refreshToken),
		ExpiresAt:        now.Add(s.tokens.RefreshTokenDuration()),
		CreatedAt:        now,
		LastSeenAt:       now,
		IPAddress:        clientIP,
		UserAgent:        userAgent,
	}

	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, mapSessionErr(err)
	}

	accessToken, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.tokens.AccessTokenDuration().Seconds()),
		User:         sanitizeUser(user),
	}, nil
}

// sanitizeUser strips the password hash before a user leaves the service
// layer.
func sanitizeUser(u *domain.User) *domain.User {
	clean := *u
	clean.PasswordHash = ""
	return &clean
}
