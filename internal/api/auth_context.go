package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/f246632/rijeka-online/internal/domain"
	domainerrors "github.com/f246632/rijeka-online/internal/errors"
	"github.com/f246632/rijeka-online/internal/service"
)

// ctxKey is the type for context keys to avoid collisions.
type ctxKey string

// actorKey is the context key for the authenticated actor.
const actorKey ctxKey = "actor"

// GetActor returns the authenticated actor from context.
// Returns 401 error if the request carries no valid token.
func GetActor(ctx context.Context) (domain.Actor, error) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	if !ok || actor.UserID == "" {
		return domain.Actor{}, huma.Error401Unauthorized("Authentication required")
	}
	return actor, nil
}

// setActor stores the actor in context.
func setActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// authMiddleware validates Bearer tokens and stores the actor in context.
// If no token is present or it is invalid, the request continues without an
// actor; handlers use GetActor to reject where authentication is required.
func authMiddleware(auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}

			actor, err := auth.Verify(authHeader[7:])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(setActor(r.Context(), actor)))
		})
	}
}

// RequireEditor validates the actor is authenticated with at least the
// editor role.
func RequireEditor(ctx context.Context) (domain.Actor, error) {
	actor, err := GetActor(ctx)
	if err != nil {
		return domain.Actor{}, err
	}
	if actor.Role != domain.RoleAdmin && actor.Role != domain.RoleEditor {
		return domain.Actor{}, domainerrors.Forbidden("Editor access required")
	}
	return actor, nil
}

// RequireAdmin validates the actor is authenticated with the admin role.
func RequireAdmin(ctx context.Context) (domain.Actor, error) {
	actor, err := GetActor(ctx)
	if err != nil {
		return domain.Actor{}, err
	}
	if actor.Role != domain.RoleAdmin {
		return domain.Actor{}, domainerrors.Forbidden("Admin access required")
	}
	return actor, nil
}
