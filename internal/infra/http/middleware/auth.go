package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/tradestack/tradestack-api/internal/infra/integration/supabase"
)

type contextKey string

const (
	userIDKey    contextKey = "user_id"
	userEmailKey contextKey = "user_email"
)

type SessionVerifier interface {
	GetUser(ctx context.Context, accessToken string) (*supabase.User, error)
}

// Auth validates the bearer token against the hosted auth service and
// injects the authenticated user into the request context.
func Auth(verifier SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				unauthorized(w)
				return
			}

			user, err := verifier.GetUser(r.Context(), token)
			if err != nil {
				if errors.Is(err, supabase.ErrUnauthorized) {
					unauthorized(w)
					return
				}
				http.Error(w, `{"error": "auth service unavailable"}`, http.StatusServiceUnavailable)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, user.ID)
			ctx = context.WithValue(ctx, userEmailKey, user.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := r.Cookie("access_token"); err == nil {
		return cookie.Value
	}
	return ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error": "unauthorized"}`))
}

// UserID returns the authenticated user id stored by Auth.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

func UserEmail(ctx context.Context) string {
	email, _ := ctx.Value(userEmailKey).(string)
	return email
}
