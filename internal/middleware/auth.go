package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/personeltakip/backend/internal/models"
)

type contextKey string

const userKey contextKey = "user"

// SessionLoader resolves the authenticated user of a request.
type SessionLoader interface {
	Load(r *http.Request) (*models.User, error)
}

// RequireAuth rejects requests without a live session and stores the session
// user in the request context.
func RequireAuth(loader SessionLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := loader.Load(r)
			if err != nil || user == nil {
				writeError(w, "Not authenticated", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireRole allows only users holding one of roles. It must run after
// RequireAuth.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				writeError(w, "Not authenticated", http.StatusUnauthorized)
				return
			}
			if !user.HasRole(roles...) {
				log.Printf("[AUTH] User %d with role %s denied %s %s", user.ID, user.Role, r.Method, r.URL.Path)
				writeError(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok && user != nil
}

func writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
