package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/personeltakip/backend/internal/middleware"
	"github.com/personeltakip/backend/internal/models"
	"github.com/personeltakip/backend/internal/services"
)

// currentUser returns the session user set by middleware.RequireAuth.
func currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		services.SendErrorResponse(w, "Not authenticated", http.StatusUnauthorized, nil)
		return nil, false
	}
	return user, true
}

func idParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		services.SendErrorResponse(w, "Invalid id", http.StatusBadRequest, nil)
		return 0, false
	}
	return id, true
}

// queryInt parses an optional positive integer query parameter.
func queryInt(w http.ResponseWriter, r *http.Request, key string) (*int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		services.SendErrorResponse(w, "Invalid "+key, http.StatusBadRequest, nil)
		return nil, false
	}
	return &v, true
}

func queryBool(w http.ResponseWriter, r *http.Request, key string) (*bool, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		services.SendErrorResponse(w, "Invalid "+key, http.StatusBadRequest, nil)
		return nil, false
	}
	return &v, true
}

// queryDate parses an optional YYYY-MM-DD query parameter.
func queryDate(w http.ResponseWriter, r *http.Request, key string) (*time.Time, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, true
	}
	v, err := time.Parse("2006-01-02", raw)
	if err != nil {
		services.SendErrorResponse(w, "Invalid "+key, http.StatusBadRequest, nil)
		return nil, false
	}
	return &v, true
}
