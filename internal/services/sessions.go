package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/personeltakip/backend/internal/config"
	"github.com/personeltakip/backend/internal/models"
	"github.com/personeltakip/backend/internal/repository"
)

var errMissingSecret = errors.New("session secret is required")

// SessionManager creates server-side sessions and binds them to a cookie. The
// cookie carries the session id inside an HS256 token so tampered ids are
// rejected before any store lookup.
type SessionManager struct {
	store  SessionStore
	users  UserStore
	config *config.SessionConfig
	now    func() time.Time
}

func NewSessionManager(store SessionStore, users UserStore, cfg *config.SessionConfig) (*SessionManager, error) {
	if cfg.Secret == "" {
		return nil, errMissingSecret
	}
	return &SessionManager{store: store, users: users, config: cfg, now: time.Now}, nil
}

// Establish persists a new session for user and sets the cookie on w.
func (m *SessionManager) Establish(ctx context.Context, w http.ResponseWriter, user *models.User) (*models.Session, error) {
	expiresAt := m.now().Add(m.config.TTL)
	session, err := m.store.Create(ctx, user.ID, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	token, err := m.sign(session)
	if err != nil {
		return nil, fmt.Errorf("sign session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.config.CookieName,
		Value:    token,
		Path:     "/",
		Domain:   m.config.CookieDomain,
		Expires:  session.ExpiresAt,
		MaxAge:   int(m.config.TTL.Seconds()),
		HttpOnly: true,
		Secure:   m.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return session, nil
}

// LoadSession resolves the request cookie to a live session and its active user.
func (m *SessionManager) LoadSession(r *http.Request) (*models.User, *models.Session, error) {
	sid, err := m.sessionID(r)
	if err != nil {
		return nil, nil, ErrUnauthenticated
	}

	ctx := r.Context()
	session, err := m.store.Get(ctx, sid, m.now())
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load session: %w", err)
	}

	user, err := m.users.GetByID(ctx, session.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load session user: %w", err)
	}
	if !user.IsActive {
		return nil, nil, ErrUnauthenticated
	}
	return user, session, nil
}

// Load returns the authenticated user for r.
func (m *SessionManager) Load(r *http.Request) (*models.User, error) {
	user, _, err := m.LoadSession(r)
	return user, err
}

// Destroy removes the session named by the cookie, if any, and clears the
// cookie. Calling it without a session is not an error.
func (m *SessionManager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var err error
	if sid, parseErr := m.sessionID(r); parseErr == nil {
		err = m.store.Delete(ctx, sid)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.config.CookieName,
		Value:    "",
		Path:     "/",
		Domain:   m.config.CookieDomain,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return err
}

// Prune deletes expired sessions and returns how many were removed.
func (m *SessionManager) Prune(ctx context.Context) (int64, error) {
	return m.store.DeleteExpired(ctx, m.now())
}

// StartPruning runs Prune every interval until ctx is cancelled.
func (m *SessionManager) StartPruning(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := m.Prune(ctx)
			if err != nil {
				log.Printf("[SESSION] Prune failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("[SESSION] Pruned %d expired sessions", n)
			}
		}
	}
}

func (m *SessionManager) sign(session *models.Session) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        session.ID,
		IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.config.Secret))
}

func (m *SessionManager) sessionID(r *http.Request) (string, error) {
	cookie, err := r.Cookie(m.config.CookieName)
	if err != nil || cookie.Value == "" {
		return "", ErrUnauthenticated
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(m.config.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil || !token.Valid || claims.ID == "" {
		return "", ErrUnauthenticated
	}
	return claims.ID, nil
}
