package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/personeltakip/backend/internal/models"
)

type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, userID int, expiresAt time.Time) (*models.Session, error) {
	s := &models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: expiresAt,
	}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO sessions (sid, user_id, expires_at)
		VALUES ($1, $2, $3)
		RETURNING created_at`,
		s.ID, s.UserID, s.ExpiresAt,
	).Scan(&s.CreatedAt)
	if err != nil {
		return nil, mapError("create session", err)
	}
	return s, nil
}

// Get returns the session if it exists and has not expired at now.
func (r *SessionRepository) Get(ctx context.Context, sid string, now time.Time) (*models.Session, error) {
	var s models.Session
	err := r.db.QueryRowContext(ctx, `
		SELECT sid, user_id, expires_at, created_at
		FROM sessions
		WHERE sid = $1 AND expires_at > $2`,
		sid, now,
	).Scan(&s.ID, &s.UserID, &s.ExpiresAt, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, mapError("get session", err)
	}
	return &s, nil
}

// Delete removes a session. Deleting a missing session is not an error.
func (r *SessionRepository) Delete(ctx context.Context, sid string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE sid = $1`, sid); err != nil {
		return mapError("delete session", err)
	}
	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, mapError("prune sessions", err)
	}
	return res.RowsAffected()
}
