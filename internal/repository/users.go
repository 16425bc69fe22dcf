package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/personeltakip/backend/internal/models"
)

const userColumns = `id, phone, password_hash, name, role, branch_id, is_active,
	two_factor_code, two_factor_expiry, two_factor_generation, created_at, updated_at`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	var branchID sql.NullInt64
	var code sql.NullString
	var expiry sql.NullTime
	err := row.Scan(&u.ID, &u.Phone, &u.PasswordHash, &u.Name, &u.Role, &branchID, &u.IsActive,
		&code, &expiry, &u.TwoFactorGeneration, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if branchID.Valid {
		id := int(branchID.Int64)
		u.BranchID = &id
	}
	if code.Valid {
		u.TwoFactorCode = &code.String
	}
	if expiry.Valid {
		u.TwoFactorExpiry = &expiry.Time
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) (*models.User, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (phone, password_hash, name, role, branch_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_active, created_at, updated_at`,
		u.Phone, u.PasswordHash, u.Name, u.Role, u.BranchID,
	).Scan(&u.ID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, mapError("create user", err)
	}
	return u, nil
}

func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE phone = $1`, phone))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, mapError("get user by phone", err)
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, mapError("get user", err)
	}
	return u, nil
}

// SetPendingCode overwrites the pending two-factor code and returns the new
// generation number of the pending login.
func (r *UserRepository) SetPendingCode(ctx context.Context, userID int, code string, expiry time.Time) (int64, error) {
	var generation int64
	err := r.db.QueryRowContext(ctx, `
		UPDATE users
		SET two_factor_code = $1, two_factor_expiry = $2,
			two_factor_generation = two_factor_generation + 1, updated_at = NOW()
		WHERE id = $3
		RETURNING two_factor_generation`,
		code, expiry, userID,
	).Scan(&generation)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, mapError("set pending code", err)
	}
	return generation, nil
}

// ClearPendingCode clears the pending code only if it still belongs to
// generation. It reports false when another request consumed or replaced it.
func (r *UserRepository) ClearPendingCode(ctx context.Context, userID int, generation int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET two_factor_code = NULL, two_factor_expiry = NULL, updated_at = NOW()
		WHERE id = $1 AND two_factor_generation = $2 AND two_factor_code IS NOT NULL`,
		userID, generation)
	if err != nil {
		return false, mapError("clear pending code", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
