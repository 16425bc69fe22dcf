package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/personeltakip/backend/internal/models"
)

const branchColumns = `id, name, address, phone, is_active, created_at, updated_at`

type BranchRepository struct {
	db *sql.DB
}

func NewBranchRepository(db *sql.DB) *BranchRepository {
	return &BranchRepository{db: db}
}

func scanBranch(row rowScanner) (*models.Branch, error) {
	var b models.Branch
	if err := row.Scan(&b.ID, &b.Name, &b.Address, &b.Phone, &b.IsActive, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns all branches, or only branchID when it is set.
func (r *BranchRepository) List(ctx context.Context, branchID *int) ([]models.Branch, error) {
	var where whereBuilder
	if branchID != nil {
		where.add("id = $%d", *branchID)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT `+branchColumns+` FROM branches`+where.String()+` ORDER BY name`, where.args...)
	if err != nil {
		return nil, mapError("list branches", err)
	}
	defer rows.Close()

	branches := []models.Branch{}
	for rows.Next() {
		b, err := scanBranch(rows)
		if err != nil {
			return nil, err
		}
		branches = append(branches, *b)
	}
	return branches, rows.Err()
}

func (r *BranchRepository) Get(ctx context.Context, id int) (*models.Branch, error) {
	b, err := scanBranch(r.db.QueryRowContext(ctx, `SELECT `+branchColumns+` FROM branches WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, mapError("get branch", err)
	}
	return b, nil
}

func (r *BranchRepository) Create(ctx context.Context, b *models.Branch) (*models.Branch, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO branches (name, address, phone, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		b.Name, b.Address, b.Phone, b.IsActive,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, mapError("create branch", err)
	}
	return b, nil
}

func (r *BranchRepository) Update(ctx context.Context, b *models.Branch) (*models.Branch, error) {
	err := r.db.QueryRowContext(ctx, `
		UPDATE branches
		SET name = $1, address = $2, phone = $3, is_active = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING created_at, updated_at`,
		b.Name, b.Address, b.Phone, b.IsActive, b.ID,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, mapError("update branch", err)
	}
	return b, nil
}

func (r *BranchRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM branches WHERE id = $1`, id)
	if err != nil {
		return mapError("delete branch", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
