package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/personeltakip/backend/internal/models"
)

const shiftColumns = `id, branch_id, name, start_time, end_time, late_tolerance_minutes, created_at`

type ShiftRepository struct {
	db *sql.DB
}

func NewShiftRepository(db *sql.DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

func scanShift(row rowScanner) (*models.Shift, error) {
	var s models.Shift
	if err := row.Scan(&s.ID, &s.BranchID, &s.Name, &s.StartTime, &s.EndTime, &s.LateToleranceMinutes, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ShiftRepository) List(ctx context.Context, branchID *int) ([]models.Shift, error) {
	var where whereBuilder
	if branchID != nil {
		where.add("branch_id = $%d", *branchID)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT `+shiftColumns+` FROM shifts`+where.String()+` ORDER BY start_time`, where.args...)
	if err != nil {
		return nil, mapError("list shifts", err)
	}
	defer rows.Close()

	shifts := []models.Shift{}
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, *s)
	}
	return shifts, rows.Err()
}

func (r *ShiftRepository) Get(ctx context.Context, id int) (*models.Shift, error) {
	s, err := scanShift(r.db.QueryRowContext(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, mapError("get shift", err)
	}
	return s, nil
}

func (r *ShiftRepository) Create(ctx context.Context, s *models.Shift) (*models.Shift, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO shifts (branch_id, name, start_time, end_time, late_tolerance_minutes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		s.BranchID, s.Name, s.StartTime, s.EndTime, s.LateToleranceMinutes,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return nil, mapError("create shift", err)
	}
	return s, nil
}

func (r *ShiftRepository) Update(ctx context.Context, s *models.Shift) (*models.Shift, error) {
	err := r.db.QueryRowContext(ctx, `
		UPDATE shifts
		SET name = $1, start_time = $2, end_time = $3, late_tolerance_minutes = $4
		WHERE id = $5
		RETURNING branch_id, created_at`,
		s.Name, s.StartTime, s.EndTime, s.LateToleranceMinutes, s.ID,
	).Scan(&s.BranchID, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, mapError("update shift", err)
	}
	return s, nil
}

func (r *ShiftRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return mapError("delete shift", err)
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
