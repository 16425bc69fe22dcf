package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/personeltakip/backend/internal/models"
)

const leaveColumns = `id, employee_id, branch_id, leave_type, start_date, end_date, days, status, reason,
	reviewed_by, created_at, updated_at`

type LeaveRepository struct {
	db *sql.DB
}

func NewLeaveRepository(db *sql.DB) *LeaveRepository {
	return &LeaveRepository{db: db}
}

func scanLeave(row rowScanner) (*models.LeaveRequest, error) {
	var l models.LeaveRequest
	var reviewer sql.NullInt64
	err := row.Scan(&l.ID, &l.EmployeeID, &l.BranchID, &l.Type, &l.StartDate, &l.EndDate, &l.Days,
		&l.Status, &l.Reason, &reviewer, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if reviewer.Valid {
		id := int(reviewer.Int64)
		l.ReviewedBy = &id
	}
	return &l, nil
}

func (r *LeaveRepository) List(ctx context.Context, f models.LeaveFilter) ([]models.LeaveRequest, error) {
	var where whereBuilder
	if f.BranchID != nil {
		where.add("branch_id = $%d", *f.BranchID)
	}
	if f.EmployeeID != nil {
		where.add("employee_id = $%d", *f.EmployeeID)
	}
	if f.Status != "" {
		where.add("status = $%d", f.Status)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+leaveColumns+` FROM leave_requests`+where.String()+` ORDER BY start_date DESC`, where.args...)
	if err != nil {
		return nil, mapError("list leave requests", err)
	}
	defer rows.Close()

	leaves := []models.LeaveRequest{}
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, *l)
	}
	return leaves, rows.Err()
}

func (r *LeaveRepository) Get(ctx context.Context, id int) (*models.LeaveRequest, error) {
	l, err := scanLeave(r.db.QueryRowContext(ctx, `SELECT `+leaveColumns+` FROM leave_requests WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, mapError("get leave request", err)
	}
	return l, nil
}

func (r *LeaveRepository) Create(ctx context.Context, l *models.LeaveRequest) (*models.LeaveRequest, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO leave_requests (employee_id, branch_id, leave_type, start_date, end_date, days, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, status, created_at, updated_at`,
		l.EmployeeID, l.BranchID, l.Type, l.StartDate.Format("2006-01-02"), l.EndDate.Format("2006-01-02"), l.Days, l.Reason,
	).Scan(&l.ID, &l.Status, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, mapError("create leave request", err)
	}
	return l, nil
}

// SetStatus moves a pending request to status. Non-pending requests yield ErrConflict.
func (r *LeaveRepository) SetStatus(ctx context.Context, id int, status string, reviewerID int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE leave_requests
		SET status = $1, reviewed_by = $2, updated_at = NOW()
		WHERE id = $3 AND status = 'pending'`,
		status, reviewerID, id)
	if err != nil {
		return mapError("set leave status", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}

// DeletePending removes a request that has not been reviewed yet.
func (r *LeaveRepository) DeletePending(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM leave_requests WHERE id = $1 AND status = 'pending'`, id)
	if err != nil {
		return mapError("delete leave request", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}

// AnnualLeavesIn returns the pending and approved annual leave requests of an
// employee that overlap the given calendar year.
func (r *LeaveRepository) AnnualLeavesIn(ctx context.Context, employeeID, year int) ([]models.LeaveRequest, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+leaveColumns+`
		FROM leave_requests
		WHERE employee_id = $1 AND leave_type = 'annual'
			AND status IN ('pending', 'approved')
			AND start_date <= make_date($2, 12, 31)
			AND end_date >= make_date($2, 1, 1)
		ORDER BY start_date`,
		employeeID, year,
	)
	if err != nil {
		return nil, mapError("list annual leave", err)
	}
	defer rows.Close()

	leaves := []models.LeaveRequest{}
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, *l)
	}
	return leaves, rows.Err()
}
