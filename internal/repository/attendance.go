package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/personeltakip/backend/internal/models"
)

const attendanceColumns = `id, employee_id, branch_id, work_date, check_in, check_out, status, late_minutes, note, created_at`

type AttendanceRepository struct {
	db *sql.DB
}

func NewAttendanceRepository(db *sql.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

func scanAttendance(row rowScanner) (*models.Attendance, error) {
	var a models.Attendance
	var checkOut sql.NullTime
	err := row.Scan(&a.ID, &a.EmployeeID, &a.BranchID, &a.WorkDate, &a.CheckIn, &checkOut,
		&a.Status, &a.LateMinutes, &a.Note, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	if checkOut.Valid {
		a.CheckOut = &checkOut.Time
	}
	return &a, nil
}

func (r *AttendanceRepository) List(ctx context.Context, f models.AttendanceFilter) ([]models.Attendance, error) {
	var where whereBuilder
	if f.BranchID != nil {
		where.add("branch_id = $%d", *f.BranchID)
	}
	if f.EmployeeID != nil {
		where.add("employee_id = $%d", *f.EmployeeID)
	}
	if f.From != nil {
		where.add("work_date >= $%d", *f.From)
	}
	if f.To != nil {
		where.add("work_date <= $%d", *f.To)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+attendanceColumns+` FROM attendance`+where.String()+` ORDER BY work_date DESC, check_in`, where.args...)
	if err != nil {
		return nil, mapError("list attendance", err)
	}
	defer rows.Close()

	records := []models.Attendance{}
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *a)
	}
	return records, rows.Err()
}

// GetForDay returns the employee's record for the calendar day of workDate.
func (r *AttendanceRepository) GetForDay(ctx context.Context, employeeID int, workDate time.Time) (*models.Attendance, error) {
	a, err := scanAttendance(r.db.QueryRowContext(ctx,
		`SELECT `+attendanceColumns+` FROM attendance WHERE employee_id = $1 AND work_date = $2`,
		employeeID, workDate.Format("2006-01-02")))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, mapError("get attendance", err)
	}
	return a, nil
}

func (r *AttendanceRepository) Create(ctx context.Context, a *models.Attendance) (*models.Attendance, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO attendance (employee_id, branch_id, work_date, check_in, status, late_minutes, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		a.EmployeeID, a.BranchID, a.WorkDate.Format("2006-01-02"), a.CheckIn, a.Status, a.LateMinutes, a.Note,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return nil, mapError("create attendance", err)
	}
	return a, nil
}

// SetCheckOut stamps the check-out time once; a second call returns ErrConflict.
func (r *AttendanceRepository) SetCheckOut(ctx context.Context, id int, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE attendance SET check_out = $1 WHERE id = $2 AND check_out IS NULL`, at, id)
	if err != nil {
		return mapError("check out", err)
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
