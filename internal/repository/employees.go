package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/personeltakip/backend/internal/models"
)

const employeeColumns = `id, branch_id, shift_id, first_name, last_name, phone, tc_no, position,
	hire_date, annual_leave_days, is_active, created_at, updated_at`

type EmployeeFilter struct {
	BranchID *int
	Active   *bool
}

type EmployeeRepository struct {
	db *sql.DB
}

func NewEmployeeRepository(db *sql.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func scanEmployee(row rowScanner) (*models.Employee, error) {
	var e models.Employee
	var shiftID sql.NullInt64
	err := row.Scan(&e.ID, &e.BranchID, &shiftID, &e.FirstName, &e.LastName, &e.Phone, &e.TCNo, &e.Position,
		&e.HireDate, &e.AnnualLeaveDays, &e.IsActive, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if shiftID.Valid {
		id := int(shiftID.Int64)
		e.ShiftID = &id
	}
	return &e, nil
}

func (r *EmployeeRepository) List(ctx context.Context, f EmployeeFilter) ([]models.Employee, error) {
	var where whereBuilder
	if f.BranchID != nil {
		where.add("branch_id = $%d", *f.BranchID)
	}
	if f.Active != nil {
		where.add("is_active = $%d", *f.Active)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+employeeColumns+` FROM employees`+where.String()+` ORDER BY last_name, first_name`, where.args...)
	if err != nil {
		return nil, mapError("list employees", err)
	}
	defer rows.Close()

	employees := []models.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, *e)
	}
	return employees, rows.Err()
}

func (r *EmployeeRepository) Get(ctx context.Context, id int) (*models.Employee, error) {
	e, err := scanEmployee(r.db.QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, mapError("get employee", err)
	}
	return e, nil
}

func (r *EmployeeRepository) Create(ctx context.Context, e *models.Employee) (*models.Employee, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO employees (branch_id, shift_id, first_name, last_name, phone, tc_no, position, hire_date, annual_leave_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, is_active, created_at, updated_at`,
		e.BranchID, e.ShiftID, e.FirstName, e.LastName, e.Phone, e.TCNo, e.Position, e.HireDate, e.AnnualLeaveDays,
	).Scan(&e.ID, &e.IsActive, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, mapError("create employee", err)
	}
	return e, nil
}

func (r *EmployeeRepository) Update(ctx context.Context, e *models.Employee) (*models.Employee, error) {
	err := r.db.QueryRowContext(ctx, `
		UPDATE employees
		SET branch_id = $1, shift_id = $2, first_name = $3, last_name = $4, phone = $5,
			position = $6, hire_date = $7, annual_leave_days = $8, is_active = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING tc_no, created_at, updated_at`,
		e.BranchID, e.ShiftID, e.FirstName, e.LastName, e.Phone, e.Position, e.HireDate, e.AnnualLeaveDays, e.IsActive, e.ID,
	).Scan(&e.TCNo, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, mapError("update employee", err)
	}
	return e, nil
}

// Deactivate soft-deletes an employee; attendance and leave history stay.
func (r *EmployeeRepository) Deactivate(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `UPDATE employees SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return mapError("deactivate employee", err)
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
