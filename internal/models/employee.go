package models

import "time"

type Employee struct {
	ID              int       `json:"id" db:"id"`
	BranchID        int       `json:"branchId" db:"branch_id"`
	ShiftID         *int      `json:"shiftId" db:"shift_id"`
	FirstName       string    `json:"firstName" db:"first_name"`
	LastName        string    `json:"lastName" db:"last_name"`
	Phone           string    `json:"phone" db:"phone"`
	TCNo            string    `json:"tcNo" db:"tc_no"`
	Position        string    `json:"position" db:"position"`
	HireDate        time.Time `json:"hireDate" db:"hire_date"`
	AnnualLeaveDays int       `json:"annualLeaveDays" db:"annual_leave_days"`
	IsActive        bool      `json:"isActive" db:"is_active"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
