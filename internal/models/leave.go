package models

import "time"

const (
	LeavePending  = "pending"
	LeaveApproved = "approved"
	LeaveRejected = "rejected"

	LeaveAnnual = "annual"
)

type LeaveRequest struct {
	ID         int       `json:"id" db:"id"`
	EmployeeID int       `json:"employeeId" db:"employee_id"`
	BranchID   int       `json:"branchId" db:"branch_id"`
	Type       string    `json:"type" db:"leave_type"`
	StartDate  time.Time `json:"startDate" db:"start_date"`
	EndDate    time.Time `json:"endDate" db:"end_date"`
	Days       int       `json:"days" db:"days"`
	Status     string    `json:"status" db:"status"`
	Reason     string    `json:"reason" db:"reason"`
	ReviewedBy *int      `json:"reviewedBy" db:"reviewed_by"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

type LeaveFilter struct {
	BranchID   *int
	EmployeeID *int
	Status     string
}
