package models

import "time"

const (
	AttendancePresent = "present"
	AttendanceLate    = "late"
)

type Attendance struct {
	ID          int        `json:"id" db:"id"`
	EmployeeID  int        `json:"employeeId" db:"employee_id"`
	BranchID    int        `json:"branchId" db:"branch_id"`
	WorkDate    time.Time  `json:"workDate" db:"work_date"`
	CheckIn     time.Time  `json:"checkIn" db:"check_in"`
	CheckOut    *time.Time `json:"checkOut" db:"check_out"`
	Status      string     `json:"status" db:"status"`
	LateMinutes int        `json:"lateMinutes" db:"late_minutes"`
	Note        string     `json:"note" db:"note"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
}

// AttendanceFilter narrows attendance listings; zero values mean "any".
type AttendanceFilter struct {
	BranchID   *int
	EmployeeID *int
	From       *time.Time
	To         *time.Time
}
