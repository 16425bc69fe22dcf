package services

import (
	"context"
	"time"

	"github.com/personeltakip/backend/internal/models"
	"github.com/personeltakip/backend/internal/repository"
)

// Persistence contracts used by the services. The repository package provides
// the Postgres implementations.

type UserStore interface {
	Create(ctx context.Context, u *models.User) (*models.User, error)
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	SetPendingCode(ctx context.Context, userID int, code string, expiry time.Time) (int64, error)
	ClearPendingCode(ctx context.Context, userID int, generation int64) (bool, error)
}

type SessionStore interface {
	Create(ctx context.Context, userID int, expiresAt time.Time) (*models.Session, error)
	Get(ctx context.Context, sid string, now time.Time) (*models.Session, error)
	Delete(ctx context.Context, sid string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type BranchStore interface {
	List(ctx context.Context, branchID *int) ([]models.Branch, error)
	Get(ctx context.Context, id int) (*models.Branch, error)
	Create(ctx context.Context, b *models.Branch) (*models.Branch, error)
	Update(ctx context.Context, b *models.Branch) (*models.Branch, error)
	Delete(ctx context.Context, id int) error
}

type ShiftStore interface {
	List(ctx context.Context, branchID *int) ([]models.Shift, error)
	Get(ctx context.Context, id int) (*models.Shift, error)
	Create(ctx context.Context, s *models.Shift) (*models.Shift, error)
	Update(ctx context.Context, s *models.Shift) (*models.Shift, error)
	Delete(ctx context.Context, id int) error
}

type EmployeeStore interface {
	List(ctx context.Context, f repository.EmployeeFilter) ([]models.Employee, error)
	Get(ctx context.Context, id int) (*models.Employee, error)
	Create(ctx context.Context, e *models.Employee) (*models.Employee, error)
	Update(ctx context.Context, e *models.Employee) (*models.Employee, error)
	Deactivate(ctx context.Context, id int) error
}

type AttendanceStore interface {
	List(ctx context.Context, f models.AttendanceFilter) ([]models.Attendance, error)
	GetForDay(ctx context.Context, employeeID int, workDate time.Time) (*models.Attendance, error)
	Create(ctx context.Context, a *models.Attendance) (*models.Attendance, error)
	SetCheckOut(ctx context.Context, id int, at time.Time) error
}

type LeaveStore interface {
	List(ctx context.Context, f models.LeaveFilter) ([]models.LeaveRequest, error)
	Get(ctx context.Context, id int) (*models.LeaveRequest, error)
	Create(ctx context.Context, l *models.LeaveRequest) (*models.LeaveRequest, error)
	SetStatus(ctx context.Context, id int, status string, reviewerID int) error
	DeletePending(ctx context.Context, id int) error
	AnnualLeavesIn(ctx context.Context, employeeID, year int) ([]models.LeaveRequest, error)
}

type HolidayStore interface {
	Between(ctx context.Context, from, to time.Time) ([]models.Holiday, error)
	Create(ctx context.Context, h *models.Holiday) (*models.Holiday, error)
	Delete(ctx context.Context, id int) error
}
