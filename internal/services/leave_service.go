package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/personeltakip/backend/internal/audit"
	"github.com/personeltakip/backend/internal/calendar"
	"github.com/personeltakip/backend/internal/models"
	"github.com/personeltakip/backend/internal/repository"
)

type LeaveInput struct {
	EmployeeID int    `json:"employeeId" validate:"required,gt=0" example:"12"`
	Type       string `json:"type" validate:"required,oneof=annual sick unpaid maternity bereavement other" example:"annual"`
	StartDate  string `json:"startDate" validate:"required" example:"2024-10-28"`
	EndDate    string `json:"endDate" validate:"required" example:"2024-11-01"`
	Reason     string `json:"reason,omitempty" validate:"max=500"`
}

type LeaveStatusInput struct {
	Status string `json:"status" validate:"required" example:"approved"`
}

type LeaveService struct {
	leaves    LeaveStore
	employees EmployeeStore
	holidays  HolidayStore
	audit     *audit.Logger
}

func NewLeaveService(leaves LeaveStore, employees EmployeeStore, holidays HolidayStore, auditLogger *audit.Logger) *LeaveService {
	return &LeaveService{leaves: leaves, employees: employees, holidays: holidays, audit: auditLogger}
}

func (s *LeaveService) List(ctx context.Context, actor *models.User, f models.LeaveFilter) ([]models.LeaveRequest, error) {
	scope, err := scopeBranch(actor, f.BranchID)
	if err != nil {
		return nil, err
	}
	f.BranchID = scope
	return s.leaves.List(ctx, f)
}

// WorkingDays counts leave days in [start, end], skipping weekends, national
// holidays and stored holidays.
func (s *LeaveService) WorkingDays(ctx context.Context, start, end time.Time) (int, error) {
	stored, err := s.holidays.Between(ctx, start, end)
	if err != nil {
		return 0, err
	}
	extra := make([]time.Time, 0, len(stored))
	for _, h := range stored {
		extra = append(extra, h.Day)
	}
	return calendar.WorkingDays(start, end, extra), nil
}

func (s *LeaveService) Create(ctx context.Context, actor *models.User, in LeaveInput) (*models.LeaveRequest, error) {
	start, err := time.Parse("2006-01-02", in.StartDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	end, err := time.Parse("2006-01-02", in.EndDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	employee, err := s.employees.Get(ctx, in.EmployeeID)
	if err != nil {
		return nil, err
	}
	if err := canAccessBranch(actor, employee.BranchID); err != nil {
		return nil, err
	}
	if !employee.IsActive {
		return nil, ErrEmployeeInactive
	}

	days, err := s.WorkingDays(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if days == 0 {
		return nil, ErrNoWorkingDays
	}

	if in.Type == models.LeaveAnnual {
		if err := s.checkAllowance(ctx, employee, start, end, days); err != nil {
			return nil, err
		}
	}

	return s.leaves.Create(ctx, &models.LeaveRequest{
		EmployeeID: employee.ID,
		BranchID:   employee.BranchID,
		Type:       in.Type,
		StartDate:  start,
		EndDate:    end,
		Days:       days,
		Reason:     strings.TrimSpace(in.Reason),
	})
}

// Review approves or rejects a pending request.
func (s *LeaveService) Review(ctx context.Context, actor *models.User, id int, status string) (*models.LeaveRequest, error) {
	if status != models.LeaveApproved && status != models.LeaveRejected {
		return nil, ErrInvalidLeaveStatus
	}

	leave, err := s.get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	err = s.leaves.SetStatus(ctx, id, status, actor.ID)
	if errors.Is(err, repository.ErrConflict) {
		return nil, ErrLeaveNotPending
	}
	if err != nil {
		return nil, err
	}

	s.audit.LogSuccess(audit.EventLeaveReviewed, actor.ID, map[string]string{"leave": leave.Type, "status": status})
	log.Printf("[LEAVE] Request %d %s by user %d", id, status, actor.ID)

	leave.Status = status
	reviewer := actor.ID
	leave.ReviewedBy = &reviewer
	return leave, nil
}

func (s *LeaveService) Delete(ctx context.Context, actor *models.User, id int) error {
	if _, err := s.get(ctx, actor, id); err != nil {
		return err
	}
	err := s.leaves.DeletePending(ctx, id)
	if errors.Is(err, repository.ErrConflict) {
		return ErrLeaveNotPending
	}
	return err
}

// checkAllowance charges each calendar year only with the working days of
// the request that fall inside it, against the yearly allowance.
func (s *LeaveService) checkAllowance(ctx context.Context, employee *models.Employee, start, end time.Time, days int) error {
	for year := start.Year(); year <= end.Year(); year++ {
		requested := days
		if start.Year() != end.Year() {
			var err error
			if requested, err = s.workingDaysIn(ctx, start, end, year); err != nil {
				return err
			}
		}
		if requested == 0 {
			continue
		}

		existing, err := s.leaves.AnnualLeavesIn(ctx, employee.ID, year)
		if err != nil {
			return err
		}
		used := 0
		for _, l := range existing {
			if l.StartDate.Year() == year && l.EndDate.Year() == year {
				used += l.Days
				continue
			}
			d, err := s.workingDaysIn(ctx, l.StartDate, l.EndDate, year)
			if err != nil {
				return err
			}
			used += d
		}

		if used+requested > employee.AnnualLeaveDays {
			return ErrInsufficientLeave
		}
	}
	return nil
}

// workingDaysIn counts the working days of [start, end] within year.
func (s *LeaveService) workingDaysIn(ctx context.Context, start, end time.Time, year int) (int, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	start, end = calendar.DateOnly(start), calendar.DateOnly(end)
	if start.Before(from) {
		start = from
	}
	if end.After(to) {
		end = to
	}
	if end.Before(start) {
		return 0, nil
	}
	return s.WorkingDays(ctx, start, end)
}

func (s *LeaveService) get(ctx context.Context, actor *models.User, id int) (*models.LeaveRequest, error) {
	leave, err := s.leaves.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := canAccessBranch(actor, leave.BranchID); err != nil {
		return nil, err
	}
	return leave, nil
}
