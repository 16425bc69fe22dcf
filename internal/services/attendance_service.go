package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/personeltakip/backend/internal/calendar"
	"github.com/personeltakip/backend/internal/models"
	"github.com/personeltakip/backend/internal/repository"
)

// CheckInInput records an arrival. Time defaults to now; QRCode, when given,
// must have been issued for the employee's branch.
type CheckInInput struct {
	EmployeeID int        `json:"employeeId" validate:"required,gt=0" example:"12"`
	Time       *time.Time `json:"time,omitempty"`
	QRCode     string     `json:"qrCode,omitempty"`
	Note       string     `json:"note,omitempty" validate:"max=255"`
}

type CheckOutInput struct {
	EmployeeID int        `json:"employeeId" validate:"required,gt=0" example:"12"`
	Time       *time.Time `json:"time,omitempty"`
}

type AttendanceService struct {
	attendance AttendanceStore
	employees  EmployeeStore
	shifts     ShiftStore
	qr         *QRService
	location   *time.Location
	now        func() time.Time
}

func NewAttendanceService(attendance AttendanceStore, employees EmployeeStore, shifts ShiftStore, qr *QRService, location *time.Location) *AttendanceService {
	return &AttendanceService{
		attendance: attendance,
		employees:  employees,
		shifts:     shifts,
		qr:         qr,
		location:   location,
		now:        time.Now,
	}
}

func (s *AttendanceService) List(ctx context.Context, actor *models.User, f models.AttendanceFilter) ([]models.Attendance, error) {
	scope, err := scopeBranch(actor, f.BranchID)
	if err != nil {
		return nil, err
	}
	f.BranchID = scope
	return s.attendance.List(ctx, f)
}

func (s *AttendanceService) CheckIn(ctx context.Context, actor *models.User, in CheckInInput) (*models.Attendance, error) {
	employee, err := s.employee(ctx, actor, in.EmployeeID)
	if err != nil {
		return nil, err
	}

	at := s.at(in.Time)
	workDate := calendar.DateOnly(at)

	_, err = s.attendance.GetForDay(ctx, employee.ID, workDate)
	if err == nil {
		return nil, ErrAlreadyCheckedIn
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	// A rejected check-in must not burn the branch code.
	if in.QRCode != "" {
		branchID, err := s.qr.ConsumeCheckInCode(ctx, in.QRCode)
		if err != nil {
			return nil, err
		}
		if branchID != employee.BranchID {
			return nil, ErrInvalidQRCode
		}
	}

	record := &models.Attendance{
		EmployeeID: employee.ID,
		BranchID:   employee.BranchID,
		WorkDate:   workDate,
		CheckIn:    at,
		Status:     models.AttendancePresent,
		Note:       in.Note,
	}

	if employee.ShiftID != nil {
		shift, err := s.shifts.Get(ctx, *employee.ShiftID)
		if err != nil {
			return nil, err
		}
		late, err := lateMinutes(shift, at)
		if err != nil {
			return nil, err
		}
		if late > 0 {
			record.Status = models.AttendanceLate
			record.LateMinutes = late
		}
	}

	created, err := s.attendance.Create(ctx, record)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrAlreadyCheckedIn
	}
	if err != nil {
		return nil, err
	}

	log.Printf("[ATTENDANCE] Employee %d checked in (%s)", employee.ID, created.Status)
	return created, nil
}

func (s *AttendanceService) CheckOut(ctx context.Context, actor *models.User, in CheckOutInput) (*models.Attendance, error) {
	employee, err := s.employee(ctx, actor, in.EmployeeID)
	if err != nil {
		return nil, err
	}

	at := s.at(in.Time)
	record, err := s.attendance.GetForDay(ctx, employee.ID, calendar.DateOnly(at))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotCheckedIn
	}
	if err != nil {
		return nil, err
	}
	if record.CheckOut != nil {
		return nil, ErrAlreadyCheckedOut
	}
	if at.Before(record.CheckIn) {
		return nil, ErrCheckOutBeforeIn
	}

	err = s.attendance.SetCheckOut(ctx, record.ID, at)
	if errors.Is(err, repository.ErrConflict) {
		return nil, ErrAlreadyCheckedOut
	}
	if err != nil {
		return nil, err
	}

	record.CheckOut = &at
	log.Printf("[ATTENDANCE] Employee %d checked out", employee.ID)
	return record, nil
}

func (s *AttendanceService) employee(ctx context.Context, actor *models.User, id int) (*models.Employee, error) {
	employee, err := s.employees.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := canAccessBranch(actor, employee.BranchID); err != nil {
		return nil, err
	}
	if !employee.IsActive {
		return nil, ErrEmployeeInactive
	}
	return employee, nil
}

// at returns the requested time or now, in the business time zone.
func (s *AttendanceService) at(t *time.Time) time.Time {
	if t != nil {
		return t.In(s.location)
	}
	return s.now().In(s.location)
}

// lateMinutes counts whole minutes past shift start plus tolerance.
func lateMinutes(shift *models.Shift, at time.Time) (int, error) {
	start, err := shift.StartOn(at)
	if err != nil {
		return 0, err
	}
	deadline := start.Add(time.Duration(shift.LateToleranceMinutes) * time.Minute)
	if !at.After(deadline) {
		return 0, nil
	}
	return int(at.Sub(deadline) / time.Minute), nil
}
