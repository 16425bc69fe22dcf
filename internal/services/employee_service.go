package services

import (
	"context"
	"strings"
	"time"

	"github.com/personeltakip/backend/internal/models"
	"github.com/personeltakip/backend/internal/repository"
)

const defaultAnnualLeaveDays = 14

// EmployeeInput is the create/update payload. TCNo is fixed after creation.
type EmployeeInput struct {
	BranchID        int    `json:"branchId" validate:"required,gt=0" example:"1"`
	ShiftID         *int   `json:"shiftId,omitempty" validate:"omitempty,gt=0" example:"2"`
	FirstName       string `json:"firstName" validate:"required,max=80" example:"Mehmet"`
	LastName        string `json:"lastName" validate:"required,max=80" example:"Demir"`
	Phone           string `json:"phone" validate:"omitempty,max=20" example:"05321234567"`
	TCNo            string `json:"tcNo" validate:"required,len=11,numeric" example:"12345678901"`
	Position        string `json:"position" validate:"max=80" example:"Kasiyer"`
	HireDate        string `json:"hireDate" validate:"required" example:"2024-01-15"`
	AnnualLeaveDays *int   `json:"annualLeaveDays,omitempty" validate:"omitempty,gte=0,lte=60" example:"14"`
	IsActive        *bool  `json:"isActive,omitempty"`
}

type EmployeeService struct {
	employees EmployeeStore
	shifts    ShiftStore
}

func NewEmployeeService(employees EmployeeStore, shifts ShiftStore) *EmployeeService {
	return &EmployeeService{employees: employees, shifts: shifts}
}

func (s *EmployeeService) List(ctx context.Context, actor *models.User, branchID *int, active *bool) ([]models.Employee, error) {
	scope, err := scopeBranch(actor, branchID)
	if err != nil {
		return nil, err
	}
	return s.employees.List(ctx, repository.EmployeeFilter{BranchID: scope, Active: active})
}

func (s *EmployeeService) Get(ctx context.Context, actor *models.User, id int) (*models.Employee, error) {
	e, err := s.employees.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := canAccessBranch(actor, e.BranchID); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EmployeeService) Create(ctx context.Context, actor *models.User, in EmployeeInput) (*models.Employee, error) {
	e := &models.Employee{TCNo: in.TCNo, AnnualLeaveDays: defaultAnnualLeaveDays, IsActive: true}
	if err := s.apply(ctx, actor, e, in); err != nil {
		return nil, err
	}
	return s.employees.Create(ctx, e)
}

func (s *EmployeeService) Update(ctx context.Context, actor *models.User, id int, in EmployeeInput) (*models.Employee, error) {
	e, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, actor, e, in); err != nil {
		return nil, err
	}
	return s.employees.Update(ctx, e)
}

func (s *EmployeeService) Deactivate(ctx context.Context, actor *models.User, id int) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	return s.employees.Deactivate(ctx, id)
}

func (s *EmployeeService) apply(ctx context.Context, actor *models.User, e *models.Employee, in EmployeeInput) error {
	if err := canAccessBranch(actor, in.BranchID); err != nil {
		return err
	}

	hireDate, err := time.Parse("2006-01-02", in.HireDate)
	if err != nil {
		return ErrInvalidDate
	}

	if in.ShiftID != nil {
		shift, err := s.shifts.Get(ctx, *in.ShiftID)
		if err != nil {
			return err
		}
		if shift.BranchID != in.BranchID {
			return ErrShiftBranch
		}
	}

	e.BranchID = in.BranchID
	e.ShiftID = in.ShiftID
	e.FirstName = strings.TrimSpace(in.FirstName)
	e.LastName = strings.TrimSpace(in.LastName)
	e.Phone = strings.TrimSpace(in.Phone)
	e.Position = strings.TrimSpace(in.Position)
	e.HireDate = hireDate
	if in.AnnualLeaveDays != nil {
		e.AnnualLeaveDays = *in.AnnualLeaveDays
	}
	if in.IsActive != nil {
		e.IsActive = *in.IsActive
	}
	return nil
}
