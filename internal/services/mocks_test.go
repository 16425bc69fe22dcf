package services

import (
	"context"
	"time"

	"github.com/personeltakip/backend/internal/models"
	"github.com/personeltakip/backend/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockBranchStore struct {
	mock.Mock
}

func (m *MockBranchStore) List(ctx context.Context, branchID *int) ([]models.Branch, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Branch), args.Error(1)
}

func (m *MockBranchStore) Get(ctx context.Context, id int) (*models.Branch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Branch), args.Error(1)
}

func (m *MockBranchStore) Create(ctx context.Context, b *models.Branch) (*models.Branch, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Branch), args.Error(1)
}

func (m *MockBranchStore) Update(ctx context.Context, b *models.Branch) (*models.Branch, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Branch), args.Error(1)
}

func (m *MockBranchStore) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockShiftStore struct {
	mock.Mock
}

func (m *MockShiftStore) List(ctx context.Context, branchID *int) ([]models.Shift, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Shift), args.Error(1)
}

func (m *MockShiftStore) Get(ctx context.Context, id int) (*models.Shift, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Shift), args.Error(1)
}

func (m *MockShiftStore) Create(ctx context.Context, s *models.Shift) (*models.Shift, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Shift), args.Error(1)
}

func (m *MockShiftStore) Update(ctx context.Context, s *models.Shift) (*models.Shift, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Shift), args.Error(1)
}

func (m *MockShiftStore) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockEmployeeStore struct {
	mock.Mock
}

func (m *MockEmployeeStore) List(ctx context.Context, f repository.EmployeeFilter) ([]models.Employee, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Employee), args.Error(1)
}

func (m *MockEmployeeStore) Get(ctx context.Context, id int) (*models.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employee), args.Error(1)
}

func (m *MockEmployeeStore) Create(ctx context.Context, e *models.Employee) (*models.Employee, error) {
	args := m.Called(ctx, e)
	if fn, ok := args.Get(0).(func(context.Context, *models.Employee) *models.Employee); ok {
		return fn(ctx, e), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employee), args.Error(1)
}

func (m *MockEmployeeStore) Update(ctx context.Context, e *models.Employee) (*models.Employee, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employee), args.Error(1)
}

func (m *MockEmployeeStore) Deactivate(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAttendanceStore struct {
	mock.Mock
}

func (m *MockAttendanceStore) List(ctx context.Context, f models.AttendanceFilter) ([]models.Attendance, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Attendance), args.Error(1)
}

func (m *MockAttendanceStore) GetForDay(ctx context.Context, employeeID int, workDate time.Time) (*models.Attendance, error) {
	args := m.Called(ctx, employeeID, workDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Attendance), args.Error(1)
}

func (m *MockAttendanceStore) Create(ctx context.Context, a *models.Attendance) (*models.Attendance, error) {
	args := m.Called(ctx, a)
	if fn, ok := args.Get(0).(func(context.Context, *models.Attendance) *models.Attendance); ok {
		return fn(ctx, a), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Attendance), args.Error(1)
}

func (m *MockAttendanceStore) SetCheckOut(ctx context.Context, id int, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

type MockLeaveStore struct {
	mock.Mock
}

func (m *MockLeaveStore) List(ctx context.Context, f models.LeaveFilter) ([]models.LeaveRequest, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LeaveRequest), args.Error(1)
}

func (m *MockLeaveStore) Get(ctx context.Context, id int) (*models.LeaveRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LeaveRequest), args.Error(1)
}

func (m *MockLeaveStore) Create(ctx context.Context, l *models.LeaveRequest) (*models.LeaveRequest, error) {
	args := m.Called(ctx, l)
	if fn, ok := args.Get(0).(func(context.Context, *models.LeaveRequest) *models.LeaveRequest); ok {
		return fn(ctx, l), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LeaveRequest), args.Error(1)
}

func (m *MockLeaveStore) SetStatus(ctx context.Context, id int, status string, reviewerID int) error {
	args := m.Called(ctx, id, status, reviewerID)
	return args.Error(0)
}

func (m *MockLeaveStore) DeletePending(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeaveStore) AnnualLeavesIn(ctx context.Context, employeeID, year int) ([]models.LeaveRequest, error) {
	args := m.Called(ctx, employeeID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LeaveRequest), args.Error(1)
}

type MockHolidayStore struct {
	mock.Mock
}

func (m *MockHolidayStore) Between(ctx context.Context, from, to time.Time) ([]models.Holiday, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Holiday), args.Error(1)
}

func (m *MockHolidayStore) Create(ctx context.Context, h *models.Holiday) (*models.Holiday, error) {
	args := m.Called(ctx, h)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Holiday), args.Error(1)
}

func (m *MockHolidayStore) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func intPtr(v int) *int { return &v }

func branchAdmin(branchID int) *models.User {
	return &models.User{ID: 50, Role: models.RoleBranchAdmin, BranchID: intPtr(branchID), IsActive: true}
}

func admin() *models.User {
	return &models.User{ID: 1, Role: models.RoleAdmin, IsActive: true}
}
