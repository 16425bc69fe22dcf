package services

import (
	"context"
	"strings"
	"time"

	"github.com/personeltakip/backend/internal/models"
)

// ShiftInput is the create/update payload for a shift. BranchID is ignored on update.
type ShiftInput struct {
	BranchID             int    `json:"branchId" validate:"required,gt=0" example:"1"`
	Name                 string `json:"name" validate:"required,max=80" example:"Sabah"`
	StartTime            string `json:"startTime" validate:"required,len=5" example:"08:00"`
	EndTime              string `json:"endTime" validate:"required,len=5" example:"17:00"`
	LateToleranceMinutes int    `json:"lateToleranceMinutes" validate:"gte=0,lte=240" example:"10"`
}

type ShiftService struct {
	shifts ShiftStore
}

func NewShiftService(shifts ShiftStore) *ShiftService {
	return &ShiftService{shifts: shifts}
}

func (s *ShiftService) List(ctx context.Context, actor *models.User, branchID *int) ([]models.Shift, error) {
	scope, err := scopeBranch(actor, branchID)
	if err != nil {
		return nil, err
	}
	return s.shifts.List(ctx, scope)
}

func (s *ShiftService) Get(ctx context.Context, actor *models.User, id int) (*models.Shift, error) {
	shift, err := s.shifts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := canAccessBranch(actor, shift.BranchID); err != nil {
		return nil, err
	}
	return shift, nil
}

func (s *ShiftService) Create(ctx context.Context, actor *models.User, in ShiftInput) (*models.Shift, error) {
	if err := canAccessBranch(actor, in.BranchID); err != nil {
		return nil, err
	}
	shift := &models.Shift{BranchID: in.BranchID}
	if err := applyShiftInput(shift, in); err != nil {
		return nil, err
	}
	return s.shifts.Create(ctx, shift)
}

func (s *ShiftService) Update(ctx context.Context, actor *models.User, id int, in ShiftInput) (*models.Shift, error) {
	shift, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := applyShiftInput(shift, in); err != nil {
		return nil, err
	}
	return s.shifts.Update(ctx, shift)
}

func (s *ShiftService) Delete(ctx context.Context, actor *models.User, id int) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	return s.shifts.Delete(ctx, id)
}

func applyShiftInput(shift *models.Shift, in ShiftInput) error {
	for _, v := range []string{in.StartTime, in.EndTime} {
		if _, err := time.Parse("15:04", v); err != nil {
			return ErrInvalidShiftTime
		}
	}
	shift.Name = strings.TrimSpace(in.Name)
	shift.StartTime = in.StartTime
	shift.EndTime = in.EndTime
	shift.LateToleranceMinutes = in.LateToleranceMinutes
	return nil
}
