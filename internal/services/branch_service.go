package services

import (
	"context"
	"strings"

	"github.com/personeltakip/backend/internal/models"
)

// BranchInput is the create/update payload for a branch.
type BranchInput struct {
	Name     string `json:"name" validate:"required,min=2,max=120" example:"Kadıköy Şube"`
	Address  string `json:"address" validate:"max=255" example:"Moda Cd. 12, İstanbul"`
	Phone    string `json:"phone" validate:"omitempty,max=20" example:"02165550000"`
	IsActive *bool  `json:"isActive,omitempty"`
}

type BranchService struct {
	branches BranchStore
	qr       *QRService
}

func NewBranchService(branches BranchStore, qr *QRService) *BranchService {
	return &BranchService{branches: branches, qr: qr}
}

func (s *BranchService) List(ctx context.Context, actor *models.User) ([]models.Branch, error) {
	scope, err := scopeBranch(actor, nil)
	if err != nil {
		return nil, err
	}
	return s.branches.List(ctx, scope)
}

func (s *BranchService) Get(ctx context.Context, actor *models.User, id int) (*models.Branch, error) {
	if err := canAccessBranch(actor, id); err != nil {
		return nil, err
	}
	return s.branches.Get(ctx, id)
}

func (s *BranchService) Create(ctx context.Context, in BranchInput) (*models.Branch, error) {
	b := &models.Branch{IsActive: true}
	applyBranchInput(b, in)
	return s.branches.Create(ctx, b)
}

func (s *BranchService) Update(ctx context.Context, actor *models.User, id int, in BranchInput) (*models.Branch, error) {
	b, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	applyBranchInput(b, in)
	return s.branches.Update(ctx, b)
}

func (s *BranchService) Delete(ctx context.Context, id int) error {
	return s.branches.Delete(ctx, id)
}

// CheckInQR issues a check-in code for a branch the actor can access.
func (s *BranchService) CheckInQR(ctx context.Context, actor *models.User, id int) (*CheckInQR, error) {
	b, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return s.qr.IssueCheckInCode(ctx, b.ID)
}

func applyBranchInput(b *models.Branch, in BranchInput) {
	b.Name = strings.TrimSpace(in.Name)
	b.Address = strings.TrimSpace(in.Address)
	b.Phone = strings.TrimSpace(in.Phone)
	if in.IsActive != nil {
		b.IsActive = *in.IsActive
	}
}
