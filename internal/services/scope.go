package services

import "github.com/personeltakip/backend/internal/models"

// scopeBranch narrows a requested branch filter to what actor may see. Admins
// get the request unchanged; a branch admin is pinned to their own branch.
func scopeBranch(actor *models.User, requested *int) (*int, error) {
	if actor.IsAdmin() {
		return requested, nil
	}
	if actor.BranchID == nil {
		return nil, ErrForbidden
	}
	if requested != nil && *requested != *actor.BranchID {
		return nil, ErrForbidden
	}
	own := *actor.BranchID
	return &own, nil
}

// canAccessBranch reports ErrForbidden when actor may not touch branchID.
func canAccessBranch(actor *models.User, branchID int) error {
	if actor.IsAdmin() {
		return nil
	}
	if actor.BranchID == nil || *actor.BranchID != branchID {
		return ErrForbidden
	}
	return nil
}
