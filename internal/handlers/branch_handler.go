package handlers

import (
	"net/http"

	"github.com/personeltakip/backend/internal/services"
)

type BranchHandler struct {
	service   *services.BranchService
	validator *services.ValidationHelper
}

func NewBranchHandler(service *services.BranchService) *BranchHandler {
	return &BranchHandler{
		service:   service,
		validator: services.NewValidationHelper(),
	}
}

// List returns the branches visible to the caller
// @Summary List branches
// @Tags Branches
// @Produce json
// @Success 200 {array} models.Branch
// @Failure 401 {object} services.ErrorResponse
// @Router /branches [get]
func (h *BranchHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	branches, err := h.service.List(r.Context(), user)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	services.SendJSON(w, http.StatusOK, branches)
}

// Get returns one branch
// @Summary Get branch
// @Tags Branches
// @Produce json
// @Param id path int true "Branch ID"
// @Success 200 {object} models.Branch
// @Failure 403 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /branches/{id} [get]
func (h *BranchHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	branch, err := h.service.Get(r.Context(), user, id)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	services.SendJSON(w, http.StatusOK, branch)
}

// Create adds a branch
// @Summary Create branch
// @Tags Branches
// @Accept json
// @Produce json
// @Param request body services.BranchInput true "Branch"
// @Success 201 {object} models.Branch
// @Failure 400 {object} services.ErrorResponse
// @Failure 403 {object} services.ErrorResponse
// @Router /branches [post]
func (h *BranchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.BranchInput
	if !h.validator.DecodeAndValidate(w, r, &req) {
		return
	}
	branch, err := h.service.Create(r.Context(), req)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	services.SendJSON(w, http.StatusCreated, branch)
}

// Update changes a branch
// @Summary Update branch
// @Tags Branches
// @Accept json
// @Produce json
// @Param id path int true "Branch ID"
// @Param request body services.BranchInput true "Branch"
// @Success 200 {object} models.Branch
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /branches/{id} [put]
func (h *BranchHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req services.BranchInput
	if !h.validator.DecodeAndValidate(w, r, &req) {
		return
	}
	branch, err := h.service.Update(r.Context(), user, id, req)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	services.SendJSON(w, http.StatusOK, branch)
}

// Delete removes a branch
// @Summary Delete branch
// @Tags Branches
// @Param id path int true "Branch ID"
// @Success 204
// @Failure 400 {object} services.ErrorResponse "Branch still has employees"
// @Failure 404 {object} services.ErrorResponse
// @Router /branches/{id} [delete]
func (h *BranchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		services.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CheckInQR issues a short-lived check-in QR code for the branch
// @Summary Generate check-in QR code
// @Description Single-use code, valid for a few minutes, to display at the branch entrance
// @Tags Branches
// @Produce json
// @Param id path int true "Branch ID"
// @Success 200 {object} services.CheckInQR
// @Failure 403 {object} services.ErrorResponse
// @Failure 503 {object} services.ErrorResponse
// @Router /branches/{id}/qr [get]
func (h *BranchHandler) CheckInQR(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	qr, err := h.service.CheckInQR(r.Context(), user, id)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	services.SendJSON(w, http.StatusOK, qr)
}
