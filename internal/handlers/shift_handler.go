package handlers

import (
	"net/http"

	"github.com/personeltakip/backend/internal/services"
)

type ShiftHandler struct {
	service   *services.ShiftService
	validator *services.ValidationHelper
}

func NewShiftHandler(service *services.ShiftService) *ShiftHandler {
	return &ShiftHandler{
		service:   service,
		validator: services.NewValidationHelper(),
	}
}

// List returns shifts
// @Summary List shifts
// @Tags Shifts
// @Produce json
// @Param branchId query int false "Branch filter"
// @Success 200 {array} models.Shift
// @Router /shifts [get]
func (h *ShiftHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	branchID, ok := queryInt(w, r, "branchId")
	if !ok {
		return
	}
	shifts, err := h.service.List(r.Context(), user, branchID)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	services.SendJSON(w, http.StatusOK, shifts)
}

// Create adds a shift
// @Summary Create shift
// @Tags Shifts
// @Accept json
// @Produce json
// @Param request body services.ShiftInput true "Shift"
// @Success 201 {object} models.Shift
// @Failure 400 {object} services.ErrorResponse
// @Router /shifts [post]
func (h *ShiftHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req services.ShiftInput
	if !h.validator.DecodeAndValidate(w, r, &req) {
		return
	}
	shift, err := h.service.Create(r.Context(), user, req)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	services.SendJSON(w, http.StatusCreated, shift)
}

// Update changes a shift
// @Summary Update shift
// @Tags Shifts
// @Accept json
// @Produce json
// @Param id path int true "Shift ID"
// @Param request body services.ShiftInput true "Shift"
// @Success 200 {object} models.Shift
// @Router /shifts/{id} [put]
func (h *ShiftHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req services.ShiftInput
	if !h.validator.DecodeAndValidate(w, r, &req) {
		return
	}
	shift, err := h.service.Update(r.Context(), user, id, req)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	services.SendJSON(w, http.StatusOK, shift)
}

// Delete removes a shift
// @Summary Delete shift
// @Tags Shifts
// @Param id path int true "Shift ID"
// @Success 204
// @Router /shifts/{id} [delete]
func (h *ShiftHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), user, id); err != nil {
		services.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
