package handlers

import (
	"net/http"

	"github.com/personeltakip/backend/internal/models"
	"github.com/personeltakip/backend/internal/services"
)

type LeaveHandler struct {
	service   *services.LeaveService
	validator *services.ValidationHelper
}

func NewLeaveHandler(service *services.LeaveService) *LeaveHandler {
	return &LeaveHandler{
		service:   service,
		validator: services.NewValidationHelper(),
	}
}

// List returns leave requests
// @Summary List leave requests
// @Tags Leave
// @Produce json
// @Param branchId query int false "Branch filter"
// @Param employeeId query int false "Employee filter"
// @Param status query string false "pending, approved or rejected"
// @Success 200 {array} models.LeaveRequest
// @Router /leaves [get]
func (h *LeaveHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	filter := models.LeaveFilter{Status: r.URL.Query().Get("status")}
	if filter.BranchID, ok = queryInt(w, r, "branchId"); !ok {
		return
	}
	if filter.EmployeeID, ok = queryInt(w, r, "employeeId"); !ok {
		return
	}

	leaves, err := h.service.List(r.Context(), user, filter)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	services.SendJSON(w, http.StatusOK, leaves)
}

// Create files a leave request
// @Summary Create leave request
// @Description Day count excludes weekends, national holidays and stored holidays
// @Tags Leave
// @Accept json
// @Produce json
// @Param request body services.LeaveInput true "Leave request"
// @Success 201 {object} models.LeaveRequest
// @Failure 400 {object} services.ErrorResponse
// @Router /leaves [post]
func (h *LeaveHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req services.LeaveInput
	if !h.validator.DecodeAndValidate(w, r, &req) {
		return
	}
	leave, err := h.service.Create(r.Context(), user, req)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	services.SendJSON(w, http.StatusCreated, leave)
}

// UpdateStatus approves or rejects a pending request
// @Summary Review leave request
// @Tags Leave
// @Accept json
// @Produce json
// @Param id path int true "Leave request ID"
// @Param request body services.LeaveStatusInput true "New status"
// @Success 200 {object} models.LeaveRequest
// @Failure 400 {object} services.ErrorResponse
// @Router /leaves/{id}/status [put]
func (h *LeaveHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req services.LeaveStatusInput
	if !h.validator.DecodeAndValidate(w, r, &req) {
		return
	}
	leave, err := h.service.Review(r.Context(), user, id, req.Status)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	services.SendJSON(w, http.StatusOK, leave)
}

// Delete withdraws a pending request
// @Summary Delete leave request
// @Tags Leave
// @Param id path int true "Leave request ID"
// @Success 204
// @Failure 400 {object} services.ErrorResponse "Not pending"
// @Router /leaves/{id} [delete]
func (h *LeaveHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
