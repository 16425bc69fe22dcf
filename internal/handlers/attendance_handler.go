package handlers

import (
	"log"
	"net/http"

	"github.com/personeltakip/backend/internal/models"
	"github.com/personeltakip/backend/internal/services"
)

type AttendanceHandler struct {
	service   *services.AttendanceService
	validator *services.ValidationHelper
}

func NewAttendanceHandler(service *services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{
		service:   service,
		validator: services.NewValidationHelper(),
	}
}

// List returns attendance records
// @Summary List attendance
// @Tags Attendance
// @Produce json
// @Param branchId query int false "Branch filter"
// @Param employeeId query int false "Employee filter"
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day (YYYY-MM-DD)"
// @Success 200 {array} models.Attendance
// @Router /attendance [get]
func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var filter models.AttendanceFilter
	if filter.BranchID, ok = queryInt(w, r, "branchId"); !ok {
		return
	}
	if filter.EmployeeID, ok = queryInt(w, r, "employeeId"); !ok {
		return
	}
	if filter.From, ok = queryDate(w, r, "from"); !ok {
		return
	}
	if filter.To, ok = queryDate(w, r, "to"); !ok {
		return
	}

	records, err := h.service.List(r.Context(), user, filter)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	services.SendJSON(w, http.StatusOK, records)
}

// CheckIn records an arrival
// @Summary Check in
// @Description Marks the employee present or late against their shift start plus tolerance
// @Tags Attendance
// @Accept json
// @Produce json
// @Param request body services.CheckInInput true "Check-in"
// @Success 201 {object} models.Attendance
// @Failure 400 {object} services.ErrorResponse "Already checked in, invalid QR code"
// @Router /attendance/check-in [post]
func (h *AttendanceHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req services.CheckInInput
	if !h.validator.DecodeAndValidate(w, r, &req) {
		return
	}
	record, err := h.service.CheckIn(r.Context(), user, req)
	if err != nil {
		log.Printf("[ATTENDANCE] Check-in failed for employee %d: %v", req.EmployeeID, err)
		services.WriteError(w, err)
		return
	}
	services.SendJSON(w, http.StatusCreated, record)
}

// CheckOut records a departure
// @Summary Check out
// @Tags Attendance
// @Accept json
// @Produce json
// @Param request body services.CheckOutInput true "Check-out"
// @Success 200 {object} models.Attendance
// @Failure 400 {object} services.ErrorResponse "Not checked in or already checked out"
// @Router /attendance/check-out [post]
func (h *AttendanceHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req services.CheckOutInput
	if !h.validator.DecodeAndValidate(w, r, &req) {
		return
	}
	record, err := h.service.CheckOut(r.Context(), user, req)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	services.SendJSON(w, http.StatusOK, record)
}
