package handlers

import (
	"net/http"

	"github.com/personeltakip/backend/internal/services"
)

type EmployeeHandler struct {
	service   *services.EmployeeService
	validator *services.ValidationHelper
}

func NewEmployeeHandler(service *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		service:   service,
		validator: services.NewValidationHelper(),
	}
}

// List returns employees
// @Summary List employees
// @Tags Employees
// @Produce json
// @Param branchId query int false "Branch filter"
// @Param active query bool false "Only active or inactive employees"
// @Success 200 {array} models.Employee
// @Failure 403 {object} services.ErrorResponse
// @Router /employees [get]
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	branchID, ok := queryInt(w, r, "branchId")
	if !ok {
		return
	}
	active, ok := queryBool(w, r, "active")
	if !ok {
		return
	}
	employees, err := h.service.List(r.Context(), user, branchID, active)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	services.SendJSON(w, http.StatusOK, employees)
}

// Get returns one employee
// @Summary Get employee
// @Tags Employees
// @Produce json
// @Param id path int true "Employee ID"
// @Success 200 {object} models.Employee
// @Failure 404 {object} services.ErrorResponse
// @Router /employees/{id} [get]
func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	employee, err := h.service.Get(r.Context(), user, id)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	services.SendJSON(w, http.StatusOK, employee)
}

// Create adds an employee
// @Summary Create employee
// @Tags Employees
// @Accept json
// @Produce json
// @Param request body services.EmployeeInput true "Employee"
// @Success 201 {object} models.Employee
// @Failure 400 {object} services.ErrorResponse
// @Router /employees [post]
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req services.EmployeeInput
	if !h.validator.DecodeAndValidate(w, r, &req) {
		return
	}
	employee, err := h.service.Create(r.Context(), user, req)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	services.SendJSON(w, http.StatusCreated, employee)
}

// Update changes an employee
// @Summary Update employee
// @Tags Employees
// @Accept json
// @Produce json
// @Param id path int true "Employee ID"
// @Param request body services.EmployeeInput true "Employee"
// @Success 200 {object} models.Employee
// @Router /employees/{id} [put]
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req services.EmployeeInput
	if !h.validator.DecodeAndValidate(w, r, &req) {
		return
	}
	employee, err := h.service.Update(r.Context(), user, id, req)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	services.SendJSON(w, http.StatusOK, employee)
}

// Delete deactivates an employee; history is kept
// @Summary Deactivate employee
// @Tags Employees
// @Param id path int true "Employee ID"
// @Success 204
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.service.Deactivate(r.Context(), user, id); err != nil {
		services.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
