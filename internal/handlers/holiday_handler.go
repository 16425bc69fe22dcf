package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/personeltakip/backend/internal/services"
)

type HolidayHandler struct {
	service   *services.HolidayService
	validator *services.ValidationHelper
}

func NewHolidayHandler(service *services.HolidayService) *HolidayHandler {
	return &HolidayHandler{
		service:   service,
		validator: services.NewValidationHelper(),
	}
}

// List returns national and stored holidays of a year
// @Summary List holidays
// @Tags Holidays
// @Produce json
// @Param year query int false "Year, defaults to the current year"
// @Success 200 {array} models.Holiday
// @Router /holidays [get]
func (h *HolidayHandler) List(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1900 || v > 2200 {
			services.SendErrorResponse(w, "Invalid year", http.StatusBadRequest, nil)
			return
		}
		year = v
	}

	holidays, err := h.service.List(r.Context(), year)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	services.SendJSON(w, http.StatusOK, holidays)
}

// Create stores a variable holiday
// @Summary Create holiday
// @Tags Holidays
// @Accept json
// @Produce json
// @Param request body services.HolidayInput true "Holiday"
// @Success 201 {object} models.Holiday
// @Failure 400 {object} services.ErrorResponse
// @Router /holidays [post]
func (h *HolidayHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.HolidayInput
	if !h.validator.DecodeAndValidate(w, r, &req) {
		return
	}
	holiday, err := h.service.Create(r.Context(), req)
	if err != nil {
		services.WriteError(w, err)
		return
	}
	services.SendJSON(w, http.StatusCreated, holiday)
}

// Delete removes a stored holiday
// @Summary Delete holiday
// @Tags Holidays
// @Param id path int true "Holiday ID"
// @Success 204
// @Router /holidays/{id} [delete]
func (h *HolidayHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
