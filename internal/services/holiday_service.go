package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/personeltakip/backend/internal/calendar"
	"github.com/personeltakip/backend/internal/models"
)

type HolidayInput struct {
	Day  string `json:"day" validate:"required" example:"2025-03-30"`
	Name string `json:"name" validate:"required,max=120" example:"Ramazan Bayramı"`
}

type HolidayService struct {
	holidays HolidayStore
}

func NewHolidayService(holidays HolidayStore) *HolidayService {
	return &HolidayService{holidays: holidays}
}

// List merges the fixed national holidays of year with stored ones, by day.
func (s *HolidayService) List(ctx context.Context, year int) ([]models.Holiday, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	stored, err := s.holidays.Between(ctx, from, to)
	if err != nil {
		return nil, err
	}

	all := append(calendar.NationalHolidays(year), stored...)
	sort.SliceStable(all, func(i, j int) bool { return all[i].Day.Before(all[j].Day) })
	return all, nil
}

func (s *HolidayService) Create(ctx context.Context, in HolidayInput) (*models.Holiday, error) {
	day, err := time.Parse("2006-01-02", in.Day)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return s.holidays.Create(ctx, &models.Holiday{Day: day, Name: strings.TrimSpace(in.Name)})
}

func (s *HolidayService) Delete(ctx context.Context, id int) error {
	return s.holidays.Delete(ctx, id)
}
