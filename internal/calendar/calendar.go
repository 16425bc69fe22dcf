// Package calendar counts Turkish working days.
package calendar

import (
	"time"

	"github.com/personeltakip/backend/internal/models"
)

type fixedHoliday struct {
	month time.Month
	day   int
	name  string
}

// Religious holidays move every year and are stored in the holidays table.
var nationalHolidays = []fixedHoliday{
	{time.January, 1, "Yılbaşı"},
	{time.April, 23, "Ulusal Egemenlik ve Çocuk Bayramı"},
	{time.May, 1, "Emek ve Dayanışma Günü"},
	{time.May, 19, "Atatürk'ü Anma, Gençlik ve Spor Bayramı"},
	{time.July, 15, "Demokrasi ve Milli Birlik Günü"},
	{time.August, 30, "Zafer Bayramı"},
	{time.October, 29, "Cumhuriyet Bayramı"},
}

// DateOnly truncates t to its calendar day in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func NationalHoliday(t time.Time) (string, bool) {
	_, m, d := t.Date()
	for _, h := range nationalHolidays {
		if h.month == m && h.day == d {
			return h.name, true
		}
	}
	return "", false
}

func NationalHolidays(year int) []models.Holiday {
	out := make([]models.Holiday, 0, len(nationalHolidays))
	for _, h := range nationalHolidays {
		out = append(out, models.Holiday{
			Day:   time.Date(year, h.month, h.day, 0, 0, 0, 0, time.UTC),
			Name:  h.name,
			Fixed: true,
		})
	}
	return out
}

func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// WorkingDays counts the days in [start, end] that are neither weekend days,
// national holidays nor one of extra. It returns 0 when end is before start.
func WorkingDays(start, end time.Time, extra []time.Time) int {
	start, end = DateOnly(start), DateOnly(end)
	if end.Before(start) {
		return 0
	}

	skip := make(map[time.Time]struct{}, len(extra))
	for _, d := range extra {
		skip[DateOnly(d)] = struct{}{}
	}

	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsWeekend(d) {
			continue
		}
		if _, ok := NationalHoliday(d); ok {
			continue
		}
		if _, ok := skip[d]; ok {
			continue
		}
		days++
	}
	return days
}
