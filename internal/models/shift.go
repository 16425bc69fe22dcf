package models

import (
	"fmt"
	"time"
)

type Shift struct {
	ID                   int       `json:"id" db:"id"`
	BranchID             int       `json:"branchId" db:"branch_id"`
	Name                 string    `json:"name" db:"name"`
	StartTime            string    `json:"startTime" db:"start_time"` // HH:MM
	EndTime              string    `json:"endTime" db:"end_time"`
	LateToleranceMinutes int       `json:"lateToleranceMinutes" db:"late_tolerance_minutes"`
	CreatedAt            time.Time `json:"createdAt" db:"created_at"`
}

// StartOn returns the shift start on the calendar day of t, in t's location.
func (s *Shift) StartOn(t time.Time) (time.Time, error) {
	clock, err := time.Parse("15:04", s.StartTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid shift start %q: %w", s.StartTime, err)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, t.Location()), nil
}
