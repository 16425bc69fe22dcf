package models

import "time"

type Holiday struct {
	ID        int       `json:"id" db:"id"`
	Day       time.Time `json:"day" db:"day"`
	Name      string    `json:"name" db:"name"`
	Fixed     bool      `json:"fixed"` // national holiday, not stored
	CreatedAt time.Time `json:"createdAt,omitempty" db:"created_at"`
}
