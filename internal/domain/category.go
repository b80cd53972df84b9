package domain

import "time"

// Category classifies workers (Driver, Plumber, etc.).
type Category struct {
	ID          string
	Name        string
	Slug        string
	Description string
	Icon        string
	CreatedAt   time.Time
}
