package domain

import "time"

// WorkerProfile extends a user with role worker. At most one profile exists
// per user; repeated registration calls upsert the mutable fields.
type WorkerProfile struct {
	ID              string
	UserID          string
	CategoryID      *string
	Description     string
	ExperienceYears int
	// Latitude/Longitude are nil when the worker's location is unknown,
	// never a fabricated (0,0) point.
	Latitude  *float64
	Longitude *float64
	Verified  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
