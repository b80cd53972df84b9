package domain

import "time"

// Review is a rating left by a user for a worker.
type Review struct {
	ID        string
	WorkerID  string
	AuthorID  string
	Rating    int
	Comment   string
	CreatedAt time.Time
}
