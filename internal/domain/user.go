package domain

import "time"

// Role represents the account type of a user.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleWorker   Role = "worker"
	RoleAdmin    Role = "admin"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleWorker, RoleAdmin:
		return true
	}
	return false
}

// User is the canonical identity record. A user may be created through any of
// the three identity paths; phone is the reconciliation key but is not unique
// at the storage level, so the first match by phone is treated as canonical.
type User struct {
	ID           string
	Username     string
	Email        string
	Phone        string
	PasswordHash string
	FirebaseUID  *string
	Role         Role
	FirstName    string
	LastName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
