package events

import (
	"time"

	"github.com/spec-kit/hirenow-api/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCodeIssued     EventType = "auth.code_issued"
	EventUserRegistered EventType = "auth.user_registered"
	EventRoleUpgraded   EventType = "auth.role_upgraded"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// CodeIssuedPayload payload.
type CodeIssuedPayload struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
	Path   string      `json:"path"`
}

// RoleUpgradedPayload payload.
type RoleUpgradedPayload struct {
	UserID string `json:"user_id"`
}
