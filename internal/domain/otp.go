package domain

import "time"

// OTPChallenge is a one-time verification code bound to a phone number.
// Verification does not consume the challenge; repeated successful checks
// within the expiry window are a legitimate client retry path.
type OTPChallenge struct {
	Phone     string    `json:"phone"`
	Code      string    `json:"code"`
	UserID    *string   `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the challenge can no longer verify.
func (c OTPChallenge) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}
