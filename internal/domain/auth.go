package domain

// TokenPair carries the session credentials issued for a resolved user.
// It is ephemeral and never persisted by this service.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	UserID  string `json:"user_id"`
}
