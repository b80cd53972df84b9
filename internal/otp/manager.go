package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/spec-kit/hirenow-api/internal/domain"
)

const (
	defaultCodeLength = 6
	defaultExpiry     = 10 * time.Minute
)

// Manager generates, stores, and validates short-lived numeric codes bound to
// a phone number. Transmission of the code (SMS, response echo) is the
// caller's policy, not the manager's.
type Manager struct {
	store  ChallengeStore
	length int
	expiry time.Duration
	now    func() time.Time
}

// NewManager builds a manager over the given store.
func NewManager(store ChallengeStore, length int, expiry time.Duration) *Manager {
	if length <= 0 {
		length = defaultCodeLength
	}
	if expiry <= 0 {
		expiry = defaultExpiry
	}
	return &Manager{store: store, length: length, expiry: expiry, now: time.Now}
}

// Issue generates a fresh code for the phone and stores the challenge.
// Collisions across phones are irrelevant; only match-by-phone matters, so
// generation never retries.
func (m *Manager) Issue(ctx context.Context, phone string) (string, error) {
	code, err := generateCode(m.length)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}

	now := m.now()
	challenge := domain.OTPChallenge{
		Phone:     phone,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(m.expiry),
	}
	if err := m.store.Put(ctx, challenge); err != nil {
		return "", fmt.Errorf("store challenge: %w", err)
	}
	return code, nil
}

// Verify reports whether the supplied code matches the current non-expired
// challenge for the phone. It never mutates state: a code verifies repeatedly
// until it expires or is superseded. Absence yields false, not an error.
func (m *Manager) Verify(ctx context.Context, phone, code string) (bool, error) {
	challenge, err := m.store.Get(ctx, phone)
	if err != nil {
		return false, fmt.Errorf("load challenge: %w", err)
	}
	if challenge == nil || challenge.Expired(m.now()) {
		return false, nil
	}
	return challenge.Code == code, nil
}

func generateCode(length int) (string, error) {
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", length, n), nil
}
