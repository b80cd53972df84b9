package otp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	return NewManager(store, 6, 10*time.Minute), store
}

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()
	manager, _ := newTestManager(t)
	ctx := context.Background()

	code, err := manager.Issue(ctx, "+94771234567")
	require.NoError(t, err)
	require.Len(t, code, 6)
	for _, r := range code {
		require.True(t, r >= '0' && r <= '9', "code must be numeric, got %q", code)
	}

	ok, err := manager.Verify(ctx, "+94771234567", code)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerify_RepeatedWithinWindow(t *testing.T) {
	t.Parallel()
	manager, _ := newTestManager(t)
	ctx := context.Background()

	code, err := manager.Issue(ctx, "+94770000001")
	require.NoError(t, err)

	// verification never consumes the challenge
	for i := 0; i < 3; i++ {
		ok, err := manager.Verify(ctx, "+94770000001", code)
		require.NoError(t, err)
		require.True(t, ok, "attempt %d", i)
	}
}

func TestVerify_NeverIssued(t *testing.T) {
	t.Parallel()
	manager, _ := newTestManager(t)

	ok, err := manager.Verify(context.Background(), "+94770000002", "000000")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerify_WrongCode(t *testing.T) {
	t.Parallel()
	manager, _ := newTestManager(t)
	ctx := context.Background()

	code, err := manager.Issue(ctx, "+94770000003")
	require.NoError(t, err)

	wrong := "000000"
	if code == wrong {
		wrong = "000001"
	}
	ok, err := manager.Verify(ctx, "+94770000003", wrong)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()
	store := NewMemoryStore()
	manager := NewManager(store, 6, 10*time.Minute)
	ctx := context.Background()

	code, err := manager.Issue(ctx, "+94770000004")
	require.NoError(t, err)

	// advance the clock past the expiry window
	manager.now = func() time.Time { return time.Now().Add(11 * time.Minute) }

	ok, err := manager.Verify(ctx, "+94770000004", code)
	require.NoError(t, err)
	require.False(t, ok, "expired challenge must not verify even with the correct code")
}

func TestIssue_MostRecentWins(t *testing.T) {
	t.Parallel()
	manager, _ := newTestManager(t)
	ctx := context.Background()

	first, err := manager.Issue(ctx, "+94770000005")
	require.NoError(t, err)
	second, err := manager.Issue(ctx, "+94770000005")
	require.NoError(t, err)

	ok, err := manager.Verify(ctx, "+94770000005", second)
	require.NoError(t, err)
	require.True(t, ok)

	if first != second {
		ok, err = manager.Verify(ctx, "+94770000005", first)
		require.NoError(t, err)
		require.False(t, ok, "superseded code must stop verifying")
	}
}

func TestIssue_CollisionsAcrossPhonesAllowed(t *testing.T) {
	t.Parallel()
	manager, _ := newTestManager(t)
	ctx := context.Background()

	codeA, err := manager.Issue(ctx, "+94770000006")
	require.NoError(t, err)
	codeB, err := manager.Issue(ctx, "+94770000007")
	require.NoError(t, err)

	ok, err := manager.Verify(ctx, "+94770000006", codeA)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = manager.Verify(ctx, "+94770000007", codeB)
	require.NoError(t, err)
	require.True(t, ok)
}
