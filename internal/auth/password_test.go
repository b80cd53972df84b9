package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("hunter2-hunter2", bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, ComparePassword(hash, "hunter2-hunter2"))
	require.Error(t, ComparePassword(hash, "wrong"))
}

func TestRandomPassword_Unpredictable(t *testing.T) {
	t.Parallel()

	a := RandomPassword()
	b := RandomPassword()
	require.NotEmpty(t, a)
	require.NotEqual(t, a, b)
}
