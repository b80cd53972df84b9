package auth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/hirenow-api/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{ID: "user-1", Role: domain.RoleCustomer}
}

func TestGeneratePair_AndParse(t *testing.T) {
	t.Parallel()
	tm := NewTokenManager("test-secret", 60, 60*24)

	pair, err := tm.GeneratePair(testUser())
	require.NoError(t, err)
	require.Equal(t, "user-1", pair.UserID)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)
	require.NotEqual(t, pair.Access, pair.Refresh)

	claims, err := tm.ParseToken(pair.Access)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, domain.RoleCustomer, claims.Role)
	require.Equal(t, TokenTypeAccess, claims.TokenType)

	claims, err = tm.ParseToken(pair.Refresh)
	require.NoError(t, err)
	require.Equal(t, TokenTypeRefresh, claims.TokenType)
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()
	tm := NewTokenManager("right-secret", 60, 60)
	pair, err := tm.GeneratePair(testUser())
	require.NoError(t, err)

	other := NewTokenManager("wrong-secret", 60, 60)
	_, err = other.ParseToken(pair.Access)
	require.Error(t, err)
}

func TestParseToken_Malformed(t *testing.T) {
	t.Parallel()
	tm := NewTokenManager("secret", 60, 60)
	_, err := tm.ParseToken("not.a.jwt")
	require.Error(t, err)
}
