package dto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/hirenow-api/pkg/util"
)

func validationDetails(t *testing.T, err error) map[string]any {
	t.Helper()
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	require.Equal(t, apperrors.CodeValidation, domainErr.Code)
	return domainErr.Details
}

func TestValidateFields_CollectsAllViolations(t *testing.T) {
	t.Parallel()

	err := ValidateFields(
		FieldRule{Name: "username", Value: "", Required: true},
		FieldRule{Name: "password", Value: "short", MinLen: 8},
		FieldRule{Name: "email", Value: "not-an-email", Email: true},
		FieldRule{Name: "role", Value: "superuser", OneOf: []string{"customer", "worker"}},
		FieldRule{Name: "first_name", Value: "ok"},
	)
	details := validationDetails(t, err)
	require.Len(t, details, 4)
	require.Contains(t, details, "username")
	require.Contains(t, details, "password")
	require.Contains(t, details, "email")
	require.Contains(t, details, "role")
}

func TestValidateFields_OptionalEmptySkipsConstraints(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateFields(
		FieldRule{Name: "email", Value: "", Email: true, MaxLen: 254},
		FieldRule{Name: "role", Value: "", OneOf: []string{"customer", "worker"}},
	))
}

func TestValidateInts(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateInts(IntRule{Name: "rating", Value: 3, Min: 1, Max: 5}))

	details := validationDetails(t, ValidateInts(IntRule{Name: "rating", Value: 0, Min: 1, Max: 5}))
	require.Contains(t, details, "rating")
}

func TestRegisterRequest_Validate(t *testing.T) {
	t.Parallel()

	valid := RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "long-enough-pass",
		Role:     "customer",
	}
	require.NoError(t, valid.Validate())

	invalid := RegisterRequest{Username: "alice", Email: "bad", Password: "short", Role: "admin"}
	details := validationDetails(t, invalid.Validate())
	require.Contains(t, details, "email")
	require.Contains(t, details, "password")
	require.Contains(t, details, "role")
}

func TestRegisterWithCodeRequest_Validate(t *testing.T) {
	t.Parallel()

	valid := RegisterWithCodeRequest{
		Phone:     "+94771234567",
		Code:      "123456",
		FirstName: "Kamal",
		LastName:  "Perera",
		Role:      "worker",
	}
	require.NoError(t, valid.Validate())

	details := validationDetails(t, RegisterWithCodeRequest{}.Validate())
	require.Contains(t, details, "phone")
	require.Contains(t, details, "code")
	require.Contains(t, details, "first_name")
	require.Contains(t, details, "last_name")
}
