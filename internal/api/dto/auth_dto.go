package dto

import (
	"github.com/spec-kit/hirenow-api/internal/domain"
)

// Envelope is the uniform response shape returned by every entry point.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Result  any    `json:"result,omitempty"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	FirebaseUID *string `json:"firebase_uid,omitempty"`
	Role        string  `json:"role"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Phone:       user.Phone,
		FirebaseUID: user.FirebaseUID,
		Role:        string(user.Role),
		FirstName:   user.FirstName,
		LastName:    user.LastName,
	}
}

// AuthResult pairs issued tokens with the resolved user.
type AuthResult struct {
	Tokens *domain.TokenPair `json:"tokens"`
	User   UserResponse      `json:"user"`
}

// NewAuthResult maps tokens and user for the envelope.
func NewAuthResult(tokens *domain.TokenPair, user *domain.User) AuthResult {
	return AuthResult{Tokens: tokens, User: NewUserResponse(user)}
}

var registrableRoles = []string{string(domain.RoleCustomer), string(domain.RoleWorker)}

// LoginRequest payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate applies the login rule set.
func (r LoginRequest) Validate() error {
	return ValidateFields(
		FieldRule{Name: "username", Value: r.Username, Required: true, MaxLen: 150},
		FieldRule{Name: "password", Value: r.Password, Required: true},
	)
}

// RegisterRequest payload for password-path accounts.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Validate applies the registration rule set.
func (r RegisterRequest) Validate() error {
	return ValidateFields(
		FieldRule{Name: "username", Value: r.Username, Required: true, MaxLen: 150},
		FieldRule{Name: "email", Value: r.Email, Required: true, MaxLen: 254, Email: true},
		FieldRule{Name: "password", Value: r.Password, Required: true, MinLen: 8},
		FieldRule{Name: "phone", Value: r.Phone, MaxLen: 20},
		FieldRule{Name: "role", Value: r.Role, OneOf: registrableRoles},
		FieldRule{Name: "first_name", Value: r.FirstName, MaxLen: 150},
		FieldRule{Name: "last_name", Value: r.LastName, MaxLen: 150},
	)
}

// SendCodeRequest payload.
type SendCodeRequest struct {
	Phone string `json:"phone"`
}

// Validate applies the send-code rule set.
func (r SendCodeRequest) Validate() error {
	return ValidateFields(
		FieldRule{Name: "phone", Value: r.Phone, Required: true, MaxLen: 20},
	)
}

// SendCodeResponse echoes the code in non-production configurations only.
type SendCodeResponse struct {
	Code string `json:"code,omitempty"`
}

// VerifyCodeRequest payload.
type VerifyCodeRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// Validate applies the verify-code rule set.
func (r VerifyCodeRequest) Validate() error {
	return ValidateFields(
		FieldRule{Name: "phone", Value: r.Phone, Required: true, MaxLen: 20},
		FieldRule{Name: "code", Value: r.Code, Required: true, MaxLen: 10},
	)
}

// RegisterWithCodeRequest payload for OTP-verified registration.
type RegisterWithCodeRequest struct {
	Phone           string     `json:"phone"`
	Code            string     `json:"code"`
	Username        string     `json:"username"`
	Email           string     `json:"email"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	Role            string     `json:"role"`
	Category        string     `json:"category"`
	Description     string     `json:"description"`
	ExperienceYears int        `json:"experience_years"`
	Latitude        Coordinate `json:"latitude"`
	Longitude       Coordinate `json:"longitude"`
}

// Validate applies the register-with-code rule set.
func (r RegisterWithCodeRequest) Validate() error {
	return ValidateFields(
		FieldRule{Name: "phone", Value: r.Phone, Required: true, MaxLen: 20},
		FieldRule{Name: "code", Value: r.Code, Required: true, MaxLen: 10},
		FieldRule{Name: "first_name", Value: r.FirstName, Required: true, MaxLen: 150},
		FieldRule{Name: "last_name", Value: r.LastName, Required: true, MaxLen: 150},
		FieldRule{Name: "username", Value: r.Username, MaxLen: 150},
		FieldRule{Name: "email", Value: r.Email, MaxLen: 254, Email: true},
		FieldRule{Name: "role", Value: r.Role, OneOf: registrableRoles},
	)
}

// FirebaseLoginRequest payload.
type FirebaseLoginRequest struct {
	IDToken string `json:"id_token"`
}

// Validate applies the firebase-login rule set.
func (r FirebaseLoginRequest) Validate() error {
	return ValidateFields(
		FieldRule{Name: "id_token", Value: r.IDToken, Required: true},
	)
}

// FirebaseRegisterRequest payload for token-verified registration.
type FirebaseRegisterRequest struct {
	IDToken         string     `json:"id_token"`
	Username        string     `json:"username"`
	Email           string     `json:"email"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	Role            string     `json:"role"`
	Category        string     `json:"category"`
	Description     string     `json:"description"`
	ExperienceYears int        `json:"experience_years"`
	Latitude        Coordinate `json:"latitude"`
	Longitude       Coordinate `json:"longitude"`
}

// Validate applies the firebase-register rule set.
func (r FirebaseRegisterRequest) Validate() error {
	return ValidateFields(
		FieldRule{Name: "id_token", Value: r.IDToken, Required: true},
		FieldRule{Name: "first_name", Value: r.FirstName, Required: true, MaxLen: 150},
		FieldRule{Name: "last_name", Value: r.LastName, Required: true, MaxLen: 150},
		FieldRule{Name: "username", Value: r.Username, MaxLen: 150},
		FieldRule{Name: "email", Value: r.Email, MaxLen: 254, Email: true},
		FieldRule{Name: "role", Value: r.Role, OneOf: registrableRoles},
	)
}
