package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hirenow-api/internal/api/dto"
	"github.com/spec-kit/hirenow-api/internal/domain"
	"github.com/spec-kit/hirenow-api/internal/service"
)

// AuthHandler exposes the authentication entry points.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badPayload()
	}
	if err := req.Validate(); err != nil {
		return err
	}

	tokens, user, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return success(c, "", dto.NewAuthResult(tokens, user))
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badPayload()
	}
	if err := req.Validate(); err != nil {
		return err
	}

	tokens, user, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Phone:     req.Phone,
		Role:      domain.Role(req.Role),
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return err
	}
	return success(c, "", dto.NewAuthResult(tokens, user))
}

// SendCode handles POST /api/auth/send-code.
func (h *AuthHandler) SendCode(c *fiber.Ctx) error {
	var req dto.SendCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return badPayload()
	}
	if err := req.Validate(); err != nil {
		return err
	}

	code, err := h.auth.SendCode(c.UserContext(), req.Phone)
	if err != nil {
		return err
	}

	var result any
	if code != "" {
		result = dto.SendCodeResponse{Code: code}
	}
	return success(c, "verification code sent", result)
}

// VerifyCode handles POST /api/auth/verify-code.
func (h *AuthHandler) VerifyCode(c *fiber.Ctx) error {
	var req dto.VerifyCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return badPayload()
	}
	if err := req.Validate(); err != nil {
		return err
	}

	tokens, user, err := h.auth.VerifyCode(c.UserContext(), req.Phone, req.Code)
	if err != nil {
		return err
	}
	return success(c, "", dto.NewAuthResult(tokens, user))
}

// RegisterWithCode handles POST /api/auth/register-with-code.
func (h *AuthHandler) RegisterWithCode(c *fiber.Ctx) error {
	var req dto.RegisterWithCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return badPayload()
	}
	if err := req.Validate(); err != nil {
		return err
	}

	tokens, user, err := h.auth.RegisterWithCode(c.UserContext(), req.Code, service.PhoneRegistration{
		Phone:     req.Phone,
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      domain.Role(req.Role),
		Worker: service.WorkerFields{
			CategoryID:      req.Category,
			Description:     req.Description,
			ExperienceYears: req.ExperienceYears,
			Latitude:        req.Latitude.Value(),
			Longitude:       req.Longitude.Value(),
		},
	})
	if err != nil {
		return err
	}
	return success(c, "", dto.NewAuthResult(tokens, user))
}

// FirebaseLogin handles POST /api/auth/firebase/login.
func (h *AuthHandler) FirebaseLogin(c *fiber.Ctx) error {
	var req dto.FirebaseLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badPayload()
	}
	if err := req.Validate(); err != nil {
		return err
	}

	tokens, user, err := h.auth.FirebaseLogin(c.UserContext(), req.IDToken)
	if err != nil {
		return err
	}
	return success(c, "", dto.NewAuthResult(tokens, user))
}

// FirebaseRegister handles POST /api/auth/firebase/register.
func (h *AuthHandler) FirebaseRegister(c *fiber.Ctx) error {
	var req dto.FirebaseRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badPayload()
	}
	if err := req.Validate(); err != nil {
		return err
	}

	tokens, user, err := h.auth.FirebaseRegister(c.UserContext(), req.IDToken, service.PhoneRegistration{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      domain.Role(req.Role),
		Worker: service.WorkerFields{
			CategoryID:      req.Category,
			Description:     req.Description,
			ExperienceYears: req.ExperienceYears,
			Latitude:        req.Latitude.Value(),
			Longitude:       req.Longitude.Value(),
		},
	})
	if err != nil {
		return err
	}
	return success(c, "", dto.NewAuthResult(tokens, user))
}
