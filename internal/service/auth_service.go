package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/hirenow-api/internal/auth"
	"github.com/spec-kit/hirenow-api/internal/config"
	"github.com/spec-kit/hirenow-api/internal/domain"
	"github.com/spec-kit/hirenow-api/internal/events"
	"github.com/spec-kit/hirenow-api/internal/firebase"
	"github.com/spec-kit/hirenow-api/internal/otp"
	apperrors "github.com/spec-kit/hirenow-api/pkg/util"
)

// AuthService is the entry-point workflow per authentication route. Every
// route follows the same shape: validate → OTP manager and/or identity
// resolver → session issuer → uniform envelope.
type AuthService struct {
	identity   *IdentityService
	otp        *otp.Manager
	tokenMgr   *auth.TokenManager
	verifier   firebase.TokenVerifier
	dispatcher events.Dispatcher
	echoCodes  bool
}

// AuthDependencies encapsulates collaborator requirements for auth flows.
type AuthDependencies struct {
	Identity   *IdentityService
	OTPManager *otp.Manager
	Verifier   firebase.TokenVerifier
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		identity:   deps.Identity,
		otp:        deps.OTPManager,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes, cfg.Auth.RefreshTokenTTLMinutes),
		verifier:   deps.Verifier,
		dispatcher: deps.Dispatcher,
		// echoing generated codes back is a manual-testing convenience and
		// must never be active in production
		echoCodes: !cfg.App.IsProduction(),
	}
}

// Login authenticates password credentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.TokenPair, *domain.User, error) {
	user, err := s.identity.ResolvePassword(ctx, username, password)
	if err != nil {
		return nil, nil, err
	}
	return s.issue(user)
}

// Register creates a password-path account.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.TokenPair, *domain.User, error) {
	user, err := s.identity.RegisterPassword(ctx, input)
	if err != nil {
		return nil, nil, err
	}
	s.publishRegistered(ctx, user, "password")
	return s.issue(user)
}

// SendCode issues a fresh OTP challenge for the phone. The returned code is
// empty in production configurations; delivery happens via the SMS worker.
func (s *AuthService) SendCode(ctx context.Context, phone string) (string, error) {
	code, err := s.otp.Issue(ctx, phone)
	if err != nil {
		return "", err
	}

	s.publish(ctx, events.EventCodeIssued, events.CodeIssuedPayload{Phone: phone, Code: code})

	if s.echoCodes {
		return code, nil
	}
	return "", nil
}

// VerifyCode validates the code and resolves-or-creates the account bound to
// the phone. Repeated calls with the same valid code converge on the same
// user.
func (s *AuthService) VerifyCode(ctx context.Context, phone, code string) (*domain.TokenPair, *domain.User, error) {
	if err := s.checkCode(ctx, phone, code); err != nil {
		return nil, nil, err
	}

	res, err := s.identity.ResolveVerifiedPhone(ctx, phone)
	if err != nil {
		return nil, nil, err
	}
	if res.Created {
		s.publishRegistered(ctx, res.User, "phone_code")
	}
	return s.issue(res.User)
}

// RegisterWithCode validates the code and runs the phone registration branch,
// including idempotent customer→worker upgrades.
func (s *AuthService) RegisterWithCode(ctx context.Context, code string, reg PhoneRegistration) (*domain.TokenPair, *domain.User, error) {
	if err := s.checkCode(ctx, reg.Phone, code); err != nil {
		return nil, nil, err
	}

	res, err := s.identity.RegisterVerifiedPhone(ctx, reg)
	if err != nil {
		return nil, nil, err
	}
	if res.Created {
		s.publishRegistered(ctx, res.User, "phone_code")
	}
	if res.Upgraded {
		s.publish(ctx, events.EventRoleUpgraded, events.RoleUpgradedPayload{UserID: res.User.ID})
	}
	return s.issue(res.User)
}

// FirebaseLogin verifies the ID token and resolves the bound account.
func (s *AuthService) FirebaseLogin(ctx context.Context, idToken string) (*domain.TokenPair, *domain.User, error) {
	claims, err := s.verifyIDToken(ctx, idToken)
	if err != nil {
		return nil, nil, err
	}

	res, err := s.identity.ResolveFirebase(ctx, claims)
	if err != nil {
		return nil, nil, err
	}
	if res.Created {
		s.publishRegistered(ctx, res.User, "firebase")
	}
	return s.issue(res.User)
}

// FirebaseRegister verifies the ID token and runs the firebase registration
// branch; an already-bound subject id is rejected.
func (s *AuthService) FirebaseRegister(ctx context.Context, idToken string, reg PhoneRegistration) (*domain.TokenPair, *domain.User, error) {
	claims, err := s.verifyIDToken(ctx, idToken)
	if err != nil {
		return nil, nil, err
	}

	res, err := s.identity.RegisterFirebase(ctx, claims, reg)
	if err != nil {
		return nil, nil, err
	}
	if res.Created {
		s.publishRegistered(ctx, res.User, "firebase")
	}
	return s.issue(res.User)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) checkCode(ctx context.Context, phone, code string) error {
	ok, err := s.otp.Verify(ctx, phone, code)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewUnauthorized("invalid or expired code")
	}
	return nil
}

func (s *AuthService) verifyIDToken(ctx context.Context, idToken string) (*firebase.Claims, error) {
	claims, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		// generic message: the verifier's reasoning is not an oracle for callers
		return nil, apperrors.NewUnauthorized("invalid or expired token")
	}
	return claims, nil
}

func (s *AuthService) issue(user *domain.User) (*domain.TokenPair, *domain.User, error) {
	pair, err := s.tokenMgr.GeneratePair(user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

func (s *AuthService) publishRegistered(ctx context.Context, user *domain.User, path string) {
	s.publish(ctx, events.EventUserRegistered, events.UserRegisteredPayload{
		UserID: user.ID,
		Role:   user.Role,
		Path:   path,
	})
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
