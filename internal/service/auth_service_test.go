package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/hirenow-api/internal/auth"
	"github.com/spec-kit/hirenow-api/internal/config"
	"github.com/spec-kit/hirenow-api/internal/domain"
	"github.com/spec-kit/hirenow-api/internal/events"
	"github.com/spec-kit/hirenow-api/internal/firebase"
	"github.com/spec-kit/hirenow-api/internal/otp"
	apperrors "github.com/spec-kit/hirenow-api/pkg/util"
)

type stubVerifier struct {
	claims *firebase.Claims
	err    error
}

func (s *stubVerifier) Verify(context.Context, string) (*firebase.Claims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.claims, nil
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) typed(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []events.Event
	for _, e := range d.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

type authFixture struct {
	service    *AuthService
	identity   *identityFixture
	otp        *otp.Manager
	verifier   *stubVerifier
	dispatcher *recordingDispatcher
}

func newAuthFixture(t *testing.T, env string) *authFixture {
	t.Helper()
	identity := newIdentityFixture(t)
	manager := otp.NewManager(otp.NewMemoryStore(), 6, 10*time.Minute)
	verifier := &stubVerifier{}
	dispatcher := &recordingDispatcher{}

	cfg := config.Config{
		App: config.AppConfig{Env: env},
		Auth: config.AuthConfig{
			JWTSecret:              "test-secret",
			AccessTokenTTLMinutes:  60,
			RefreshTokenTTLMinutes: 60 * 24,
		},
	}
	service := NewAuthService(cfg, AuthDependencies{
		Identity:   identity.service,
		OTPManager: manager,
		Verifier:   verifier,
		Dispatcher: dispatcher,
	})
	return &authFixture{
		service:    service,
		identity:   identity,
		otp:        manager,
		verifier:   verifier,
		dispatcher: dispatcher,
	}
}

func TestSendCode_EchoesOutsideProduction(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	dev := newAuthFixture(t, "development")
	code, err := dev.service.SendCode(ctx, "+94770001001")
	require.NoError(t, err)
	require.Len(t, code, 6)
	require.Len(t, dev.dispatcher.typed(events.EventCodeIssued), 1)

	prod := newAuthFixture(t, "production")
	code, err = prod.service.SendCode(ctx, "+94770001001")
	require.NoError(t, err)
	require.Empty(t, code)
	// the event still fires so the SMS worker can deliver the code
	require.Len(t, prod.dispatcher.typed(events.EventCodeIssued), 1)
}

func TestVerifyCode_EndToEnd(t *testing.T) {
	t.Parallel()
	f := newAuthFixture(t, "development")
	ctx := context.Background()

	code, err := f.service.SendCode(ctx, "+94770001002")
	require.NoError(t, err)

	pair, user, err := f.service.VerifyCode(ctx, "+94770001002", code)
	require.NoError(t, err)
	require.NotNil(t, pair)
	require.Equal(t, user.ID, pair.UserID)
	require.Equal(t, domain.RoleCustomer, user.Role)
	require.Len(t, f.dispatcher.typed(events.EventUserRegistered), 1)

	// replaying the same code converges on the same account
	_, replayed, err := f.service.VerifyCode(ctx, "+94770001002", code)
	require.NoError(t, err)
	require.Equal(t, user.ID, replayed.ID)
	require.Equal(t, 1, f.identity.users.count())
	require.Len(t, f.dispatcher.typed(events.EventUserRegistered), 1)

	claims, err := f.service.TokenManager().ParseToken(pair.Access)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, auth.TokenTypeAccess, claims.TokenType)
}

func TestVerifyCode_WrongCode(t *testing.T) {
	t.Parallel()
	f := newAuthFixture(t, "development")
	ctx := context.Background()

	code, err := f.service.SendCode(ctx, "+94770001003")
	require.NoError(t, err)

	wrong := "000000"
	if code == wrong {
		wrong = "000001"
	}
	_, _, err = f.service.VerifyCode(ctx, "+94770001003", wrong)
	requireDomainCode(t, err, apperrors.CodeUnauthorized)
	require.Zero(t, f.identity.users.count(), "a failed check must not create an account")
}

func TestRegisterWithCode_UpgradePublishesOnce(t *testing.T) {
	t.Parallel()
	f := newAuthFixture(t, "development")
	ctx := context.Background()

	code, err := f.service.SendCode(ctx, "+94770001004")
	require.NoError(t, err)
	_, created, err := f.service.VerifyCode(ctx, "+94770001004", code)
	require.NoError(t, err)

	reg := PhoneRegistration{
		Phone: "+94770001004",
		Role:  domain.RoleWorker,
		Worker: WorkerFields{
			CategoryID: "cat-1",
		},
	}
	code, err = f.service.SendCode(ctx, "+94770001004")
	require.NoError(t, err)

	_, upgraded, err := f.service.RegisterWithCode(ctx, code, reg)
	require.NoError(t, err)
	require.Equal(t, created.ID, upgraded.ID)
	require.Equal(t, domain.RoleWorker, upgraded.Role)
	require.Len(t, f.dispatcher.typed(events.EventRoleUpgraded), 1)

	// same code, same request: no duplicate upgrade event, no second profile
	_, again, err := f.service.RegisterWithCode(ctx, code, reg)
	require.NoError(t, err)
	require.Equal(t, created.ID, again.ID)
	require.Len(t, f.dispatcher.typed(events.EventRoleUpgraded), 1)
	require.Equal(t, 1, f.identity.workers.count())
}

func TestRegisterWithCode_NoChallenge(t *testing.T) {
	t.Parallel()
	f := newAuthFixture(t, "development")

	_, _, err := f.service.RegisterWithCode(context.Background(), "123456", PhoneRegistration{
		Phone: "+94770001005",
		Role:  domain.RoleCustomer,
	})
	requireDomainCode(t, err, apperrors.CodeUnauthorized)
}

func TestFirebaseLogin_RegistersThenReuses(t *testing.T) {
	t.Parallel()
	f := newAuthFixture(t, "development")
	ctx := context.Background()
	f.verifier.claims = &firebase.Claims{UID: "fb-uid-10", Phone: "+94770001006"}

	pair, user, err := f.service.FirebaseLogin(ctx, "any-token")
	require.NoError(t, err)
	require.Equal(t, user.ID, pair.UserID)
	require.Len(t, f.dispatcher.typed(events.EventUserRegistered), 1)

	_, again, err := f.service.FirebaseLogin(ctx, "any-token")
	require.NoError(t, err)
	require.Equal(t, user.ID, again.ID)
	require.Equal(t, 1, f.identity.users.count())
	require.Len(t, f.dispatcher.typed(events.EventUserRegistered), 1)
}

func TestFirebaseRegister_RejectsBadToken(t *testing.T) {
	t.Parallel()
	f := newAuthFixture(t, "development")
	f.verifier.err = firebase.ErrInvalidToken

	_, _, err := f.service.FirebaseRegister(context.Background(), "bad-token", PhoneRegistration{Role: domain.RoleCustomer})
	requireDomainCode(t, err, apperrors.CodeUnauthorized)
	require.Zero(t, f.identity.users.count())
}

func TestFirebaseRegister_BoundSubjectConflicts(t *testing.T) {
	t.Parallel()
	f := newAuthFixture(t, "development")
	ctx := context.Background()
	f.verifier.claims = &firebase.Claims{UID: "fb-uid-11", Phone: "+94770001007"}

	_, _, err := f.service.FirebaseRegister(ctx, "token", PhoneRegistration{Role: domain.RoleCustomer})
	require.NoError(t, err)

	_, _, err = f.service.FirebaseRegister(ctx, "token", PhoneRegistration{Role: domain.RoleCustomer})
	requireDomainCode(t, err, apperrors.CodeConflict)
}

func TestLoginAndRegister_PasswordPath(t *testing.T) {
	t.Parallel()
	f := newAuthFixture(t, "development")
	ctx := context.Background()

	pair, user, err := f.service.Register(ctx, RegisterInput{
		Username: "carol",
		Email:    "carol@example.com",
		Password: "long-enough-pass",
	})
	require.NoError(t, err)
	require.Equal(t, user.ID, pair.UserID)

	_, loggedIn, err := f.service.Login(ctx, "carol", "long-enough-pass")
	require.NoError(t, err)
	require.Equal(t, user.ID, loggedIn.ID)

	_, _, err = f.service.Login(ctx, "carol", "wrong")
	requireDomainCode(t, err, apperrors.CodeUnauthorized)
}
