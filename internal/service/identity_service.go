package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hirenow-api/internal/auth"
	"github.com/spec-kit/hirenow-api/internal/domain"
	"github.com/spec-kit/hirenow-api/internal/firebase"
	"github.com/spec-kit/hirenow-api/internal/repository"
	apperrors "github.com/spec-kit/hirenow-api/pkg/util"
)

const (
	// matches the username column width; synthesized names never exceed it,
	// disambiguation suffix included.
	maxUsernameLength = 150

	// reserved domain for accounts created without an email address.
	syntheticEmailDomain = "phone.hirenow.app"

	defaultWorkerDescription = "Available for work"
)

// IdentityService maps each identity-path input to exactly one canonical
// user, creating or upgrading records as needed. All branching for the three
// credential shapes lives here.
type IdentityService struct {
	users      repository.UserRepository
	workers    repository.WorkerRepository
	categories repository.CategoryRepository
	bcryptCost int
}

// IdentityDependencies bundles repo requirements for the resolver.
type IdentityDependencies struct {
	UserRepo     repository.UserRepository
	WorkerRepo   repository.WorkerRepository
	CategoryRepo repository.CategoryRepository
	BcryptCost   int
}

// NewIdentityService builds the resolver.
func NewIdentityService(deps IdentityDependencies) *IdentityService {
	cost := deps.BcryptCost
	if cost <= 0 {
		cost = 12
	}
	return &IdentityService{
		users:      deps.UserRepo,
		workers:    deps.WorkerRepo,
		categories: deps.CategoryRepo,
		bcryptCost: cost,
	}
}

// WorkerFields carries the optional worker-profile attributes supplied on
// registration or upgrade.
type WorkerFields struct {
	CategoryID      string
	Description     string
	ExperienceYears int
	Latitude        *float64
	Longitude       *float64
}

// PhoneRegistration describes a code-verified registration request. The
// caller must have verified the phone (OTP or Firebase token) before calling
// into the resolver.
type PhoneRegistration struct {
	Phone     string
	Username  string
	Email     string
	FirstName string
	LastName  string
	Role      domain.Role
	Worker    WorkerFields
}

// Resolution is the outcome of a reconciliation: the canonical user plus what
// happened to reach it.
type Resolution struct {
	User     *domain.User
	Created  bool
	Upgraded bool
}

// RegisterInput describes a password-path registration.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	Phone     string
	Role      domain.Role
	FirstName string
	LastName  string
}

// ResolvePassword authenticates username+password credentials (shape A).
// No creation occurs on this path.
func (s *IdentityService) ResolvePassword(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	return user, nil
}

// RegisterPassword creates a user from username/email/password credentials.
func (s *IdentityService) RegisterPassword(ctx context.Context, input RegisterInput) (*domain.User, error) {
	details := map[string]any{}
	if taken, err := s.usernameTaken(ctx, input.Username); err != nil {
		return nil, err
	} else if taken {
		details["username"] = "already registered"
	}
	if taken, err := s.emailTaken(ctx, input.Email); err != nil {
		return nil, err
	} else if taken {
		details["email"] = "already registered"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid data", details)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = domain.RoleCustomer
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: hash,
		Role:         role,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ResolveVerifiedPhone handles the shape B login branch: the phone has been
// OTP-verified, and the caller wants whatever account owns it. An unseen
// phone creates a fresh customer account.
func (s *IdentityService) ResolveVerifiedPhone(ctx context.Context, phone string) (*Resolution, error) {
	existing, err := s.firstByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &Resolution{User: existing}, nil
	}
	return s.createFromPhone(ctx, PhoneRegistration{Phone: phone, Role: domain.RoleCustomer}, nil, false)
}

// RegisterVerifiedPhone handles the shape B registration branch. An existing
// phone either upgrades to worker (idempotent) or is rejected; an unseen
// phone registers fresh with the supplied profile fields.
func (s *IdentityService) RegisterVerifiedPhone(ctx context.Context, reg PhoneRegistration) (*Resolution, error) {
	existing, err := s.firstByPhone(ctx, reg.Phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if reg.Role != domain.RoleWorker {
			// a phone cannot re-register as customer once it exists
			return nil, apperrors.NewConflict("phone already registered")
		}
		return s.upgradeToWorker(ctx, existing, reg)
	}
	// category is optional on this path; validated only when supplied
	return s.createFromPhone(ctx, reg, nil, false)
}

// ResolveFirebase handles the shape C login branch: verified token claims map
// to the user bound to the subject id, resyncing the phone when it changed.
// An unseen subject id registers a fresh customer account.
func (s *IdentityService) ResolveFirebase(ctx context.Context, claims *firebase.Claims) (*Resolution, error) {
	existing, err := s.byFirebaseUID(ctx, claims.UID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if claims.Phone != "" && existing.Phone != claims.Phone {
			existing.Phone = claims.Phone
			if err := s.users.Update(ctx, existing); err != nil {
				return nil, err
			}
		}
		return &Resolution{User: existing}, nil
	}

	uid := claims.UID
	reg := PhoneRegistration{Phone: claims.Phone, Role: domain.RoleCustomer}
	return s.createFromPhone(ctx, reg, &uid, false)
}

// RegisterFirebase handles the shape C registration branch. A subject id that
// already resolves is rejected outright rather than silently logged in, so
// the login and register entry points keep distinct contracts. Worker
// registration on this path treats category as mandatory.
func (s *IdentityService) RegisterFirebase(ctx context.Context, claims *firebase.Claims, reg PhoneRegistration) (*Resolution, error) {
	existing, err := s.byFirebaseUID(ctx, claims.UID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflict("account already registered")
	}

	uid := claims.UID
	reg.Phone = claims.Phone
	return s.createFromPhone(ctx, reg, &uid, true)
}

func (s *IdentityService) upgradeToWorker(ctx context.Context, user *domain.User, reg PhoneRegistration) (*Resolution, error) {
	upgraded := false
	changed := false

	if user.Role != domain.RoleWorker {
		user.Role = domain.RoleWorker
		upgraded = true
		changed = true
	}
	if reg.FirstName != "" && reg.FirstName != user.FirstName {
		user.FirstName = reg.FirstName
		changed = true
	}
	if reg.LastName != "" && reg.LastName != user.LastName {
		user.LastName = reg.LastName
		changed = true
	}
	if reg.Email != "" && reg.Email != user.Email {
		user.Email = reg.Email
		changed = true
	}
	if changed {
		if err := s.users.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	profile, err := s.buildWorkerProfile(ctx, user.ID, reg.Worker, false)
	if err != nil {
		return nil, err
	}
	// upsert keyed by user: repeated upgrade calls overwrite, never duplicate
	if err := s.workers.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	return &Resolution{User: user, Upgraded: upgraded}, nil
}

func (s *IdentityService) createFromPhone(ctx context.Context, reg PhoneRegistration, firebaseUID *string, categoryRequired bool) (*Resolution, error) {
	role := reg.Role
	if role == "" {
		role = domain.RoleCustomer
	}

	if reg.Email != "" {
		if taken, err := s.emailTaken(ctx, reg.Email); err != nil {
			return nil, err
		} else if taken {
			return nil, apperrors.NewValidationError("invalid data", map[string]any{"email": "already registered"})
		}
	}

	username, err := s.synthesizeUsername(ctx, reg.Username, reg.Email, reg.Phone)
	if err != nil {
		return nil, err
	}

	// this identity path never re-authenticates by password; store an
	// unusable random one
	hash, err := auth.HashPassword(auth.RandomPassword(), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        synthesizeEmail(reg.Email, reg.Phone),
		Phone:        reg.Phone,
		PasswordHash: hash,
		FirebaseUID:  firebaseUID,
		Role:         role,
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
	}

	if role == domain.RoleWorker {
		// validate before creating the user so a bad category fails the
		// whole registration closed
		profile, err := s.buildWorkerProfile(ctx, "", reg.Worker, categoryRequired)
		if err != nil {
			return nil, err
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}
		profile.UserID = user.ID
		if err := s.workers.Upsert(ctx, profile); err != nil {
			return nil, err
		}
		return &Resolution{User: user, Created: true}, nil
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return &Resolution{User: user, Created: true}, nil
}

func (s *IdentityService) buildWorkerProfile(ctx context.Context, userID string, fields WorkerFields, categoryRequired bool) (*domain.WorkerProfile, error) {
	var categoryID *string
	if fields.CategoryID != "" {
		category, err := s.categories.GetByID(ctx, fields.CategoryID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("category")
			}
			return nil, err
		}
		categoryID = &category.ID
	} else if categoryRequired {
		return nil, apperrors.NewValidationError("invalid data", map[string]any{"category": "required for worker registration"})
	}

	description := fields.Description
	if description == "" {
		description = defaultWorkerDescription
	}

	experience := fields.ExperienceYears
	if experience < 0 {
		experience = 0
	}

	return &domain.WorkerProfile{
		UserID:          userID,
		CategoryID:      categoryID,
		Description:     description,
		ExperienceYears: experience,
		Latitude:        fields.Latitude,
		Longitude:       fields.Longitude,
	}, nil
}

// synthesizeUsername picks a username in preference order caller-supplied →
// email local-part → sanitized phone, truncating to the column width and
// disambiguating collisions with a phone-derived suffix.
func (s *IdentityService) synthesizeUsername(ctx context.Context, preferred, email, phone string) (string, error) {
	base := sanitizeIdentifier(preferred)
	if base == "" && email != "" {
		if at := strings.Index(email, "@"); at > 0 {
			base = sanitizeIdentifier(email[:at])
		}
	}
	if base == "" {
		base = sanitizeIdentifier(phone)
	}
	if base == "" {
		base = "user"
	}
	if len(base) > maxUsernameLength {
		base = base[:maxUsernameLength]
	}

	taken, err := s.usernameTaken(ctx, base)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}

	suffix := "_" + sanitizeIdentifier(phone)
	if len(base)+len(suffix) > maxUsernameLength {
		base = base[:maxUsernameLength-len(suffix)]
	}
	candidate := base + suffix

	taken, err = s.usernameTaken(ctx, candidate)
	if err != nil {
		return "", err
	}
	if taken {
		return "", apperrors.NewValidationError("invalid data", map[string]any{"username": "already registered"})
	}
	return candidate, nil
}

func (s *IdentityService) usernameTaken(ctx context.Context, username string) (bool, error) {
	_, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	return false, err
}

func (s *IdentityService) emailTaken(ctx context.Context, email string) (bool, error) {
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	return false, err
}

func (s *IdentityService) firstByPhone(ctx context.Context, phone string) (*domain.User, error) {
	user, err := s.users.FirstByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (s *IdentityService) byFirebaseUID(ctx context.Context, uid string) (*domain.User, error) {
	user, err := s.users.GetByFirebaseUID(ctx, uid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func synthesizeEmail(email, phone string) string {
	if email != "" {
		return email
	}
	return sanitizeIdentifier(phone) + "@" + syntheticEmailDomain
}

// sanitizeIdentifier strips '+' and spaces, the normalization applied to both
// phone numbers and username material.
func sanitizeIdentifier(value string) string {
	value = strings.ReplaceAll(value, "+", "")
	return strings.ReplaceAll(value, " ", "")
}
