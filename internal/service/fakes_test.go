package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hirenow-api/internal/domain"
)

// fakeUserRepo keeps users in insertion order so FirstByPhone mirrors the
// oldest-row-wins behavior of the Postgres implementation.
type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int
	users []*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return fmt.Errorf("duplicate username %q", user.Username)
		}
		if existing.Email == user.Email {
			return fmt.Errorf("duplicate email %q", user.Email)
		}
		if user.FirebaseUID != nil && existing.FirebaseUID != nil && *existing.FirebaseUID == *user.FirebaseUID {
			return fmt.Errorf("duplicate firebase uid %q", *user.FirebaseUID)
		}
	}
	r.seq++
	user.ID = fmt.Sprintf("user-%d", r.seq)
	user.CreatedAt = time.Now().Add(time.Duration(r.seq) * time.Millisecond)
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users = append(r.users, &clone)
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.users {
		if existing.ID == user.ID {
			clone := *user
			clone.UpdatedAt = time.Now()
			r.users[i] = &clone
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.ID == id })
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Username == username })
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Email == email })
}

func (r *fakeUserRepo) GetByFirebaseUID(_ context.Context, uid string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.FirebaseUID != nil && *u.FirebaseUID == uid })
}

func (r *fakeUserRepo) FirstByPhone(_ context.Context, phone string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Phone == phone })
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) find(match func(*domain.User) bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

// fakeWorkerRepo upserts keyed by user id, same contract as the Postgres
// ON CONFLICT (user_id) implementation.
type fakeWorkerRepo struct {
	mu       sync.Mutex
	seq      int
	profiles []*domain.WorkerProfile
}

func newFakeWorkerRepo() *fakeWorkerRepo {
	return &fakeWorkerRepo{}
}

func (r *fakeWorkerRepo) Upsert(_ context.Context, profile *domain.WorkerProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.profiles {
		if existing.UserID == profile.UserID {
			profile.ID = existing.ID
			profile.Verified = existing.Verified
			profile.CreatedAt = existing.CreatedAt
			profile.UpdatedAt = time.Now()
			clone := *profile
			r.profiles[i] = &clone
			return nil
		}
	}
	r.seq++
	profile.ID = fmt.Sprintf("worker-%d", r.seq)
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt
	clone := *profile
	r.profiles = append(r.profiles, &clone)
	return nil
}

func (r *fakeWorkerRepo) GetByID(_ context.Context, id string) (*domain.WorkerProfile, error) {
	return r.find(func(p *domain.WorkerProfile) bool { return p.ID == id })
}

func (r *fakeWorkerRepo) GetByUserID(_ context.Context, userID string) (*domain.WorkerProfile, error) {
	return r.find(func(p *domain.WorkerProfile) bool { return p.UserID == userID })
}

func (r *fakeWorkerRepo) List(_ context.Context, categoryID *string) ([]domain.WorkerProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.WorkerProfile
	for _, p := range r.profiles {
		if categoryID != nil && (p.CategoryID == nil || *p.CategoryID != *categoryID) {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeWorkerRepo) find(match func(*domain.WorkerProfile) bool) (*domain.WorkerProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if match(p) {
			clone := *p
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeWorkerRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.profiles)
}

type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories map[string]domain.Category
}

func newFakeCategoryRepo(categories ...domain.Category) *fakeCategoryRepo {
	repo := &fakeCategoryRepo{categories: make(map[string]domain.Category)}
	for _, c := range categories {
		repo.categories[c.ID] = c
	}
	return repo
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id string) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	category, ok := r.categories[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &category, nil
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, c)
	}
	return out, nil
}
