package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hirenow-api/internal/domain"
)

// WorkerRepository defines persistence access for worker profiles.
type WorkerRepository interface {
	// Upsert creates the profile for a user or overwrites its mutable fields
	// when one already exists. Keyed by user_id; at most one profile per user.
	Upsert(ctx context.Context, profile *domain.WorkerProfile) error
	GetByID(ctx context.Context, id string) (*domain.WorkerProfile, error)
	GetByUserID(ctx context.Context, userID string) (*domain.WorkerProfile, error)
	List(ctx context.Context, categoryID *string) ([]domain.WorkerProfile, error)
}

type workerRepository struct {
	pool *pgxpool.Pool
}

// NewWorkerRepository returns a Postgres-backed implementation.
func NewWorkerRepository(pool *pgxpool.Pool) WorkerRepository {
	return &workerRepository{pool: pool}
}

const workerColumns = `id, user_id, category_id, description, experience_years, latitude, longitude, is_verified, created_at, updated_at`

func scanWorker(row pgx.Row) (*domain.WorkerProfile, error) {
	var profile domain.WorkerProfile
	if err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.CategoryID,
		&profile.Description,
		&profile.ExperienceYears,
		&profile.Latitude,
		&profile.Longitude,
		&profile.Verified,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *workerRepository) Upsert(ctx context.Context, profile *domain.WorkerProfile) error {
	const query = `
        INSERT INTO workers (user_id, category_id, description, experience_years, latitude, longitude)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (user_id) DO UPDATE SET
            category_id=EXCLUDED.category_id,
            description=EXCLUDED.description,
            experience_years=EXCLUDED.experience_years,
            latitude=EXCLUDED.latitude,
            longitude=EXCLUDED.longitude,
            updated_at=NOW()
        RETURNING id, is_verified, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		profile.UserID,
		profile.CategoryID,
		profile.Description,
		profile.ExperienceYears,
		profile.Latitude,
		profile.Longitude,
	).Scan(&profile.ID, &profile.Verified, &profile.CreatedAt, &profile.UpdatedAt)
}

func (r *workerRepository) GetByID(ctx context.Context, id string) (*domain.WorkerProfile, error) {
	const query = `SELECT ` + workerColumns + ` FROM workers WHERE id=$1`
	return scanWorker(r.pool.QueryRow(ctx, query, id))
}

func (r *workerRepository) GetByUserID(ctx context.Context, userID string) (*domain.WorkerProfile, error) {
	const query = `SELECT ` + workerColumns + ` FROM workers WHERE user_id=$1`
	return scanWorker(r.pool.QueryRow(ctx, query, userID))
}

func (r *workerRepository) List(ctx context.Context, categoryID *string) ([]domain.WorkerProfile, error) {
	query := `SELECT ` + workerColumns + ` FROM workers ORDER BY created_at DESC`
	args := []any{}
	if categoryID != nil {
		query = `SELECT ` + workerColumns + ` FROM workers WHERE category_id=$1 ORDER BY created_at DESC`
		args = append(args, *categoryID)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.WorkerProfile
	for rows.Next() {
		profile, err := scanWorker(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}
	return profiles, rows.Err()
}
