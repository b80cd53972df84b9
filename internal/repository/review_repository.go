package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hirenow-api/internal/domain"
)

// ReviewRepository defines persistence access for worker reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	Update(ctx context.Context, review *domain.Review) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Review, error)
	List(ctx context.Context, workerID *string) ([]domain.Review, error)
}

type reviewRepository struct {
	pool *pgxpool.Pool
}

// NewReviewRepository returns a Postgres-backed implementation.
func NewReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &reviewRepository{pool: pool}
}

const reviewColumns = `id, worker_id, author_id, rating, comment, created_at`

func scanReview(row pgx.Row) (*domain.Review, error) {
	var review domain.Review
	if err := row.Scan(
		&review.ID,
		&review.WorkerID,
		&review.AuthorID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	const query = `
        INSERT INTO reviews (worker_id, author_id, rating, comment)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		review.WorkerID,
		review.AuthorID,
		review.Rating,
		review.Comment,
	).Scan(&review.ID, &review.CreatedAt)
}

func (r *reviewRepository) Update(ctx context.Context, review *domain.Review) error {
	const query = `UPDATE reviews SET rating=$1, comment=$2 WHERE id=$3`

	cmd, err := r.pool.Exec(ctx, query, review.Rating, review.Comment, review.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	const query = `SELECT ` + reviewColumns + ` FROM reviews WHERE id=$1`
	return scanReview(r.pool.QueryRow(ctx, query, id))
}

func (r *reviewRepository) List(ctx context.Context, workerID *string) ([]domain.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews ORDER BY created_at DESC`
	args := []any{}
	if workerID != nil {
		query = `SELECT ` + reviewColumns + ` FROM reviews WHERE worker_id=$1 ORDER BY created_at DESC`
		args = append(args, *workerID)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *review)
	}
	return reviews, rows.Err()
}
