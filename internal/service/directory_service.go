package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hirenow-api/internal/domain"
	"github.com/spec-kit/hirenow-api/internal/repository"
	apperrors "github.com/spec-kit/hirenow-api/pkg/util"
)

// DirectoryService serves the read-mostly listing surfaces. No reconciliation
// logic lives here; everything is a repository pass-through.
type DirectoryService struct {
	users      repository.UserRepository
	workers    repository.WorkerRepository
	categories repository.CategoryRepository
	reviews    repository.ReviewRepository
}

// DirectoryDependencies bundles repositories for the directory service.
type DirectoryDependencies struct {
	UserRepo     repository.UserRepository
	WorkerRepo   repository.WorkerRepository
	CategoryRepo repository.CategoryRepository
	ReviewRepo   repository.ReviewRepository
}

// NewDirectoryService constructs the service.
func NewDirectoryService(deps DirectoryDependencies) *DirectoryService {
	return &DirectoryService{
		users:      deps.UserRepo,
		workers:    deps.WorkerRepo,
		categories: deps.CategoryRepo,
		reviews:    deps.ReviewRepo,
	}
}

// WorkerListing joins a worker profile with its owning user and category.
type WorkerListing struct {
	Profile  domain.WorkerProfile
	User     *domain.User
	Category *domain.Category
}

// ListUsers returns all users.
func (s *DirectoryService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// GetUser returns one user by id.
func (s *DirectoryService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, err
	}
	return user, nil
}

// ListWorkers returns worker listings, optionally filtered by category.
func (s *DirectoryService) ListWorkers(ctx context.Context, categoryID *string) ([]WorkerListing, error) {
	profiles, err := s.workers.List(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	listings := make([]WorkerListing, 0, len(profiles))
	for _, profile := range profiles {
		listing, err := s.hydrateWorker(ctx, profile)
		if err != nil {
			return nil, err
		}
		listings = append(listings, *listing)
	}
	return listings, nil
}

// GetWorker returns one worker listing by profile id.
func (s *DirectoryService) GetWorker(ctx context.Context, id string) (*WorkerListing, error) {
	profile, err := s.workers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("worker")
		}
		return nil, err
	}
	return s.hydrateWorker(ctx, *profile)
}

// ListCategories returns all categories.
func (s *DirectoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

// GetCategory returns one category by id.
func (s *DirectoryService) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("category")
		}
		return nil, err
	}
	return category, nil
}

// ListReviews returns reviews, optionally filtered by worker.
func (s *DirectoryService) ListReviews(ctx context.Context, workerID *string) ([]domain.Review, error) {
	return s.reviews.List(ctx, workerID)
}

// GetReview returns one review by id.
func (s *DirectoryService) GetReview(ctx context.Context, id string) (*domain.Review, error) {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("review")
		}
		return nil, err
	}
	return review, nil
}

// CreateReview stores a review authored by the caller for an existing worker.
func (s *DirectoryService) CreateReview(ctx context.Context, authorID, workerID string, rating int, comment string) (*domain.Review, error) {
	if _, err := s.workers.GetByID(ctx, workerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("worker")
		}
		return nil, err
	}

	review := &domain.Review{
		WorkerID: workerID,
		AuthorID: authorID,
		Rating:   rating,
		Comment:  comment,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// UpdateReview mutates a review owned by the caller.
func (s *DirectoryService) UpdateReview(ctx context.Context, authorID, reviewID string, rating int, comment string) (*domain.Review, error) {
	review, err := s.GetReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.AuthorID != authorID {
		return nil, apperrors.NewForbidden("not allowed")
	}

	review.Rating = rating
	review.Comment = comment
	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// DeleteReview removes a review owned by the caller.
func (s *DirectoryService) DeleteReview(ctx context.Context, authorID, reviewID string) error {
	review, err := s.GetReview(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.AuthorID != authorID {
		return apperrors.NewForbidden("not allowed")
	}
	return s.reviews.Delete(ctx, reviewID)
}

func (s *DirectoryService) hydrateWorker(ctx context.Context, profile domain.WorkerProfile) (*WorkerListing, error) {
	listing := WorkerListing{Profile: profile}

	user, err := s.users.GetByID(ctx, profile.UserID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	listing.User = user

	if profile.CategoryID != nil {
		category, err := s.categories.GetByID(ctx, *profile.CategoryID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		listing.Category = category
	}
	return &listing, nil
}
