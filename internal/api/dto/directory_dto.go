package dto

import (
	"time"

	"github.com/spec-kit/hirenow-api/internal/domain"
	"github.com/spec-kit/hirenow-api/internal/service"
)

// CategoryResponse is the public view of a category.
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// NewCategoryResponse maps a domain category.
func NewCategoryResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
		Icon:        category.Icon,
	}
}

// WorkerResponse is the public view of a worker listing. Coordinates are
// omitted entirely when the location is unknown.
type WorkerResponse struct {
	ID              string            `json:"id"`
	UserID          string            `json:"user_id"`
	UserName        string            `json:"user_name,omitempty"`
	Category        *CategoryResponse `json:"category,omitempty"`
	Description     string            `json:"description"`
	ExperienceYears int               `json:"experience_years"`
	Latitude        *float64          `json:"latitude,omitempty"`
	Longitude       *float64          `json:"longitude,omitempty"`
	Verified        bool              `json:"is_verified"`
}

// NewWorkerResponse maps a hydrated worker listing.
func NewWorkerResponse(listing *service.WorkerListing) WorkerResponse {
	resp := WorkerResponse{
		ID:              listing.Profile.ID,
		UserID:          listing.Profile.UserID,
		Description:     listing.Profile.Description,
		ExperienceYears: listing.Profile.ExperienceYears,
		Latitude:        listing.Profile.Latitude,
		Longitude:       listing.Profile.Longitude,
		Verified:        listing.Profile.Verified,
	}
	if listing.User != nil {
		resp.UserName = listing.User.FirstName + " " + listing.User.LastName
	}
	if listing.Category != nil {
		category := NewCategoryResponse(listing.Category)
		resp.Category = &category
	}
	return resp
}

// ReviewResponse is the public view of a review.
type ReviewResponse struct {
	ID        string    `json:"id"`
	WorkerID  string    `json:"worker_id"`
	AuthorID  string    `json:"author_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewReviewResponse maps a domain review.
func NewReviewResponse(review *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID,
		WorkerID:  review.WorkerID,
		AuthorID:  review.AuthorID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
}

// CreateReviewRequest payload.
type CreateReviewRequest struct {
	WorkerID string `json:"worker_id"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

// Validate applies the review creation rule set.
func (r CreateReviewRequest) Validate() error {
	if err := ValidateFields(
		FieldRule{Name: "worker_id", Value: r.WorkerID, Required: true},
	); err != nil {
		return err
	}
	return ValidateInts(
		IntRule{Name: "rating", Value: r.Rating, Min: 1, Max: 5},
	)
}

// UpdateReviewRequest payload.
type UpdateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Validate applies the review update rule set.
func (r UpdateReviewRequest) Validate() error {
	return ValidateInts(
		IntRule{Name: "rating", Value: r.Rating, Min: 1, Max: 5},
	)
}
