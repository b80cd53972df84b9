package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hirenow-api/internal/api/dto"
	"github.com/spec-kit/hirenow-api/internal/auth"
	"github.com/spec-kit/hirenow-api/internal/service"
	apperrors "github.com/spec-kit/hirenow-api/pkg/util"
)

// ReviewsHandler exposes review CRUD endpoints.
type ReviewsHandler struct {
	directory *service.DirectoryService
}

// NewReviewsHandler constructs handler.
func NewReviewsHandler(directory *service.DirectoryService) *ReviewsHandler {
	return &ReviewsHandler{directory: directory}
}

// List handles GET /api/reviews/ with optional ?worker_id=<id>.
func (h *ReviewsHandler) List(c *fiber.Ctx) error {
	var workerID *string
	if worker := c.Query("worker_id"); worker != "" {
		workerID = &worker
	}

	reviews, err := h.directory.ListReviews(c.UserContext(), workerID)
	if err != nil {
		return err
	}

	result := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		result = append(result, dto.NewReviewResponse(&reviews[i]))
	}
	return success(c, "", result)
}

// Get handles GET /api/reviews/:id.
func (h *ReviewsHandler) Get(c *fiber.Ctx) error {
	review, err := h.directory.GetReview(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return success(c, "", dto.NewReviewResponse(review))
}

// Create handles POST /api/reviews/ (authenticated).
func (h *ReviewsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return badPayload()
	}
	if err := req.Validate(); err != nil {
		return err
	}

	review, err := h.directory.CreateReview(c.UserContext(), principal.User.ID, req.WorkerID, req.Rating, req.Comment)
	if err != nil {
		return err
	}
	return success(c, "", dto.NewReviewResponse(review))
}

// Update handles PUT /api/reviews/:id (owner only).
func (h *ReviewsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return badPayload()
	}
	if err := req.Validate(); err != nil {
		return err
	}

	review, err := h.directory.UpdateReview(c.UserContext(), principal.User.ID, c.Params("id"), req.Rating, req.Comment)
	if err != nil {
		return err
	}
	return success(c, "", dto.NewReviewResponse(review))
}

// Delete handles DELETE /api/reviews/:id (owner only).
func (h *ReviewsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.directory.DeleteReview(c.UserContext(), principal.User.ID, c.Params("id")); err != nil {
		return err
	}
	return success(c, "review deleted", nil)
}
