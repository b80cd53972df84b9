package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hirenow-api/internal/api/dto"
	"github.com/spec-kit/hirenow-api/internal/service"
)

// WorkersHandler exposes worker listing endpoints.
type WorkersHandler struct {
	directory *service.DirectoryService
}

// NewWorkersHandler constructs handler.
func NewWorkersHandler(directory *service.DirectoryService) *WorkersHandler {
	return &WorkersHandler{directory: directory}
}

// List handles GET /api/workers/ with optional ?category=<id>.
func (h *WorkersHandler) List(c *fiber.Ctx) error {
	var categoryID *string
	if category := c.Query("category"); category != "" {
		categoryID = &category
	}

	listings, err := h.directory.ListWorkers(c.UserContext(), categoryID)
	if err != nil {
		return err
	}

	result := make([]dto.WorkerResponse, 0, len(listings))
	for i := range listings {
		result = append(result, dto.NewWorkerResponse(&listings[i]))
	}
	return success(c, "", result)
}

// Get handles GET /api/workers/:id.
func (h *WorkersHandler) Get(c *fiber.Ctx) error {
	listing, err := h.directory.GetWorker(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return success(c, "", dto.NewWorkerResponse(listing))
}
