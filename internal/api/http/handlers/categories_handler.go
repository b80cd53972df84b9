package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hirenow-api/internal/api/dto"
	"github.com/spec-kit/hirenow-api/internal/service"
)

// CategoriesHandler exposes category listing endpoints.
type CategoriesHandler struct {
	directory *service.DirectoryService
}

// NewCategoriesHandler constructs handler.
func NewCategoriesHandler(directory *service.DirectoryService) *CategoriesHandler {
	return &CategoriesHandler{directory: directory}
}

// List handles GET /api/categories/.
func (h *CategoriesHandler) List(c *fiber.Ctx) error {
	categories, err := h.directory.ListCategories(c.UserContext())
	if err != nil {
		return err
	}

	result := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		result = append(result, dto.NewCategoryResponse(&categories[i]))
	}
	return success(c, "", result)
}

// Get handles GET /api/categories/:id.
func (h *CategoriesHandler) Get(c *fiber.Ctx) error {
	category, err := h.directory.GetCategory(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return success(c, "", dto.NewCategoryResponse(category))
}
