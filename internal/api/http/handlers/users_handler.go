package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hirenow-api/internal/api/dto"
	"github.com/spec-kit/hirenow-api/internal/service"
)

// UsersHandler exposes user listing endpoints.
type UsersHandler struct {
	directory *service.DirectoryService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(directory *service.DirectoryService) *UsersHandler {
	return &UsersHandler{directory: directory}
}

// List handles GET /api/users/.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.directory.ListUsers(c.UserContext())
	if err != nil {
		return err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, dto.NewUserResponse(&users[i]))
	}
	return success(c, "", result)
}

// Get handles GET /api/users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.directory.GetUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return success(c, "", dto.NewUserResponse(user))
}
