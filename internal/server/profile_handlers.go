package server

import (
	"devmesh/internal/models"
	"devmesh/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/profile
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetProfile(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, "", user)
}

// UpdateMyProfile handles PATCH /api/profile
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req validation.ProfileEditInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), currentUserID(c), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, "Profile updated successfully", user)
}
