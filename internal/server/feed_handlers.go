package server

import (
	"devmesh/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/feed
func (s *Server) GetFeed(c *fiber.Ctx) error {
	filters, pagination := parseFeedQuery(c)

	page, err := s.feedService.GetFeed(c.Context(), currentUserID(c), filters, pagination)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, "", page)
}
