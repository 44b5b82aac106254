package server

import (
	"devmesh/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SendConnectionRequest handles POST /api/requests/send/:status/:userId
func (s *Server) SendConnectionRequest(c *fiber.Ctx) error {
	targetID, err := parseID(c, "userId", "user ID")
	if err != nil {
		return nil
	}
	status := models.ConnectionStatus(c.Params("status"))

	result, err := s.connService.SendRequest(c.Context(), currentUserID(c), targetID, status)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusCreated, result.Summary, result.Request)
}

// ReviewConnectionRequest handles POST /api/requests/review/:status/:requestId
func (s *Server) ReviewConnectionRequest(c *fiber.Ctx) error {
	requestID, err := parseID(c, "requestId", "request ID")
	if err != nil {
		return nil
	}
	decision := models.ConnectionStatus(c.Params("status"))

	request, err := s.connService.ReviewRequest(c.Context(), currentUserID(c), requestID, decision)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK,
		"Connection request "+string(request.Status), request)
}

// GetPendingReceived handles GET /api/users/requests/received
func (s *Server) GetPendingReceived(c *fiber.Ctx) error {
	pending, err := s.connService.GetPendingReceived(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, "", pending)
}

// GetConnections handles GET /api/users/connections
func (s *Server) GetConnections(c *fiber.Ctx) error {
	connections, err := s.connService.GetConnections(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, "", connections)
}
