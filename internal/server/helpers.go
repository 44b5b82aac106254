package server

import (
	"errors"

	"devmesh/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// currentUserID returns the authenticated user's ID set by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	return c.Locals("userID").(uint)
}

// parseID extracts a route parameter as a positive uint. On failure it writes
// a 400 envelope and returns errResponseWritten; callers should then return
// nil.
func parseID(c *fiber.Ctx, param, label string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, models.NewValidationError("Invalid "+label))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parseFeedQuery reads feed filters and pagination from the query string.
// Out-of-range page and limit values are normalized later, not rejected.
func parseFeedQuery(c *fiber.Ctx) (models.FeedFilters, models.FeedPagination) {
	filters := models.FeedFilters{
		Search: c.Query("search"),
		Gender: c.Query("gender"),
		MinAge: c.QueryInt("minAge", 0),
		MaxAge: c.QueryInt("maxAge", 0),
		SortBy: c.Query("sortBy"),
		Order:  c.Query("order"),
	}
	pagination := models.FeedPagination{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", models.DefaultFeedLimit),
	}
	return filters, pagination
}
