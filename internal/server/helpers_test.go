package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"devmesh/internal/config"
	"devmesh/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupMockDB creates a GORM *gorm.DB backed by sqlmock for unit tests.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func TestParseID(t *testing.T) {
	app := fiber.New()
	app.Get("/items/:itemId", func(c *fiber.Ctx) error {
		id, err := parseID(c, "itemId", "item ID")
		if err != nil {
			return nil
		}
		return c.JSON(fiber.Map{"id": id})
	})

	t.Run("valid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/items/42", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	for _, bad := range []string{"abc", "0", "-5"} {
		t.Run("invalid "+bad, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/items/"+bad, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var body models.Response
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.False(t, body.Success)
			assert.Equal(t, "Invalid item ID", body.Message)
		})
	}
}

func TestParseFeedQuery(t *testing.T) {
	app := fiber.New()
	app.Get("/feed", func(c *fiber.Ctx) error {
		filters, pagination := parseFeedQuery(c)
		return c.JSON(fiber.Map{"filters": filters, "page": pagination.Page, "limit": pagination.Limit})
	})

	req := httptest.NewRequest(http.MethodGet,
		"/feed?search=go&gender=female&minAge=25&maxAge=40&sortBy=first_name&order=asc&page=3&limit=20", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var body struct {
		Filters models.FeedFilters `json:"filters"`
		Page    int                `json:"page"`
		Limit   int                `json:"limit"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "go", body.Filters.Search)
	assert.Equal(t, "female", body.Filters.Gender)
	assert.Equal(t, 25, body.Filters.MinAge)
	assert.Equal(t, 40, body.Filters.MaxAge)
	assert.Equal(t, "first_name", body.Filters.SortBy)
	assert.Equal(t, "asc", body.Filters.Order)
	assert.Equal(t, 3, body.Page)
	assert.Equal(t, 20, body.Limit)
}

func TestHealthCheck(t *testing.T) {
	gormDB, _ := setupMockDB(t)
	s := NewServerWithDeps(&config.Config{JWTSecret: "test-secret"}, gormDB, nil)

	app := fiber.New()
	app.Get("/health", s.HealthCheck)

	t.Run("database reachable", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "ok", body["status"])
		assert.Equal(t, "ok", body["database"])
	})
}
