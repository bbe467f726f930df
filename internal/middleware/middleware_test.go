package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/helpdesk/internal/actor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(RequestID(), ActorMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		id, ok := actor.UserID(c.UserContext())
		return c.JSON(fiber.Map{
			"actor":     id,
			"hasActor":  ok,
			"requestId": c.Locals("requestid"),
		})
	})
	return app
}

func TestActorMiddleware(t *testing.T) {
	app := newApp()

	tests := []struct {
		name   string
		header string
		query  string
		status int
	}{
		{"anonymous", "", "", http.StatusOK},
		{"header", "7", "", http.StatusOK},
		{"query", "", "?userId=7", http.StatusOK},
		{"header wins", "7", "?userId=bad", http.StatusOK},
		{"malformed", "seven", "", http.StatusBadRequest},
		{"zero", "0", "", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set(ActorHeader, tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestRequestIDHeader(t *testing.T) {
	app := newApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Len(t, resp.Header.Get(fiber.HeaderXRequestID), 36)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderXRequestID, "given")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "given", resp.Header.Get(fiber.HeaderXRequestID))
}
