package serverutils

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSweepApp(secret string) *fiber.App {
	app := fiber.New()
	app.Post("/sweep", SweepAuthMiddleware(secret), func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestSweepAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		secret     string
		authHeader string
		wantStatus int
	}{
		{"empty secret leaves endpoint open", "", "", fiber.StatusOK},
		{"valid bearer token", "s3cret", "Bearer s3cret", fiber.StatusOK},
		{"missing header", "s3cret", "", fiber.StatusUnauthorized},
		{"wrong token", "s3cret", "Bearer nope", fiber.StatusUnauthorized},
		{"missing bearer prefix", "s3cret", "s3cret", fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newSweepApp(tt.secret)

			req := httptest.NewRequest("POST", "/sweep", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			res, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, res.StatusCode)
		})
	}
}
