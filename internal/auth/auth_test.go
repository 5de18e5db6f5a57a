package auth

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transport-console/internal/config"
)

const secret = "0123456789abcdef0123456789abcdef"

func newApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Use(JWTMiddleware(cfg))
	app.Get("/whoami", func(c *fiber.Ctx) error { return c.SendString(Actor(c)) })
	return app
}

func call(t *testing.T, app *fiber.App, header string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("GET", "/whoami", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestJWTMiddleware_DisabledWithoutSecret(t *testing.T) {
	status, body := call(t, newApp(&config.Config{}), "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "anonymous", body)
}

func TestJWTMiddleware(t *testing.T) {
	app := newApp(&config.Config{JWTSecret: secret})

	good, err := GenerateToken(secret, "console", time.Hour)
	require.NoError(t, err)
	expired, err := GenerateToken(secret, "console", -time.Minute)
	require.NoError(t, err)
	foreign, err := GenerateToken(strings.Repeat("x", 32), "console", time.Hour)
	require.NoError(t, err)
	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &JWTCustomClaims{}).SignedString([]byte(secret))
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", fiber.StatusUnauthorized},
		{"wrong scheme", "Basic abc", fiber.StatusUnauthorized},
		{"expired", "Bearer " + expired, fiber.StatusUnauthorized},
		{"other secret", "Bearer " + foreign, fiber.StatusUnauthorized},
		{"no subject", "Bearer " + noSubject, fiber.StatusUnauthorized},
		{"valid", "Bearer " + good, fiber.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := call(t, app, tc.header)
			assert.Equal(t, tc.status, status)
			if tc.status == fiber.StatusOK {
				assert.Equal(t, "console", body)
			}
		})
	}
}

func TestTokenSource(t *testing.T) {
	none := NewTokenSource("", "console")
	tok, err := none()
	require.NoError(t, err)
	assert.Empty(t, tok)

	src := NewTokenSource(secret, "console")
	first, err := src()
	require.NoError(t, err)
	second, err := src()
	require.NoError(t, err)
	assert.Equal(t, first, second, "token is reused until close to expiry")

	claims := &JWTCustomClaims{}
	_, err = jwt.ParseWithClaims(first, claims, func(*jwt.Token) (interface{}, error) { return []byte(secret), nil })
	require.NoError(t, err)
	assert.Equal(t, "console", claims.Subject)
}
