package auth

import (
	"fmt"
	"strings"

	"transport-console/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CtxSubjectKey = "subject"
	CtxScopeKey   = "scope"

	anonymous = "anonymous"
)

// JWTMiddleware requires a valid bearer token signed with JWT_SECRET. With no
// secret configured every request passes as "anonymous".
func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.JWTSecret == "" {
			c.Locals(CtxSubjectKey, anonymous)
			return c.Next()
		}

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header missing")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization format must be 'Bearer <token>'")
		}

		token, err := jwt.ParseWithClaims(parts[1], &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}

		claims, ok := token.Claims.(*JWTCustomClaims)
		if !ok || claims.Subject == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Token has no subject")
		}

		c.Locals(CtxSubjectKey, claims.Subject)
		c.Locals(CtxScopeKey, claims.Scope)

		return c.Next()
	}
}

// Actor is the subject of the current request, used in audit logs.
func Actor(c *fiber.Ctx) string {
	if s, ok := c.Locals(CtxSubjectKey).(string); ok && s != "" {
		return s
	}
	return anonymous
}
