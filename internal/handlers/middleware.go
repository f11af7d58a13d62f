package handlers

import (
	"strings"

	"backoffice-service/internal/models"
	"backoffice-service/internal/services"
	"backoffice-service/pkg/utils"

	"github.com/gofiber/fiber/v3"
)

const (
	localUserID = "user_id"
	localRole   = "role"
)

type Middleware struct {
	tokenService *services.TokenService
}

func NewMiddleware(tokenService *services.TokenService) *Middleware {
	return &Middleware{tokenService: tokenService}
}

// RequireAuth resolves the Bearer token to (user id, role) in the request
// locals. Token internals never leave this layer.
func (m *Middleware) RequireAuth() fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).
				JSON(utils.CreateErrorResponse("MISSING_TOKEN", "authorization header required"))
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := m.tokenService.Authenticate(c.Context(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).
				JSON(utils.CreateErrorResponse("SESSION_INVALID", "token validation failed"))
		}

		c.Locals(localUserID, claims.UserID)
		c.Locals(localRole, claims.Role)
		return c.Next()
	}
}

// RequireRole allows only the listed roles past. Must run after RequireAuth.
func (m *Middleware) RequireRole(roles ...models.Role) fiber.Handler {
	return func(c fiber.Ctx) error {
		role, ok := c.Locals(localRole).(models.Role)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).
				JSON(utils.CreateErrorResponse("MISSING_TOKEN", "authentication required"))
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).
			JSON(utils.CreateErrorResponse("PERMISSION_DENIED", "role not allowed"))
	}
}

// CallerID returns the authenticated user id stored by RequireAuth.
func CallerID(c fiber.Ctx) string {
	id, _ := c.Locals(localUserID).(string)
	return id
}

// CallerRole returns the authenticated role stored by RequireAuth.
func CallerRole(c fiber.Ctx) models.Role {
	role, _ := c.Locals(localRole).(models.Role)
	return role
}
