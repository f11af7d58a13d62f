package handlers

import (
	"strings"

	"backoffice-service/internal/models"
	"backoffice-service/internal/services"
	"backoffice-service/pkg/utils"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type AuthHandler struct {
	tokenService *services.TokenService
	userService  *services.UserService
	middleware   *Middleware
}

func NewAuthHandler(tokenService *services.TokenService, userService *services.UserService, middleware *Middleware) *AuthHandler {
	return &AuthHandler{
		tokenService: tokenService,
		userService:  userService,
		middleware:   middleware,
	}
}

func (h *AuthHandler) Register(app *fiber.App) {
	public := app.Group("/auth/public")
	public.Post("/login", h.Login)

	protected := app.Group("/auth/protected", h.middleware.RequireAuth())
	protected.Post("/logout", h.Logout)
	protected.Get("/sessions", h.GetSessions)
	protected.Put("/password", h.ChangePassword)
	protected.Post("/register", h.RegisterUser, h.middleware.RequireRole(models.RoleAdmin))
	protected.Put("/users/:id/deactivate", h.DeactivateUser, h.middleware.RequireRole(models.RoleAdmin))
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.Bind().Body(&req); err != nil {
		return respondInvalidBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	resp, err := h.tokenService.Login(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(resp))
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	token := strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
	if err := h.tokenService.Logout(c.Context(), token); err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(nil))
}

// GetSessions lists the caller's own live sessions.
func (h *AuthHandler) GetSessions(c fiber.Ctx) error {
	userID, err := uuid.Parse(CallerID(c))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).
			JSON(utils.CreateErrorResponse("SESSION_INVALID", "token validation failed"))
	}

	sessions, err := h.tokenService.ActiveSessions(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(sessions))
}

// ChangePassword updates the caller's own password and revokes their
// sessions, including the one behind this request.
func (h *AuthHandler) ChangePassword(c fiber.Ctx) error {
	userID, err := uuid.Parse(CallerID(c))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).
			JSON(utils.CreateErrorResponse("SESSION_INVALID", "token validation failed"))
	}

	var req models.ChangePasswordRequest
	if err := c.Bind().Body(&req); err != nil {
		return respondInvalidBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	if err := h.userService.ChangePassword(c.Context(), userID, req.NewPassword); err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(nil))
}

func (h *AuthHandler) DeactivateUser(c fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return respondInvalidID(c, "id")
	}

	if err := h.userService.Deactivate(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.CreateSuccessResponse(nil))
}

func (h *AuthHandler) RegisterUser(c fiber.Ctx) error {
	var req models.RegisterUserRequest
	if err := c.Bind().Body(&req); err != nil {
		return respondInvalidBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	user, err := h.userService.Register(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(utils.CreateSuccessResponse(user))
}
