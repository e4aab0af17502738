package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/rizkypriyadi/authkit/internal/auth/dto"
	"github.com/rizkypriyadi/authkit/internal/auth/service"
	autherror "github.com/rizkypriyadi/authkit/internal/errors"
)

// AuthHandler is a thin HTTP adapter over the user service. It translates
// transport concerns only; all auth decisions live in the service.
type AuthHandler struct {
	userService *service.UserService
}

func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	user, err := h.userService.Register(c.Context(), input)
	if err != nil {
		if wpe, ok := autherror.AsWeakPassword(err); ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":      "password too weak",
				"violations": wpe.Violations,
			})
		}
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	out, err := h.userService.Login(c.Context(), input)
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(out)
}

// Me echoes the identity of the bearer token on the request.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	token := service.ExtractBearer(c.Get(fiber.HeaderAuthorization))
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "missing bearer token",
		})
	}

	user := h.userService.VerifyToken(token)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": autherror.ErrTokenInvalid.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
		"role":  user.Role,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, autherror.ErrUserNotFound),
		errors.Is(err, autherror.ErrInvalidCredentials),
		errors.Is(err, autherror.ErrMfaRequired),
		errors.Is(err, autherror.ErrMfaInvalid):
		return fiber.StatusUnauthorized
	case errors.Is(err, autherror.ErrUserInactive):
		return fiber.StatusForbidden
	case errors.Is(err, autherror.ErrEmailAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, autherror.ErrPasswordMismatch):
		return fiber.StatusBadRequest
	case errors.Is(err, autherror.ErrNetwork):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
