package handler

import (
	"vidvaan/internal/domain"
	"vidvaan/internal/dto"
	"vidvaan/internal/middleware"
	"vidvaan/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpsertUser creates or refreshes the caller's account row from the verified
// token claims. The body may optionally carry a phone number.
func (h *UserHandler) UpsertUser(c *fiber.Ctx) error {
	ident := middleware.IdentityFromCtx(c)
	if ident == nil {
		return domain.NewUnauthorizedError("Authorization token required")
	}

	// An empty body is fine; phone stays untouched then.
	var req dto.UpsertUserRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return domain.NewInvalidInputError("Invalid request body")
		}
	}

	resp, err := h.userService.UpsertProfile(c.Context(), ident, req.Phone)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}
