package handler

import (
	"vidvaan/internal/domain"
	"vidvaan/internal/dto"
	"vidvaan/internal/middleware"
	"vidvaan/internal/service"

	"github.com/gofiber/fiber/v2"
)

// RequestHandler serves the gateway routes for submitted requests. All of
// them sit behind middleware.Protected, so a verified identity is always in
// the context.
type RequestHandler struct {
	requestService service.RequestService
}

func NewRequestHandler(requestService service.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

func userIDFromCtx(c *fiber.Ctx) (string, error) {
	userID, ok := c.Locals(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		return "", domain.NewUnauthorizedError("Authorization token required")
	}
	return userID, nil
}

// CreateRequest accepts a module submission and stores it for the background
// processor.
func (h *RequestHandler) CreateRequest(c *fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	var req dto.CreateRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	resp, err := h.requestService.CreateRequest(c.Context(), userID, &req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// ListRequests returns the caller's newest submissions.
func (h *RequestHandler) ListRequests(c *fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	resp, err := h.requestService.ListRequests(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// GetRequestByID returns one owned submission with its result when the
// processor has produced one.
func (h *RequestHandler) GetRequestByID(c *fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	requestID := c.Params("requestId")

	resp, err := h.requestService.GetRequestByID(c.Context(), userID, requestID)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}
