package handler

import (
	"vidvaan/internal/domain"
	"vidvaan/internal/dto"
	"vidvaan/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AssessmentHandler struct {
	assessmentService service.AssessmentService
}

func NewAssessmentHandler(assessmentService service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentService: assessmentService}
}

// Evaluate runs the heuristic metrics over the text and stores an assessment
// row for the background listener.
func (h *AssessmentHandler) Evaluate(c *fiber.Ctx) error {
	var req dto.EvaluateRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	resp, err := h.assessmentService.Evaluate(c.Context(), &req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// Preview runs the same heuristics without persisting anything.
func (h *AssessmentHandler) Preview(c *fiber.Ctx) error {
	var req dto.EvaluateRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	if errs := service.ValidateEvaluateRequest(&req); len(errs) > 0 {
		return errs
	}

	return c.JSON(h.assessmentService.Preview(&req))
}
