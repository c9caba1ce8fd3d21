package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"vidvaan/internal/domain"
	"vidvaan/internal/dto"
	"vidvaan/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler is a centralized error handling middleware. Every handler
// returns its error and this translates it into the flat
// {"success": false, "error": "..."} envelope the clients consume.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		log := logger.Get()

		// Handle validation errors
		var validationErrs domain.ValidationErrors
		if errors.As(err, &validationErrs) {
			log.Warn("Validation errors occurred",
				zap.String("path", c.Path()),
				zap.Int("error_count", len(validationErrs)),
			)
			return c.Status(http.StatusBadRequest).JSON(dto.ErrorResponse{
				Success: false,
				Error:   formatValidationErrors(validationErrs),
			})
		}

		// Handle domain errors
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			statusCode := mapDomainErrorToHTTPStatus(domainErr)

			log.Error("Domain error occurred",
				zap.String("code", string(domainErr.Code)),
				zap.String("message", domainErr.Message),
				zap.Int("status", statusCode),
				zap.Error(domainErr.Cause),
			)

			message := domainErr.Message
			if statusCode == http.StatusInternalServerError {
				// Causes stay in the log, not in the response.
				message = "Internal server error"
			}

			return c.Status(statusCode).JSON(dto.ErrorResponse{
				Success: false,
				Error:   message,
			})
		}

		// Handle fiber errors
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			log.Warn("Fiber error occurred",
				zap.Int("code", fiberErr.Code),
				zap.String("message", fiberErr.Message),
			)
			return c.Status(fiberErr.Code).JSON(dto.ErrorResponse{
				Success: false,
				Error:   fiberErr.Message,
			})
		}

		// Handle unknown errors
		log.Error("Unknown error occurred",
			zap.String("path", c.Path()),
			zap.Error(err),
		)

		return c.Status(http.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false,
			Error:   "Internal server error",
		})
	}
}

// formatValidationErrors collapses field errors into one human-readable line.
func formatValidationErrors(errs domain.ValidationErrors) string {
	var missing []string
	for _, e := range errs {
		if e.Code == domain.CodeMissingField {
			missing = append(missing, e.Field)
		}
	}
	if len(missing) == len(errs) && len(missing) > 0 {
		return fmt.Sprintf("Missing required fields (%s)", strings.Join(missing, ", "))
	}
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Error()
	}
	return fmt.Sprintf("Invalid request: %s", strings.Join(parts, "; "))
}

// mapDomainErrorToHTTPStatus maps domain errors to HTTP status codes
func mapDomainErrorToHTTPStatus(err *domain.DomainError) int {
	switch err.Code {
	case domain.CodeNotFound, domain.CodeRequestNotFound:
		return http.StatusNotFound
	case domain.CodeInvalidInput, domain.CodeValidation,
		domain.CodeMissingField, domain.CodeInvalidFormat:
		return http.StatusBadRequest
	case domain.CodeUnauthorized:
		return http.StatusUnauthorized
	case domain.CodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
