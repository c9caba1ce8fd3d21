package middleware

import (
	"strings"

	"vidvaan/internal/dto"
	"vidvaan/internal/identity"
	"vidvaan/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	IdentityKey         = "identity" // Key for storing *identity.Identity in fiber.Ctx locals
	UserIDKey           = "userID"   // Key for storing the verified UID in fiber.Ctx locals
)

// Protected is a middleware function that protects routes by requiring a
// valid bearer token from the identity provider. A missing or malformed
// header is 401; a token that fails verification is 403.
func Protected(verifier identity.Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" || !strings.HasPrefix(authHeader, BearerSchema) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Success: false,
				Error:   "Authorization token required",
			})
		}

		tokenString := strings.TrimPrefix(authHeader, BearerSchema)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Success: false,
				Error:   "Authorization token required",
			})
		}

		ident, err := verifier.Verify(c.Context(), tokenString)
		if err != nil {
			logger.Get().Warn("Token verification failed",
				zap.String("path", c.Path()),
				zap.Error(err),
			)
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Success: false,
				Error:   "Authentication failed. Invalid or expired token",
			})
		}

		c.Locals(IdentityKey, ident)
		c.Locals(UserIDKey, ident.UID)

		return c.Next()
	}
}

// IdentityFromCtx returns the verified identity stored by Protected, or nil
// on routes that were not protected.
func IdentityFromCtx(c *fiber.Ctx) *identity.Identity {
	ident, _ := c.Locals(IdentityKey).(*identity.Identity)
	return ident
}
