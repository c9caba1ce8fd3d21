package handler

import (
	"time"

	"vidvaan/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
)

// HealthHandler serves the unauthenticated operational endpoints.
type HealthHandler struct {
	cfg *config.Config
	db  *sqlx.DB
}

func NewHealthHandler(cfg *config.Config, db *sqlx.DB) *HealthHandler {
	return &HealthHandler{cfg: cfg, db: db}
}

// Health reports process liveness and database reachability.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := h.db.PingContext(c.Context()); err != nil {
		dbStatus = "unreachable"
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"status":    "ok",
		"database":  dbStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Debug reports which configuration values are present, never the values
// themselves.
func (h *HealthHandler) Debug(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"env":     h.cfg.Env,
		"config": fiber.Map{
			"database_url":          h.cfg.DB.URL != "",
			"firebase_project_id":   h.cfg.Identity.ProjectID != "",
			"firebase_client_email": h.cfg.Identity.ClientEmail != "",
			"firebase_private_key":  h.cfg.Identity.PrivateKey != "",
			"sentry_dsn":            h.cfg.Sentry.DSN != "",
		},
	})
}
