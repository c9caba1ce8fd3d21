package main

import (
	"flag"
	"log"

	"vidvaan/internal/config"
	"vidvaan/internal/database"
	"vidvaan/internal/logger"

	"go.uber.org/zap"
)

func main() {
	dir := flag.String("dir", "database/migrations", "path to the migration files")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer l.Sync()

	if err := database.RunMigrations(cfg.GetDSN(), *dir); err != nil {
		l.Fatal("Failed to run migrations", zap.Error(err))
	}

	l.Info("Migrations applied", zap.String("dir", *dir))
}
