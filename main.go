package main

import (
	"net/http"

	"github.com/joho/godotenv"

	"github.com/shivraj416/egram/config"
	"github.com/shivraj416/egram/config/database"
	"github.com/shivraj416/egram/internal/content"
	"github.com/shivraj416/egram/internal/content/service"
	"github.com/shivraj416/egram/middleware"
	"github.com/shivraj416/egram/pkg/logger"
	"github.com/shivraj416/egram/pkg/mailer"
	"github.com/shivraj416/egram/router"
	"github.com/shivraj416/egram/socket"
	"github.com/shivraj416/egram/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Sugar.Info("No .env file found, using environment variables from OS")
	}

	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	st := buildStore(cfg)
	auth := buildAuthorizer(cfg)

	hub := socket.NewHub()
	go hub.Run()

	svc := service.New(st, hub)

	var notifier content.Mailer
	if m := mailer.New(cfg.SMTP); m != nil {
		notifier = m
	}
	h := content.NewHandler(svc, notifier, cfg.MaxUploadBytes)

	handler := router.Setup(h, hub, auth, cfg.CORSOrigins)

	logger.Sugar.Infof("e-Gram backend listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		logger.Sugar.Fatalf("Server stopped: %v", err)
	}
}

func buildStore(cfg *config.Config) store.Store {
	if cfg.Store == "postgres" {
		db := database.Connect(cfg.Pg)
		pg := store.NewPostgresStore(db)
		if err := pg.EnsureSchema(); err != nil {
			logger.Sugar.Fatalf("Failed to prepare database schema: %v", err)
		}
		return pg
	}

	fs, err := store.NewFileStore(cfg.DataFile)
	if err != nil {
		logger.Sugar.Fatalf("Failed to open data file store: %v", err)
	}
	return fs
}

func buildAuthorizer(cfg *config.Config) middleware.Authorizer {
	if cfg.AdminJWTSecret != "" {
		logger.Sugar.Info("Admin gate: JWT tokens")
		return &middleware.TokenAuthorizer{Key: cfg.AdminJWTSecret}
	}
	if cfg.AdminSecret == "" {
		logger.Sugar.Fatal("ADMIN_SECRET is not set; refusing to start without an admin gate")
	}
	logger.Sugar.Info("Admin gate: shared secret")
	return &middleware.SecretAuthorizer{Secret: cfg.AdminSecret}
}
