package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Varun5711/contactkeeper/internal/auth"
	"github.com/Varun5711/contactkeeper/internal/config"
	"github.com/Varun5711/contactkeeper/internal/handlers"
	"github.com/Varun5711/contactkeeper/internal/logger"
	"github.com/Varun5711/contactkeeper/internal/middleware"
	"github.com/Varun5711/contactkeeper/internal/qrcode"
	"github.com/Varun5711/contactkeeper/internal/service"
	"github.com/Varun5711/contactkeeper/internal/storage"
)

func main() {
	log := logger.New("contacts-api")
	log.SetStdLog()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: %v", err)
	}

	if cfg.UsesDefaultSecret() {
		log.Warn("JWT_SECRET not set, using the development default with in-memory storage")
	}

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	backend, err := storage.Open(startCtx, cfg, log.Named("storage"))
	cancel()
	if err != nil {
		log.Fatal("Failed to open %s storage: %v", cfg.Storage.Backend, err)
	}
	defer backend.Close()

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	router := handlers.NewRouter(handlers.RouterConfig{
		Users:           service.NewUserService(backend.Users, jwtManager),
		Contacts:        service.NewContactService(backend.Contacts),
		Auth:            middleware.NewAuthMiddleware(jwtManager, cfg.Auth.Header),
		Health:          backend.Health,
		QR:              qrcode.NewRenderer(cfg.Server.QRCacheSize),
		OpenAPISpecPath: cfg.Server.OpenAPISpecPath,
		Log:             log.Named("http"),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Contacts API listening on port %s (storage: %s)", cfg.Server.Port, cfg.Storage.Backend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down contacts API...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed: %v", err)
	}
	log.Info("Contacts API stopped")
}
