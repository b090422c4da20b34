package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/fps-platform/fps-backend/internal/api/http/middleware"
	"github.com/fps-platform/fps-backend/internal/api/http/router"
	"github.com/fps-platform/fps-backend/internal/config"
	"github.com/fps-platform/fps-backend/internal/logger"
	"github.com/fps-platform/fps-backend/internal/metrics"
	"github.com/fps-platform/fps-backend/internal/model"
	"github.com/fps-platform/fps-backend/internal/repository/postgres"
	"github.com/fps-platform/fps-backend/internal/server"
	"github.com/fps-platform/fps-backend/internal/service"
	"github.com/fps-platform/fps-backend/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	tokenRepo := postgres.NewTokenRepository(db)
	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)

	userService := service.NewUserService(userRepo, logger)
	tokenService := service.NewTokenService(tokenManager, tokenRepo, userRepo, logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(reg)

	rateLimit := middleware.NewRateLimit(cfg.RateLimit.AuthPerMinute, cfg.RateLimit.AuthBurst, logger)
	defer rateLimit.Stop()

	handler := router.New(&router.Deps{
		Users:     userService,
		Tokens:    tokenService,
		Identity:  tokenService,
		DB:        db,
		Collector: collector,
		Gatherer:  reg,
		RateLimit: rateLimit,
		Logger:    logger,
	})

	httpServer := server.NewHTTPServer(handler, fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
