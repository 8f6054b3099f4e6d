package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amirasaad/invest/infra/initializer"
	"github.com/amirasaad/invest/infra/scheduler"
	"github.com/amirasaad/invest/pkg/app"
	"github.com/amirasaad/invest/pkg/config"
	"github.com/amirasaad/invest/webapi"
	log "github.com/charmbracelet/log"
)

const shutdownTimeout = 10 * time.Second

// @title Invest API
// @version 1.0.0
// @description Investment platform API documentation
// @host localhost:3000
// @BasePath /
//
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description "Enter your Bearer token in the format: `Bearer {token}`"
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, closers, err := initializer.InitializeDependencies(cfg)
	defer closeAll(closers)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	logger := deps.Logger

	app := app.New(deps, cfg)
	fiberApp := webapi.SetupApp(app)

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched, err = scheduler.New(cfg.Scheduler, app.InvestmentService, logger)
		if err != nil {
			return err
		}
		sched.Start()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if sched != nil {
			sched.Stop(shutdownCtx)
		}
		if err := fiberApp.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("Server shutdown failed", "error", err)
		}
	}()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
	)
	return fiberApp.Listen(addr)
}

func closeAll(closers []io.Closer) {
	for _, c := range closers {
		_ = c.Close()
	}
}
