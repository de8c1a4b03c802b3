package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/samirrijal/maplink/internal/adapters/http"
	natsadapter "github.com/samirrijal/maplink/internal/adapters/nats"
	"github.com/samirrijal/maplink/internal/adapters/samples"
	"github.com/samirrijal/maplink/internal/adapters/valkey"
	"github.com/samirrijal/maplink/internal/core/ports"
	"github.com/samirrijal/maplink/internal/core/usecases"
	"github.com/samirrijal/maplink/internal/pkg/config"
	"github.com/samirrijal/maplink/internal/pkg/logging"
	"github.com/samirrijal/maplink/internal/pkg/telemetry"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load("maplink-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logging.Setup(os.Stdout, cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	deps := &http.Dependencies{
		RequestTimeout: time.Duration(cfg.Server.RequestTimeout) * time.Second,
		Version:        version,
	}

	// Cache and broker are optional; the service degrades to uncached,
	// event-less analysis without them.
	var cache ports.CacheService
	if cfg.Valkey.Enabled {
		vc, err := valkey.New(cfg.Valkey.Addr)
		if err != nil {
			slog.Warn("valkey unavailable", "error", err)
		} else {
			defer vc.Close()
			cache = vc
			deps.Cache = vc
		}
	}

	var events ports.EventPublisher
	if cfg.NATS.Enabled {
		pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats unavailable", "error", err)
		} else {
			defer pub.Close()
			events = pub
			deps.NATS = pub.Conn()
		}
	}

	sampleRepo, err := samples.NewBuiltinRepo()
	if err != nil {
		log.Fatalf("samples: %v", err)
	}

	deps.Links = usecases.NewLinkService(cache, events, usecases.Limits{
		MaxTextBytes:    cfg.Extract.MaxTextBytes,
		CacheTTLSeconds: cfg.Extract.CacheTTL,
	})
	deps.Samples = usecases.NewSampleService(sampleRepo)

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
		AppName:      "MapLink API",
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr, "version", version)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
