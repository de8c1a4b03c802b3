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

	natsadapter "github.com/samirrijal/maplink/internal/adapters/nats"
	"github.com/samirrijal/maplink/internal/core/ports"
	"github.com/samirrijal/maplink/internal/core/usecases"
	"github.com/samirrijal/maplink/internal/pkg/config"
	"github.com/samirrijal/maplink/internal/pkg/logging"
	"github.com/samirrijal/maplink/internal/pkg/metrics"
	"github.com/samirrijal/maplink/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("maplink-worker")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logging.Setup(os.Stdout, cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	if !cfg.NATS.Enabled {
		log.Fatal("worker requires nats.enabled=true")
	}

	sub, err := natsadapter.NewSubscriber(cfg.NATS.URL, cfg.Worker.Durable)
	if err != nil {
		log.Fatalf("nats: %v", err)
	}
	defer sub.Close()

	tracker := usecases.NewEventTracker(cfg.Worker.DedupWindow)

	var events ports.EventSubscriber = sub
	if err := events.SubscribeExtractions(ctx, tracker.Handle); err != nil {
		log.Fatalf("subscribe: %v", err)
	}

	// Metrics and a stats snapshot on a side port
	app := fiber.New(fiber.Config{DisableStartupMessage: true, AppName: "MapLink Worker"})
	app.Get("/metrics", metrics.Handler())
	app.Get("/stats", func(c *fiber.Ctx) error {
		return c.JSON(tracker.Stats())
	})
	if cfg.Worker.MetricsPort > 0 {
		go func() {
			addr := fmt.Sprintf(":%d", cfg.Worker.MetricsPort)
			if err := app.Listen(addr); err != nil {
				slog.Error("metrics listener stopped", "error", err)
			}
		}()
	}

	slog.Info("worker consuming extraction events",
		"subject", natsadapter.SubjectAll,
		"durable", cfg.Worker.Durable,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received", "signal", sig.String())
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = app.ShutdownWithContext(shutdownCtx)

	stats := tracker.Stats()
	slog.Info("worker stopped", "events", stats.Events, "coordinates", stats.Coordinates)
}
