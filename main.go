package main

import (
	"fmt"
	"log"
	"os"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"batch-transcribe-api/engine"
	"batch-transcribe-api/handlers"
	"batch-transcribe-api/history"
	"batch-transcribe-api/scheduler"
	"batch-transcribe-api/utils"

	valkeystore "batch-transcribe-api/valkey"
)

func main() {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = ""
	cfg.EncoderConfig.EncodeDuration = zapcore.MillisDurationEncoder
	logger, err := cfg.Build()
	if err != nil {
		log.Fatalf("cannot initialize logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	// Optional backing services: completion events and the request log.
	if os.Getenv("VALKEY_HOST") != "" {
		if err := valkeystore.InitValkey(logger); err != nil {
			sugar.Fatalw("failed to init valkey",
				"error", err)
		}
	}
	if os.Getenv("POSTGRES_HOST") != "" {
		if err := history.InitDB(logger); err != nil {
			sugar.Fatalw("failed to init database",
				"error", err)
		}
		defer history.CloseDB(logger)

		if err := history.CreateSchema(logger); err != nil {
			sugar.Fatalw("failed to create database schema",
				"error", err)
		}
	}

	// S3 is only required when requests carry s3:// sources.
	if os.Getenv("S3_ACCESS_KEY_ID") != "" {
		if err := utils.InitS3(logger); err != nil {
			sugar.Fatalw("failed to init s3",
				"error", err)
		}
	}

	var eng engine.Engine
	if dry := os.Getenv("DRY_RUN"); dry == "1" || dry == "true" {
		sugar.Info("Dry-run mode: inference backend disabled")
		eng = engine.NewDryRunEngine()
	} else {
		eng = engine.NewHTTPEngine(engine.Config{
			Endpoint: utils.MustGetEnv("ENGINE_ENDPOINT"),
		}, logger)
	}

	sched := scheduler.New(scheduler.ConfigFromEnv(), eng,
		scheduler.NewRemoteFetcher(logger), scheduler.WAVProber{}, logger)

	// Setup HTTP server
	r := gin.New()
	sugar.Info("Creating router")

	r.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(logger, true))

	// Routes
	r.POST("/transcribe", handlers.HandleTranscribe(logger, sched))

	// Health check
	r.GET("/healthcheck", handlers.HandleHealthcheck())

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	port := utils.GetEnvOrDefault("APP_PORT", "8080")
	sugar.Infow("Running on port",
		"port", port)
	r.Run(fmt.Sprintf(":%s", port))
}
