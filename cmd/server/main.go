package main

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"hotelrates/server/config"
	"hotelrates/server/internal/api"
	"hotelrates/server/internal/database"
	"hotelrates/server/internal/metrics"
	"hotelrates/server/internal/rates"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	logger.Infof("Connecting to %s rate store", cfg.DatabaseDriver)
	store, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to rate store")
	}
	defer store.Close()

	// The embedded store creates its own schema; Postgres schemas are
	// managed by the ingestion side.
	if cfg.DatabaseDriver == "sqlite3" {
		if err := store.Migrate(); err != nil {
			logger.WithError(err).Fatal("Failed to prepare rate store schema")
		}
	}

	registry := metrics.NewRegistry()
	svc := rates.NewService(store, logger, registry, cfg.DetailRowCap)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	api.SetupRoutes(router, svc, logger, registry)

	logger.Infof("Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
