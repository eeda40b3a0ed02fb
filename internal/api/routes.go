package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"hotelrates/server/internal/metrics"
	"hotelrates/server/internal/rates"
)

func SetupRoutes(router *gin.Engine, svc *rates.Service, logger *logrus.Logger, registry *metrics.Registry) {
	handler := NewHandler(svc, logger)

	if registry != nil {
		router.Use(requestMetrics(registry))
		router.GET("/metrics", gin.WrapH(registry.Handler()))
	}

	router.GET("/health", handler.HealthCheck)

	api := router.Group("/api")
	{
		api.GET("/rates", handler.GetRates)
		api.GET("/rates/summary", handler.GetRateSummary)
		api.GET("/filters", handler.GetFilterOptions)
	}
}

func requestMetrics(registry *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" || route == "/metrics" {
			return
		}
		registry.RequestsTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		registry.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
