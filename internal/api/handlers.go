package api

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"hotelrates/server/internal/models"
	"hotelrates/server/internal/rates"
)

type Handler struct {
	svc    *rates.Service
	logger *logrus.Logger
}

func NewHandler(svc *rates.Service, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &Handler{svc: svc, logger: logger}
}

// bindFilters decodes the caller's filter set from the query string. The
// date-range bounds arrive flat (startDate/endDate) and fold into the nested
// shape only when at least one is present, so the echo stays faithful.
func bindFilters(c *gin.Context) (models.FilterSet, error) {
	var filters models.FilterSet
	if err := c.ShouldBindQuery(&filters); err != nil {
		return filters, err
	}

	var dr models.DateRange
	if err := c.ShouldBindQuery(&dr); err != nil {
		return filters, err
	}
	if dr.StartDate != "" || dr.EndDate != "" {
		filters.DateRange = &dr
	}
	return filters, nil
}

func (h *Handler) GetRates(c *gin.Context) {
	filters, err := bindFilters(c)
	if err != nil {
		h.logger.WithError(err).Error("Failed to parse rate filters")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter parameters"})
		return
	}

	envelope, err := h.svc.RatesByMonth(filters)
	if err != nil {
		h.respondError(c, err, "Failed to get rates")
		return
	}

	c.JSON(http.StatusOK, envelope)
}

func (h *Handler) GetRateSummary(c *gin.Context) {
	filters, err := bindFilters(c)
	if err != nil {
		h.logger.WithError(err).Error("Failed to parse summary filters")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter parameters"})
		return
	}

	envelope, err := h.svc.Summary(filters)
	if err != nil {
		h.respondError(c, err, "Failed to get rate summary")
		return
	}

	c.JSON(http.StatusOK, envelope)
}

// GetFilterOptions returns the facet-value bundle. Best effort: it always
// answers 200, with failed facets degraded to their defaults.
func (h *Handler) GetFilterOptions(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.FilterOptions())
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError maps the service's error kinds onto status codes: bad filter
// input is the caller's fault, store failures are ours.
func (h *Handler) respondError(c *gin.Context, err error, msg string) {
	switch rates.KindOf(err) {
	case rates.KindMissingRequiredFilter, rates.KindInvalidDateFormat:
		h.logger.WithError(err).Warn(msg)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.WithError(err).Error(msg)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
