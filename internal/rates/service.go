// Package rates implements the filter-driven query pipeline: predicate
// construction from a sparse FilterSet, normalization of the fetched rows,
// per-date/per-OTA aggregation, and the response envelope.
package rates

import (
	"errors"

	"github.com/sirupsen/logrus"

	"hotelrates/server/internal/metrics"
	"hotelrates/server/internal/models"
	"hotelrates/server/internal/normalize"
	"hotelrates/server/internal/query"
)

// DetailRowCap bounds the detail query's result size. Rows past the cap are
// silently dropped; callers page by month.
const DetailRowCap = 1000

// RateStore is the read-only slice of the backing store the service needs.
// *database.Store satisfies it; tests substitute fakes.
type RateStore interface {
	QueryRates(preds []query.Predicate, limit int) ([]models.RawRate, error)
	QuerySummaries(preds []query.Predicate) ([]models.RateSummary, error)
	SupportsSummaryQuery() bool
	DistinctOTAs() ([]string, error)
	DistinctDevices() ([]string, error)
	DistinctLengthsOfStay() ([]int, error)
	DistinctCapacities() ([]string, error)
	DistinctRoomTypes() ([]string, error)
	DistinctMealTypes() ([]string, error)
}

// Service answers the rate queries. It holds no state beyond its injected
// collaborators; every call issues a single read against the store.
type Service struct {
	store    RateStore
	logger   *logrus.Logger
	registry *metrics.Registry
	rowCap   int
}

// NewService wires the query pipeline. registry may be nil; a rowCap of zero
// or less falls back to DetailRowCap.
func NewService(store RateStore, logger *logrus.Logger, registry *metrics.Registry, rowCap int) *Service {
	if logger == nil {
		logger = logrus.New()
	}
	if rowCap <= 0 {
		rowCap = DetailRowCap
	}
	return &Service{store: store, logger: logger, registry: registry, rowCap: rowCap}
}

// RatesByMonth runs the detail query: month-bounded fetch, per-row
// normalization, envelope. The month filter is mandatory.
func (s *Service) RatesByMonth(filters models.FilterSet) (*models.Envelope, error) {
	preds, err := query.Detail(filters)
	if err != nil {
		return nil, classifyFilterError(err)
	}

	rows, err := s.store.QueryRates(preds, s.rowCap)
	if err != nil {
		return nil, &Error{Kind: KindStoreQueryFailed, Err: err}
	}

	rates := make([]models.Rate, 0, len(rows))
	for _, row := range rows {
		rates = append(rates, normalizeRow(row, filters.Guests))
	}

	return &models.Envelope{
		Message:     "Rates retrieved successfully",
		Filters:     filters,
		ResultCount: len(rates),
		Data:        rates,
	}, nil
}

// Summary runs the aggregate query. No filter is required. The aggregation
// happens in-query when the store dialect supports it, otherwise over the
// fetched rows here.
func (s *Service) Summary(filters models.FilterSet) (*models.Envelope, error) {
	preds, err := query.Summary(filters)
	if err != nil {
		return nil, classifyFilterError(err)
	}

	var summaries []models.RateSummary
	if s.store.SupportsSummaryQuery() {
		summaries, err = s.store.QuerySummaries(preds)
	} else {
		var rows []models.RawRate
		rows, err = s.store.QueryRates(preds, 0)
		if err == nil {
			summaries = Aggregate(rows)
		}
	}
	if err != nil {
		return nil, &Error{Kind: KindStoreQueryFailed, Err: err}
	}
	if summaries == nil {
		summaries = []models.RateSummary{}
	}

	return &models.Envelope{
		Message:     "Rate summary retrieved successfully",
		Filters:     filters,
		ResultCount: len(summaries),
		Data:        summaries,
	}, nil
}

// normalizeRow converts one raw row to its display form. The two prices come
// independently from the total and base price texts; a caller-supplied guest
// filter overrides whatever the capacity text says.
func normalizeRow(row models.RawRate, guests *int) models.Rate {
	return models.Rate{
		ID:  row.ID,
		OTA: row.OTA,
		Rate: models.RateInfo{
			Lowest:    normalize.Price(row.TotalPrice),
			BeforeTax: normalize.Price(row.BasePrice),
		},
		CheckInDate:        row.CheckInDate,
		CheckOutDate:       row.CheckOutDate,
		HotelName:          row.HotelName,
		RoomName:           row.RoomName,
		Currency:           normalize.Currency(row.TotalPrice),
		Adults:             normalize.Guests(guests, row.GuestsCapacity),
		BreakfastIncluded:  row.BreakfastIncluded,
		RoomSize:           row.RoomSize,
		Amenities:          row.Amenities,
		CancellationPolicy: row.CancellationPolicy,
		Availability:       row.Availability,
	}
}

func classifyFilterError(err error) error {
	switch {
	case errors.Is(err, query.ErrMissingMonth):
		return &Error{Kind: KindMissingRequiredFilter, Err: err}
	case errors.Is(err, query.ErrInvalidDate):
		return &Error{Kind: KindInvalidDateFormat, Err: err}
	default:
		return &Error{Kind: KindInvalidDateFormat, Err: err}
	}
}
