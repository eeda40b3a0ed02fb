package query

import (
	"errors"
	"fmt"
	"time"

	"hotelrates/server/internal/models"
)

var (
	ErrMissingMonth = errors.New("month filter is required")
	ErrInvalidDate  = errors.New("invalid date format")
)

// Op is a predicate operator. The compiler renders it per dialect.
type Op int

const (
	OpEq Op = iota
	OpGTE
	OpLTE
	OpIn
	// OpContains is a plain substring match.
	OpContains
	// OpIContains is a case-insensitive substring match.
	OpIContains
)

// Predicate is one (column, operator, value) condition. Predicates are
// AND-combined; an empty list compiles to a match-all query.
type Predicate struct {
	Column string
	Op     Op
	Value  any
}

// Column names of the hotel_rates relation the builders may reference.
const (
	ColOTA            = "ota_name"
	ColCheckInDate    = "check_in_date"
	ColCheckOutDate   = "check_out_date"
	ColLengthOfStay   = "length_of_stay"
	ColHotelName      = "hotel_name"
	ColRoomName       = "room_name"
	ColGuestsCapacity = "guests_capacity"
)

// Detail builds the predicate list for the per-room detail query. Month is
// mandatory and expands to an inclusive check-in range covering the whole
// month; the remaining filters contribute one predicate each when present.
func Detail(f models.FilterSet) ([]Predicate, error) {
	if f.Month == "" {
		return nil, ErrMissingMonth
	}
	start, err := time.Parse("2006-01", f.Month)
	if err != nil {
		return nil, fmt.Errorf("%w: month %q", ErrInvalidDate, f.Month)
	}
	end := start.AddDate(0, 1, -1)

	preds := []Predicate{
		{Column: ColCheckInDate, Op: OpGTE, Value: start.Format("2006-01-02")},
		{Column: ColCheckInDate, Op: OpLTE, Value: end.Format("2006-01-02")},
	}
	if len(f.OTAs) > 0 {
		preds = append(preds, Predicate{Column: ColOTA, Op: OpIn, Value: f.OTAs})
	}
	if f.LOS != nil {
		preds = append(preds, Predicate{Column: ColLengthOfStay, Op: OpEq, Value: *f.LOS})
	}
	if f.Guests != nil {
		// Textual containment against the capacity field, not numeric
		// equality: guest value 1 also matches "Max persons: 12".
		preds = append(preds, Predicate{Column: ColGuestsCapacity, Op: OpContains, Value: fmt.Sprintf("%d", *f.Guests)})
	}
	if f.HotelName != "" {
		preds = append(preds, Predicate{Column: ColHotelName, Op: OpIContains, Value: f.HotelName})
	}
	return preds, nil
}

// Summary builds the predicate list for the aggregate query. Nothing is
// required; the date-range bounds apply independently, the lower bound to
// check-in and the upper bound to check-out.
func Summary(f models.FilterSet) ([]Predicate, error) {
	var preds []Predicate
	if len(f.OTAs) > 0 {
		preds = append(preds, Predicate{Column: ColOTA, Op: OpIn, Value: f.OTAs})
	}
	if f.HotelName != "" {
		preds = append(preds, Predicate{Column: ColHotelName, Op: OpContains, Value: f.HotelName})
	}
	if f.DateRange != nil {
		if f.DateRange.StartDate != "" {
			if _, err := time.Parse("2006-01-02", f.DateRange.StartDate); err != nil {
				return nil, fmt.Errorf("%w: startDate %q", ErrInvalidDate, f.DateRange.StartDate)
			}
			preds = append(preds, Predicate{Column: ColCheckInDate, Op: OpGTE, Value: f.DateRange.StartDate})
		}
		if f.DateRange.EndDate != "" {
			if _, err := time.Parse("2006-01-02", f.DateRange.EndDate); err != nil {
				return nil, fmt.Errorf("%w: endDate %q", ErrInvalidDate, f.DateRange.EndDate)
			}
			preds = append(preds, Predicate{Column: ColCheckOutDate, Op: OpLTE, Value: f.DateRange.EndDate})
		}
	}
	return preds, nil
}
