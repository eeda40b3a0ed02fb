package models

// FilterSet is the sparse set of filters a caller may supply. Every field is
// optional; the detail query additionally requires Month. The set is echoed
// back verbatim in the response envelope.
type FilterSet struct {
	Month     string     `json:"month,omitempty" form:"month"`
	DateRange *DateRange `json:"dateRange,omitempty"`
	OTAs      []string   `json:"otas,omitempty" form:"otas"`
	LOS       *int       `json:"los,omitempty" form:"los"`
	Guests    *int       `json:"guests,omitempty" form:"guests"`
	HotelName string     `json:"hotelName,omitempty" form:"hotelName"`
}

type DateRange struct {
	StartDate string `json:"startDate,omitempty" form:"startDate"`
	EndDate   string `json:"endDate,omitempty" form:"endDate"`
}

// RawRate is a rate row as the scrapers stored it. Price and capacity fields
// are free text and may be absent.
type RawRate struct {
	ID                 int64
	OTA                string
	CheckInDate        string
	CheckOutDate       string
	LengthOfStay       int
	HotelName          string
	RoomName           string
	GuestsCapacity     *string
	BasePrice          *string
	TotalPrice         *string
	BreakfastIncluded  bool
	RoomSize           *string
	Amenities          *string
	CancellationPolicy *string
	Availability       *string
}

// RateInfo carries the two independently extracted prices for a room. Either
// may be null when the source text had no parseable number.
type RateInfo struct {
	Lowest    *float64 `json:"lowest"`
	BeforeTax *float64 `json:"beforeTax"`
}

// Rate is the normalized, calendar-ready form of a RawRate.
type Rate struct {
	ID                 int64    `json:"id"`
	OTA                string   `json:"ota"`
	Rate               RateInfo `json:"rate"`
	CheckInDate        string   `json:"checkInDate"`
	CheckOutDate       string   `json:"checkOutDate"`
	HotelName          string   `json:"hotelName"`
	RoomName           string   `json:"roomName"`
	Currency           string   `json:"currency"`
	Adults             int      `json:"adults"`
	BreakfastIncluded  bool     `json:"breakfastIncluded"`
	RoomSize           *string  `json:"roomSize,omitempty"`
	Amenities          *string  `json:"amenities,omitempty"`
	CancellationPolicy *string  `json:"cancellationPolicy,omitempty"`
	Availability       *string  `json:"availability,omitempty"`
}

// RateSummary is one aggregate group keyed by (check-in, check-out, OTA).
// RoomCount counts every row in the group; the price statistics cover only the
// rows whose price text parsed to a number, and are null when none did.
type RateSummary struct {
	CheckInDate  string   `json:"checkInDate"`
	CheckOutDate string   `json:"checkOutDate"`
	OTA          string   `json:"ota"`
	RoomCount    int      `json:"roomCount"`
	MinPrice     *float64 `json:"minPrice"`
	MaxPrice     *float64 `json:"maxPrice"`
	AvgPrice     *float64 `json:"avgPrice"`
}

// FilterOptions is the best-effort bundle of distinct facet values for
// building a filter UI. Lists are empty, never nil, when no data backs them.
type FilterOptions struct {
	OTAs          []string `json:"otas"`
	Devices       []string `json:"devices"`
	LengthsOfStay []int    `json:"lengthsOfStay"`
	Guests        []int    `json:"guests"`
	RoomTypes     []string `json:"roomTypes"`
	MealTypes     []string `json:"mealTypes"`
	Compsets      []string `json:"compsets"`
}

// Envelope is the stable response shape for the rate endpoints. Filters is
// the caller's FilterSet exactly as received.
type Envelope struct {
	Message     string    `json:"message"`
	Filters     FilterSet `json:"filters"`
	ResultCount int       `json:"resultCount"`
	Data        any       `json:"data"`
}
