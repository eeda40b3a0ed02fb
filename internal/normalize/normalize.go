// Package normalize extracts typed values from the free-text price and
// capacity fields the scrapers store. Every function is total: bad or missing
// input degrades to a documented default, never an error.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// DefaultCurrency is assumed when the price text carries no known symbol.
	DefaultCurrency = "USD"
	// DefaultGuests is assumed when no integer can be read from capacity text.
	DefaultGuests = 2
)

var (
	priceRe = regexp.MustCompile(`[0-9][0-9,]*(\.[0-9]+)?`)
	intRe   = regexp.MustCompile(`[0-9]+`)
)

// Price returns the first numeric run in the text, with thousands separators
// stripped ("$1,180.50 total" -> 1180.50). Nil when the text is absent or
// contains no number.
func Price(text *string) *float64 {
	if text == nil {
		return nil
	}
	match := priceRe.FindString(*text)
	if match == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
	if err != nil {
		return nil
	}
	return &v
}

// Currency maps the first recognized symbol to its ISO code. Symbols are
// checked in a fixed priority order, not by position in the string.
func Currency(text *string) string {
	if text == nil {
		return DefaultCurrency
	}
	switch {
	case strings.Contains(*text, "$"):
		return "USD"
	case strings.Contains(*text, "€"):
		return "EUR"
	case strings.Contains(*text, "£"):
		return "GBP"
	default:
		return DefaultCurrency
	}
}

// Guests resolves the adult count for a row. A caller-supplied filter value
// wins verbatim; otherwise the first integer run in the capacity text is used
// ("Max persons: 2" -> 2), falling back to DefaultGuests.
func Guests(override *int, capacity *string) int {
	if override != nil {
		return *override
	}
	return GuestsFromCapacity(capacity)
}

// GuestsFromCapacity extracts the guest count from capacity text alone.
func GuestsFromCapacity(capacity *string) int {
	if capacity == nil {
		return DefaultGuests
	}
	match := intRe.FindString(*capacity)
	if match == "" {
		return DefaultGuests
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return DefaultGuests
	}
	return n
}
