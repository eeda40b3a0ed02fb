package rates

import (
	"hotelrates/server/internal/models"
	"hotelrates/server/internal/normalize"
)

type groupKey struct {
	checkIn  string
	checkOut string
	ota      string
}

// Aggregate groups raw rows by (check-in, check-out, OTA) and computes
// count/min/max/avg over their total prices, preserving the order the store
// returned the rows in. RoomCount includes rows whose price text did not
// parse; the statistics skip them. A group with no parseable price at all is
// still emitted, with nil statistics rather than a zero or NaN.
//
// This is the application-side counterpart of Store.QuerySummaries, used when
// the store dialect cannot extract numbers in-query.
func Aggregate(rows []models.RawRate) []models.RateSummary {
	var order []groupKey
	groups := make(map[groupKey]*models.RateSummary)
	valid := make(map[groupKey][]float64)

	for _, row := range rows {
		key := groupKey{checkIn: row.CheckInDate, checkOut: row.CheckOutDate, ota: row.OTA}
		g, ok := groups[key]
		if !ok {
			g = &models.RateSummary{
				CheckInDate:  row.CheckInDate,
				CheckOutDate: row.CheckOutDate,
				OTA:          row.OTA,
			}
			groups[key] = g
			order = append(order, key)
		}
		g.RoomCount++

		if price := normalize.Price(row.TotalPrice); price != nil {
			valid[key] = append(valid[key], *price)
		}
	}

	summaries := make([]models.RateSummary, 0, len(order))
	for _, key := range order {
		g := groups[key]
		if prices := valid[key]; len(prices) > 0 {
			minP, maxP, sum := prices[0], prices[0], 0.0
			for _, p := range prices {
				if p < minP {
					minP = p
				}
				if p > maxP {
					maxP = p
				}
				sum += p
			}
			avg := sum / float64(len(prices))
			g.MinPrice = &minP
			g.MaxPrice = &maxP
			g.AvgPrice = &avg
		}
		summaries = append(summaries, *g)
	}
	return summaries
}
