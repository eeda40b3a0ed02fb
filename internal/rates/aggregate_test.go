package rates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelrates/server/internal/models"
)

func strPtr(s string) *string { return &s }

func rawRow(checkIn, checkOut, ota string, totalPrice *string) models.RawRate {
	return models.RawRate{
		OTA:          ota,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		TotalPrice:   totalPrice,
	}
}

func TestAggregateSkipsUnparseablePricesButCountsRows(t *testing.T) {
	rows := []models.RawRate{
		rawRow("2026-03-01", "2026-03-02", "booking", strPtr("$100")),
		rawRow("2026-03-01", "2026-03-02", "booking", strPtr("$200")),
		rawRow("2026-03-01", "2026-03-02", "booking", strPtr("sold out")),
	}

	summaries := Aggregate(rows)
	require.Len(t, summaries, 1)

	g := summaries[0]
	assert.Equal(t, 3, g.RoomCount)
	require.NotNil(t, g.MinPrice)
	require.NotNil(t, g.MaxPrice)
	require.NotNil(t, g.AvgPrice)
	assert.Equal(t, 100.0, *g.MinPrice)
	assert.Equal(t, 200.0, *g.MaxPrice)
	assert.Equal(t, 150.0, *g.AvgPrice)
}

func TestAggregateAllUnparseableGroupStillEmitted(t *testing.T) {
	rows := []models.RawRate{
		rawRow("2026-03-01", "2026-03-02", "booking", strPtr("sold out")),
		rawRow("2026-03-01", "2026-03-02", "booking", nil),
	}

	summaries := Aggregate(rows)
	require.Len(t, summaries, 1)

	g := summaries[0]
	assert.Equal(t, 2, g.RoomCount)
	assert.Nil(t, g.MinPrice)
	assert.Nil(t, g.MaxPrice)
	assert.Nil(t, g.AvgPrice)
}

func TestAggregateGroupsByExactKey(t *testing.T) {
	rows := []models.RawRate{
		rawRow("2026-03-01", "2026-03-02", "booking", strPtr("$100")),
		rawRow("2026-03-01", "2026-03-02", "expedia", strPtr("$110")),
		rawRow("2026-03-01", "2026-03-03", "booking", strPtr("$180")),
		rawRow("2026-03-02", "2026-03-03", "booking", strPtr("$120")),
	}

	summaries := Aggregate(rows)
	require.Len(t, summaries, 4)
	for _, g := range summaries {
		assert.Equal(t, 1, g.RoomCount)
	}
}

func TestAggregatePreservesStoreOrder(t *testing.T) {
	rows := []models.RawRate{
		rawRow("2026-03-01", "2026-03-02", "agoda", strPtr("90")),
		rawRow("2026-03-01", "2026-03-02", "booking", strPtr("100")),
		rawRow("2026-03-02", "2026-03-03", "agoda", strPtr("95")),
	}

	summaries := Aggregate(rows)
	require.Len(t, summaries, 3)
	assert.Equal(t, "agoda", summaries[0].OTA)
	assert.Equal(t, "booking", summaries[1].OTA)
	assert.Equal(t, "2026-03-02", summaries[2].CheckInDate)
}

func TestAggregateEmptyInput(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
}

func TestAggregateStripsThousandsSeparators(t *testing.T) {
	rows := []models.RawRate{
		rawRow("2026-03-01", "2026-03-02", "booking", strPtr("$1,180.50 total")),
	}

	summaries := Aggregate(rows)
	require.Len(t, summaries, 1)
	require.NotNil(t, summaries[0].MinPrice)
	assert.Equal(t, 1180.50, *summaries[0].MinPrice)
}
