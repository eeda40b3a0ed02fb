package database

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelrates/server/internal/models"
	"hotelrates/server/internal/query"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := New(db, query.SQLite)
	require.NoError(t, store.Migrate())
	return store
}

type seedRate struct {
	ota, checkIn, checkOut     string
	los                        int
	hotel, room                string
	capacity, total            string
	device, roomType, mealPlan string
}

func seed(t *testing.T, store *Store, rows []seedRate) {
	t.Helper()
	for _, r := range rows {
		_, err := store.db.Exec(`
			INSERT INTO hotel_rates
			(ota_name, check_in_date, check_out_date, length_of_stay, hotel_name,
			 room_name, guests_capacity, total_price, device, room_type, meal_plan)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ota, r.checkIn, r.checkOut, r.los, r.hotel,
			r.room, r.capacity, r.total, r.device, r.roomType, r.mealPlan)
		require.NoError(t, err)
	}
}

func defaultSeed(t *testing.T, store *Store) {
	seed(t, store, []seedRate{
		{ota: "booking", checkIn: "2026-03-01", checkOut: "2026-03-02", los: 1,
			hotel: "Grand Plaza", room: "Deluxe King", capacity: "Max persons: 2",
			total: "$180", device: "desktop", roomType: "Deluxe", mealPlan: "Room only"},
		{ota: "expedia", checkIn: "2026-03-01", checkOut: "2026-03-02", los: 1,
			hotel: "Grand Plaza", room: "Twin", capacity: "Max persons: 3",
			total: "$1,180.50", device: "mobile", roomType: "Standard", mealPlan: "Breakfast included"},
		{ota: "booking", checkIn: "2026-03-15", checkOut: "2026-03-17", los: 2,
			hotel: "Harbor Inn", room: "Suite", capacity: "Max persons: 4",
			total: "$420", device: "desktop", roomType: "Suite", mealPlan: "Room only"},
		{ota: "agoda", checkIn: "2026-04-01", checkOut: "2026-04-02", los: 1,
			hotel: "Grand Plaza", room: "Deluxe King", capacity: "Max persons: 2",
			total: "€200", device: "desktop", roomType: "Deluxe", mealPlan: "Room only"},
	})
}

func TestQueryRatesMonthBounds(t *testing.T) {
	store := setupTestStore(t)
	defaultSeed(t, store)

	preds, err := query.Detail(models.FilterSet{Month: "2026-03"})
	require.NoError(t, err)

	rows, err := store.QueryRates(preds, 1000)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for _, r := range rows {
		assert.NotEqual(t, "2026-04-01", r.CheckInDate)
	}
}

func TestQueryRatesOrdering(t *testing.T) {
	store := setupTestStore(t)
	defaultSeed(t, store)

	rows, err := store.QueryRates(nil, 0)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	// check-in date first, then OTA.
	assert.Equal(t, "booking", rows[0].OTA)
	assert.Equal(t, "expedia", rows[1].OTA)
	assert.Equal(t, "2026-03-15", rows[2].CheckInDate)
	assert.Equal(t, "2026-04-01", rows[3].CheckInDate)
}

func TestQueryRatesLimitTruncatesSilently(t *testing.T) {
	store := setupTestStore(t)
	defaultSeed(t, store)

	rows, err := store.QueryRates(nil, 2)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestQueryRatesOTAMembership(t *testing.T) {
	store := setupTestStore(t)
	defaultSeed(t, store)

	rows, err := store.QueryRates([]query.Predicate{
		{Column: query.ColOTA, Op: query.OpIn, Value: []string{"booking", "agoda"}},
	}, 0)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for _, r := range rows {
		assert.NotEqual(t, "expedia", r.OTA)
	}
}

func TestQueryRatesHotelNameCaseInsensitive(t *testing.T) {
	store := setupTestStore(t)
	defaultSeed(t, store)

	rows, err := store.QueryRates([]query.Predicate{
		{Column: query.ColHotelName, Op: query.OpIContains, Value: "grand"},
	}, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestQueryRatesGuestsTextualContainment(t *testing.T) {
	store := setupTestStore(t)
	seed(t, store, []seedRate{
		{ota: "booking", checkIn: "2026-03-01", checkOut: "2026-03-02",
			hotel: "A", room: "R1", capacity: "Max persons: 1", total: "$100"},
		{ota: "booking", checkIn: "2026-03-01", checkOut: "2026-03-02",
			hotel: "A", room: "R2", capacity: "Max persons: 12", total: "$200"},
	})

	// Containment, not equality: "1" also matches "Max persons: 12".
	rows, err := store.QueryRates([]query.Predicate{
		{Column: query.ColGuestsCapacity, Op: query.OpContains, Value: "1"},
	}, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestQueryRatesNullableFields(t *testing.T) {
	store := setupTestStore(t)
	_, err := store.db.Exec(`
		INSERT INTO hotel_rates (ota_name, check_in_date, check_out_date, length_of_stay, hotel_name, room_name)
		VALUES ('booking', '2026-03-01', '2026-03-02', 1, 'Grand Plaza', 'Basic')`)
	require.NoError(t, err)

	rows, err := store.QueryRates(nil, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].TotalPrice)
	assert.Nil(t, rows[0].BasePrice)
	assert.Nil(t, rows[0].GuestsCapacity)
}

func TestQueryRatesNullScalarColumns(t *testing.T) {
	store := setupTestStore(t)
	_, err := store.db.Exec(`
		INSERT INTO hotel_rates (ota_name, check_in_date, check_out_date, total_price)
		VALUES ('booking', '2026-03-01', '2026-03-02', '$150')`)
	require.NoError(t, err)

	// NULL length_of_stay, hotel_name and room_name degrade to zero
	// values instead of failing the whole fetch.
	rows, err := store.QueryRates(nil, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 0, rows[0].LengthOfStay)
	assert.Equal(t, "", rows[0].HotelName)
	assert.Equal(t, "", rows[0].RoomName)
}

func TestSummaryQueryUnsupportedOnSQLite(t *testing.T) {
	store := setupTestStore(t)
	assert.False(t, store.SupportsSummaryQuery())

	_, err := store.QuerySummaries(nil)
	assert.Error(t, err)
}

func TestDistinctFacets(t *testing.T) {
	store := setupTestStore(t)
	defaultSeed(t, store)

	otas, err := store.DistinctOTAs()
	require.NoError(t, err)
	assert.Equal(t, []string{"agoda", "booking", "expedia"}, otas)

	devices, err := store.DistinctDevices()
	require.NoError(t, err)
	assert.Equal(t, []string{"desktop", "mobile"}, devices)

	los, err := store.DistinctLengthsOfStay()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, los)

	capacities, err := store.DistinctCapacities()
	require.NoError(t, err)
	assert.Len(t, capacities, 3)

	roomTypes, err := store.DistinctRoomTypes()
	require.NoError(t, err)
	assert.Equal(t, []string{"Deluxe", "Standard", "Suite"}, roomTypes)

	mealTypes, err := store.DistinctMealTypes()
	require.NoError(t, err)
	assert.Equal(t, []string{"Breakfast included", "Room only"}, mealTypes)
}
