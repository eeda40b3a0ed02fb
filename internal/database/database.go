package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"hotelrates/server/internal/models"
	"hotelrates/server/internal/query"
)

// Store wraps an open handle on the rate relation. It is constructed once by
// the bootstrap layer and injected into whatever needs it; there is no
// process-global pool.
type Store struct {
	db      *sql.DB
	dialect query.Dialect
}

// Open connects to the rate store. driver is "postgres" or "sqlite3"; the
// matching query dialect is selected from it.
func Open(driver, dsn string) (*Store, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Minute * 5)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping store: %w", err)
	}

	dialect := query.Postgres
	if driver == "sqlite3" {
		dialect = query.SQLite
	}
	return &Store{db: db, dialect: dialect}, nil
}

// New wraps an already-open handle; used by tests.
func New(db *sql.DB, dialect query.Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SupportsSummaryQuery reports whether summaries can be computed in-query.
func (s *Store) SupportsSummaryQuery() bool {
	return s.dialect.SupportsInQueryAggregation()
}

const rawRateColumns = `id, ota_name, check_in_date, check_out_date, length_of_stay,
	       hotel_name, room_name, guests_capacity, base_price, total_price,
	       breakfast_included, room_size, amenities, cancellation_policy, availability`

// QueryRates fetches raw rows matching the predicates, ordered by check-in
// date, OTA and room name. A limit of 0 means no cap; otherwise rows past the
// cap are silently dropped.
func (s *Store) QueryRates(preds []query.Predicate, limit int) ([]models.RawRate, error) {
	q := "SELECT " + rawRateColumns + " FROM hotel_rates"
	where, args := query.Compile(s.dialect, preds)
	if where != "" {
		q += " WHERE " + where
	}
	q += " ORDER BY check_in_date, ota_name, room_name"
	if limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rates []models.RawRate
	for rows.Next() {
		var r models.RawRate
		var lengthOfStay sql.NullInt64
		var hotelName, roomName sql.NullString
		var capacity, basePrice, totalPrice sql.NullString
		var roomSize, amenities, cancellation, availability sql.NullString
		var breakfast sql.NullBool

		err := rows.Scan(
			&r.ID,
			&r.OTA,
			&r.CheckInDate,
			&r.CheckOutDate,
			&lengthOfStay,
			&hotelName,
			&roomName,
			&capacity,
			&basePrice,
			&totalPrice,
			&breakfast,
			&roomSize,
			&amenities,
			&cancellation,
			&availability,
		)
		if err != nil {
			return nil, err
		}

		if lengthOfStay.Valid {
			r.LengthOfStay = int(lengthOfStay.Int64)
		}
		if hotelName.Valid {
			r.HotelName = hotelName.String
		}
		if roomName.Valid {
			r.RoomName = roomName.String
		}
		r.GuestsCapacity = nullableString(capacity)
		r.BasePrice = nullableString(basePrice)
		r.TotalPrice = nullableString(totalPrice)
		r.RoomSize = nullableString(roomSize)
		r.Amenities = nullableString(amenities)
		r.CancellationPolicy = nullableString(cancellation)
		r.Availability = nullableString(availability)
		if breakfast.Valid {
			r.BreakfastIncluded = breakfast.Bool
		}

		rates = append(rates, r)
	}
	return rates, rows.Err()
}

// QuerySummaries computes per (check-in, check-out, OTA) aggregates in-query.
// The first numeric run is pulled out of the price text before the cast, so a
// row with unparseable text contributes NULL to the statistics but still
// counts toward the group; a group whose prices are all unparseable is
// emitted with null min/max/avg, not dropped.
//
// Only the Postgres dialect supports this; callers check SupportsSummaryQuery
// and aggregate fetched rows themselves otherwise.
func (s *Store) QuerySummaries(preds []query.Predicate) ([]models.RateSummary, error) {
	if !s.SupportsSummaryQuery() {
		return nil, fmt.Errorf("summary query not supported by this store dialect")
	}

	q := `
        SELECT check_in_date, check_out_date, ota_name,
               COUNT(*) AS room_count,
               MIN(price_num) AS min_price,
               MAX(price_num) AS max_price,
               AVG(price_num) AS avg_price
        FROM (
            SELECT check_in_date, check_out_date, ota_name,
                   NULLIF(substring(replace(total_price, ',', '') from '[0-9]+\.?[0-9]*'), '')::numeric AS price_num
            FROM hotel_rates`
	where, args := query.Compile(s.dialect, preds)
	if where != "" {
		q += " WHERE " + where
	}
	q += `
        ) priced
        GROUP BY check_in_date, check_out_date, ota_name
        ORDER BY check_in_date, ota_name`

	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []models.RateSummary
	for rows.Next() {
		var g models.RateSummary
		var minP, maxP, avgP sql.NullFloat64
		if err := rows.Scan(&g.CheckInDate, &g.CheckOutDate, &g.OTA, &g.RoomCount, &minP, &maxP, &avgP); err != nil {
			return nil, err
		}
		g.MinPrice = nullableFloat(minP)
		g.MaxPrice = nullableFloat(maxP)
		g.AvgPrice = nullableFloat(avgP)
		summaries = append(summaries, g)
	}
	return summaries, rows.Err()
}

// DistinctOTAs returns the platform names present in the store.
func (s *Store) DistinctOTAs() ([]string, error) {
	return s.distinctStrings("ota_name")
}

// DistinctDevices returns the device names present in the store.
func (s *Store) DistinctDevices() ([]string, error) {
	return s.distinctStrings("device")
}

// DistinctRoomTypes returns the room type names present in the store.
func (s *Store) DistinctRoomTypes() ([]string, error) {
	return s.distinctStrings("room_type")
}

// DistinctMealTypes returns the meal plan names present in the store.
func (s *Store) DistinctMealTypes() ([]string, error) {
	return s.distinctStrings("meal_plan")
}

func (s *Store) distinctStrings(column string) ([]string, error) {
	rows, err := s.db.Query(fmt.Sprintf(
		"SELECT DISTINCT %s FROM hotel_rates WHERE %s IS NOT NULL AND %s <> '' ORDER BY %s",
		column, column, column, column))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// DistinctLengthsOfStay returns the stored LOS values, ascending.
func (s *Store) DistinctLengthsOfStay() ([]int, error) {
	rows, err := s.db.Query("SELECT DISTINCT length_of_stay FROM hotel_rates WHERE length_of_stay IS NOT NULL ORDER BY length_of_stay")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// DistinctCapacities returns the raw capacity texts; the caller extracts
// guest counts from them.
func (s *Store) DistinctCapacities() ([]string, error) {
	return s.distinctStrings("guests_capacity")
}

// Migrate creates the rate relation when it does not exist. Development
// helper for the sqlite3 driver; production schemas are managed externally.
func (s *Store) Migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS hotel_rates (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ota_name TEXT NOT NULL,
			check_in_date TEXT NOT NULL,
			check_out_date TEXT NOT NULL,
			length_of_stay INTEGER,
			hotel_name TEXT,
			room_name TEXT,
			guests_capacity TEXT,
			base_price TEXT,
			total_price TEXT,
			breakfast_included BOOLEAN DEFAULT 0,
			device TEXT,
			room_type TEXT,
			meal_plan TEXT,
			room_size TEXT,
			amenities TEXT,
			cancellation_policy TEXT,
			availability TEXT,
			scraped_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_hotel_rates_check_in ON hotel_rates(check_in_date);
		CREATE INDEX IF NOT EXISTS idx_hotel_rates_ota ON hotel_rates(ota_name);
	`)
	if err != nil {
		return fmt.Errorf("failed to create hotel_rates table: %w", err)
	}
	return nil
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
