package repository

import (
	"database/sql"
	"fmt"
	"time"

	"paras/internal/entities"
)

type StatsRepository struct {
	DB *sql.DB
}

func NewStatsRepository(database *sql.DB) *StatsRepository {
	return &StatsRepository{DB: database}
}

// GetOwnerBookingRows returns every non-cancelled booking created since the
// cutoff for parks the owner operates, oldest first, joined with the park's
// hourly price for revenue bucketing.
func (r *StatsRepository) GetOwnerBookingRows(ownerID string, since time.Time) ([]entities.BookingStatRow, error) {
	rows, err := r.DB.Query(`
		SELECT p.id, p.name, p.price_per_hour, b.created_at
		FROM bookings b
		JOIN parking_slots s ON s.id = b.slot_id
		JOIN it_parks p ON p.id = s.park_id
		WHERE p.profile_id = $1
		  AND b.booking_status <> 'cancelled'
		  AND b.created_at >= $2
		ORDER BY b.created_at ASC`,
		ownerID, since)
	if err != nil {
		return nil, fmt.Errorf("error querying owner booking statistics: %w", err)
	}
	defer rows.Close()

	var stats []entities.BookingStatRow
	for rows.Next() {
		var row entities.BookingStatRow
		if err := rows.Scan(&row.ParkID, &row.ParkName, &row.PricePerHour, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning booking stat row: %w", err)
		}
		stats = append(stats, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating booking stat rows: %w", err)
	}
	return stats, nil
}

// GetCongestionData calls the get_congestion_data aggregate function.
func (r *StatsRepository) GetCongestionData() ([]entities.CongestionEntry, error) {
	rows, err := r.DB.Query(`SELECT park_name, time_period, congestion_level FROM get_congestion_data()`)
	if err != nil {
		return nil, fmt.Errorf("error querying congestion data: %w", err)
	}
	defer rows.Close()

	var entries []entities.CongestionEntry
	for rows.Next() {
		var e entities.CongestionEntry
		if err := rows.Scan(&e.ParkName, &e.TimePeriod, &e.CongestionLevel); err != nil {
			return nil, fmt.Errorf("error scanning congestion entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating congestion rows: %w", err)
	}
	return entries, nil
}

// CountBookingsByCity returns per-park booking counts for one city.
func (r *StatsRepository) CountBookingsByCity(city string) ([]entities.CityBookingCount, error) {
	rows, err := r.DB.Query(`
		SELECT p.name, COUNT(b.id)
		FROM bookings b
		JOIN parking_slots s ON s.id = b.slot_id
		JOIN it_parks p ON p.id = s.park_id
		JOIN cities c ON c.id = p.city_id
		WHERE c.name = $1
		GROUP BY p.id, p.name
		ORDER BY p.name`,
		city)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings for city %q: %w", city, err)
	}
	defer rows.Close()

	var counts []entities.CityBookingCount
	for rows.Next() {
		var c entities.CityBookingCount
		if err := rows.Scan(&c.ParkName, &c.Total); err != nil {
			return nil, fmt.Errorf("error scanning city booking count: %w", err)
		}
		counts = append(counts, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating city booking rows: %w", err)
	}
	return counts, nil
}
