package entities

import "time"

// BookingStatRow is one booking joined with its park, as scanned from the
// owner-statistics query.
type BookingStatRow struct {
	ParkID       int
	ParkName     string
	PricePerHour int
	CreatedAt    time.Time
}

type StatPoint struct {
	Bucket   string `json:"bucket"`
	Bookings int    `json:"bookings"`
	Revenue  int    `json:"revenue"`
}

type ParkStatistics struct {
	ParkID   int         `json:"park_id"`
	ParkName string      `json:"park_name"`
	Points   []StatPoint `json:"points"`
}

type CongestionEntry struct {
	ParkName        string `json:"park_name"`
	TimePeriod      string `json:"time_period"`
	CongestionLevel int    `json:"congestion_level"`
}

type CityBookingCount struct {
	ParkName string `json:"park_name"`
	Total    int    `json:"total"`
}
