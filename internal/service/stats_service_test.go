package service

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paras/internal/repository"
)

func TestStatsWindow(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, now.AddDate(0, 0, -7), statsWindow(now, "day"))
	assert.Equal(t, now.AddDate(0, 0, -30), statsWindow(now, "week"))
	assert.Equal(t, now.AddDate(0, 0, -365), statsWindow(now, "month"))
	// Unknown frames fall back to the day view.
	assert.Equal(t, now.AddDate(0, 0, -7), statsWindow(now, "year"))
}

func TestStatBucket(t *testing.T) {
	ts := time.Date(2025, 3, 15, 15, 42, 0, 0, time.UTC) // a Saturday

	assert.Equal(t, "15:00", statBucket(ts, "day"))
	assert.Equal(t, "Sat", statBucket(ts, "week"))
	assert.Equal(t, "Mar Week 3", statBucket(ts, "month"))

	assert.Equal(t, "Mar Week 1", statBucket(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), "month"))
	assert.Equal(t, "Mar Week 5", statBucket(time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), "month"))
}

func TestGetOwnerStatisticsGroupsPerParkAndBucket(t *testing.T) {
	dbConn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { dbConn.Close() })
	svc := NewStatsService(repository.NewStatsRepository(dbConn))

	base := time.Now().UTC().Add(-24 * time.Hour)
	mock.ExpectQuery("FROM bookings b").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price_per_hour", "created_at"}).
			AddRow(1, "Central IT Park", 50, base.Truncate(time.Hour).Add(10*time.Hour)).
			AddRow(1, "Central IT Park", 50, base.Truncate(time.Hour).Add(10*time.Hour).Add(20*time.Minute)).
			AddRow(2, "Tech Hub", 40, base.Truncate(time.Hour).Add(11*time.Hour)).
			AddRow(1, "Central IT Park", 50, base.Truncate(time.Hour).Add(12*time.Hour)))

	stats, err := svc.GetOwnerStatistics(testUserID, "day")
	require.NoError(t, err)
	require.Len(t, stats, 2)

	central := stats[0]
	assert.Equal(t, 1, central.ParkID)
	assert.Equal(t, "Central IT Park", central.ParkName)
	require.Len(t, central.Points, 2, "same-hour bookings share one bucket")
	assert.Equal(t, 2, central.Points[0].Bookings)
	assert.Equal(t, 100, central.Points[0].Revenue)
	assert.Equal(t, 1, central.Points[1].Bookings)

	hub := stats[1]
	assert.Equal(t, "Tech Hub", hub.ParkName)
	require.Len(t, hub.Points, 1)
	assert.Equal(t, 40, hub.Points[0].Revenue)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOwnerStatisticsEmpty(t *testing.T) {
	dbConn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { dbConn.Close() })
	svc := NewStatsService(repository.NewStatsRepository(dbConn))

	mock.ExpectQuery("FROM bookings b").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price_per_hour", "created_at"}))

	stats, err := svc.GetOwnerStatistics(testUserID, "week")
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestGetCongestionData(t *testing.T) {
	dbConn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { dbConn.Close() })
	svc := NewStatsService(repository.NewStatsRepository(dbConn))

	mock.ExpectQuery("FROM get_congestion_data").
		WillReturnRows(sqlmock.NewRows([]string{"park_name", "time_period", "congestion_level"}).
			AddRow("Central IT Park", "morning", 82).
			AddRow("Central IT Park", "evening", 17))

	entries, err := svc.GetCongestionData()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "morning", entries[0].TimePeriod)
	assert.Equal(t, 82, entries[0].CongestionLevel)
}
