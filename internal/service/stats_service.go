package service

import (
	"fmt"
	"time"

	"paras/internal/entities"
	"paras/internal/repository"
)

type StatsService struct {
	Repo *repository.StatsRepository
}

func NewStatsService(repo *repository.StatsRepository) *StatsService {
	return &StatsService{Repo: repo}
}

// statsWindow maps a dashboard time frame to its lookback cutoff: the "day"
// view covers the last 7 days, "week" the last 30, "month" the last 365.
func statsWindow(now time.Time, timeFrame string) time.Time {
	switch timeFrame {
	case "week":
		return now.AddDate(0, 0, -30)
	case "month":
		return now.AddDate(0, 0, -365)
	default: // day
		return now.AddDate(0, 0, -7)
	}
}

// statBucket labels a booking's creation time for the chart's x-axis: hourly
// for the day view, weekday for the week view, month-week otherwise.
func statBucket(t time.Time, timeFrame string) string {
	switch timeFrame {
	case "day":
		return t.Format("15:00")
	case "week":
		return t.Format("Mon")
	default:
		week := (t.Day()-1)/7 + 1
		return fmt.Sprintf("%s Week %d", t.Format("Jan"), week)
	}
}

// GetOwnerStatistics groups the owner's bookings per park and time bucket,
// counting bookings and accumulating hourly-price revenue per bucket.
func (s *StatsService) GetOwnerStatistics(ownerID, timeFrame string) ([]entities.ParkStatistics, error) {
	since := statsWindow(time.Now().UTC(), timeFrame)
	rows, err := s.Repo.GetOwnerBookingRows(ownerID, since)
	if err != nil {
		return nil, err
	}

	type parkAgg struct {
		stats  *entities.ParkStatistics
		byName map[string]int // bucket label -> index into Points
	}
	aggregates := make(map[int]*parkAgg)
	var order []int

	for _, row := range rows {
		agg, ok := aggregates[row.ParkID]
		if !ok {
			agg = &parkAgg{
				stats:  &entities.ParkStatistics{ParkID: row.ParkID, ParkName: row.ParkName},
				byName: make(map[string]int),
			}
			aggregates[row.ParkID] = agg
			order = append(order, row.ParkID)
		}

		bucket := statBucket(row.CreatedAt, timeFrame)
		idx, ok := agg.byName[bucket]
		if !ok {
			agg.stats.Points = append(agg.stats.Points, entities.StatPoint{Bucket: bucket})
			idx = len(agg.stats.Points) - 1
			agg.byName[bucket] = idx
		}
		agg.stats.Points[idx].Bookings++
		agg.stats.Points[idx].Revenue += row.PricePerHour
	}

	// Rows arrive ordered by created_at, so buckets are already chronological.
	result := make([]entities.ParkStatistics, 0, len(order))
	for _, parkID := range order {
		result = append(result, *aggregates[parkID].stats)
	}
	return result, nil
}

func (s *StatsService) GetCongestionData() ([]entities.CongestionEntry, error) {
	return s.Repo.GetCongestionData()
}

func (s *StatsService) GetBookingsByCity(city string) ([]entities.CityBookingCount, error) {
	return s.Repo.CountBookingsByCity(city)
}
