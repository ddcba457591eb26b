package service

import (
	"fmt"
	"log"

	"paras/internal/repository"
)

type JobService struct {
	Repo *repository.JobRepository
}

func NewJobService(repo *repository.JobRepository) *JobService {
	return &JobService{Repo: repo}
}

// CloseOutExpiredBookings finds active bookings past their end time and marks
// them completed.
func (s *JobService) CloseOutExpiredBookings() error {
	log.Println("Cron Job: Checking for bookings to mark as 'completed'...")

	bookingIDs, err := s.Repo.GetActiveBookingIDsPastEndTime()
	if err != nil {
		return fmt.Errorf("cron job: failed to get active bookings past end time: %w", err)
	}

	if len(bookingIDs) == 0 {
		log.Println("Cron Job: No active bookings found past their end time.")
		return nil
	}

	log.Printf("Cron Job: Found %d bookings to mark as 'completed'. IDs: %v", len(bookingIDs), bookingIDs)

	if err := s.Repo.CompleteBookings(bookingIDs); err != nil {
		return fmt.Errorf("cron job: failed to complete bookings: %w", err)
	}
	return nil
}

// ReconcileSlotStatuses flips Occupied slots back to Available when no active
// booking covers the current time, so stored slot status tracks reality
// instead of waiting on an explicit write.
func (s *JobService) ReconcileSlotStatuses() error {
	released, err := s.Repo.ReleaseFreeSlots()
	if err != nil {
		return fmt.Errorf("cron job: failed to release free slots: %w", err)
	}
	if released > 0 {
		log.Printf("Cron Job: Released %d slots back to 'Available'.", released)
	}
	return nil
}
