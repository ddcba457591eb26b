package repository

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/lib/pq"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(database *sql.DB) *JobRepository {
	return &JobRepository{DB: database}
}

// GetActiveBookingIDsPastEndTime finds active bookings whose end time has
// already passed.
func (r *JobRepository) GetActiveBookingIDsPastEndTime() ([]int, error) {
	query := `SELECT id FROM bookings WHERE booking_status = 'active' AND end_time < NOW()`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying active bookings past end time: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning booking ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return ids, nil
}

// CompleteBookings closes out a batch of bookings, stamping out_time where the
// driver never recorded an exit.
func (r *JobRepository) CompleteBookings(ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	query := `
		UPDATE bookings
		SET booking_status = 'completed', out_time = COALESCE(out_time, end_time)
		WHERE id = ANY($1)`
	result, err := r.DB.Exec(query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error completing bookings: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Could not get rows affected: %v", err)
	} else {
		log.Printf("Marked %d bookings as completed", rowsAffected)
	}
	return nil
}

// ReleaseFreeSlots flips Occupied slots back to Available when no active
// booking covers the current time. Keeps stored slot status consistent with
// the bookings table.
func (r *JobRepository) ReleaseFreeSlots() (int64, error) {
	result, err := r.DB.Exec(`
		UPDATE parking_slots ps
		SET status = 'Available'
		WHERE ps.status = 'Occupied'
		  AND NOT EXISTS (
			SELECT 1 FROM bookings b
			WHERE b.slot_id = ps.id
			  AND b.booking_status = 'active'
			  AND b.start_time <= NOW()
			  AND b.end_time > NOW()
		  )`)
	if err != nil {
		return 0, fmt.Errorf("error releasing free slots: %w", err)
	}
	return result.RowsAffected()
}
