package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"paras/internal/db"
	"paras/internal/entities"
	"paras/internal/utils"
)

// ErrSlotAlreadyBooked is returned when the requested window overlaps an
// active booking for the same slot.
var ErrSlotAlreadyBooked = errors.New("slot is already booked for the selected time period")

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(database *sql.DB) *BookingRepository {
	return &BookingRepository{DB: database}
}

// CreateBooking inserts a booking and marks its slot occupied in one
// transaction. The slot row is locked first so two submissions for the same
// slot serialize; the overlap check then runs against a stable view. The
// bookings_no_active_overlap exclusion constraint backstops writers that skip
// this path.
func (r *BookingRepository) CreateBooking(b *db.Booking) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting booking transaction: %w", err)
	}
	defer tx.Rollback()

	var slotStatus string
	err = tx.QueryRow(`SELECT status FROM parking_slots WHERE id = $1 FOR UPDATE`, b.SlotID).Scan(&slotStatus)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("slot %d not found: %w", b.SlotID, err)
		}
		return fmt.Errorf("error locking slot %d: %w", b.SlotID, err)
	}

	day := b.StartTime.Truncate(24 * time.Hour)
	rows, err := tx.Query(`
		SELECT start_time, end_time
		FROM bookings
		WHERE slot_id = $1
		  AND booking_status = 'active'
		  AND start_time >= $2
		  AND start_time < $2 + interval '1 day'
		  AND end_time > NOW()`,
		b.SlotID, day)
	if err != nil {
		return fmt.Errorf("error checking booking conflicts: %w", err)
	}
	conflict := false
	for rows.Next() {
		var existingStart, existingEnd time.Time
		if err := rows.Scan(&existingStart, &existingEnd); err != nil {
			rows.Close()
			return fmt.Errorf("error scanning existing booking: %w", err)
		}
		if utils.IntervalsOverlap(b.StartTime, b.EndTime, existingStart, existingEnd) {
			conflict = true
		}
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return fmt.Errorf("error after iterating existing bookings: %w", err)
	}
	if conflict {
		return ErrSlotAlreadyBooked
	}

	err = tx.QueryRow(`
		INSERT INTO bookings (user_id, slot_id, start_time, end_time, vehicle_number, booking_status, out_time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULL, NOW())
		RETURNING id, created_at`,
		b.UserID, b.SlotID, b.StartTime, b.EndTime, b.VehicleNumber, b.BookingStatus,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		if isOverlapViolation(err) {
			return ErrSlotAlreadyBooked
		}
		return fmt.Errorf("error inserting booking: %w", err)
	}

	if _, err = tx.Exec(`UPDATE parking_slots SET status = $1 WHERE id = $2`, db.SlotOccupied, b.SlotID); err != nil {
		return fmt.Errorf("error marking slot %d occupied: %w", b.SlotID, err)
	}

	if err = tx.Commit(); err != nil {
		if isOverlapViolation(err) {
			return ErrSlotAlreadyBooked
		}
		return fmt.Errorf("error committing booking: %w", err)
	}
	return nil
}

// isOverlapViolation matches the exclusion constraint (23P01) and unique
// violations (23505) raised by concurrent overlapping inserts.
func isOverlapViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23P01" || pqErr.Code == "23505"
	}
	return false
}

// ListOverlappingSlotIDs returns the slot IDs within a park that have an
// active booking overlapping [startTime, endTime).
func (r *BookingRepository) ListOverlappingSlotIDs(parkID int, startTime, endTime time.Time) (map[int]bool, error) {
	rows, err := r.DB.Query(`
		SELECT DISTINCT b.slot_id
		FROM bookings b
		JOIN parking_slots s ON s.id = b.slot_id
		WHERE s.park_id = $1
		  AND b.booking_status = 'active'
		  AND (b.start_time, b.end_time) OVERLAPS ($2, $3)`,
		parkID, startTime, endTime)
	if err != nil {
		return nil, fmt.Errorf("error querying overlapping bookings: %w", err)
	}
	defer rows.Close()

	booked := make(map[int]bool)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning booked slot id: %w", err)
		}
		booked[id] = true
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating booked slot rows: %w", err)
	}
	return booked, nil
}

func (r *BookingRepository) GetBookingByID(id int) (*db.Booking, error) {
	var b db.Booking
	err := r.DB.QueryRow(`
		SELECT id, user_id, slot_id, start_time, end_time, vehicle_number, booking_status, out_time, created_at
		FROM bookings WHERE id = $1`, id).Scan(
		&b.ID, &b.UserID, &b.SlotID, &b.StartTime, &b.EndTime, &b.VehicleNumber, &b.BookingStatus, &b.OutTime, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying booking %d: %w", id, err)
	}
	return &b, nil
}

// ListUserBookings returns the user's bookings joined with slot and park
// details, newest first, optionally filtered by status.
func (r *BookingRepository) ListUserBookings(userID, status string) ([]entities.BookingResponse, error) {
	query := `
		SELECT b.id, b.slot_id, s.basement_number || '-' || s.slot_number AS spot,
		       p.id, p.name, p.address,
		       b.start_time, b.end_time, b.vehicle_number, b.booking_status, b.out_time, b.created_at
		FROM bookings b
		JOIN parking_slots s ON s.id = b.slot_id
		JOIN it_parks p ON p.id = s.park_id
		WHERE b.user_id = $1`
	args := []interface{}{userID}
	if status != "" {
		query += ` AND b.booking_status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY b.created_at DESC`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying user bookings: %w", err)
	}
	defer rows.Close()

	var bookings []entities.BookingResponse
	for rows.Next() {
		var b entities.BookingResponse
		err := rows.Scan(
			&b.ID, &b.SlotID, &b.Spot, &b.ParkID, &b.ParkName, &b.ParkAddress,
			&b.StartTime, &b.EndTime, &b.VehicleNumber, &b.BookingStatus, &b.OutTime, &b.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning user booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating user bookings: %w", err)
	}
	return bookings, nil
}

// CancelBooking marks an active booking cancelled and releases the slot
// unless another active booking covers it right now.
func (r *BookingRepository) CancelBooking(id int) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting cancel transaction: %w", err)
	}
	defer tx.Rollback()

	var slotID int
	err = tx.QueryRow(`
		UPDATE bookings SET booking_status = $1
		WHERE id = $2 AND booking_status = $3
		RETURNING slot_id`,
		db.BookingCancelled, id, db.BookingActive,
	).Scan(&slotID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("booking %d is not active: %w", id, err)
		}
		return fmt.Errorf("error cancelling booking %d: %w", id, err)
	}

	_, err = tx.Exec(`
		UPDATE parking_slots ps SET status = $1
		WHERE ps.id = $2
		  AND NOT EXISTS (
			SELECT 1 FROM bookings b
			WHERE b.slot_id = ps.id
			  AND b.booking_status = $3
			  AND b.start_time <= NOW()
			  AND b.end_time > NOW()
		  )`,
		db.SlotAvailable, slotID, db.BookingActive)
	if err != nil {
		return fmt.Errorf("error releasing slot %d: %w", slotID, err)
	}

	return tx.Commit()
}

// ExitBooking stamps the driver's exit through the handle_driver_exit stored
// procedure, which closes the booking and frees the slot atomically.
func (r *BookingRepository) ExitBooking(id int, outTime time.Time) (*db.Booking, error) {
	var b db.Booking
	err := r.DB.QueryRow(`
		SELECT id, user_id, slot_id, start_time, end_time, vehicle_number, booking_status, out_time, created_at
		FROM handle_driver_exit($1, $2)`, id, outTime).Scan(
		&b.ID, &b.UserID, &b.SlotID, &b.StartTime, &b.EndTime, &b.VehicleNumber, &b.BookingStatus, &b.OutTime, &b.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("error handling driver exit for booking %d: %w", id, err)
	}
	return &b, nil
}
