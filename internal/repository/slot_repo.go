package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"paras/internal/db"
)

type SlotRepository struct {
	DB *sql.DB
}

func NewSlotRepository(database *sql.DB) *SlotRepository {
	return &SlotRepository{DB: database}
}

// ListSlotsByPark returns a park's slots ordered by basement and slot label,
// optionally filtered by basement.
func (r *SlotRepository) ListSlotsByPark(parkID int, basement string) ([]db.ParkingSlot, error) {
	query := `
		SELECT id, park_id, basement_number, slot_number, status
		FROM parking_slots
		WHERE park_id = $1`
	args := []interface{}{parkID}
	if basement != "" {
		query += ` AND basement_number = $2`
		args = append(args, basement)
	}
	query += ` ORDER BY basement_number, slot_number`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying slots for park %d: %w", parkID, err)
	}
	defer rows.Close()

	var slots []db.ParkingSlot
	for rows.Next() {
		var s db.ParkingSlot
		if err := rows.Scan(&s.ID, &s.ParkID, &s.BasementNumber, &s.SlotNumber, &s.Status); err != nil {
			return nil, fmt.Errorf("error scanning slot: %w", err)
		}
		slots = append(slots, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating slot rows: %w", err)
	}
	return slots, nil
}

func (r *SlotRepository) GetSlot(id int) (*db.ParkingSlot, error) {
	var s db.ParkingSlot
	err := r.DB.QueryRow(`
		SELECT id, park_id, basement_number, slot_number, status
		FROM parking_slots WHERE id = $1`, id).Scan(
		&s.ID, &s.ParkID, &s.BasementNumber, &s.SlotNumber, &s.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("slot %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying slot %d: %w", id, err)
	}
	return &s, nil
}

func (r *SlotRepository) UpdateSlotStatus(id int, status string) error {
	result, err := r.DB.Exec(`UPDATE parking_slots SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating slot %d status: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("slot %d not found", id)
	}
	return nil
}

// CreateSlots bulk-inserts a park's slots in one transaction.
func (r *SlotRepository) CreateSlots(slots []db.ParkingSlot) error {
	if len(slots) == 0 {
		return nil
	}
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting slot insert transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO parking_slots (park_id, basement_number, slot_number, status)
		VALUES ($1, $2, $3, $4)`)
	if err != nil {
		return fmt.Errorf("error preparing slot insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range slots {
		if _, err := stmt.Exec(s.ParkID, s.BasementNumber, s.SlotNumber, s.Status); err != nil {
			return fmt.Errorf("error inserting slot %s-%s: %w", s.BasementNumber, s.SlotNumber, err)
		}
	}
	return tx.Commit()
}
