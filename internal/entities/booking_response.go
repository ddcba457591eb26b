package entities

import "time"

type BookingResponse struct {
	ID            int        `json:"id"`
	SlotID        int        `json:"slot_id"`
	Spot          string     `json:"spot"`
	ParkID        int        `json:"park_id"`
	ParkName      string     `json:"park_name"`
	ParkAddress   string     `json:"park_address"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       time.Time  `json:"end_time"`
	VehicleNumber string     `json:"vehicle_number"`
	BookingStatus string     `json:"booking_status"`
	OutTime       *time.Time `json:"out_time,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type BookingsList struct {
	Total    int               `json:"total"`
	Bookings []BookingResponse `json:"bookings"`
}
