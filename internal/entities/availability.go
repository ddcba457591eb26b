package entities

import "time"

type AvailabilityRequest struct {
	ParkID   int    `json:"park_id"`
	Basement string `json:"basement,omitempty"`
	Date     string `json:"date"`
	Hour     int    `json:"hour"`
	Duration int    `json:"duration"`
}

type SlotOption struct {
	ID       int    `json:"id"`
	Spot     string `json:"spot"`
	Basement string `json:"basement"`
	Status   string `json:"status"`
}

type AvailabilityResponse struct {
	ParkID             int          `json:"park_id"`
	RequestedStartTime time.Time    `json:"requested_start_time"`
	RequestedEndTime   time.Time    `json:"requested_end_time"`
	TimeRange          string       `json:"time_range"`
	Slots              []SlotOption `json:"slots"`
	AllSlotsOccupied   bool         `json:"all_slots_occupied"`
}
