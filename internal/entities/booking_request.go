package entities

type CreateBookingRequest struct {
	SlotID        int    `json:"slot_id"`
	Date          string `json:"date"`
	TimeRange     string `json:"time_range"`
	VehicleNumber string `json:"vehicle_number"`
}
