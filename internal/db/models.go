package db

import "time"

const (
	SlotAvailable = "Available"
	SlotOccupied  = "Occupied"
)

const (
	BookingActive    = "active"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

type Profile struct {
	ID            string
	Email         string
	FullName      string
	Phone         string
	VehicleNumber string
	PasswordHash  string
	CreatedAt     time.Time
}

type City struct {
	ID    int
	Name  string
	State string
}

type Park struct {
	ID            int
	Name          string
	Address       string
	CityID        int
	Latitude      float64
	Longitude     float64
	PricePerHour  int
	BasementTotal int
	TotalSlots    int
	ProfileID     string
	ImageURL      string
	CreatedAt     time.Time
}

type ParkingSlot struct {
	ID             int
	ParkID         int
	BasementNumber string
	SlotNumber     string
	Status         string
}

type Booking struct {
	ID            int
	UserID        string
	SlotID        int
	StartTime     time.Time
	EndTime       time.Time
	VehicleNumber string
	BookingStatus string
	OutTime       *time.Time
	CreatedAt     time.Time
}
