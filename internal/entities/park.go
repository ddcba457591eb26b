package entities

import "time"

type CreateParkRequest struct {
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	CityID        int     `json:"city_id"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	PricePerHour  int     `json:"price_per_hour"`
	BasementTotal int     `json:"basement_total"`
	TotalSlots    int     `json:"total_slots"`
}

type ParkResponse struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	CityID        int       `json:"city_id"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	PricePerHour  int       `json:"price_per_hour"`
	BasementTotal int       `json:"basement_total"`
	TotalSlots    int       `json:"total_slots"`
	ImageURL      string    `json:"image_url"`
	CreatedAt     time.Time `json:"created_at"`
}
