package service

import (
	"fmt"
	"log"

	"paras/internal/db"
	"paras/internal/entities"
	apperrors "paras/internal/errors"
	"paras/internal/repository"
)

// Applied to every uploaded park, matching the owner upload flow.
const defaultParkImageURL = "https://images.example.com/parking/default.jpg"

type ParkService struct {
	Parks *repository.ParkRepository
	Slots *repository.SlotRepository
}

func NewParkService(parks *repository.ParkRepository, slots *repository.SlotRepository) *ParkService {
	return &ParkService{Parks: parks, Slots: slots}
}

func (s *ParkService) ListCities() ([]db.City, error) {
	return s.Parks.ListCities()
}

func (s *ParkService) ListParks(cityID int) ([]db.Park, error) {
	return s.Parks.ListParks(cityID)
}

func (s *ParkService) GetPark(id int) (*db.Park, error) {
	park, err := s.Parks.GetParkByID(id)
	if err != nil {
		return nil, apperrors.ErrNotFound("park not found")
	}
	return park, nil
}

// CreatePark registers an owner's facility and provisions its slots: slots
// are spread across basements B1..Bn in upload order, labelled S1..Sk within
// each basement.
func (s *ParkService) CreatePark(ownerID string, req entities.CreateParkRequest) (*db.Park, error) {
	if req.Name == "" || req.Address == "" || req.CityID <= 0 {
		return nil, apperrors.ErrInvalid("name, address and city are required")
	}
	if req.BasementTotal <= 0 || req.TotalSlots <= 0 {
		return nil, apperrors.ErrInvalid("basement and slot counts must be positive")
	}
	if req.PricePerHour < 0 {
		return nil, apperrors.ErrInvalid("price per hour cannot be negative")
	}

	park := &db.Park{
		Name:          req.Name,
		Address:       req.Address,
		CityID:        req.CityID,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		PricePerHour:  req.PricePerHour,
		BasementTotal: req.BasementTotal,
		TotalSlots:    req.TotalSlots,
		ProfileID:     ownerID,
		ImageURL:      defaultParkImageURL,
	}
	if err := s.Parks.CreatePark(park); err != nil {
		log.Printf("Error creating park %q: %v", req.Name, err)
		return nil, err
	}

	if err := s.Slots.CreateSlots(provisionSlots(park)); err != nil {
		log.Printf("Error provisioning slots for park %d: %v", park.ID, err)
		return nil, fmt.Errorf("park created but slot provisioning failed: %w", err)
	}
	return park, nil
}

// provisionSlots distributes total_slots across basements as evenly as
// possible, earlier basements taking the remainder.
func provisionSlots(park *db.Park) []db.ParkingSlot {
	perBasement := park.TotalSlots / park.BasementTotal
	remainder := park.TotalSlots % park.BasementTotal

	var slots []db.ParkingSlot
	for b := 1; b <= park.BasementTotal; b++ {
		count := perBasement
		if b <= remainder {
			count++
		}
		for n := 1; n <= count; n++ {
			slots = append(slots, db.ParkingSlot{
				ParkID:         park.ID,
				BasementNumber: fmt.Sprintf("B%d", b),
				SlotNumber:     fmt.Sprintf("S%d", n),
				Status:         db.SlotAvailable,
			})
		}
	}
	return slots
}
