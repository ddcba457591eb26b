package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"paras/internal/db"
	"paras/internal/entities"
	apperrors "paras/internal/errors"
	"paras/internal/repository"
	"paras/internal/utils"
)

type BookingService struct {
	Bookings *repository.BookingRepository
	Slots    *repository.SlotRepository
	Parks    *repository.ParkRepository
	Profiles repository.AuthRepository
	Sender   *SenderService
}

func NewBookingService(
	bookings *repository.BookingRepository,
	slots *repository.SlotRepository,
	parks *repository.ParkRepository,
	profiles repository.AuthRepository,
	sender *SenderService,
) *BookingService {
	return &BookingService{
		Bookings: bookings,
		Slots:    slots,
		Parks:    parks,
		Profiles: profiles,
		Sender:   sender,
	}
}

// validateDraft checks the collected date/hour/duration against the booking
// rules: hour 0-23, duration from the fixed menu, no crossing midnight, and
// the start inside [now, end of tomorrow]. Returns the absolute window.
func (s *BookingService) validateDraft(now time.Time, dateStr string, hour, duration int) (start, end time.Time, err error) {
	date, err := utils.ParseDate(dateStr)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.ErrBadRequest(err.Error())
	}
	if hour < 0 || hour > 23 {
		return time.Time{}, time.Time{}, apperrors.ErrInvalid("start hour must be between 0 and 23")
	}
	if duration < utils.MinDurationHours || duration > utils.MaxDurationHours {
		return time.Time{}, time.Time{}, apperrors.ErrInvalid(
			fmt.Sprintf("duration must be between %d and %d hours", utils.MinDurationHours, utils.MaxDurationHours))
	}
	if hour+duration > 24 {
		return time.Time{}, time.Time{}, apperrors.ErrInvalid("booking cannot cross midnight")
	}
	start = date.Add(time.Duration(hour) * time.Hour)
	end = start.Add(time.Duration(duration) * time.Hour)
	if !utils.WithinHorizon(now, start) {
		return time.Time{}, time.Time{}, apperrors.ErrInvalid("booking must start between now and the end of tomorrow")
	}
	return start, end, nil
}

// CheckAvailability computes the bookable slots for a park and time window:
// the park's slots minus those with an active booking overlapping the window,
// truncated to the first six in (basement, slot) order.
func (s *BookingService) CheckAvailability(req entities.AvailabilityRequest) (*entities.AvailabilityResponse, error) {
	now := time.Now().UTC()
	start, end, err := s.validateDraft(now, req.Date, req.Hour, req.Duration)
	if err != nil {
		return nil, err
	}

	slots, err := s.Slots.ListSlotsByPark(req.ParkID, req.Basement)
	if err != nil {
		log.Printf("Error listing slots for park %d: %v", req.ParkID, err)
		return nil, fmt.Errorf("internal error checking availability: %w", err)
	}
	booked, err := s.Bookings.ListOverlappingSlotIDs(req.ParkID, start, end)
	if err != nil {
		log.Printf("Error listing overlapping bookings for park %d: %v", req.ParkID, err)
		return nil, fmt.Errorf("internal error checking availability: %w", err)
	}

	options := []entities.SlotOption{}
	for _, slot := range slots {
		if booked[slot.ID] {
			continue
		}
		options = append(options, entities.SlotOption{
			ID:       slot.ID,
			Spot:     slot.BasementNumber + "-" + slot.SlotNumber,
			Basement: slot.BasementNumber,
			Status:   db.SlotAvailable,
		})
		if len(options) == utils.MaxDisplaySlots {
			break
		}
	}

	return &entities.AvailabilityResponse{
		ParkID:             req.ParkID,
		RequestedStartTime: start,
		RequestedEndTime:   end,
		TimeRange:          utils.FormatTimeRange(req.Hour, req.Duration),
		Slots:              options,
		AllSlotsOccupied:   len(options) == 0,
	}, nil
}

// CreateBooking persists a reservation for the authenticated user. The
// conflict check and the slot-status update run inside one transaction in the
// repository, so a racing submission gets a conflict instead of a double
// booking.
func (s *BookingService) CreateBooking(userID string, req entities.CreateBookingRequest) (*entities.BookingResponse, error) {
	if strings.TrimSpace(req.VehicleNumber) == "" {
		return nil, apperrors.ErrInvalid("vehicle number is required")
	}
	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return nil, apperrors.ErrBadRequest(err.Error())
	}
	startOff, endOff, err := utils.ParseTimeRange(req.TimeRange)
	if err != nil {
		return nil, apperrors.ErrInvalid(err.Error())
	}
	start := date.Add(startOff)
	end := date.Add(endOff)

	now := time.Now().UTC()
	if !utils.WithinHorizon(now, start) {
		return nil, apperrors.ErrInvalid("booking must start between now and the end of tomorrow")
	}

	slot, err := s.Slots.GetSlot(req.SlotID)
	if err != nil {
		return nil, apperrors.ErrNotFound("slot not found")
	}

	booking := &db.Booking{
		UserID:        userID,
		SlotID:        slot.ID,
		StartTime:     start,
		EndTime:       end,
		VehicleNumber: req.VehicleNumber,
		BookingStatus: db.BookingActive,
	}
	if err := s.Bookings.CreateBooking(booking); err != nil {
		if errors.Is(err, repository.ErrSlotAlreadyBooked) {
			return nil, apperrors.ErrConflict(err.Error())
		}
		log.Printf("Error creating booking for slot %d: %v", slot.ID, err)
		return nil, err
	}

	resp := &entities.BookingResponse{
		ID:            booking.ID,
		SlotID:        slot.ID,
		Spot:          slot.BasementNumber + "-" + slot.SlotNumber,
		ParkID:        slot.ParkID,
		StartTime:     booking.StartTime,
		EndTime:       booking.EndTime,
		VehicleNumber: booking.VehicleNumber,
		BookingStatus: booking.BookingStatus,
		CreatedAt:     booking.CreatedAt,
	}
	if park, err := s.Parks.GetParkByID(slot.ParkID); err == nil {
		resp.ParkName = park.Name
		resp.ParkAddress = park.Address
	} else {
		log.Printf("Error loading park %d for booking %d: %v", slot.ParkID, booking.ID, err)
	}

	s.notify(userID, resp, "confirmed")
	return resp, nil
}

func (s *BookingService) ListUserBookings(userID, status string) (*entities.BookingsList, error) {
	bookings, err := s.Bookings.ListUserBookings(userID, status)
	if err != nil {
		return nil, err
	}
	return &entities.BookingsList{Total: len(bookings), Bookings: bookings}, nil
}

func (s *BookingService) GetBooking(userID string, id int) (*db.Booking, error) {
	booking, err := s.Bookings.GetBookingByID(id)
	if err != nil {
		return nil, apperrors.ErrNotFound("booking not found")
	}
	if booking.UserID != userID {
		return nil, apperrors.ErrForbidden("booking belongs to another user")
	}
	return booking, nil
}

// CancelBooking transitions an active booking to cancelled and releases the
// slot when no other active booking covers it.
func (s *BookingService) CancelBooking(userID string, id int) error {
	booking, err := s.GetBooking(userID, id)
	if err != nil {
		return err
	}
	if booking.BookingStatus != db.BookingActive {
		return apperrors.ErrConflict("only active bookings can be cancelled")
	}
	if err := s.Bookings.CancelBooking(id); err != nil {
		log.Printf("Error cancelling booking %d: %v", id, err)
		return err
	}

	if resp, err := s.bookingResponse(booking); err == nil {
		resp.BookingStatus = db.BookingCancelled
		s.notify(userID, resp, "cancelled")
	}
	return nil
}

// DriverExit stamps the exit through the handle_driver_exit stored procedure,
// the one place the close-out is a server-side atomic transition.
func (s *BookingService) DriverExit(userID string, id int) (*db.Booking, error) {
	booking, err := s.GetBooking(userID, id)
	if err != nil {
		return nil, err
	}
	if booking.BookingStatus != db.BookingActive {
		return nil, apperrors.ErrConflict("only active bookings can record an exit")
	}
	updated, err := s.Bookings.ExitBooking(id, time.Now().UTC())
	if err != nil {
		log.Printf("Error recording exit for booking %d: %v", id, err)
		return nil, err
	}
	return updated, nil
}

func (s *BookingService) bookingResponse(b *db.Booking) (*entities.BookingResponse, error) {
	slot, err := s.Slots.GetSlot(b.SlotID)
	if err != nil {
		return nil, err
	}
	resp := &entities.BookingResponse{
		ID:            b.ID,
		SlotID:        b.SlotID,
		Spot:          slot.BasementNumber + "-" + slot.SlotNumber,
		ParkID:        slot.ParkID,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		VehicleNumber: b.VehicleNumber,
		BookingStatus: b.BookingStatus,
		OutTime:       b.OutTime,
		CreatedAt:     b.CreatedAt,
	}
	if park, err := s.Parks.GetParkByID(slot.ParkID); err == nil {
		resp.ParkName = park.Name
		resp.ParkAddress = park.Address
	}
	return resp, nil
}

// notify dispatches the confirmation email and SMS. Failures are logged, never
// surfaced to the booking flow.
func (s *BookingService) notify(userID string, booking *entities.BookingResponse, status string) {
	if s.Sender == nil || s.Profiles == nil {
		return
	}
	profile, err := s.Profiles.GetByID(userID)
	if err != nil {
		log.Printf("Error loading profile %s for notification: %v", userID, err)
		return
	}
	s.Sender.SendBookingEmail(profile, booking, status)
	s.Sender.SendBookingSMS(profile, booking, status)
}
