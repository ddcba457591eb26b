package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"path/filepath"
	"time"

	"paras/internal/db"
	"paras/internal/entities"
)

type SenderService struct {
}

func NewSenderService() *SenderService {
	return &SenderService{}
}

// SendBookingEmail renders and dispatches the booking email asynchronously.
// Template or transport failures are logged; the booking flow never waits on
// or fails because of them.
func (s *SenderService) SendBookingEmail(profile *db.Profile, booking *entities.BookingResponse, status string) {
	emailData := entities.BookingEmailData{
		UserName:           profile.FullName,
		BookingID:          booking.ID,
		ParkName:           booking.ParkName,
		Spot:               booking.Spot,
		VehicleNumber:      booking.VehicleNumber,
		StartTimeFormatted: booking.StartTime.Format("02 Jan 2006 15:04 MST"),
		EndTimeFormatted:   booking.EndTime.Format("02 Jan 2006 15:04 MST"),
		Status:             status,
		CurrentYear:        time.Now().Year(),
	}

	emailSubject := fmt.Sprintf("Your Paras booking #%d is %s", emailData.BookingID, status)
	plainTextBody := fmt.Sprintf(
		"Hello %s,\n\nYour parking booking at %s is %s.\n\n"+
			"Booking Details:\n"+
			"Booking ID: %d\n"+
			"Spot: %s\n"+
			"Vehicle: %s\n"+
			"Check-in: %s\n"+
			"Check-out: %s\n\n"+
			"Thank you for choosing Paras.\n\n"+
			"Paras. All rights reserved.",
		emailData.UserName, emailData.ParkName, status, emailData.BookingID, emailData.Spot,
		emailData.VehicleNumber, emailData.StartTimeFormatted, emailData.EndTimeFormatted,
	)

	tmplPath := filepath.Join("internal", "templates", "booking_email.html")
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Printf("ALERT: Failed to parse booking email template (%s): %v", tmplPath, err)
		return
	}

	var htmlBodyBuffer bytes.Buffer
	if err := tmpl.Execute(&htmlBodyBuffer, emailData); err != nil {
		log.Printf("ALERT: Failed to execute booking email template for booking %d: %v", emailData.BookingID, err)
		return
	}
	htmlBody := htmlBodyBuffer.String()

	go func(toEmail, userName, subject, plainBody, htmlBodyContent string) {
		if errEmail := SendEmailWithSendGrid(toEmail, userName, subject, plainBody, htmlBodyContent); errEmail != nil {
			log.Printf("ALERT (async): Email delivery failed for booking %d: %v", emailData.BookingID, errEmail)
		}
	}(profile.Email, emailData.UserName, emailSubject, plainTextBody, htmlBody)
}

// SendBookingSMS notifies the driver over SMS when a phone number is on file.
func (s *SenderService) SendBookingSMS(profile *db.Profile, booking *entities.BookingResponse, status string) {
	if profile.Phone == "" {
		return
	}

	smsMessage := fmt.Sprintf("Paras: Your booking at %s (spot %s) is %s!\nCheck-in: %s.\nMore details in your email.",
		booking.ParkName, booking.Spot, status,
		booking.StartTime.Format("02/01 15:04"),
	)

	if errSMS := SendSMS(profile.Phone, smsMessage); errSMS != nil {
		log.Printf("ALERT: Booking %d was saved, but the SMS to %s failed: %v", booking.ID, profile.Phone, errSMS)
	}
}
