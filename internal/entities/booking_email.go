package entities

type BookingEmailData struct {
	UserName           string
	BookingID          int
	ParkName           string
	Spot               string
	VehicleNumber      string
	StartTimeFormatted string
	EndTimeFormatted   string
	Status             string
	CurrentYear        int
}
