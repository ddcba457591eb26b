package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"paras/internal/api"
	"paras/internal/auth"
	"paras/internal/repository"
	"paras/internal/service"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	bookingRepo := repository.NewBookingRepository(db)
	slotRepo := repository.NewSlotRepository(db)
	parkRepo := repository.NewParkRepository(db)
	authRepo := repository.NewAuthRepository(db)
	statsRepo := repository.NewStatsRepository(db)
	jobRepo := repository.NewJobRepository(db)

	sender := service.NewSenderService()
	bookingSvc := service.NewBookingService(bookingRepo, slotRepo, parkRepo, authRepo, sender)
	parkSvc := service.NewParkService(parkRepo, slotRepo)
	authSvc := service.NewAuthService(authRepo)
	statsSvc := service.NewStatsService(statsRepo)
	jobSvc := service.NewJobService(jobRepo)

	authHandler := api.NewAuthHandler(authSvc)
	bookingHandler := api.NewBookingHandler(bookingSvc)
	parkHandler := api.NewParkHandler(parkSvc)
	statsHandler := api.NewStatsHandler(statsSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/auth/guest", authHandler.GuestLogin).Methods("POST")
	r.HandleFunc("/api/cities", parkHandler.ListCities).Methods("GET")
	r.HandleFunc("/api/parks", parkHandler.ListParks).Methods("GET")
	r.HandleFunc("/api/parks/{id}", parkHandler.GetPark).Methods("GET")
	r.HandleFunc("/api/availability", bookingHandler.CheckAvailability).Methods("POST")
	r.HandleFunc("/api/stats/congestion", statsHandler.Congestion).Methods("GET")
	r.HandleFunc("/api/stats/city-bookings", statsHandler.CityBookings).Methods("GET")

	// Authenticated endpoints
	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(auth.AuthMiddleware)
	protected.HandleFunc("/bookings", bookingHandler.CreateBooking).Methods("POST")
	protected.HandleFunc("/bookings", bookingHandler.ListMyBookings).Methods("GET")
	protected.HandleFunc("/bookings/{id}", bookingHandler.CancelBooking).Methods("DELETE")
	protected.HandleFunc("/bookings/{id}/exit", bookingHandler.DriverExit).Methods("POST")
	protected.HandleFunc("/parks", parkHandler.CreatePark).Methods("POST")
	protected.HandleFunc("/stats/bookings", statsHandler.OwnerStatistics).Methods("GET")

	// Close out overdue bookings and reconcile slot statuses in the
	// background so occupancy tracks the bookings table.
	c := cron.New()
	c.AddFunc("@every 5m", func() {
		if err := jobSvc.CloseOutExpiredBookings(); err != nil {
			log.Printf("Cron Job error: %v", err)
		}
		if err := jobSvc.ReconcileSlotStatuses(); err != nil {
			log.Printf("Cron Job error: %v", err)
		}
	})
	c.Start()
	defer c.Stop()

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, corsHandler(r))))
}
