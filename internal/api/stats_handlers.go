package api

import (
	"net/http"

	"paras/internal/auth"
	"paras/internal/service"
)

type StatsHandler struct {
	Service *service.StatsService
}

func NewStatsHandler(svc *service.StatsService) *StatsHandler {
	return &StatsHandler{Service: svc}
}

// OwnerStatistics serves the facility-owner dashboard: bookings and revenue
// per park, bucketed by the requested time frame (day, week or month).
func (h *StatsHandler) OwnerStatistics(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	timeFrame := r.URL.Query().Get("time_frame")
	if timeFrame == "" {
		timeFrame = "day"
	}

	stats, err := h.Service.GetOwnerStatistics(ownerID, timeFrame)
	if err != nil {
		http.Error(w, "Could not load statistics", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *StatsHandler) Congestion(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.GetCongestionData()
	if err != nil {
		http.Error(w, "Could not load congestion data", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *StatsHandler) CityBookings(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	if city == "" {
		http.Error(w, "city is required", http.StatusBadRequest)
		return
	}

	counts, err := h.Service.GetBookingsByCity(city)
	if err != nil {
		http.Error(w, "Could not load city bookings", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}
