package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"paras/internal/auth"
	"paras/internal/db"
	"paras/internal/entities"
	"paras/internal/service"
)

type ParkHandler struct {
	Service *service.ParkService
}

func NewParkHandler(svc *service.ParkService) *ParkHandler {
	return &ParkHandler{Service: svc}
}

func parkResponse(p *db.Park) entities.ParkResponse {
	return entities.ParkResponse{
		ID:            p.ID,
		Name:          p.Name,
		Address:       p.Address,
		CityID:        p.CityID,
		Latitude:      p.Latitude,
		Longitude:     p.Longitude,
		PricePerHour:  p.PricePerHour,
		BasementTotal: p.BasementTotal,
		TotalSlots:    p.TotalSlots,
		ImageURL:      p.ImageURL,
		CreatedAt:     p.CreatedAt,
	}
}

func (h *ParkHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.Service.ListCities()
	if err != nil {
		http.Error(w, "Could not list cities", http.StatusInternalServerError)
		return
	}

	type cityPayload struct {
		ID    int    `json:"id"`
		Name  string `json:"name"`
		State string `json:"state"`
	}
	payload := make([]cityPayload, 0, len(cities))
	for _, c := range cities {
		payload = append(payload, cityPayload{ID: c.ID, Name: c.Name, State: c.State})
	}
	writeJSON(w, http.StatusOK, payload)
}

func (h *ParkHandler) ListParks(w http.ResponseWriter, r *http.Request) {
	cityID := 0
	if v := r.URL.Query().Get("city_id"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "Invalid city_id", http.StatusBadRequest)
			return
		}
		cityID = parsed
	}

	parks, err := h.Service.ListParks(cityID)
	if err != nil {
		http.Error(w, "Could not list parks", http.StatusInternalServerError)
		return
	}

	payload := make([]entities.ParkResponse, 0, len(parks))
	for i := range parks {
		payload = append(payload, parkResponse(&parks[i]))
	}
	writeJSON(w, http.StatusOK, payload)
}

func (h *ParkHandler) GetPark(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid park ID", http.StatusBadRequest)
		return
	}

	park, err := h.Service.GetPark(id)
	if err != nil {
		writeError(w, err, "Could not get park")
		return
	}
	writeJSON(w, http.StatusOK, parkResponse(park))
}

func (h *ParkHandler) CreatePark(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req entities.CreateParkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	park, err := h.Service.CreatePark(ownerID, req)
	if err != nil {
		writeError(w, err, "Could not create park")
		return
	}
	writeJSON(w, http.StatusCreated, parkResponse(park))
}
