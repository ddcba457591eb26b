package api

import (
	"encoding/json"
	"net/http"

	"paras/internal/db"
	"paras/internal/service"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

type RegisterRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	FullName      string `json:"full_name"`
	Phone         string `json:"phone"`
	VehicleNumber string `json:"vehicle_number"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token   string         `json:"token"`
	Profile ProfilePayload `json:"profile"`
}

type ProfilePayload struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	FullName      string `json:"full_name"`
	VehicleNumber string `json:"vehicle_number"`
}

func profilePayload(p *db.Profile) ProfilePayload {
	return ProfilePayload{
		ID:            p.ID,
		Email:         p.Email,
		FullName:      p.FullName,
		VehicleNumber: p.VehicleNumber,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	profile, err := h.service.Register(service.RegisterInput{
		Email:         req.Email,
		Password:      req.Password,
		FullName:      req.FullName,
		Phone:         req.Phone,
		VehicleNumber: req.VehicleNumber,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, profilePayload(profile))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, profile, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{Token: token, Profile: profilePayload(profile)})
}

func (h *AuthHandler) GuestLogin(w http.ResponseWriter, r *http.Request) {
	token, profile, err := h.service.GuestLogin()
	if err != nil {
		http.Error(w, "Guest sign-in unavailable", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{Token: token, Profile: profilePayload(profile)})
}
