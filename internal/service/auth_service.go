package service

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"paras/internal/db"
	"paras/internal/repository"
)

const (
	defaultGuestEmail    = "guest@example.com"
	defaultGuestPassword = "guest123"
)

type RegisterInput struct {
	Email         string
	Password      string
	FullName      string
	Phone         string
	VehicleNumber string
}

type AuthService interface {
	Register(input RegisterInput) (*db.Profile, error)
	Login(email, password string) (string, *db.Profile, error)
	GuestLogin() (string, *db.Profile, error)
}

type authService struct {
	repo repository.AuthRepository
}

func NewAuthService(repo repository.AuthRepository) AuthService {
	return &authService{repo: repo}
}

func (s *authService) Register(input RegisterInput) (*db.Profile, error) {
	if input.Email == "" || input.Password == "" || input.FullName == "" {
		return nil, errors.New("email, password and full name are required")
	}

	existing, err := s.repo.GetByEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("user with this email already exists")
	}

	profile := &db.Profile{
		ID:            uuid.NewString(),
		Email:         input.Email,
		FullName:      input.FullName,
		Phone:         input.Phone,
		VehicleNumber: input.VehicleNumber,
	}
	if err := s.repo.CreateProfile(profile, input.Password); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *authService) Login(email, password string) (string, *db.Profile, error) {
	profile, err := s.repo.GetByEmail(email)
	if err != nil {
		return "", nil, err
	}
	if profile == nil {
		return "", nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", nil, errors.New("JWT_SECRET not set")
	}

	claims := jwt.MapClaims{
		"sub":   profile.ID,
		"email": profile.Email,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", nil, err
	}
	return signed, profile, nil
}

// GuestLogin signs in the shared guest profile.
func (s *authService) GuestLogin() (string, *db.Profile, error) {
	email := os.Getenv("GUEST_EMAIL")
	if email == "" {
		email = defaultGuestEmail
	}
	password := os.Getenv("GUEST_PASSWORD")
	if password == "" {
		password = defaultGuestPassword
	}
	return s.Login(email, password)
}
