package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"paras/internal/db"
)

type AuthRepository interface {
	GetByEmail(email string) (*db.Profile, error)
	GetByID(id string) (*db.Profile, error)
	CreateProfile(profile *db.Profile, password string) error
}

type authRepository struct {
	db *sql.DB
}

func NewAuthRepository(database *sql.DB) AuthRepository {
	return &authRepository{db: database}
}

func (r *authRepository) GetByEmail(email string) (*db.Profile, error) {
	var p db.Profile
	err := r.db.QueryRow(`
		SELECT id, email, full_name, phone, vehicle_number, password_hash, created_at
		FROM profiles WHERE email = $1`, email).Scan(
		&p.ID, &p.Email, &p.FullName, &p.Phone, &p.VehicleNumber, &p.PasswordHash, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *authRepository) GetByID(id string) (*db.Profile, error) {
	var p db.Profile
	err := r.db.QueryRow(`
		SELECT id, email, full_name, phone, vehicle_number, password_hash, created_at
		FROM profiles WHERE id = $1`, id).Scan(
		&p.ID, &p.Email, &p.FullName, &p.Phone, &p.VehicleNumber, &p.PasswordHash, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("profile %s not found: %w", id, err)
		}
		return nil, err
	}
	return &p, nil
}

func (r *authRepository) CreateProfile(profile *db.Profile, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	profile.PasswordHash = string(hashed)

	query := `
		INSERT INTO profiles (id, email, full_name, phone, vehicle_number, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at`
	return r.db.QueryRow(query,
		profile.ID, profile.Email, profile.FullName, profile.Phone, profile.VehicleNumber, profile.PasswordHash,
	).Scan(&profile.CreatedAt)
}
