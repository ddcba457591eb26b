package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"paras/internal/db"
)

type ParkRepository struct {
	DB *sql.DB
}

func NewParkRepository(database *sql.DB) *ParkRepository {
	return &ParkRepository{DB: database}
}

func (r *ParkRepository) ListCities() ([]db.City, error) {
	rows, err := r.DB.Query(`SELECT id, name, state FROM cities ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error querying cities: %w", err)
	}
	defer rows.Close()

	var cities []db.City
	for rows.Next() {
		var c db.City
		if err := rows.Scan(&c.ID, &c.Name, &c.State); err != nil {
			return nil, fmt.Errorf("error scanning city: %w", err)
		}
		cities = append(cities, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating city rows: %w", err)
	}
	return cities, nil
}

// ListParks returns parks, optionally restricted to a city.
func (r *ParkRepository) ListParks(cityID int) ([]db.Park, error) {
	query := `
		SELECT id, name, address, city_id, latitude, longitude, price_per_hour,
		       basement_total, total_slots, profile_id, image_url, created_at
		FROM it_parks`
	args := []interface{}{}
	if cityID > 0 {
		query += ` WHERE city_id = $1`
		args = append(args, cityID)
	}
	query += ` ORDER BY name`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying parks: %w", err)
	}
	defer rows.Close()

	var parks []db.Park
	for rows.Next() {
		var p db.Park
		err := rows.Scan(
			&p.ID, &p.Name, &p.Address, &p.CityID, &p.Latitude, &p.Longitude, &p.PricePerHour,
			&p.BasementTotal, &p.TotalSlots, &p.ProfileID, &p.ImageURL, &p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning park: %w", err)
		}
		parks = append(parks, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating park rows: %w", err)
	}
	return parks, nil
}

func (r *ParkRepository) GetParkByID(id int) (*db.Park, error) {
	var p db.Park
	err := r.DB.QueryRow(`
		SELECT id, name, address, city_id, latitude, longitude, price_per_hour,
		       basement_total, total_slots, profile_id, image_url, created_at
		FROM it_parks WHERE id = $1`, id).Scan(
		&p.ID, &p.Name, &p.Address, &p.CityID, &p.Latitude, &p.Longitude, &p.PricePerHour,
		&p.BasementTotal, &p.TotalSlots, &p.ProfileID, &p.ImageURL, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("park %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying park %d: %w", id, err)
	}
	return &p, nil
}

func (r *ParkRepository) CreatePark(p *db.Park) error {
	return r.DB.QueryRow(`
		INSERT INTO it_parks
		(name, address, city_id, latitude, longitude, price_per_hour, basement_total, total_slots, profile_id, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		RETURNING id, created_at`,
		p.Name, p.Address, p.CityID, p.Latitude, p.Longitude, p.PricePerHour,
		p.BasementTotal, p.TotalSlots, p.ProfileID, p.ImageURL,
	).Scan(&p.ID, &p.CreatedAt)
}
