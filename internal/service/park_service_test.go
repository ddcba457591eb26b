package service

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paras/internal/db"
	"paras/internal/entities"
	"paras/internal/repository"
)

func newTestParkService(t *testing.T) (*ParkService, sqlmock.Sqlmock) {
	t.Helper()
	dbConn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { dbConn.Close() })

	svc := NewParkService(
		repository.NewParkRepository(dbConn),
		repository.NewSlotRepository(dbConn),
	)
	return svc, mock
}

func TestProvisionSlotsEvenSplit(t *testing.T) {
	slots := provisionSlots(&db.Park{ID: 1, BasementTotal: 2, TotalSlots: 40})

	require.Len(t, slots, 40)
	perBasement := map[string]int{}
	for _, s := range slots {
		perBasement[s.BasementNumber]++
		assert.Equal(t, db.SlotAvailable, s.Status)
		assert.Equal(t, 1, s.ParkID)
	}
	assert.Equal(t, map[string]int{"B1": 20, "B2": 20}, perBasement)
	assert.Equal(t, "S1", slots[0].SlotNumber)
	assert.Equal(t, "S20", slots[19].SlotNumber)
}

func TestProvisionSlotsRemainderGoesToEarlierBasements(t *testing.T) {
	slots := provisionSlots(&db.Park{ID: 2, BasementTotal: 3, TotalSlots: 10})

	perBasement := map[string]int{}
	for _, s := range slots {
		perBasement[s.BasementNumber]++
	}
	assert.Equal(t, map[string]int{"B1": 4, "B2": 3, "B3": 3}, perBasement)
}

func TestCreateParkRejectsInvalidInput(t *testing.T) {
	svc, mock := newTestParkService(t)

	cases := []struct {
		name string
		req  entities.CreateParkRequest
	}{
		{"missing name", entities.CreateParkRequest{Address: "1 Main St", CityID: 1, BasementTotal: 1, TotalSlots: 10}},
		{"missing city", entities.CreateParkRequest{Name: "Park", Address: "1 Main St", BasementTotal: 1, TotalSlots: 10}},
		{"zero slots", entities.CreateParkRequest{Name: "Park", Address: "1 Main St", CityID: 1, BasementTotal: 1}},
		{"negative price", entities.CreateParkRequest{Name: "Park", Address: "1 Main St", CityID: 1, BasementTotal: 1, TotalSlots: 10, PricePerHour: -5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreatePark(testUserID, tc.req)
			assert.Equal(t, 422, httpCode(t, err))
		})
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateParkProvisionsSlots(t *testing.T) {
	svc, mock := newTestParkService(t)

	mock.ExpectQuery("INSERT INTO it_parks").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(5, time.Now()))
	mock.ExpectBegin()
	prep := mock.ExpectPrepare("INSERT INTO parking_slots")
	for i := 0; i < 4; i++ {
		prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	park, err := svc.CreatePark(testUserID, entities.CreateParkRequest{
		Name:          "Tech Hub",
		Address:       "42 Ring Rd",
		CityID:        3,
		Latitude:      12.97,
		Longitude:     77.59,
		PricePerHour:  50,
		BasementTotal: 2,
		TotalSlots:    4,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, park.ID)
	assert.Equal(t, testUserID, park.ProfileID)
	assert.NotEmpty(t, park.ImageURL)
	assert.NoError(t, mock.ExpectationsWereMet(), "every provisioned slot must be inserted")
}
