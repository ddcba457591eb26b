package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paras/internal/auth"
	"paras/internal/db"
	"paras/internal/repository"
	"paras/internal/service"
)

const (
	testSecret = "test-secret"
	testUserID = "5f0c2b3a-9c1d-4e8f-b3a7-2d1e0f9c8b7a"
)

func newBookingRouter(t *testing.T) (*mux.Router, sqlmock.Sqlmock) {
	t.Helper()
	dbConn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { dbConn.Close() })

	svc := service.NewBookingService(
		repository.NewBookingRepository(dbConn),
		repository.NewSlotRepository(dbConn),
		repository.NewParkRepository(dbConn),
		nil,
		nil,
	)
	handler := NewBookingHandler(svc)

	router := mux.NewRouter()
	router.HandleFunc("/api/availability", handler.CheckAvailability).Methods("POST")

	protected := router.PathPrefix("/api").Subrouter()
	protected.Use(auth.AuthMiddleware)
	protected.HandleFunc("/bookings", handler.CreateBooking).Methods("POST")
	protected.HandleFunc("/bookings", handler.ListMyBookings).Methods("GET")
	return router, mock
}

func signToken(t *testing.T, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestCreateBookingRejectsMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	router, mock := newBookingRouter(t)

	req := httptest.NewRequest("POST", "/api/bookings", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingRejectsTamperedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	router, _ := newBookingRouter(t)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": testUserID,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/bookings", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateBookingRejectsMalformedJSON(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	router, _ := newBookingRouter(t)

	req := httptest.NewRequest("POST", "/api/bookings", strings.NewReader(`{not json`))
	req.Header.Set("Authorization", "Bearer "+signToken(t, testUserID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBookingRejectsInvalidTimeRange(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	router, mock := newBookingRouter(t)

	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	body := `{"slot_id":1,"date":"` + tomorrow + `","time_range":"13:00 - 11:00","vehicle_number":"KA-01"}`
	req := httptest.NewRequest("POST", "/api/bookings", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+signToken(t, testUserID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet(), "invalid submissions must not reach the database")
}

func TestCheckAvailabilityEndpoint(t *testing.T) {
	router, mock := newBookingRouter(t)

	mock.ExpectQuery("FROM parking_slots").
		WillReturnRows(sqlmock.NewRows([]string{"id", "park_id", "basement_number", "slot_number", "status"}).
			AddRow(1, 1, "B1", "S1", db.SlotAvailable))
	mock.ExpectQuery("SELECT DISTINCT b.slot_id").
		WillReturnRows(sqlmock.NewRows([]string{"slot_id"}))

	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	body := `{"park_id":1,"date":"` + tomorrow + `","hour":10,"duration":2}`
	req := httptest.NewRequest("POST", "/api/availability", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"10:00 - 12:00"`)
	assert.Contains(t, rec.Body.String(), `"B1-S1"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMyBookingsEndpoint(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	router, mock := newBookingRouter(t)

	now := time.Now().UTC()
	mock.ExpectQuery("FROM bookings b").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "slot_id", "spot", "park_id", "park_name", "park_address",
			"start_time", "end_time", "vehicle_number", "booking_status", "out_time", "created_at",
		}).AddRow(7, 42, "B1-S3", 9, "Central IT Park", "1 Main St",
			now, now.Add(2*time.Hour), "KA-01", db.BookingActive, nil, now))

	req := httptest.NewRequest("GET", "/api/bookings?status=active", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testUserID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":1`)
	assert.Contains(t, rec.Body.String(), `"B1-S3"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}
