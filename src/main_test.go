package main

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"hbs/src/db"
	"hbs/src/middlewares"
	"hbs/src/types"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/stripe/stripe-go/v82"
	"github.com/tidwall/gjson"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type TestSuite struct {
	suite.Suite
}

// stubAuthMiddleware stands in for the real token check so handler flows can
// be exercised against the mocked database.
func stubAuthMiddleware(userId uint, role string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set("id", userId)
		ctx.Set("email", "guest@example.com")
		ctx.Set("role", role)
	}
}

func (s *TestSuite) SetupSuite() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("staydate", stayDateValidatorFunc)
		v.RegisterValidation("afterdate", afterdate)
	}
}

func NewMockDB() (*gorm.DB, sqlmock.Sqlmock) {
	sqldb, mock, err := sqlmock.New()
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening a stub database connection", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqldb,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening gorm database", err)
	}

	return gormDB, mock
}

// freshMock swaps the singleton for a new sqlmock-backed instance so each
// test owns its expectations.
func (s *TestSuite) freshMock() sqlmock.Sqlmock {
	d, mock := NewMockDB()
	db.NewDB(d)
	return mock
}

func (s *TestSuite) TestPingRoute() {
	router := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 200, w.Code)
}

func (s *TestSuite) TestMaintenanceMode() {
	os.Setenv("MAINTENANCE_MODE", "true")
	defer os.Unsetenv("MAINTENANCE_MODE")

	router := setupRouter()
	router = maintenanceModeMiddleware(router)
	apiv1 := apiv1Group(router)
	roomHandlers(apiv1)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/rooms", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 503, w.Code)
}

func (s *TestSuite) TestRequiresToken() {
	router := setupRouter()
	authorized := apiv1Group(router)
	authorized.Use(middlewares.AuthMiddleware)
	bookingHandlers(authorized)

	get := func(header string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/bookings/my", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(s.T(), 401, get("").Code)
	assert.Equal(s.T(), 401, get("Bearer not-a-token").Code)
	// A bare scheme with no token must reject, not panic.
	assert.Equal(s.T(), 401, get("Bearer").Code)
	assert.Equal(s.T(), 401, get("Bearer ").Code)
}

func (s *TestSuite) TestAdminRequiresRole() {
	router := setupRouter()
	admin := router.Group("/api/v1/admin")
	admin.Use(stubAuthMiddleware(1, types.ROLE_USER), middlewares.RequireRole(types.ROLE_ADMIN))
	adminRoomHandlers(admin)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/admin/rooms", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 403, w.Code)
	body, err := io.ReadAll(w.Body)
	assert.Nil(s.T(), err)
	assert.False(s.T(), gjson.GetBytes(body, "success").Bool())
}

func (s *TestSuite) TestBookingValidation() {
	router := setupRouter()
	authorized := apiv1Group(router)
	authorized.Use(stubAuthMiddleware(1, types.ROLE_USER))
	bookingHandlers(authorized)

	post := func(body map[string]any) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		sbody, _ := json.Marshal(&body)
		req, _ := http.NewRequest("POST", "/api/v1/bookings", strings.NewReader(string(sbody)))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		return w
	}

	s.Run("Should reject a request with missing fields", func() {
		w := post(map[string]any{"room": 1})
		assert.Equal(s.T(), 400, w.Code)

		body, err := io.ReadAll(w.Body)
		assert.Nil(s.T(), err)
		assert.False(s.T(), gjson.GetBytes(body, "success").Bool())
		assert.NotEmpty(s.T(), gjson.GetBytes(body, "message").String())
	})

	s.Run("Should reject a check-in date in the past", func() {
		w := post(map[string]any{
			"room":     1,
			"checkIn":  "2020-01-01",
			"checkOut": "2020-01-04",
			"guests":   2,
		})
		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should reject a check-out on or before check-in", func() {
		w := post(map[string]any{
			"room":     1,
			"checkIn":  "2099-01-04",
			"checkOut": "2099-01-04",
			"guests":   2,
		})
		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should reject a guest count outside bounds", func() {
		w := post(map[string]any{
			"room":     1,
			"checkIn":  "2099-01-01",
			"checkOut": "2099-01-04",
			"guests":   11,
		})
		assert.Equal(s.T(), 400, w.Code)
	})
}

func (s *TestSuite) TestBookingLedger() {
	router := setupRouter()
	authorized := apiv1Group(router)
	authorized.Use(stubAuthMiddleware(1, types.ROLE_USER))
	bookingHandlers(authorized)

	postBooking := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		sbody, _ := json.Marshal(map[string]any{
			"room":     3,
			"checkIn":  "2099-01-01",
			"checkOut": "2099-01-04",
			"guests":   2,
		})
		req, _ := http.NewRequest("POST", "/api/v1/bookings", strings.NewReader(string(sbody)))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		return w
	}

	s.Run("Should return 409 when the room is not Available", func() {
		mock := s.freshMock()
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM "rooms"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "status", "price", "capacity"}).
				AddRow(3, "Occupied", 100.0, 4))
		mock.ExpectRollback()

		w := postBooking()

		assert.Equal(s.T(), 409, w.Code)
		assert.Nil(s.T(), mock.ExpectationsWereMet())
	})

	s.Run("Should return 409 when a concurrent booking wins the room", func() {
		mock := s.freshMock()
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM "rooms"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "status", "price", "capacity"}).
				AddRow(3, "Available", 100.0, 4))
		// Conditional update loses: zero rows moved to Reserved.
		mock.ExpectExec(`UPDATE "rooms"`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		w := postBooking()

		assert.Equal(s.T(), 409, w.Code)
		assert.Nil(s.T(), mock.ExpectationsWereMet())
	})

	s.Run("Should return 403 reading another user's booking", func() {
		mock := s.freshMock()
		mock.MatchExpectationsInOrder(false)
		mock.ExpectQuery(`SELECT (.+) FROM "bookings"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "room_id", "status"}).
				AddRow(7, 2, 3, "Pending"))
		mock.ExpectQuery(`SELECT (.+) FROM "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
		mock.ExpectQuery(`SELECT (.+) FROM "rooms"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/bookings/7", nil)
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 403, w.Code)
	})

	s.Run("Should cancel an own booking and release the room", func() {
		mock := s.freshMock()
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM "bookings"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "room_id", "status"}).
				AddRow(7, 1, 3, "Pending"))
		mock.ExpectExec(`UPDATE "bookings"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "rooms"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/api/v1/bookings/7/cancel", nil)
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 200, w.Code)
		body, err := io.ReadAll(w.Body)
		assert.Nil(s.T(), err)
		assert.Equal(s.T(), "Cancelled", gjson.GetBytes(body, "booking.status").String())
		assert.Nil(s.T(), mock.ExpectationsWereMet())
	})

	s.Run("Should return 409 cancelling a terminal booking", func() {
		mock := s.freshMock()
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM "bookings"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "room_id", "status"}).
				AddRow(7, 1, 3, "Cancelled"))
		mock.ExpectRollback()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/api/v1/bookings/7/cancel", nil)
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 409, w.Code)
		assert.Nil(s.T(), mock.ExpectationsWereMet())
	})
}

func (s *TestSuite) TestBookingTransitions() {
	router := setupRouter()
	admin := router.Group("/api/v1/admin")
	admin.Use(stubAuthMiddleware(1, types.ROLE_ADMIN))
	adminBookingHandlers(admin)

	putStatus := func(status string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		sbody, _ := json.Marshal(map[string]any{"status": status})
		req, _ := http.NewRequest("PUT", "/api/v1/admin/bookings/7/status", strings.NewReader(string(sbody)))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		return w
	}

	s.Run("Should check in a Confirmed booking and occupy the room", func() {
		mock := s.freshMock()
		mock.MatchExpectationsInOrder(false)
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM "bookings"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "room_id", "status"}).
				AddRow(7, 1, 3, "Confirmed"))
		mock.ExpectExec(`UPDATE "bookings"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "rooms"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
		// Post-commit re-read with associations.
		mock.ExpectQuery(`SELECT (.+) FROM "bookings"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "room_id", "status"}).
				AddRow(7, 1, 3, "Checked-in"))
		mock.ExpectQuery(`SELECT (.+) FROM "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectQuery(`SELECT (.+) FROM "rooms"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

		w := putStatus("Checked-in")

		assert.Equal(s.T(), 200, w.Code)
		body, err := io.ReadAll(w.Body)
		assert.Nil(s.T(), err)
		assert.Equal(s.T(), "Checked-in", gjson.GetBytes(body, "booking.status").String())
	})

	s.Run("Should return 409 on an illegal jump", func() {
		mock := s.freshMock()
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM "bookings"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "room_id", "status"}).
				AddRow(7, 1, 3, "Pending"))
		mock.ExpectRollback()

		w := putStatus("Checked-out")

		assert.Equal(s.T(), 409, w.Code)
		assert.Nil(s.T(), mock.ExpectationsWereMet())
	})
}

func (s *TestSuite) TestFeedbackValidation() {
	router := setupRouter()
	authorized := apiv1Group(router)
	authorized.Use(stubAuthMiddleware(1, types.ROLE_USER))
	feedbackHandlers(authorized)

	w := httptest.NewRecorder()
	sbody, _ := json.Marshal(map[string]any{"rating": 6})
	req, _ := http.NewRequest("POST", "/api/v1/feedback", strings.NewReader(string(sbody)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 400, w.Code)
}

func (s *TestSuite) TestDuplicateFeedback() {
	router := setupRouter()
	authorized := apiv1Group(router)
	authorized.Use(stubAuthMiddleware(1, types.ROLE_USER))
	feedbackHandlers(authorized)

	mock := s.freshMock()
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "room_id", "status"}).
			AddRow(9, 1, 3, "Checked-out"))
	mock.ExpectQuery(`SELECT count(.+) FROM "feedbacks"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	w := httptest.NewRecorder()
	sbody, _ := json.Marshal(map[string]any{"rating": 5, "bookingId": 9})
	req, _ := http.NewRequest("POST", "/api/v1/feedback", strings.NewReader(string(sbody)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 409, w.Code)
	assert.Nil(s.T(), mock.ExpectationsWereMet())
}

// signStripePayload builds the Stripe-Signature header scheme: an HMAC-SHA256
// of "<timestamp>.<payload>" keyed with the endpoint secret.
func signStripePayload(payload []byte, secret string, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func (s *TestSuite) TestWebhook() {
	const whsecret = "whsec_test_secret"
	os.Setenv("STRIPE_WEBHOOK_SECRET", whsecret)
	defer os.Unsetenv("STRIPE_WEBHOOK_SECRET")

	router := setupRouter()
	stripeWebhookRoute(router)

	post := func(payload []byte, sig string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/payments/webhook", strings.NewReader(string(payload)))
		if sig != "" {
			req.Header.Set("Stripe-Signature", sig)
		}
		router.ServeHTTP(w, req)
		return w
	}

	completedEvent := []byte(fmt.Sprintf(`{
		"id": "evt_1",
		"object": "event",
		"api_version": %q,
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_test_1", "object": "checkout.session", "metadata": {"booking_id": "42"}}}
	}`, stripe.APIVersion))

	s.Run("Should reject an unsigned payload", func() {
		mock := s.freshMock()

		w := post(completedEvent, "")

		assert.Equal(s.T(), 400, w.Code)
		assert.Nil(s.T(), mock.ExpectationsWereMet())
	})

	s.Run("Should reject a payload signed with the wrong secret", func() {
		mock := s.freshMock()

		w := post(completedEvent, signStripePayload(completedEvent, "whsec_other", time.Now()))

		assert.Equal(s.T(), 400, w.Code)
		assert.Nil(s.T(), mock.ExpectationsWereMet())
	})

	s.Run("Should mark the booking Paid on a signed completion", func() {
		mock := s.freshMock()
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "bookings"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		w := post(completedEvent, signStripePayload(completedEvent, whsecret, time.Now()))

		assert.Equal(s.T(), 200, w.Code)
		body, err := io.ReadAll(w.Body)
		assert.Nil(s.T(), err)
		assert.True(s.T(), gjson.GetBytes(body, "received").Bool())
		assert.Nil(s.T(), mock.ExpectationsWereMet())
	})

	s.Run("Should acknowledge signed but unhandled event types", func() {
		mock := s.freshMock()
		payload := []byte(fmt.Sprintf(`{"id": "evt_2", "object": "event", "api_version": %q, "type": "invoice.paid", "data": {"object": {}}}`, stripe.APIVersion))

		w := post(payload, signStripePayload(payload, whsecret, time.Now()))

		assert.Equal(s.T(), 200, w.Code)
		assert.Nil(s.T(), mock.ExpectationsWereMet())
	})
}

func TestRunner(t *testing.T) {
	suite.Run(t, new(TestSuite))
}
