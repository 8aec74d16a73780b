package utils

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(value string) time.Time {
	d, _ := time.Parse("2006-01-02", value)
	return d
}

func TestCalculateNights(t *testing.T) {
	assert.Equal(t, uint(3), CalculateNights(date("2024-01-01"), date("2024-01-04")))
	assert.Equal(t, uint(1), CalculateNights(date("2024-01-01"), date("2024-01-02")))

	// Partial last day bills as a full night.
	checkIn := date("2024-01-01")
	checkOut := checkIn.Add(36 * time.Hour)
	assert.Equal(t, uint(2), CalculateNights(checkIn, checkOut))

	assert.Equal(t, uint(0), CalculateNights(date("2024-01-04"), date("2024-01-04")))
	assert.Equal(t, uint(0), CalculateNights(date("2024-01-04"), date("2024-01-01")))
}

func TestCalculateTotalPrice(t *testing.T) {
	assert.Equal(t, 300.0, CalculateTotalPrice(100, date("2024-01-01"), date("2024-01-04")))
	assert.Equal(t, 0.0, CalculateTotalPrice(100, date("2024-01-04"), date("2024-01-04")))
	assert.Equal(t, 179.8, CalculateTotalPrice(89.9, date("2024-03-10"), date("2024-03-12")))
}

func TestNewBookingReference(t *testing.T) {
	a := NewBookingReference()
	b := NewBookingReference()

	assert.Len(t, a, 12)
	assert.Equal(t, strings.ToUpper(a), a)
	assert.NotEqual(t, a, b)
}

func TestRoundTo1(t *testing.T) {
	assert.Equal(t, 4.3, RoundTo1(4.25))
	assert.Equal(t, 4.2, RoundTo1(4.24))
	assert.Equal(t, 0.0, RoundTo1(0))
	assert.Equal(t, 100.0, RoundTo1(99.99))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(ValidationError("guests exceed capacity")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFoundError("room [%d] not found", 7)))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(ForbiddenError("not your booking")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(ConflictError("room is not available")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(InvalidTransitionError("Pending", "Checked-out")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("driver: bad connection")))
}

func TestErrorMessage(t *testing.T) {
	err := NotFoundError("booking [%d] not found", 42)
	assert.Contains(t, ErrorMessage(err), "booking [42] not found")

	// Unexpected errors are masked.
	masked := ErrorMessage(errors.New("pq: relation does not exist"))
	assert.Equal(t, "Error while processing request", masked)
}
