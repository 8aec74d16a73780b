package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusTransitions(t *testing.T) {
	allowed := []struct {
		from BookingStatus
		to   BookingStatus
	}{
		{BOOKING_PENDING, BOOKING_CONFIRMED},
		{BOOKING_PENDING, BOOKING_CANCELLED},
		{BOOKING_CONFIRMED, BOOKING_CHECKED_IN},
		{BOOKING_CONFIRMED, BOOKING_CANCELLED},
		{BOOKING_CHECKED_IN, BOOKING_CHECKED_OUT},
		{BOOKING_CHECKED_IN, BOOKING_CANCELLED},
	}
	for _, tc := range allowed {
		assert.Truef(t, tc.from.CanTransition(tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	denied := []struct {
		from BookingStatus
		to   BookingStatus
	}{
		{BOOKING_PENDING, BOOKING_CHECKED_IN},
		{BOOKING_PENDING, BOOKING_CHECKED_OUT},
		{BOOKING_CONFIRMED, BOOKING_CHECKED_OUT},
		{BOOKING_CONFIRMED, BOOKING_PENDING},
		{BOOKING_CHECKED_IN, BOOKING_CONFIRMED},
		{BOOKING_CHECKED_OUT, BOOKING_CANCELLED},
		{BOOKING_CHECKED_OUT, BOOKING_PENDING},
		{BOOKING_CANCELLED, BOOKING_PENDING},
		{BOOKING_CANCELLED, BOOKING_CONFIRMED},
		{BOOKING_PENDING, BOOKING_PENDING},
	}
	for _, tc := range denied {
		assert.Falsef(t, tc.from.CanTransition(tc.to), "%s -> %s should be denied", tc.from, tc.to)
	}
}

func TestBookingStatusTerminal(t *testing.T) {
	assert.True(t, BOOKING_CHECKED_OUT.Terminal())
	assert.True(t, BOOKING_CANCELLED.Terminal())
	assert.False(t, BOOKING_PENDING.Terminal())
	assert.False(t, BOOKING_CONFIRMED.Terminal())
	assert.False(t, BOOKING_CHECKED_IN.Terminal())
}

func TestBookingStatusRevenueEligible(t *testing.T) {
	assert.False(t, BOOKING_PENDING.RevenueEligible())
	assert.False(t, BOOKING_CANCELLED.RevenueEligible())
	assert.True(t, BOOKING_CONFIRMED.RevenueEligible())
	assert.True(t, BOOKING_CHECKED_IN.RevenueEligible())
	assert.True(t, BOOKING_CHECKED_OUT.RevenueEligible())
}

func TestEnumValidation(t *testing.T) {
	assert.True(t, ROOM_DELUXE.Valid())
	assert.False(t, RoomType("Penthouse").Valid())

	assert.True(t, ROOM_MAINTENANCE.Valid())
	assert.False(t, RoomStatus("Closed").Valid())

	assert.True(t, BOOKING_CHECKED_IN.Valid())
	assert.False(t, BookingStatus("Archived").Valid())

	assert.True(t, FEEDBACK_REJECTED.Valid())
	assert.False(t, FeedbackStatus("Flagged").Valid())

	assert.True(t, CATEGORY_CLEANLINESS.Valid())
	assert.False(t, FeedbackCategory("Parking").Valid())
}
