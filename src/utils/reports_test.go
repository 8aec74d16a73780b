package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodStart(t *testing.T) {
	now := time.Date(2024, time.June, 15, 13, 45, 30, 0, time.UTC)

	assert.Equal(t, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), PeriodStart("daily", now))
	assert.Equal(t, now.AddDate(0, 0, -7), PeriodStart("weekly", now))
	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), PeriodStart("monthly", now))
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), PeriodStart("yearly", now))

	// Unknown periods fall back to yearly.
	assert.Equal(t, PeriodStart("yearly", now), PeriodStart("quarterly", now))
	assert.Equal(t, PeriodStart("yearly", now), PeriodStart("", now))

	// Case insensitive.
	assert.Equal(t, PeriodStart("daily", now), PeriodStart("Daily", now))
}

func TestOccupancyRate(t *testing.T) {
	assert.Equal(t, 0.0, OccupancyRate(0, 0, 0))
	assert.Equal(t, 0.0, OccupancyRate(0, 0, 10))
	assert.Equal(t, 50.0, OccupancyRate(3, 2, 10))
	assert.Equal(t, 100.0, OccupancyRate(8, 2, 10))
	assert.Equal(t, 33.3, OccupancyRate(1, 0, 3))
}

func TestAverageBookingValue(t *testing.T) {
	assert.Equal(t, 0.0, AverageBookingValue(0, 0))
	assert.Equal(t, 0.0, AverageBookingValue(500, 0))
	assert.Equal(t, 250.0, AverageBookingValue(500, 2))
}
