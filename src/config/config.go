package config

import (
	"fmt"
	"os"
	"strconv"
)

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

const DATE_PARSE_FORMAT = "2006-01-02"

// RequestTimeoutSeconds bounds database work per API call. A timeout surfaces
// to the caller as a failure and is never retried here: CreateBooking is not
// idempotent.
const RequestTimeoutSeconds = 5

// DemoMode gates sample-room seeding at boot. Nothing outside boot reads it.
func DemoMode() bool {
	v, err := strconv.ParseBool(os.Getenv("DEMO_MODE"))
	if err != nil {
		return false
	}
	return v
}

// PendingHoldMinutes is how long a Pending booking may hold its room before
// the background sweep cancels it and releases the room.
func PendingHoldMinutes() int {
	v, err := strconv.Atoi(os.Getenv("PENDING_HOLD_MINUTES"))
	if err != nil || v <= 0 {
		return 30
	}
	return v
}
