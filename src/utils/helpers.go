package utils

import (
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"hbs/src/lib"
	"hbs/src/models"
	"hbs/src/types"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

func GenerateJWT(email string, id uint, role string) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &types.Claims{
		Username: email,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(int(id)),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

func IsProd() bool {
	return os.Getenv("API_ENV") == "production"
}

// NewBookingReference is the confirmation code guests quote at the desk.
func NewBookingReference() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}

// CalculateNights rounds a partial last day up, matching the billing rule
// totalPrice = price x ceil((checkOut - checkIn) / day).
func CalculateNights(checkIn, checkOut time.Time) uint {
	if !checkOut.After(checkIn) {
		return 0
	}
	hours := checkOut.Sub(checkIn).Hours()
	return uint(math.Ceil(hours / 24))
}

func CalculateTotalPrice(pricePerNight float64, checkIn, checkOut time.Time) float64 {
	return pricePerNight * float64(CalculateNights(checkIn, checkOut))
}

func RoundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}

// SendBookingConfirmation mails the booking summary. Callers run it on a
// goroutine; a missing SMTP config only logs.
func SendBookingConfirmation(booking *models.Booking) {
	if os.Getenv("SMTP_HOST") == "" {
		return
	}
	if booking.User == nil || booking.Room == nil {
		return
	}
	body := "Hi " + booking.User.Name + ",\n\n" +
		"Your booking for " + booking.Room.Name + " from " +
		booking.CheckIn.Format("2006-01-02") + " to " + booking.CheckOut.Format("2006-01-02") +
		" has been received and is pending confirmation.\n\n" +
		"Reference: " + booking.Reference + "\n"
	err := lib.SendMail(&lib.SendMailInput{
		From:     os.Getenv("SMTP_FROM"),
		FromName: "Reservations",
		To:       []string{booking.User.Email},
		Subject:  "Booking received",
		Body:     body,
	})
	if err != nil {
		log.Printf("Error sending booking confirmation for Booking [%d]: %s\n", booking.ID, err.Error())
	}
}
