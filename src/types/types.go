package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

// StringArray stores amenities and image references as a jsonb column.
type StringArray []string

func (a StringArray) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *StringArray) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type RoomType string

const (
	ROOM_STANDARD     RoomType = "Standard"
	ROOM_DELUXE       RoomType = "Deluxe"
	ROOM_EXECUTIVE    RoomType = "Executive"
	ROOM_SUITE        RoomType = "Suite"
	ROOM_PRESIDENTIAL RoomType = "Presidential"
)

func (t RoomType) Valid() bool {
	switch t {
	case ROOM_STANDARD, ROOM_DELUXE, ROOM_EXECUTIVE, ROOM_SUITE, ROOM_PRESIDENTIAL:
		return true
	}
	return false
}

type RoomStatus string

const (
	ROOM_AVAILABLE   RoomStatus = "Available"
	ROOM_OCCUPIED    RoomStatus = "Occupied"
	ROOM_RESERVED    RoomStatus = "Reserved"
	ROOM_MAINTENANCE RoomStatus = "Maintenance"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case ROOM_AVAILABLE, ROOM_OCCUPIED, ROOM_RESERVED, ROOM_MAINTENANCE:
		return true
	}
	return false
}

type BookingStatus string

const (
	BOOKING_PENDING     BookingStatus = "Pending"
	BOOKING_CONFIRMED   BookingStatus = "Confirmed"
	BOOKING_CHECKED_IN  BookingStatus = "Checked-in"
	BOOKING_CHECKED_OUT BookingStatus = "Checked-out"
	BOOKING_CANCELLED   BookingStatus = "Cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BOOKING_PENDING, BOOKING_CONFIRMED, BOOKING_CHECKED_IN, BOOKING_CHECKED_OUT, BOOKING_CANCELLED:
		return true
	}
	return false
}

// Terminal statuses release the room and accept no further transitions.
func (s BookingStatus) Terminal() bool {
	return s == BOOKING_CHECKED_OUT || s == BOOKING_CANCELLED
}

// CanTransition enforces the booking lifecycle:
//
//	Pending -> Confirmed -> Checked-in -> Checked-out
//	Pending/Confirmed/Checked-in -> Cancelled
func (s BookingStatus) CanTransition(to BookingStatus) bool {
	switch s {
	case BOOKING_PENDING:
		return to == BOOKING_CONFIRMED || to == BOOKING_CANCELLED
	case BOOKING_CONFIRMED:
		return to == BOOKING_CHECKED_IN || to == BOOKING_CANCELLED
	case BOOKING_CHECKED_IN:
		return to == BOOKING_CHECKED_OUT || to == BOOKING_CANCELLED
	}
	return false
}

// RevenueEligible reports whether a booking counts toward revenue figures.
func (s BookingStatus) RevenueEligible() bool {
	return s == BOOKING_CONFIRMED || s == BOOKING_CHECKED_IN || s == BOOKING_CHECKED_OUT
}

// RevenueEligibleStatuses is the IN-clause form used by aggregation queries.
var RevenueEligibleStatuses = []BookingStatus{BOOKING_CONFIRMED, BOOKING_CHECKED_IN, BOOKING_CHECKED_OUT}

// NonTerminalStatuses are the statuses that still hold a room.
var NonTerminalStatuses = []BookingStatus{BOOKING_PENDING, BOOKING_CONFIRMED, BOOKING_CHECKED_IN}

type PaymentStatus string

const (
	PAYMENT_PENDING  PaymentStatus = "Pending"
	PAYMENT_PAID     PaymentStatus = "Paid"
	PAYMENT_REFUNDED PaymentStatus = "Refunded"
	PAYMENT_FAILED   PaymentStatus = "Failed"
)

type FeedbackStatus string

const (
	FEEDBACK_PENDING  FeedbackStatus = "Pending"
	FEEDBACK_APPROVED FeedbackStatus = "Approved"
	FEEDBACK_REJECTED FeedbackStatus = "Rejected"
)

func (s FeedbackStatus) Valid() bool {
	switch s {
	case FEEDBACK_PENDING, FEEDBACK_APPROVED, FEEDBACK_REJECTED:
		return true
	}
	return false
}

type FeedbackCategory string

const (
	CATEGORY_SERVICE     FeedbackCategory = "Service"
	CATEGORY_ROOM        FeedbackCategory = "Room Quality"
	CATEGORY_CLEANLINESS FeedbackCategory = "Cleanliness"
	CATEGORY_AMENITIES   FeedbackCategory = "Amenities"
	CATEGORY_LOCATION    FeedbackCategory = "Location"
	CATEGORY_OVERALL     FeedbackCategory = "Overall"
)

func (c FeedbackCategory) Valid() bool {
	switch c {
	case CATEGORY_SERVICE, CATEGORY_ROOM, CATEGORY_CLEANLINESS, CATEGORY_AMENITIES, CATEGORY_LOCATION, CATEGORY_OVERALL:
		return true
	}
	return false
}

const (
	ROLE_USER  string = "user"
	ROLE_ADMIN string = "admin"
)

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type CreateBookingRequestBody struct {
	Room            uint   `json:"room" binding:"required"`
	CheckIn         string `json:"checkIn" binding:"required,staydate"`
	CheckOut        string `json:"checkOut" binding:"required,staydate,afterdate=CheckIn"`
	Guests          uint   `json:"guests" binding:"required,min=1,max=10"`
	SpecialRequests string `json:"specialRequests,omitempty"`
}

type UpdateBookingStatusRequestBody struct {
	Status BookingStatus `json:"status" binding:"required"`
}

type CreateRoomRequestBody struct {
	Name        string   `json:"name" binding:"required"`
	Type        RoomType `json:"type" binding:"required"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Description string   `json:"description,omitempty"`
	Amenities   []string `json:"amenities,omitempty"`
	Images      []string `json:"images,omitempty"`
	Capacity    uint     `json:"capacity" binding:"required,min=1,max=10"`
	Size        string   `json:"size,omitempty"`
	BedType     string   `json:"bedType,omitempty"`
}

type UpdateRoomRequestBody struct {
	Name        *string     `json:"name,omitempty"`
	Type        *RoomType   `json:"type,omitempty"`
	Price       *float64    `json:"price,omitempty"`
	Description *string     `json:"description,omitempty"`
	Amenities   *[]string   `json:"amenities,omitempty"`
	Images      *[]string   `json:"images,omitempty"`
	Status      *RoomStatus `json:"status,omitempty"`
	Capacity    *uint       `json:"capacity,omitempty"`
	Size        *string     `json:"size,omitempty"`
	BedType     *string     `json:"bedType,omitempty"`
}

type SubmitFeedbackRequestBody struct {
	Rating    uint              `json:"rating" binding:"required,min=1,max=5"`
	Comment   string            `json:"comment,omitempty" binding:"omitempty,max=1000"`
	Category  *FeedbackCategory `json:"category,omitempty"`
	BookingID *uint             `json:"bookingId,omitempty"`
}

type UpdateFeedbackRequestBody struct {
	Rating   *uint             `json:"rating,omitempty" binding:"omitempty,min=1,max=5"`
	Comment  *string           `json:"comment,omitempty" binding:"omitempty,max=1000"`
	Category *FeedbackCategory `json:"category,omitempty"`
}

type FeedbackReplyRequestBody struct {
	AdminReply string `json:"adminReply" binding:"required"`
}

type UpdateFeedbackStatusRequestBody struct {
	Status FeedbackStatus `json:"status" binding:"required"`
}

type PaginationQuery struct {
	Page  int `form:"page,default=1" binding:"omitempty,min=1"`
	Limit int `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
}

type ReportsQuery struct {
	Period string `form:"period,default=yearly"`
}

type RegisterRequestBody struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
