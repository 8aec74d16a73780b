package models

import (
	"time"

	"hbs/src/types"
)

type Booking struct {
	ID              uint                `gorm:"primarykey" json:"id"`
	Reference       string              `gorm:"uniqueIndex" json:"reference,omitempty"`
	UserID          uint                `json:"user_id,omitempty"`
	RoomID          uint                `json:"room_id,omitempty"`
	CheckIn         time.Time           `json:"check_in,omitempty"`
	CheckOut        time.Time           `json:"check_out,omitempty"`
	Guests          uint                `json:"guests,omitempty"`
	TotalPrice      float64             `json:"total_price,omitempty"`
	Status          types.BookingStatus `gorm:"default:'Pending'" json:"status,omitempty"`
	SpecialRequests string              `json:"special_requests,omitempty"`
	PaymentStatus   types.PaymentStatus `gorm:"default:'Pending'" json:"payment_status,omitempty"`
	PaymentRef      *string             `json:"-"`

	User *User `gorm:"foreignKey:user_id" json:"user,omitempty"`
	Room *Room `gorm:"foreignKey:room_id" json:"room,omitempty"`

	types.Timestamps
}
