package models

import "hbs/src/types"

type User struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	Name     string `json:"name,omitempty"`
	Email    string `gorm:"uniqueIndex" json:"email,omitempty"`
	Password string `json:"-"`
	Role     string `gorm:"default:'user'" json:"role,omitempty"`

	Bookings  []Booking  `gorm:"foreignKey:user_id" json:"bookings,omitempty"`
	Feedbacks []Feedback `gorm:"foreignKey:user_id" json:"feedbacks,omitempty"`

	types.Timestamps
}
