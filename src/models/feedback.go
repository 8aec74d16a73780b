package models

import (
	"time"

	"hbs/src/types"
)

type Feedback struct {
	ID        uint                   `gorm:"primarykey" json:"id"`
	UserID    uint                   `gorm:"uniqueIndex:idx_feedback_user_booking,where:booking_id IS NOT NULL" json:"user_id,omitempty"`
	BookingID *uint                  `gorm:"uniqueIndex:idx_feedback_user_booking,where:booking_id IS NOT NULL" json:"booking_id,omitempty"`
	Rating    uint                   `json:"rating,omitempty"`
	Comment   string                 `json:"comment,omitempty"`
	Category  types.FeedbackCategory `gorm:"default:'Overall'" json:"category,omitempty"`
	Status    types.FeedbackStatus   `gorm:"default:'Approved'" json:"status,omitempty"`

	AdminReply *string    `json:"admin_reply,omitempty"`
	RepliedAt  *time.Time `json:"replied_at,omitempty"`
	RepliedBy  *uint      `json:"replied_by,omitempty"`

	User    *User    `gorm:"foreignKey:user_id" json:"user,omitempty"`
	Booking *Booking `gorm:"foreignKey:booking_id" json:"booking,omitempty"`

	types.Timestamps
}
