package models

import "hbs/src/types"

type Room struct {
	ID          uint              `gorm:"primarykey" json:"id"`
	Name        string            `gorm:"uniqueIndex" json:"name,omitempty"`
	Slug        string            `json:"slug,omitempty"`
	Type        types.RoomType    `json:"type,omitempty"`
	Price       float64           `json:"price,omitempty"`
	Description string            `gorm:"default:'Comfortable and well-appointed room for your stay.'" json:"description,omitempty"`
	Amenities   types.StringArray `gorm:"type:jsonb" json:"amenities,omitempty"`
	Images      types.StringArray `gorm:"type:jsonb" json:"images,omitempty"`
	Status      types.RoomStatus  `gorm:"default:'Available'" json:"status,omitempty"`
	Capacity    uint              `gorm:"default:2" json:"capacity,omitempty"`
	Size        string            `gorm:"default:'Standard'" json:"size,omitempty"`
	BedType     string            `gorm:"default:'Queen Bed'" json:"bed_type,omitempty"`

	Bookings []Booking `gorm:"foreignKey:room_id" json:"bookings,omitempty"`

	types.Timestamps
}
