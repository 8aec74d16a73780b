package utils

import (
	"context"
	"errors"

	"hbs/src/db"
	"hbs/src/models"
	"hbs/src/types"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

func CreateRoom(ctx context.Context, params *types.CreateRoomRequestBody) (*models.Room, error) {
	if !params.Type.Valid() {
		return nil, ValidationError("unknown room type: %s", params.Type)
	}
	room := models.Room{
		Name:        params.Name,
		Slug:        slug.Make(params.Name),
		Type:        params.Type,
		Price:       params.Price,
		Description: params.Description,
		Amenities:   params.Amenities,
		Images:      params.Images,
		Status:      types.ROOM_AVAILABLE,
		Capacity:    params.Capacity,
		Size:        params.Size,
		BedType:     params.BedType,
	}
	d := db.GetDb().WithContext(ctx)
	err := d.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.
			Model(&models.Room{}).
			Where("name = ?", params.Name).
			Count(&count).
			Error; err != nil {
			return err
		}
		if count > 0 {
			return ConflictError("room name [%s] already exists", params.Name)
		}
		if err := tx.Create(&room).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func UpdateRoom(ctx context.Context, roomID uint, params *types.UpdateRoomRequestBody) (*models.Room, error) {
	if params.Type != nil && !params.Type.Valid() {
		return nil, ValidationError("unknown room type: %s", *params.Type)
	}
	if params.Status != nil && !params.Status.Valid() {
		return nil, ValidationError("unknown room status: %s", *params.Status)
	}
	if params.Price != nil && *params.Price < 0 {
		return nil, ValidationError("price must not be negative")
	}
	if params.Capacity != nil && (*params.Capacity < 1 || *params.Capacity > 10) {
		return nil, ValidationError("capacity must be between 1 and 10")
	}

	var room models.Room
	d := db.GetDb().WithContext(ctx)
	err := d.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.Room{}).
			Where(&models.Room{ID: roomID}).
			First(&room).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundError("room [%d] not found", roomID)
			}
			return err
		}
		updates := map[string]any{}
		if params.Name != nil {
			updates["name"] = *params.Name
			updates["slug"] = slug.Make(*params.Name)
		}
		if params.Type != nil {
			updates["type"] = *params.Type
		}
		if params.Price != nil {
			updates["price"] = *params.Price
		}
		if params.Description != nil {
			updates["description"] = *params.Description
		}
		if params.Amenities != nil {
			updates["amenities"] = types.StringArray(*params.Amenities)
		}
		if params.Images != nil {
			updates["images"] = types.StringArray(*params.Images)
		}
		if params.Status != nil {
			updates["status"] = *params.Status
		}
		if params.Capacity != nil {
			updates["capacity"] = *params.Capacity
		}
		if params.Size != nil {
			updates["size"] = *params.Size
		}
		if params.BedType != nil {
			updates["bed_type"] = *params.BedType
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.
			Model(&models.Room{}).
			Where(&models.Room{ID: roomID}).
			Updates(updates).
			Error; err != nil {
			return err
		}
		if err := tx.
			Model(&models.Room{}).
			Where(&models.Room{ID: roomID}).
			First(&room).
			Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// DeleteRoom refuses to delete a room still referenced by non-terminal
// bookings; those must be cancelled or completed first.
func DeleteRoom(ctx context.Context, roomID uint) error {
	d := db.GetDb().WithContext(ctx)
	return d.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.
			Model(&models.Room{}).
			Where(&models.Room{ID: roomID}).
			First(&room).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundError("room [%d] not found", roomID)
			}
			return err
		}
		var active int64
		if err := tx.
			Model(&models.Booking{}).
			Where("room_id = ? AND status IN ?", roomID, types.NonTerminalStatuses).
			Count(&active).
			Error; err != nil {
			return err
		}
		if active > 0 {
			return ConflictError("room [%d] has %d active bookings", roomID, active)
		}
		if err := tx.Delete(&models.Room{}, roomID).Error; err != nil {
			return err
		}
		return nil
	})
}

func GetRoom(ctx context.Context, roomID uint) (*models.Room, error) {
	var room models.Room
	d := db.GetDb().WithContext(ctx)
	if err := d.
		Model(&models.Room{}).
		Where(&models.Room{ID: roomID}).
		First(&room).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("room [%d] not found", roomID)
		}
		return nil, err
	}
	return &room, nil
}

func ListRooms(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	d := db.GetDb().WithContext(ctx)
	if err := d.
		Model(&models.Room{}).
		Order("created_at DESC").
		Find(&rooms).
		Error; err != nil {
		return nil, err
	}
	return rooms, nil
}
