package utils

import (
	"context"
	"errors"
	"time"

	"hbs/src/config"
	"hbs/src/db"
	"hbs/src/models"
	"hbs/src/types"

	"gorm.io/gorm"
)

// CreateBooking books an Available room for the requesting user. Room status
// and booking row commit in one transaction; the conditional room update is
// what makes two concurrent calls on the same room resolve to exactly one
// winner, the loser failing with Conflict.
func CreateBooking(ctx context.Context, userID uint, params *types.CreateBookingRequestBody) (*models.Booking, error) {
	checkIn, err := time.Parse(config.DATE_PARSE_FORMAT, params.CheckIn)
	if err != nil {
		return nil, ValidationError("invalid checkIn date: %s", params.CheckIn)
	}
	checkOut, err := time.Parse(config.DATE_PARSE_FORMAT, params.CheckOut)
	if err != nil {
		return nil, ValidationError("invalid checkOut date: %s", params.CheckOut)
	}
	if !checkOut.After(checkIn) {
		return nil, ValidationError("checkOut must be after checkIn")
	}

	var booking models.Booking
	d := db.GetDb().WithContext(ctx)
	err = d.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.
			Model(&models.Room{}).
			Where(&models.Room{ID: params.Room}).
			First(&room).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundError("room [%d] not found", params.Room)
			}
			return err
		}
		if room.Status != types.ROOM_AVAILABLE {
			return ConflictError("room is not available for booking")
		}
		if params.Guests < 1 || params.Guests > room.Capacity {
			return ValidationError("guests must be between 1 and %d for this room", room.Capacity)
		}

		res := tx.
			Model(&models.Room{}).
			Where("id = ? AND status = ?", room.ID, types.ROOM_AVAILABLE).
			Update("status", types.ROOM_RESERVED)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Lost the race to a concurrent booking.
			return ConflictError("room is not available for booking")
		}

		booking = models.Booking{
			Reference:       NewBookingReference(),
			UserID:          userID,
			RoomID:          room.ID,
			CheckIn:         checkIn,
			CheckOut:        checkOut,
			Guests:          params.Guests,
			TotalPrice:      CalculateTotalPrice(room.Price, checkIn, checkOut),
			Status:          types.BOOKING_PENDING,
			SpecialRequests: params.SpecialRequests,
			PaymentStatus:   types.PAYMENT_PENDING,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		if err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: booking.ID}).
			Preload("User").
			Preload("Room").
			First(&booking).
			Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// CancelBooking cancels the requester's booking, or anyone's when the
// requester is an admin. The room release runs unconditionally: even a room
// that was since moved on must not stay held by a cancelled booking.
func CancelBooking(ctx context.Context, bookingID uint, requesterID uint, requesterRole string) (*models.Booking, error) {
	var booking models.Booking
	d := db.GetDb().WithContext(ctx)
	err := d.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: bookingID}).
			First(&booking).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundError("booking [%d] not found", bookingID)
			}
			return err
		}
		if booking.UserID != requesterID && requesterRole != types.ROLE_ADMIN {
			return ForbiddenError("booking [%d] does not belong to requester", bookingID)
		}
		if booking.Status.Terminal() {
			return ConflictError("booking [%d] is already %s", bookingID, booking.Status)
		}
		if err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: bookingID}).
			Update("status", types.BOOKING_CANCELLED).
			Error; err != nil {
			return err
		}
		if err := tx.
			Model(&models.Room{}).
			Where("id = ?", booking.RoomID).
			Update("status", types.ROOM_AVAILABLE).
			Error; err != nil {
			return err
		}
		booking.Status = types.BOOKING_CANCELLED
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// roomStatusAfter maps a booking transition to the room side effect. Empty
// means the room keeps its current status. Canonical mapping: a non-terminal
// booking holds the room (Pending/Confirmed as Reserved, Checked-in as
// Occupied); terminal statuses release it.
func roomStatusAfter(to types.BookingStatus) types.RoomStatus {
	switch to {
	case types.BOOKING_CHECKED_IN:
		return types.ROOM_OCCUPIED
	case types.BOOKING_CHECKED_OUT, types.BOOKING_CANCELLED:
		return types.ROOM_AVAILABLE
	}
	return ""
}

// TransitionBookingStatus advances a booking along the strict lifecycle
// graph. Illegal jumps fail with InvalidTransition; the room side effect
// commits in the same transaction as the status change.
func TransitionBookingStatus(ctx context.Context, bookingID uint, newStatus types.BookingStatus) (*models.Booking, error) {
	if !newStatus.Valid() {
		return nil, ValidationError("unknown booking status: %s", newStatus)
	}
	var booking models.Booking
	d := db.GetDb().WithContext(ctx)
	err := d.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: bookingID}).
			First(&booking).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundError("booking [%d] not found", bookingID)
			}
			return err
		}
		if !booking.Status.CanTransition(newStatus) {
			return InvalidTransitionError(booking.Status, newStatus)
		}
		if err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: bookingID}).
			Update("status", newStatus).
			Error; err != nil {
			return err
		}
		if rs := roomStatusAfter(newStatus); rs != "" {
			if err := tx.
				Model(&models.Room{}).
				Where("id = ?", booking.RoomID).
				Update("status", rs).
				Error; err != nil {
				return err
			}
		}
		booking.Status = newStatus
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := d.
		Model(&models.Booking{}).
		Where(&models.Booking{ID: bookingID}).
		Preload("User").
		Preload("Room").
		First(&booking).
		Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// GetBooking is an ownership-checked read: owner or admin only.
func GetBooking(ctx context.Context, bookingID uint, requesterID uint, requesterRole string) (*models.Booking, error) {
	var booking models.Booking
	d := db.GetDb().WithContext(ctx)
	if err := d.
		Model(&models.Booking{}).
		Where(&models.Booking{ID: bookingID}).
		Preload("User").
		Preload("Room").
		First(&booking).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("booking [%d] not found", bookingID)
		}
		return nil, err
	}
	if booking.UserID != requesterID && requesterRole != types.ROLE_ADMIN {
		return nil, ForbiddenError("booking [%d] does not belong to requester", bookingID)
	}
	return &booking, nil
}

func ListUserBookings(ctx context.Context, userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	d := db.GetDb().WithContext(ctx)
	if err := d.
		Model(&models.Booking{}).
		Where(&models.Booking{UserID: userID}).
		Preload("Room").
		Order("created_at DESC").
		Find(&bookings).
		Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func ListAllBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	d := db.GetDb().WithContext(ctx)
	if err := d.
		Model(&models.Booking{}).
		Preload("User").
		Preload("Room").
		Order("created_at DESC").
		Find(&bookings).
		Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// MarkBookingPayment updates the payment axis only. Lifecycle status is not
// touched: payment and booking status are independent.
func MarkBookingPayment(ctx context.Context, bookingID uint, status types.PaymentStatus, ref *string) error {
	d := db.GetDb().WithContext(ctx)
	updates := &models.Booking{PaymentStatus: status, PaymentRef: ref}
	res := d.
		Model(&models.Booking{}).
		Where(&models.Booking{ID: bookingID}).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return NotFoundError("booking [%d] not found", bookingID)
	}
	return nil
}

// ExpireStalePendingBookings cancels Pending bookings older than the hold
// window and releases their rooms. Runs from the scheduler; one transaction
// per sweep.
func ExpireStalePendingBookings(holdWindow time.Duration) (int, error) {
	cutoff := time.Now().Add(-holdWindow)
	var expired []models.Booking
	d := db.GetDb()
	err := d.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.Booking{}).
			Where("status = ? AND created_at < ?", types.BOOKING_PENDING, cutoff).
			Find(&expired).
			Error; err != nil {
			return err
		}
		if len(expired) == 0 {
			return nil
		}
		ids := make([]uint, 0, len(expired))
		roomIds := make([]uint, 0, len(expired))
		for _, b := range expired {
			ids = append(ids, b.ID)
			roomIds = append(roomIds, b.RoomID)
		}
		if err := tx.
			Model(&models.Booking{}).
			Where("id IN ?", ids).
			Update("status", types.BOOKING_CANCELLED).
			Error; err != nil {
			return err
		}
		if err := tx.
			Model(&models.Room{}).
			Where("id IN ? AND status = ?", roomIds, types.ROOM_RESERVED).
			Update("status", types.ROOM_AVAILABLE).
			Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(expired), nil
}
