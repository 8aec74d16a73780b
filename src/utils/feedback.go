package utils

import (
	"context"
	"errors"
	"time"

	"hbs/src/db"
	"hbs/src/models"
	"hbs/src/types"

	"gorm.io/gorm"
)

// SubmitFeedback stores a rating/comment, optionally tied to one of the
// submitter's bookings. One feedback per (user, booking) pair.
func SubmitFeedback(ctx context.Context, userID uint, params *types.SubmitFeedbackRequestBody) (*models.Feedback, error) {
	if params.Rating < 1 || params.Rating > 5 {
		return nil, ValidationError("rating must be between 1 and 5")
	}
	category := types.CATEGORY_OVERALL
	if params.Category != nil {
		if !params.Category.Valid() {
			return nil, ValidationError("unknown feedback category: %s", *params.Category)
		}
		category = *params.Category
	}

	feedback := models.Feedback{
		UserID:    userID,
		BookingID: params.BookingID,
		Rating:    params.Rating,
		Comment:   params.Comment,
		Category:  category,
		Status:    types.FEEDBACK_APPROVED,
	}
	d := db.GetDb().WithContext(ctx)
	err := d.Transaction(func(tx *gorm.DB) error {
		if params.BookingID != nil {
			var booking models.Booking
			if err := tx.
				Model(&models.Booking{}).
				Where(&models.Booking{ID: *params.BookingID, UserID: userID}).
				First(&booking).
				Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return NotFoundError("booking [%d] not found or access denied", *params.BookingID)
				}
				return err
			}
			var count int64
			if err := tx.
				Model(&models.Feedback{}).
				Where("user_id = ? AND booking_id = ?", userID, *params.BookingID).
				Count(&count).
				Error; err != nil {
				return err
			}
			if count > 0 {
				return ConflictError("feedback already submitted for booking [%d]", *params.BookingID)
			}
		}
		if err := tx.Create(&feedback).Error; err != nil {
			return err
		}
		if err := tx.
			Model(&models.Feedback{}).
			Where(&models.Feedback{ID: feedback.ID}).
			Preload("User").
			First(&feedback).
			Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}

func UpdateFeedback(ctx context.Context, feedbackID uint, requesterID uint, params *types.UpdateFeedbackRequestBody) (*models.Feedback, error) {
	if params.Rating != nil && (*params.Rating < 1 || *params.Rating > 5) {
		return nil, ValidationError("rating must be between 1 and 5")
	}
	if params.Category != nil && !params.Category.Valid() {
		return nil, ValidationError("unknown feedback category: %s", *params.Category)
	}
	var feedback models.Feedback
	d := db.GetDb().WithContext(ctx)
	err := d.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.Feedback{}).
			Where(&models.Feedback{ID: feedbackID}).
			First(&feedback).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundError("feedback [%d] not found", feedbackID)
			}
			return err
		}
		if feedback.UserID != requesterID {
			return ForbiddenError("feedback [%d] does not belong to requester", feedbackID)
		}
		updates := map[string]any{}
		if params.Rating != nil {
			updates["rating"] = *params.Rating
		}
		if params.Comment != nil {
			updates["comment"] = *params.Comment
		}
		if params.Category != nil {
			updates["category"] = *params.Category
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.
			Model(&models.Feedback{}).
			Where(&models.Feedback{ID: feedbackID}).
			Updates(updates).
			Error; err != nil {
			return err
		}
		if err := tx.
			Model(&models.Feedback{}).
			Where(&models.Feedback{ID: feedbackID}).
			First(&feedback).
			Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}

func DeleteFeedback(ctx context.Context, feedbackID uint, requesterID uint) error {
	d := db.GetDb().WithContext(ctx)
	return d.Transaction(func(tx *gorm.DB) error {
		var feedback models.Feedback
		if err := tx.
			Model(&models.Feedback{}).
			Where(&models.Feedback{ID: feedbackID}).
			First(&feedback).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundError("feedback [%d] not found", feedbackID)
			}
			return err
		}
		if feedback.UserID != requesterID {
			return ForbiddenError("feedback [%d] does not belong to requester", feedbackID)
		}
		return tx.Delete(&models.Feedback{}, feedbackID).Error
	})
}

func ListUserFeedback(ctx context.Context, userID uint) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	d := db.GetDb().WithContext(ctx)
	if err := d.
		Model(&models.Feedback{}).
		Where(&models.Feedback{UserID: userID}).
		Preload("Booking").
		Order("created_at DESC").
		Find(&feedbacks).
		Error; err != nil {
		return nil, err
	}
	return feedbacks, nil
}

// ListApprovedFeedback is the public, paginated view. Only Approved entries
// are visible.
func ListApprovedFeedback(ctx context.Context, page, limit int) ([]models.Feedback, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	var feedbacks []models.Feedback
	var total int64
	d := db.GetDb().WithContext(ctx)
	if err := d.
		Model(&models.Feedback{}).
		Where(&models.Feedback{Status: types.FEEDBACK_APPROVED}).
		Count(&total).
		Error; err != nil {
		return nil, 0, err
	}
	if err := d.
		Model(&models.Feedback{}).
		Where(&models.Feedback{Status: types.FEEDBACK_APPROVED}).
		Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&feedbacks).
		Error; err != nil {
		return nil, 0, err
	}
	return feedbacks, total, nil
}

func ListAllFeedback(ctx context.Context) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	d := db.GetDb().WithContext(ctx)
	if err := d.
		Model(&models.Feedback{}).
		Preload("User").
		Preload("Booking").
		Order("created_at DESC").
		Find(&feedbacks).
		Error; err != nil {
		return nil, err
	}
	return feedbacks, nil
}

// ReplyFeedback attaches an admin response.
func ReplyFeedback(ctx context.Context, feedbackID uint, responderID uint, reply string) (*models.Feedback, error) {
	var feedback models.Feedback
	now := time.Now()
	d := db.GetDb().WithContext(ctx)
	err := d.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.Feedback{}).
			Where(&models.Feedback{ID: feedbackID}).
			First(&feedback).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundError("feedback [%d] not found", feedbackID)
			}
			return err
		}
		if err := tx.
			Model(&models.Feedback{}).
			Where(&models.Feedback{ID: feedbackID}).
			Updates(&models.Feedback{AdminReply: &reply, RepliedAt: &now, RepliedBy: &responderID}).
			Error; err != nil {
			return err
		}
		if err := tx.
			Model(&models.Feedback{}).
			Where(&models.Feedback{ID: feedbackID}).
			Preload("User").
			First(&feedback).
			Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}

func SetFeedbackStatus(ctx context.Context, feedbackID uint, status types.FeedbackStatus) (*models.Feedback, error) {
	if !status.Valid() {
		return nil, ValidationError("unknown feedback status: %s", status)
	}
	var feedback models.Feedback
	d := db.GetDb().WithContext(ctx)
	res := d.
		Model(&models.Feedback{}).
		Where(&models.Feedback{ID: feedbackID}).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, NotFoundError("feedback [%d] not found", feedbackID)
	}
	if err := d.
		Model(&models.Feedback{}).
		Where(&models.Feedback{ID: feedbackID}).
		First(&feedback).
		Error; err != nil {
		return nil, err
	}
	return &feedback, nil
}
