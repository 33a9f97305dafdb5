package common

import (
	"booktrack/src/db"
	"booktrack/src/models"
	"booktrack/src/types"
	"booktrack/src/utils"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// CreateReview enforces the review invariants: reviewer owns the booking,
// the booking is completed, and a booking is reviewed at most once.
func CreateReview(current *models.User, body *types.CreateReviewRequestBody) (*models.Review, error) {
	if current.Role != types.ROLE_CUSTOMER {
		return nil, fmt.Errorf("only customers can create reviews: %w", types.ErrForbidden)
	}
	db := db.GetDb()
	var booking models.Booking
	if err := db.
		Where(&models.Booking{ID: body.BookingID}).
		First(&booking).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("booking %s: %w", body.BookingID, types.ErrNotFound)
		}
		return nil, err
	}
	if booking.UserID != current.ID {
		return nil, fmt.Errorf("not your booking: %w", types.ErrForbidden)
	}
	if booking.Status != types.BOOKING_COMPLETED {
		return nil, fmt.Errorf("can only review completed bookings: %w", types.ErrConflict)
	}

	var count int64
	if err := db.
		Model(&models.Review{}).
		Where(&models.Review{BookingID: body.BookingID}).
		Count(&count).
		Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("already reviewed: %w", types.ErrConflict)
	}

	review := models.NewReview(current, body)
	if err := db.Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

func ServiceReviews(serviceID string) ([]models.Review, error) {
	db := db.GetDb()
	var reviews []models.Review
	err := db.
		Where(&models.Review{ServiceID: serviceID}).
		Order("created_at DESC").
		Find(&reviews).
		Error
	return reviews, err
}

// RatingSummary reports the aggregate rating for a service: mean rounded to
// one decimal place, zero when unreviewed.
func RatingSummary(serviceID string) (float64, int, error) {
	db := db.GetDb()
	var reviews []models.Review
	if err := db.
		Where(&models.Review{ServiceID: serviceID}).
		Find(&reviews).
		Error; err != nil {
		return 0, 0, err
	}
	avg, count := utils.AverageRating(reviews)
	return avg, count, nil
}
