package models

import (
	"booktrack/src/types"

	"github.com/google/uuid"
)

type Review struct {
	ID        string `gorm:"primarykey" json:"id"`
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	ServiceID string `gorm:"index" json:"service_id"`
	BookingID string `gorm:"uniqueIndex" json:"booking_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`

	types.Timestamps
}

func NewReview(user *User, body *types.CreateReviewRequestBody) *Review {
	return &Review{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		UserName:  user.Name,
		ServiceID: body.ServiceID,
		BookingID: body.BookingID,
		Rating:    body.Rating,
		Comment:   body.Comment,
	}
}
