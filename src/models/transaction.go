package models

import (
	"booktrack/src/types"

	"github.com/google/uuid"
)

// PaymentTransaction is keyed by the processor-assigned checkout session id;
// at most one row exists per session. A booking may accumulate several
// transactions (retried checkouts), but only a transaction reaching paid has
// authority to mark the booking paid.
type PaymentTransaction struct {
	ID            string              `gorm:"primarykey" json:"id"`
	SessionID     string              `gorm:"uniqueIndex" json:"session_id"`
	BookingID     string              `gorm:"index" json:"booking_id"`
	UserID        string              `json:"user_id"`
	Amount        float64             `json:"amount"`
	Currency      string              `json:"currency"`
	PaymentStatus types.PaymentStatus `json:"payment_status"`
	Metadata      types.Metadata      `gorm:"type:jsonb" json:"metadata,omitempty"`

	types.Timestamps
}

func NewPendingTransaction(sessionID string, booking *Booking, userID, currency string) *PaymentTransaction {
	return &PaymentTransaction{
		ID:            uuid.NewString(),
		SessionID:     sessionID,
		BookingID:     booking.ID,
		UserID:        userID,
		Amount:        booking.Amount,
		Currency:      currency,
		PaymentStatus: types.PAYMENT_PENDING,
		Metadata: types.Metadata{
			"booking_id": booking.ID,
			"user_id":    userID,
		},
	}
}
