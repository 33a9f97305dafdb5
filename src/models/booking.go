package models

import (
	"booktrack/src/types"

	"github.com/google/uuid"
)

// Booking snapshots the service price and provider identity at creation
// time. Amount never changes afterwards, whatever happens to the service.
type Booking struct {
	ID            string              `gorm:"primarykey" json:"id"`
	UserID        string              `gorm:"index" json:"user_id"`
	UserName      string              `json:"user_name"`
	ServiceID     string              `gorm:"index" json:"service_id"`
	ServiceName   string              `json:"service_name"`
	ProviderID    string              `gorm:"index" json:"provider_id"`
	ProviderName  string              `json:"provider_name"`
	Date          string              `json:"date"`
	Time          string              `json:"time"`
	Status        types.BookingStatus `json:"status"`
	PaymentStatus types.PaymentStatus `json:"payment_status"`
	Amount        float64             `json:"amount"`

	types.Timestamps
}

func NewBooking(user *User, service *Service, date, time string) *Booking {
	return &Booking{
		ID:            uuid.NewString(),
		UserID:        user.ID,
		UserName:      user.Name,
		ServiceID:     service.ID,
		ServiceName:   service.Name,
		ProviderID:    service.ProviderID,
		ProviderName:  service.ProviderName,
		Date:          date,
		Time:          time,
		Status:        types.BOOKING_PENDING,
		PaymentStatus: types.PAYMENT_PENDING,
		Amount:        service.Price,
	}
}
