package common

import (
	"booktrack/src/db"
	"booktrack/src/lib"
	"booktrack/src/models"
	"booktrack/src/models/scopes"
	"booktrack/src/types"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"
)

const BookingStatusUpdateEvent = "booking_status_update"

// Bookings owns the booking lifecycle: creation with a price/provider
// snapshot, role-gated status transitions, and visibility rules.
type Bookings struct {
	notifier lib.Broadcaster
}

func NewBookings(notifier lib.Broadcaster) *Bookings {
	return &Bookings{notifier: notifier}
}

func (b *Bookings) Create(current *models.User, body *types.CreateBookingRequestBody) (*models.Booking, error) {
	if current.Role != types.ROLE_CUSTOMER {
		return nil, fmt.Errorf("only customers can create bookings: %w", types.ErrForbidden)
	}
	db := db.GetDb()
	var service models.Service
	if err := db.
		Where(&models.Service{ID: body.ServiceID}).
		First(&service).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("service %s: %w", body.ServiceID, types.ErrNotFound)
		}
		return nil, err
	}
	booking := models.NewBooking(current, &service, body.Date, body.Time)
	if err := db.Create(booking).Error; err != nil {
		return nil, err
	}
	return booking, nil
}

// UpdateStatus applies the role/ownership gate and persists the new status.
// Providers may set any status on their own bookings; customers may only
// cancel their own; every other role is rejected. Transition legality beyond
// that is intentionally not enforced.
func (b *Bookings) UpdateStatus(current *models.User, bookingID string, status types.BookingStatus) (*models.Booking, error) {
	db := db.GetDb()
	var booking models.Booking
	if err := db.
		Scopes(scopes.WithID(bookingID)).
		First(&booking).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("booking %s: %w", bookingID, types.ErrNotFound)
		}
		return nil, err
	}

	switch current.Role {
	case types.ROLE_PROVIDER:
		if booking.ProviderID != current.ID {
			return nil, fmt.Errorf("booking belongs to another provider: %w", types.ErrForbidden)
		}
	case types.ROLE_CUSTOMER:
		if booking.UserID != current.ID {
			return nil, fmt.Errorf("booking belongs to another customer: %w", types.ErrForbidden)
		}
		if status != types.BOOKING_CANCELLED {
			return nil, fmt.Errorf("customers can only cancel bookings: %w", types.ErrForbidden)
		}
	case types.ROLE_ADMIN:
		return nil, fmt.Errorf("admins cannot change booking status: %w", types.ErrForbidden)
	default:
		return nil, fmt.Errorf("unknown role %q: %w", current.Role, types.ErrForbidden)
	}

	if err := db.
		Model(&models.Booking{}).
		Scopes(scopes.WithID(booking.ID)).
		Update("status", status).
		Error; err != nil {
		return nil, err
	}
	booking.Status = status

	// Best-effort: a failed broadcast never fails the transition.
	if b.notifier != nil {
		if err := b.notifier.Broadcast(BookingStatusUpdateEvent, map[string]string{
			"booking_id": booking.ID,
			"status":     string(status),
		}); err != nil {
			log.Printf("Error broadcasting booking status update for %s: %s\n", booking.ID, err.Error())
		}
	}

	return &booking, nil
}

func (b *Bookings) Get(current *models.User, bookingID string) (*models.Booking, error) {
	db := db.GetDb()
	var booking models.Booking
	if err := db.
		Scopes(scopes.WithID(bookingID)).
		First(&booking).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("booking %s: %w", bookingID, types.ErrNotFound)
		}
		return nil, err
	}
	switch current.Role {
	case types.ROLE_CUSTOMER:
		if booking.UserID != current.ID {
			return nil, fmt.Errorf("not your booking: %w", types.ErrForbidden)
		}
	case types.ROLE_PROVIDER:
		if booking.ProviderID != current.ID {
			return nil, fmt.Errorf("not your booking: %w", types.ErrForbidden)
		}
	case types.ROLE_ADMIN:
		// admins see everything
	default:
		return nil, fmt.Errorf("unknown role %q: %w", current.Role, types.ErrForbidden)
	}
	return &booking, nil
}

func (b *Bookings) ListForCustomer(current *models.User) ([]models.Booking, error) {
	if current.Role != types.ROLE_CUSTOMER {
		return nil, fmt.Errorf("only customers can access this: %w", types.ErrForbidden)
	}
	db := db.GetDb()
	var bookings []models.Booking
	err := db.
		Where(&models.Booking{UserID: current.ID}).
		Order("created_at DESC").
		Find(&bookings).
		Error
	return bookings, err
}

func (b *Bookings) ListForProvider(current *models.User) ([]models.Booking, error) {
	if current.Role != types.ROLE_PROVIDER {
		return nil, fmt.Errorf("only providers can access this: %w", types.ErrForbidden)
	}
	db := db.GetDb()
	var bookings []models.Booking
	err := db.
		Where(&models.Booking{ProviderID: current.ID}).
		Order("created_at DESC").
		Find(&bookings).
		Error
	return bookings, err
}
