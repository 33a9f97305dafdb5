package common

import (
	"booktrack/src/db"
	"booktrack/src/lib"
	"booktrack/src/models"
	"booktrack/src/models/scopes"
	"booktrack/src/types"
	"booktrack/src/utils"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const checkoutCacheTTL = 24 * time.Hour

// Reconciler owns payment transactions and drives their single state
// transition pending -> paid. The poll path and the webhook path both funnel
// into MarkSessionPaid, so the convergence logic exists exactly once.
type Reconciler struct {
	gateway  lib.PaymentGateway
	cache    *redis.Client
	mailer   *lib.Mailer
	currency string
}

func NewReconciler(gateway lib.PaymentGateway, cache *redis.Client, mailer *lib.Mailer, currency string) *Reconciler {
	return &Reconciler{gateway: gateway, cache: cache, mailer: mailer, currency: currency}
}

type CheckoutResult struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

type CheckoutStatus struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	BookingID     string `json:"booking_id"`
}

func (r *Reconciler) InitiateCheckout(ctx context.Context, current *models.User, bookingID, origin string) (*CheckoutResult, error) {
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
	if booking.UserID != current.ID {
		return nil, fmt.Errorf("not your booking: %w", types.ErrForbidden)
	}
	if booking.PaymentStatus == types.PAYMENT_PAID {
		return nil, fmt.Errorf("already paid: %w", types.ErrConflict)
	}

	session, err := r.gateway.CreateCheckoutSession(ctx, &lib.CheckoutParams{
		AmountMinor: utils.MinorUnits(booking.Amount),
		Currency:    r.currency,
		Name:        booking.ServiceName,
		Description: fmt.Sprintf("Booking for %s %s", booking.Date, booking.Time),
		SuccessURL:  origin + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:   origin + "/payment-cancelled",
		Metadata: map[string]string{
			"booking_id": booking.ID,
			"user_id":    current.ID,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("stripe error: %s: %w", err.Error(), types.ErrUpstream)
	}

	currency := session.Currency
	if currency == "" {
		currency = r.currency
	}
	txn := models.NewPendingTransaction(session.ID, &booking, current.ID, currency)
	if err := db.Create(txn).Error; err != nil {
		return nil, err
	}

	if r.cache != nil {
		if err := r.cache.SetEx(ctx, checkoutCacheKey(session.ID), booking.ID, checkoutCacheTTL).Err(); err != nil {
			log.Printf("[redis] Error caching checkout %s: %s\n", session.ID, err.Error())
		}
	}

	return &CheckoutResult{URL: session.URL, SessionID: session.ID}, nil
}

func (r *Reconciler) PollStatus(ctx context.Context, current *models.User, sessionID string) (*CheckoutStatus, error) {
	db := db.GetDb()
	var txn models.PaymentTransaction
	if err := db.
		Scopes(scopes.WithSessionID(sessionID)).
		First(&txn).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("transaction for session %s: %w", sessionID, types.ErrNotFound)
		}
		return nil, err
	}
	if txn.UserID != current.ID && current.Role != types.ROLE_ADMIN {
		return nil, fmt.Errorf("not your transaction: %w", types.ErrForbidden)
	}

	session, err := r.gateway.RetrieveSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("stripe error: %s: %w", err.Error(), types.ErrUpstream)
	}

	if strings.EqualFold(session.Status, "complete") && strings.EqualFold(session.PaymentStatus, "paid") {
		if _, err := r.MarkSessionPaid(ctx, sessionID); err != nil {
			return nil, err
		}
	}

	return &CheckoutStatus{
		Status:        session.Status,
		PaymentStatus: session.PaymentStatus,
		BookingID:     txn.BookingID,
	}, nil
}

// MarkSessionPaid applies the convergence rule for a session and reports
// whether this call performed the pending -> paid transition. The check and
// the set ride a single conditional UPDATE, so two racing callers cannot
// both win; a session with no local transaction is a no-op, since webhook
// delivery must not fail for sessions this system never created.
func (r *Reconciler) MarkSessionPaid(ctx context.Context, sessionID string) (bool, error) {
	db := db.GetDb().WithContext(ctx)
	var txn models.PaymentTransaction
	if err := db.
		Scopes(scopes.WithSessionID(sessionID)).
		First(&txn).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	res := db.
		Model(&models.PaymentTransaction{}).
		Scopes(scopes.WithSessionID(sessionID), scopes.WithPendingPayment).
		Update("payment_status", types.PAYMENT_PAID)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		// Already paid: duplicate delivery or the other path won the race.
		return false, nil
	}

	if err := db.
		Model(&models.Booking{}).
		Scopes(scopes.WithID(txn.BookingID)).
		Update("payment_status", types.PAYMENT_PAID).
		Error; err != nil {
		return true, err
	}
	log.Printf("Session %s reconciled: booking %s is paid\n", sessionID, txn.BookingID)

	if r.mailer != nil {
		go r.sendReceipt(&txn)
	}
	return true, nil
}

func (r *Reconciler) sendReceipt(txn *models.PaymentTransaction) {
	db := db.GetDb()
	var user models.User
	if err := db.Where(&models.User{ID: txn.UserID}).First(&user).Error; err != nil {
		log.Printf("Could not load user for receipt on session %s: %s\n", txn.SessionID, err.Error())
		return
	}
	var booking models.Booking
	if err := db.Where(&models.Booking{ID: txn.BookingID}).First(&booking).Error; err != nil {
		log.Printf("Could not load booking for receipt on session %s: %s\n", txn.SessionID, err.Error())
		return
	}
	subject := fmt.Sprintf("Payment received for %s", booking.ServiceName)
	body := fmt.Sprintf(
		"Hi %s,\n\nYour payment of %.2f %s for %s on %s %s has been received.\n",
		user.Name, txn.Amount, strings.ToUpper(txn.Currency), booking.ServiceName, booking.Date, booking.Time,
	)
	if err := r.mailer.Send(user.Email, subject, body); err != nil {
		log.Printf("Error sending receipt for session %s: %s\n", txn.SessionID, err.Error())
	}
}

func checkoutCacheKey(sessionID string) string {
	return "checkout:" + sessionID
}
