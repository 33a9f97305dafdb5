package main

import (
	"booktrack/src/models"
	"booktrack/src/types"
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/tidwall/gjson"
)

func (s *TestSuite) checkout(token, bookingID string) (sessionID, url string, code int) {
	w := s.request("POST", "/api/payments/create-checkout?booking_id="+bookingID+"&origin_url="+testOrigin, token, nil)
	body := w.Body.String()
	return gjson.Get(body, "session_id").String(), gjson.Get(body, "url").String(), w.Code
}

func (s *TestSuite) TestCreateCheckout() {
	provider, _ := s.createUser(types.ROLE_PROVIDER)
	customer, token := s.createUser(types.ROLE_CUSTOMER)
	booking := s.createBooking(customer, s.createService(provider, 50.00))

	sessionID, url, code := s.checkout(token, booking.ID)
	s.Require().Equal(http.StatusOK, code)
	s.NotEmpty(sessionID)
	s.NotEmpty(url)

	var txn models.PaymentTransaction
	s.Require().NoError(s.DB.First(&txn, "session_id = ?", sessionID).Error)
	s.Equal(booking.ID, txn.BookingID)
	s.Equal(customer.ID, txn.UserID)
	s.Equal(types.PAYMENT_PENDING, txn.PaymentStatus)
	s.Equal(50.00, txn.Amount)
	s.Equal("usd", txn.Currency)
	s.Equal(booking.ID, txn.Metadata["booking_id"])

	cached, err := s.Cache.Get(context.Background(), "checkout:"+sessionID).Result()
	s.Require().NoError(err)
	s.Equal(booking.ID, cached)

	s.Run("a retried checkout opens a new session", func() {
		second, _, code := s.checkout(token, booking.ID)
		s.Equal(http.StatusOK, code)
		s.NotEqual(sessionID, second)
		var count int64
		s.DB.Model(&models.PaymentTransaction{}).Where("booking_id = ?", booking.ID).Count(&count)
		s.EqualValues(2, count)
	})
}

func (s *TestSuite) TestCreateCheckoutGates() {
	provider, _ := s.createUser(types.ROLE_PROVIDER)
	customer, token := s.createUser(types.ROLE_CUSTOMER)
	_, strangerToken := s.createUser(types.ROLE_CUSTOMER)
	booking := s.createBooking(customer, s.createService(provider, 50.00))

	s.Run("missing params", func() {
		w := s.request("POST", "/api/payments/create-checkout?booking_id="+booking.ID, token, nil)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("unknown booking", func() {
		_, _, code := s.checkout(token, "missing-booking")
		s.Equal(http.StatusNotFound, code)
	})

	s.Run("someone else's booking", func() {
		_, _, code := s.checkout(strangerToken, booking.ID)
		s.Equal(http.StatusForbidden, code)
	})

	s.Run("already paid booking", func() {
		s.Require().NoError(s.DB.Model(booking).Update("payment_status", types.PAYMENT_PAID).Error)
		_, _, code := s.checkout(token, booking.ID)
		s.Equal(http.StatusConflict, code)
		var count int64
		s.DB.Model(&models.PaymentTransaction{}).Where("booking_id = ?", booking.ID).Count(&count)
		s.EqualValues(0, count)
	})
}

func (s *TestSuite) TestCreateCheckoutUpstreamFailure() {
	provider, _ := s.createUser(types.ROLE_PROVIDER)
	customer, token := s.createUser(types.ROLE_CUSTOMER)
	booking := s.createBooking(customer, s.createService(provider, 50.00))

	s.Gateway.mu.Lock()
	s.Gateway.createErr = errors.New("stripe is down")
	s.Gateway.mu.Unlock()

	_, _, code := s.checkout(token, booking.ID)
	s.Equal(http.StatusBadGateway, code)
	var count int64
	s.DB.Model(&models.PaymentTransaction{}).Count(&count)
	s.EqualValues(0, count)
}

func (s *TestSuite) TestPollStatusConvergence() {
	provider, _ := s.createUser(types.ROLE_PROVIDER)
	customer, token := s.createUser(types.ROLE_CUSTOMER)
	booking := s.createBooking(customer, s.createService(provider, 50.00))
	sessionID, _, code := s.checkout(token, booking.ID)
	s.Require().Equal(http.StatusOK, code)

	poll := func() (gjson.Result, int) {
		w := s.request("GET", "/api/payments/checkout-status/"+sessionID, token, nil)
		return gjson.Parse(w.Body.String()), w.Code
	}

	s.Run("before completion nothing moves", func() {
		body, code := poll()
		s.Require().Equal(http.StatusOK, code)
		s.Equal("open", body.Get("status").String())
		s.Equal("unpaid", body.Get("payment_status").String())
		s.Equal(booking.ID, body.Get("booking_id").String())
		var got models.Booking
		s.Require().NoError(s.DB.First(&got, "id = ?", booking.ID).Error)
		s.Equal(types.PAYMENT_PENDING, got.PaymentStatus)
	})

	s.Gateway.complete(sessionID)

	s.Run("first poll after completion converges", func() {
		body, code := poll()
		s.Require().Equal(http.StatusOK, code)
		s.Equal("complete", body.Get("status").String())
		s.Equal("paid", body.Get("payment_status").String())

		var got models.Booking
		s.Require().NoError(s.DB.First(&got, "id = ?", booking.ID).Error)
		s.Equal(types.PAYMENT_PAID, got.PaymentStatus)
		var txn models.PaymentTransaction
		s.Require().NoError(s.DB.First(&txn, "session_id = ?", sessionID).Error)
		s.Equal(types.PAYMENT_PAID, txn.PaymentStatus)
	})

	s.Run("repeat polls are idempotent", func() {
		body, code := poll()
		s.Require().Equal(http.StatusOK, code)
		s.Equal("paid", body.Get("payment_status").String())
		var got models.Booking
		s.Require().NoError(s.DB.First(&got, "id = ?", booking.ID).Error)
		s.Equal(types.PAYMENT_PAID, got.PaymentStatus)
	})
}

func (s *TestSuite) TestPollStatusGates() {
	provider, _ := s.createUser(types.ROLE_PROVIDER)
	customer, token := s.createUser(types.ROLE_CUSTOMER)
	_, strangerToken := s.createUser(types.ROLE_CUSTOMER)
	_, adminToken := s.createUser(types.ROLE_ADMIN)
	booking := s.createBooking(customer, s.createService(provider, 50.00))
	sessionID, _, code := s.checkout(token, booking.ID)
	s.Require().Equal(http.StatusOK, code)

	s.Run("unknown session", func() {
		w := s.request("GET", "/api/payments/checkout-status/cs_nope", token, nil)
		s.Equal(http.StatusNotFound, w.Code)
	})

	s.Run("stranger cannot poll", func() {
		w := s.request("GET", "/api/payments/checkout-status/"+sessionID, strangerToken, nil)
		s.Equal(http.StatusForbidden, w.Code)
	})

	s.Run("admin can poll anyone's session", func() {
		w := s.request("GET", "/api/payments/checkout-status/"+sessionID, adminToken, nil)
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("processor lookup failure surfaces as upstream", func() {
		orphan := models.NewPendingTransaction("cs_gone", booking, customer.ID, "usd")
		s.Require().NoError(s.DB.Create(orphan).Error)
		w := s.request("GET", "/api/payments/checkout-status/cs_gone", token, nil)
		s.Equal(http.StatusBadGateway, w.Code)
	})
}

func (s *TestSuite) TestMarkSessionPaidSingleWinner() {
	provider, _ := s.createUser(types.ROLE_PROVIDER)
	customer, token := s.createUser(types.ROLE_CUSTOMER)
	booking := s.createBooking(customer, s.createService(provider, 50.00))
	sessionID, _, code := s.checkout(token, booking.ID)
	s.Require().Equal(http.StatusOK, code)
	s.Gateway.complete(sessionID)

	const racers = 8
	var wg sync.WaitGroup
	wins := make(chan bool, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			won, err := s.Rec.MarkSessionPaid(context.Background(), sessionID)
			s.NoError(err)
			wins <- won
		}()
	}
	wg.Wait()
	close(wins)

	winners := 0
	for won := range wins {
		if won {
			winners++
		}
	}
	s.Equal(1, winners)

	var got models.Booking
	s.Require().NoError(s.DB.First(&got, "id = ?", booking.ID).Error)
	s.Equal(types.PAYMENT_PAID, got.PaymentStatus)
}

func (s *TestSuite) TestMarkSessionPaidUnknownSessionIsNoop() {
	won, err := s.Rec.MarkSessionPaid(context.Background(), "cs_never_seen")
	s.NoError(err)
	s.False(won)
}
