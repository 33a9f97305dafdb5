package main

import (
	"booktrack/src/models"
	"booktrack/src/types"
	"net/http"

	"github.com/tidwall/gjson"
)

func (s *TestSuite) TestAdminStats() {
	_, adminToken := s.createUser(types.ROLE_ADMIN)
	provider, _ := s.createUser(types.ROLE_PROVIDER)
	customer, _ := s.createUser(types.ROLE_CUSTOMER)
	popular := s.createService(provider, 40.00)
	quiet := s.createService(provider, 60.00)
	s.createBooking(customer, popular)
	s.createBooking(customer, popular)
	s.createBooking(customer, quiet)

	w := s.request("GET", "/api/admin/stats", adminToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	s.EqualValues(1, gjson.Get(body, "total_users").Int())
	s.EqualValues(1, gjson.Get(body, "total_providers").Int())
	s.EqualValues(2, gjson.Get(body, "total_services").Int())
	s.EqualValues(3, gjson.Get(body, "total_bookings").Int())

	top := gjson.Get(body, "top_services").Array()
	s.Require().Len(top, 2)
	s.Equal(popular.ID, top[0].Get("_id").String())
	s.EqualValues(2, top[0].Get("count").Int())
	s.Equal(popular.Name, top[0].Get("service.name").String())
}

func (s *TestSuite) TestAdminEndpointsAreAdminOnly() {
	_, customerToken := s.createUser(types.ROLE_CUSTOMER)
	_, providerToken := s.createUser(types.ROLE_PROVIDER)

	for _, token := range []string{customerToken, providerToken} {
		w := s.request("GET", "/api/admin/stats", token, nil)
		s.Equal(http.StatusForbidden, w.Code)
		w = s.request("GET", "/api/admin/users", token, nil)
		s.Equal(http.StatusForbidden, w.Code)
		w = s.request("GET", "/api/admin/bookings", token, nil)
		s.Equal(http.StatusForbidden, w.Code)
	}
}

func (s *TestSuite) TestAdminBlockAndUnblockUser() {
	_, adminToken := s.createUser(types.ROLE_ADMIN)
	target, targetToken := s.createUser(types.ROLE_CUSTOMER)

	w := s.request("PUT", "/api/admin/users/"+target.ID+"/block", adminToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var got models.User
	s.Require().NoError(s.DB.First(&got, "id = ?", target.ID).Error)
	s.True(got.Blocked)

	s.Run("blocked user is locked out", func() {
		w := s.request("GET", "/api/auth/me", targetToken, nil)
		s.Equal(http.StatusForbidden, w.Code)
	})

	s.Run("unblock restores access", func() {
		w := s.request("PUT", "/api/admin/users/"+target.ID+"/block?block=false", adminToken, nil)
		s.Require().Equal(http.StatusOK, w.Code)
		w = s.request("GET", "/api/auth/me", targetToken, nil)
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("unknown user", func() {
		w := s.request("PUT", "/api/admin/users/missing/block", adminToken, nil)
		s.Equal(http.StatusNotFound, w.Code)
	})

	s.Run("garbage block value", func() {
		w := s.request("PUT", "/api/admin/users/"+target.ID+"/block?block=maybe", adminToken, nil)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *TestSuite) TestAdminUserAndBookingLists() {
	_, adminToken := s.createUser(types.ROLE_ADMIN)
	provider, _ := s.createUser(types.ROLE_PROVIDER)
	customer, _ := s.createUser(types.ROLE_CUSTOMER)
	booking := s.createBooking(customer, s.createService(provider, 15.00))

	w := s.request("GET", "/api/admin/users", adminToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	users := gjson.Parse(w.Body.String()).Array()
	s.Len(users, 3)
	for _, u := range users {
		s.False(u.Get("password").Exists())
	}

	w = s.request("GET", "/api/admin/bookings", adminToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	bookings := gjson.Parse(w.Body.String()).Array()
	s.Require().Len(bookings, 1)
	s.Equal(booking.ID, bookings[0].Get("id").String())
}

func (s *TestSuite) TestAdminDeleteUser() {
	_, adminToken := s.createUser(types.ROLE_ADMIN)
	target, targetToken := s.createUser(types.ROLE_CUSTOMER)

	w := s.request("DELETE", "/api/admin/users/"+target.ID, adminToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	s.Run("deleted user's token stops working", func() {
		w := s.request("GET", "/api/auth/me", targetToken, nil)
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("deleting twice is not found", func() {
		w := s.request("DELETE", "/api/admin/users/"+target.ID, adminToken, nil)
		s.Equal(http.StatusNotFound, w.Code)
	})
}
