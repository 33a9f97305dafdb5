package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

// Role is a closed set; every authorization branch switches over it
// exhaustively instead of comparing free-form strings.
type Role string

const (
	ROLE_CUSTOMER Role = "customer"
	ROLE_PROVIDER Role = "provider"
	ROLE_ADMIN    Role = "admin"
)

type BookingStatus string

const (
	BOOKING_PENDING   BookingStatus = "pending"
	BOOKING_CONFIRMED BookingStatus = "confirmed"
	BOOKING_COMPLETED BookingStatus = "completed"
	BOOKING_CANCELLED BookingStatus = "cancelled"
)

// PaymentStatus is monotonic: once paid, never back to pending.
type PaymentStatus string

const (
	PAYMENT_PENDING PaymentStatus = "pending"
	PAYMENT_PAID    PaymentStatus = "paid"
)

type Metadata map[string]string

func (m Metadata) Value() (driver.Value, error) {
	valueString, err := json.Marshal(m)
	return string(valueString), err
}
func (m *Metadata) Scan(value any) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return errors.New("unsupported column type for Metadata")
	}
}

type RegisterRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Role     Role   `json:"role" binding:"required,oneof=customer provider admin"`
	Phone    string `json:"phone,omitempty"`
}

type LoginRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateServiceRequestBody struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	Location    string  `json:"location,omitempty"`
	Duration    uint    `json:"duration,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
}

// UpdateServiceRequestBody uses pointers so absent fields leave the
// stored value untouched.
type UpdateServiceRequestBody struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Price       *float64 `json:"price,omitempty" binding:"omitempty,gte=0"`
	Location    *string  `json:"location,omitempty"`
	Duration    *uint    `json:"duration,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
}

type CreateBookingRequestBody struct {
	ServiceID string `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required,bookingdate"`
	Time      string `json:"time" binding:"required,bookingtime"`
}

type UpdateBookingStatusRequestBody struct {
	Status BookingStatus `json:"status" binding:"required,oneof=pending confirmed completed cancelled"`
}

type CreateReviewRequestBody struct {
	ServiceID string `json:"service_id" binding:"required"`
	BookingID string `json:"booking_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment,omitempty"`
}
