package models

import (
	"booktrack/src/types"

	"github.com/google/uuid"
)

type User struct {
	ID       string     `gorm:"primarykey" json:"id"`
	Email    string     `gorm:"uniqueIndex" json:"email"`
	Name     string     `json:"name"`
	Role     types.Role `json:"role"`
	Phone    string     `json:"phone,omitempty"`
	Password string     `json:"-"`
	Blocked  bool       `json:"blocked"`

	types.Timestamps
}

func NewUser(email, name string, role types.Role, phone, hashedPassword string) *User {
	return &User{
		ID:       uuid.NewString(),
		Email:    email,
		Name:     name,
		Role:     role,
		Phone:    phone,
		Password: hashedPassword,
	}
}
