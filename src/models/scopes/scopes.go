package scopes

import (
	"booktrack/src/types"

	"gorm.io/gorm"
)

func WithID(id string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ?", id)
	}
}

func WithSessionID(sessionID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("session_id = ?", sessionID)
	}
}

func WithPendingPayment(db *gorm.DB) *gorm.DB {
	return db.Where("payment_status = ?", types.PAYMENT_PENDING)
}
