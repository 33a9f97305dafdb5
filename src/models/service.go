package models

import (
	"booktrack/src/types"

	"github.com/google/uuid"
)

type Service struct {
	ID           string  `gorm:"primarykey" json:"id"`
	ProviderID   string  `gorm:"index" json:"provider_id"`
	ProviderName string  `json:"provider_name"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Category     string  `gorm:"index" json:"category,omitempty"`
	Price        float64 `json:"price"`
	Location     string  `json:"location,omitempty"`
	Duration     uint    `json:"duration,omitempty"`
	ImageURL     string  `json:"image_url,omitempty"`

	types.Timestamps
}

func NewService(provider *User, body *types.CreateServiceRequestBody) *Service {
	return &Service{
		ID:           uuid.NewString(),
		ProviderID:   provider.ID,
		ProviderName: provider.Name,
		Name:         body.Name,
		Description:  body.Description,
		Category:     body.Category,
		Price:        body.Price,
		Location:     body.Location,
		Duration:     body.Duration,
		ImageURL:     body.ImageURL,
	}
}
