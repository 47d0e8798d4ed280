package models

import (
	"time"

	"github.com/veloservis/BikeShop-Service/internal/domain"
)

// CreateBikeRequest запрос на регистрацию велосипеда
type CreateBikeRequest struct {
	OwnerEmail   string  `json:"ownerEmail"`
	Brand        string  `json:"brand"`
	Model        string  `json:"model"`
	SerialNumber *string `json:"serialNumber,omitempty"`
}

// BikeResponse ответ с данными велосипеда
type BikeResponse struct {
	ID           int64     `json:"id"`
	OwnerEmail   string    `json:"ownerEmail"`
	Brand        string    `json:"brand"`
	Model        string    `json:"model"`
	SerialNumber *string   `json:"serialNumber,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// BikeListResponse список велосипедов
type BikeListResponse struct {
	Bikes []*BikeResponse `json:"bikes"`
	Total int             `json:"total"`
}

// FromDomainBike конвертирует domain велосипед в response
func FromDomainBike(b *domain.Bike) *BikeResponse {
	return &BikeResponse{
		ID:           b.ID,
		OwnerEmail:   b.OwnerEmail,
		Brand:        b.Brand,
		Model:        b.Model,
		SerialNumber: b.SerialNumber,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// FromDomainBikeList конвертирует список domain велосипедов в response
func FromDomainBikeList(bikes []*domain.Bike) *BikeListResponse {
	out := make([]*BikeResponse, len(bikes))
	for i, b := range bikes {
		out[i] = FromDomainBike(b)
	}
	return &BikeListResponse{Bikes: out, Total: len(out)}
}
