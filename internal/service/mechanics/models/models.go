package models

import (
	"errors"
	"time"

	"github.com/veloservis/BikeShop-Service/internal/domain"
)

var (
	// ErrInvalidServiceType возвращается при неизвестном типе услуги
	ErrInvalidServiceType = errors.New("invalid service type")
)

// MechanicResponse ответ с профилем механика
type MechanicResponse struct {
	ID             int64       `json:"id"`
	UserEmail      string      `json:"userEmail"`
	Skills         []string    `json:"skills"`
	AvailableSlots []time.Time `json:"availableSlots"`
	Active         bool        `json:"active"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// FromDomainMechanic конвертирует domain механика в response
func FromDomainMechanic(m *domain.Mechanic) *MechanicResponse {
	skills := make([]string, len(m.Skills))
	for i, s := range m.Skills {
		skills[i] = string(s)
	}

	return &MechanicResponse{
		ID:             m.ID,
		UserEmail:      m.UserEmail,
		Skills:         skills,
		AvailableSlots: m.AvailableSlots,
		Active:         m.Active,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// ToDomainServiceTypes валидирует и конвертирует список типов услуг
func ToDomainServiceTypes(values []string) ([]domain.ServiceType, error) {
	out := make([]domain.ServiceType, 0, len(values))
	seen := make(map[domain.ServiceType]struct{}, len(values))

	for _, v := range values {
		t := domain.ServiceType(v)
		if !domain.IsValidServiceType(t) {
			return nil, ErrInvalidServiceType
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}

	return out, nil
}
