package create_request

import (
	"fmt"
	"strings"

	"github.com/veloservis/BikeShop-Service/internal/domain"
)

// normalizeRequest приводит входные данные к каноничному виду:
// email в lowercase, типы услуг без дубликатов
func normalizeRequest(req *Request) {
	req.OwnerEmail = strings.ToLower(strings.TrimSpace(req.OwnerEmail))
	req.ServiceTypes = dedupServiceTypes(req.ServiceTypes)
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.OwnerEmail == "" || !strings.Contains(req.OwnerEmail, "@") {
		return fmt.Errorf("%w: ownerEmail must be a valid email", ErrInvalidInput)
	}

	for _, t := range req.ServiceTypes {
		if !domain.IsValidServiceType(t) {
			return fmt.Errorf("%w: unknown service type %q", ErrInvalidInput, t)
		}
	}

	// Инвариант: либо указан конкретный велосипед, либо выбор отложен, ровно одно из двух
	if req.DeferredBike == (req.BikeID != nil) {
		return fmt.Errorf("%w: exactly one of bikeId or deferredBike is required", ErrInvalidInput)
	}

	if req.MechanicID != nil && *req.MechanicID <= 0 {
		return fmt.Errorf("%w: mechanicId must be positive", ErrInvalidInput)
	}

	// Привязка к слоту имеет смысл только вместе с механиком
	if req.MechanicID == nil && (req.PreferredDate != nil || req.FirstAvailable) {
		return fmt.Errorf("%w: scheduling requires a mechanic", ErrInvalidInput)
	}

	if req.PriceEstimate != nil && *req.PriceEstimate < 0 {
		return fmt.Errorf("%w: priceEstimate must not be negative", ErrInvalidInput)
	}

	if req.Note != nil && len(*req.Note) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note exceeds %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}

	return nil
}

// dedupServiceTypes убирает дубликаты, сохраняя порядок первого вхождения
func dedupServiceTypes(types []domain.ServiceType) []domain.ServiceType {
	seen := make(map[domain.ServiceType]struct{}, len(types))
	out := make([]domain.ServiceType, 0, len(types))
	for _, t := range types {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
