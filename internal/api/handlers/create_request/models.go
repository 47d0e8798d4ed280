package create_request

import (
	"time"

	"github.com/veloservis/BikeShop-Service/internal/domain"
	createRequest "github.com/veloservis/BikeShop-Service/internal/usecase/create_request"
)

// CreateRequestRequest HTTP request model
type CreateRequestRequest struct {
	MechanicID     *int64   `json:"mechanicId,omitempty"`
	ServiceTypes   []string `json:"serviceTypes"`
	BikeID         *int64   `json:"bikeId,omitempty"`
	DeferredBike   bool     `json:"deferredBike"`
	PreferredDate  *string  `json:"preferredDate,omitempty"` // RFC3339
	FirstAvailable bool     `json:"firstAvailable"`
	PriceEstimate  *float64 `json:"priceEstimate,omitempty"`
	Note           *string  `json:"note,omitempty"`
}

// EventResponse запись журнала заявки
type EventResponse struct {
	At   time.Time `json:"at"`
	Type string    `json:"type"`
	From *string   `json:"from,omitempty"`
	To   string    `json:"to"`
	Note *string   `json:"note,omitempty"`
	By   string    `json:"by"`
}

// RequestResponse HTTP response model
type RequestResponse struct {
	ID             string          `json:"id"`
	OwnerEmail     string          `json:"ownerEmail"`
	MechanicID     *int64          `json:"mechanicId,omitempty"`
	ServiceTypes   []string        `json:"serviceTypes"`
	BikeID         *int64          `json:"bikeId,omitempty"`
	DeferredBike   bool            `json:"deferredBike"`
	Status         string          `json:"status"`
	PreferredDate  *time.Time      `json:"preferredDate,omitempty"`
	FirstAvailable bool            `json:"firstAvailable"`
	AssignedDate   *time.Time      `json:"assignedDate,omitempty"`
	PriceEstimate  float64         `json:"priceEstimate"`
	Events         []EventResponse `json:"events"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// с парсингом желаемого момента
func (r *CreateRequestRequest) ToUseCaseRequest(ownerEmail string) (*createRequest.Request, error) {
	var preferredDate *time.Time
	if r.PreferredDate != nil {
		at, err := time.Parse(time.RFC3339, *r.PreferredDate)
		if err != nil {
			return nil, err
		}
		utc := at.UTC()
		preferredDate = &utc
	}

	serviceTypes := make([]domain.ServiceType, len(r.ServiceTypes))
	for i, t := range r.ServiceTypes {
		serviceTypes[i] = domain.ServiceType(t)
	}

	return &createRequest.Request{
		OwnerEmail:     ownerEmail,
		MechanicID:     r.MechanicID,
		ServiceTypes:   serviceTypes,
		BikeID:         r.BikeID,
		DeferredBike:   r.DeferredBike,
		PreferredDate:  preferredDate,
		FirstAvailable: r.FirstAvailable,
		PriceEstimate:  r.PriceEstimate,
		Note:           r.Note,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createRequest.Response) *RequestResponse {
	serviceTypes := make([]string, len(resp.ServiceTypes))
	for i, t := range resp.ServiceTypes {
		serviceTypes[i] = string(t)
	}

	events := make([]EventResponse, len(resp.Events))
	for i, e := range resp.Events {
		events[i] = EventResponse{
			At:   e.At,
			Type: e.Type,
			To:   string(e.To),
			Note: e.Note,
			By:   e.By,
		}
		if e.From != nil {
			from := string(*e.From)
			events[i].From = &from
		}
	}

	return &RequestResponse{
		ID:             resp.ID.String(),
		OwnerEmail:     resp.OwnerEmail,
		MechanicID:     resp.MechanicID,
		ServiceTypes:   serviceTypes,
		BikeID:         resp.BikeID,
		DeferredBike:   resp.DeferredBike,
		Status:         string(resp.Status),
		PreferredDate:  resp.PreferredDate,
		FirstAvailable: resp.FirstAvailable,
		AssignedDate:   resp.AssignedDate,
		PriceEstimate:  resp.PriceEstimate,
		Events:         events,
		CreatedAt:      resp.CreatedAt,
		UpdatedAt:      resp.UpdatedAt,
	}
}
