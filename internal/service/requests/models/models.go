package models

import (
	"errors"
	"time"

	"github.com/veloservis/BikeShop-Service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе заявки
	ErrInvalidStatus = errors.New("invalid request status")
)

// Request модели

// UpdateStatusRequest запрос на смену статуса заявки
type UpdateStatusRequest struct {
	OwnerEmail string  `json:"ownerEmail"`
	Status     string  `json:"status"`
	Note       *string `json:"note,omitempty"`
}

// GetUserRequestsRequest запрос на получение заявок пользователя
type GetUserRequestsRequest struct {
	OwnerEmail string  `json:"ownerEmail"`
	Status     *string `json:"status,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetUserRequestsRequest) ToDomainFilter() (domain.UserRequestsFilter, error) {
	filter := domain.UserRequestsFilter{OwnerEmail: r.OwnerEmail}

	if r.Status != nil {
		status, err := ToDomainRequestStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// EventResponse запись журнала заявки
type EventResponse struct {
	At   time.Time `json:"at"`
	Type string    `json:"type"`
	From *string   `json:"from,omitempty"`
	To   string    `json:"to"`
	Note *string   `json:"note,omitempty"`
	By   string    `json:"by"`
}

// RequestResponse ответ с данными заявки
type RequestResponse struct {
	ID             string          `json:"id"` // внешний UUID
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
	Events         []EventResponse `json:"events,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// RequestListResponse список заявок
type RequestListResponse struct {
	Requests []*RequestResponse `json:"requests"`
	Total    int                `json:"total"`
}

// FromDomainRequest конвертирует domain заявку в response
func FromDomainRequest(r *domain.ServiceRequest) *RequestResponse {
	serviceTypes := make([]string, len(r.ServiceTypes))
	for i, t := range r.ServiceTypes {
		serviceTypes[i] = string(t)
	}

	events := make([]EventResponse, len(r.Events))
	for i, e := range r.Events {
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
		ID:             r.PublicID.String(),
		OwnerEmail:     r.OwnerEmail,
		MechanicID:     r.MechanicID,
		ServiceTypes:   serviceTypes,
		BikeID:         r.BikeID,
		DeferredBike:   r.DeferredBike,
		Status:         string(r.Status),
		PreferredDate:  r.PreferredDate,
		FirstAvailable: r.FirstAvailable,
		AssignedDate:   r.AssignedDate,
		PriceEstimate:  r.PriceEstimate,
		Events:         events,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// FromDomainRequestList конвертирует список domain заявок в response
func FromDomainRequestList(requests []*domain.ServiceRequest) *RequestListResponse {
	out := make([]*RequestResponse, len(requests))
	for i, r := range requests {
		out[i] = FromDomainRequest(r)
	}
	return &RequestListResponse{Requests: out, Total: len(out)}
}

// ToDomainRequestStatus валидирует и конвертирует строковый статус
func ToDomainRequestStatus(s string) (domain.RequestStatus, error) {
	status := domain.RequestStatus(s)
	if !domain.IsValidRequestStatus(status) {
		return "", ErrInvalidStatus
	}
	return status, nil
}
