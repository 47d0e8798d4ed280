package create_request

import (
	"time"

	"github.com/google/uuid"

	"github.com/veloservis/BikeShop-Service/internal/domain"
)

// Request модель запроса на создание заявки на обслуживание
type Request struct {
	OwnerEmail string // email владельца заявки

	MechanicID   *int64               // желаемый механик (опционально)
	ServiceTypes []domain.ServiceType // запрошенные типы услуг (0 и более)

	BikeID       *int64 // конкретный велосипед
	DeferredBike bool   // велосипед будет определен при приёмке

	PreferredDate  *time.Time // желаемый момент начала обслуживания
	FirstAvailable bool       // автоназначение первого свободного слота

	PriceEstimate *float64 // явная оценка цены; при отсутствии выводится из типов услуг
	Note          *string  // заметка, попадает в событие created
}

// Response модель ответа с созданной заявкой
type Response struct {
	ID         uuid.UUID // внешний идентификатор заявки
	OwnerEmail string

	MechanicID   *int64
	ServiceTypes []domain.ServiceType

	BikeID       *int64
	DeferredBike bool

	Status domain.RequestStatus

	PreferredDate  *time.Time
	FirstAvailable bool
	AssignedDate   *time.Time // подтвержденный слот; отсутствует у незапланированной заявки

	PriceEstimate float64

	Events []domain.RequestEvent

	CreatedAt time.Time
	UpdatedAt time.Time
}

func toResponse(r *domain.ServiceRequest) *Response {
	return &Response{
		ID:             r.PublicID,
		OwnerEmail:     r.OwnerEmail,
		MechanicID:     r.MechanicID,
		ServiceTypes:   r.ServiceTypes,
		BikeID:         r.BikeID,
		DeferredBike:   r.DeferredBike,
		Status:         r.Status,
		PreferredDate:  r.PreferredDate,
		FirstAvailable: r.FirstAvailable,
		AssignedDate:   r.AssignedDate,
		PriceEstimate:  r.PriceEstimate,
		Events:         r.Events,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
