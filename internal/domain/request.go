package domain

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus статус заявки на обслуживание
type RequestStatus string

const (
	StatusNew        RequestStatus = "new"
	StatusInProgress RequestStatus = "in_progress"
	StatusDone       RequestStatus = "done"
	StatusCancelled  RequestStatus = "cancelled"
)

// IsValidRequestStatus проверяет, что статус входит в перечень допустимых
func IsValidRequestStatus(s RequestStatus) bool {
	switch s {
	case StatusNew, StatusInProgress, StatusDone, StatusCancelled:
		return true
	default:
		return false
	}
}

// Типы событий журнала заявки
const (
	EventTypeCreated      = "created"
	EventTypeStatusChange = "status_change"
)

// RequestEvent запись append-only журнала заявки.
// Журнал никогда не изменяется и не очищается, события только добавляются;
// первой записью всегда идет событие created.
type RequestEvent struct {
	ID        int64
	RequestID int64
	At        time.Time
	Type      string
	From      *RequestStatus // отсутствует у события created
	To        RequestStatus
	Note      *string
	By        string // email инициатора
}

// ServiceRequest заявка клиента на обслуживание велосипеда
type ServiceRequest struct {
	ID       int64
	PublicID uuid.UUID // внешний идентификатор для API

	OwnerEmail string // нормализован в lowercase

	MechanicID   *int64
	ServiceTypes []ServiceType

	// Ровно одно из двух: либо указан конкретный велосипед (BikeID),
	// либо выбор велосипеда отложен до приёмки (DeferredBike)
	BikeID       *int64
	DeferredBike bool

	Status RequestStatus

	PreferredDate  *time.Time // желаемый момент, указанный владельцем
	FirstAvailable bool       // запрос автоназначения первого свободного слота

	// AssignedDate выставляется один раз при подтверждении пары механик+слот.
	// Отсутствие значения означает, что заявка не запланирована.
	AssignedDate *time.Time

	PriceEstimate float64

	Events []RequestEvent

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCancelled проверяет, что заявка отменена
func (r *ServiceRequest) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// IsTerminal проверяет, что заявка в терминальном статусе
func (r *ServiceRequest) IsTerminal() bool {
	return r.Status == StatusDone || r.Status == StatusCancelled
}

// UserRequestsFilter фильтр заявок пользователя
type UserRequestsFilter struct {
	OwnerEmail string         // обязательный параметр
	Status     *RequestStatus // фильтр по статусу (опционально)
}
