package create_request

import (
	"errors"
	"fmt"

	"github.com/veloservis/BikeShop-Service/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_request: invalid input data")

	// ErrBikeInvalid возвращается, когда велосипед не существует, удален
	// или принадлежит другому пользователю
	ErrBikeInvalid = errors.New("create_request: bike is invalid")

	// ErrMechanicInvalid возвращается, когда механик не найден или неактивен
	ErrMechanicInvalid = errors.New("create_request: mechanic not found or inactive")

	// ErrSkillMismatch возвращается, когда механик не покрывает запрошенные типы услуг
	ErrSkillMismatch = errors.New("create_request: mechanic lacks requested skills")

	// ErrSlotNotOffered возвращается, когда желаемый момент не входит
	// в заявленные механиком слоты
	ErrSlotNotOffered = errors.New("create_request: preferred date is not an offered slot")

	// ErrSlotTaken возвращается, когда желаемый слот уже занят другой заявкой
	ErrSlotTaken = errors.New("create_request: slot is already taken")

	// ErrNoFreeSlot возвращается, когда запрошено автоназначение,
	// но свободных слотов у механика нет
	ErrNoFreeSlot = errors.New("create_request: mechanic has no free slot")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_request: internal error")
)

// SkillMismatchError несет список недостающих навыков для отображения клиенту.
// Разворачивается в ErrSkillMismatch через errors.Is.
type SkillMismatchError struct {
	Missing []domain.ServiceType
}

func (e *SkillMismatchError) Error() string {
	return fmt.Sprintf("%v: missing %v", ErrSkillMismatch, e.Missing)
}

func (e *SkillMismatchError) Unwrap() error {
	return ErrSkillMismatch
}
