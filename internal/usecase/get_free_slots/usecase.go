package get_free_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	mechanicRepo "github.com/veloservis/BikeShop-Service/internal/infra/storage/mechanic"
)

// UseCase use case получения свободных слотов механика.
// Свободным считается заявленный механиком будущий момент, не занятый
// назначенной датой другой заявки.
type UseCase struct {
	mechanicRepo MechanicRepository
	requestRepo  RequestRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	mechanicRepo MechanicRepository,
	requestRepo RequestRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		mechanicRepo: mechanicRepo,
		requestRepo:  requestRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute возвращает свободные слоты механика по возрастанию.
// Чтение не транзакционно: список носит информационный характер, занятость
// окончательно проверяется при создании заявки.
func (uc *UseCase) Execute(ctx context.Context, mechanicID int64) ([]time.Time, error) {
	uc.logger.Info("GetFreeSlots: mechanic=%d", mechanicID)

	now := uc.timeProvider.Now()

	mechanic, err := uc.mechanicRepo.GetByID(ctx, mechanicID)
	if err != nil {
		if errors.Is(err, mechanicRepo.ErrMechanicNotFound) {
			uc.logger.Warn("GetFreeSlots: mechanic id=%d not found", mechanicID)
			return nil, ErrMechanicInvalid
		}
		uc.logger.Error("GetFreeSlots: failed to get mechanic id=%d: %v", mechanicID, err)
		return nil, fmt.Errorf("%w: failed to get mechanic: %v", ErrInternal, err)
	}
	if !mechanic.Active {
		uc.logger.Warn("GetFreeSlots: mechanic id=%d is inactive", mechanicID)
		return nil, ErrMechanicInvalid
	}

	occupied, err := uc.requestRepo.GetAssignedDates(ctx, mechanicID, now)
	if err != nil {
		uc.logger.Error("GetFreeSlots: failed to get assigned dates for mechanic id=%d: %v", mechanicID, err)
		return nil, fmt.Errorf("%w: failed to get assigned dates: %v", ErrInternal, err)
	}

	free := make([]time.Time, 0)
	for _, slot := range mechanic.FutureSlots(now) {
		if !containsInstant(occupied, slot) {
			free = append(free, slot)
		}
	}

	uc.logger.Info("GetFreeSlots: mechanic=%d has %d free slots", mechanicID, len(free))
	return free, nil
}

func containsInstant(instants []time.Time, at time.Time) bool {
	for _, instant := range instants {
		if instant.Equal(at) {
			return true
		}
	}
	return false
}
