package create_request

import (
	"time"

	"github.com/veloservis/BikeShop-Service/internal/domain"
)

// freeSlots вычисляет свободные слоты механика: заявленные слоты не раньше now
// за вычетом занятых моментов, по возрастанию.
// Занятость определяется точным совпадением моментов, без окон допуска.
func freeSlots(mechanic *domain.Mechanic, occupied []time.Time, now time.Time) []time.Time {
	free := make([]time.Time, 0)
	for _, slot := range mechanic.FutureSlots(now) {
		if !containsInstant(occupied, slot) {
			free = append(free, slot)
		}
	}
	return free
}

// resolveSlot решает, каким моментом будет назначена заявка.
// Возвращает nil без ошибки, когда привязка к слоту не запрашивалась:
// заявка остается незапланированной, даже если механик указан.
func resolveSlot(
	mechanic *domain.Mechanic,
	occupied []time.Time,
	preferredDate *time.Time,
	firstAvailable bool,
	now time.Time,
) (*time.Time, error) {
	if preferredDate != nil {
		// Желаемый момент должен точно совпасть с заявленным слотом:
		// момент, отличающийся хоть на миллисекунду, не подходит
		if preferredDate.Before(now) || !mechanic.HasSlot(*preferredDate) {
			return nil, ErrSlotNotOffered
		}
		if containsInstant(occupied, *preferredDate) {
			return nil, ErrSlotTaken
		}
		at := preferredDate.UTC()
		return &at, nil
	}

	if firstAvailable {
		free := freeSlots(mechanic, occupied, now)
		if len(free) == 0 {
			return nil, ErrNoFreeSlot
		}
		at := free[0]
		return &at, nil
	}

	return nil, nil
}

func containsInstant(instants []time.Time, at time.Time) bool {
	for _, instant := range instants {
		if instant.Equal(at) {
			return true
		}
	}
	return false
}
