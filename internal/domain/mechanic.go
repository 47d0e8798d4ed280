package domain

import (
	"sort"
	"time"
)

// Mechanic профиль механика веломастерской
type Mechanic struct {
	ID        int64
	UserEmail string // email связанного пользователя, нормализован в lowercase

	Skills []ServiceType // типы услуг, которые механик умеет выполнять

	// AvailableSlots заявленные механиком слоты (абсолютные UTC-моменты).
	// Дубликаты не накапливаются: слот идентифицируется точным моментом времени.
	AvailableSlots []time.Time

	Active bool // неактивный механик невидим для назначения заявок

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasSkill проверяет, что механик умеет выполнять указанный тип услуги
func (m *Mechanic) HasSkill(t ServiceType) bool {
	for _, skill := range m.Skills {
		if skill == t {
			return true
		}
	}
	return false
}

// MissingSkills возвращает типы услуг из requested, которые механик не покрывает.
// Порядок соответствует порядку requested; пустой результат означает полное покрытие.
func (m *Mechanic) MissingSkills(requested []ServiceType) []ServiceType {
	missing := make([]ServiceType, 0)
	for _, t := range requested {
		if !m.HasSkill(t) {
			missing = append(missing, t)
		}
	}
	return missing
}

// HasSlot проверяет, что момент заявлен механиком как доступный слот.
// Сравнение строго по точному моменту времени, без допусков.
func (m *Mechanic) HasSlot(at time.Time) bool {
	for _, slot := range m.AvailableSlots {
		if slot.Equal(at) {
			return true
		}
	}
	return false
}

// FutureSlots возвращает заявленные слоты не раньше now, отсортированные по возрастанию
func (m *Mechanic) FutureSlots(now time.Time) []time.Time {
	future := make([]time.Time, 0, len(m.AvailableSlots))
	for _, slot := range m.AvailableSlots {
		if !slot.Before(now) {
			future = append(future, slot)
		}
	}
	sort.Slice(future, func(i, j int) bool { return future[i].Before(future[j]) })
	return future
}
