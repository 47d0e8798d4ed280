package domain

import "time"

// Bike велосипед клиента
type Bike struct {
	ID         int64
	OwnerEmail string // нормализован в lowercase

	Brand        string
	Model        string
	SerialNumber *string

	// Deleted мягкое удаление: удаленный велосипед нельзя привязать к заявке,
	// но история заявок на него сохраняется
	Deleted bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
