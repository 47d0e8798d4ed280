package domain

// ServiceType тип услуги веломастерской
type ServiceType string

const (
	ServiceTypeServis    ServiceType = "servis"    // базовый сервис
	ServiceTypeReklamace ServiceType = "reklamace" // рекламация / гарантийный случай
	ServiceTypeOdpruzeni ServiceType = "odpruzeni" // обслуживание подвески
)

// AllServiceTypes полный перечень поддерживаемых типов услуг
var AllServiceTypes = []ServiceType{
	ServiceTypeServis,
	ServiceTypeReklamace,
	ServiceTypeOdpruzeni,
}

// IsValidServiceType проверяет, что тип услуги входит в поддерживаемый перечень
func IsValidServiceType(t ServiceType) bool {
	for _, known := range AllServiceTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Ценовая оценка заявки: база + надбавка за каждый выбранный тип услуги.
// Это грубая эвристика для предварительной оценки, а не прайс-лист.
const BasePriceEstimate = 300.0

// ServiceTypeSurcharge надбавка к базовой цене за тип услуги
var ServiceTypeSurcharge = map[ServiceType]float64{
	ServiceTypeServis:    200,
	ServiceTypeReklamace: 0,
	ServiceTypeOdpruzeni: 500,
}

// Лимиты
const (
	MaxBikesPerOwner = 10  // максимум активных велосипедов на владельца
	MaxNoteLength    = 500 // максимальная длина заметки к заявке
)
