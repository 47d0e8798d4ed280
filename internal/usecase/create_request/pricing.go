package create_request

import "github.com/veloservis/BikeShop-Service/internal/domain"

// estimatePrice выводит предварительную оценку цены из выбранных типов услуг:
// база + надбавка за каждый тип. Неизвестный тип вклада не дает.
// Это грубая эвристика, а не расчет по прайс-листу.
func estimatePrice(serviceTypes []domain.ServiceType) float64 {
	price := domain.BasePriceEstimate
	for _, t := range serviceTypes {
		price += domain.ServiceTypeSurcharge[t]
	}
	return price
}
