package add_bike

// AddBikeRequest HTTP запрос на регистрацию велосипеда
type AddBikeRequest struct {
	Brand        string  `json:"brand"`
	Model        string  `json:"model"`
	SerialNumber *string `json:"serialNumber,omitempty"`
}
