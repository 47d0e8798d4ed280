package update_request_status

// UpdateStatusRequest HTTP запрос на смену статуса заявки
type UpdateStatusRequest struct {
	Status string  `json:"status"`
	Note   *string `json:"note,omitempty"`
}
