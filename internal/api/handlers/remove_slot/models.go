package remove_slot

// RemoveSlotRequest HTTP запрос на удаление слота доступности
type RemoveSlotRequest struct {
	At string `json:"at"` // RFC3339
}
