package add_slot

// AddSlotRequest HTTP запрос на заявку слота доступности
type AddSlotRequest struct {
	At string `json:"at"` // RFC3339
}
