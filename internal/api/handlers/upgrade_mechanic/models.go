package upgrade_mechanic

// UpgradeRequest HTTP запрос на создание профиля механика
type UpgradeRequest struct {
	Skills []string `json:"skills"`
}
