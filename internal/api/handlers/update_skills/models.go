package update_skills

// UpdateSkillsRequest HTTP запрос на замену набора навыков
type UpdateSkillsRequest struct {
	Skills []string `json:"skills"`
}
