package models

// ActionItem is a single action extracted from the meeting by the LLM.
type ActionItem struct {
	Task      string `json:"task"`
	Owner     string `json:"owner"`
	Due       string `json:"due"`
	Timestamp string `json:"timestamp"`
}

// MinutesDocument is the structured minutes produced by the LLM collaborator.
// The field names mirror the strict-JSON schema the model is prompted with.
type MinutesDocument struct {
	Summary   string       `json:"summary"`
	KeyPoints []string     `json:"key_points"`
	Decisions []string     `json:"decisions"`
	Actions   []ActionItem `json:"actions"`
}
