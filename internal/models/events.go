package models

// ConversationReady is published when the speaker-labeled conversation
// document for a run has been written.
type ConversationReady struct {
	EventType    string `json:"eventType"`
	RunID        string `json:"runId"`
	Timestamp    int64  `json:"timestamp"`
	Path         string `json:"path"`
	SegmentCount int    `json:"segmentCount"`
	SpeakerCount int    `json:"speakerCount"`
}

// MinutesReady is published when the minutes document for a run has been
// written.
type MinutesReady struct {
	EventType   string `json:"eventType"`
	RunID       string `json:"runId"`
	Timestamp   int64  `json:"timestamp"`
	Path        string `json:"path"`
	ActionCount int    `json:"actionCount"`
}
