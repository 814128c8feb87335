package model

import "time"

// Run status constants
const (
	RunStatusCompleted = "COMPLETED"
	RunStatusFailed    = "FAILED"
)

// Run records one pipeline invocation: what was requested and how it ended.
type Run struct {
	ID          string `json:"id"`
	Source      string `json:"source"`
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Tone        string `json:"tone"`
	Length      string `json:"length"`
	Status      string `json:"status"`
	Output      string `json:"output,omitempty"`
	ErrorText   string `json:"error,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// NewRun creates a Run stamped with the current time.
func NewRun(id, source, name, contentType, tone, length string) Run {
	return Run{
		ID:          id,
		Source:      source,
		Name:        name,
		ContentType: contentType,
		Tone:        tone,
		Length:      length,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
}
