package domain

import "time"

// StreamPipelineEvents - default stream for stage completion events
const StreamPipelineEvents = "stream:bikeshare:pipeline"

// StageEvent is published after a stage commits
type StageEvent struct {
	RunID       string    `json:"run_id"`
	Stage       Stage     `json:"stage"`
	Status      string    `json:"status"`
	Details     any       `json:"details,omitempty"`
	Error       string    `json:"error,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
}

const (
	StageStatusCompleted = "completed"
	StageStatusSkipped   = "skipped"
	StageStatusFailed    = "failed"
)

// StreamFields are stored next to the JSON payload so consumers can route on
// stage and status without decoding it
func (e StageEvent) StreamFields() map[string]interface{} {
	return map[string]interface{}{
		"run_id": e.RunID,
		"stage":  string(e.Stage),
		"status": e.Status,
	}
}
