package domain

// EventStatus tags a ProgressEvent. Mid-flight poll observations carry the
// provider's own status string (starting, processing) so subscribers see
// every transition.
type EventStatus string

const (
	EventQueued    EventStatus = "queued"
	EventSucceeded EventStatus = "succeeded"
	EventError     EventStatus = "error"
	EventComplete  EventStatus = "complete"
)

// BatchSummary reports the final tally of a batch.
type BatchSummary struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// ProgressEvent is pushed to the session's subscriber and never stored
// beyond the bounded replay history. Exactly one payload group is set,
// depending on Status: the prediction id for queued, logs/metrics for poll
// ticks, filename+preview for succeeded, an error message for error, and a
// summary for complete.
type ProgressEvent struct {
	Mockup       string             `json:"type,omitempty"`
	Status       EventStatus        `json:"status"`
	PredictionID string             `json:"id,omitempty"`
	Logs         string             `json:"logs,omitempty"`
	Metrics      map[string]float64 `json:"metrics,omitempty"`
	Filename     string             `json:"filename,omitempty"`
	Preview      string             `json:"preview,omitempty"`
	Error        string             `json:"error,omitempty"`
	Summary      *BatchSummary      `json:"summary,omitempty"`
}

func QueuedEvent(mockup, predictionID string) ProgressEvent {
	return ProgressEvent{Mockup: mockup, Status: EventQueued, PredictionID: predictionID}
}

func TickEvent(mockup, status, logs string, metrics map[string]float64) ProgressEvent {
	return ProgressEvent{Mockup: mockup, Status: EventStatus(status), Logs: logs, Metrics: metrics}
}

func SucceededEvent(mockup, filename, preview string) ProgressEvent {
	return ProgressEvent{Mockup: mockup, Status: EventSucceeded, Filename: filename, Preview: preview}
}

func ErrorEvent(mockup, message string) ProgressEvent {
	return ProgressEvent{Mockup: mockup, Status: EventError, Error: message}
}

func CompleteEvent(succeeded, failed int) ProgressEvent {
	return ProgressEvent{Status: EventComplete, Summary: &BatchSummary{Succeeded: succeeded, Failed: failed}}
}
