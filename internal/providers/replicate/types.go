package replicate

// Status is the lifecycle state reported by the prediction API.
type Status string

const (
	StatusStarting   Status = "starting"
	StatusProcessing Status = "processing"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
	StatusCanceled   Status = "canceled"
)

// Terminal reports whether no further transitions can occur.
func (s Status) Terminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusCanceled:
		return true
	}
	return false
}

// Prediction is one external asynchronous generation job as reported by the
// provider. It is owned by the client/poller for the duration of one mockup.
type Prediction struct {
	ID      string             `json:"id"`
	Status  Status             `json:"status"`
	Output  []string           `json:"output,omitempty"`
	Error   string             `json:"error,omitempty"`
	Logs    string             `json:"logs,omitempty"`
	Metrics map[string]float64 `json:"metrics,omitempty"`
}
