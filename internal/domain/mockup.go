package domain

// MockupSpec describes one configured rendering style. The list is loaded
// once at process start and treated as immutable afterwards.
type MockupSpec struct {
	Type   string `json:"type"`
	Prompt string `json:"prompt"`
	Size   [2]int `json:"size"`
}

func (s MockupSpec) Width() int  { return s.Size[0] }
func (s MockupSpec) Height() int { return s.Size[1] }

// GenerationSession correlates one user-initiated batch with its progress
// subscription. It lives only for the duration of the request.
type GenerationSession struct {
	ID         string
	Title      string
	Collection string
}

// JobResult is the output of one successful mockup generation.
type JobResult struct {
	Filename string
	Data     []byte
}
