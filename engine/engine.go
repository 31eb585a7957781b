package engine

import "context"

// AttentionMode selects the model's strategy for long inputs.
type AttentionMode string

const (
	// AttentionGlobal is the default full-context attention configuration.
	AttentionGlobal AttentionMode = "global"
	// AttentionWindowed restricts attention to a local context window,
	// trading accuracy on very long inputs for bounded memory.
	AttentionWindowed AttentionMode = "windowed"
)

// WordStamp is a word-level timestamp.
type WordStamp struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// SegmentStamp is a segment-level timestamp.
type SegmentStamp struct {
	Segment string  `json:"segment"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
}

// Timestamp carries the optional timing detail for one transcription.
type Timestamp struct {
	Word    []WordStamp    `json:"word"`
	Segment []SegmentStamp `json:"segment"`
}

// Output is the engine's result for a single audio file.
type Output struct {
	Text      string     `json:"text"`
	Timestamp *Timestamp `json:"timestamp,omitempty"`
}

// Engine is the inference backend consumed by the scheduler.
//
// Transcribe takes an ordered list of local file paths and returns one
// Output per path, in the same order. SetAttentionMode reconfigures the
// model before a transcription call; not every model variant supports
// switching, so callers must treat a returned error as non-fatal.
type Engine interface {
	Transcribe(ctx context.Context, paths []string, timestamps bool) ([]Output, error)
	SetAttentionMode(ctx context.Context, mode AttentionMode, contextWindow int) error
}
