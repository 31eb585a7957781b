package scheduler

import "batch-transcribe-api/engine"

// JobInput is a single entry of a transcription request. Duration, when
// supplied by the caller, is trusted verbatim and never re-measured.
type JobInput struct {
	Source   string   `json:"source"`
	Duration *float64 `json:"duration,omitempty"`
}

// TranscribeRequest is the caller's payload.
type TranscribeRequest struct {
	Timestamps bool       `json:"timestamps"`
	Inputs     []JobInput `json:"inputs"`
}

// TranscriptionResult is the per-item response element, in original
// input order.
type TranscriptionResult struct {
	Text        string            `json:"text"`
	DurationSec float64           `json:"duration_sec"`
	Timestamps  *engine.Timestamp `json:"timestamps,omitempty"`
}

// TranscribeResponse is the response body.
type TranscribeResponse struct {
	Results []TranscriptionResult `json:"results"`
	Error   string                `json:"error,omitempty"`
}

// validatedJob is a job that passed validation, fetch and duration
// probing. It lives for exactly one request.
type validatedJob struct {
	localPath string
	duration  float64
	index     int // position in the original inputs list
}
