package scheduler

import "fmt"

// FormatError reports a source that does not name an acceptable audio
// container. It aborts the whole request.
type FormatError struct {
	Source string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid audio format for %s: file must be WAV format. Required: 16kHz mono WAV file.", e.Source)
}

// FetchError reports a remote source that could not be downloaded.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to download audio file %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// DurationError reports a local file whose duration could not be read.
type DurationError struct {
	Source string
	Err    error
}

func (e *DurationError) Error() string {
	return fmt.Sprintf("could not determine duration for %s: %v", e.Source, e.Err)
}

func (e *DurationError) Unwrap() error { return e.Err }

// DispatchError reports an engine call that failed after validation
// completed. Completed units are discarded; the request fails as a whole.
type DispatchError struct {
	Unit string
	Err  error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("transcription failed for %s: %v", e.Unit, e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }
