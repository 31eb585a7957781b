package scheduler

import "batch-transcribe-api/audio"

// DurationProber reports the duration in seconds of a local audio file.
type DurationProber interface {
	Probe(path string) (float64, error)
}

// WAVProber reads the duration from the file's RIFF header
// (frames / sample rate) without decoding the audio payload.
type WAVProber struct{}

func (WAVProber) Probe(path string) (float64, error) {
	info, err := audio.ReadInfo(path)
	if err != nil {
		return 0, err
	}
	return info.DurationSec(), nil
}
