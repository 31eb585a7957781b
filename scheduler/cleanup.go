package scheduler

import (
	"os"

	"go.uber.org/zap"

	"batch-transcribe-api/metrics"
)

// ephemeralSet tracks files fetched for one request so they can be
// released exactly once on every exit path.
type ephemeralSet struct {
	logger  *zap.Logger
	paths   []string
	removed bool
}

func newEphemeralSet(logger *zap.Logger) *ephemeralSet {
	return &ephemeralSet{logger: logger}
}

func (e *ephemeralSet) Add(path string) {
	e.paths = append(e.paths, path)
	metrics.EphemeralFilesCreated.Inc()
}

// RemoveAll deletes every tracked file. Subsequent calls are no-ops.
func (e *ephemeralSet) RemoveAll() {
	if e.removed {
		return
	}
	e.removed = true

	for _, p := range e.paths {
		if err := os.Remove(p); err != nil {
			if !os.IsNotExist(err) {
				e.logger.Warn("Failed to remove ephemeral file",
					zap.String("path", p),
					zap.Error(err))
			}
			continue
		}
		metrics.EphemeralFilesRemoved.Inc()
	}
	e.paths = nil
}
