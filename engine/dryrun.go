package engine

import (
	"context"
	"fmt"
)

// DryRunEngine stands in for the inference backend in local development,
// returning placeholder text without loading a model.
type DryRunEngine struct{}

func NewDryRunEngine() *DryRunEngine {
	return &DryRunEngine{}
}

func (e *DryRunEngine) Transcribe(_ context.Context, paths []string, _ bool) ([]Output, error) {
	outs := make([]Output, len(paths))
	for i, p := range paths {
		outs[i] = Output{Text: fmt.Sprintf("[dry-run] Transcribed placeholder for %s", p)}
	}
	return outs, nil
}

func (e *DryRunEngine) SetAttentionMode(context.Context, AttentionMode, int) error {
	return nil
}
