package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"batch-transcribe-api/engine"
	"batch-transcribe-api/metrics"
)

// Scheduler turns a list of transcription jobs into engine calls:
// validated shorts are packed into batched forward passes, longs run
// one at a time, and results come back in original input order.
type Scheduler struct {
	cfg     Config
	engine  engine.Engine
	fetcher Fetcher
	prober  DurationProber
	logger  *zap.Logger

	// engineMu serializes the mode-switch/transcribe pair. The engine's
	// attention configuration is shared state on the loaded model, so no
	// other unit may dispatch between a switch and its transcription call.
	engineMu sync.Mutex
}

func New(cfg Config, eng engine.Engine, fetcher Fetcher, prober DurationProber, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cfg:     cfg,
		engine:  eng,
		fetcher: fetcher,
		prober:  prober,
		logger:  logger,
	}
}

// RunResult carries the ordered results plus dispatch bookkeeping for
// metrics and completion events.
type RunResult struct {
	Results       []TranscriptionResult
	ShortJobs     int
	LongJobs      int
	ShortBatches  int
	TotalAudioSec float64
}

// Run processes one request end to end. Validation is all-or-nothing:
// the first format/fetch/duration failure aborts the request with no
// partial results. Every ephemeral file fetched along the way is
// removed before Run returns, on every path.
func (s *Scheduler) Run(ctx context.Context, req TranscribeRequest) (*RunResult, error) {
	ephemeral := newEphemeralSet(s.logger)
	defer ephemeral.RemoveAll()

	jobs, err := s.validateAll(ctx, req.Inputs, ephemeral)
	if err != nil {
		return nil, err
	}

	shorts, longs := bucketize(jobs, s.cfg.ShortMaxSec)
	batches := packBatches(shorts, s.cfg.BatchMaxItems, s.cfg.BatchMaxTotalSec)

	totalSec := 0.0
	for _, j := range jobs {
		totalSec += j.duration
	}

	s.logger.Info("Request scheduled",
		zap.Int("jobs", len(jobs)),
		zap.Int("short_jobs", len(shorts)),
		zap.Int("long_jobs", len(longs)),
		zap.Int("short_batches", len(batches)),
		zap.Float64("total_audio_sec", totalSec))

	metrics.JobsTotal.WithLabelValues("short").Add(float64(len(shorts)))
	metrics.JobsTotal.WithLabelValues("long").Add(float64(len(longs)))
	metrics.AudioSeconds.Add(totalSec)

	// Results are placed by original input position; dispatch order
	// (all short batches, then longs) never shows through.
	ordered := make([]*TranscriptionResult, len(jobs))

	for _, batch := range batches {
		paths := make([]string, len(batch))
		for i, j := range batch {
			paths[i] = j.localPath
		}

		outs, err := s.dispatchUnit(ctx, paths, maxDuration(batch), req.Timestamps)
		if err != nil {
			return nil, err
		}

		metrics.BatchesDispatched.Inc()
		metrics.BatchSize.Observe(float64(len(batch)))

		for i, j := range batch {
			r := buildResult(j, outs[i], req.Timestamps)
			ordered[j.index] = &r
		}
	}

	for _, j := range longs {
		outs, err := s.dispatchUnit(ctx, []string{j.localPath}, j.duration, req.Timestamps)
		if err != nil {
			return nil, err
		}
		r := buildResult(j, outs[0], req.Timestamps)
		ordered[j.index] = &r
	}

	results := make([]TranscriptionResult, len(ordered))
	for i, r := range ordered {
		if r == nil {
			return nil, &DispatchError{
				Unit: req.Inputs[i].Source,
				Err:  fmt.Errorf("no result produced for input %d", i),
			}
		}
		results[i] = *r
	}

	return &RunResult{
		Results:       results,
		ShortJobs:     len(shorts),
		LongJobs:      len(longs),
		ShortBatches:  len(batches),
		TotalAudioSec: totalSec,
	}, nil
}

// validateAll runs format validation, remote fetch and duration probing
// for every input, in order, failing fast on the first bad job.
func (s *Scheduler) validateAll(ctx context.Context, inputs []JobInput, ephemeral *ephemeralSet) ([]validatedJob, error) {
	jobs := make([]validatedJob, 0, len(inputs))

	for i, in := range inputs {
		if err := validateFormat(in.Source); err != nil {
			return nil, err
		}

		localPath := in.Source
		if isRemote(in.Source) {
			p, err := s.fetcher.Fetch(ctx, in.Source)
			if err != nil {
				metrics.FetchFailures.Inc()
				return nil, &FetchError{Source: in.Source, Err: err}
			}
			localPath = p
			ephemeral.Add(p)
		}

		var dur float64
		if in.Duration != nil {
			// caller-supplied duration is trusted verbatim
			dur = *in.Duration
		} else {
			d, err := s.prober.Probe(localPath)
			if err != nil {
				return nil, &DurationError{Source: in.Source, Err: err}
			}
			dur = d
		}

		jobs = append(jobs, validatedJob{localPath: localPath, duration: dur, index: i})
	}

	return jobs, nil
}

// dispatchUnit selects the attention mode and issues one engine call,
// holding the engine lock across both steps.
func (s *Scheduler) dispatchUnit(ctx context.Context, paths []string, maxDur float64, wantTimestamps bool) ([]engine.Output, error) {
	s.engineMu.Lock()
	defer s.engineMu.Unlock()

	s.selectAttentionMode(ctx, maxDur)

	start := time.Now()
	outs, err := s.engine.Transcribe(ctx, paths, wantTimestamps)
	if err != nil {
		return nil, &DispatchError{Unit: describeUnit(paths), Err: err}
	}
	metrics.EngineCallDuration.Observe(time.Since(start).Seconds())

	if len(outs) != len(paths) {
		return nil, &DispatchError{
			Unit: describeUnit(paths),
			Err:  fmt.Errorf("engine returned %d results for %d inputs", len(outs), len(paths)),
		}
	}
	return outs, nil
}

// selectAttentionMode asks the engine for the configuration matching the
// unit's maximum duration. Rejections are tolerated: not every model
// variant supports toggling, so processing continues on the active mode.
func (s *Scheduler) selectAttentionMode(ctx context.Context, maxDur float64) {
	mode := engine.AttentionGlobal
	window := 0
	if maxDur > s.cfg.LocalAttentionAfterSec {
		mode = engine.AttentionWindowed
		window = s.cfg.AttentionContextWindow
	}

	metrics.ModeSwitches.WithLabelValues(string(mode)).Inc()
	if err := s.engine.SetAttentionMode(ctx, mode, window); err != nil {
		metrics.ModeSwitchFailures.Inc()
		s.logger.Warn("Attention mode switch rejected, continuing on active mode",
			zap.String("mode", string(mode)),
			zap.Error(err))
	}
}

func buildResult(j validatedJob, out engine.Output, wantTimestamps bool) TranscriptionResult {
	r := TranscriptionResult{Text: out.Text, DurationSec: j.duration}
	if wantTimestamps && out.Timestamp != nil {
		r.Timestamps = out.Timestamp
	}
	return r
}

func describeUnit(paths []string) string {
	if len(paths) == 1 {
		return paths[0]
	}
	return fmt.Sprintf("batch of %d files", len(paths))
}
