package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Scheduler metrics, registered on the default registry.
var (
	RequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "transcribe_requests_total",
		Help: "Total number of transcription requests received",
	})
	RequestFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transcribe_request_failures_total",
		Help: "Total number of failed transcription requests by stage",
	}, []string{"stage"})
	JobsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transcribe_jobs_total",
		Help: "Total number of jobs processed by duration class",
	}, []string{"class"})
	BatchesDispatched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "transcribe_batches_dispatched_total",
		Help: "Total number of short-job batches dispatched to the engine",
	})
	BatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "transcribe_batch_size",
		Help:    "Number of jobs per dispatched short batch",
		Buckets: prometheus.LinearBuckets(1, 2, 10),
	})
	AudioSeconds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "transcribe_audio_seconds_total",
		Help: "Total seconds of audio accepted for transcription",
	})
	EngineCallDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "transcribe_engine_call_duration_seconds",
		Help:    "Wall-clock duration of engine transcription calls",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 14),
	})
	ModeSwitches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transcribe_attention_mode_switches_total",
		Help: "Total number of attention mode switch requests by mode",
	}, []string{"mode"})
	ModeSwitchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "transcribe_attention_mode_switch_failures_total",
		Help: "Total number of tolerated attention mode switch failures",
	})
	FetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "transcribe_fetch_failures_total",
		Help: "Total number of failed remote source downloads",
	})
	EphemeralFilesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "transcribe_ephemeral_files_created_total",
		Help: "Total number of ephemeral files fetched for requests",
	})
	EphemeralFilesRemoved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "transcribe_ephemeral_files_removed_total",
		Help: "Total number of ephemeral files removed after requests",
	})
)
