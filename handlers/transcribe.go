package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"batch-transcribe-api/history"
	"batch-transcribe-api/metrics"
	"batch-transcribe-api/notify"
	"batch-transcribe-api/scheduler"
)

// transcribeEnvelope accepts both a bare request body and the same body
// wrapped in an "input" field, the way serverless callers send it.
type transcribeEnvelope struct {
	Input *scheduler.TranscribeRequest `json:"input"`
	scheduler.TranscribeRequest
}

// HandleTranscribe runs one batch transcription request through the
// scheduler and returns results in original input order.
func HandleTranscribe(logger *zap.Logger, sched *scheduler.Scheduler) gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics.RequestsTotal.Inc()

		var envelope transcribeEnvelope
		if err := c.ShouldBindJSON(&envelope); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		req := envelope.TranscribeRequest
		if envelope.Input != nil {
			req = *envelope.Input
		}

		if len(req.Inputs) == 0 {
			// soft error: an empty batch is a normal response, not a failure
			c.JSON(http.StatusOK, scheduler.TranscribeResponse{
				Results: []scheduler.TranscriptionResult{},
				Error:   "No inputs provided.",
			})
			return
		}

		requestID := uuid.NewString()
		ctx := c.Request.Context()

		result, err := sched.Run(ctx, req)
		if err != nil {
			status, stage := classifyError(err)
			metrics.RequestFailures.WithLabelValues(stage).Inc()
			logger.Error("Transcription request failed",
				zap.String("requestId", requestID),
				zap.String("stage", stage),
				zap.Error(err))
			history.Record(ctx, logger, history.RequestRecord{
				RequestID: requestID,
				Status:    "failed",
				Items:     len(req.Inputs),
				Error:     err.Error(),
			})
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		history.Record(ctx, logger, history.RequestRecord{
			RequestID:     requestID,
			Status:        "ok",
			Items:         len(result.Results),
			ShortBatches:  result.ShortBatches,
			LongJobs:      result.LongJobs,
			TotalAudioSec: result.TotalAudioSec,
		})
		notify.PublishCompletion(ctx, logger, notify.TranscribeCompletePayload{
			RequestID:     requestID,
			Items:         len(result.Results),
			ShortBatches:  result.ShortBatches,
			LongJobs:      result.LongJobs,
			TotalAudioSec: result.TotalAudioSec,
		})

		c.JSON(http.StatusOK, scheduler.TranscribeResponse{Results: result.Results})
	}
}

// classifyError maps the scheduler's error taxonomy to an HTTP status
// and a metrics stage label.
func classifyError(err error) (int, string) {
	var formatErr *scheduler.FormatError
	var fetchErr *scheduler.FetchError
	var durationErr *scheduler.DurationError
	var dispatchErr *scheduler.DispatchError

	switch {
	case errors.As(err, &formatErr):
		return http.StatusBadRequest, "format"
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway, "fetch"
	case errors.As(err, &durationErr):
		return http.StatusBadRequest, "duration"
	case errors.As(err, &dispatchErr):
		return http.StatusInternalServerError, "dispatch"
	}
	return http.StatusInternalServerError, "internal"
}
