package notify

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	valkeystore "batch-transcribe-api/valkey"
)

const TranscribeCompleteChannel = "transcribe_complete"

// TranscribeCompletePayload is published after a request finishes so
// downstream consumers (analysis, billing) can react.
type TranscribeCompletePayload struct {
	RequestID     string  `json:"requestId"`
	Items         int     `json:"items"`
	ShortBatches  int     `json:"shortBatches"`
	LongJobs      int     `json:"longJobs"`
	TotalAudioSec float64 `json:"totalAudioSec"`
}

// PublishCompletion publishes the completion event. It is best-effort:
// a missing cache client or a failed publish is logged and swallowed.
func PublishCompletion(ctx context.Context, logger *zap.Logger, payload TranscribeCompletePayload) {
	if valkeystore.Client == nil {
		return
	}

	sugar := logger.Sugar()
	message, err := json.Marshal(payload)
	if err != nil {
		sugar.Errorw("Completion event serialization failed",
			"error", err)
		return
	}

	if err := valkeystore.Client.Publish(ctx, TranscribeCompleteChannel, string(message)).Err(); err != nil {
		sugar.Warnw("Completion event publish failed",
			"channel", TranscribeCompleteChannel,
			"error", err)
		return
	}

	sugar.Debugw("Completion event published",
		"channel", TranscribeCompleteChannel,
		"requestId", payload.RequestID)
}
