package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Config contains HTTP engine client configuration
type Config struct {
	Endpoint string
	Timeout  time.Duration
}

// HTTPEngine talks to an inference sidecar that has the audio files
// visible on a shared filesystem. It implements Engine.
type HTTPEngine struct {
	config     Config
	httpClient *http.Client
	logger     *zap.Logger
}

func NewHTTPEngine(config Config, logger *zap.Logger) *HTTPEngine {
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Minute
	}
	return &HTTPEngine{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: logger,
	}
}

type transcribeRequest struct {
	Paths      []string `json:"paths"`
	Timestamps bool     `json:"timestamps"`
}

type transcribeResponse struct {
	Results []Output `json:"results"`
	Error   string   `json:"error,omitempty"`
}

type attentionRequest struct {
	Mode          AttentionMode `json:"mode"`
	ContextWindow int           `json:"context_window,omitempty"`
}

func (e *HTTPEngine) Transcribe(ctx context.Context, paths []string, timestamps bool) ([]Output, error) {
	body, err := json.Marshal(transcribeRequest{Paths: paths, Timestamps: timestamps})
	if err != nil {
		return nil, fmt.Errorf("marshal transcribe request: %w", err)
	}

	start := time.Now()
	resp, err := e.post(ctx, e.config.Endpoint+"/v1/transcribe", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("inference backend returned %d: %s", resp.StatusCode, string(msg))
	}

	var decoded transcribeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode transcribe response: %w", err)
	}
	if decoded.Error != "" {
		return nil, fmt.Errorf("inference backend error: %s", decoded.Error)
	}

	e.logger.Debug("Transcription call completed",
		zap.Int("items", len(paths)),
		zap.Duration("elapsed", time.Since(start)))

	return decoded.Results, nil
}

func (e *HTTPEngine) SetAttentionMode(ctx context.Context, mode AttentionMode, contextWindow int) error {
	body, err := json.Marshal(attentionRequest{Mode: mode, ContextWindow: contextWindow})
	if err != nil {
		return fmt.Errorf("marshal attention request: %w", err)
	}

	resp, err := e.post(ctx, e.config.Endpoint+"/v1/attention", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("attention switch rejected with %d: %s", resp.StatusCode, string(msg))
	}
	return nil
}

func (e *HTTPEngine) post(ctx context.Context, url string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inference backend unreachable: %w", err)
	}
	return resp, nil
}
