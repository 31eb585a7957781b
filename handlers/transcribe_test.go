package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"batch-transcribe-api/engine"
	"batch-transcribe-api/scheduler"
)

func tl(t *testing.T) *zap.Logger {
	cfg := zap.NewProductionConfig()
	l, err := cfg.Build()
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	l := tl(t)
	sched := scheduler.New(scheduler.DefaultConfig(), engine.NewDryRunEngine(),
		scheduler.NewRemoteFetcher(l), scheduler.WAVProber{}, l)
	r := gin.New()
	r.POST("/transcribe", HandleTranscribe(l, sched))
	r.GET("/healthcheck", HandleHealthcheck())
	return r
}

func postJSON(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/transcribe", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestTranscribeEmptyInputsSoftError(t *testing.T) {
	r := testRouter(t)
	w := postJSON(t, r, `{"timestamps": false, "inputs": []}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}

	var resp scheduler.TranscribeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Results) != 0 {
		t.Errorf("expected empty results, got %d", len(resp.Results))
	}
	if resp.Error != "No inputs provided." {
		t.Errorf("error = %q, want %q", resp.Error, "No inputs provided.")
	}
}

func TestTranscribeHappyPath(t *testing.T) {
	r := testRouter(t)
	w := postJSON(t, r, `{
        "timestamps": false,
        "inputs": [
            {"source": "a.wav", "duration": 5},
            {"source": "b.wav", "duration": 700}
        ]
    }`)
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d, body: %s", w.Code, w.Body.String())
	}

	var resp scheduler.TranscribeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.Results))
	}
	if !strings.Contains(resp.Results[0].Text, "a.wav") {
		t.Errorf("results[0] = %q, want a.wav transcript first", resp.Results[0].Text)
	}
	if !strings.Contains(resp.Results[1].Text, "b.wav") {
		t.Errorf("results[1] = %q, want b.wav transcript second", resp.Results[1].Text)
	}
	if resp.Results[0].DurationSec != 5 || resp.Results[1].DurationSec != 700 {
		t.Errorf("durations not passed through: %+v", resp.Results)
	}
}

func TestTranscribeInputEnvelope(t *testing.T) {
	// serverless-style wrapper: { "input": { ... } }
	r := testRouter(t)
	w := postJSON(t, r, `{"input": {"timestamps": false, "inputs": [{"source": "a.wav", "duration": 5}]}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d, body: %s", w.Code, w.Body.String())
	}

	var resp scheduler.TranscribeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(resp.Results))
	}
}

func TestTranscribeBadExtensionRejected(t *testing.T) {
	r := testRouter(t)
	w := postJSON(t, r, `{"inputs": [{"source": "song.mp3", "duration": 5}]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "song.mp3") {
		t.Errorf("error body does not name the source: %s", w.Body.String())
	}
}

func TestTranscribeMalformedBody(t *testing.T) {
	r := testRouter(t)
	w := postJSON(t, r, `{"inputs": `)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: %d, want 400", w.Code)
	}
}

func TestHealthcheck(t *testing.T) {
	r := testRouter(t)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/healthcheck", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
}
