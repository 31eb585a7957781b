package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func testLogger(t *testing.T) *zap.Logger {
	cfg := zap.NewProductionConfig()
	l, err := cfg.Build()
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func TestHTTPEngineTranscribe(t *testing.T) {
	var gotReq transcribeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/transcribe" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		outs := make([]Output, len(gotReq.Paths))
		for i := range gotReq.Paths {
			outs[i] = Output{Text: "hello"}
			if gotReq.Timestamps {
				outs[i].Timestamp = &Timestamp{
					Word: []WordStamp{{Word: "hello", Start: 0, End: 0.4}},
				}
			}
		}
		json.NewEncoder(w).Encode(transcribeResponse{Results: outs})
	}))
	defer srv.Close()

	e := NewHTTPEngine(Config{Endpoint: srv.URL}, testLogger(t))
	outs, err := e.Transcribe(context.Background(), []string{"/tmp/a.wav", "/tmp/b.wav"}, true)
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if len(outs) != 2 {
		t.Fatalf("expected 2 outputs, got %d", len(outs))
	}
	if !gotReq.Timestamps {
		t.Error("timestamps flag not forwarded")
	}
	if outs[0].Timestamp == nil || len(outs[0].Timestamp.Word) != 1 {
		t.Error("word timestamps not decoded")
	}
}

func TestHTTPEngineTranscribeBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	e := NewHTTPEngine(Config{Endpoint: srv.URL}, testLogger(t))
	if _, err := e.Transcribe(context.Background(), []string{"/tmp/a.wav"}, false); err == nil {
		t.Fatal("expected error from 503 backend")
	}
}

func TestHTTPEngineSetAttentionMode(t *testing.T) {
	var gotReq attentionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/attention" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	e := NewHTTPEngine(Config{Endpoint: srv.URL}, testLogger(t))
	if err := e.SetAttentionMode(context.Background(), AttentionWindowed, 256); err != nil {
		t.Fatalf("SetAttentionMode failed: %v", err)
	}
	if gotReq.Mode != AttentionWindowed || gotReq.ContextWindow != 256 {
		t.Errorf("unexpected attention request: %+v", gotReq)
	}
}

func TestHTTPEngineSetAttentionModeRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "variant does not support switching", http.StatusConflict)
	}))
	defer srv.Close()

	e := NewHTTPEngine(Config{Endpoint: srv.URL}, testLogger(t))
	if err := e.SetAttentionMode(context.Background(), AttentionGlobal, 0); err == nil {
		t.Fatal("expected error from rejected switch")
	}
}

func TestDryRunEngine(t *testing.T) {
	e := NewDryRunEngine()
	outs, err := e.Transcribe(context.Background(), []string{"x.wav"}, false)
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if len(outs) != 1 || outs[0].Text == "" {
		t.Fatalf("unexpected outputs: %+v", outs)
	}
	if err := e.SetAttentionMode(context.Background(), AttentionWindowed, 256); err != nil {
		t.Fatalf("SetAttentionMode failed: %v", err)
	}
}
