package engine

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/valyala/fasthttp"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Warn(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Close() error                          { return nil }

func TestNewRemoteValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  RemoteConfig
		wantErr bool
	}{
		{"Valid", RemoteConfig{URL: "http://localhost/run", Model: ModelDoctr}, false},
		{"Missing URL", RemoteConfig{Model: ModelDoctr}, true},
		{"Missing model", RemoteConfig{URL: "http://localhost/run"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRemote(tt.config, nopLogger{})
			if (err != nil) != tt.wantErr {
				t.Errorf("NewRemote() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewRemoteDefaultTimeout(t *testing.T) {
	r, err := NewRemote(RemoteConfig{URL: "http://localhost/run", Model: ModelSurya}, nopLogger{})
	if err != nil {
		t.Fatalf("NewRemote failed: %v", err)
	}
	if r.config.Timeout != DefaultTimeout {
		t.Errorf("expected default timeout %v, got %v", DefaultTimeout, r.config.Timeout)
	}
}

// startRecognitionServer runs a loopback endpoint speaking the recognition
// API and returns its URL.
func startRecognitionServer(t *testing.T, handler fasthttp.RequestHandler) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}
	go fasthttp.Serve(ln, handler)
	t.Cleanup(func() { ln.Close() })
	return "http://" + ln.Addr().String() + "/runsync"
}

func TestRecognize(t *testing.T) {
	image := []byte("fake image bytes")

	url := startRecognitionServer(t, func(ctx *fasthttp.RequestCtx) {
		if string(ctx.Method()) != fasthttp.MethodPost {
			ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
			return
		}
		if auth := string(ctx.Request.Header.Peek("Authorization")); auth != "Bearer test-key" {
			ctx.SetStatusCode(fasthttp.StatusUnauthorized)
			return
		}

		var req recognizeRequest
		if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
			ctx.SetStatusCode(fasthttp.StatusBadRequest)
			return
		}
		if req.Input.Model != ModelDoctr || req.Input.Format != "base64" {
			ctx.SetStatusCode(fasthttp.StatusBadRequest)
			return
		}
		if req.Input.Data != base64.StdEncoding.EncodeToString(image) {
			ctx.SetStatusCode(fasthttp.StatusBadRequest)
			return
		}

		ctx.SetContentType("application/json")
		ctx.SetBodyString(`{"output": {"data": [{"custom_text": "invoice total $500"}]}}`)
	})

	remote, err := NewRemote(RemoteConfig{
		URL:    url,
		APIKey: "test-key",
		Model:  ModelDoctr,
	}, nopLogger{})
	if err != nil {
		t.Fatalf("NewRemote failed: %v", err)
	}

	text, err := remote.Recognize(context.Background(), image)
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	if text != "invoice total $500" {
		t.Errorf("unexpected text %q", text)
	}
}

func TestRecognizeFallsBackToText(t *testing.T) {
	url := startRecognitionServer(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetBodyString(`{"output": {"data": [{"text": "plain text field"}]}}`)
	})

	remote, err := NewRemote(RemoteConfig{URL: url, Model: ModelSurya}, nopLogger{})
	if err != nil {
		t.Fatalf("NewRemote failed: %v", err)
	}

	text, err := remote.Recognize(context.Background(), []byte("img"))
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	if text != "plain text field" {
		t.Errorf("unexpected text %q", text)
	}
}

func TestRecognizeErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler fasthttp.RequestHandler
	}{
		{
			name: "Non-200 status",
			handler: func(ctx *fasthttp.RequestCtx) {
				ctx.SetStatusCode(fasthttp.StatusInternalServerError)
			},
		},
		{
			name: "API error field",
			handler: func(ctx *fasthttp.RequestCtx) {
				ctx.SetBodyString(`{"error": "model not loaded"}`)
			},
		},
		{
			name: "Empty data list",
			handler: func(ctx *fasthttp.RequestCtx) {
				ctx.SetBodyString(`{"output": {"data": []}}`)
			},
		},
		{
			name: "Malformed body",
			handler: func(ctx *fasthttp.RequestCtx) {
				ctx.SetBodyString(`not json`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url := startRecognitionServer(t, tt.handler)
			remote, err := NewRemote(RemoteConfig{URL: url, Model: ModelDoctr}, nopLogger{})
			if err != nil {
				t.Fatalf("NewRemote failed: %v", err)
			}
			if _, err := remote.Recognize(context.Background(), []byte("img")); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestRecognizeExpiredContext(t *testing.T) {
	remote, err := NewRemote(RemoteConfig{URL: "http://localhost:1/run", Model: ModelDoctr}, nopLogger{})
	if err != nil {
		t.Fatalf("NewRemote failed: %v", err)
	}

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	if _, err := remote.Recognize(ctx, []byte("img")); err == nil {
		t.Error("expected an error for an expired context")
	}
}
