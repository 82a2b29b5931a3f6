// Package engine invokes remote text recognition over HTTP. The client is
// explicitly constructed and owned by its caller; the module keeps no
// process-wide engine handle.
package engine

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/baditaflorin/go_ocr_similarity/internal/ports"
	"github.com/valyala/fasthttp"
)

// Model names accepted by the recognition endpoint.
const (
	ModelDoctr = "doctr"
	ModelSurya = "surya"
)

// DefaultTimeout bounds one recognition call. Recognition of a dense page
// can take minutes on a cold endpoint.
const DefaultTimeout = 10 * time.Minute

// RemoteConfig configures the recognition endpoint.
type RemoteConfig struct {
	// URL of the synchronous recognition endpoint.
	URL string
	// APIKey is sent as a bearer token.
	APIKey string
	// Model selects the recognition model.
	Model string
	// Timeout per call; DefaultTimeout when zero.
	Timeout time.Duration
}

type recognizeRequest struct {
	Input recognizeInput `json:"input"`
}

type recognizeInput struct {
	Model  string `json:"model"`
	Type   string `json:"type"`
	Format string `json:"format"`
	Data   string `json:"data"`
}

type recognizeResponse struct {
	Output struct {
		Data []struct {
			CustomText string   `json:"custom_text"`
			Text       string   `json:"text"`
			Words      []string `json:"words"`
		} `json:"data"`
	} `json:"output"`
	Error string `json:"error"`
}

// Remote is a fasthttp-based client for the recognition API.
type Remote struct {
	config RemoteConfig
	client *fasthttp.Client
	logger ports.Logger
}

// NewRemote creates a recognition client.
func NewRemote(config RemoteConfig, logger ports.Logger) (*Remote, error) {
	if config.URL == "" {
		return nil, errors.New("engine: endpoint URL required")
	}
	if config.Model == "" {
		return nil, errors.New("engine: model required")
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	return &Remote{
		config: config,
		client: &fasthttp.Client{
			ReadTimeout:  config.Timeout,
			WriteTimeout: 30 * time.Second,
		},
		logger: logger,
	}, nil
}

// Recognize submits an image and returns the recognized text. The image is
// sent base64-encoded in a JSON envelope; the response carries the text on
// the first element of output.data.
func (r *Remote) Recognize(ctx context.Context, image []byte) (string, error) {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) <= 0 {
		return "", ctx.Err()
	}

	payload, err := json.Marshal(recognizeRequest{
		Input: recognizeInput{
			Model:  r.config.Model,
			Type:   "image",
			Format: "base64",
			Data:   base64.StdEncoding.EncodeToString(image),
		},
	})
	if err != nil {
		return "", fmt.Errorf("engine: encoding request: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(r.config.URL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if r.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.config.APIKey)
	}
	req.SetBody(payload)

	r.logger.Debug("Submitting recognition request",
		"model", r.config.Model,
		"image_bytes", len(image),
	)

	timeout := r.config.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if err := r.client.DoTimeout(req, resp, timeout); err != nil {
		return "", fmt.Errorf("engine: calling %s: %w", r.config.URL, err)
	}
	if code := resp.StatusCode(); code != fasthttp.StatusOK {
		return "", fmt.Errorf("engine: %s returned status %d", r.config.URL, code)
	}

	var decoded recognizeResponse
	if err := json.Unmarshal(resp.Body(), &decoded); err != nil {
		return "", fmt.Errorf("engine: decoding response: %w", err)
	}
	if decoded.Error != "" {
		return "", fmt.Errorf("engine: %s", decoded.Error)
	}
	if len(decoded.Output.Data) == 0 {
		return "", errors.New("engine: response carries no recognition data")
	}

	first := decoded.Output.Data[0]
	if first.CustomText != "" {
		return first.CustomText, nil
	}
	return first.Text, nil
}

var _ ports.Engine = (*Remote)(nil)
