// Command server exposes the OCR word-similarity comparison over a fasthttp
// JSON API.
//
// Endpoints:
//
//	GET  /health   liveness check
//	POST /compare  score one candidate text against a reference text
//	POST /batch    score many document pairs and return the batch summary
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	ocrsimilarity "github.com/baditaflorin/go_ocr_similarity"
	"github.com/baditaflorin/go_ocr_similarity/internal/config"
	"github.com/baditaflorin/go_ocr_similarity/internal/core/domain"
	"github.com/baditaflorin/go_ocr_similarity/internal/core/report"
	"github.com/baditaflorin/go_ocr_similarity/pkg/batch"
	"github.com/baditaflorin/l"
	"github.com/joho/godotenv"
	"github.com/valyala/fasthttp"
)

// Default configuration
const (
	DefaultPort           = 8080
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultMaxRequestSize = 10 * 1024 * 1024 // 10MB
	DefaultConcurrency    = 0                // 0 means fasthttp's default
)

var (
	similarity *ocrsimilarity.WordSimilarity
	runner     *batch.Runner
	topMissing int
	logger     l.Logger
)

// CompareRequest is a single comparison request.
type CompareRequest struct {
	Reference string `json:"reference"`
	Candidate string `json:"candidate"`
	LabelA    string `json:"label_a,omitempty"`
	LabelB    string `json:"label_b,omitempty"`
	TopN      int    `json:"top_n,omitempty"`
}

// BatchRequest scores many document pairs.
type BatchRequest struct {
	Documents []BatchDocument `json:"documents"`
}

// BatchDocument is one reference/candidate pair.
type BatchDocument struct {
	ID        string `json:"id"`
	Reference string `json:"reference"`
	Candidate string `json:"candidate"`
}

// BatchResponse carries the batch summary plus per-document scores.
type BatchResponse struct {
	Summary   domain.BatchSummary  `json:"summary"`
	Documents []BatchDocumentScore `json:"documents"`
}

// BatchDocumentScore is the per-document slice of a batch response.
type BatchDocumentScore struct {
	ID     string  `json:"id"`
	Score  float64 `json:"score"`
	Passed bool    `json:"passed"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

func main() {
	port := flag.Int("port", DefaultPort, "HTTP server port")
	readTimeout := flag.Duration("read-timeout", DefaultReadTimeout, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", DefaultWriteTimeout, "HTTP write timeout")
	maxRequestSize := flag.Int("max-request-size", DefaultMaxRequestSize, "Maximum request size in bytes")
	concurrency := flag.Int("concurrency", DefaultConcurrency, "Maximum number of concurrent requests")
	warmUp := flag.Bool("warm-up", true, "Perform system warm-up on startup")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	topMissing = cfg.Report.TopMissing

	logger, err = ocrsimilarity.NewDefaultLogger(os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Info("Starting OCR similarity server",
		"port", *port,
		"read_timeout", *readTimeout,
		"write_timeout", *writeTimeout,
		"max_request_size", *maxRequestSize,
		"threshold", cfg.Comparison.Threshold,
	)

	opts := []ocrsimilarity.Option{
		ocrsimilarity.WithThreshold(cfg.Comparison.Threshold),
		ocrsimilarity.WithPrecision(cfg.Comparison.Precision),
		ocrsimilarity.WithLogger(logger),
		ocrsimilarity.WithOptimizedNormalizer(),
	}
	if *warmUp {
		opts = append(opts, ocrsimilarity.WithWarmUp(true))
	}
	similarity, err = ocrsimilarity.New(opts...)
	if err != nil {
		logger.Error("Error initializing similarity calculator", "error", err)
		os.Exit(1)
	}
	runner = batch.NewRunner(similarity)

	server := &fasthttp.Server{
		Handler:               requestHandler,
		ReadTimeout:           *readTimeout,
		WriteTimeout:          *writeTimeout,
		MaxRequestBodySize:    *maxRequestSize,
		Concurrency:           *concurrency,
		DisableKeepalive:      false,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		logger.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			logger.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	logger.Info("Server listening", "address", fmt.Sprintf(":%d", *port))
	if err := server.ListenAndServe(fmt.Sprintf(":%d", *port)); err != nil {
		logger.Error("Server error", "error", err)
	}
	<-idleConnsClosed
}

func requestHandler(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/health":
		handleHealthCheck(ctx)
	case "/compare":
		handleCompare(ctx)
	case "/batch":
		handleBatch(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		writeJSONError(ctx, "not found")
	}
}

func handleHealthCheck(ctx *fasthttp.RequestCtx) {
	writeJSONResponse(ctx, map[string]string{"status": "ok"})
}

func handleCompare(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "POST required")
		return
	}

	var req CompareRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, fmt.Sprintf("invalid request: %v", err))
		return
	}

	result := similarity.Compare(ctx, req.Reference, req.Candidate)
	topN := req.TopN
	if topN <= 0 {
		topN = topMissing
	}
	view := report.Build(result, req.LabelA, req.LabelB, topN)
	writeJSONResponse(ctx, view)
}

func handleBatch(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "POST required")
		return
	}

	var req BatchRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, fmt.Sprintf("invalid request: %v", err))
		return
	}
	if len(req.Documents) == 0 {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "documents required")
		return
	}

	docs := make([]batch.Document, len(req.Documents))
	for i, d := range req.Documents {
		docs[i] = batch.Document{ID: d.ID, Reference: d.Reference, Candidate: d.Candidate}
	}

	results := runner.Run(ctx, docs)
	resp := BatchResponse{Summary: batch.Summarize(results)}
	for _, dr := range results {
		resp.Documents = append(resp.Documents, BatchDocumentScore{
			ID:     dr.ID,
			Score:  dr.Result.Score,
			Passed: dr.Result.Passed,
		})
	}
	writeJSONResponse(ctx, resp)
}

func writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	ctx.SetContentType("application/json")
	body, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		writeJSONError(ctx, "failed to encode response")
		return
	}
	ctx.SetBody(body)
}

func writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	ctx.SetContentType("application/json")
	body, _ := json.Marshal(ErrorResponse{Error: message})
	ctx.SetBody(body)
}
