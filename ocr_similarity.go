// ocr_similarity.go
// Package ocrsimilarity computes a word-level similarity score between a
// reference text (ground truth or another OCR engine's output) and a
// candidate OCR text. Both texts are normalized and tokenized, then matched
// as multisets: the score is
//
//	score = round(100 * matched_reference_words / total_reference_words)
//
// with per-occurrence reporting of reference words missing from the
// candidate. Matching is order-independent; candidate words absent from the
// reference never reduce the score.
//
// Configuration uses the functional options pattern for threshold,
// precision, logging, and normalization strategy.
package ocrsimilarity

import (
	"context"
	"io"

	"github.com/baditaflorin/go_ocr_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_ocr_similarity/internal/adapters/normalizer"
	"github.com/baditaflorin/go_ocr_similarity/internal/adapters/stream"
	"github.com/baditaflorin/go_ocr_similarity/internal/adapters/tokenizer"
	"github.com/baditaflorin/go_ocr_similarity/internal/core/domain"
	"github.com/baditaflorin/go_ocr_similarity/internal/core/wordmatch"
	"github.com/baditaflorin/go_ocr_similarity/internal/ports"
	"github.com/baditaflorin/go_ocr_similarity/internal/warmup"
	"github.com/baditaflorin/l"
)

// WordSimilarity provides methods to compute the word-level OCR similarity
// metric.
type WordSimilarity struct {
	calculator *wordmatch.Calculator
	tokenizer  ports.Tokenizer
	logger     ports.Logger
	normalizer ports.Normalizer
	warmed     bool
}

// Option defines a functional option for configuring WordSimilarity.
type Option func(*config)

type config struct {
	Threshold    float64
	Precision    int
	Logger       ports.Logger
	Normalizer   ports.Normalizer
	WarmUp       bool
	WarmUpConfig warmup.Config
}

// WithThreshold sets a custom pass/fail threshold on the 0-100 scale.
func WithThreshold(th float64) Option {
	return func(cfg *config) {
		cfg.Threshold = th
	}
}

// WithPrecision sets the number of decimal places the score is rounded to.
func WithPrecision(p int) Option {
	return func(cfg *config) {
		cfg.Precision = p
	}
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *config) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithNormalizer sets a custom normalizer.
func WithNormalizer(n ports.Normalizer) Option {
	return func(cfg *config) {
		cfg.Normalizer = n
	}
}

// WithOptimizedNormalizer selects the pooled single-pass normalizer.
func WithOptimizedNormalizer() Option {
	return func(cfg *config) {
		factory := normalizer.NewNormalizerFactory()
		cfg.Normalizer = factory.CreateNormalizer(normalizer.OptimizedNormalizerType)
	}
}

// WithWarmUp enables system warm-up on initialization.
func WithWarmUp(enable bool) Option {
	return func(cfg *config) {
		cfg.WarmUp = enable
	}
}

// WithWarmUpConfig sets a custom warm-up configuration and enables warm-up.
func WithWarmUpConfig(wc warmup.Config) Option {
	return func(cfg *config) {
		cfg.WarmUpConfig = wc
		cfg.WarmUp = true
	}
}

// New creates a new WordSimilarity instance.
func New(opts ...Option) (*WordSimilarity, error) {
	defaults := wordmatch.DefaultConfig()

	cfg := &config{
		Threshold:    defaults.Threshold,
		Precision:    defaults.Precision,
		WarmUpConfig: warmup.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		var err error
		cfg.Logger, err = logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
	}
	if cfg.Normalizer == nil {
		cfg.Normalizer = normalizer.NewDefaultNormalizer()
	}

	tok := tokenizer.New(cfg.Normalizer)
	calculator, err := wordmatch.NewCalculator(wordmatch.SimilarityConfig{
		Threshold: cfg.Threshold,
		Precision: cfg.Precision,
	}, cfg.Logger, tok)
	if err != nil {
		return nil, err
	}

	ws := &WordSimilarity{
		calculator: calculator,
		tokenizer:  tok,
		logger:     cfg.Logger,
		normalizer: cfg.Normalizer,
	}

	if cfg.WarmUp {
		ws.WarmUp(context.Background(), cfg.WarmUpConfig)
	}

	return ws, nil
}

// Compare scores candidate against reference.
func (ws *WordSimilarity) Compare(ctx context.Context, reference, candidate string) domain.Result {
	return ws.calculator.Compute(ctx, reference, candidate)
}

// CompareStreams scores a candidate against a reference, reading both
// incrementally instead of holding the full texts in memory. Line breaks act
// as hard token boundaries, so joining punctuation never fuses tokens across
// lines.
func (ws *WordSimilarity) CompareStreams(ctx context.Context, reference, candidate io.Reader) (domain.Result, error) {
	counter := stream.NewCounter(ws.logger, ws.tokenizer, 0)
	refCounts, err := counter.Count(ctx, reference)
	if err != nil {
		return domain.Result{}, err
	}
	candCounts, err := counter.Count(ctx, candidate)
	if err != nil {
		return domain.Result{}, err
	}
	return ws.calculator.CompareCounts(refCounts, candCounts), nil
}

// Tokenize exposes the configured normalization + tokenization, for callers
// that need the token stream itself.
func (ws *WordSimilarity) Tokenize(text string) []string {
	return ws.tokenizer.Tokenize(text)
}

// WarmUp pre-exercises the calculator and normalizer.
func (ws *WordSimilarity) WarmUp(ctx context.Context, cfg warmup.Config) {
	if ws.warmed {
		ws.logger.Debug("System already warmed up, skipping")
		return
	}

	mgr := warmup.NewManager(ws.logger, cfg)
	mgr.RegisterCalculator(ws.calculator)
	mgr.RegisterNormalizer(ws.normalizer)
	mgr.WarmUp(ctx)
	ws.warmed = true
}
