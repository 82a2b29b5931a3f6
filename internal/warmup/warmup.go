// Package warmup pre-exercises calculators and normalizers so pools and the
// runtime are warm before the first real comparison is timed.
package warmup

import (
	"context"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/baditaflorin/go_ocr_similarity/internal/ports"
)

// Config defines how aggressively the system is warmed up.
type Config struct {
	// Concurrency is the number of warm-up goroutines.
	Concurrency int
	// Iterations per goroutine.
	Iterations int
	// SampleWords is the word count of the generated sample text.
	SampleWords int
	// Duration bounds the warm-up (0 means no limit).
	Duration time.Duration
	// ForceGC triggers a collection after warm-up.
	ForceGC bool
}

// DefaultConfig returns the default warm-up configuration.
func DefaultConfig() Config {
	return Config{
		Concurrency: runtime.NumCPU(),
		Iterations:  200,
		SampleWords: 500,
		Duration:    2 * time.Second,
		ForceGC:     true,
	}
}

// Manager runs warm-up rounds over registered components.
type Manager struct {
	logger      ports.Logger
	calculators []ports.SimilarityCalculator
	normalizers []ports.Normalizer
	config      Config
}

// NewManager creates a new warm-up manager.
func NewManager(logger ports.Logger, config Config) *Manager {
	return &Manager{logger: logger, config: config}
}

// RegisterCalculator adds a calculator to be warmed up.
func (m *Manager) RegisterCalculator(calc ports.SimilarityCalculator) {
	m.calculators = append(m.calculators, calc)
}

// RegisterNormalizer adds a normalizer to be warmed up.
func (m *Manager) RegisterNormalizer(norm ports.Normalizer) {
	m.normalizers = append(m.normalizers, norm)
}

// WarmUp runs the warm-up rounds. It returns once all rounds finish or the
// configured duration elapses.
func (m *Manager) WarmUp(ctx context.Context) {
	start := time.Now()
	m.logger.Info("Starting warmup",
		"components", len(m.calculators)+len(m.normalizers),
		"concurrency", m.config.Concurrency,
		"iterations", m.config.Iterations,
	)

	if m.config.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.config.Duration)
		defer cancel()
	}

	reference := sampleText(m.config.SampleWords)
	candidate := sampleText(m.config.SampleWords * 9 / 10)

	var wg sync.WaitGroup
	for i := 0; i < m.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for it := 0; it < m.config.Iterations; it++ {
				select {
				case <-ctx.Done():
					return
				default:
				}
				for _, norm := range m.normalizers {
					norm.Normalize(reference)
				}
				for _, calc := range m.calculators {
					calc.Compute(ctx, reference, candidate)
				}
			}
		}()
	}
	wg.Wait()

	if m.config.ForceGC {
		runtime.GC()
	}

	m.logger.Info("Warmup complete", "elapsed", time.Since(start))
}

// sampleText builds a deterministic sample with OCR-like punctuation so the
// joining and preserved character paths are exercised.
func sampleText(words int) string {
	vocab := []string{
		"invoice", "#10234", "total", "$1,250", "15/09/2024",
		"amount", "due", "net", "30", "days", "ref", "a-113",
	}
	var sb strings.Builder
	for i := 0; i < words; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(vocab[i%len(vocab)])
	}
	return sb.String()
}
