// Package stream accumulates token frequencies from large inputs without
// holding the whole text in memory.
package stream

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/baditaflorin/go_ocr_similarity/internal/core/wordmatch"
	"github.com/baditaflorin/go_ocr_similarity/internal/ports"
)

const (
	// DefaultBufferSize is the initial scanner buffer size.
	DefaultBufferSize = 64 * 1024 // 64KB
	// MaxLineSize bounds a single input line.
	MaxLineSize = 4 * 1024 * 1024 // 4MB
	// ContextCheckFrequency defines how often cancellation is checked.
	ContextCheckFrequency = 500 // lines
)

// Counter reads an input line by line, tokenizing each line and folding the
// tokens into a wordmatch.TokenCounts.
//
// A line break is a hard token boundary in this mode: joining punctuation
// never fuses tokens across lines, unlike whole-text normalization where a
// comma may swallow an adjacent newline. Callers comparing against
// whole-text results should keep joining punctuation within a line.
type Counter struct {
	logger     ports.Logger
	tokenizer  ports.Tokenizer
	bufferSize int
}

// NewCounter creates a streaming token counter.
func NewCounter(logger ports.Logger, tokenizer ports.Tokenizer, bufferSize int) *Counter {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Counter{
		logger:     logger,
		tokenizer:  tokenizer,
		bufferSize: bufferSize,
	}
}

// Count consumes reader and returns the token multiset of its contents.
func (c *Counter) Count(ctx context.Context, reader io.Reader) (wordmatch.TokenCounts, error) {
	start := time.Now()
	var counts wordmatch.TokenCounts
	var lines int

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, c.bufferSize), MaxLineSize)

	for scanner.Scan() {
		lines++
		if lines%ContextCheckFrequency == 0 {
			select {
			case <-ctx.Done():
				return wordmatch.TokenCounts{}, ctx.Err()
			default:
			}
		}
		for _, token := range c.tokenizer.Tokenize(scanner.Text()) {
			counts.Add(token)
		}
	}
	if err := scanner.Err(); err != nil {
		return wordmatch.TokenCounts{}, fmt.Errorf("scanning input: %w", err)
	}

	c.logger.Debug("Counted stream tokens",
		"lines", lines,
		"tokens", counts.Total,
		"distinct", len(counts.Order),
		"elapsed", time.Since(start),
	)
	return counts, nil
}
