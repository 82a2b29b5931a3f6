package stream

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/baditaflorin/go_ocr_similarity/internal/adapters/tokenizer"
	"github.com/baditaflorin/go_ocr_similarity/internal/core/wordmatch"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Warn(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Close() error                          { return nil }

func TestCount(t *testing.T) {
	counter := NewCounter(nopLogger{}, tokenizer.NewDefault(), 0)

	input := "invoice #10234\ntotal $1,250\ninvoice paid\n"
	counts, err := counter.Count(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}

	if counts.Total != 6 {
		t.Errorf("expected 6 tokens, got %d", counts.Total)
	}
	if counts.ByToken["invoice"] != 2 {
		t.Errorf("expected 'invoice' counted twice, got %d", counts.ByToken["invoice"])
	}
	if counts.ByToken["$1250"] != 1 {
		t.Errorf("expected '$1250' counted once, got %d", counts.ByToken["$1250"])
	}
	if counts.Order[0] != "invoice" {
		t.Errorf("expected first-seen order to start with 'invoice', got %v", counts.Order)
	}
}

func TestCountMatchesWholeTokenization(t *testing.T) {
	tok := tokenizer.NewDefault()
	counter := NewCounter(nopLogger{}, tok, 0)

	// For single-line input the streamed multiset equals the whole-text one.
	input := "alpha beta alpha gamma $500"
	streamed, err := counter.Count(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	whole := wordmatch.CountTokens(tok.Tokenize(input))

	if !reflect.DeepEqual(streamed, whole) {
		t.Errorf("streamed counts %+v differ from whole-text counts %+v", streamed, whole)
	}
}

func TestCountEmptyInput(t *testing.T) {
	counter := NewCounter(nopLogger{}, tokenizer.NewDefault(), 0)

	counts, err := counter.Count(context.Background(), strings.NewReader(""))
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if counts.Total != 0 || len(counts.Order) != 0 {
		t.Errorf("expected empty counts, got %+v", counts)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk error")
}

func TestCountReadError(t *testing.T) {
	counter := NewCounter(nopLogger{}, tokenizer.NewDefault(), 0)

	_, err := counter.Count(context.Background(), failingReader{})
	if err == nil {
		t.Fatal("expected an error from a failing reader")
	}
	if !strings.Contains(err.Error(), "disk error") {
		t.Errorf("expected wrapped reader error, got %v", err)
	}
}

func TestCountCancellation(t *testing.T) {
	counter := NewCounter(nopLogger{}, tokenizer.NewDefault(), 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Enough lines to hit a cancellation checkpoint.
	input := strings.Repeat("word\n", ContextCheckFrequency+1)
	_, err := counter.Count(ctx, strings.NewReader(input))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
