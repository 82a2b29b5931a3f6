// Package tokenizer splits normalized text into word tokens.
package tokenizer

import (
	"strings"

	"github.com/baditaflorin/go_ocr_similarity/internal/adapters/normalizer"
	"github.com/baditaflorin/go_ocr_similarity/internal/ports"
)

// WordTokenizer normalizes text and splits it on whitespace. It is pure and
// deterministic: no token is empty or contains whitespace, and token order
// follows the reading order of the normalized text.
type WordTokenizer struct {
	normalizer ports.Normalizer
}

// New creates a tokenizer over the given normalizer.
func New(n ports.Normalizer) *WordTokenizer {
	return &WordTokenizer{normalizer: n}
}

// NewDefault creates a tokenizer over the default normalizer.
func NewDefault() *WordTokenizer {
	return New(normalizer.NewDefaultNormalizer())
}

// Tokenize returns the word tokens of text. Input that normalizes to the
// empty string yields an empty slice.
func (t *WordTokenizer) Tokenize(text string) []string {
	return strings.Fields(t.normalizer.Normalize(text))
}

// Normalize exposes the underlying normalization, so callers holding a
// tokenizer do not need a second handle.
func (t *WordTokenizer) Normalize(text string) string {
	return t.normalizer.Normalize(text)
}
