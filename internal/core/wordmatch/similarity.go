// Package wordmatch implements the multiset word-matching algorithm that
// scores a candidate OCR text against a reference text.
package wordmatch

import (
	"context"
	"errors"
	"math"

	"github.com/baditaflorin/go_ocr_similarity/internal/core/domain"
	"github.com/baditaflorin/go_ocr_similarity/internal/ports"
)

const metricName = "word_similarity"

// SimilarityConfig holds configuration for the word similarity calculator.
type SimilarityConfig struct {
	// Threshold is the pass/fail score boundary on the 0-100 scale.
	Threshold float64
	// Precision is the number of decimal places the score is rounded to.
	Precision int
}

// DefaultConfig returns a default configuration.
func DefaultConfig() SimilarityConfig {
	return SimilarityConfig{
		Threshold: 70,
		Precision: 3,
	}
}

// Validate checks if the configuration is valid.
func (c SimilarityConfig) Validate() error {
	if c.Threshold < 0 || c.Threshold > 100 {
		return errors.New("threshold must be between 0 and 100")
	}
	if c.Precision < 0 {
		return errors.New("precision must not be negative")
	}
	return nil
}

// Calculator implements the word-level multiset similarity calculation.
// Matching is count-based, not positional: word order has no bearing on the
// score, only per-word multiplicities matter.
type Calculator struct {
	config    SimilarityConfig
	logger    ports.Logger
	tokenizer ports.Tokenizer
}

// NewCalculator creates a new word similarity calculator.
func NewCalculator(config SimilarityConfig, logger ports.Logger, tokenizer ports.Tokenizer) (*Calculator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{
		config:    config,
		logger:    logger,
		tokenizer: tokenizer,
	}, nil
}

// Compute scores candidate against reference.
//
// Every distinct reference token w with reference count r and candidate
// count c contributes min(r, c) matched occurrences; the remaining r-c
// occurrences are reported missing. Candidate tokens absent from the
// reference never reduce the score; callers wanting an "extra words" view
// compose a second Compute with the arguments swapped.
func (c *Calculator) Compute(ctx context.Context, reference, candidate string) domain.Result {
	c.logger.Debug("Starting word similarity computation",
		"reference_len", len(reference),
		"candidate_len", len(candidate),
	)

	// Check for context cancellation before tokenizing.
	select {
	case <-ctx.Done():
		c.logger.Error("Computation cancelled", "error", ctx.Err())
		details := map[string]interface{}{"error": "computation cancelled"}
		return domain.Result{
			Name:      metricName,
			Score:     0,
			Passed:    false,
			Threshold: c.config.Threshold,
			Details:   details,
		}
	default:
	}

	refCounts := CountTokens(c.tokenizer.Tokenize(reference))
	candCounts := CountTokens(c.tokenizer.Tokenize(candidate))

	c.logger.Debug("Tokenized texts",
		"reference_words", refCounts.Total,
		"candidate_words", candCounts.Total,
	)

	return c.CompareCounts(refCounts, candCounts)
}

// CompareCounts scores a candidate token multiset against a reference token
// multiset. This is the shared core behind Compute and the streaming path.
func (c *Calculator) CompareCounts(ref, cand TokenCounts) domain.Result {
	details := make(map[string]interface{})

	// Empty reference boundary: perfect if the candidate is also empty,
	// total failure otherwise. No partial credit.
	if ref.Total == 0 {
		score := 0.0
		if cand.Total == 0 {
			score = 100.0
		}
		details["empty_reference"] = true
		return domain.Result{
			Name:      metricName,
			Score:     score,
			Passed:    score >= c.config.Threshold,
			Threshold: c.config.Threshold,
			Details:   details,
		}
	}

	correct := 0
	var missing []string
	var pairs []domain.MismatchPair
	for _, w := range ref.Order {
		matched := min(ref.ByToken[w], cand.ByToken[w])
		correct += matched
		for i := 0; i < ref.ByToken[w]-matched; i++ {
			missing = append(missing, w)
			pairs = append(pairs, domain.MismatchPair{Expected: w, Status: domain.StatusMissing})
		}
	}

	total := ref.Total
	score := c.round(100 * float64(correct) / float64(total))
	passed := score >= c.config.Threshold

	details["reference_word_count"] = total
	details["candidate_word_count"] = cand.Total
	details["threshold"] = c.config.Threshold

	c.logger.Debug("Computed word similarity",
		"score", score,
		"correct", correct,
		"missing", len(missing),
		"passed", passed,
	)

	return domain.Result{
		Name:               metricName,
		Score:              score,
		Passed:             passed,
		Threshold:          c.config.Threshold,
		ReferenceWordCount: total,
		CorrectWordCount:   correct,
		IncorrectWordCount: total - correct,
		MissingWords:       missing,
		MismatchPairs:      pairs,
		Details:            details,
	}
}

func (c *Calculator) round(v float64) float64 {
	factor := math.Pow(10, float64(c.config.Precision))
	return math.Round(v*factor) / factor
}
