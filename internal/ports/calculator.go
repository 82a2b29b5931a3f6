package ports

import (
	"context"

	"github.com/baditaflorin/go_ocr_similarity/internal/core/domain"
)

// SimilarityCalculator defines the interface for comparing a candidate text
// against a reference text.
type SimilarityCalculator interface {
	Compute(ctx context.Context, reference, candidate string) domain.Result
}
