package normalizer

import "github.com/baditaflorin/go_ocr_similarity/internal/ports"

// Type selects a normalizer implementation.
type Type int

const (
	// DefaultNormalizerType is the pass-ordered reference implementation.
	DefaultNormalizerType Type = iota
	// OptimizedNormalizerType is the pooled single-pass implementation.
	OptimizedNormalizerType
)

// Factory creates normalizer instances.
type Factory struct{}

// NewNormalizerFactory creates a new normalizer factory.
func NewNormalizerFactory() *Factory {
	return &Factory{}
}

// CreateNormalizer returns a normalizer of the requested type.
func (f *Factory) CreateNormalizer(t Type) ports.Normalizer {
	switch t {
	case OptimizedNormalizerType:
		return NewOptimizedNormalizer()
	default:
		return NewDefaultNormalizer()
	}
}
