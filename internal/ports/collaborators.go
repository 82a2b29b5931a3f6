package ports

import "context"

// ObjectFetcher retrieves remote objects (ground-truth and OCR output files
// stored in an object bucket) as text.
type ObjectFetcher interface {
	Fetch(ctx context.Context, bucket, key string) (string, error)
}

// Engine runs text recognition on an image and returns the recognized text.
// Implementations are explicitly constructed and owned by the caller; there
// is no process-wide engine handle.
type Engine interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}
