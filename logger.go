// logger.go
// Shared default logger construction for the ocrsimilarity package.
package ocrsimilarity

import (
	"io"
	"os"

	"github.com/baditaflorin/l"
)

// NewDefaultLogger creates the logger configuration used across the module:
// asynchronous writes, source locations, metrics. Callers pass the result to
// WithLogger or use it directly in commands.
func NewDefaultLogger(output io.Writer) (l.Logger, error) {
	if output == nil {
		output = os.Stdout
	}
	return l.NewStandardFactory().CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  false,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,      // 1MB buffer
		MaxFileSize: 10 * 1024 * 1024, // 10MB max file size
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	})
}
