package normalizer

import (
	"unicode"
	"unicode/utf8"

	"github.com/baditaflorin/go_ocr_similarity/internal/pool"
	"github.com/baditaflorin/go_ocr_similarity/internal/ports"
)

// Rune classes for the single-pass scan.
const (
	classKeep = iota
	classSplit
	classLower
	classJoin
	classSpace
)

// OptimizedNormalizer implements the same canonicalization as
// DefaultNormalizer in a single pass with a pre-computed ASCII decision
// table and buffer pooling. Markup stripping still runs as a regexp
// pre-pass.
type OptimizedNormalizer struct {
	asciiTable [128]byte
	bytePool   *pool.BufferPool
}

// NewOptimizedNormalizer creates a new optimized normalizer.
func NewOptimizedNormalizer() ports.Normalizer {
	n := &OptimizedNormalizer{
		bytePool: pool.NewBufferPool(8192),
	}
	for i := 0; i < 128; i++ {
		r := rune(i)
		switch {
		case isJoining(r):
			n.asciiTable[i] = classJoin
		case unicode.IsSpace(r):
			n.asciiTable[i] = classSpace
		case isSplitting(r):
			n.asciiTable[i] = classSplit
		case unicode.IsUpper(r):
			n.asciiTable[i] = classLower
		default:
			n.asciiTable[i] = classKeep
		}
	}
	return n
}

func classify(r rune) byte {
	switch {
	case isJoining(r):
		return classJoin
	case unicode.IsSpace(r):
		return classSpace
	case isSplitting(r):
		return classSplit
	default:
		return classKeep
	}
}

// Normalize canonicalizes text in one scan. The scan tracks three facts:
// whether a whitespace run is pending (clearable by joining punctuation),
// whether a split boundary is pending (never clearable), and whether
// whitespace is currently being swallowed after a joining character. This
// reproduces the pass-ordered semantics of DefaultNormalizer exactly.
func (n *OptimizedNormalizer) Normalize(text string) string {
	if len(text) == 0 {
		return ""
	}
	text = stripMarkup(text)

	buffer := n.bytePool.Get()
	defer n.bytePool.Put(buffer)
	if cap(*buffer) < len(text) {
		*buffer = make([]byte, 0, len(text))
	}
	*buffer = (*buffer)[:0]

	var pendingWS, pendingSplit, swallowWS bool

	emitRune := func(r rune) {
		if (pendingWS || pendingSplit) && len(*buffer) > 0 {
			*buffer = append(*buffer, ' ')
		}
		pendingWS, pendingSplit, swallowWS = false, false, false
		if r < utf8.RuneSelf {
			*buffer = append(*buffer, byte(r))
		} else {
			*buffer = utf8.AppendRune(*buffer, r)
		}
	}

	for _, r := range text {
		var class byte
		if r < 128 {
			class = n.asciiTable[r]
		} else {
			class = classify(r)
		}
		switch class {
		case classKeep:
			if r >= 128 {
				r = unicode.ToLower(r)
			}
			emitRune(r)
		case classLower:
			emitRune(r + ('a' - 'A'))
		case classSplit:
			pendingSplit = true
			swallowWS = false
		case classJoin:
			// Joining punctuation fuses its neighbors: drop any
			// whitespace seen before it and swallow whitespace after it.
			pendingWS = false
			swallowWS = true
		case classSpace:
			if !swallowWS {
				pendingWS = true
			}
		}
	}

	return string(*buffer)
}
