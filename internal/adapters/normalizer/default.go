// Package normalizer canonicalizes raw OCR text into a comparable form.
//
// The rules make OCR noise comparable to clean text: markup is stripped,
// casing is folded, spacing around joining punctuation is collapsed so
// compound values ("12 , 450", "15/09/2024") become single tokens, and
// currency/hashtag/mention/percent prefixes stay glued to their neighbors.
package normalizer

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/baditaflorin/go_ocr_similarity/internal/ports"
)

// Joining punctuation is merged into its neighbors and then removed; it
// never splits a token and never survives into one.
const joiningPunct = ",/"

// Preserved characters stay attached to adjacent digits/letters ("$500",
// "#123", "@user", "25%").
const preservedPunct = "$#@₹€£¥%"

var (
	tagSpan       = regexp.MustCompile(`<[^>]+>`)
	namedEntity   = regexp.MustCompile(`&[a-zA-Z]+;`)
	numericEntity = regexp.MustCompile(`&#[0-9]+;`)

	// Whitespace runs around joining punctuation. The class must cover the
	// full unicode.IsSpace set: \s in RE2 is ASCII-only and misses \v, and
	// \p{Z} misses \v and NEL, so both are matched explicitly.
	spacedComma = regexp.MustCompile(`[\s\v\x{85}\p{Z}]*,[\s\v\x{85}\p{Z}]*`)
	spacedSlash = regexp.MustCompile(`[\s\v\x{85}\p{Z}]*/[\s\v\x{85}\p{Z}]*`)
)

// stripMarkup removes tag-like spans and character-reference-like spans,
// replacing each with a single space.
func stripMarkup(text string) string {
	text = tagSpan.ReplaceAllString(text, " ")
	text = namedEntity.ReplaceAllString(text, " ")
	text = numericEntity.ReplaceAllString(text, " ")
	return text
}

func isJoining(r rune) bool {
	return r == ',' || r == '/'
}

func isPreserved(r rune) bool {
	return strings.ContainsRune(preservedPunct, r)
}

// isSplitting reports whether r acts as a token boundary. Punctuation and
// symbol runes split unless they are joining or preserved.
func isSplitting(r rune) bool {
	if isJoining(r) || isPreserved(r) {
		return false
	}
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

// DefaultNormalizer implements the canonicalization rules as an ordered
// sequence of passes. Each pass depends on the invariants established by the
// previous one; none may be skipped or reordered.
type DefaultNormalizer struct{}

// NewDefaultNormalizer creates a new default normalizer.
func NewDefaultNormalizer() ports.Normalizer {
	return &DefaultNormalizer{}
}

// Normalize canonicalizes text: strip markup, lowercase, merge and remove
// joining punctuation, replace remaining punctuation with spaces, collapse
// whitespace. The result is idempotent under Normalize.
func (n *DefaultNormalizer) Normalize(text string) string {
	text = stripMarkup(text)
	text = strings.ToLower(text)

	// Glue neighbors of joining punctuation together, then drop the
	// character itself: "12 , 450" -> "12,450" -> "12450".
	text = spacedComma.ReplaceAllString(text, ",")
	text = spacedSlash.ReplaceAllString(text, "/")
	text = strings.ReplaceAll(text, ",", "")
	text = strings.ReplaceAll(text, "/", "")

	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if isSplitting(r) {
			sb.WriteRune(' ')
		} else {
			sb.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(sb.String()), " ")
}
