// Package report shapes similarity results into flat, serialization-ready
// views for external renderers. It performs no matching logic; the histogram
// cap and ordering policy live here because they determine what counts as a
// reproducible benchmark artifact.
package report

import (
	"sort"

	"github.com/baditaflorin/go_ocr_similarity/internal/core/domain"
)

// DefaultTopMissing caps the missing-word histogram shown in reports.
const DefaultTopMissing = 20

// MissingWordCount is one histogram entry.
type MissingWordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// View is a flat projection of a Result for rendering or export.
type View struct {
	LabelA             string             `json:"source_a"`
	LabelB             string             `json:"source_b"`
	Score              float64            `json:"similarity_score"`
	Passed             bool               `json:"passed"`
	ReferenceWordCount int                `json:"reference_word_count"`
	CorrectWordCount   int                `json:"correct_word_count"`
	IncorrectWordCount int                `json:"incorrect_word_count"`
	// MissingWords is deduplicated with per-word counts, most frequent
	// first, ties broken by first-encountered order, capped at the
	// configured top-N.
	MissingWords []MissingWordCount `json:"missing_words"`
	// MoreMissing is the number of distinct missing words beyond the cap.
	MoreMissing int `json:"more_missing,omitempty"`
}

// Build projects result into a View labeled with the two compared sources.
// topN caps the histogram; zero or negative selects DefaultTopMissing.
func Build(result domain.Result, labelA, labelB string, topN int) View {
	if topN <= 0 {
		topN = DefaultTopMissing
	}

	histogram := Histogram(result.MissingWords)
	more := 0
	if len(histogram) > topN {
		more = len(histogram) - topN
		histogram = histogram[:topN]
	}

	return View{
		LabelA:             labelA,
		LabelB:             labelB,
		Score:              result.Score,
		Passed:             result.Passed,
		ReferenceWordCount: result.ReferenceWordCount,
		CorrectWordCount:   result.CorrectWordCount,
		IncorrectWordCount: result.IncorrectWordCount,
		MissingWords:       histogram,
		MoreMissing:        more,
	}
}

// Histogram deduplicates missing-word occurrences into counted entries,
// ordered most frequent first with ties in first-encountered order.
func Histogram(missing []string) []MissingWordCount {
	if len(missing) == 0 {
		return nil
	}

	index := make(map[string]int, len(missing))
	entries := make([]MissingWordCount, 0, len(missing))
	for _, w := range missing {
		if i, ok := index[w]; ok {
			entries[i].Count++
			continue
		}
		index[w] = len(entries)
		entries = append(entries, MissingWordCount{Word: w, Count: 1})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}
