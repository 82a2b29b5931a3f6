// Package batch aggregates per-document similarity results into batch-level
// statistics.
package batch

import "github.com/baditaflorin/go_ocr_similarity/internal/core/domain"

// Score bucket boundaries. Buckets are inclusive on their lower edge and
// exclusive above, except high which is unbounded.
const (
	HighBucketMin   = 90.0
	MediumBucketMin = 70.0
)

// Summarize folds a sequence of results into a BatchSummary. It is a pure
// commutative aggregation; the order of results does not affect the output.
// An empty input yields a zero-valued summary.
func Summarize(results []domain.Result) domain.BatchSummary {
	var s domain.BatchSummary
	s.DocumentCount = len(results)
	if s.DocumentCount == 0 {
		return s
	}

	var scoreSum float64
	for _, r := range results {
		scoreSum += r.Score
		switch {
		case r.Score >= HighBucketMin:
			s.HighCount++
		case r.Score >= MediumBucketMin:
			s.MediumCount++
		default:
			s.LowCount++
		}
		s.TotalReferenceWords += r.ReferenceWordCount
		s.TotalCorrectWords += r.CorrectWordCount
		s.TotalMissingWords += len(r.MissingWords)
	}
	s.AverageScore = scoreSum / float64(s.DocumentCount)
	return s
}
