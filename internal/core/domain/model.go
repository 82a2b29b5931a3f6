package domain

// MismatchStatus classifies a reference token occurrence that was not
// matched in the candidate text. Only StatusMissing is produced today; the
// tag is kept so substitution detection can be added without changing the
// result shape.
type MismatchStatus string

const StatusMissing MismatchStatus = "MISSING"

// MismatchPair records one unmatched reference occurrence.
type MismatchPair struct {
	Expected string
	Status   MismatchStatus
}

// Result holds the outcome of a word-level similarity computation between a
// reference text and a candidate text.
type Result struct {
	// Name of the metric.
	Name string
	// Score is the similarity score between 0 and 100.
	Score float64
	// Passed indicates whether the score meets or exceeds the threshold.
	Passed bool
	// Threshold used to determine pass/fail.
	Threshold float64
	// ReferenceWordCount is the total token count of the reference text,
	// counting repeats.
	ReferenceWordCount int
	// CorrectWordCount is the number of reference occurrences matched in
	// the candidate.
	CorrectWordCount int
	// IncorrectWordCount is ReferenceWordCount - CorrectWordCount.
	IncorrectWordCount int
	// MissingWords lists reference tokens unmatched in the candidate, one
	// entry per missing occurrence.
	MissingWords []string
	// MismatchPairs mirrors MissingWords with an explicit status tag.
	MismatchPairs []MismatchPair
	// Details holds additional diagnostic information.
	Details map[string]interface{}
}

// BatchSummary aggregates many Results into batch-level statistics.
// Buckets: high >= 90, medium in [70, 90), low < 70.
type BatchSummary struct {
	DocumentCount       int     `json:"document_count"`
	AverageScore        float64 `json:"average_score"`
	HighCount           int     `json:"high_count"`
	MediumCount         int     `json:"medium_count"`
	LowCount            int     `json:"low_count"`
	TotalReferenceWords int     `json:"total_reference_words"`
	TotalCorrectWords   int     `json:"total_correct_words"`
	TotalMissingWords   int     `json:"total_missing_words"`
}
