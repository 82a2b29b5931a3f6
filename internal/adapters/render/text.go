// Package render turns report views and batch summaries into the artifacts
// the benchmark publishes: plaintext reports and a batch HTML page. The
// artifact schema is owned here, not by the core.
package render

import (
	"fmt"
	"strings"

	"github.com/baditaflorin/go_ocr_similarity/internal/core/report"
)

const rule = 60

// Text renders a single comparison as the plaintext report.
func Text(view report.View) string {
	heavy := strings.Repeat("=", rule)
	light := strings.Repeat("-", rule)

	var sb strings.Builder
	sb.WriteString(heavy + "\n")
	sb.WriteString("OCR COMPARISON REPORT\n")
	sb.WriteString(heavy + "\n")
	fmt.Fprintf(&sb, "Source 1 (%s)\n", view.LabelA)
	fmt.Fprintf(&sb, "Source 2 (%s)\n", view.LabelB)
	sb.WriteString(light + "\n")
	fmt.Fprintf(&sb, "Similarity Score  : %.2f%%\n", view.Score)
	fmt.Fprintf(&sb, "Total Words (S1)  : %d\n", view.ReferenceWordCount)
	fmt.Fprintf(&sb, "Correct Words     : %d\n", view.CorrectWordCount)
	fmt.Fprintf(&sb, "Missing/Incorrect : %d\n", view.IncorrectWordCount)
	sb.WriteString(light + "\n")

	if len(view.MissingWords) == 0 {
		sb.WriteString("Missing Words: None\n")
	} else {
		sb.WriteString("Missing Words:\n")
		for _, mw := range view.MissingWords {
			if mw.Count > 1 {
				fmt.Fprintf(&sb, "  - '%s' (x%d)\n", mw.Word, mw.Count)
			} else {
				fmt.Fprintf(&sb, "  - '%s'\n", mw.Word)
			}
		}
		if view.MoreMissing > 0 {
			fmt.Fprintf(&sb, "  ... and %d more unique words\n", view.MoreMissing)
		}
	}

	sb.WriteString(heavy + "\n")
	return sb.String()
}
