// Package extract loads reference and candidate text from the file formats
// the benchmark encounters: plain text, OCR JSON output, and HTML pages.
package extract

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ocrPayload mirrors the JSON shapes emitted by the OCR engines: text under
// "custom_text", "custom_texts", or "text", either at the top level or on
// the first element of a "data" list.
type ocrPayload struct {
	CustomText  json.RawMessage `json:"custom_text"`
	CustomTexts json.RawMessage `json:"custom_texts"`
	Text        json.RawMessage `json:"text"`
	Data        []ocrPayload    `json:"data"`
}

// LoadFile reads text from path, decoding by extension: .json is unwrapped
// via ExtractOCRText, .html/.htm is reduced to its text content, anything
// else is read verbatim.
func LoadFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ExtractOCRText(raw)
	case ".html", ".htm":
		return ExtractHTMLText(string(raw))
	default:
		return string(raw), nil
	}
}

// ExtractOCRText pulls the recognized text out of an OCR engine's JSON
// output. List values are joined with newlines. Returns an empty string when
// no known key is present.
func ExtractOCRText(raw []byte) (string, error) {
	var payload ocrPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("parsing OCR JSON: %w", err)
	}
	if text, ok := textValue(payload); ok {
		return text, nil
	}
	if len(payload.Data) > 0 {
		if text, ok := textValue(payload.Data[0]); ok {
			return text, nil
		}
	}
	return "", nil
}

func textValue(p ocrPayload) (string, bool) {
	for _, raw := range []json.RawMessage{p.CustomText, p.CustomTexts, p.Text} {
		if len(raw) == 0 {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s, true
		}
		var list []string
		if err := json.Unmarshal(raw, &list); err == nil {
			return strings.Join(list, "\n"), true
		}
	}
	return "", false
}

// ExtractHTMLText parses an HTML document and returns its visible text with
// scripts and styles removed.
func ExtractHTMLText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}
	doc.Find("script, style").Remove()
	return CleanRawText(doc.Text()), nil
}

// CleanRawText strips each line's edges and drops blank lines at the start
// and end, preserving the internal line structure.
func CleanRawText(raw string) string {
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	start, end := 0, len(lines)
	for start < end && lines[start] == "" {
		start++
	}
	for end > start && lines[end-1] == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
