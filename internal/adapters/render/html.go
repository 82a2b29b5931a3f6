package render

import (
	"fmt"
	"html/template"
	"io"
	"sort"
	"time"

	"github.com/baditaflorin/go_ocr_similarity/internal/core/batch"
	"github.com/baditaflorin/go_ocr_similarity/internal/core/domain"
)

// BatchRow is one document line in the batch report.
type BatchRow struct {
	Document string
	Result   domain.Result
	Err      error
}

// BatchPage carries everything the batch HTML template needs.
type BatchPage struct {
	Title     string
	Model     string
	RunLabel  string
	Timestamp time.Time
	Summary   domain.BatchSummary
	Rows      []BatchRow
	Failures  []BatchRow
}

type batchRowView struct {
	Document string
	Score    string
	Badge    string
	RefWords int
	Correct  int
	Missing  int
}

type batchFailureView struct {
	Document string
	Error    string
}

type batchPageView struct {
	Title     string
	Model     string
	RunLabel  string
	Timestamp string
	Documents int
	AvgScore  string
	AvgClass  string
	High      int
	Medium    int
	Low       int
	Rows      []batchRowView
	Failures  []batchFailureView
}

// badgeClass maps a score to the bucket class used for styling.
func badgeClass(score float64) string {
	switch {
	case score >= batch.HighBucketMin:
		return "high"
	case score >= batch.MediumBucketMin:
		return "medium"
	default:
		return "low"
	}
}

var batchTemplate = template.Must(template.New("batch").Parse(`<!DOCTYPE html>
<html><head><meta charset="UTF-8"><title>{{.Title}}</title>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:system-ui,sans-serif;background:#0d1117;color:#f0f6fc;padding:32px}
.c{max-width:1200px;margin:0 auto}
h1{font-size:28px;margin-bottom:8px;color:#58a6ff}
.meta{color:#8b949e;font-size:14px;margin-bottom:32px}
.stats{display:grid;grid-template-columns:repeat(5,1fr);gap:12px;margin-bottom:24px}
.stat{background:#161b22;border-radius:8px;padding:20px;text-align:center;border:1px solid #30363d}
.stat .v{font-size:32px;font-weight:700}
.stat .l{font-size:11px;color:#8b949e;text-transform:uppercase;margin-top:4px}
.ok{color:#3fb950}.warn{color:#d29922}.err{color:#f85149}
table{width:100%;background:#161b22;border-radius:8px;border-collapse:collapse;border:1px solid #30363d}
th{background:#21262d;padding:12px;text-align:left;font-size:11px;text-transform:uppercase;color:#8b949e}
td{padding:12px;border-top:1px solid #30363d}
tr:hover{background:#21262d}
.badge{padding:4px 10px;border-radius:4px;font-size:12px;font-weight:600}
.badge.high{background:#3fb95033;color:#3fb950}
.badge.medium{background:#d2992233;color:#d29922}
.badge.low{background:#f8514933;color:#f85149}
.fail{opacity:.5}
</style></head>
<body><div class="c">
<h1>{{.Title}}</h1>
<div class="meta">Model: <b>{{.Model}}</b> | Run: {{.RunLabel}} | {{.Timestamp}}</div>
<div class="stats">
<div class="stat"><div class="v">{{.Documents}}</div><div class="l">Files</div></div>
<div class="stat"><div class="v {{.AvgClass}}">{{.AvgScore}}%</div><div class="l">Avg Score</div></div>
<div class="stat"><div class="v ok">{{.High}}</div><div class="l">High &ge;90%</div></div>
<div class="stat"><div class="v warn">{{.Medium}}</div><div class="l">Medium</div></div>
<div class="stat"><div class="v err">{{.Low}}</div><div class="l">Low &lt;70%</div></div>
</div>
<table><tr><th>File</th><th>Score</th><th>Ref Words</th><th>Correct</th><th>Missing</th></tr>
{{range .Rows}}<tr><td>{{.Document}}</td><td><span class="badge {{.Badge}}">{{.Score}}%</span></td><td>{{.RefWords}}</td><td class="ok">{{.Correct}}</td><td class="err">{{.Missing}}</td></tr>
{{end}}{{range .Failures}}<tr class="fail"><td>{{.Document}}</td><td colspan="4">{{.Error}}</td></tr>
{{end}}</table>
</div></body></html>
`))

// BatchHTML renders the batch report page. Rows are ordered by score,
// highest first; failed documents are appended dimmed.
func BatchHTML(w io.Writer, page BatchPage) error {
	rows := make([]BatchRow, 0, len(page.Rows))
	failures := append([]BatchRow(nil), page.Failures...)
	for _, row := range page.Rows {
		if row.Err != nil {
			failures = append(failures, row)
			continue
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Result.Score > rows[j].Result.Score
	})

	view := batchPageView{
		Title:     page.Title,
		Model:     page.Model,
		RunLabel:  page.RunLabel,
		Timestamp: page.Timestamp.Format(time.RFC3339),
		Documents: page.Summary.DocumentCount,
		AvgScore:  fmt.Sprintf("%.1f", page.Summary.AverageScore),
		AvgClass:  scoreClass(page.Summary.AverageScore),
		High:      page.Summary.HighCount,
		Medium:    page.Summary.MediumCount,
		Low:       page.Summary.LowCount,
	}
	if view.Title == "" {
		view.Title = "Batch OCR Report"
	}
	if view.RunLabel == "" {
		view.RunLabel = "N/A"
	}
	for _, row := range rows {
		view.Rows = append(view.Rows, batchRowView{
			Document: row.Document,
			Score:    fmt.Sprintf("%.1f", row.Result.Score),
			Badge:    badgeClass(row.Result.Score),
			RefWords: row.Result.ReferenceWordCount,
			Correct:  row.Result.CorrectWordCount,
			Missing:  len(row.Result.MissingWords),
		})
	}
	for _, row := range failures {
		msg := "Error"
		if row.Err != nil {
			msg = row.Err.Error()
		}
		if r := []rune(msg); len(r) > 60 {
			msg = string(r[:60])
		}
		view.Failures = append(view.Failures, batchFailureView{
			Document: row.Document,
			Error:    msg,
		})
	}

	return batchTemplate.Execute(w, view)
}

func scoreClass(score float64) string {
	switch {
	case score >= batch.HighBucketMin:
		return "ok"
	case score >= batch.MediumBucketMin:
		return "warn"
	default:
		return "err"
	}
}
