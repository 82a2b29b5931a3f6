package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	ocrsimilarity "github.com/baditaflorin/go_ocr_similarity"
	"github.com/baditaflorin/go_ocr_similarity/internal/adapters/render"
	"github.com/baditaflorin/go_ocr_similarity/internal/config"
	"github.com/baditaflorin/go_ocr_similarity/pkg/batch"
	"gopkg.in/yaml.v3"
)

// manifest describes a batch run: a list of document pairs to score.
type manifest struct {
	Model     string         `yaml:"model"`
	RunLabel  string         `yaml:"runLabel"`
	Documents []manifestPair `yaml:"documents"`
}

type manifestPair struct {
	ID        string `yaml:"id"`
	Reference string `yaml:"reference"`
	Candidate string `yaml:"candidate"`
}

func runBatch(ctx context.Context, similarity *ocrsimilarity.WordSimilarity, loader *sourceLoader, cfg config.Config) error {
	raw, err := os.ReadFile(batchManifest)
	if err != nil {
		return fmt.Errorf("reading manifest %s: %w", batchManifest, err)
	}
	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("parsing manifest %s: %w", batchManifest, err)
	}
	if len(m.Documents) == 0 {
		return fmt.Errorf("manifest %s lists no documents", batchManifest)
	}

	// Load every pair first; load failures become failed rows instead of
	// aborting the whole run.
	var docs []batch.Document
	var failed []batch.DocumentResult
	for _, pair := range m.Documents {
		id := pair.ID
		if id == "" {
			id = pair.Candidate
		}
		reference, err := loader.load(ctx, pair.Reference)
		if err != nil {
			failed = append(failed, batch.DocumentResult{ID: id, Err: err})
			continue
		}
		candidate, err := loader.load(ctx, pair.Candidate)
		if err != nil {
			failed = append(failed, batch.DocumentResult{ID: id, Err: err})
			continue
		}
		docs = append(docs, batch.Document{ID: id, Reference: reference, Candidate: candidate})
	}

	runner := batch.NewRunner(similarity, batch.WithWorkers(workers))
	results := runner.Run(ctx, docs)
	summary := batch.Summarize(results)

	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	switch outputFormat {
	case "html":
		page := render.BatchPage{
			Title:     cfg.Report.Title,
			Model:     m.Model,
			RunLabel:  m.RunLabel,
			Timestamp: time.Now(),
			Summary:   summary,
		}
		for _, dr := range results {
			page.Rows = append(page.Rows, render.BatchRow{Document: dr.ID, Result: dr.Result})
		}
		for _, dr := range failed {
			page.Failures = append(page.Failures, render.BatchRow{Document: dr.ID, Err: dr.Err})
		}
		return render.BatchHTML(out, page)
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Summary interface{} `json:"summary"`
			Failed  int         `json:"failed_documents"`
		}{summary, len(failed)})
	default:
		fmt.Fprintf(out, "Documents : %d (%d failed to load)\n", summary.DocumentCount, len(failed))
		fmt.Fprintf(out, "Avg Score : %.3f\n", summary.AverageScore)
		fmt.Fprintf(out, "Buckets   : high=%d medium=%d low=%d\n",
			summary.HighCount, summary.MediumCount, summary.LowCount)
		fmt.Fprintf(out, "Words     : reference=%d correct=%d missing=%d\n",
			summary.TotalReferenceWords, summary.TotalCorrectWords, summary.TotalMissingWords)
		return nil
	}
}
