// Command ocrcompare scores OCR output against ground truth (or another
// engine's output) and renders the comparison as text, JSON, or a batch
// HTML report.
//
// Sources may be local files (.txt, .json OCR output, .html) or r2://
// object paths. With -image, the candidate text is produced by the remote
// recognition engine first.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	ocrsimilarity "github.com/baditaflorin/go_ocr_similarity"
	"github.com/baditaflorin/go_ocr_similarity/internal/adapters/engine"
	logadapter "github.com/baditaflorin/go_ocr_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_ocr_similarity/internal/adapters/render"
	"github.com/baditaflorin/go_ocr_similarity/internal/config"
	"github.com/baditaflorin/go_ocr_similarity/internal/core/report"
	"github.com/baditaflorin/go_ocr_similarity/internal/ports"
	"github.com/joho/godotenv"
)

var (
	referencePath string
	candidatePath string
	imagePath     string
	batchManifest string
	labelA        string
	labelB        string
	outputFormat  string
	outputPath    string
	threshold     float64
	topMissing    int
	workers       int
	check         bool
	timeout       time.Duration
)

func init() {
	flag.StringVar(&referencePath, "reference", "", "Path to the reference text (ground truth)")
	flag.StringVar(&candidatePath, "candidate", "", "Path to the candidate text (OCR output)")
	flag.StringVar(&imagePath, "image", "", "Image to recognize as the candidate (requires engine config)")
	flag.StringVar(&batchManifest, "batch", "", "YAML manifest of document pairs for batch mode")
	flag.StringVar(&labelA, "label-a", "", "Label for the reference source")
	flag.StringVar(&labelB, "label-b", "", "Label for the candidate source")
	flag.StringVar(&outputFormat, "output", "text", "Output format: 'text' or 'json' ('html' in batch mode)")
	flag.StringVar(&outputPath, "out", "", "Write the report to this file instead of stdout")
	flag.Float64Var(&threshold, "threshold", -1, "Pass/fail threshold override (0-100)")
	flag.IntVar(&topMissing, "top", 0, "Cap on the missing-word histogram (0 = configured default)")
	flag.IntVar(&workers, "workers", 0, "Batch worker count (0 = NumCPU)")
	flag.BoolVar(&check, "check", false, "Exit non-zero when the score is below the threshold")
	flag.DurationVar(&timeout, "timeout", 15*time.Minute, "Overall run timeout")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\nOptions:\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -reference gt.txt -candidate ocr.txt\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -reference r2://ocr-data/gt/doc1.txt -candidate doctr.json -output json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -reference gt.txt -image page.jpg -check\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -batch manifest.yaml -output html -out report.html\n", os.Args[0])
	}
}

func main() {
	flag.Parse()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}
	if threshold >= 0 {
		cfg.Comparison.Threshold = threshold
	}
	if topMissing > 0 {
		cfg.Report.TopMissing = topMissing
	}

	logger, err := ocrsimilarity.NewDefaultLogger(os.Stderr)
	if err != nil {
		fatal(err)
	}
	defer logger.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	similarity, err := ocrsimilarity.New(
		ocrsimilarity.WithThreshold(cfg.Comparison.Threshold),
		ocrsimilarity.WithPrecision(cfg.Comparison.Precision),
		ocrsimilarity.WithLogger(logger),
	)
	if err != nil {
		fatal(err)
	}

	loader := newSourceLoader(cfg.Storage)

	if batchManifest != "" {
		if err := runBatch(ctx, similarity, loader, cfg); err != nil {
			fatal(err)
		}
		return
	}

	if referencePath == "" {
		flag.Usage()
		os.Exit(2)
	}
	if (candidatePath == "") == (imagePath == "") {
		fatal(fmt.Errorf("exactly one of -candidate or -image is required"))
	}

	reference, err := loader.load(ctx, referencePath)
	if err != nil {
		fatal(err)
	}

	var candidate string
	if imagePath != "" {
		candidate, err = recognizeImage(ctx, cfg, logadapter.FromExisting(logger))
	} else {
		candidate, err = loader.load(ctx, candidatePath)
	}
	if err != nil {
		fatal(err)
	}

	result := similarity.Compare(ctx, reference, candidate)
	view := report.Build(result, sourceLabel(labelA, referencePath), candidateLabel(), cfg.Report.TopMissing)

	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			fatal(err)
		}
		defer f.Close()
		out = f
	}

	switch outputFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(view); err != nil {
			fatal(err)
		}
	default:
		fmt.Fprint(out, render.Text(view))
	}

	if check && !result.Passed {
		os.Exit(1)
	}
}

func candidateLabel() string {
	if labelB != "" {
		return labelB
	}
	if imagePath != "" {
		return imagePath
	}
	return candidatePath
}

func sourceLabel(label, path string) string {
	if label != "" {
		return label
	}
	return path
}

func recognizeImage(ctx context.Context, cfg config.Config, logger ports.Logger) (string, error) {
	image, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("reading image %s: %w", imagePath, err)
	}
	client, err := engine.NewRemote(engine.RemoteConfig{
		URL:     cfg.Engine.URL,
		APIKey:  cfg.Engine.APIKey,
		Model:   cfg.Engine.Model,
		Timeout: cfg.Engine.Timeout(),
	}, logger)
	if err != nil {
		return "", err
	}
	return client.Recognize(ctx, image)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
