package report

import (
	"reflect"
	"testing"

	"github.com/baditaflorin/go_ocr_similarity/internal/core/domain"
)

func TestHistogram(t *testing.T) {
	missing := []string{"total", "date", "total", "amount", "total", "date"}

	got := Histogram(missing)
	expected := []MissingWordCount{
		{Word: "total", Count: 3},
		{Word: "date", Count: 2},
		{Word: "amount", Count: 1},
	}

	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Histogram() = %v, expected %v", got, expected)
	}
}

func TestHistogramTieOrder(t *testing.T) {
	// Equal counts keep first-encountered order.
	got := Histogram([]string{"beta", "alpha", "beta", "alpha", "zeta"})
	expected := []MissingWordCount{
		{Word: "beta", Count: 2},
		{Word: "alpha", Count: 2},
		{Word: "zeta", Count: 1},
	}

	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Histogram() = %v, expected %v", got, expected)
	}
}

func TestHistogramEmpty(t *testing.T) {
	if got := Histogram(nil); got != nil {
		t.Errorf("expected nil histogram for empty input, got %v", got)
	}
}

func TestBuild(t *testing.T) {
	result := domain.Result{
		Score:              87.5,
		Passed:             true,
		ReferenceWordCount: 8,
		CorrectWordCount:   7,
		IncorrectWordCount: 1,
		MissingWords:       []string{"total"},
	}

	view := Build(result, "reference.txt", "scan.png", 0)

	if view.LabelA != "reference.txt" || view.LabelB != "scan.png" {
		t.Errorf("unexpected labels %q / %q", view.LabelA, view.LabelB)
	}
	if view.Score != 87.5 || !view.Passed {
		t.Errorf("unexpected score %v passed=%v", view.Score, view.Passed)
	}
	if view.ReferenceWordCount != 8 || view.CorrectWordCount != 7 || view.IncorrectWordCount != 1 {
		t.Errorf("word counts not carried over: %+v", view)
	}
	if len(view.MissingWords) != 1 || view.MissingWords[0] != (MissingWordCount{Word: "total", Count: 1}) {
		t.Errorf("unexpected missing words %v", view.MissingWords)
	}
	if view.MoreMissing != 0 {
		t.Errorf("expected no overflow, got %d", view.MoreMissing)
	}
}

func TestBuildTopNCap(t *testing.T) {
	result := domain.Result{
		MissingWords: []string{"a", "b", "b", "c", "d", "e"},
	}

	view := Build(result, "x", "y", 2)

	if len(view.MissingWords) != 2 {
		t.Fatalf("expected 2 histogram entries, got %d", len(view.MissingWords))
	}
	if view.MissingWords[0].Word != "b" {
		t.Errorf("most frequent word should come first, got %q", view.MissingWords[0].Word)
	}
	// 5 distinct missing words, 2 shown, 3 beyond the cap.
	if view.MoreMissing != 3 {
		t.Errorf("expected MoreMissing=3, got %d", view.MoreMissing)
	}
}

func TestBuildDefaultTopN(t *testing.T) {
	missing := make([]string, 0, 25)
	for _, w := range []string{
		"w00", "w01", "w02", "w03", "w04", "w05", "w06", "w07", "w08", "w09",
		"w10", "w11", "w12", "w13", "w14", "w15", "w16", "w17", "w18", "w19",
		"w20", "w21", "w22", "w23", "w24",
	} {
		missing = append(missing, w)
	}

	view := Build(domain.Result{MissingWords: missing}, "x", "y", -1)

	if len(view.MissingWords) != DefaultTopMissing {
		t.Errorf("expected %d entries with default cap, got %d",
			DefaultTopMissing, len(view.MissingWords))
	}
	if view.MoreMissing != 5 {
		t.Errorf("expected MoreMissing=5, got %d", view.MoreMissing)
	}
}
