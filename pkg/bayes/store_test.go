package bayes

import (
	"bytes"
	"context"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"testing"
)

func testModel(t *testing.T) *Model {
	t.Helper()
	model, err := Train(trainingDocs(), []string{"pos", "neg"})
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	return model
}

func TestWriteModelLayout(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteModel(&buf, testModel(t)); err != nil {
		t.Fatalf("WriteModel failed: %v", err)
	}

	lines := strings.Split(buf.String(), "\n")
	expectedPrefix := []string{
		"### Vocabulary ###",
		"bad",
		"great",
		"movie",
		"",
		"### Priors ###",
	}
	for i, expected := range expectedPrefix {
		if i >= len(lines) || lines[i] != expected {
			t.Fatalf("Line %d = %q, expected %q", i, lines[i], expected)
		}
	}

	if !strings.Contains(buf.String(), "\n### Likelihoods ###\n") {
		t.Error("Missing likelihoods section")
	}

	// Two classes, three words: six likelihood triples.
	var triples int
	inLikelihoods := false
	for _, line := range lines {
		if line == "### Likelihoods ###" {
			inLikelihoods = true
			continue
		}
		if inLikelihoods && strings.TrimSpace(line) != "" {
			if len(strings.Fields(line)) != 3 {
				t.Errorf("Malformed likelihood line: %q", line)
			}
			triples++
		}
	}
	if triples != 6 {
		t.Errorf("Expected 6 likelihood lines, got %d", triples)
	}
}

func TestModelRoundTrip(t *testing.T) {
	original := testModel(t)

	var buf bytes.Buffer
	if err := WriteModel(&buf, original); err != nil {
		t.Fatalf("WriteModel failed: %v", err)
	}

	loaded, err := ReadModel(&buf)
	if err != nil {
		t.Fatalf("ReadModel failed: %v", err)
	}

	if !reflect.DeepEqual(original.Vocabulary, loaded.Vocabulary) {
		t.Error("Vocabulary did not round-trip")
	}
	if !reflect.DeepEqual(original.LogPrior, loaded.LogPrior) {
		t.Errorf("Priors did not round-trip: %v vs %v", original.LogPrior, loaded.LogPrior)
	}
	if !reflect.DeepEqual(original.LogLikelihood, loaded.LogLikelihood) {
		t.Error("Likelihoods did not round-trip")
	}
	if !reflect.DeepEqual(original.Classes, loaded.Classes) {
		t.Errorf("Classes did not round-trip: %v vs %v", original.Classes, loaded.Classes)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	original := testModel(t)
	store := NewFileStore(filepath.Join(t.TempDir(), "model.txt"))
	ctx := context.Background()

	if err := store.Save(ctx, original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	doc := map[string]int{"great": 2, "bad": 1}
	if original.Classify(doc) != loaded.Classify(doc) {
		t.Error("Loaded model classifies differently than the original")
	}
}

func TestFileStoreLoadMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nope.txt"))
	if _, err := store.Load(context.Background()); err == nil {
		t.Error("Expected error for missing model file")
	}
}

func TestReadModelErrors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"wrong header", "### Words ###\n"},
		{"truncated vocabulary", "### Vocabulary ###\ngreat\n"},
		{
			"bad prior value",
			"### Vocabulary ###\ngreat\n\n### Priors ###\npos abc\n\n### Likelihoods ###\n",
		},
		{
			"no classes",
			"### Vocabulary ###\ngreat\n\n### Priors ###\n\n### Likelihoods ###\n",
		},
		{
			"likelihood for undeclared class",
			"### Vocabulary ###\ngreat\n\n### Priors ###\npos -0.5\n\n### Likelihoods ###\ngreat bogus -1.0\n",
		},
		{
			"missing likelihood entry",
			"### Vocabulary ###\ngreat\nmovie\n\n### Priors ###\npos -0.5\n\n### Likelihoods ###\ngreat pos -1.0\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ReadModel(strings.NewReader(tc.input)); err == nil {
				t.Error("Expected parse error, got nil")
			}
		})
	}
}

func TestFormatFloatRoundTrips(t *testing.T) {
	values := []float64{-0.6931471805599453, -1.0986122886681098, -3.5e-10, 0}
	for _, v := range values {
		text := formatFloat(v)
		parsed, err := strconv.ParseFloat(text, 64)
		if err != nil {
			t.Fatalf("Failed to parse %q: %v", text, err)
		}
		if parsed != v {
			t.Errorf("Value %v did not round-trip through %q", v, text)
		}
	}
}
