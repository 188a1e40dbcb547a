package corpus

import (
	"strings"
	"testing"
)

func TestParseBasic(t *testing.T) {
	input := "pos great:2 movie:1\nneg bad:2 movie:1\n"

	docs, vocabulary, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(docs) != 2 {
		t.Fatalf("Expected 2 documents, got %d", len(docs))
	}

	if docs[0].Label != "pos" {
		t.Errorf("Expected first label 'pos', got %q", docs[0].Label)
	}
	if docs[0].Counts["great"] != 2 || docs[0].Counts["movie"] != 1 {
		t.Errorf("Unexpected counts for first document: %v", docs[0].Counts)
	}
	if docs[1].Label != "neg" {
		t.Errorf("Expected second label 'neg', got %q", docs[1].Label)
	}

	for _, word := range []string{"great", "movie", "bad"} {
		if !vocabulary[word] {
			t.Errorf("Expected %q in vocabulary", word)
		}
	}
	if len(vocabulary) != 3 {
		t.Errorf("Expected vocabulary size 3, got %d", len(vocabulary))
	}
}

func TestParseSkipsBlankLines(t *testing.T) {
	input := "\npos great:1\n\n   \nneg bad:1\n\n"

	docs, _, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(docs) != 2 {
		t.Errorf("Expected 2 documents, got %d", len(docs))
	}
}

func TestParseLabelOnlyLine(t *testing.T) {
	// A line with a label and no features is a valid empty document.
	docs, _, err := Parse(strings.NewReader("pos\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("Expected 1 document, got %d", len(docs))
	}
	if len(docs[0].Counts) != 0 {
		t.Errorf("Expected empty counts, got %v", docs[0].Counts)
	}
}

func TestParseMalformedInput(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{"missing colon", "pos great movie:1"},
		{"non-integer count", "pos great:two"},
		{"negative count", "pos great:-1"},
		{"empty word", "pos :3"},
		{"float count", "pos great:1.5"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse(strings.NewReader(tc.input))
			if err == nil {
				t.Errorf("Expected error for input %q", tc.input)
			}
		})
	}
}

func TestParseErrorReportsLineNumber(t *testing.T) {
	input := "pos great:1\nneg bad:oops\n"

	_, _, err := Parse(strings.NewReader(input))
	if err == nil {
		t.Fatal("Expected error for malformed count")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("Expected error to name line 2, got: %v", err)
	}
}

func TestParseRepeatedWordAccumulates(t *testing.T) {
	docs, _, err := Parse(strings.NewReader("pos great:2 great:3\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if docs[0].Counts["great"] != 5 {
		t.Errorf("Expected repeated segments to accumulate to 5, got %d", docs[0].Counts["great"])
	}
}

func TestParseCountsColonInCount(t *testing.T) {
	// Split is on the first colon only.
	counts, err := ParseCounts([]string{"a:b:1"})
	if err == nil {
		t.Errorf("Expected error for count containing a colon, got %v", counts)
	}
}
