package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Document is one labeled example in bag-of-words form: a mapping from word
// to its occurrence count, paired with the class label it was filed under.
// Documents are built once by the loader and never mutated afterwards.
type Document struct {
	Label  string
	Counts map[string]int
}

// Parse reads a preprocessed corpus where each non-blank line is
//
//	label word1:count1 word2:count2 ...
//
// and returns the documents in file order together with the set of all words
// seen across them. A segment with no colon or a count that does not parse as
// a non-negative integer aborts the whole load.
func Parse(r io.Reader) ([]Document, map[string]bool, error) {
	var docs []Document
	vocabulary := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		label := fields[0]
		counts, err := ParseCounts(fields[1:])
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %v", lineNum, err)
		}
		for word := range counts {
			vocabulary[word] = true
		}

		docs = append(docs, Document{Label: label, Counts: counts})
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read corpus: %v", err)
	}

	return docs, vocabulary, nil
}

// ParseCounts parses whitespace-split word:count segments into a count map.
// The split is on the first colon, so words containing colons are rejected
// rather than silently truncated.
func ParseCounts(segments []string) (map[string]int, error) {
	counts := make(map[string]int, len(segments))

	for _, segment := range segments {
		word, countText, ok := strings.Cut(segment, ":")
		if !ok {
			return nil, fmt.Errorf("malformed segment %q: missing ':'", segment)
		}
		if word == "" {
			return nil, fmt.Errorf("malformed segment %q: empty word", segment)
		}

		count, err := strconv.Atoi(countText)
		if err != nil {
			return nil, fmt.Errorf("malformed segment %q: bad count: %v", segment, err)
		}
		if count < 0 {
			return nil, fmt.Errorf("malformed segment %q: negative count", segment)
		}

		counts[word] += count
	}

	return counts, nil
}

// LoadFile reads a corpus file from disk.
func LoadFile(path string) ([]Document, map[string]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open corpus file: %v", err)
	}
	defer f.Close()

	docs, vocabulary, err := Parse(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %v", path, err)
	}
	return docs, vocabulary, nil
}
