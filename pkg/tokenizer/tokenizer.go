package tokenizer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tebeka/snowball"
	"go.uber.org/zap"
)

// punctuation is the ASCII punctuation set; each of these characters is
// isolated into its own token during tokenization.
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Tokenizer turns raw review text into tokens: lowercase, punctuation split
// out as standalone tokens, whitespace-separated. Stemming is optional and
// off by default so counts line up with a vocabulary built from raw tokens.
type Tokenizer struct {
	Lowercase bool
	stemmer   *snowball.Stemmer
}

// New creates a tokenizer. With stem enabled, tokens are reduced with the
// snowball English stemmer after splitting.
func New(lowercase, stem bool) (*Tokenizer, error) {
	t := &Tokenizer{Lowercase: lowercase}
	if stem {
		stemmer, err := snowball.New("english")
		if err != nil {
			return nil, fmt.Errorf("failed to create stemmer: %v", err)
		}
		t.stemmer = stemmer
	}
	return t, nil
}

// Close releases the stemmer's native resources, if stemming is enabled.
func (t *Tokenizer) Close() {
	if t.stemmer != nil {
		t.stemmer.Close()
		t.stemmer = nil
	}
}

// Tokenize splits text into tokens.
func (t *Tokenizer) Tokenize(text string) []string {
	if t.Lowercase {
		text = strings.ToLower(text)
	}

	var b strings.Builder
	b.Grow(len(text) + len(text)/4)
	for _, r := range text {
		if r < 128 && strings.ContainsRune(punctuation, r) {
			b.WriteByte(' ')
			b.WriteRune(r)
			b.WriteByte(' ')
		} else {
			b.WriteRune(r)
		}
	}

	tokens := strings.Fields(b.String())
	if t.stemmer != nil {
		for i, token := range tokens {
			tokens[i] = t.stemmer.Stem(token)
		}
	}
	return tokens
}

// CountWords tokenizes text and counts the tokens present in vocabulary,
// dropping everything else.
func (t *Tokenizer) CountWords(text string, vocabulary map[string]bool) map[string]int {
	counts := make(map[string]int)
	for _, token := range t.Tokenize(text) {
		if vocabulary[token] {
			counts[token]++
		}
	}
	return counts
}

// ReadVocabulary loads a vocabulary file with one word per line.
func ReadVocabulary(path string) (map[string]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open vocabulary file: %v", err)
	}
	defer f.Close()

	vocabulary := make(map[string]bool)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" {
			vocabulary[word] = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file: %v", err)
	}
	return vocabulary, nil
}

// ProcessDirectory walks root/<class>/ for every class, tokenizes each .txt
// file, and writes one corpus line per document: the class label followed by
// word:count pairs in sorted word order. Files that cannot be read are
// skipped with a warning so one broken review does not abort a whole corpus.
func (t *Tokenizer) ProcessDirectory(root string, classes []string, vocabulary map[string]bool, out io.Writer, logger *zap.Logger) (int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	w := bufio.NewWriter(out)
	var total int

	for _, class := range classes {
		classDir := filepath.Join(root, class)
		entries, err := os.ReadDir(classDir)
		if err != nil {
			return total, fmt.Errorf("failed to read class directory: %v", err)
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
				continue
			}

			path := filepath.Join(classDir, entry.Name())
			text, err := os.ReadFile(path)
			if err != nil {
				logger.Warn("skipping unreadable document",
					zap.String("path", path),
					zap.Error(err))
				continue
			}

			counts := t.CountWords(string(text), vocabulary)
			if err := writeDocumentLine(w, class, counts); err != nil {
				return total, fmt.Errorf("failed to write corpus line: %v", err)
			}
			total++
		}

		logger.Info("processed class directory",
			zap.String("class", class),
			zap.String("dir", classDir))
	}

	if err := w.Flush(); err != nil {
		return total, fmt.Errorf("failed to flush corpus output: %v", err)
	}
	return total, nil
}

func writeDocumentLine(w io.Writer, label string, counts map[string]int) error {
	words := make([]string, 0, len(counts))
	for word := range counts {
		words = append(words, word)
	}
	sort.Strings(words)

	if _, err := io.WriteString(w, label); err != nil {
		return err
	}
	for _, word := range words {
		if _, err := fmt.Fprintf(w, " %s:%d", word, counts[word]); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}
