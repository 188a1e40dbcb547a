package bayes

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// ModelStore persists trained models and reads them back.
type ModelStore interface {
	Save(ctx context.Context, m *Model) error
	Load(ctx context.Context) (*Model, error)
}

// FileStore keeps the model in a single human-readable text file.
type FileStore struct {
	Path string
}

// NewFileStore creates a file-backed model store.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Save writes the model to the store's path.
func (s *FileStore) Save(ctx context.Context, m *Model) error {
	f, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("failed to create model file: %v", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := WriteModel(w, m); err != nil {
		return fmt.Errorf("failed to write model: %v", err)
	}
	return w.Flush()
}

// Load reads the model back from the store's path.
func (s *FileStore) Load(ctx context.Context) (*Model, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model file: %v", err)
	}
	defer f.Close()

	m, err := ReadModel(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", s.Path, err)
	}
	return m, nil
}

// WriteModel serializes a model as three sections: the sorted vocabulary, one
// prior per class, and one likelihood triple per (word, class) pair. Floats
// use the shortest representation that survives a round trip.
func WriteModel(w io.Writer, m *Model) error {
	words := make([]string, 0, len(m.Vocabulary))
	for word := range m.Vocabulary {
		words = append(words, word)
	}
	sort.Strings(words)

	if _, err := fmt.Fprintln(w, "### Vocabulary ###"); err != nil {
		return err
	}
	for _, word := range words {
		if _, err := fmt.Fprintln(w, word); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "\n### Priors ###"); err != nil {
		return err
	}
	for _, c := range m.Classes {
		if _, err := fmt.Fprintf(w, "%s %s\n", c, formatFloat(m.LogPrior[c])); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "\n### Likelihoods ###"); err != nil {
		return err
	}
	for _, word := range words {
		for _, c := range m.Classes {
			if _, err := fmt.Fprintf(w, "%s %s %s\n", word, c, formatFloat(m.LogLikelihood[c][word])); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReadModel parses the text layout produced by WriteModel.
func ReadModel(r io.Reader) (*Model, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNum := 0
	next := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		lineNum++
		return scanner.Text(), true
	}

	header, ok := next()
	if !ok || strings.TrimSpace(header) != "### Vocabulary ###" {
		return nil, fmt.Errorf("line %d: expected vocabulary header", lineNum)
	}

	vocabulary := make(map[string]bool)
	for {
		line, ok := next()
		if !ok {
			return nil, fmt.Errorf("unexpected end of file in vocabulary section")
		}
		if strings.TrimSpace(line) == "" {
			break
		}
		vocabulary[line] = true
	}

	header, ok = next()
	if !ok || strings.TrimSpace(header) != "### Priors ###" {
		return nil, fmt.Errorf("line %d: expected priors header", lineNum)
	}

	logPrior := make(map[string]float64)
	for {
		line, ok := next()
		if !ok {
			return nil, fmt.Errorf("unexpected end of file in priors section")
		}
		if strings.TrimSpace(line) == "" {
			break
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: malformed prior %q", lineNum, line)
		}
		value, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad prior value: %v", lineNum, err)
		}
		logPrior[fields[0]] = value
	}
	if len(logPrior) == 0 {
		return nil, fmt.Errorf("model has no classes")
	}

	header, ok = next()
	if !ok || strings.TrimSpace(header) != "### Likelihoods ###" {
		return nil, fmt.Errorf("line %d: expected likelihoods header", lineNum)
	}

	classes := make([]string, 0, len(logPrior))
	logLikelihood := make(map[string]map[string]float64, len(logPrior))
	for c := range logPrior {
		classes = append(classes, c)
		logLikelihood[c] = make(map[string]float64, len(vocabulary))
	}
	sort.Strings(classes)

	for {
		line, ok := next()
		if !ok {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("line %d: malformed likelihood %q", lineNum, line)
		}
		word, c := fields[0], fields[1]
		if _, ok := logLikelihood[c]; !ok {
			return nil, fmt.Errorf("line %d: likelihood for undeclared class %q", lineNum, c)
		}
		value, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad likelihood value: %v", lineNum, err)
		}
		logLikelihood[c][word] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read model: %v", err)
	}

	for _, c := range classes {
		for word := range vocabulary {
			if _, ok := logLikelihood[c][word]; !ok {
				return nil, fmt.Errorf("model is missing likelihood for word %q in class %q", word, c)
			}
		}
	}

	return &Model{
		Vocabulary:    vocabulary,
		LogPrior:      logPrior,
		LogLikelihood: logLikelihood,
		Classes:       classes,
	}, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
