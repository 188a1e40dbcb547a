package bayes

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/sentibay/sentiment-classifier/pkg/corpus"
)

// Model holds the parameters of a trained multinomial Naive Bayes classifier.
//
// LogPrior maps each class to the natural log of its empirical document
// frequency. LogLikelihood maps class -> word -> log of the add-one smoothed
// conditional probability P(word|class); every word in Vocabulary has an
// entry for every class, so lookups during classification never miss.
// A Model is immutable once returned by Train or a store.
type Model struct {
	Vocabulary    map[string]bool
	LogPrior      map[string]float64
	LogLikelihood map[string]map[string]float64

	// Classes are the model's labels in lexicographic order. Scoring walks
	// this slice, which makes the argmax tie-break deterministic.
	Classes []string
}

// Train estimates Naive Bayes parameters from labeled documents.
//
// The class set is supplied by the caller rather than derived from the data;
// a document whose label is outside it is an error, as is a class with no
// training documents (its prior would be log(0)).
func Train(docs []corpus.Document, classes []string) (*Model, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("no training documents")
	}
	if len(classes) == 0 {
		return nil, fmt.Errorf("no classes declared")
	}

	classList := dedupeSorted(classes)
	classSet := make(map[string]bool, len(classList))
	for _, c := range classList {
		classSet[c] = true
	}

	// Per-class document counts and the union vocabulary.
	docCounts := make(map[string]int, len(classList))
	vocabulary := make(map[string]bool)
	for _, doc := range docs {
		if !classSet[doc.Label] {
			return nil, fmt.Errorf("document label %q is not in the declared class set", doc.Label)
		}
		docCounts[doc.Label]++
		for word := range doc.Counts {
			vocabulary[word] = true
		}
	}
	for _, c := range classList {
		if docCounts[c] == 0 {
			return nil, fmt.Errorf("class %q has no training documents", c)
		}
	}

	// Fold every document's counts into one aggregate bag per class.
	aggregate := make(map[string]map[string]int, len(classList))
	for _, c := range classList {
		aggregate[c] = make(map[string]int)
	}
	for _, doc := range docs {
		bag := aggregate[doc.Label]
		for word, count := range doc.Counts {
			bag[word] += count
		}
	}

	logPrior := make(map[string]float64, len(classList))
	total := float64(len(docs))
	for _, c := range classList {
		logPrior[c] = math.Log(float64(docCounts[c]) / total)
	}

	// Likelihood rows are independent per class and read-only over the
	// aggregate, so compute them concurrently.
	logLikelihood := make(map[string]map[string]float64, len(classList))
	for _, c := range classList {
		logLikelihood[c] = make(map[string]float64, len(vocabulary))
	}

	var wg sync.WaitGroup
	for _, c := range classList {
		wg.Add(1)
		go func(c string) {
			defer wg.Done()

			bag := aggregate[c]
			classTotal := 0
			for _, count := range bag {
				classTotal += count
			}
			// Add-one smoothing: +1 per word in the numerator, +|V| here.
			denom := float64(classTotal + len(vocabulary))

			row := logLikelihood[c]
			for word := range vocabulary {
				row[word] = math.Log(float64(bag[word]+1) / denom)
			}
		}(c)
	}
	wg.Wait()

	return &Model{
		Vocabulary:    vocabulary,
		LogPrior:      logPrior,
		LogLikelihood: logLikelihood,
		Classes:       classList,
	}, nil
}

// Classify returns the highest-scoring class for one document's word counts.
// Words outside the model vocabulary contribute nothing. Ties resolve to the
// lexicographically smallest label.
func (m *Model) Classify(counts map[string]int) string {
	scores := m.Scores(counts)

	best := m.Classes[0]
	for _, c := range m.Classes[1:] {
		if scores[c] > scores[best] {
			best = c
		}
	}
	return best
}

// Scores returns the per-class log score (log-prior plus accumulated
// count-weighted log-likelihoods) for one document's word counts.
func (m *Model) Scores(counts map[string]int) map[string]float64 {
	scores := make(map[string]float64, len(m.Classes))
	for _, c := range m.Classes {
		scores[c] = m.LogPrior[c]
	}

	// Accumulate in sorted word order so repeated runs add the same floats
	// in the same order.
	words := make([]string, 0, len(counts))
	for word := range counts {
		if m.Vocabulary[word] {
			words = append(words, word)
		}
	}
	sort.Strings(words)

	for _, word := range words {
		n := float64(counts[word])
		for _, c := range m.Classes {
			scores[c] += n * m.LogLikelihood[c][word]
		}
	}
	return scores
}

func dedupeSorted(classes []string) []string {
	seen := make(map[string]bool, len(classes))
	out := make([]string, 0, len(classes))
	for _, c := range classes {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}
