package evaluator

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/sentibay/sentiment-classifier/pkg/bayes"
	"github.com/sentibay/sentiment-classifier/pkg/corpus"
)

// Evaluator runs the end-to-end pipeline: load the training corpus, train,
// persist the model, classify every test document and report accuracy.
type Evaluator struct {
	Classes []string
	Store   bayes.ModelStore
	Logger  *zap.Logger
}

// Result summarizes one evaluation run.
type Result struct {
	Total    int
	Correct  int
	Accuracy float64 // percentage, 0-100
}

// Run trains on trainPath, saves the model through the configured store, and
// writes one predicted label per test document to outputPath followed by a
// summary accuracy line. An empty test corpus is an error; nothing is written
// in that case.
func (e *Evaluator) Run(ctx context.Context, trainPath, testPath, outputPath string) (*Result, error) {
	logger := e.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	trainDocs, _, err := corpus.LoadFile(trainPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load training corpus: %v", err)
	}
	logger.Info("training corpus loaded",
		zap.String("path", trainPath),
		zap.Int("documents", len(trainDocs)))

	model, err := bayes.Train(trainDocs, e.Classes)
	if err != nil {
		return nil, fmt.Errorf("training failed: %v", err)
	}
	logger.Info("model trained",
		zap.Int("vocabulary", len(model.Vocabulary)),
		zap.Strings("classes", model.Classes))

	if err := e.Store.Save(ctx, model); err != nil {
		return nil, err
	}
	logger.Info("model saved")

	testDocs, _, err := corpus.LoadFile(testPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load test corpus: %v", err)
	}
	if len(testDocs) == 0 {
		return nil, fmt.Errorf("test corpus %s contains no documents", testPath)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create predictions file: %v", err)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	correct := 0
	for _, doc := range testDocs {
		predicted := model.Classify(doc.Counts)
		if predicted == doc.Label {
			correct++
		}
		if _, err := fmt.Fprintln(w, predicted); err != nil {
			return nil, fmt.Errorf("failed to write prediction: %v", err)
		}
	}

	accuracy := float64(correct) / float64(len(testDocs)) * 100
	if _, err := fmt.Fprintf(w, "\nAccuracy: %.2f%%\n", accuracy); err != nil {
		return nil, fmt.Errorf("failed to write accuracy: %v", err)
	}
	if err := w.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush predictions file: %v", err)
	}

	logger.Info("evaluation complete",
		zap.Int("documents", len(testDocs)),
		zap.Int("correct", correct),
		zap.Float64("accuracy", accuracy))

	return &Result{
		Total:    len(testDocs),
		Correct:  correct,
		Accuracy: accuracy,
	}, nil
}
