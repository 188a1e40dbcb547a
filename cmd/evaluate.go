package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sentibay/sentiment-classifier/pkg/bayes"
	"github.com/sentibay/sentiment-classifier/pkg/config"
	"github.com/sentibay/sentiment-classifier/pkg/evaluator"
	"github.com/sentibay/sentiment-classifier/pkg/logging"
)

var evaluateConfig string

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [train-file] [test-file] [model-file] [output-file]",
	Short: "Train, persist and evaluate on a test corpus",
	Long: `Evaluate runs the full pipeline: train on the training corpus, save the
model to the given model file, classify every document in the test corpus and
write the predictions file — one predicted label per line, followed by a
summary line of the form

  Accuracy: 87.50%`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		trainPath, testPath, modelPath, outputPath := args[0], args[1], args[2], args[3]

		cfg, err := config.LoadConfig(evaluateConfig)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %v", err)
		}
		logger, err := logging.New(cfg.Logging)
		if err != nil {
			return err
		}
		defer logger.Sync()

		eval := &evaluator.Evaluator{
			Classes: cfg.Classes,
			Store:   bayes.NewFileStore(modelPath),
			Logger:  logger,
		}
		result, err := eval.Run(context.Background(), trainPath, testPath, outputPath)
		if err != nil {
			return err
		}

		fmt.Printf("✅ Classified %d test documents (%d correct)\n", result.Total, result.Correct)
		fmt.Printf("📊 Accuracy: %.2f%%\n", result.Accuracy)
		fmt.Printf("💾 Model: %s\n", modelPath)
		fmt.Printf("💾 Predictions: %s\n", outputPath)
		return nil
	},
}

func init() {
	evaluateCmd.Flags().StringVarP(&evaluateConfig, "config", "c", "", "Configuration file path")
}
