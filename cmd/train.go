package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sentibay/sentiment-classifier/pkg/bayes"
	"github.com/sentibay/sentiment-classifier/pkg/config"
	"github.com/sentibay/sentiment-classifier/pkg/corpus"
	"github.com/sentibay/sentiment-classifier/pkg/logging"
)

var (
	trainModelPath string
	trainConfig    string
)

var trainCmd = &cobra.Command{
	Use:   "train [train-file]",
	Short: "Train the Naive Bayes model on a preprocessed corpus",
	Long: `Train estimates Naive Bayes parameters from a preprocessed corpus file and
persists them through the configured model store (a text file by default, or
Redis).

Priors come from per-class document frequencies; word likelihoods use add-one
smoothing over the full training vocabulary, so no word ever has zero
probability in any class.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		trainPath := args[0]

		cfg, err := config.LoadConfig(trainConfig)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %v", err)
		}
		if trainModelPath != "" {
			cfg.Model.Backend = "file"
			cfg.Model.Path = trainModelPath
		}

		logger, err := logging.New(cfg.Logging)
		if err != nil {
			return err
		}
		defer logger.Sync()

		docs, _, err := corpus.LoadFile(trainPath)
		if err != nil {
			return err
		}
		logger.Info("corpus loaded",
			zap.String("path", trainPath),
			zap.Int("documents", len(docs)))

		start := time.Now()
		model, err := bayes.Train(docs, cfg.Classes)
		if err != nil {
			return fmt.Errorf("training failed: %v", err)
		}
		duration := time.Since(start)

		store, err := newModelStore(cfg)
		if err != nil {
			return err
		}
		if err := store.Save(context.Background(), model); err != nil {
			return err
		}

		perClass := make(map[string]int, len(model.Classes))
		for _, doc := range docs {
			perClass[doc.Label]++
		}

		fmt.Printf("✅ Trained on %d documents\n", len(docs))
		for _, c := range model.Classes {
			fmt.Printf("   %s: %d documents\n", c, perClass[c])
		}
		fmt.Printf("📊 Vocabulary size: %d\n", len(model.Vocabulary))
		fmt.Printf("⏱️  Time taken: %v\n", duration)
		if cfg.Model.Backend == "file" {
			fmt.Printf("💾 Model saved to: %s\n", cfg.Model.Path)
		} else {
			fmt.Printf("💾 Model saved to Redis prefix: %s\n", cfg.Model.Redis.KeyPrefix)
		}
		return nil
	},
}

func init() {
	trainCmd.Flags().StringVarP(&trainModelPath, "model", "m", "", "Path to save model (forces the file backend)")
	trainCmd.Flags().StringVarP(&trainConfig, "config", "c", "", "Configuration file path")
}
