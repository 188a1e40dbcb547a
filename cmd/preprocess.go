package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sentibay/sentiment-classifier/pkg/config"
	"github.com/sentibay/sentiment-classifier/pkg/logging"
	"github.com/sentibay/sentiment-classifier/pkg/tokenizer"
)

var (
	preprocessConfig string
	preprocessStem   bool
)

var preprocessCmd = &cobra.Command{
	Use:   "preprocess [vocab-file] [input-dir] [output-file]",
	Short: "Convert raw labeled reviews into a word-count corpus",
	Long: `Preprocess walks one subdirectory of the input directory per class label
(e.g. pos/ and neg/), tokenizes every .txt review it finds, keeps only tokens
present in the vocabulary file, and writes one corpus line per document:

  label word1:count1 word2:count2 ...

Tokenization lowercases the text and isolates punctuation into standalone
tokens before splitting on whitespace.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		vocabPath, inputDir, outputPath := args[0], args[1], args[2]

		cfg, err := config.LoadConfig(preprocessConfig)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %v", err)
		}
		logger, err := logging.New(cfg.Logging)
		if err != nil {
			return err
		}
		defer logger.Sync()

		vocabulary, err := tokenizer.ReadVocabulary(vocabPath)
		if err != nil {
			return err
		}

		stem := cfg.Tokenizer.Stemming || preprocessStem
		tok, err := tokenizer.New(cfg.Tokenizer.Lowercase, stem)
		if err != nil {
			return err
		}
		defer tok.Close()

		out, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %v", err)
		}
		defer out.Close()

		start := time.Now()
		total, err := tok.ProcessDirectory(inputDir, cfg.Classes, vocabulary, out, logger)
		if err != nil {
			return err
		}

		logger.Info("preprocessing complete",
			zap.Int("documents", total),
			zap.Int("vocabulary", len(vocabulary)),
			zap.Duration("elapsed", time.Since(start)))

		fmt.Printf("✅ Preprocessed %d documents\n", total)
		fmt.Printf("💾 Corpus written to: %s\n", outputPath)
		return nil
	},
}

func init() {
	preprocessCmd.Flags().StringVarP(&preprocessConfig, "config", "c", "", "Configuration file path")
	preprocessCmd.Flags().BoolVar(&preprocessStem, "stem", false, "Apply snowball stemming to tokens")
}
