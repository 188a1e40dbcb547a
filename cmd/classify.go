package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sentibay/sentiment-classifier/pkg/config"
	"github.com/sentibay/sentiment-classifier/pkg/corpus"
	"github.com/sentibay/sentiment-classifier/pkg/tokenizer"
)

var (
	classifyConfig    string
	classifyModelPath string
	classifyRaw       bool
)

var classifyCmd = &cobra.Command{
	Use:   "classify [file]",
	Short: "Classify a single document with a trained model",
	Long: `Classify loads the persisted model and labels one document.

By default the file is expected to contain word:count pairs (a preprocessed
document without its label). With --raw the file is treated as raw review
text and tokenized first; tokens outside the model vocabulary are ignored.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		docPath := args[0]

		cfg, err := config.LoadConfig(classifyConfig)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %v", err)
		}
		if classifyModelPath != "" {
			cfg.Model.Backend = "file"
			cfg.Model.Path = classifyModelPath
		}

		store, err := newModelStore(cfg)
		if err != nil {
			return err
		}
		model, err := store.Load(context.Background())
		if err != nil {
			return err
		}

		text, err := os.ReadFile(docPath)
		if err != nil {
			return fmt.Errorf("failed to read document: %v", err)
		}

		var counts map[string]int
		if classifyRaw {
			tok, err := tokenizer.New(cfg.Tokenizer.Lowercase, cfg.Tokenizer.Stemming)
			if err != nil {
				return err
			}
			defer tok.Close()
			counts = tok.CountWords(string(text), model.Vocabulary)
		} else {
			counts, err = corpus.ParseCounts(strings.Fields(string(text)))
			if err != nil {
				return err
			}
		}

		scores := model.Scores(counts)
		predicted := model.Classify(counts)

		fmt.Printf("Prediction: %s\n", predicted)
		for _, c := range model.Classes {
			fmt.Printf("  %s: %.6f\n", c, scores[c])
		}
		return nil
	},
}

func init() {
	classifyCmd.Flags().StringVarP(&classifyConfig, "config", "c", "", "Configuration file path")
	classifyCmd.Flags().StringVarP(&classifyModelPath, "model", "m", "", "Path to load model from (forces the file backend)")
	classifyCmd.Flags().BoolVar(&classifyRaw, "raw", false, "Treat the file as raw text and tokenize it")
}
