package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sentibay",
	Short: "Sentibay - Naive Bayes sentiment classifier",
	Long: `Sentibay is a multinomial Naive Bayes sentiment classifier for
bag-of-words review corpora.

It preprocesses raw labeled reviews into word-count corpus files, trains a
model with add-one smoothing, persists it to a file or Redis, and evaluates
classification accuracy on a held-out test set.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Sentibay - Naive Bayes sentiment classifier")
		fmt.Println("Use 'sentibay --help' for usage information")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Usage and help go to stdout; main prints errors to stderr.
	rootCmd.SetOut(os.Stdout)

	rootCmd.AddCommand(preprocessCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(configCmd)
}
