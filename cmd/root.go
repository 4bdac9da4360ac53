package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordpair/internal/quiz"
)

var rootCmd = &cobra.Command{
	Use:   "wordpair",
	Short: "Memorize word pairs, then recall them",
	Long: `wordpair shows word pairs one at a time, gives you a few seconds to
memorize each, then asks for the word that goes with every prompt.
Get them all right to finish; miss one and you learn them again.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.Flags().Duration("learning-time", quiz.DefaultLearningTime, "How long each pair is shown while learning")
	rootCmd.PersistentFlags().String("log-file", "", "Append debug logs to this file (default: no logging)")

	rootCmd.AddCommand(pairsCmd)
	rootCmd.AddCommand(versionCmd)
}
