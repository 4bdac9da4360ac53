package cmd

import (
	"fmt"
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/wordpair/internal/quiz"
	"github.com/abhisek/wordpair/internal/ui/theme"
)

var pairsCmd = &cobra.Command{
	Use:   "pairs",
	Short: "List the built-in word pairs",
	RunE: func(cmd *cobra.Command, args []string) error {
		hide, _ := cmd.Flags().GetBool("hide-answers")
		fmt.Fprintln(cmd.OutOrStdout(), renderPairs(quiz.DefaultPairs(), hide))
		return nil
	},
}

func init() {
	pairsCmd.Flags().Bool("hide-answers", false, "Show only the question words")
}

func renderPairs(pairs []quiz.WordPair, hideAnswers bool) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers("#", "Question", "Answer")

	for i, p := range pairs {
		answer := p.RightAnswer
		if hideAnswers {
			answer = "?"
		}
		t.Row(strconv.Itoa(i+1), p.Question, answer)
	}
	return t.String()
}
