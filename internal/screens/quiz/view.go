package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	qz "github.com/abhisek/wordpair/internal/quiz"
	"github.com/abhisek/wordpair/internal/ui/components"
	"github.com/abhisek/wordpair/internal/ui/layout"
	"github.com/abhisek/wordpair/internal/ui/theme"
)

const cardWidth = 56

func (s *QuizScreen) View(width, height int) string {
	var body string
	switch st := s.machine.State().(type) {
	case qz.Learning:
		if st.Started {
			body = s.renderLearningPair(st)
		} else {
			body = s.renderInstructions(st)
		}
	case qz.Answering:
		body = s.renderAnswering(st)
	case qz.Intermediate:
		body = s.renderIntermediate(st)
	case qz.Completed:
		body = s.renderCompleted(st)
	}

	if s.errMsg != "" {
		body += "\n\n" + theme.Incorrect.Render(s.errMsg)
	}

	return layout.Center(theme.Card.Width(cardWidth).Render(body), width, height)
}

func (s *QuizScreen) renderInstructions(st qz.Learning) string {
	pairs := s.machine.Pairs()
	secs := int(s.machine.LearningTime().Seconds())

	var b strings.Builder
	b.WriteString(theme.Title.Render(attemptLine(st.NumberOfTry)))
	b.WriteString("\n\n")
	lines := []string{
		"Word pairs will be shown one at a time.",
		"Example: " + theme.Word.Render(pairLine(pairs[0])),
		fmt.Sprintf("Memorize each pair within %d seconds.", secs),
		fmt.Sprintf("After %d seconds the next pair is shown.", secs),
		fmt.Sprintf("There are %d pairs in total. Memorize all of them.", len(pairs)),
		"Once every pair has been shown, you type the word that goes with each prompt.",
	}
	for _, l := range lines {
		b.WriteString(theme.Body.Render(l))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(components.NewButton("Start learning").View())
	return b.String()
}

func (s *QuizScreen) renderLearningPair(st qz.Learning) string {
	pair, _ := s.machine.CurrentPair()
	total := s.machine.LearningTime().Seconds()

	var b strings.Builder
	b.WriteString(theme.Title.Render(attemptLine(st.NumberOfTry)))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Render(progressLine(st.IndexOfPair, s.machine.NumPairs())))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(cardWidth - 8).Align(lipgloss.Center).
		Render(theme.Word.Render(pairLine(pair))))
	b.WriteString("\n\n")
	b.WriteString(components.Countdown(s.remaining().Seconds(), total, cardWidth-8).View())
	return b.String()
}

func (s *QuizScreen) renderAnswering(st qz.Answering) string {
	pair, _ := s.machine.CurrentPair()

	var b strings.Builder
	b.WriteString(theme.Title.Render(attemptLine(st.NumberOfTry)))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Render(progressLine(st.IndexOfPair, s.machine.NumPairs())))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render("Type the word paired with this one."))
	b.WriteString("\n\n")
	b.WriteString(theme.Word.Render(pair.Question + "、") + " " + s.input.View())
	b.WriteString("\n\n")
	b.WriteString(components.NewButton("Confirm answer").View())
	return b.String()
}

func (s *QuizScreen) renderIntermediate(st qz.Intermediate) string {
	n := s.machine.NumPairs()

	var b strings.Builder
	b.WriteString(theme.Title.Render(attemptLine(st.NumberOfTry)))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("%d of %d pairs correct.", st.NumberOfCorrectAnswers, n)))
	b.WriteString("\n\n")
	b.WriteString(components.NewProgressBar("", float64(st.NumberOfCorrectAnswers)/float64(n), cardWidth-8).View())
	b.WriteString("\n\n")
	b.WriteString(components.NewButton("Learn again").View())
	return b.String()
}

func (s *QuizScreen) renderCompleted(st qz.Completed) string {
	var b strings.Builder
	b.WriteString(theme.Correct.Render(fmt.Sprintf(
		"All %d pairs correct on attempt %d.", s.machine.NumPairs(), st.NumberOfTry)))
	b.WriteString("\n\n")
	b.WriteString(components.NewButton("Start over").View())
	return b.String()
}

func attemptLine(try int) string {
	return fmt.Sprintf("Attempt %d", try)
}

func progressLine(index, total int) string {
	return fmt.Sprintf("Pair %d of %d", index+1, total)
}

func pairLine(p qz.WordPair) string {
	return p.Question + "、" + p.RightAnswer
}
