package extract

import (
	"fmt"

	"quizzz-service/internal/domain"
)

// defaultTitle is used when the document provides no title of its own.
const defaultTitle = "Imported Quiz"

// assemble finalizes the walker's questions into a draft quiz: it applies
// the first-bold-wins tie-break and records a warning for every structural
// ambiguity instead of failing. Questions stay in document order.
func assemble(questions []domain.DraftQuestion) *domain.DraftQuiz {
	draft := &domain.DraftQuiz{
		Title:     defaultTitle,
		Questions: questions,
		Warnings:  []string{},
	}

	for i := range draft.Questions {
		q := &draft.Questions[i]
		n := i + 1

		switch len(q.Choices) {
		case 0:
			draft.Warnings = append(draft.Warnings,
				fmt.Sprintf("Question %d has no choices.", n))
			continue
		case 1:
			draft.Warnings = append(draft.Warnings,
				fmt.Sprintf("Question %d has fewer than two choices.", n))
		}

		var bold []int
		for j := range q.Choices {
			if q.Choices[j].IsCorrect {
				bold = append(bold, j)
			}
		}
		switch {
		case len(bold) == 0:
			draft.Warnings = append(draft.Warnings,
				fmt.Sprintf("Question %d has no detected correct answer.", n))
		case len(bold) > 1:
			// First in document order wins; the rest are demoted and flagged.
			for _, j := range bold[1:] {
				q.Choices[j].IsCorrect = false
			}
			draft.Warnings = append(draft.Warnings,
				fmt.Sprintf("Question %d has multiple bold choices; kept the first as correct.", n))
		}
	}

	return draft
}
