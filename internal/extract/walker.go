package extract

import (
	"strings"

	"quizzz-service/internal/domain"
)

// walker folds paragraphs into a draft quiz. It is a strictly sequential,
// single-pass state machine: a cursor over the current question and choice,
// no lookahead, no backtracking. It never fails on malformed structure;
// structural problems are left for the assembler to report.
type walker struct {
	questions     []domain.DraftQuestion
	questionDepth int
	haveQuestion  bool
	inChoice      bool
}

func newWalker() *walker {
	return &walker{questionDepth: noQuestionDepth}
}

// feed consumes a single paragraph. Blank paragraphs are skipped; every
// other paragraph becomes a new question, a new choice, or a continuation
// of whichever was opened last.
func (w *walker) feed(p domain.Paragraph) {
	text := strings.TrimSpace(p.Text)
	if text == "" {
		return
	}

	switch classifyLine(p, w.questionDepth) {
	case lineQuestion:
		w.openQuestion(stripQuestionLabel(text), p)
	case lineChoice:
		w.openChoice(stripChoiceLabel(text), p)
	case lineContinuation:
		w.appendContinuation(text)
	}
}

func (w *walker) openQuestion(text string, p domain.Paragraph) {
	w.questions = append(w.questions, domain.DraftQuestion{Text: text})
	w.haveQuestion = true
	w.inChoice = false
	if p.ListItem {
		w.questionDepth = p.ListLevel
	} else {
		w.questionDepth = -1
	}
}

func (w *walker) openChoice(text string, p domain.Paragraph) {
	if !w.haveQuestion {
		// A choice before any question opens an implicit untitled question
		// rather than dropping input.
		w.openQuestion("", p)
	}
	q := &w.questions[len(w.questions)-1]
	q.Choices = append(q.Choices, domain.DraftChoice{
		Text:      text,
		IsCorrect: hasBoldRun(p),
	})
	w.inChoice = true
}

func (w *walker) appendContinuation(text string) {
	if !w.haveQuestion {
		// Leading prose with no question open starts an implicit question.
		w.questions = append(w.questions, domain.DraftQuestion{Text: text})
		w.haveQuestion = true
		w.questionDepth = -1
		return
	}
	q := &w.questions[len(w.questions)-1]
	if w.inChoice && len(q.Choices) > 0 {
		c := &q.Choices[len(q.Choices)-1]
		c.Text = joined(c.Text, text)
		return
	}
	q.Text = joined(q.Text, text)
}

func joined(base, extra string) string {
	if base == "" {
		return extra
	}
	return base + " " + extra
}
