package extract

import (
	"regexp"
	"strings"

	"quizzz-service/internal/domain"
)

// lineKind is the classification of one paragraph during the walk.
type lineKind int

const (
	lineContinuation lineKind = iota
	lineQuestion
	lineChoice
)

// Leading enumerator patterns for manually numbered documents. Question
// labels: "1.", "1)", "Question 1", "Question 1:", "Q1.". Choice labels:
// a single letter followed by "." or ")".
var (
	questionLabelRe = regexp.MustCompile(`(?i)^(?:question\s*\d+\s*[.:]?|q\s*\d+\s*\.?|\d+[.)])(?:\s+|$)`)
	choiceLabelRe   = regexp.MustCompile(`(?i)^[a-z][.)](?:\s+|$)`)
)

// classifyLine decides whether a paragraph starts a new question, starts a
// new choice, or continues whatever was opened last. questionDepth is the
// list depth at which the current question was opened: -1 when the question
// is not a list item, noQuestionDepth when no question is open yet.
//
// Priority: explicit question label, then nested-list or letter-label choice,
// then list items at or above the question's own level (the next question in
// a numbered list), then continuation.
func classifyLine(p domain.Paragraph, questionDepth int) lineKind {
	text := strings.TrimSpace(p.Text)
	switch {
	case questionLabelRe.MatchString(text):
		return lineQuestion
	case p.ListItem && p.ListLevel > questionDepth:
		return lineChoice
	case choiceLabelRe.MatchString(text):
		return lineChoice
	case p.ListItem:
		return lineQuestion
	}
	return lineContinuation
}

// noQuestionDepth makes a top-level list item read as a question and any
// nested item as a choice while no question is open.
const noQuestionDepth = 0

// stripQuestionLabel removes a leading question enumerator; the label is not
// retained as question content.
func stripQuestionLabel(text string) string {
	return strings.TrimSpace(questionLabelRe.ReplaceAllString(text, ""))
}

// stripChoiceLabel removes a leading letter enumerator from a choice line.
func stripChoiceLabel(text string) string {
	return strings.TrimSpace(choiceLabelRe.ReplaceAllString(text, ""))
}

// boldRun reports whether a run counts as bold for correctness marking.
// Style-inherited bold is folded into the flag during docx normalization, so
// explicit and inherited bold are indistinguishable here. Whitespace-only
// runs never count.
func boldRun(r domain.Run) bool {
	return r.Bold && strings.TrimSpace(r.Text) != ""
}

// hasBoldRun reports whether any run in the paragraph is bold.
func hasBoldRun(p domain.Paragraph) bool {
	for _, r := range p.Runs {
		if boldRun(r) {
			return true
		}
	}
	return false
}
