package extract

import (
	"testing"

	"quizzz-service/internal/domain"
)

func TestClassifyLineLabels(t *testing.T) {
	tests := []struct {
		text string
		want lineKind
	}{
		{"1. What is 2+2?", lineQuestion},
		{"12) Pick one", lineQuestion},
		{"Question 3: Pick a color", lineQuestion},
		{"question 3 Pick a color", lineQuestion},
		{"Q4. Choose", lineQuestion},
		{"q7 Choose", lineQuestion},
		{"A. First option", lineChoice},
		{"b) second option", lineChoice},
		{"Z. any letter works", lineChoice},
		{"wrapped text with no label", lineContinuation},
		{"10 items were found", lineContinuation},
		{"Ask. politely", lineContinuation},
	}

	for _, tt := range tests {
		p := domain.Paragraph{Text: tt.text}
		if got := classifyLine(p, -1); got != tt.want {
			t.Errorf("classifyLine(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestClassifyLineListMetadata(t *testing.T) {
	// Top-level list item reads as a question while no question is open.
	top := domain.Paragraph{Text: "What is 2+2?", ListItem: true, ListLevel: 0}
	if got := classifyLine(top, noQuestionDepth); got != lineQuestion {
		t.Fatalf("top-level list item = %v, want question", got)
	}

	// Nested item under a level-0 question is a choice.
	nested := domain.Paragraph{Text: "4", ListItem: true, ListLevel: 1}
	if got := classifyLine(nested, 0); got != lineChoice {
		t.Fatalf("nested list item = %v, want choice", got)
	}

	// A level-0 bullet under a non-list question is still nested relative to it.
	bullet := domain.Paragraph{Text: "4", ListItem: true, ListLevel: 0}
	if got := classifyLine(bullet, -1); got != lineChoice {
		t.Fatalf("bullet under plain question = %v, want choice", got)
	}

	// Sibling item at the question's own level starts the next question.
	sibling := domain.Paragraph{Text: "What is 3+3?", ListItem: true, ListLevel: 0}
	if got := classifyLine(sibling, 0); got != lineQuestion {
		t.Fatalf("sibling list item = %v, want question", got)
	}
}

func TestQuestionLabelPriorityOverList(t *testing.T) {
	// An explicit question label wins even on a nested list item.
	p := domain.Paragraph{Text: "Question 2: deep but labeled", ListItem: true, ListLevel: 2}
	if got := classifyLine(p, 0); got != lineQuestion {
		t.Fatalf("labeled nested item = %v, want question", got)
	}
}

func TestStripLabels(t *testing.T) {
	tests := []struct {
		in, want string
		strip    func(string) string
	}{
		{"1. What is 2+2?", "What is 2+2?", stripQuestionLabel},
		{"Question 1: Pick a color", "Pick a color", stripQuestionLabel},
		{"Q2. Choose", "Choose", stripQuestionLabel},
		{"unlabeled", "unlabeled", stripQuestionLabel},
		{"A. Red", "Red", stripChoiceLabel},
		{"b) blue", "blue", stripChoiceLabel},
		{"no label here", "no label here", stripChoiceLabel},
	}
	for _, tt := range tests {
		if got := tt.strip(tt.in); got != tt.want {
			t.Errorf("strip(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBoldRun(t *testing.T) {
	if boldRun(domain.Run{Text: "   ", Bold: true}) {
		t.Error("whitespace-only bold run should not count")
	}
	if boldRun(domain.Run{Text: "4", Bold: false}) {
		t.Error("plain run should not count as bold")
	}
	if !boldRun(domain.Run{Text: "4", Bold: true}) {
		t.Error("bold run with text should count")
	}
}
