package domain

// Run is a contiguous span of paragraph text with uniform character formatting.
type Run struct {
	Text string
	Bold bool
}

// Paragraph is one block-level unit of document text with its list and
// formatting metadata. It is produced by format normalization and never
// mutated by the extraction pipeline.
type Paragraph struct {
	Text      string
	ListItem  bool
	ListLevel int
	Runs      []Run
}

// DraftChoice is a not-yet-persisted answer choice.
type DraftChoice struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// DraftQuestion is a not-yet-persisted question with its ordered choices.
type DraftQuestion struct {
	Text    string        `json:"text"`
	Choices []DraftChoice `json:"options"`
}

// DraftQuiz is the result of document extraction: ordered questions in
// document order plus any structural-ambiguity warnings. The caller owns it
// outright; the extractor keeps no reference.
type DraftQuiz struct {
	Title     string          `json:"title,omitempty"`
	Questions []DraftQuestion `json:"questions"`
	Warnings  []string        `json:"warnings"`
}
