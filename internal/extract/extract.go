// Package extract converts word-processing documents into draft quizzes.
//
// The pipeline walks a document's paragraphs top to bottom, classifies each
// as a new question, a new choice, or a continuation of the previous one,
// and marks a choice correct when any of its runs is bold. Structural
// ambiguity (missing choices, missing or duplicate correct answers) never
// aborts extraction; it is reported through DraftQuiz.Warnings so the user
// can fix the structure in a review step.
//
// Extraction is a pure function of the input bytes: identical input yields
// an identical draft, and concurrent extractions share no state.
package extract

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"quizzz-service/internal/domain"
)

// Config configures the extractor.
type Config struct {
	// MaxFileSize is the largest document accepted, in bytes (default 20 MB).
	MaxFileSize int64
	// Logger for debug messages.
	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = 20 * 1024 * 1024
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Extractor is the document-to-quiz extraction boundary.
type Extractor struct {
	cfg    Config
	logger *slog.Logger
}

// New creates an Extractor with the given configuration.
func New(cfg Config) *Extractor {
	cfg.defaults()
	return &Extractor{cfg: cfg, logger: cfg.Logger}
}

// Extract reads a docx byte stream and returns the assembled draft quiz.
// It fails with domain.ErrUnreadableDocument when the bytes are not a
// well-formed docx container and with domain.ErrEmptyDocument when the
// document parses but holds no non-blank paragraphs.
func (e *Extractor) Extract(r io.Reader) (*domain.DraftQuiz, error) {
	data, err := io.ReadAll(io.LimitReader(r, e.cfg.MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if int64(len(data)) > e.cfg.MaxFileSize {
		return nil, fmt.Errorf("%w: exceeds %d bytes", domain.ErrDocumentTooLarge, e.cfg.MaxFileSize)
	}
	return e.ExtractBytes(data)
}

// ExtractBytes is Extract for an in-memory document.
func (e *Extractor) ExtractBytes(data []byte) (*domain.DraftQuiz, error) {
	paragraphs, err := parseDocx(data)
	if err != nil {
		return nil, err
	}
	draft, err := FromParagraphs(paragraphs)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("document extracted",
		"questions", len(draft.Questions),
		"warnings", len(draft.Warnings))
	return draft, nil
}

// FromParagraphs runs the classification walk over already-normalized
// paragraphs. It is the format-independent core: any input format reduced to
// the Paragraph abstraction can feed it.
func FromParagraphs(paragraphs []domain.Paragraph) (*domain.DraftQuiz, error) {
	blank := true
	for _, p := range paragraphs {
		if strings.TrimSpace(p.Text) != "" {
			blank = false
			break
		}
	}
	if blank {
		return nil, domain.ErrEmptyDocument
	}

	w := newWalker()
	for _, p := range paragraphs {
		w.feed(p)
	}
	return assemble(w.questions), nil
}
