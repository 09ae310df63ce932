package domain

import "errors"

var (
	// ErrUnreadableDocument is returned when the uploaded bytes are not a
	// parseable document container.
	ErrUnreadableDocument = errors.New("unreadable document")
	// ErrEmptyDocument is returned when a document parses but contains no
	// non-blank paragraphs.
	ErrEmptyDocument = errors.New("empty document")
	// ErrDocumentTooLarge is returned when an upload exceeds the size limit.
	ErrDocumentTooLarge = errors.New("document too large")
	// ErrQuizNotFound indicates the quiz does not exist.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuestionNotFound indicates a submitted question ID is invalid.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrOptionNotFound indicates a submitted option does not belong to the question.
	ErrOptionNotFound = errors.New("option not found")
	// ErrSessionNotFound indicates the play session does not exist.
	ErrSessionNotFound = errors.New("play session not found")
	// ErrSessionCompleted is returned when answering a finished session.
	ErrSessionCompleted = errors.New("play session already completed")
	// ErrSessionPaused is returned when answering a paused session.
	ErrSessionPaused = errors.New("play session is paused")
	// ErrQuestionAnswered is returned when a question already has a response.
	ErrQuestionAnswered = errors.New("question already answered")
)
