package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"quizzz-service/internal/domain"
)

// QuizSource resolves quiz content for play, usually through a cache.
type QuizSource interface {
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
}

// PlayRepository persists play sessions and their responses.
type PlayRepository interface {
	CreateSession(ctx context.Context, session domain.PlaySession) error
	GetSession(ctx context.Context, sessionID string) (domain.PlaySession, error)
	UpdateSession(ctx context.Context, session domain.PlaySession) error
	AddResponse(ctx context.Context, sessionID string, response domain.Response) error
}

// Progress is the live snapshot broadcast to session subscribers.
type Progress struct {
	SessionID    string `json:"sessionId"`
	QuizID       string `json:"quizId"`
	CurrentIndex int    `json:"currentIndex"`
	Answered     int    `json:"answered"`
	Correct      int    `json:"correct"`
	Total        int    `json:"total"`
	Paused       bool   `json:"paused"`
	Completed    bool   `json:"completed"`
}

// PlayService contains the quiz-taking use cases: start a session, answer
// question by question, pause and resume, and watch progress live.
type PlayService struct {
	plays   PlayRepository
	quizzes QuizSource
	live    *liveHub
	now     func() time.Time
	newID   func() string
}

func NewPlayService(plays PlayRepository, quizzes QuizSource) *PlayService {
	return &PlayService{
		plays:   plays,
		quizzes: quizzes,
		live:    newLiveHub(),
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Start opens a play session for a quiz.
func (s *PlayService) Start(ctx context.Context, quizID string) (domain.PlaySession, error) {
	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.PlaySession{}, err
	}
	session := domain.PlaySession{
		ID:        s.newID(),
		QuizID:    quiz.ID,
		StartedAt: s.now().UTC(),
		Responses: []domain.Response{},
	}
	if err := s.plays.CreateSession(ctx, session); err != nil {
		return domain.PlaySession{}, err
	}
	return session, nil
}

// Get returns a session with its responses, for display or resume.
func (s *PlayService) Get(ctx context.Context, sessionID string) (domain.PlaySession, error) {
	return s.plays.GetSession(ctx, sessionID)
}

// Answer records a response for one question, advances the cursor, and
// completes the session after the last question. Each question can be
// answered once; answers are scored against the quiz's correct option.
func (s *PlayService) Answer(ctx context.Context, sessionID, questionID, optionID string) (domain.Response, domain.PlaySession, error) {
	session, err := s.plays.GetSession(ctx, sessionID)
	if err != nil {
		return domain.Response{}, domain.PlaySession{}, err
	}
	if session.Completed() {
		return domain.Response{}, domain.PlaySession{}, domain.ErrSessionCompleted
	}
	if session.Paused {
		return domain.Response{}, domain.PlaySession{}, domain.ErrSessionPaused
	}

	quiz, err := s.quizzes.GetQuiz(ctx, session.QuizID)
	if err != nil {
		return domain.Response{}, domain.PlaySession{}, err
	}

	var question *domain.Question
	for i := range quiz.Questions {
		if quiz.Questions[i].ID == questionID {
			question = &quiz.Questions[i]
			break
		}
	}
	if question == nil {
		return domain.Response{}, domain.PlaySession{}, domain.ErrQuestionNotFound
	}
	for _, r := range session.Responses {
		if r.QuestionID == questionID {
			return domain.Response{}, domain.PlaySession{}, domain.ErrQuestionAnswered
		}
	}
	var selected *domain.Option
	for i := range question.Options {
		if question.Options[i].ID == optionID {
			selected = &question.Options[i]
			break
		}
	}
	if selected == nil {
		return domain.Response{}, domain.PlaySession{}, domain.ErrOptionNotFound
	}

	now := s.now().UTC()
	response := domain.Response{
		ID:         s.newID(),
		QuestionID: questionID,
		OptionID:   optionID,
		Correct:    selected.Correct,
		AnsweredAt: now,
	}
	session.Responses = append(session.Responses, response)
	session.CurrentIndex = len(session.Responses)
	if len(session.Responses) >= len(quiz.Questions) {
		session.CompletedAt = &now
	}

	if err := s.plays.AddResponse(ctx, session.ID, response); err != nil {
		return domain.Response{}, domain.PlaySession{}, err
	}
	if err := s.plays.UpdateSession(ctx, session); err != nil {
		return domain.Response{}, domain.PlaySession{}, err
	}

	s.live.broadcast(session.ID, s.progress(session, len(quiz.Questions)))
	return response, session, nil
}

// Pause suspends an in-flight session so it can be resumed later.
func (s *PlayService) Pause(ctx context.Context, sessionID string) (domain.PlaySession, error) {
	return s.setPaused(ctx, sessionID, true)
}

// Resume reopens a paused session.
func (s *PlayService) Resume(ctx context.Context, sessionID string) (domain.PlaySession, error) {
	return s.setPaused(ctx, sessionID, false)
}

func (s *PlayService) setPaused(ctx context.Context, sessionID string, paused bool) (domain.PlaySession, error) {
	session, err := s.plays.GetSession(ctx, sessionID)
	if err != nil {
		return domain.PlaySession{}, err
	}
	if session.Completed() {
		return domain.PlaySession{}, domain.ErrSessionCompleted
	}
	if session.Paused == paused {
		return session, nil
	}
	session.Paused = paused
	if err := s.plays.UpdateSession(ctx, session); err != nil {
		return domain.PlaySession{}, err
	}
	if quiz, err := s.quizzes.GetQuiz(ctx, session.QuizID); err == nil {
		s.live.broadcast(session.ID, s.progress(session, len(quiz.Questions)))
	}
	return session, nil
}

// Subscribe returns a channel receiving progress snapshots for a session.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *PlayService) Subscribe(ctx context.Context, sessionID string) (<-chan Progress, func(), error) {
	session, err := s.plays.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	quiz, err := s.quizzes.GetQuiz(ctx, session.QuizID)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := s.live.subscribe(session.ID, s.progress(session, len(quiz.Questions)))
	return ch, cancel, nil
}

func (s *PlayService) progress(session domain.PlaySession, total int) Progress {
	return Progress{
		SessionID:    session.ID,
		QuizID:       session.QuizID,
		CurrentIndex: session.CurrentIndex,
		Answered:     len(session.Responses),
		Correct:      session.Score(),
		Total:        total,
		Paused:       session.Paused,
		Completed:    session.Completed(),
	}
}
