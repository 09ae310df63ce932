package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"quizzz-service/internal/domain"
)

// QuizRepository abstracts quiz persistence (in-memory, Postgres).
type QuizRepository interface {
	Create(ctx context.Context, quiz domain.Quiz) error
	Get(ctx context.Context, quizID string) (domain.Quiz, error)
	List(ctx context.Context) ([]domain.QuizSummary, error)
	Update(ctx context.Context, quiz domain.Quiz) error
	Delete(ctx context.Context, quizID string) error
}

// OptionInput is a caller-supplied option; identifiers and positions are
// assigned here, never by the extraction core.
type OptionInput struct {
	Text    string `json:"text"`
	Correct bool   `json:"isCorrect"`
}

// QuestionInput is a caller-supplied question.
type QuestionInput struct {
	Text    string        `json:"text"`
	Options []OptionInput `json:"options"`
}

// QuizInput is the payload for creating or replacing a quiz. It matches the
// shape of an extraction draft after user review.
type QuizInput struct {
	Title     string          `json:"title"`
	Questions []QuestionInput `json:"questions"`
}

// QuizInvalidator evicts cached quiz content after an edit or delete.
type QuizInvalidator interface {
	Invalidate(ctx context.Context, quizID string)
}

// QuizService contains the quiz authoring use cases.
type QuizService struct {
	quizzes QuizRepository
	cache   QuizInvalidator
	now     func() time.Time
	newID   func() string
}

func NewQuizService(quizzes QuizRepository) *QuizService {
	return &QuizService{
		quizzes: quizzes,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// SetCache registers a cache to evict when a quiz changes.
func (s *QuizService) SetCache(cache QuizInvalidator) {
	s.cache = cache
}

func (s *QuizService) invalidate(ctx context.Context, quizID string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, quizID)
	}
}

// Create materializes the input into a quiz with fresh identifiers and
// document-order positions, and persists it.
func (s *QuizService) Create(ctx context.Context, input QuizInput) (domain.Quiz, error) {
	now := s.now().UTC()
	quiz := s.materialize(input)
	quiz.ID = s.newID()
	quiz.CreatedAt = now
	quiz.UpdatedAt = now
	if err := s.quizzes.Create(ctx, quiz); err != nil {
		return domain.Quiz{}, err
	}
	return quiz, nil
}

// CreateFromDraft persists a reviewed extraction draft.
func (s *QuizService) CreateFromDraft(ctx context.Context, draft domain.DraftQuiz) (domain.Quiz, error) {
	input := QuizInput{Title: draft.Title}
	for _, q := range draft.Questions {
		question := QuestionInput{Text: q.Text}
		for _, c := range q.Choices {
			question.Options = append(question.Options, OptionInput{Text: c.Text, Correct: c.IsCorrect})
		}
		input.Questions = append(input.Questions, question)
	}
	return s.Create(ctx, input)
}

// Get returns a quiz with its ordered questions and options.
func (s *QuizService) Get(ctx context.Context, quizID string) (domain.Quiz, error) {
	return s.quizzes.Get(ctx, quizID)
}

// List returns summaries of all quizzes.
func (s *QuizService) List(ctx context.Context) ([]domain.QuizSummary, error) {
	return s.quizzes.List(ctx)
}

// Update replaces a quiz's content wholesale. Question and option
// identifiers are reassigned; the quiz keeps its identity and creation time.
func (s *QuizService) Update(ctx context.Context, quizID string, input QuizInput) (domain.Quiz, error) {
	existing, err := s.quizzes.Get(ctx, quizID)
	if err != nil {
		return domain.Quiz{}, err
	}
	quiz := s.materialize(input)
	quiz.ID = existing.ID
	quiz.CreatedAt = existing.CreatedAt
	quiz.UpdatedAt = s.now().UTC()
	if err := s.quizzes.Update(ctx, quiz); err != nil {
		return domain.Quiz{}, err
	}
	s.invalidate(ctx, quizID)
	return quiz, nil
}

// Delete removes a quiz and its dependent records.
func (s *QuizService) Delete(ctx context.Context, quizID string) error {
	if err := s.quizzes.Delete(ctx, quizID); err != nil {
		return err
	}
	s.invalidate(ctx, quizID)
	return nil
}

func (s *QuizService) materialize(input QuizInput) domain.Quiz {
	quiz := domain.Quiz{Title: input.Title}
	for qi, q := range input.Questions {
		question := domain.Question{
			ID:       s.newID(),
			Text:     q.Text,
			Position: qi,
		}
		for oi, o := range q.Options {
			question.Options = append(question.Options, domain.Option{
				ID:       s.newID(),
				Text:     o.Text,
				Correct:  o.Correct,
				Position: oi,
			})
		}
		quiz.Questions = append(quiz.Questions, question)
	}
	return quiz
}
