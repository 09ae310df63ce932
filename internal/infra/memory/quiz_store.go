package memory

import (
	"context"
	"sort"
	"sync"

	"quizzz-service/internal/domain"
)

// QuizStore is an in-memory implementation of app.QuizRepository, used for
// development and tests when Postgres is not configured.
type QuizStore struct {
	mu      sync.RWMutex
	quizzes map[string]domain.Quiz
}

func NewQuizStore() *QuizStore {
	return &QuizStore{quizzes: make(map[string]domain.Quiz)}
}

// Seed preloads quizzes, keeping their existing identifiers.
func (s *QuizStore) Seed(quizzes ...domain.Quiz) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range quizzes {
		s.quizzes[q.ID] = q
	}
}

func (s *QuizStore) Create(_ context.Context, quiz domain.Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quizzes[quiz.ID] = quiz
	return nil
}

func (s *QuizStore) Get(_ context.Context, quizID string) (domain.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	quiz, ok := s.quizzes[quizID]
	if !ok {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	return quiz, nil
}

func (s *QuizStore) List(_ context.Context) ([]domain.QuizSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	summaries := make([]domain.QuizSummary, 0, len(s.quizzes))
	for _, q := range s.quizzes {
		summaries = append(summaries, domain.QuizSummary{
			ID:        q.ID,
			Title:     q.Title,
			Questions: len(q.Questions),
			UpdatedAt: q.UpdatedAt,
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Title < summaries[j].Title })
	return summaries, nil
}

func (s *QuizStore) Update(_ context.Context, quiz domain.Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.quizzes[quiz.ID]; !ok {
		return domain.ErrQuizNotFound
	}
	s.quizzes[quiz.ID] = quiz
	return nil
}

func (s *QuizStore) Delete(_ context.Context, quizID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.quizzes[quizID]; !ok {
		return domain.ErrQuizNotFound
	}
	delete(s.quizzes, quizID)
	return nil
}

// LoadQuiz lets the store double as a cache loader.
func (s *QuizStore) LoadQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	return s.Get(ctx, quizID)
}
