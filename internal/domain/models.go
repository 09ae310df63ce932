package domain

import "time"

// Option is a possible answer for a question.
type Option struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Correct  bool   `json:"correct"`
	Position int    `json:"position"`
}

// Question models an MCQ question with exactly one correct option.
type Question struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Position int      `json:"position"`
	Options  []Option `json:"options"`
}

// Quiz is an ordered collection of questions.
type Quiz struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// QuizSummary is the list-view projection of a quiz.
type QuizSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Questions int       `json:"questions"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Response records one answered question within a play session.
type Response struct {
	ID         string    `json:"id"`
	QuestionID string    `json:"questionId"`
	OptionID   string    `json:"optionId"`
	Correct    bool      `json:"correct"`
	AnsweredAt time.Time `json:"answeredAt"`
}

// PlaySession tracks one player's progress through a quiz.
type PlaySession struct {
	ID           string     `json:"id"`
	QuizID       string     `json:"quizId"`
	CurrentIndex int        `json:"currentIndex"`
	Paused       bool       `json:"paused"`
	StartedAt    time.Time  `json:"startedAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	Responses    []Response `json:"responses"`
}

// Completed reports whether the session has answered every question.
func (s PlaySession) Completed() bool {
	return s.CompletedAt != nil
}

// Score is the number of correct responses so far.
func (s PlaySession) Score() int {
	score := 0
	for _, r := range s.Responses {
		if r.Correct {
			score++
		}
	}
	return score
}
