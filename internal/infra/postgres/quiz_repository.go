package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"quizzz-service/internal/domain"
)

// QuizRepository persists quizzes relationally (quizzes, questions, options)
// with explicit ordering positions.
type QuizRepository struct {
	pool *pgxpool.Pool
}

func NewQuizRepository(pool *pgxpool.Pool) *QuizRepository {
	return &QuizRepository{pool: pool}
}

func (r *QuizRepository) Create(ctx context.Context, quiz domain.Quiz) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO quizzes (id, title, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		quiz.ID, quiz.Title, quiz.CreatedAt, quiz.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert quiz: %w", err)
	}
	if err := insertQuestions(ctx, tx, quiz); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *QuizRepository) Get(ctx context.Context, quizID string) (domain.Quiz, error) {
	var quiz domain.Quiz
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, created_at, updated_at FROM quizzes WHERE id=$1`, quizID).
		Scan(&quiz.ID, &quiz.Title, &quiz.CreatedAt, &quiz.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load quiz: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, text, position FROM questions WHERE quiz_id=$1 ORDER BY position`, quizID)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()
	index := map[string]int{}
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.Text, &q.Position); err != nil {
			return domain.Quiz{}, fmt.Errorf("scan question: %w", err)
		}
		index[q.ID] = len(quiz.Questions)
		quiz.Questions = append(quiz.Questions, q)
	}
	if err := rows.Err(); err != nil {
		return domain.Quiz{}, fmt.Errorf("iterate questions: %w", err)
	}

	optRows, err := r.pool.Query(ctx,
		`SELECT o.id, o.question_id, o.text, o.is_correct, o.position
		 FROM options o JOIN questions q ON q.id = o.question_id
		 WHERE q.quiz_id=$1 ORDER BY o.position`, quizID)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load options: %w", err)
	}
	defer optRows.Close()
	for optRows.Next() {
		var (
			o          domain.Option
			questionID string
		)
		if err := optRows.Scan(&o.ID, &questionID, &o.Text, &o.Correct, &o.Position); err != nil {
			return domain.Quiz{}, fmt.Errorf("scan option: %w", err)
		}
		if i, ok := index[questionID]; ok {
			quiz.Questions[i].Options = append(quiz.Questions[i].Options, o)
		}
	}
	if err := optRows.Err(); err != nil {
		return domain.Quiz{}, fmt.Errorf("iterate options: %w", err)
	}
	return quiz, nil
}

func (r *QuizRepository) List(ctx context.Context) ([]domain.QuizSummary, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT q.id, q.title, q.updated_at, count(qs.id)
		 FROM quizzes q LEFT JOIN questions qs ON qs.quiz_id = q.id
		 GROUP BY q.id, q.title, q.updated_at
		 ORDER BY q.title`)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	summaries := []domain.QuizSummary{}
	for rows.Next() {
		var s domain.QuizSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.UpdatedAt, &s.Questions); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *QuizRepository) Update(ctx context.Context, quiz domain.Quiz) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE quizzes SET title=$2, updated_at=$3 WHERE id=$1`,
		quiz.ID, quiz.Title, quiz.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update quiz: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrQuizNotFound
	}
	// Content is replaced wholesale; options cascade with their questions.
	if _, err := tx.Exec(ctx, `DELETE FROM questions WHERE quiz_id=$1`, quiz.ID); err != nil {
		return fmt.Errorf("clear questions: %w", err)
	}
	if err := insertQuestions(ctx, tx, quiz); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *QuizRepository) Delete(ctx context.Context, quizID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM quizzes WHERE id=$1`, quizID)
	if err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrQuizNotFound
	}
	return nil
}

// LoadQuiz lets the repository back the quiz caches.
func (r *QuizRepository) LoadQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	return r.Get(ctx, quizID)
}

func insertQuestions(ctx context.Context, tx pgx.Tx, quiz domain.Quiz) error {
	for _, q := range quiz.Questions {
		_, err := tx.Exec(ctx,
			`INSERT INTO questions (id, quiz_id, text, position) VALUES ($1, $2, $3, $4)`,
			q.ID, quiz.ID, q.Text, q.Position)
		if err != nil {
			return fmt.Errorf("insert question: %w", err)
		}
		for _, o := range q.Options {
			_, err := tx.Exec(ctx,
				`INSERT INTO options (id, question_id, text, is_correct, position) VALUES ($1, $2, $3, $4, $5)`,
				o.ID, q.ID, o.Text, o.Correct, o.Position)
			if err != nil {
				return fmt.Errorf("insert option: %w", err)
			}
		}
	}
	return nil
}
