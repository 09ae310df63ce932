package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"quizzz-service/internal/domain"
)

// PlayRepository persists play sessions and their responses.
type PlayRepository struct {
	pool *pgxpool.Pool
}

func NewPlayRepository(pool *pgxpool.Pool) *PlayRepository {
	return &PlayRepository{pool: pool}
}

func (r *PlayRepository) CreateSession(ctx context.Context, session domain.PlaySession) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO play_sessions (id, quiz_id, current_index, is_paused, started_at, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		session.ID, session.QuizID, session.CurrentIndex, session.Paused, session.StartedAt, session.CompletedAt)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *PlayRepository) GetSession(ctx context.Context, sessionID string) (domain.PlaySession, error) {
	var session domain.PlaySession
	err := r.pool.QueryRow(ctx,
		`SELECT id, quiz_id, current_index, is_paused, started_at, completed_at
		 FROM play_sessions WHERE id=$1`, sessionID).
		Scan(&session.ID, &session.QuizID, &session.CurrentIndex, &session.Paused,
			&session.StartedAt, &session.CompletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.PlaySession{}, domain.ErrSessionNotFound
	}
	if err != nil {
		return domain.PlaySession{}, fmt.Errorf("load session: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, question_id, option_id, is_correct, answered_at
		 FROM responses WHERE session_id=$1 ORDER BY answered_at, id`, sessionID)
	if err != nil {
		return domain.PlaySession{}, fmt.Errorf("load responses: %w", err)
	}
	defer rows.Close()

	session.Responses = []domain.Response{}
	for rows.Next() {
		var resp domain.Response
		if err := rows.Scan(&resp.ID, &resp.QuestionID, &resp.OptionID, &resp.Correct, &resp.AnsweredAt); err != nil {
			return domain.PlaySession{}, fmt.Errorf("scan response: %w", err)
		}
		session.Responses = append(session.Responses, resp)
	}
	return session, rows.Err()
}

func (r *PlayRepository) UpdateSession(ctx context.Context, session domain.PlaySession) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE play_sessions SET current_index=$2, is_paused=$3, completed_at=$4 WHERE id=$1`,
		session.ID, session.CurrentIndex, session.Paused, session.CompletedAt)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *PlayRepository) AddResponse(ctx context.Context, sessionID string, response domain.Response) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO responses (id, session_id, question_id, option_id, is_correct, answered_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		response.ID, sessionID, response.QuestionID, response.OptionID, response.Correct, response.AnsweredAt)
	if err != nil {
		return fmt.Errorf("insert response: %w", err)
	}
	return nil
}
