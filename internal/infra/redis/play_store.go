package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"quizzz-service/internal/domain"
)

// PlayStore keeps play sessions in Redis as JSON values with a TTL, for
// deployments that run without Postgres. Sessions are anonymous and
// short-lived, so key expiry doubles as cleanup.
type PlayStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPlayStore(client *redis.Client, ttl time.Duration) *PlayStore {
	return &PlayStore{client: client, ttl: ttl}
}

func (s *PlayStore) CreateSession(ctx context.Context, session domain.PlaySession) error {
	return s.write(ctx, session)
}

func (s *PlayStore) GetSession(ctx context.Context, sessionID string) (domain.PlaySession, error) {
	raw, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if err == redis.Nil {
		return domain.PlaySession{}, domain.ErrSessionNotFound
	}
	if err != nil {
		return domain.PlaySession{}, fmt.Errorf("load session: %w", err)
	}
	var session domain.PlaySession
	if err := json.Unmarshal(raw, &session); err != nil {
		return domain.PlaySession{}, fmt.Errorf("unmarshal session: %w", err)
	}
	if session.Responses == nil {
		session.Responses = []domain.Response{}
	}
	return session, nil
}

func (s *PlayStore) UpdateSession(ctx context.Context, session domain.PlaySession) error {
	stored, err := s.GetSession(ctx, session.ID)
	if err != nil {
		return err
	}
	// Responses are owned by AddResponse; only session state is replaced.
	session.Responses = stored.Responses
	return s.write(ctx, session)
}

func (s *PlayStore) AddResponse(ctx context.Context, sessionID string, response domain.Response) error {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	session.Responses = append(session.Responses, response)
	return s.write(ctx, session)
}

func (s *PlayStore) write(ctx context.Context, session domain.PlaySession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(session.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *PlayStore) key(sessionID string) string {
	return "play:session:" + sessionID
}
