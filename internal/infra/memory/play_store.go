package memory

import (
	"context"
	"sync"

	"quizzz-service/internal/domain"
)

// PlayStore is an in-memory implementation of app.PlayRepository.
type PlayStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.PlaySession
}

func NewPlayStore() *PlayStore {
	return &PlayStore{sessions: make(map[string]domain.PlaySession)}
}

func (s *PlayStore) CreateSession(_ context.Context, session domain.PlaySession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = cloneSession(session)
	return nil
}

func (s *PlayStore) GetSession(_ context.Context, sessionID string) (domain.PlaySession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return domain.PlaySession{}, domain.ErrSessionNotFound
	}
	return cloneSession(session), nil
}

func (s *PlayStore) UpdateSession(_ context.Context, session domain.PlaySession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.sessions[session.ID]
	if !ok {
		return domain.ErrSessionNotFound
	}
	// Responses are owned by AddResponse; only session state is replaced.
	session.Responses = stored.Responses
	s.sessions[session.ID] = cloneSession(session)
	return nil
}

func (s *PlayStore) AddResponse(_ context.Context, sessionID string, response domain.Response) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return domain.ErrSessionNotFound
	}
	session.Responses = append(session.Responses, response)
	s.sessions[sessionID] = session
	return nil
}

func cloneSession(session domain.PlaySession) domain.PlaySession {
	clone := session
	clone.Responses = make([]domain.Response, len(session.Responses))
	copy(clone.Responses, session.Responses)
	if session.CompletedAt != nil {
		completed := *session.CompletedAt
		clone.CompletedAt = &completed
	}
	return clone
}
