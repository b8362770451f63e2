package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"janjitemu/models"

	"github.com/go-redis/redis/v8"
)

// SessionStore keeps one Session per chat for the lifetime of a booking
// attempt. Get returns (nil, nil) when no session exists.
type SessionStore interface {
	Get(ctx context.Context, chatID string) (*models.Session, error)
	Put(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, chatID string) error
}

// RedisSessionStore stores sessions as JSON blobs with a TTL, so abandoned
// conversations expire on their own.
type RedisSessionStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func sessionKey(chatID string) string {
	return "session:" + chatID
}

func (s *RedisSessionStore) Get(ctx context.Context, chatID string) (*models.Session, error) {
	data, err := s.Client.Get(ctx, sessionKey(chatID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}
	var session models.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Put(ctx context.Context, session *models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.Client.Set(ctx, sessionKey(session.ChatID), data, s.TTL).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, chatID string) error {
	if err := s.Client.Del(ctx, sessionKey(chatID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// MemorySessionStore is a map-backed store for tests and single-process runs.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]*models.Session)}
}

func (s *MemorySessionStore) Get(_ context.Context, chatID string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[chatID]
	if !ok {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (s *MemorySessionStore) Put(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	s.sessions[session.ChatID] = &copied
	return nil
}

func (s *MemorySessionStore) Delete(_ context.Context, chatID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
	return nil
}
