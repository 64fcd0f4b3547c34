package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/omnicorp/fieldops-api/internal/core/domain"
)

// Fixed keys holding the single active session. Each write fully overwrites
// the previous value (last-write-wins, one instance at a time).
const (
	keySessionUser = "omni:session_user"
	keyUserRole    = "omni:user_role"
)

// SessionStore persists the active session snapshot in Redis.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Save overwrites the session snapshot and the role marker.
func (s *SessionStore) Save(ctx context.Context, user *domain.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	if err := s.client.Set(ctx, keySessionUser, payload, 0).Err(); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return s.client.Set(ctx, keyUserRole, string(user.Role), 0).Err()
}

// Load returns the active session's user, or nil when logged out.
func (s *SessionStore) Load(ctx context.Context) (*domain.User, error) {
	payload, err := s.client.Get(ctx, keySessionUser).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session load: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal(payload, &user); err != nil {
		return nil, fmt.Errorf("session load: %w", err)
	}
	return &user, nil
}

// Clear removes the session snapshot and the role marker.
func (s *SessionStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, keySessionUser, keyUserRole).Err()
}
