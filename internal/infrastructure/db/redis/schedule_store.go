package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// keyScheduleURL holds the free-text URL of the embedded external schedule
// view; fully overwritten on every update, empty until first set.
const keyScheduleURL = "omni:schedule_url"

// ScheduleStore persists the external schedule URL in Redis.
type ScheduleStore struct {
	client *redis.Client
}

// NewScheduleStore creates a ScheduleStore wrapping the given Redis client.
func NewScheduleStore(client *redis.Client) *ScheduleStore {
	return &ScheduleStore{client: client}
}

func (s *ScheduleStore) Set(ctx context.Context, url string) error {
	return s.client.Set(ctx, keyScheduleURL, url, 0).Err()
}

func (s *ScheduleStore) Get(ctx context.Context) (string, error) {
	url, err := s.client.Get(ctx, keyScheduleURL).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("schedule url: %w", err)
	}
	return url, nil
}
