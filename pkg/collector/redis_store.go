package collector

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the latest submission per device as a JSON value under
// "<prefix>device:<deviceID>" with a sliding TTL.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedisStore wraps client. A zero ttl keeps entries forever.
func NewRedisStore(client redis.UniversalClient, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(deviceID string) string {
	return s.prefix + "device:" + deviceID
}

func (s *RedisStore) Save(ctx context.Context, sub Submission) error {
	if sub.DeviceID == "" {
		return ErrInvalidDeviceID
	}
	data, err := json.Marshal(sub)
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	if err := s.client.Set(ctx, s.key(sub.DeviceID), data, s.ttl).Err(); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

func (s *RedisStore) Latest(ctx context.Context, deviceID string) (Submission, error) {
	data, err := s.client.Get(ctx, s.key(deviceID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Submission{}, ErrNotFound
	}
	if err != nil {
		return Submission{}, errors.Join(ErrStoreRead, err)
	}

	var sub Submission
	if err := json.Unmarshal(data, &sub); err != nil {
		return Submission{}, errors.Join(ErrStoreRead, err)
	}
	return sub, nil
}
