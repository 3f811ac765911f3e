package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists the session under a single redis key. Intended for
// headless deployments of the SDK (bots, server-side agents) where there is
// no device keychain but a shared credential cache.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore describes the newredisstore operation and its observable behavior.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

// Save describes the save operation and its observable behavior.
//
// When the access token carries a parseable expiry claim the key's TTL is
// aligned to it, so a dead token never outlives its session slot.
func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	if sess == nil {
		return errors.New("nil session")
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	var ttl time.Duration
	if exp, ok := TokenExpiry(sess.AccessToken); ok {
		ttl = time.Until(exp)
		if ttl <= 0 {
			return errors.New("session token already expired")
		}
	}

	return s.client.Set(ctx, s.key, data, ttl).Err()
}

// Load describes the load operation and its observable behavior.
//
// Load may return an error when input validation, dependency calls, or security checks fail.
func (s *RedisStore) Load(ctx context.Context) (*Session, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, ErrCorrupt
	}
	return &sess, nil
}

// Delete describes the delete operation and its observable behavior.
//
// Delete is idempotent: deleting a missing key is not an error.
func (s *RedisStore) Delete(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}
