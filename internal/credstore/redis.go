package credstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/hotel-front/internal/config"
	"github.com/spec-kit/hotel-front/internal/identity"
)

// RedisStore keeps credentials in Redis, one key per half, with the shared
// lifetime enforced by per-key TTLs.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisStore connects to Redis using the provided configuration.
func NewRedisStore(cfg config.RedisConfig, ttl time.Duration, logger *zap.Logger) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &RedisStore{client: client, ttl: ttl, logger: logger}
}

func tokenKey(sessionID string, class identity.Class) string {
	return fmt.Sprintf("cred:%s:%s_token", sessionID, class.KeyPrefix)
}

func profileKey(sessionID string, class identity.Class) string {
	return fmt.Sprintf("cred:%s:%s_profile", sessionID, class.KeyPrefix)
}

// Save writes both halves of the credential with the shared TTL.
func (s *RedisStore) Save(ctx context.Context, sessionID string, class identity.Class, token string, profile identity.Profile) error {
	raw, err := encodeProfile(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, tokenKey(sessionID, class), token, s.ttl)
	pipe.Set(ctx, profileKey(sessionID, class), raw, s.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// Read returns the stored credential, or nil when either half is missing or
// the profile fails to parse. A corrupt profile is deleted along with its
// token so the pair never survives half-broken.
func (s *RedisStore) Read(ctx context.Context, sessionID string, class identity.Class) (*Credential, error) {
	token, err := s.client.Get(ctx, tokenKey(sessionID, class)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	raw, err := s.client.Get(ctx, profileKey(sessionID, class)).Result()
	if errors.Is(err, redis.Nil) {
		// Token without profile is not a legal resting state.
		_ = s.Clear(ctx, sessionID, class)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	profile, ok := decodeProfile(raw)
	if !ok {
		s.logger.Warn("discarding corrupt stored profile",
			zap.String("class", string(class.Name)))
		_ = s.Clear(ctx, sessionID, class)
		return nil, nil
	}

	expiresAt := time.Now().Add(s.ttl)
	if remaining, err := s.client.TTL(ctx, tokenKey(sessionID, class)).Result(); err == nil && remaining > 0 {
		expiresAt = time.Now().Add(remaining)
	}

	return &Credential{Token: token, Profile: profile, ExpiresAt: expiresAt}, nil
}

// Clear deletes both halves. Clearing an absent credential is not an error.
func (s *RedisStore) Clear(ctx context.Context, sessionID string, class identity.Class) error {
	return s.client.Del(ctx, tokenKey(sessionID, class), profileKey(sessionID, class)).Err()
}

// Ping verifies Redis connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	if s == nil || s.client == nil {
		return errors.New("redis client not configured")
	}
	return s.client.Ping(ctx).Err()
}

// Close closes the client.
func (s *RedisStore) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}
