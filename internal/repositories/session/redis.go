package session

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/draftforge/draftforge/internal/errors"
	"github.com/draftforge/draftforge/internal/pkg/clock"
	redisclient "github.com/draftforge/draftforge/internal/redis"
)

const (
	sessionKeyPrefix   = "session:"
	ownerMappingPrefix = "session:owner:"
	defaultTTL         = 24 * time.Hour

	errSessionNil     = "session cannot be nil"
	errSessionIDEmpty = "session ID cannot be empty"
	errOwnerIDEmpty   = "owner ID cannot be empty"
	errSessionExpired = "session has already expired"
)

// RedisConfig holds the dependencies for the Redis-backed repository
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures the config is complete
func (c *RedisConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("client")
	}
	if c.Clock == nil {
		vb.RequiredField("clock")
	}
	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis-backed session repository
func NewRedisRepository(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Session == nil {
		return nil, errors.InvalidArgument(errSessionNil)
	}
	if input.Session.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}
	if input.Session.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	ttl, err := r.ttlFor(input.Session)
	if err != nil {
		return nil, err
	}

	// One session per owner: replacing means dropping the old session key.
	ownerKey := ownerMappingPrefix + input.Session.OwnerID
	existingID, err := r.client.Get(ctx, ownerKey).Result()
	if err != nil && err != redis.Nil {
		return nil, errors.Wrap(err, "failed to check existing session")
	}

	data, err := json.Marshal(input.Session)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal session")
	}

	pipe := r.client.TxPipeline()
	if existingID != "" {
		pipe.Del(ctx, sessionKeyPrefix+existingID)
	}
	pipe.Set(ctx, sessionKeyPrefix+input.Session.ID, data, ttl)
	pipe.Set(ctx, ownerKey, input.Session.ID, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to create session")
	}

	return &CreateOutput{Session: input.Session}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	result, err := r.client.Get(ctx, sessionKeyPrefix+input.ID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("session with ID %s not found", input.ID)
		}
		return nil, errors.Wrap(err, "failed to get session")
	}

	var sess Session
	if err := json.Unmarshal([]byte(result), &sess); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal session")
	}

	return &GetOutput{Session: &sess}, nil
}

func (r *redisRepository) GetByOwnerID(ctx context.Context, input GetByOwnerIDInput) (*GetByOwnerIDOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	ownerKey := ownerMappingPrefix + input.OwnerID
	sessionID, err := r.client.Get(ctx, ownerKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("no session found for owner %s", input.OwnerID)
		}
		return nil, errors.Wrap(err, "failed to get owner session mapping")
	}

	out, err := r.Get(ctx, GetInput{ID: sessionID})
	if err != nil {
		// The session expired out from under the mapping.
		if errors.IsNotFound(err) {
			r.client.Del(ctx, ownerKey)
		}
		return nil, err
	}

	return &GetByOwnerIDOutput{Session: out.Session}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Session == nil {
		return nil, errors.InvalidArgument(errSessionNil)
	}
	if input.Session.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	key := sessionKeyPrefix + input.Session.ID
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to check existence")
	}
	if exists == 0 {
		return nil, errors.NotFoundf("session with ID %s not found", input.Session.ID)
	}

	ttl, err := r.ttlFor(input.Session)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(input.Session)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal session")
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return nil, errors.Wrap(err, "failed to update session")
	}

	return &UpdateOutput{Session: input.Session}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	out, err := r.Get(ctx, GetInput(input))
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, sessionKeyPrefix+input.ID)
	if out.Session.OwnerID != "" {
		pipe.Del(ctx, ownerMappingPrefix+out.Session.OwnerID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to delete session")
	}

	return &DeleteOutput{}, nil
}

// ttlFor computes the session's TTL from its expiry, rejecting sessions
// that have already expired.
func (r *redisRepository) ttlFor(sess *Session) (time.Duration, error) {
	if sess.ExpiresAt.IsZero() {
		return defaultTTL, nil
	}
	ttl := sess.ExpiresAt.Sub(r.clock.Now())
	if ttl <= 0 {
		return 0, errors.InvalidArgument(errSessionExpired)
	}
	return ttl, nil
}
