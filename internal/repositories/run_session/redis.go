package runsession

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bbeaudet-dev/rollio-sub001/internal/errors"
	"github.com/bbeaudet-dev/rollio-sub001/internal/pkg/clock"
	redisclient "github.com/bbeaudet-dev/rollio-sub001/internal/redis"
)

const (
	// Key pattern: run_session:{id}
	sessionKeyPrefix = "run_session:"
	// DefaultTTL applies when CreateInput.TTL is zero
	DefaultTTL = 24 * time.Hour

	// Error messages
	errSessionNil     = "session cannot be nil"
	errIDEmpty        = "session ID cannot be empty"
	errGameNil        = "session game state cannot be nil"
	errSessionExpired = "session has already expired"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for run sessions
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Create stores a new session with the specified TTL
func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Session == nil {
		return nil, errors.InvalidArgument(errSessionNil)
	}
	if input.Session.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}
	if input.Session.Game == nil {
		return nil, errors.InvalidArgument(errGameNil)
	}

	now := r.clock.Now()
	ttl := input.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	session := *input.Session
	session.CreatedAt = now
	session.UpdatedAt = now
	session.ExpiresAt = now.Add(ttl)

	data, err := json.Marshal(&session)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal session")
	}

	ok, err := r.client.SetNX(ctx, r.buildKey(session.ID), data, ttl).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to store session in Redis")
	}
	if !ok {
		return nil, errors.AlreadyExists("run session already exists")
	}

	return &CreateOutput{
		Session: &session,
	}, nil
}

// Get retrieves a session by id
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	key := r.buildKey(input.ID)

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redisclient.Nil {
			return nil, errors.NotFound("run session not found").WithMeta("run_id", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get session from Redis")
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal session")
	}

	if r.clock.Now().After(session.ExpiresAt) {
		_ = r.client.Del(ctx, key)
		return nil, errors.NotFound("run session has expired").WithMeta("run_id", input.ID)
	}

	return &GetOutput{
		Session: &session,
	}, nil
}

// Update replaces an existing session with its remaining TTL
func (r *redisRepository) Update(ctx context.Context, session *Session) error {
	if session == nil {
		return errors.InvalidArgument(errSessionNil)
	}
	if session.ID == "" {
		return errors.InvalidArgument(errIDEmpty)
	}
	if session.Game == nil {
		return errors.InvalidArgument(errGameNil)
	}

	now := r.clock.Now()
	if now.After(session.ExpiresAt) {
		return errors.FailedPrecondition(errSessionExpired)
	}
	session.UpdatedAt = now

	data, err := json.Marshal(session)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal session")
	}

	ok, err := r.client.SetXX(ctx, r.buildKey(session.ID), data, session.ExpiresAt.Sub(now)).Result()
	if err != nil {
		return errors.Wrapf(err, "failed to update session in Redis")
	}
	if !ok {
		return errors.NotFound("run session not found").WithMeta("run_id", session.ID)
	}

	return nil
}

// Delete removes a session
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	n, err := r.client.Del(ctx, r.buildKey(input.ID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete session from Redis")
	}

	return &DeleteOutput{
		Deleted: n > 0,
	}, nil
}

// buildKey creates the Redis key for a session
func (r *redisRepository) buildKey(id string) string {
	return sessionKeyPrefix + id
}
