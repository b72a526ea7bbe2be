package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/aquasur/aquasur-backend/pkg/errors"
	"github.com/aquasur/aquasur-backend/pkg/redis"
)

// Store persists cart snapshots in Redis keyed by the client-held cart token.
// Every mutation rewrites the full snapshot and refreshes the TTL.
type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewStore wires the snapshot store. A non-positive TTL disables expiry.
func NewStore(client *redis.Client, ttl time.Duration) (*Store, error) {
	if client == nil {
		return nil, errors.New("cart store: redis client is required")
	}
	return &Store{redis: client, ttl: ttl}, nil
}

// MintToken issues a fresh opaque cart token for a new session.
func (s *Store) MintToken() string {
	return uuid.NewString()
}

// Load returns the cart stored under token. An unknown or expired token yields
// an empty cart, never an error.
func (s *Store) Load(ctx context.Context, token string) (*Cart, error) {
	raw, err := s.redis.Get(ctx, s.redis.CartKey(token))
	if err != nil {
		if errors.Is(err, redis.ErrNotFound) {
			return New(), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart snapshot")
	}

	var c Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		// A corrupt snapshot is unrecoverable; start the session over.
		return New(), nil
	}
	return &c, nil
}

// Save rewrites the snapshot for token and refreshes its TTL.
func (s *Store) Save(ctx context.Context, token string, c *Cart) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding cart snapshot")
	}
	if err := s.redis.Set(ctx, s.redis.CartKey(token), payload, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving cart snapshot")
	}
	return nil
}

// Delete drops the snapshot for token. Missing keys are not an error.
func (s *Store) Delete(ctx context.Context, token string) error {
	if err := s.redis.Del(ctx, s.redis.CartKey(token)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting cart snapshot")
	}
	return nil
}
