// Package redisstore implements the gateway session store on Redis. Sessions
// are plain key-value entries with a TTL; Redis expiry is the only cleanup.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// Key layout: gateway_session:{external_order_id} -> order_id
const sessionKeyFormat = "gateway_session:%s"

// SessionStore stores checkout sessions keyed by the provider's order id.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a session store over an existing Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Put stores the remote-order-to-order mapping for the given TTL.
func (s *SessionStore) Put(
	ctx context.Context,
	externalOrderID string,
	orderID kernel.UUID,
	ttl time.Duration,
) error {
	return s.client.Set(ctx, sessionKey(externalOrderID), orderID.String(), ttl).Err()
}

// Get resolves a remote order id back to our order id.
// Returns ports.ErrSessionNotFound for unknown or expired sessions.
func (s *SessionStore) Get(ctx context.Context, externalOrderID string) (kernel.UUID, error) {
	value, err := s.client.Get(ctx, sessionKey(externalOrderID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return kernel.UUID{}, ports.ErrSessionNotFound
		}
		return kernel.UUID{}, err
	}

	return kernel.UUIDFromString(value)
}

// Delete removes a session once the payment settled or failed for good.
func (s *SessionStore) Delete(ctx context.Context, externalOrderID string) error {
	return s.client.Del(ctx, sessionKey(externalOrderID)).Err()
}

func sessionKey(externalOrderID string) string {
	return fmt.Sprintf(sessionKeyFormat, externalOrderID)
}
