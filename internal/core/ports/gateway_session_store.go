package ports

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
)

// ErrSessionNotFound reports that no checkout session is stored under the
// given remote order id, either because it never existed or its TTL lapsed.
var ErrSessionNotFound = errors.New("gateway session not found")

// GatewaySessionStore keeps short-lived checkout sessions keyed by the
// provider's order id. The mapping lets the verification endpoint reject
// callbacks for sessions that expired before the buyer paid. Entries vanish
// on their own after the TTL; nothing else cleans them up.
type GatewaySessionStore interface {
	// Put stores the remote-order-to-order mapping for the given TTL.
	Put(ctx context.Context, externalOrderID string, orderID kernel.UUID, ttl time.Duration) error

	// Get resolves a remote order id back to our order id.
	// Returns ErrSessionNotFound for unknown or expired sessions.
	Get(ctx context.Context, externalOrderID string) (kernel.UUID, error)

	// Delete removes a session once the payment settled or failed for good.
	Delete(ctx context.Context, externalOrderID string) error
}
