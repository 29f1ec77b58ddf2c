package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 24 * time.Hour

// DeliveryDedup records which webhook deliveries were already handled.
// The key is the delivery's hex HMAC signature: it covers the exact body
// bytes, so it identifies one delivery's content.
type DeliveryDedup struct {
	client *redis.Client
}

// NewDeliveryDedup creates a DeliveryDedup wrapping the given Redis client.
func NewDeliveryDedup(client *redis.Client) *DeliveryDedup {
	return &DeliveryDedup{client: client}
}

// Seen reports whether this delivery has already been handled.
func (d *DeliveryDedup) Seen(ctx context.Context, signature string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(signature)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this delivery has been handled (expires after dedupTTL).
func (d *DeliveryDedup) Mark(ctx context.Context, signature string) error {
	return d.client.Set(ctx, d.key(signature), "1", dedupTTL).Err()
}

func (d *DeliveryDedup) key(signature string) string {
	return "webhook:delivery:" + signature
}
