package port

import "context"

// KeyValue is the durable key-value provider screens use for small bits of
// sticky state (per-screen search text, the acting user set at login).
// Get returns ("", nil) for a missing key.
type KeyValue interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
