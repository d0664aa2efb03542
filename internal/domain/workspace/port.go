package workspace

import "context"

// Store port: tenant-scoped key/value storage. Get returns nil, nil for a missing key.
type Store interface {
	Get(ctx context.Context, tenant, key string) ([]byte, error)
	Set(ctx context.Context, tenant, key string, value []byte) error
}

// Pinger is implemented by stores that can report their health
type Pinger interface {
	Ping(ctx context.Context) error
}
