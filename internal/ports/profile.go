package ports

import "context"

// ProfileStore is the best-effort local persistence collaborator: opaque
// blobs keyed by string. Get returns domain.ErrProfileNotFound for an absent
// key, which callers must treat as "first run".
type ProfileStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
