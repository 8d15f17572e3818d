package cache

import (
	"context"
	"errors"

	"github.com/fjod/go_storefront/internal/session"
)

// SessionCache stores visitor sessions for the length of their TTL. Nothing
// outlives the TTL.
type SessionCache interface {
	Get(ctx context.Context, id string) (*session.Session, error)
	Set(ctx context.Context, s *session.Session) error
	Delete(ctx context.Context, id string) error
}

var ErrCacheMiss = errors.New("cache miss")
