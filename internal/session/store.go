package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spamms1985-sudo/gpa-lernapp/internal/cache"
)

// ErrNotFound is returned when a session id is unknown or expired.
var ErrNotFound = errors.New("session not found")

// Sessions expire after two hours of inactivity; abandoning the UI is the
// only cancellation path, so stale handles just age out.
const sessionTTL = 2 * time.Hour

// Store persists session handles between requests.
type Store interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

type cacheStore struct {
	cache cache.CacheService
}

// NewStore builds a session store on top of the cache service (Redis in
// production, in-memory in tests).
func NewStore(c cache.CacheService) Store {
	return &cacheStore{cache: c}
}

func (s *cacheStore) Save(ctx context.Context, sess *Session) error {
	return s.cache.Set(ctx, storeKey(sess.ID), sess, sessionTTL)
}

func (s *cacheStore) Get(ctx context.Context, id string) (*Session, error) {
	var sess Session
	err := s.cache.Get(ctx, storeKey(id), &sess)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *cacheStore) Delete(ctx context.Context, id string) error {
	return s.cache.Delete(ctx, storeKey(id))
}

func storeKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}
