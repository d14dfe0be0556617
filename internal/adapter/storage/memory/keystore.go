package memory

import (
	"context"
	"sync"
	"time"

	"github.com/MikeRez0/inarashop/internal/core/domain"
	"github.com/MikeRez0/inarashop/internal/core/port"
)

var _ port.CheckoutKeyStore = (*KeyStore)(nil)

// keyEntry never expires when expiresAt is zero.
type keyEntry struct {
	result    *domain.CheckoutResult
	expiresAt time.Time
}

func (s *KeyStore) entry(ttl time.Duration, result *domain.CheckoutResult) keyEntry {
	e := keyEntry{result: result}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	return e
}

// KeyStore is a single-process checkout idempotency store.
type KeyStore struct {
	mu   sync.Mutex
	keys map[string]keyEntry
	ttl  time.Duration
	now  func() time.Time
}

func NewKeyStore(ttl time.Duration) *KeyStore {
	return &KeyStore{
		keys: make(map[string]keyEntry),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (s *KeyStore) Reserve(ctx context.Context, key string, hold time.Duration) (bool, *domain.CheckoutResult, error) {
	if err := ctx.Err(); err != nil {
		return false, nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.keys[key]; ok && (e.expiresAt.IsZero() || s.now().Before(e.expiresAt)) {
		return false, e.result, nil
	}
	s.keys[key] = s.entry(hold, nil)
	return true, nil, nil
}

func (s *KeyStore) Complete(ctx context.Context, key string, result *domain.CheckoutResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.keys[key] = s.entry(s.ttl, result)
	return nil
}

func (s *KeyStore) Release(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.keys, key)
	return nil
}
