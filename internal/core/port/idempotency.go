package port

import (
	"context"
	"time"

	"github.com/MikeRez0/inarashop/internal/core/domain"
)

//go:generate mockgen -source=idempotency.go -destination=mock/idempotency.go -package=mock
type CheckoutKeyStore interface {
	// Reserve claims key for a new checkout for at most hold. When the key is
	// taken it returns false and the stored result, which is nil while the
	// first request runs.
	Reserve(ctx context.Context, key string, hold time.Duration) (bool, *domain.CheckoutResult, error)
	// Complete stores the result for the full retention period.
	Complete(ctx context.Context, key string, result *domain.CheckoutResult) error
	Release(ctx context.Context, key string) error
}
