package locks

import (
	"context"
	"errors"
	"time"

	"github.com/mukkoticf/twilight-investors-dashboard/internal/apperrors"

	"github.com/bsm/redislock"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const lockTTL = 30 * time.Second

// Manager hands out the per-declaration and per-investment critical
// sections. Payment generation and exit commits each run under one of
// these; holding the lock is what makes regeneration retries safe.
type Manager struct {
	locker *redislock.Client
}

func NewManager(rdb redis.UniversalClient) *Manager {
	return &Manager{locker: redislock.New(rdb)}
}

// Lock is released by the caller when the critical section ends.
type Lock struct {
	inner *redislock.Lock
}

func (l *Lock) Release(ctx context.Context) {
	if l.inner != nil {
		_ = l.inner.Release(ctx)
	}
}

// Declaration obtains the generation lock for one declaration. A second
// concurrent generation attempt gets a StateConflictError, not a wait.
func (m *Manager) Declaration(ctx context.Context, declarationID uuid.UUID) (*Lock, error) {
	return m.obtain(ctx, "lock:declaration:"+declarationID.String(), "declaration", declarationID)
}

// Investment obtains the exit-commit lock for one investment.
func (m *Manager) Investment(ctx context.Context, investmentID uuid.UUID) (*Lock, error) {
	return m.obtain(ctx, "lock:investment:"+investmentID.String(), "investment", investmentID)
}

func (m *Manager) obtain(ctx context.Context, key, entity string, id uuid.UUID) (*Lock, error) {
	lock, err := m.locker.Obtain(ctx, key, lockTTL, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, apperrors.Conflict(entity, id.String())
	}
	if err != nil {
		return nil, apperrors.Storage("obtain "+entity+" lock", err)
	}
	return &Lock{inner: lock}, nil
}
