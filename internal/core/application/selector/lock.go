package selector

import (
	"context"
	"fmt"
	"time"

	"github.com/tdex-network/account-selector/internal/core/ports"
	"golang.org/x/sync/semaphore"
)

const (
	lockUpdateSelectedAccount   = "updateSelectedAccount"
	lockReloadActiveAccountInfo = "reloadActiveAccountInfo"
	lockSyncHomeAndSwap         = "syncHomeAndSwap"
	lockSyncLocalDeriveType     = "syncLocalDeriveType"
	lockSaveToStorage           = "saveToStorage"
	lockAutoSelectNextAccount   = "autoSelectNextAccount"
)

// namedLock queues closures in submission order and runs them one at a time.
type namedLock struct {
	name    string
	sem     *semaphore.Weighted
	metrics ports.SelectorMetrics
}

func newNamedLock(name string, metrics ports.SelectorMetrics) *namedLock {
	return &namedLock{name, semaphore.NewWeighted(1), metrics}
}

// run waits for its turn and executes fn. Only the wait honours ctx: once fn
// started it receives a context that is never cancelled and runs to the end.
func (l *namedLock) run(
	ctx context.Context, fn func(ctx context.Context) error,
) error {
	start := time.Now()
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("acquiring %s lock: %w", l.name, err)
	}
	defer l.sem.Release(1)

	l.metrics.ObserveLockWait(l.name, time.Since(start))
	return fn(context.WithoutCancel(ctx))
}

// waitForUnlock returns once every closure queued before the call is done.
func (l *namedLock) waitForUnlock(ctx context.Context) error {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("waiting for %s lock: %w", l.name, err)
	}
	l.sem.Release(1)
	return nil
}

type locks struct {
	updateSelectedAccount   *namedLock
	reloadActiveAccountInfo *namedLock
	syncHomeAndSwap         *namedLock
	syncLocalDeriveType     *namedLock
	saveToStorage           *namedLock
	autoSelectNextAccount   *namedLock
}

func newLocks(metrics ports.SelectorMetrics) locks {
	return locks{
		updateSelectedAccount:   newNamedLock(lockUpdateSelectedAccount, metrics),
		reloadActiveAccountInfo: newNamedLock(lockReloadActiveAccountInfo, metrics),
		syncHomeAndSwap:         newNamedLock(lockSyncHomeAndSwap, metrics),
		syncLocalDeriveType:     newNamedLock(lockSyncLocalDeriveType, metrics),
		saveToStorage:           newNamedLock(lockSaveToStorage, metrics),
		autoSelectNextAccount:   newNamedLock(lockAutoSelectNextAccount, metrics),
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
