package controller

import (
	"context"
	"runtime"
	"time"
)

// WaitFunc blocks for d or until ctx is done, whichever comes first.
type WaitFunc func(ctx context.Context, d time.Duration) error

// Sleep is the default WaitFunc, backed by a timer.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// pollUntil spins on cond, yielding between polls, until it reports true or
// ctx is done. ctx is the only timeout hook: with a background context a
// condition that never becomes true blocks forever.
func pollUntil(ctx context.Context, cond func() bool) error {
	for !cond() {
		if err := ctx.Err(); err != nil {
			return err
		}
		runtime.Gosched()
	}
	return nil
}
