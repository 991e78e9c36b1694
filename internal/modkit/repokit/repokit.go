// Package repokit holds the seams service repos are written against
package repokit

import (
	"context"
	"fmt"
	"time"

	perr "minutes/internal/platform/errors"
	"minutes/internal/platform/store"
)

type (
	Queryer    = store.RowQuerier
	TxRunner   = store.TxRunner
	Rows       = store.Rows
	Row        = store.Row
	CommandTag = store.CommandTag
)

// Binder builds a repo over a Queryer, which may be a pool or an open tx
type Binder[T any] interface {
	Bind(Queryer) T
}

// WithTx runs fn in one transaction on tx
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	return tx.Tx(ctx, fn)
}

// MustGuard panics when the store's dependency guard fails
func MustGuard(ctx context.Context, st interface{ Guard(context.Context) error }) {
	if err := st.Guard(ctx); err != nil {
		panic(fmt.Errorf("dependency guard failed: %w", err))
	}
}

// BeginHook runs first inside every tx of a hooked runner
type BeginHook func(ctx context.Context, q Queryer) error

// WithBeginHooks returns a runner whose transactions run hooks before fn
func WithBeginHooks(inner TxRunner, hooks ...BeginHook) TxRunner {
	return hooked{TxRunner: inner, hooks: hooks}
}

type hooked struct {
	TxRunner
	hooks []BeginHook
}

func (h hooked) Tx(ctx context.Context, fn func(q Queryer) error) error {
	return h.TxRunner.Tx(ctx, func(q Queryer) error {
		for _, hook := range h.hooks {
			if err := hook(ctx, q); err != nil {
				return err
			}
		}
		return fn(q)
	})
}

// WithRetry reruns a whole transaction when it fails on lock contention
// attempts counts the first try; the wait grows linearly from backoff
func WithRetry(inner TxRunner, attempts int, backoff time.Duration) TxRunner {
	return retrying{TxRunner: inner, attempts: max(attempts, 1), backoff: backoff}
}

type retrying struct {
	TxRunner
	attempts int
	backoff  time.Duration
}

func (r retrying) Tx(ctx context.Context, fn func(q Queryer) error) error {
	var err error
	for i := 1; i <= r.attempts; i++ {
		if err = r.TxRunner.Tx(ctx, fn); err == nil || !perr.IsRetryable(err) {
			return err
		}
		if i == r.attempts {
			break
		}
		t := time.NewTimer(time.Duration(i) * r.backoff)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
	return err
}
