// Package reactive re-runs a query after every committed store write that
// touches its dependent tables and delivers the latest result to a single
// consumer. Delivery is at-least-once per affected commit: intermediate
// results may be coalesced, the newest one always arrives.
package reactive

import (
	"context"
	"log/slog"
	"sync"

	"github.com/liftlog/liftlog/internal/storage"
)

// Query produces the current result set for a subscription.
type Query[T any] func(ctx context.Context) (T, error)

// Subscription tracks one query. Read results from Updates; call Close to
// detach from the store.
type Subscription[T any] struct {
	updates chan T
	cancel  func()
	mu      sync.Mutex
	closed  bool
	done    chan struct{}
}

// Subscribe runs query once for the initial result, then re-runs it after
// each commit touching any of tables. A query failure after a commit is
// logged and the previous result stands.
func Subscribe[T any](ctx context.Context, db *storage.DB, log *slog.Logger, tables []string, query Query[T]) (*Subscription[T], error) {
	initial, err := query(ctx)
	if err != nil {
		return nil, err
	}

	signal, cancel := db.Notifier().Subscribe(tables...)
	s := &Subscription[T]{
		updates: make(chan T, 1),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	s.push(initial)

	go func() {
		defer close(s.done)
		for {
			select {
			case <-ctx.Done():
				s.Close()
				return
			case _, ok := <-signal:
				if !ok {
					return
				}
				v, err := query(ctx)
				if err != nil {
					if ctx.Err() == nil {
						log.Warn("subscription query failed", "error", err)
					}
					continue
				}
				s.push(v)
			}
		}
	}()
	return s, nil
}

// Updates yields the latest result after each affected commit. The channel
// is not closed by Close; consumers should select on their own done signal.
func (s *Subscription[T]) Updates() <-chan T {
	return s.updates
}

// Close detaches the subscription from the store. Safe to call twice.
func (s *Subscription[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.cancel()
}

// push replaces any undelivered value with the newer one.
func (s *Subscription[T]) push(v T) {
	for {
		select {
		case s.updates <- v:
			return
		default:
			select {
			case <-s.updates:
			default:
			}
		}
	}
}
