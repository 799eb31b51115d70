// Package watch replaces ad-hoc change callbacks with an explicit
// subscription interface: subscribe to a collection and receive a full
// snapshot of its current contents on every change, with cancellation tied
// to the consuming scope's context.
package watch

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Notifier carries dirty signals for named collections. Production uses
// Redis pub/sub; tests use an in-process channel fake.
type Notifier interface {
	Notify(ctx context.Context, collection string) error
	Listen(ctx context.Context, collection string) (<-chan struct{}, error)
}

// Loader re-reads the full matching set for a collection.
type Loader func(ctx context.Context) (any, error)

// Subscription owns a channel of full snapshots. The channel closes when the
// subscription is cancelled or its parent context ends.
type Subscription struct {
	C      <-chan any
	cancel context.CancelFunc
}

func (s *Subscription) Cancel() { s.cancel() }

// Broker fans dirty signals out into snapshot deliveries. Bursts of writes
// are coalesced within the debounce window so subscribers see one reload.
type Broker struct {
	notifier Notifier
	debounce time.Duration
}

func NewBroker(n Notifier) *Broker {
	return &Broker{notifier: n, debounce: 200 * time.Millisecond}
}

// Publish signals that a collection changed. Best effort: a lost signal only
// delays the next snapshot until the following change.
func (b *Broker) Publish(ctx context.Context, collection string) {
	if err := b.notifier.Notify(ctx, collection); err != nil {
		log.Warn().Str("collection", collection).Err(err).Msg("watch: notify failed")
	}
}

// Subscribe delivers an initial snapshot immediately, then a fresh snapshot
// after every change signal. A slow consumer only ever sees the latest
// snapshot; intermediate ones are replaced, never queued.
func (b *Broker) Subscribe(ctx context.Context, collection string, load Loader) (*Subscription, error) {
	ctx, cancel := context.WithCancel(ctx)
	signals, err := b.notifier.Listen(ctx, collection)
	if err != nil {
		cancel()
		return nil, err
	}

	out := make(chan any, 1)
	go func() {
		defer close(out)
		b.deliver(ctx, collection, load, out)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-signals:
				if !ok {
					return
				}
				if !b.drain(ctx, signals) {
					return
				}
				b.deliver(ctx, collection, load, out)
			}
		}
	}()

	return &Subscription{C: out, cancel: cancel}, nil
}

// drain coalesces further signals arriving within the debounce window.
// Returns false when the context ended.
func (b *Broker) drain(ctx context.Context, signals <-chan struct{}) bool {
	t := time.NewTimer(b.debounce)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return false
		case <-signals:
		case <-t.C:
			return true
		}
	}
}

func (b *Broker) deliver(ctx context.Context, collection string, load Loader, out chan any) {
	snap, err := load(ctx)
	if err != nil {
		log.Warn().Str("collection", collection).Err(err).Msg("watch: snapshot load failed")
		return
	}
	select {
	case out <- snap:
	default:
		// Replace the pending snapshot with the newer one.
		select {
		case <-out:
		default:
		}
		select {
		case out <- snap:
		default:
		}
	}
}
