package watch

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeNotifier wires Notify straight into Listen channels, in process.
type fakeNotifier struct {
	ch chan struct{}
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{ch: make(chan struct{}, 16)}
}

func (f *fakeNotifier) Notify(_ context.Context, _ string) error {
	f.ch <- struct{}{}
	return nil
}

func (f *fakeNotifier) Listen(ctx context.Context, _ string) (<-chan struct{}, error) {
	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case <-f.ch:
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()
	return out, nil
}

func recvSnapshot(t *testing.T, c <-chan any) any {
	t.Helper()
	select {
	case snap, ok := <-c:
		require.True(t, ok, "subscription channel closed unexpectedly")
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return nil
	}
}

func newFastBroker(n Notifier) *Broker {
	b := NewBroker(n)
	b.debounce = 10 * time.Millisecond
	return b
}

func TestSubscribeDeliversInitialSnapshot(t *testing.T) {
	b := newFastBroker(newFakeNotifier())

	var loads atomic.Int32
	sub, err := b.Subscribe(context.Background(), "sales", func(context.Context) (any, error) {
		return int(loads.Add(1)), nil
	})
	require.NoError(t, err)
	defer sub.Cancel()

	assert.Equal(t, 1, recvSnapshot(t, sub.C))
}

func TestPublishTriggersReload(t *testing.T) {
	n := newFakeNotifier()
	b := newFastBroker(n)

	var loads atomic.Int32
	sub, err := b.Subscribe(context.Background(), "sales", func(context.Context) (any, error) {
		return int(loads.Add(1)), nil
	})
	require.NoError(t, err)
	defer sub.Cancel()

	assert.Equal(t, 1, recvSnapshot(t, sub.C))

	b.Publish(context.Background(), "sales")
	assert.Equal(t, 2, recvSnapshot(t, sub.C))
}

func TestSlowConsumerSeesOnlyLatestSnapshot(t *testing.T) {
	n := newFakeNotifier()
	b := newFastBroker(n)

	var loads atomic.Int32
	sub, err := b.Subscribe(context.Background(), "sales", func(context.Context) (any, error) {
		return int(loads.Add(1)), nil
	})
	require.NoError(t, err)
	defer sub.Cancel()

	// Do not read yet: trigger several reloads while the consumer is away.
	for i := 0; i < 3; i++ {
		b.Publish(context.Background(), "sales")
		time.Sleep(50 * time.Millisecond)
	}

	// The first read observes the newest snapshot, not a backlog of stale ones.
	latest := recvSnapshot(t, sub.C).(int)
	assert.Equal(t, int(loads.Load()), latest)
}

func TestCancelClosesChannel(t *testing.T) {
	b := newFastBroker(newFakeNotifier())

	sub, err := b.Subscribe(context.Background(), "sales", func(context.Context) (any, error) {
		return "snap", nil
	})
	require.NoError(t, err)
	recvSnapshot(t, sub.C)

	sub.Cancel()
	select {
	case _, ok := <-sub.C:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestParentContextCancellationClosesChannel(t *testing.T) {
	b := newFastBroker(newFakeNotifier())
	ctx, cancel := context.WithCancel(context.Background())

	sub, err := b.Subscribe(ctx, "sales", func(context.Context) (any, error) {
		return "snap", nil
	})
	require.NoError(t, err)
	recvSnapshot(t, sub.C)

	cancel()
	select {
	case _, ok := <-sub.C:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after context cancellation")
	}
}
