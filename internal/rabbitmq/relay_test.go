package rabbitmq

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu      sync.Mutex
	watches int
	// signals число notify за один вызов Watch; failFirst обрывает первый вызов.
	signals   int
	failFirst bool
}

func (f *fakeSource) Watch(ctx context.Context, ready func(), notify func()) error {
	f.mu.Lock()
	f.watches++
	n := f.watches
	f.mu.Unlock()

	if f.failFirst && n == 1 {
		return errors.New("connection reset")
	}
	ready()
	for i := 0; i < f.signals; i++ {
		notify()
	}
	<-ctx.Done()
	return ctx.Err()
}

func (f *fakeSource) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.watches
}

type fakeChangePublisher struct {
	published atomic.Int32
	err       error
}

func (p *fakeChangePublisher) PublishChanged() error {
	p.published.Add(1)
	return p.err
}

func TestRelay(t *testing.T) {
	tests := []struct {
		name          string
		source        *fakeSource
		publishErr    error
		wantPublished int32
		wantWatches   int
	}{
		{
			name:          "каждый сигнал публикуется",
			source:        &fakeSource{signals: 3},
			wantPublished: 3,
			wantWatches:   1,
		},
		{
			name:          "ошибка публикации не останавливает пересылку",
			source:        &fakeSource{signals: 2},
			publishErr:    errors.New("channel closed"),
			wantPublished: 2,
			wantWatches:   1,
		},
		{
			name:          "обрыв источника приводит к переподключению",
			source:        &fakeSource{signals: 1, failFirst: true},
			wantPublished: 1,
			wantWatches:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			pub := &fakeChangePublisher{err: tt.publishErr}

			done := make(chan error, 1)
			go func() {
				done <- Relay(ctx, tt.source, pub, 10*time.Millisecond, newNoopLogger())
			}()

			require.Eventually(t, func() bool {
				return pub.published.Load() == tt.wantPublished && tt.source.count() == tt.wantWatches
			}, 2*time.Second, 5*time.Millisecond)

			cancel()
			select {
			case err := <-done:
				assert.ErrorIs(t, err, context.Canceled)
			case <-time.After(2 * time.Second):
				t.Fatal("Relay did not return after cancel")
			}
		})
	}
}
