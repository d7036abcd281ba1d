package sweeper

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeMarker struct {
	calls int32
	err   error
}

func (f *fakeMarker) MarkOverstays(_ context.Context) (int, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.err != nil {
		return 0, f.err
	}
	return 2, nil
}

func (f *fakeMarker) count() int32 {
	return atomic.LoadInt32(&f.calls)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestSweeper_TicksPeriodically(t *testing.T) {
	marker := &fakeMarker{}
	s := New(marker, 10*time.Millisecond, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return marker.count() >= 3
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestSweeper_StopsOnContextCancel(t *testing.T) {
	marker := &fakeMarker{}
	s := New(marker, time.Hour, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after context cancel")
	}
	assert.Zero(t, marker.count())
}

// Ошибка на одном запуске не останавливает цикл
func TestSweeper_ContinuesAfterError(t *testing.T) {
	marker := &fakeMarker{err: errors.New("db is down")}
	s := New(marker, 10*time.Millisecond, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return marker.count() >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestSweeper_TickMarksOverstays(t *testing.T) {
	marker := &fakeMarker{}
	s := New(marker, time.Hour, nopLogger{})

	s.tick(context.Background())
	assert.Equal(t, int32(1), marker.count())
}
