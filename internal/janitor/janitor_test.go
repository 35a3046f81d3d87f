package janitor

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"
)

type fakeStore struct {
	mu          sync.Mutex
	refreshErr  error
	callsRefres int
}

func (fs *fakeStore) Refresh(now time.Time) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.callsRefres++
	return fs.refreshErr
}

func TestJanitorCycleSuccess(t *testing.T) {
	fs := &fakeStore{}
	j := New(fs, Config{Interval: time.Hour, Logger: slog.Default()})
	j.runCycle(context.Background())
	mv := j.MetricsSnapshot()
	if mv.Cycles != 1 {
		t.Fatalf("unexpected metrics %+v", mv)
	}
	if fs.callsRefres != 1 {
		t.Fatalf("expected one refresh call, got %d", fs.callsRefres)
	}
}

func TestJanitorCycleRefreshError(t *testing.T) {
	fs := &fakeStore{refreshErr: errors.New("boom")}
	j := New(fs, Config{Interval: time.Hour, Logger: slog.Default()})
	j.runCycle(context.Background())
	mv := j.MetricsSnapshot()
	if mv.Cycles != 1 {
		t.Fatalf("metrics after error %+v", mv)
	}
	if fs.callsRefres != 1 {
		t.Fatalf("expected refresh to be called despite error")
	}
}

func TestStartStopLoop(t *testing.T) {
	fs := &fakeStore{}
	j := New(fs, Config{Interval: 5 * time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	j.Start(ctx)
	time.Sleep(15 * time.Millisecond)
	j.Stop()
	cancel()
	mv := j.MetricsSnapshot()
	if mv.Cycles == 0 {
		t.Fatalf("expected at least one cycle")
	}
}

func TestNewDefaults(t *testing.T) {
	fs := &fakeStore{}
	j := New(fs, Config{})
	if j.cfg.Interval <= 0 || j.cfg.Logger == nil {
		t.Fatalf("defaults not applied %+v", j.cfg)
	}
}

func TestStartAlreadyStarted(t *testing.T) {
	fs := &fakeStore{}
	j := New(fs, Config{Interval: 5 * time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	j.Start(ctx)
	tkr := j.ticker
	j.Start(ctx)
	if j.ticker != tkr {
		t.Fatalf("ticker replaced unexpectedly")
	}
	j.Stop()
}
