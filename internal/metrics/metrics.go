// Package metrics provides a lightweight in-process metrics manager. It
// batches counter and summary observations through a buffered channel and
// aggregates them in memory; there is no persistence layer, since the store
// backends this service uses carry no relational index to flush into.
package metrics

import (
	"context"
	"log/slog"
	"sync"
)

// Names for counters used by the application.
const (
	CounterSecretsCreated       = "secrets_created_total"
	CounterSecretsConsumed      = "secrets_consumed_total"
	CounterSecretsExpiredDelete = "secrets_expired_deleted_total"
)

// Summary names.
const (
	SummaryJanitorDeletedPerCycle = "janitor_deleted_per_cycle"
)

// Config controls logging for the Manager's background loop.
type Config struct {
	Logger *slog.Logger
}

// Manager aggregates metric events in process memory.
type Manager struct {
	cfg     Config
	events  chan event
	stop    chan struct{}
	done    chan struct{}
	started bool

	mu        sync.Mutex
	counters  map[string]int64
	summaries map[string]*summaryAgg
}

type eventKind int

const (
	eventInc eventKind = iota + 1
	eventObserve
)

type event struct {
	kind eventKind
	name string
	v    int64
}

type summaryAgg struct {
	count int64
	sum   int64
	min   int64
	max   int64
}

// New creates a Manager. Call Start to begin draining the event channel.
func New(cfg Config) *Manager {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Manager{
		cfg:       cfg,
		events:    make(chan event, 1024),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
		counters:  make(map[string]int64),
		summaries: make(map[string]*summaryAgg),
	}
}

// Start launches the background event-draining loop.
func (m *Manager) Start(ctx context.Context) {
	if m.started {
		return
	}
	m.started = true
	go m.loop(ctx)
}

// Stop signals the loop to exit and waits for it to return. Events still
// buffered in the channel at that point are not applied.
func (m *Manager) Stop() {
	if !m.started {
		return
	}
	close(m.stop)
	<-m.done
}

// Inc increments a counter by delta.
func (m *Manager) Inc(name string, delta int64) {
	select {
	case m.events <- event{kind: eventInc, name: name, v: delta}:
	default:
		// channel full; best-effort drop rather than block the caller.
	}
}

// Observe records a summary observation.
func (m *Manager) Observe(name string, value int64) {
	select {
	case m.events <- event{kind: eventObserve, name: name, v: value}:
	default:
	}
}

func (m *Manager) loop(ctx context.Context) {
	log := m.cfg.Logger.With("domain", "metrics")
	defer close(m.done)
	for {
		select {
		case <-ctx.Done():
			log.Info("metrics stop", "reason", "context_cancel")
			return
		case <-m.stop:
			log.Info("metrics stop", "reason", "stop_signal")
			return
		case ev := <-m.events:
			m.apply(ev)
		}
	}
}

func (m *Manager) apply(ev event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch ev.kind {
	case eventInc:
		m.counters[ev.name] += ev.v
	case eventObserve:
		agg := m.summaries[ev.name]
		if agg == nil {
			m.summaries[ev.name] = &summaryAgg{count: 1, sum: ev.v, min: ev.v, max: ev.v}
			return
		}
		agg.count++
		agg.sum += ev.v
		if ev.v < agg.min {
			agg.min = ev.v
		}
		if ev.v > agg.max {
			agg.max = ev.v
		}
	}
}

// Snapshot returns the current in-memory counters and summaries.
func (m *Manager) Snapshot(ctx context.Context) (counters map[string]int64, summaries map[string]summaryAgg, err error) {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()
	counters = make(map[string]int64, len(m.counters))
	for n, v := range m.counters {
		counters[n] = v
	}
	summaries = make(map[string]summaryAgg, len(m.summaries))
	for n, agg := range m.summaries {
		summaries[n] = *agg
	}
	return counters, summaries, nil
}
