// Package connectivity tracks whether the backend is reachable and notifies
// subscribers on every offline/online transition.
package connectivity

import (
	"context"
	"sync"
	"time"
)

// Probe is anything that can answer a liveness check against the backend.
// The API client satisfies it.
type Probe interface {
	Ping(ctx context.Context) error
}

// Event describes a single connectivity transition.
type Event struct {
	Online bool
	At     time.Time
}

// Monitor polls the probe and exposes the current state plus edge-triggered
// change events. Each subscriber sees at most one event per transition:
// repeated ticks in the same state emit nothing.
type Monitor struct {
	probe    Probe
	interval time.Duration
	timeout  time.Duration

	mu     sync.Mutex
	online bool
	subs   []chan Event
}

const defaultProbeTimeout = 3 * time.Second

func NewMonitor(probe Probe, interval time.Duration) *Monitor {
	return &Monitor{probe: probe, interval: interval, timeout: defaultProbeTimeout}
}

// Online reports the last observed state. The initial state is offline
// until the first successful probe.
func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// Subscribe registers a new listener. The channel receives one Event per
// transition; the buffer absorbs bursts while the listener is busy syncing,
// and on overflow the oldest events are discarded first.
func (m *Monitor) Subscribe() <-chan Event {
	ch := make(chan Event, 16)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, ch)
	return ch
}

// Set records an observed state. Only a change of state produces events,
// so a flapping probe cannot deliver duplicates for the same edge.
func (m *Monitor) Set(online bool) {
	m.mu.Lock()
	if m.online == online {
		m.mu.Unlock()
		return
	}
	m.online = online
	ev := Event{Online: online, At: time.Now()}
	subs := make([]chan Event, len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, ch := range subs {
		for {
			select {
			case ch <- ev:
			default:
				// full buffer: evict the oldest event and retry, so a slow
				// subscriber loses stale history but never the newest edge
				select {
				case <-ch:
				default:
				}
				continue
			}
			break
		}
	}
}

// Run polls the probe until ctx is cancelled. Each probe gets its own
// timeout so a hung request cannot stall the loop.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(context.Background(), m.timeout)
			err := m.probe.Ping(probeCtx)
			cancel()
			m.Set(err == nil)

		case <-ctx.Done():
			return
		}
	}
}
