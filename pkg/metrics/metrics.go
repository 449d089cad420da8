package metrics

import (
	"sync/atomic"
	"time"
)

// Metrics holds counters for the game loop and its sessions.
// All methods are safe for concurrent use and on a nil receiver.
type Metrics struct {
	ticks             atomic.Int64
	tickNanos         atomic.Int64
	maxTickNanos      atomic.Int64
	broadcasts        atomic.Int64
	pushFailures      atomic.Int64
	encodeFailures    atomic.Int64
	commandsApplied   atomic.Int64
	commandsDiscarded atomic.Int64
	connects          atomic.Int64
	disconnects       atomic.Int64
}

func New() *Metrics {
	return &Metrics{}
}

// ObserveTick records a completed tick and its duration.
func (m *Metrics) ObserveTick(d time.Duration) {
	if m == nil {
		return
	}
	m.ticks.Add(1)
	m.tickNanos.Add(int64(d))
	for {
		cur := m.maxTickNanos.Load()
		if int64(d) <= cur || m.maxTickNanos.CompareAndSwap(cur, int64(d)) {
			return
		}
	}
}

func (m *Metrics) IncBroadcast() {
	if m == nil {
		return
	}
	m.broadcasts.Add(1)
}

func (m *Metrics) IncPushFailure() {
	if m == nil {
		return
	}
	m.pushFailures.Add(1)
}

func (m *Metrics) IncEncodeFailure() {
	if m == nil {
		return
	}
	m.encodeFailures.Add(1)
}

func (m *Metrics) IncCommandApplied() {
	if m == nil {
		return
	}
	m.commandsApplied.Add(1)
}

func (m *Metrics) IncCommandDiscarded() {
	if m == nil {
		return
	}
	m.commandsDiscarded.Add(1)
}

func (m *Metrics) IncConnect() {
	if m == nil {
		return
	}
	m.connects.Add(1)
}

func (m *Metrics) IncDisconnect() {
	if m == nil {
		return
	}
	m.disconnects.Add(1)
}

// Ticks returns the number of completed ticks.
func (m *Metrics) Ticks() int64 {
	if m == nil {
		return 0
	}
	return m.ticks.Load()
}

// Snapshot returns the current counter values keyed by name.
func (m *Metrics) Snapshot() map[string]int64 {
	if m == nil {
		return map[string]int64{}
	}
	ticks := m.ticks.Load()
	var avg int64
	if ticks > 0 {
		avg = m.tickNanos.Load() / ticks
	}
	connects := m.connects.Load()
	disconnects := m.disconnects.Load()
	return map[string]int64{
		"ticks":              ticks,
		"tick_avg_us":        avg / int64(time.Microsecond),
		"tick_max_us":        m.maxTickNanos.Load() / int64(time.Microsecond),
		"broadcasts":         m.broadcasts.Load(),
		"push_failures":      m.pushFailures.Load(),
		"encode_failures":    m.encodeFailures.Load(),
		"commands_applied":   m.commandsApplied.Load(),
		"commands_discarded": m.commandsDiscarded.Load(),
		"connects":           connects,
		"disconnects":        disconnects,
		"sessions":           connects - disconnects,
	}
}
