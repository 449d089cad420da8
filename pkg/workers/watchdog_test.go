package workers

import (
	"context"
	"testing"
	"time"

	"github.com/cbodonnell/ghist/pkg/metrics"
	"github.com/stretchr/testify/assert"
)

type fakeTicks struct {
	n int64
}

func (f *fakeTicks) Ticks() int64 {
	return f.n
}

func TestTickWatchdogWorker_check(t *testing.T) {
	ticks := &fakeTicks{}
	w := NewTickWatchdogWorker(NewTickWatchdogWorkerOptions{
		Ticks:    ticks,
		Metrics:  metrics.New(),
		Interval: time.Second,
	})

	tests := []struct {
		name        string
		ticks       int64
		want        bool
		wantStalled bool
	}{
		{name: "progress", ticks: 10, want: true, wantStalled: false},
		{name: "stall", ticks: 10, want: false, wantStalled: true},
		{name: "still stalled", ticks: 10, want: false, wantStalled: true},
		{name: "recovered", ticks: 11, want: true, wantStalled: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticks.n = tt.ticks
			assert.Equal(t, tt.want, w.check())
			assert.Equal(t, tt.wantStalled, w.stalled)
		})
	}
}

func TestTickWatchdogWorker_Start(t *testing.T) {
	m := metrics.New()
	w := NewTickWatchdogWorker(NewTickWatchdogWorkerOptions{
		Ticks:    m,
		Metrics:  m,
		Interval: time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	time.Sleep(5 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watchdog did not stop")
	}
}
