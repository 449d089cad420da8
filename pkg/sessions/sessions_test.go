package sessions

import (
	"fmt"
	"sync"
	"testing"

	mocks "github.com/cbodonnell/ghist/mocks/github.com/cbodonnell/ghist/pkg/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUniqueIDs(t *testing.T) {
	r := NewRegistry()
	seen := make(map[uint32]struct{})
	for i := 0; i < 1000; i++ {
		id := r.Register(mocks.NewPusher(t))
		require.NotZero(t, id)
		_, dup := seen[id]
		require.False(t, dup, fmt.Sprintf("duplicate id %d", id))
		seen[id] = struct{}{}
	}
	assert.Equal(t, 1000, r.Count())
}

func TestRegisterSkipsZeroAndLiveIDs(t *testing.T) {
	r := NewRegistry()
	draws := []uint32{0, 5, 5, 0, 9}
	r.nextID = func() uint32 {
		id := draws[0]
		draws = draws[1:]
		return id
	}

	assert.Equal(t, uint32(5), r.Register(mocks.NewPusher(t)))
	assert.Equal(t, uint32(9), r.Register(mocks.NewPusher(t)))
	assert.Empty(t, draws)
}

func TestUnregister(t *testing.T) {
	tests := []struct {
		name  string
		setup func(r *Registry) uint32
		want  bool
	}{
		{
			name: "registered",
			setup: func(r *Registry) uint32 {
				return r.Register(mocks.NewPusher(t))
			},
			want: true,
		},
		{
			name: "unknown",
			setup: func(r *Registry) uint32 {
				return 12345
			},
			want: false,
		},
		{
			name: "twice",
			setup: func(r *Registry) uint32 {
				id := r.Register(mocks.NewPusher(t))
				r.Unregister(id)
				return id
			},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			id := tt.setup(r)
			assert.Equal(t, tt.want, r.Unregister(id))
			assert.False(t, r.Exists(id))
		})
	}
}

func TestGetSessions(t *testing.T) {
	r := NewRegistry()
	p1 := mocks.NewPusher(t)
	p2 := mocks.NewPusher(t)
	id1 := r.Register(p1)
	id2 := r.Register(p2)

	got := r.GetSessions()
	require.Len(t, got, 2)
	byID := map[uint32]Pusher{}
	for _, s := range got {
		byID[s.ID] = s.Pusher
	}
	assert.Same(t, p1, byID[id1])
	assert.Same(t, p2, byID[id2])

	// the returned slice is detached from the registry
	r.Unregister(id1)
	assert.Len(t, got, 2)
	assert.Equal(t, 1, r.Count())
}

func TestRegistryConcurrentUse(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	ids := make(chan uint32, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- r.Register(mocks.NewPusher(t))
		}()
	}
	wg.Wait()
	close(ids)

	for id := range ids {
		assert.True(t, r.Unregister(id))
	}
	assert.Zero(t, r.Count())
}
