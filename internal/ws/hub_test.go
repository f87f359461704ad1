package ws

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushToUserReachesEveryDevice(t *testing.T) {
	hub := NewHub()
	s1 := hub.Attach(7)
	s2 := hub.Attach(7)
	other := hub.Attach(8)
	defer s1.Close()
	defer s2.Close()
	defer other.Close()

	hub.PushToUser(7, map[string]string{"type": "ledger"})

	assert.Len(t, s1.Out(), 1)
	assert.Len(t, s2.Out(), 1)
	assert.Len(t, other.Out(), 0)
}

func TestStreamPushStaysOnOneDevice(t *testing.T) {
	hub := NewHub()
	fresh := hub.Attach(7)
	existing := hub.Attach(7)
	defer fresh.Close()
	defer existing.Close()

	// Reconnect snapshot: the already-connected device must not see it.
	fresh.Push(map[string]string{"type": "snapshot"})

	assert.Len(t, fresh.Out(), 1)
	assert.Len(t, existing.Out(), 0)
}

func TestCloseDetachesAndIsIdempotent(t *testing.T) {
	hub := NewHub()
	s := hub.Attach(7)
	require.Equal(t, 1, hub.StreamCount())

	s.Close()
	s.Close()
	assert.Equal(t, 0, hub.StreamCount())

	// Deliveries after close are dropped, not sent on the closed channel.
	hub.PushToUser(7, map[string]string{"type": "ledger"})
	s.deliver([]byte(`{}`))
	_, open := <-s.Out()
	assert.False(t, open)
}

// A device disconnecting while a committed mutation is being pushed
// must never panic the pushing goroutine.
func TestCloseDuringFanOut(t *testing.T) {
	hub := NewHub()
	streams := make([]*Stream, 0, 50)
	for i := 0; i < 50; i++ {
		streams = append(streams, hub.Attach(7))
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			hub.PushToUser(7, map[string]string{"type": "ledger"})
			hub.PushAll(map[string]string{"type": "broadcast"})
		}
	}()
	go func() {
		defer wg.Done()
		for _, s := range streams {
			s.Close()
		}
	}()
	wg.Wait()

	assert.Equal(t, 0, hub.StreamCount())
}
