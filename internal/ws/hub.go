package ws

import (
	"encoding/json"
	"sync"
)

// Stream is one live subscription feed, one per connected device. An
// identity may hold several streams at once; every committed mutation
// is delivered to all of them.
type Stream struct {
	UserID uint

	mu     sync.Mutex
	out    chan []byte
	closed bool
	hub    *Hub
}

// Out is the frame source for the connection's write pump. It is
// closed exactly once, by Close.
func (s *Stream) Out() <-chan []byte { return s.out }

// Push delivers a payload to this stream only. Used for the initial
// snapshot, so a reconnecting device does not replay state onto the
// identity's other devices.
func (s *Stream) Push(payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	s.deliver(data)
}

// deliver hands a frame to the stream without blocking; a stream that
// has fallen behind drops the frame and catches up on the next push.
// The closed check shares s.mu with Close, so a device disconnecting
// mid-push can never turn a committed mutation into a send on a
// closed channel.
func (s *Stream) deliver(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.out <- data:
	default:
	}
}

// Close detaches the stream from the hub and closes its channel. Safe
// to call more than once and concurrently with deliveries.
func (s *Stream) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.out)
	s.mu.Unlock()
	s.hub.detach(s)
}

// Hub tracks the live subscription streams grouped by identity.
type Hub struct {
	mu     sync.RWMutex
	byUser map[uint]map[*Stream]struct{}
}

func NewHub() *Hub {
	return &Hub{byUser: make(map[uint]map[*Stream]struct{})}
}

// Attach opens a new stream for the identity and registers it for
// fan-out. The caller owns the stream's lifecycle and must Close it
// when the connection goes away.
func (h *Hub) Attach(userID uint) *Stream {
	s := &Stream{
		UserID: userID,
		out:    make(chan []byte, 256),
		hub:    h,
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.byUser[userID] == nil {
		h.byUser[userID] = make(map[*Stream]struct{})
	}
	h.byUser[userID][s] = struct{}{}
	return s
}

func (h *Hub) detach(s *Stream) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if m := h.byUser[s.UserID]; m != nil {
		delete(m, s)
		if len(m) == 0 {
			delete(h.byUser, s.UserID)
		}
	}
}

// PushToUser fans a payload out to every stream the identity holds.
func (h *Hub) PushToUser(userID uint, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	for _, s := range h.streamsFor(userID) {
		s.deliver(data)
	}
}

// PushAll fans a payload out to every connected stream.
func (h *Hub) PushAll(payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	h.mu.RLock()
	streams := make([]*Stream, 0, len(h.byUser))
	for _, m := range h.byUser {
		for s := range m {
			streams = append(streams, s)
		}
	}
	h.mu.RUnlock()
	for _, s := range streams {
		s.deliver(data)
	}
}

func (h *Hub) streamsFor(userID uint) []*Stream {
	h.mu.RLock()
	defer h.mu.RUnlock()
	m := h.byUser[userID]
	if len(m) == 0 {
		return nil
	}
	streams := make([]*Stream, 0, len(m))
	for s := range m {
		streams = append(streams, s)
	}
	return streams
}

// StreamCount reports the number of live streams across all identities.
func (h *Hub) StreamCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, m := range h.byUser {
		n += len(m)
	}
	return n
}
