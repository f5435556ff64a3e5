// Package session holds the single authoritative auth status per user and
// lets readers subscribe to its changes.
package session

import (
	"context"
	"sync"

	"ayurdiet-backend/internal/navigation"
)

// Source owns one auth status. Only the auth boundary publishes; everybody
// else reads or subscribes.
type Source struct {
	mu     sync.Mutex
	status navigation.AuthStatus
	subs   map[chan navigation.AuthStatus]struct{}
}

func NewSource(initial navigation.AuthStatus) *Source {
	return &Source{
		status: initial,
		subs:   make(map[chan navigation.AuthStatus]struct{}),
	}
}

// Current returns the latest published status.
func (s *Source) Current() navigation.AuthStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Publish stores a new status and notifies subscribers. It returns false when
// the status did not change. Slow subscribers only ever see the latest value.
func (s *Source) Publish(status navigation.AuthStatus) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == status {
		return false
	}
	s.status = status
	for ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- status
	}
	return true
}

// Subscribe delivers the current status immediately and every change after
// it. The channel is closed once ctx is done.
func (s *Source) Subscribe(ctx context.Context) <-chan navigation.AuthStatus {
	ch := make(chan navigation.AuthStatus, 1)

	s.mu.Lock()
	ch <- s.status
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, ch)
		close(ch)
		s.mu.Unlock()
	}()
	return ch
}

// Subscribers counts active subscriptions.
func (s *Source) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Hub keeps one Source per user id.
type Hub struct {
	mu      sync.Mutex
	sources map[string]*Source
}

func NewHub() *Hub {
	return &Hub{sources: make(map[string]*Source)}
}

// Source returns the user's source, creating it in the Loading state.
func (h *Hub) Source(userID string) *Source {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.source(userID)
}

// Subscribe watches the user's source. Finding the source and registering
// the subscriber happen under one lock so Forget and Prune cannot drop the
// source in between.
func (h *Hub) Subscribe(ctx context.Context, userID string) <-chan navigation.AuthStatus {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.source(userID).Subscribe(ctx)
}

// Publish sets the status of a user's source.
func (h *Hub) Publish(userID string, status navigation.AuthStatus) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.source(userID).Publish(status)
}

// source must be called with h.mu held.
func (h *Hub) source(userID string) *Source {
	src, ok := h.sources[userID]
	if !ok {
		src = NewSource(navigation.LoadingStatus())
		h.sources[userID] = src
	}
	return src
}

// Forget drops the source of a user nobody is watching.
func (h *Hub) Forget(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if src, ok := h.sources[userID]; ok && src.Subscribers() == 0 {
		delete(h.sources, userID)
	}
}

// Prune drops every source nobody is watching and returns how many went.
// The next publish for such a user starts a fresh source.
func (h *Hub) Prune() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := 0
	for id, src := range h.sources {
		if src.Subscribers() == 0 {
			delete(h.sources, id)
			n++
		}
	}
	return n
}

// Len counts tracked users.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sources)
}
