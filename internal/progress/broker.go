package progress

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"mockupgen/internal/domain"
)

// Sink receives one progress event. Sinks must not block for long; delivery
// is best-effort and at-most-once.
type Sink func(domain.ProgressEvent)

const (
	// historyLimit bounds the replay buffer per session.
	historyLimit = 32
	historyTTL   = 15 * time.Minute
)

// Broker maps session ids to their single active subscriber and keeps a
// bounded, expiring history of recent events per session. Registering a new
// sink for a session replaces the previous one. Publishing without a
// subscriber drops the event (aside from the history record).
type Broker struct {
	mu      sync.RWMutex
	sinks   map[string]Sink
	history *gocache.Cache
}

func NewBroker() *Broker {
	return &Broker{
		sinks:   make(map[string]Sink),
		history: gocache.New(historyTTL, 2*historyTTL),
	}
}

func (b *Broker) Subscribe(sessionID string, sink Sink) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sinks[sessionID] = sink
}

func (b *Broker) Unsubscribe(sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.sinks, sessionID)
}

// Publish delivers the event to the session's current sink, if any, and
// records it in the replay history. No buffering toward the sink: a client
// that subscribes later sees earlier events only through History.
func (b *Broker) Publish(sessionID string, event domain.ProgressEvent) {
	b.record(sessionID, event)

	b.mu.RLock()
	sink := b.sinks[sessionID]
	b.mu.RUnlock()
	if sink != nil {
		sink(event)
	}
}

// History returns the recent events recorded for the session, oldest first.
func (b *Broker) History(sessionID string) []domain.ProgressEvent {
	v, ok := b.history.Get(sessionID)
	if !ok {
		return nil
	}
	events := v.([]domain.ProgressEvent)
	out := make([]domain.ProgressEvent, len(events))
	copy(out, events)
	return out
}

func (b *Broker) record(sessionID string, event domain.ProgressEvent) {
	// go-cache has no atomic read-modify-write, so the append runs under
	// the broker lock.
	b.mu.Lock()
	defer b.mu.Unlock()
	var events []domain.ProgressEvent
	if v, ok := b.history.Get(sessionID); ok {
		events = v.([]domain.ProgressEvent)
	}
	events = append(events, event)
	if len(events) > historyLimit {
		events = events[len(events)-historyLimit:]
	}
	b.history.Set(sessionID, events, gocache.DefaultExpiration)
}
