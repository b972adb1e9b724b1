// Package session implements the per-player ordered sink for outbound
// opcode frames that the core writes to directly, and a guid-keyed
// registry so world/handler code can resolve "the outbox for player
// guid G" without importing the transport layer.
//
// The registry is a single-mutex map keyed by guid, the lookup the
// core's broadcast call sites need via a `sessionOf(guid) Sender`
// callback.
package session

import (
	"sync"

	"github.com/originrealm/worldcore/internal/guid"
)

// Outbox is the per-player enqueue contract. The online flag gates
// delivery: broadcasts silently skip a session once it flips to false.
// Ordering guarantee: packets enqueued to one Outbox are delivered in
// enqueue order — the contract relies on the implementation being a
// single FIFO sink, not on any ordering primitive exposed here.
type Outbox interface {
	Enqueue(payload []byte)
	Online() bool
}

// Registry maps a player's guid to its live Outbox. One process-wide
// instance; read from many goroutines (handlers, the world tick), so
// access is guarded by a single mutex over one map.
type Registry struct {
	mu      sync.RWMutex
	outboxes map[guid.Guid]Outbox
}

func NewRegistry() *Registry {
	return &Registry{outboxes: make(map[guid.Guid]Outbox)}
}

// Bind associates a player guid with its outbox, replacing any prior
// binding (e.g. on reconnect).
func (r *Registry) Bind(g guid.Guid, o Outbox) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outboxes[g] = o
}

// Unbind removes a player's outbox binding, typically on disconnect
// once the entity has been persisted and removed from its cell.
func (r *Registry) Unbind(g guid.Guid) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.outboxes, g)
}

// Get resolves the live Outbox for g, or nil if unbound. The world
// package's broadcast call sites treat a nil return the same as an
// offline session.
func (r *Registry) Get(g guid.Guid) Outbox {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.outboxes[g]
}

// Count reports how many players currently have a bound outbox —
// exposed for operational logging/metrics, not used by the simulation.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.outboxes)
}
