package system

import (
	"time"

	"github.com/originrealm/worldcore/internal/core/event"
)

// EventDispatchSystem swaps the event bus's double buffer once per
// tick so events emitted during tick N become readable to subscribers
// during tick N+1. System order is fixed; event delivery is one tick
// delayed.
type EventDispatchSystem struct {
	Bus *event.Bus
}

func (s *EventDispatchSystem) Phase() Phase { return PhaseInput }

func (s *EventDispatchSystem) Update(dt time.Duration) {
	s.Bus.SwapBuffers()
	s.Bus.DispatchAll()
}
