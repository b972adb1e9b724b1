package event

import "testing"

type cellActivated struct{ id int }

func TestEmitIsDeferredToNextSwap(t *testing.T) {
	b := NewBus()
	var got []int
	Subscribe(b, func(e cellActivated) { got = append(got, e.id) })

	Emit(b, cellActivated{id: 1})
	b.DispatchAll()
	if len(got) != 0 {
		t.Fatalf("event must not be visible before a SwapBuffers, got %v", got)
	}

	b.SwapBuffers()
	b.DispatchAll()
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("expected [1] after swap, got %v", got)
	}
}

func TestSwapBuffersClearsConsumedEvents(t *testing.T) {
	b := NewBus()
	var count int
	Subscribe(b, func(e cellActivated) { count++ })

	Emit(b, cellActivated{id: 1})
	b.SwapBuffers()
	b.DispatchAll()
	b.SwapBuffers() // nothing new emitted
	b.DispatchAll()

	if count != 1 {
		t.Fatalf("expected exactly one delivery, got %d", count)
	}
}

func TestMultipleHandlersAllReceiveTheEvent(t *testing.T) {
	b := NewBus()
	var a, c int
	Subscribe(b, func(e cellActivated) { a++ })
	Subscribe(b, func(e cellActivated) { c++ })

	Emit(b, cellActivated{id: 9})
	b.SwapBuffers()
	b.DispatchAll()

	if a != 1 || c != 1 {
		t.Fatalf("expected both handlers invoked once, got a=%d c=%d", a, c)
	}
}

func TestDistinctEventTypesDoNotCrossDeliver(t *testing.T) {
	type entityDestroyed struct{ guid uint64 }
	b := NewBus()
	var cells, destroys int
	Subscribe(b, func(e cellActivated) { cells++ })
	Subscribe(b, func(e entityDestroyed) { destroys++ })

	Emit(b, entityDestroyed{guid: 42})
	b.SwapBuffers()
	b.DispatchAll()

	if cells != 0 || destroys != 1 {
		t.Fatalf("expected only entityDestroyed handler to fire, got cells=%d destroys=%d", cells, destroys)
	}
}
