package ecs

import "testing"

func TestPtrComponentStoreSetGetHas(t *testing.T) {
	s := NewPtrComponentStore[int]()
	id := EntityID(1)

	if s.Has(id) {
		t.Fatalf("empty store must not report Has()")
	}
	v := 42
	s.Set(id, &v)
	if !s.Has(id) {
		t.Fatalf("expected Has() true after Set")
	}
	got, ok := s.Get(id)
	if !ok || *got != 42 {
		t.Fatalf("Get() = %v, %v, want 42, true", got, ok)
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
}

func TestPtrComponentStoreRemove(t *testing.T) {
	s := NewPtrComponentStore[int]()
	id := EntityID(1)
	v := 1
	s.Set(id, &v)
	s.Remove(id)
	if s.Has(id) {
		t.Fatalf("expected Has() false after Remove")
	}
	if s.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", s.Len())
	}
}

func TestPtrComponentStoreEachVisitsAllEntries(t *testing.T) {
	s := NewPtrComponentStore[int]()
	for i := 0; i < 5; i++ {
		v := i
		s.Set(EntityID(i), &v)
	}
	seen := make(map[EntityID]int)
	s.Each(func(id EntityID, v *int) { seen[id] = *v })
	if len(seen) != 5 {
		t.Fatalf("expected 5 visited entries, got %d", len(seen))
	}
}
