package session

import (
	"testing"

	"github.com/originrealm/worldcore/internal/guid"
)

type fakeOutbox struct {
	online bool
	sent   [][]byte
}

func (f *fakeOutbox) Enqueue(payload []byte) { f.sent = append(f.sent, payload) }
func (f *fakeOutbox) Online() bool           { return f.online }

func TestRegistryBindGetUnbind(t *testing.T) {
	r := NewRegistry()
	g := guid.New(guid.HighGuidPlayer, 1)

	if r.Get(g) != nil {
		t.Fatalf("unbound guid must resolve to nil")
	}

	ob := &fakeOutbox{online: true}
	r.Bind(g, ob)
	if r.Get(g) != Outbox(ob) {
		t.Fatalf("Get must return the bound outbox")
	}
	if r.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", r.Count())
	}

	r.Unbind(g)
	if r.Get(g) != nil {
		t.Fatalf("Get after Unbind must return nil")
	}
	if r.Count() != 0 {
		t.Fatalf("Count() after Unbind = %d, want 0", r.Count())
	}
}

func TestRegistryBindReplacesOnReconnect(t *testing.T) {
	r := NewRegistry()
	g := guid.New(guid.HighGuidPlayer, 1)

	first := &fakeOutbox{online: true}
	second := &fakeOutbox{online: true}
	r.Bind(g, first)
	r.Bind(g, second)

	if r.Get(g) != Outbox(second) {
		t.Fatalf("rebinding the same guid must replace the prior outbox")
	}
	if r.Count() != 1 {
		t.Fatalf("rebinding must not grow Count(), got %d", r.Count())
	}
}
