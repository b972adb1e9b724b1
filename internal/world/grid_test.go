package world

import (
	"testing"

	"go.uber.org/zap"

	"github.com/originrealm/worldcore/internal/guid"
	"github.com/originrealm/worldcore/internal/object"
	"github.com/originrealm/worldcore/internal/vector"
)

const testCellSize = 100

type fakeSender struct {
	online  bool
	inbox   [][]byte
}

func (f *fakeSender) Enqueue(payload []byte) { f.inbox = append(f.inbox, payload) }
func (f *fakeSender) Online() bool           { return f.online }

func newTestPlayer(low uint64, x, y float32) *object.Player {
	p := object.NewPlayer(guid.New(guid.HighGuidPlayer, low), 1, "p", 1, 1, 100)
	p.Location = vector.Vec3{X: x, Y: y}
	return p
}

func newTestCreature(low uint64, x, y float32) *object.Unit {
	u := object.NewUnit(guid.New(guid.HighGuidUnit, low), 1, 1, 50, 1, 1)
	u.Location = vector.Vec3{X: x, Y: y}
	return u
}

// TestPartition asserts any point derives exactly one cell key and
// the cell's bounds contain the point.
func TestPartition(t *testing.T) {
	pts := [][2]float32{{0, 0}, {99.999, 99.999}, {100, 100}, {-0.001, -0.001}, {250, -250}}
	for _, p := range pts {
		k := KeyOf(0, p[0], p[1], testCellSize)
		c := newCell(k)
		if !c.Contains(vector.Vec3{X: p[0], Y: p[1]}, 0, testCellSize) {
			t.Errorf("point (%v,%v) not contained by its own derived cell %+v", p[0], p[1], k)
		}
	}
}

// TestS1PlacementAndMove: CELL_SIZE=100, place P at (50,50,map=0),
// expect cell key (0,0). Move to (150,50); after UpdatePlayer, P is in
// a different cell, onCellChange fired once, old cell no longer lists P.
func TestS1PlacementAndMove(t *testing.T) {
	gm := NewGridManager(0, testCellSize, nil, nopLogger())
	p := newTestPlayer(1, 50, 50)

	gm.AddOrGetPlayer(p, p.Location, true)
	if p.CurrentCell.X != 0 || p.CurrentCell.Y != 0 {
		t.Fatalf("expected initial cell (0,0), got (%d,%d)", p.CurrentCell.X, p.CurrentCell.Y)
	}
	oldKey := CellKey{MapID: 0, IX: 0, IY: 0}

	calls := 0
	p.Location = vector.Vec3{X: 150, Y: 50}
	gm.UpdatePlayer(p, p.Location, func() { calls++ })

	if calls != 1 {
		t.Fatalf("onCellChange fired %d times, want 1", calls)
	}
	if p.CurrentCell.X != 1 || p.CurrentCell.Y != 0 {
		t.Fatalf("expected new cell (1,0), got (%d,%d)", p.CurrentCell.X, p.CurrentCell.Y)
	}
	if _, stillThere := gm.cells[oldKey].players[p.Guid]; stillThere {
		t.Fatalf("old cell must no longer list P")
	}
}

// TestUpdatePlayerSameCellNoOp verifies a location change within the
// same cell performs no broadcast/hook.
func TestUpdatePlayerSameCellNoOp(t *testing.T) {
	gm := NewGridManager(0, testCellSize, nil, nopLogger())
	p := newTestPlayer(1, 50, 50)
	gm.AddOrGetPlayer(p, p.Location, true)

	calls := 0
	p.Location = vector.Vec3{X: 60, Y: 60}
	gm.UpdatePlayer(p, p.Location, func() { calls++ })
	if calls != 0 {
		t.Fatalf("onCellChange must not fire for a same-cell move, got %d calls", calls)
	}
}

// TestS2NeighbourBroadcast: CELL_SIZE=100. A(50,50) B(150,50) C(350,50)
// all online. send_surrounding(pkt, A, include_self=false) reaches B,
// not A, not C.
func TestS2NeighbourBroadcast(t *testing.T) {
	gm := NewGridManager(0, testCellSize, nil, nopLogger())

	a := newTestPlayer(1, 50, 50)
	b := newTestPlayer(2, 150, 50)
	c := newTestPlayer(3, 350, 50)

	gm.AddOrGetPlayer(a, a.Location, true)
	gm.AddOrGetPlayer(b, b.Location, true)
	gm.AddOrGetPlayer(c, c.Location, true)

	senders := map[guid.Guid]*fakeSender{
		a.Guid: {online: true},
		b.Guid: {online: true},
		c.Guid: {online: true},
	}
	sessionOf := func(g guid.Guid) Sender { return senders[g] }

	aKey := CellKey{MapID: 0, IX: a.CurrentCell.X, IY: a.CurrentCell.Y}
	filter := BroadcastFilter{ExcludeSource: a.Guid, HasSource: true}
	gm.SendSurrounding(aKey, []byte("pkt"), filter, sessionOf)

	if len(senders[a.Guid].inbox) != 0 {
		t.Errorf("A must not receive its own broadcast")
	}
	if len(senders[b.Guid].inbox) != 1 {
		t.Errorf("B must receive exactly one packet, got %d", len(senders[b.Guid].inbox))
	}
	if len(senders[c.Guid].inbox) != 0 {
		t.Errorf("C (3 cells away) must not receive the broadcast")
	}
}

// TestS3ActiveCellWakeUp: creature K sits in an initially inactive
// cell adjacent to an empty one. A player enters the empty cell; the
// activation callback fires once for K, and K's cell, one of the 8
// neighbours of the player's cell, is now active.
func TestS3ActiveCellWakeUp(t *testing.T) {
	activated := map[guid.Guid]int{}
	onActivate := func(ent *object.Base) { activated[ent.Guid]++ }

	gm := NewGridManager(0, testCellSize, onActivate, nopLogger())

	k := newTestCreature(9, 150, 50) // cell (1,0)
	gm.AddOrGetUnit(k, k.Location, true)

	if gm.ActiveCellCount() != 0 {
		t.Fatalf("no player has entered yet; expected 0 active cells, got %d", gm.ActiveCellCount())
	}

	p := newTestPlayer(1, 50, 50) // cell (0,0), neighbour of K's cell
	gm.AddOrGetPlayer(p, p.Location, true)

	if activated[k.Guid] != 1 {
		t.Fatalf("expected onActivate(K) to fire exactly once, fired %d times", activated[k.Guid])
	}
	kCell := CellKey{MapID: 0, IX: 1, IY: 0}
	found := false
	for key := range gm.active {
		if key == kCell {
			found = true
		}
	}
	if !found {
		t.Fatalf("K's cell must be active after the neighbouring player joins")
	}
}

// TestS5DestroyOnRemoval: player P within range CELL_SIZE observes
// creature K; RemoveUnit(K) enqueues a destroy packet to P's session
// exactly once, and excludes K itself (trivially, since K has no
// session).
func TestS5DestroyOnRemoval(t *testing.T) {
	gm := NewGridManager(0, testCellSize, nil, nopLogger())

	p := newTestPlayer(1, 50, 50)
	k := newTestCreature(9, 60, 60) // same cell as P

	gm.AddOrGetPlayer(p, p.Location, true)
	gm.AddOrGetUnit(k, k.Location, true)

	sender := &fakeSender{online: true}
	sessionOf := func(g guid.Guid) Sender {
		if g == p.Guid {
			return sender
		}
		return nil
	}

	destroyPkt := []byte("destroy-K")
	gm.RemoveUnit(k, destroyPkt, sessionOf)

	if len(sender.inbox) != 1 {
		t.Fatalf("P must receive exactly one destroy packet, got %d", len(sender.inbox))
	}
	if string(sender.inbox[0]) != "destroy-K" {
		t.Fatalf("unexpected payload: %q", sender.inbox[0])
	}

	// K must no longer be listed in its former cell.
	ck := CellKey{MapID: 0, IX: 0, IY: 0}
	if _, ok := gm.cells[ck].units[k.Guid]; ok {
		t.Fatalf("K must be removed from its cell's unit bucket")
	}
}

// TestMembershipCoherence asserts that after UpdatePlayer,
// current_cell matches the derived key and the entity appears exactly
// once across the map's cells.
func TestMembershipCoherence(t *testing.T) {
	gm := NewGridManager(0, testCellSize, nil, nopLogger())
	p := newTestPlayer(1, 10, 10)
	gm.AddOrGetPlayer(p, p.Location, true)

	for _, dest := range [][2]float32{{120, 10}, {220, 220}, {10, 10}} {
		p.Location = vector.Vec3{X: dest[0], Y: dest[1]}
		gm.UpdatePlayer(p, p.Location, nil)

		wantKey := KeyOf(0, dest[0], dest[1], testCellSize)
		if p.CurrentCell.X != wantKey.IX || p.CurrentCell.Y != wantKey.IY {
			t.Fatalf("current_cell (%d,%d) != derived key (%d,%d)", p.CurrentCell.X, p.CurrentCell.Y, wantKey.IX, wantKey.IY)
		}

		count := 0
		for _, cell := range gm.cells {
			if _, ok := cell.players[p.Guid]; ok {
				count++
			}
		}
		if count != 1 {
			t.Fatalf("expected P to appear in exactly one cell, found in %d", count)
		}
	}
}

func nopLogger() *zap.Logger {
	return zap.NewNop()
}
