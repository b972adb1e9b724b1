package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/originrealm/worldcore/internal/catalogue"
	"github.com/originrealm/worldcore/internal/config"
	"github.com/originrealm/worldcore/internal/core/ecs"
	"github.com/originrealm/worldcore/internal/core/event"
	"github.com/originrealm/worldcore/internal/guid"
	gonet "github.com/originrealm/worldcore/internal/net"
	"github.com/originrealm/worldcore/internal/object"
	"github.com/originrealm/worldcore/internal/persist"
	"github.com/originrealm/worldcore/internal/scripting"
	"github.com/originrealm/worldcore/internal/session"
	"github.com/originrealm/worldcore/internal/world"
)

// playerLink is the handle a connected TCP session is known by on the
// world thread: an ECS entity id. Session, account and player are not
// held as raw pointers on this struct — they live in worldServer's
// component stores, keyed by entity id, so the session <-> account <->
// character cycle (spec's handle-arena design note) is backed by the
// same generational arena that owns every other entity. playerLink
// only exists on the world goroutine — the single writer thread for
// all entity state.
type playerLink struct {
	srv    *worldServer
	entity ecs.EntityID
}

func (l *playerLink) session() *gonet.Session {
	s, _ := l.srv.sessionComp.Get(l.entity)
	return s
}

func (l *playerLink) account() *persist.AccountHandle {
	a, _ := l.srv.accountComp.Get(l.entity)
	return a
}

func (l *playerLink) setAccount(a *persist.AccountHandle) {
	l.srv.accountComp.Set(l.entity, a)
}

func (l *playerLink) player() *object.Player {
	p, _ := l.srv.playerComp.Get(l.entity)
	return p
}

func (l *playerLink) setPlayer(p *object.Player) {
	l.srv.playerComp.Set(l.entity, p)
}

// worldServer bundles every wired dependency the packet handlers and
// phase systems need. Deliberately a plain struct, not a DI container.
type worldServer struct {
	cfg *config.Config
	log *zap.Logger

	accountRepo   *persist.AccountRepo
	charRepo      *persist.CharacterRepo
	invRepo       *persist.InventoryRepo
	deathbindRepo *persist.DeathbindRepo
	socialRepo    *persist.SocialRepo
	ticketRepo    *persist.TicketRepo
	groupRepo     *persist.GroupRepo
	guildRepo     *persist.GuildRepo

	maps         *world.MapRegistry
	mapCatalogue *catalogue.MapTable
	creatures    *catalogue.CreatureTable
	gameObjects  *catalogue.GameObjectTable

	scripting *scripting.Engine
	ecsWorld  *ecs.World
	sessions  *session.Registry
	netServer *gonet.Server
	eventBus  *event.Bus
	cellSize  float32

	// Component stores back the session/account/player cycle as
	// generational handle indices into the ECS world, per the
	// cyclic-reference design note: a joined player's session, account
	// and player components all live under one shared entity id and
	// are removed together when that entity is destroyed, rather than via raw
	// pointers that would need manual nil-ing out on disconnect.
	sessionComp *ecs.PtrComponentStore[gonet.Session]
	accountComp *ecs.PtrComponentStore[persist.AccountHandle]
	playerComp  *ecs.PtrComponentStore[object.Player]

	bySession map[uint64]*playerLink
}

// sessionOf adapts the session.Registry lookup to world's
// func(guid.Guid) world.Sender broadcast callback signature. A
// separate adapter closure is needed here rather than passing
// srv.sessions.Get directly: Outbox and world.Sender share a method
// set but are distinct named interface types, and Go does not let one
// named func type stand in for another even when both targets satisfy
// the same methods.
func (s *worldServer) sessionOf(g guid.Guid) world.Sender {
	ob := s.sessions.Get(g)
	if ob == nil {
		return nil
	}
	return ob
}

// sessionForGuid linearly scans the joined (player, session) pairs for
// one with a matching guid — acceptable at the connection counts this
// core targets. Used for neighbour lookups (e.g. the CREATE_OBJECT
// exchange on character select) where only a guid, not an entity id, is
// known.
func (s *worldServer) sessionForGuid(g guid.Guid) *gonet.Session {
	var found *gonet.Session
	ecs.Each2(s.playerComp, s.sessionComp, func(_ ecs.EntityID, p *object.Player, sess *gonet.Session) {
		if found == nil && p.Guid == g {
			found = sess
		}
	})
	return found
}

func (s *worldServer) tickCreature(u *object.Unit) {
	// Creature AI/combat is out of scope; ticking exists to exercise
	// the phase pipeline against live entities.
}

func (s *worldServer) tickGameObject(g *object.GameObject) {
}

// flushAll persists every connected player's character row, fanning
// out one goroutine per link bounded by the configured worker count,
// as the graceful-shutdown drain. Each3 walks the account/player/
// session triple so only fully-joined entities (selected a character,
// still connected) are flushed.
func (s *worldServer) flushAll(ctx context.Context) error {
	var flushers []persist.Flusher
	ecs.Each3(s.accountComp, s.playerComp, s.sessionComp, func(_ ecs.EntityID, acct *persist.AccountHandle, p *object.Player, _ *gonet.Session) {
		acct, p := acct, p
		flushers = append(flushers, persist.FuncFlusher{
			KindName: "player",
			Fn: func(ctx context.Context) error {
				return s.saveCharacter(ctx, acct, p)
			},
		})
	})
	return persist.BatchFlush(ctx, flushers, s.cfg.Persistence.FlushWorkers, s.log)
}

func (s *worldServer) saveCharacter(ctx context.Context, acct *persist.AccountHandle, p *object.Player) error {
	c := &persist.Character{
		Guid:      p.Guid.Low(),
		AccountID: acct.ID,
		Name:      p.Name,
		Level:     p.GetUint32(object.UnitFieldLevel),
		MaxHealth: p.GetUint32(object.UnitFieldMaxHealth),
		Health:    p.Health(),
		XP:        p.XP(),
		MapID:     p.MapID,
		X:         p.Location.X,
		Y:         p.Location.Y,
		Z:         p.Location.Z,
		O:         p.Location.O,
	}
	return s.charRepo.Update(ctx, c)
}
