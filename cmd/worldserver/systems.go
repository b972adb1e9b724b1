package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/originrealm/worldcore/internal/core/ecs"
	"github.com/originrealm/worldcore/internal/core/system"
	gonet "github.com/originrealm/worldcore/internal/net"
	"github.com/originrealm/worldcore/internal/net/packet"
	"github.com/originrealm/worldcore/internal/object"
	"github.com/originrealm/worldcore/internal/protocol"
	"github.com/originrealm/worldcore/internal/world"
)

// inputSystem drains newly accepted/dead sessions and dispatches every
// session's queued inbound packets, during PhaseInput.
type inputSystem struct {
	srv    *worldServer
	pktReg *packet.Registry
}

func (s *inputSystem) Phase() system.Phase { return system.PhaseInput }

func (s *inputSystem) Update(dt time.Duration) {
	for {
		select {
		case sess := <-s.srv.netServer.NewSessions():
			entity := s.srv.ecsWorld.CreateEntity()
			s.srv.sessionComp.Set(entity, sess)
			s.srv.bySession[sess.ID] = &playerLink{srv: s.srv, entity: entity}
		default:
			goto drainDead
		}
	}
drainDead:
	for {
		select {
		case id := <-s.srv.netServer.DeadSessions():
			s.srv.handleDisconnect(id)
		default:
			goto dispatch
		}
	}
dispatch:
	for _, link := range s.srv.bySession {
		s.drainLink(link)
	}
}

func (s *inputSystem) drainLink(link *playerLink) {
	sess := link.session()
	max := s.srv.cfg.Network.MaxPacketsPerTick
	for i := 0; i < max; i++ {
		select {
		case payload := <-sess.InQueue:
			if err := s.pktReg.Dispatch(link, sess.State(), payload); err != nil {
				s.srv.log.Debug("dispatch error", zap.Uint64("session", sess.ID), zap.Error(err))
			}
		default:
			return
		}
	}
}

// outputSystem flushes every placed player's dirty field delta as a
// PARTIAL packet to its own surrounding cells, during PhaseOutput.
type outputSystem struct {
	srv *worldServer
}

func (s *outputSystem) Phase() system.Phase { return system.PhaseOutput }

func (s *outputSystem) Update(dt time.Duration) {
	ecs.Each2(s.srv.playerComp, s.srv.sessionComp, func(_ ecs.EntityID, p *object.Player, _ *gonet.Session) {
		if !p.CurrentCell.Valid || !p.Dirty() {
			return
		}
		m, err := s.srv.maps.Get(p.MapID)
		if err != nil {
			return
		}
		payload := appendOpcode(protocol.OpPartialUpdate, p.BuildPartial())
		key := world.CellKey{MapID: p.MapID, IX: p.CurrentCell.X, IY: p.CurrentCell.Y}
		m.Grid.SendSurrounding(key, payload, world.BroadcastFilter{}, s.srv.sessionOf)
		p.Reset()
	})
}

// persistSystem batch-saves every placed player's character row every
// BatchIntervalTicks ticks, bounded by Workers goroutines, during
// PhasePersist. Each run blocks the world thread until the batch
// finishes or a fixed 5-second timeout expires.
type persistSystem struct {
	srv           *worldServer
	intervalTicks int
	tick          int
}

func (s *persistSystem) Phase() system.Phase { return system.PhasePersist }

func (s *persistSystem) Update(dt time.Duration) {
	s.tick++
	if s.intervalTicks <= 0 || s.tick%s.intervalTicks != 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.srv.flushAll(ctx); err != nil {
		s.srv.log.Warn("periodic flush failed", zap.Error(err))
	}
}

// cleanupSystem drains the ECS destroy queue queued by handleDisconnect,
// during PhaseCleanup. Entities marked for destruction there are read
// out of the component stores one last time (to unbind their guid from
// the session registry) before FlushDestroyQueue wipes the stores and
// frees the entity index back to the pool.
type cleanupSystem struct {
	srv *worldServer
}

func (s *cleanupSystem) Phase() system.Phase { return system.PhaseCleanup }

func (s *cleanupSystem) Update(dt time.Duration) {
	for _, id := range s.srv.ecsWorld.PendingDestroy() {
		if p, ok := s.srv.playerComp.Get(id); ok {
			s.srv.sessions.Unbind(p.Guid)
		}
	}
	s.srv.ecsWorld.FlushDestroyQueue()
}
