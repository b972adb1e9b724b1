package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/originrealm/worldcore/internal/core/event"
	"github.com/originrealm/worldcore/internal/guid"
	"github.com/originrealm/worldcore/internal/net/packet"
	"github.com/originrealm/worldcore/internal/object"
	"github.com/originrealm/worldcore/internal/persist"
	"github.com/originrealm/worldcore/internal/protocol"
	"github.com/originrealm/worldcore/internal/vector"
	"github.com/originrealm/worldcore/internal/world"
)

// appendOpcode prefixes payload with its 2-byte little-endian opcode —
// the boundary object.Base's packet builders stop short of, since they
// have no transport dependency.
func appendOpcode(op uint16, payload []byte) []byte {
	w := packet.NewWriterWithOpcode(op)
	w.WriteBytes(payload)
	return w.Bytes()
}

func (s *worldServer) registerHandlers(reg *packet.Registry) {
	reg.Register(protocol.OpLogin, []packet.SessionState{packet.StateHandshake}, s.handleLogin)
	reg.Register(protocol.OpCharacterSelect, []packet.SessionState{packet.StateAuthenticated}, s.handleCharacterSelect)
	reg.Register(protocol.OpMoveRequest, []packet.SessionState{packet.StateInWorld}, s.handleMoveRequest)
}

func (s *worldServer) handleLogin(sessAny any, r *packet.Reader) {
	link := sessAny.(*playerLink)
	name := r.ReadString()
	password := r.ReadString()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	status, handle, err := s.accountRepo.TryLogin(ctx, name, password, link.session().IP)
	if err != nil {
		s.log.Error("login query failed", zap.String("account", name), zap.Error(err))
		status = persist.LoginNoSuchUser
	}

	w := packet.NewWriterWithOpcode(protocol.OpLoginResult)
	w.WriteByte(byte(status))
	if status != persist.LoginSuccess {
		w.WriteUint16(0)
		link.session().Send(w.Bytes())
		return
	}

	chars, err := s.accountRepo.CharactersOf(ctx, handle.ID)
	if err != nil {
		s.log.Error("load characters failed", zap.Int64("account", handle.ID), zap.Error(err))
		chars = nil
	}

	link.setAccount(handle)
	link.session().AccountName = name
	link.session().SetState(packet.StateAuthenticated)

	w.WriteUint16(uint16(len(chars)))
	for _, c := range chars {
		w.WriteUint64(c.Guid)
		w.WriteString(c.Name)
		w.WriteUint32(c.Level)
	}
	link.session().Send(w.Bytes())
}

func (s *worldServer) handleCharacterSelect(sessAny any, r *packet.Reader) {
	link := sessAny.(*playerLink)
	charGuid := r.ReadUint64()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c, err := s.charRepo.GetByGuid(ctx, charGuid)
	if err != nil {
		s.log.Warn("character select: load failed", zap.Uint64("guid", charGuid), zap.Error(err))
		return
	}
	if c.AccountID != link.account().ID {
		s.log.Warn("character select: account mismatch", zap.Uint64("guid", charGuid))
		return
	}

	m, err := s.maps.Get(c.MapID)
	if err != nil {
		s.log.Warn("character select: unknown map", zap.Uint32("map", c.MapID))
		return
	}

	pg := guid.New(guid.HighGuidPlayer, c.Guid)
	p := object.NewPlayer(pg, 0, c.Name, uint64(c.AccountID), c.Level, c.MaxHealth)
	p.MapID = c.MapID
	p.Location = vector.Vec3{X: c.X, Y: c.Y, Z: c.Z, O: c.O}
	p.SetUint32(object.PlayerFieldXP, c.XP)
	p.Reset() // the above seeds are carried by the full CREATE_OBJECT sync below, not a PARTIAL

	link.setPlayer(p)
	link.session().CharName = c.Name
	link.session().SetState(packet.StateInWorld)

	s.sessions.Bind(pg, link.session())
	m.Grid.AddOrGetPlayer(p, p.Location, true)

	selfCreate := appendOpcode(protocol.OpCreateObject, p.BuildCreateObject(object.MiscBlock{IsSelf: true}))
	link.session().Send(selfCreate)

	key := world.CellKey{MapID: c.MapID, IX: p.CurrentCell.X, IY: p.CurrentCell.Y}
	others := m.Grid.SurroundingEntities(key)
	for og, other := range others.Players {
		if og == pg {
			continue
		}
		otherSess := s.sessionForGuid(og)
		if otherSess == nil {
			continue
		}
		otherSess.Send(appendOpcode(protocol.OpCreateObject, p.BuildCreateObject(object.MiscBlock{})))
		link.session().Send(appendOpcode(protocol.OpCreateObject, other.BuildCreateObject(object.MiscBlock{})))
	}
	for _, u := range others.Units {
		link.session().Send(appendOpcode(protocol.OpCreateObject, u.BuildCreateObject(object.MiscBlock{})))
	}
	for _, g := range others.GameObjects {
		link.session().Send(appendOpcode(protocol.OpCreateObject, g.BuildCreateObject(object.MiscBlock{})))
	}

	event.Emit(s.eventBus, event.PlayerLoggedIn{EntityID: link.entity, AccountName: link.session().AccountName})
}

func (s *worldServer) handleMoveRequest(sessAny any, r *packet.Reader) {
	link := sessAny.(*playerLink)
	p := link.player()
	if p == nil {
		return
	}

	newLoc := vector.Vec3{X: r.ReadFloat32(), Y: r.ReadFloat32(), Z: r.ReadFloat32(), O: r.ReadFloat32()}

	m, err := s.maps.Get(p.MapID)
	if err != nil {
		return
	}

	p.Location = newLoc
	m.Grid.UpdatePlayer(p, newLoc, nil)

	movement := appendOpcode(protocol.OpMovementUpdate, p.BuildMovement())
	key := world.CellKey{MapID: p.MapID, IX: p.CurrentCell.X, IY: p.CurrentCell.Y}
	m.Grid.SendSurrounding(key, movement, world.BroadcastFilter{ExcludeSource: p.Guid, HasSource: true}, s.sessionOf)
}

func (s *worldServer) handleDisconnect(sessionID uint64) {
	link, ok := s.bySession[sessionID]
	if !ok {
		return
	}
	delete(s.bySession, sessionID)

	p := link.player()
	if p == nil {
		s.ecsWorld.MarkForDestruction(link.entity)
		return
	}
	m, err := s.maps.Get(p.MapID)
	if err == nil {
		destroyPacket := appendOpcode(protocol.OpDestroyObject, destroyPayload(p.Guid))
		m.Grid.RemovePlayer(p, destroyPacket, s.sessionOf)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.saveCharacter(ctx, link.account(), p); err != nil {
		s.log.Warn("save on disconnect failed", zap.Uint64("guid", p.Guid.Low()), zap.Error(err))
	}

	event.Emit(s.eventBus, event.SessionDisconnected{EntityID: link.entity, SessionID: sessionID})
	event.Emit(s.eventBus, event.EntityDestroyed{EntityID: link.entity, Guid: p.Guid})
	s.ecsWorld.MarkForDestruction(link.entity)
}

func destroyPayload(g guid.Guid) []byte {
	w := packet.NewWriter()
	w.WriteUint64(uint64(g))
	return w.Bytes()
}
