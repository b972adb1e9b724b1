// Package quest implements the quest-giver wire packets
// (SMSG_QUESTGIVER_STATUS / SMSG_QUESTGIVER_QUEST_LIST /
// SMSG_QUESTGIVER_QUEST_DETAILS / SMSG_QUESTGIVER_OFFER_REWARD /
// SMSG_QUEST_QUERY_RESPONSE) plus the dialogue-status enum, modeled on
// QuestManager.get_dialogue_status. Quest progression *rules* — which
// status applies, objective completion logic — are out of scope; this
// package only encodes the wire shapes and carries the persisted
// quest-state CRUD surface's status constants.
package quest

import (
	"github.com/originrealm/worldcore/internal/net/packet"
	"github.com/originrealm/worldcore/internal/persist"
)

// DialogueStatus mirrors QuestManager.get_dialog_status's return
// values — what a quest giver's icon should show above its head.
// get_dialog_status picks the status it returns by comparing
// candidates with a plain "new_dialog_status > dialog_status", so the
// original enum is a small sequential ranking, not a bit-flag set —
// these constants follow that ordering (NONE < FUTURE < TRIVIAL <
// QUEST < REWARD) rather than the power-of-two spacing a bit-mask
// would use. Computing which value applies to a given player/quest
// pair is a handler concern; this package only carries the wire
// constant.
type DialogueStatus uint32

const (
	DialogueStatusNone      DialogueStatus = 0 // QUEST_GIVER_NONE
	DialogueStatusFuture    DialogueStatus = 1 // QUEST_GIVER_FUTURE — player below the quest's level window
	DialogueStatusTrivial   DialogueStatus = 2 // QUEST_GIVER_TRIVIAL — player above the quest's level window
	DialogueStatusAvailable DialogueStatus = 3 // QUEST_GIVER_QUEST — offerable now
	DialogueStatusReward    DialogueStatus = 4 // QUEST_GIVER_REWARD — ready to turn in
)

const (
	OpQuestgiverStatus        uint16 = 0x0191
	OpQuestgiverQuestList     uint16 = 0x0192
	OpQuestgiverQuestDetails  uint16 = 0x0193
	OpQuestgiverOfferReward   uint16 = 0x0194
	OpQuestQueryResponse      uint16 = 0x0195
)

// BuildQuestgiverStatus encodes SMSG_QUESTGIVER_STATUS:
// {giverGuid:u64, status:u32}.
func BuildQuestgiverStatus(giverGuid uint64, status DialogueStatus) []byte {
	w := packet.NewWriterWithOpcode(OpQuestgiverStatus)
	w.WriteUint64(giverGuid)
	w.WriteUint32(uint32(status))
	return w.Bytes()
}

// QuestListEntry is one row of a quest giver's offered-quest list.
type QuestListEntry struct {
	Entry uint32
	State uint32
	Level uint32
	Title string
}

// BuildQuestgiverQuestList encodes SMSG_QUESTGIVER_QUEST_LIST:
// {giverGuid:u64, message:lp-string, delay:u32=0, emote:u32=0,
// count:u8, [{entry:u32, state:u32, level:u32, title:lp-string}]}.
// delay/emote are always zero — greeting-emote fields are a
// handler-populated extension this core doesn't carry.
func BuildQuestgiverQuestList(giverGuid uint64, message string, entries []QuestListEntry) []byte {
	w := packet.NewWriterWithOpcode(OpQuestgiverQuestList)
	w.WriteUint64(giverGuid)
	w.WriteString(message)
	w.WriteUint32(0) // delay
	w.WriteUint32(0) // emote
	w.WriteByte(byte(len(entries)))
	for _, e := range entries {
		w.WriteUint32(e.Entry)
		w.WriteUint32(e.State)
		w.WriteUint32(e.Level)
		w.WriteString(e.Title)
	}
	return w.Bytes()
}

// QuestDetails carries the fields SMSG_QUESTGIVER_QUEST_DETAILS
// concatenates — scalars and length-prefixed strings in a fixed order.
// Objective/reward item lists are handler-populated content and are
// encoded as opaque already-framed bytes the caller supplies.
type QuestDetails struct {
	GiverGuid   uint64
	QuestEntry  uint32
	Title       string
	Description string
	Objectives  string
	Body        []byte // pre-encoded reward/objective sub-block
}

func BuildQuestgiverQuestDetails(d QuestDetails) []byte {
	w := packet.NewWriterWithOpcode(OpQuestgiverQuestDetails)
	w.WriteUint64(d.GiverGuid)
	w.WriteUint32(d.QuestEntry)
	w.WriteString(d.Title)
	w.WriteString(d.Description)
	w.WriteString(d.Objectives)
	w.WriteBytes(d.Body)
	return w.Bytes()
}

// OfferReward mirrors QuestDetails' shape for the accept-time reward
// offer screen.
type OfferReward struct {
	GiverGuid  uint64
	QuestEntry uint32
	Title      string
	OfferText  string
	Body       []byte
}

func BuildQuestgiverOfferReward(o OfferReward) []byte {
	w := packet.NewWriterWithOpcode(OpQuestgiverOfferReward)
	w.WriteUint64(o.GiverGuid)
	w.WriteUint32(o.QuestEntry)
	w.WriteString(o.Title)
	w.WriteString(o.OfferText)
	w.WriteBytes(o.Body)
	return w.Bytes()
}

// QueryResponse is the quest-log tooltip query result.
type QueryResponse struct {
	QuestEntry  uint32
	Title       string
	Objectives  string
	Description string
	Body        []byte
}

func BuildQuestQueryResponse(q QueryResponse) []byte {
	w := packet.NewWriterWithOpcode(OpQuestQueryResponse)
	w.WriteUint32(q.QuestEntry)
	w.WriteString(q.Title)
	w.WriteString(q.Objectives)
	w.WriteString(q.Description)
	w.WriteBytes(q.Body)
	return w.Bytes()
}

// StatusFromPersisted maps a persisted persist.QuestStatus to the
// wire-visible DialogueStatus a quest giver shows for it. Only the
// mechanical mapping is in scope; deciding which persisted status
// applies before a quest is ever offered is a handler concern.
func StatusFromPersisted(s persist.QuestStatus) DialogueStatus {
	switch s {
	case persist.QuestStatusIncomplete:
		return DialogueStatusNone // already in the player's log; giver has nothing further to show
	case persist.QuestStatusComplete:
		return DialogueStatusReward // objectives met, ready to turn in
	case persist.QuestStatusRewarded:
		return DialogueStatusNone
	case persist.QuestStatusFailed:
		return DialogueStatusNone
	default:
		return DialogueStatusAvailable
	}
}
