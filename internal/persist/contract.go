package persist

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by lookups that find nothing, and by delete
// operations on an already-deleted row — delete is idempotent and
// returns this as a benign signal rather than failing.
var ErrNotFound = errors.New("persist: not found")

// LoginStatus is the result of AccountStore.TryLogin.
type LoginStatus int

const (
	LoginSuccess LoginStatus = iota
	LoginBadPassword
	LoginNoSuchUser
)

// AccountHandle is the opaque account reference handed back by
// TryLogin/Create, used by every subsequent account-scoped call.
type AccountHandle struct {
	ID   int64
	Name string
	IP   string
}

// CharacterSummary is the minimal character projection AccountStore's
// CharactersOf returns — enough to render a character-select list
// without loading a full Character.
type CharacterSummary struct {
	Guid  uint64
	Name  string
	Level uint32
	MapID uint32
}

// AccountStore is the account half of the persistence adapter
// contract.
type AccountStore interface {
	TryLogin(ctx context.Context, name, password, ip string) (LoginStatus, *AccountHandle, error)
	Create(ctx context.Context, name, password, ip string) (*AccountHandle, error)
	CharactersOf(ctx context.Context, accountID int64) ([]CharacterSummary, error)
}

// Character is the persisted shape of a player character — guid-keyed,
// not a game-specific stat-block character sheet.
type Character struct {
	Guid      uint64
	AccountID int64
	Name      string
	Level     uint32
	MaxHealth uint32
	Health    uint32
	XP        uint32
	MapID     uint32
	X, Y, Z, O float32
	DeletedAt *time.Time
}

// CharacterStore is the character half of the persistence adapter
// contract. Delete is idempotent; Update is
// last-writer-wins with no optimistic concurrency.
type CharacterStore interface {
	GetByGuid(ctx context.Context, guid uint64) (*Character, error)
	GetByName(ctx context.Context, name string) (*Character, error)
	NameExists(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, c *Character) error
	Update(ctx context.Context, c *Character) error
	Delete(ctx context.Context, guid uint64) error
}

// InventoryItem is one persisted item row belonging to a character.
type InventoryItem struct {
	Guid        uint64
	OwnerGuid   uint64
	ContainerGuid uint64 // 0 when not inside a container
	Slot        int
	Entry       uint32
	StackCount  uint32
}

type InventoryStore interface {
	ListByOwner(ctx context.Context, ownerGuid uint64) ([]InventoryItem, error)
	Upsert(ctx context.Context, item *InventoryItem) error
	Delete(ctx context.Context, itemGuid uint64) error
}

// Deathbind is a character's bind point.
type Deathbind struct {
	CharacterGuid uint64
	MapID         uint32
	X, Y, Z       float32
}

type DeathbindStore interface {
	Get(ctx context.Context, characterGuid uint64) (*Deathbind, error)
	Set(ctx context.Context, bind *Deathbind) error
}

// SocialEntry is one row of a character's friends/ignore list.
type SocialEntry struct {
	CharacterGuid uint64
	OtherGuid     uint64
	Ignored       bool
}

type SocialStore interface {
	ListFor(ctx context.Context, characterGuid uint64) ([]SocialEntry, error)
	Add(ctx context.Context, e *SocialEntry) error
	Remove(ctx context.Context, characterGuid, otherGuid uint64) error
}

type SkillStore interface {
	SkillsOf(ctx context.Context, characterGuid uint64) (map[uint32]uint32, error) // skillID -> level
	SetSkill(ctx context.Context, characterGuid uint64, skillID, level uint32) error
}

type SpellStore interface {
	SpellsOf(ctx context.Context, characterGuid uint64) ([]uint32, error)
	AddSpell(ctx context.Context, characterGuid uint64, spellID uint32) error
	RemoveSpell(ctx context.Context, characterGuid uint64, spellID uint32) error
}

// QuestState is one character's progress on one quest.
type QuestState struct {
	CharacterGuid uint64
	QuestEntry    uint32
	Status        QuestStatus
	Objectives    map[uint32]uint32 // objective index -> progress count
}

type QuestStatus uint8

const (
	QuestStatusNone QuestStatus = iota
	QuestStatusIncomplete
	QuestStatusComplete
	QuestStatusFailed
	QuestStatusRewarded
)

type QuestStateStore interface {
	QuestStatesOf(ctx context.Context, characterGuid uint64) ([]QuestState, error)
	UpsertQuestState(ctx context.Context, s *QuestState) error
}

type ReputationStore interface {
	ReputationOf(ctx context.Context, characterGuid uint64) (map[uint32]int32, error) // factionID -> standing
	SetReputation(ctx context.Context, characterGuid uint64, factionID uint32, standing int32) error
}

// Ticket is a player-submitted support ticket (GM queue).
type Ticket struct {
	ID            int64
	CharacterGuid uint64
	Message       string
	CreatedAt     time.Time
}

type TicketStore interface {
	Add(ctx context.Context, t *Ticket) (int64, error)
	GetByID(ctx context.Context, id int64) (*Ticket, error)
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]Ticket, error)
}

type Group struct {
	ID        int64
	LeaderGuid uint64
	Members   []uint64
}

type GroupStore interface {
	Create(ctx context.Context, leaderGuid uint64) (*Group, error)
	AddMember(ctx context.Context, groupID int64, characterGuid uint64) error
	RemoveMember(ctx context.Context, groupID int64, characterGuid uint64) error
	ListMembers(ctx context.Context, groupID int64) ([]uint64, error)
	Destroy(ctx context.Context, groupID int64) error
}

type Guild struct {
	ID       int64
	Name     string
	LeaderGuid uint64
}

// Petition is a guild-founding petition. SignaturesRequired is the
// minimum-signature threshold; reaching it is a handler concern, not
// something this contract enforces.
type Petition struct {
	ID                 int64
	ItemGuid           uint64
	OwnerGuid          uint64
	GuildName          string
	Signatures         []uint64
	SignaturesRequired int
}

type GuildStore interface {
	Create(ctx context.Context, name string, leaderGuid uint64) (*Guild, error)
	AddMember(ctx context.Context, guildID int64, characterGuid uint64) error
	RemoveMember(ctx context.Context, guildID int64, characterGuid uint64) error
	ListMembers(ctx context.Context, guildID int64) ([]uint64, error)
	Update(ctx context.Context, g *Guild) error
	Destroy(ctx context.Context, guildID int64) error
	GuildAccounts(ctx context.Context, guildID int64) ([]int64, error)

	CreatePetition(ctx context.Context, p *Petition) (int64, error)
	GetPetitionByItemGuid(ctx context.Context, itemGuid uint64) (*Petition, error)
	GetPetitionsByOwner(ctx context.Context, ownerGuid uint64) ([]Petition, error)
	GetPetitionByName(ctx context.Context, guildName string) (*Petition, error)
	UpdatePetition(ctx context.Context, p *Petition) error
	DestroyPetition(ctx context.Context, id int64) error
}
