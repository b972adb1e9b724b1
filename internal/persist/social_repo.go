package persist

import (
	"context"
	"encoding/json"
	"fmt"
)

// SocialRepo backs SocialStore, SkillStore, SpellStore, QuestStateStore
// and ReputationStore — five small character-scoped tables grouped
// into one repo type since each is a handful of queries.
type SocialRepo struct {
	db *DB
}

func NewSocialRepo(db *DB) *SocialRepo {
	return &SocialRepo{db: db}
}

var (
	_ SocialStore     = (*SocialRepo)(nil)
	_ SkillStore      = (*SocialRepo)(nil)
	_ SpellStore      = (*SocialRepo)(nil)
	_ QuestStateStore = (*SocialRepo)(nil)
	_ ReputationStore = (*SocialRepo)(nil)
)

func (r *SocialRepo) ListFor(ctx context.Context, characterGuid uint64) ([]SocialEntry, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT character_guid, other_guid, ignored FROM social_entries WHERE character_guid = $1`, characterGuid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SocialEntry
	for rows.Next() {
		var e SocialEntry
		if err := rows.Scan(&e.CharacterGuid, &e.OtherGuid, &e.Ignored); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *SocialRepo) Add(ctx context.Context, e *SocialEntry) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO social_entries (character_guid, other_guid, ignored)
		 VALUES ($1,$2,$3)
		 ON CONFLICT (character_guid, other_guid) DO UPDATE SET ignored = EXCLUDED.ignored`,
		e.CharacterGuid, e.OtherGuid, e.Ignored)
	return err
}

func (r *SocialRepo) Remove(ctx context.Context, characterGuid, otherGuid uint64) error {
	_, err := r.db.Pool.Exec(ctx,
		`DELETE FROM social_entries WHERE character_guid = $1 AND other_guid = $2`, characterGuid, otherGuid)
	return err
}

func (r *SocialRepo) SkillsOf(ctx context.Context, characterGuid uint64) (map[uint32]uint32, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT skill_id, level FROM character_skills WHERE character_guid = $1`, characterGuid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uint32]uint32)
	for rows.Next() {
		var id, level uint32
		if err := rows.Scan(&id, &level); err != nil {
			return nil, err
		}
		out[id] = level
	}
	return out, rows.Err()
}

func (r *SocialRepo) SetSkill(ctx context.Context, characterGuid uint64, skillID, level uint32) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO character_skills (character_guid, skill_id, level)
		 VALUES ($1,$2,$3)
		 ON CONFLICT (character_guid, skill_id) DO UPDATE SET level = EXCLUDED.level`,
		characterGuid, skillID, level)
	return err
}

func (r *SocialRepo) SpellsOf(ctx context.Context, characterGuid uint64) ([]uint32, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT spell_id FROM character_spells WHERE character_guid = $1`, characterGuid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []uint32
	for rows.Next() {
		var id uint32
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *SocialRepo) AddSpell(ctx context.Context, characterGuid uint64, spellID uint32) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO character_spells (character_guid, spell_id) VALUES ($1,$2) ON CONFLICT DO NOTHING`,
		characterGuid, spellID)
	return err
}

func (r *SocialRepo) RemoveSpell(ctx context.Context, characterGuid uint64, spellID uint32) error {
	_, err := r.db.Pool.Exec(ctx,
		`DELETE FROM character_spells WHERE character_guid = $1 AND spell_id = $2`, characterGuid, spellID)
	return err
}

func (r *SocialRepo) QuestStatesOf(ctx context.Context, characterGuid uint64) ([]QuestState, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT quest_entry, status, objectives FROM character_quest_state WHERE character_guid = $1`, characterGuid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []QuestState
	for rows.Next() {
		q := QuestState{CharacterGuid: characterGuid}
		var objJSON []byte
		if err := rows.Scan(&q.QuestEntry, &q.Status, &objJSON); err != nil {
			return nil, err
		}
		q.Objectives = decodeObjectives(objJSON)
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *SocialRepo) UpsertQuestState(ctx context.Context, s *QuestState) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO character_quest_state (character_guid, quest_entry, status, objectives)
		 VALUES ($1,$2,$3,$4)
		 ON CONFLICT (character_guid, quest_entry) DO UPDATE SET
			status = EXCLUDED.status, objectives = EXCLUDED.objectives`,
		s.CharacterGuid, s.QuestEntry, s.Status, encodeObjectives(s.Objectives))
	return err
}

func (r *SocialRepo) ReputationOf(ctx context.Context, characterGuid uint64) (map[uint32]int32, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT faction_id, standing FROM character_reputation WHERE character_guid = $1`, characterGuid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uint32]int32)
	for rows.Next() {
		var id uint32
		var standing int32
		if err := rows.Scan(&id, &standing); err != nil {
			return nil, err
		}
		out[id] = standing
	}
	return out, rows.Err()
}

func (r *SocialRepo) SetReputation(ctx context.Context, characterGuid uint64, factionID uint32, standing int32) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO character_reputation (character_guid, faction_id, standing)
		 VALUES ($1,$2,$3)
		 ON CONFLICT (character_guid, faction_id) DO UPDATE SET standing = EXCLUDED.standing`,
		characterGuid, factionID, standing)
	return err
}

func encodeObjectives(m map[uint32]uint32) []byte {
	data, err := json.Marshal(m)
	if err != nil {
		return []byte("{}")
	}
	return data
}

func decodeObjectives(raw []byte) map[uint32]uint32 {
	out := make(map[uint32]uint32)
	if len(raw) == 0 {
		return out
	}
	var m map[string]uint32
	if err := json.Unmarshal(raw, &m); err != nil {
		return out
	}
	for k, v := range m {
		var id uint32
		if _, err := fmt.Sscanf(k, "%d", &id); err == nil {
			out[id] = v
		}
	}
	return out
}
