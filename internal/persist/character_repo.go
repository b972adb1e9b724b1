package persist

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// CharacterRepo is the Postgres-backed CharacterStore, following the
// same query/scan structure as this package's other repos, built
// against a guid-keyed Character shape rather than a game-specific
// stat block.
type CharacterRepo struct {
	db *DB
}

func NewCharacterRepo(db *DB) *CharacterRepo {
	return &CharacterRepo{db: db}
}

var _ CharacterStore = (*CharacterRepo)(nil)

const characterColumns = `guid, account_id, name, level, max_health, health, xp, map_id, x, y, z, o, deleted_at`

func scanCharacter(row pgx.Row) (*Character, error) {
	c := &Character{}
	err := row.Scan(
		&c.Guid, &c.AccountID, &c.Name, &c.Level, &c.MaxHealth, &c.Health, &c.XP,
		&c.MapID, &c.X, &c.Y, &c.Z, &c.O, &c.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CharacterRepo) GetByGuid(ctx context.Context, guid uint64) (*Character, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT `+characterColumns+` FROM characters WHERE guid = $1 AND deleted_at IS NULL`, guid)
	return scanCharacter(row)
}

func (r *CharacterRepo) GetByName(ctx context.Context, name string) (*Character, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT `+characterColumns+` FROM characters WHERE name = $1 AND deleted_at IS NULL`, name)
	return scanCharacter(row)
}

func (r *CharacterRepo) NameExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM characters WHERE name = $1)`, name,
	).Scan(&exists)
	return exists, err
}

func (r *CharacterRepo) Create(ctx context.Context, c *Character) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO characters (guid, account_id, name, level, max_health, health, xp, map_id, x, y, z, o)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12) RETURNING guid`,
		c.Guid, c.AccountID, c.Name, c.Level, c.MaxHealth, c.Health, c.XP, c.MapID, c.X, c.Y, c.Z, c.O,
	).Scan(&c.Guid)
}

// Update is last-writer-wins; no optimistic concurrency is provided.
func (r *CharacterRepo) Update(ctx context.Context, c *Character) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE characters SET
			level = $1, max_health = $2, health = $3, xp = $4,
			map_id = $5, x = $6, y = $7, z = $8, o = $9
		 WHERE guid = $10`,
		c.Level, c.MaxHealth, c.Health, c.XP, c.MapID, c.X, c.Y, c.Z, c.O, c.Guid,
	)
	return err
}

// Delete soft-deletes the character row and explicitly cascades to
// every child table — no foreign-key cascade is assumed, so the core
// issues each delete itself, in one transaction. A second call against
// an already-deleted guid returns ErrNotFound as a benign signal
// rather than failing.
func (r *CharacterRepo) Delete(ctx context.Context, guid uint64) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE characters SET deleted_at = NOW() WHERE guid = $1 AND deleted_at IS NULL`, guid)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	for _, stmt := range []string{
		`DELETE FROM inventory_items WHERE owner_guid = $1`,
		`DELETE FROM deathbinds WHERE character_guid = $1`,
		`DELETE FROM social_entries WHERE character_guid = $1`,
		`DELETE FROM character_skills WHERE character_guid = $1`,
		`DELETE FROM character_spells WHERE character_guid = $1`,
		`DELETE FROM character_quest_state WHERE character_guid = $1`,
		`DELETE FROM character_reputation WHERE character_guid = $1`,
	} {
		if _, err := tx.Exec(ctx, stmt, guid); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
