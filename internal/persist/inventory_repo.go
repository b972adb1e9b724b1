package persist

import "context"

// InventoryRepo is the Postgres-backed InventoryStore; DeathbindRepo
// below backs DeathbindStore. Grouped in one file because both are small,
// single-table, character-scoped stores.
type InventoryRepo struct {
	db *DB
}

func NewInventoryRepo(db *DB) *InventoryRepo {
	return &InventoryRepo{db: db}
}

var _ InventoryStore = (*InventoryRepo)(nil)

func (r *InventoryRepo) ListByOwner(ctx context.Context, ownerGuid uint64) ([]InventoryItem, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT guid, owner_guid, COALESCE(container_guid, 0), slot, entry, stack_count
		 FROM inventory_items WHERE owner_guid = $1 ORDER BY slot`, ownerGuid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []InventoryItem
	for rows.Next() {
		var it InventoryItem
		if err := rows.Scan(&it.Guid, &it.OwnerGuid, &it.ContainerGuid, &it.Slot, &it.Entry, &it.StackCount); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *InventoryRepo) Upsert(ctx context.Context, item *InventoryItem) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO inventory_items (guid, owner_guid, container_guid, slot, entry, stack_count)
		 VALUES ($1,$2,NULLIF($3,0),$4,$5,$6)
		 ON CONFLICT (guid) DO UPDATE SET
			owner_guid = EXCLUDED.owner_guid, container_guid = EXCLUDED.container_guid,
			slot = EXCLUDED.slot, stack_count = EXCLUDED.stack_count`,
		item.Guid, item.OwnerGuid, item.ContainerGuid, item.Slot, item.Entry, item.StackCount)
	return err
}

func (r *InventoryRepo) Delete(ctx context.Context, itemGuid uint64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM inventory_items WHERE guid = $1`, itemGuid)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeathbindRepo is the Postgres-backed DeathbindStore.
type DeathbindRepo struct {
	db *DB
}

func NewDeathbindRepo(db *DB) *DeathbindRepo {
	return &DeathbindRepo{db: db}
}

var _ DeathbindStore = (*DeathbindRepo)(nil)

func (r *DeathbindRepo) Get(ctx context.Context, characterGuid uint64) (*Deathbind, error) {
	d := &Deathbind{CharacterGuid: characterGuid}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT map_id, x, y, z FROM deathbinds WHERE character_guid = $1`, characterGuid,
	).Scan(&d.MapID, &d.X, &d.Y, &d.Z)
	if err != nil {
		return nil, ErrNotFound
	}
	return d, nil
}

func (r *DeathbindRepo) Set(ctx context.Context, bind *Deathbind) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO deathbinds (character_guid, map_id, x, y, z)
		 VALUES ($1,$2,$3,$4,$5)
		 ON CONFLICT (character_guid) DO UPDATE SET
			map_id = EXCLUDED.map_id, x = EXCLUDED.x, y = EXCLUDED.y, z = EXCLUDED.z`,
		bind.CharacterGuid, bind.MapID, bind.X, bind.Y, bind.Z)
	return err
}
