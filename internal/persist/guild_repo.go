package persist

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// GuildRepo backs GuildStore, including the petition lifecycle:
// petitions carry a signature list and a required threshold, but
// reaching the threshold and converting a petition into a guild is a
// handler concern, out of scope for this contract.
type GuildRepo struct {
	db *DB
}

func NewGuildRepo(db *DB) *GuildRepo {
	return &GuildRepo{db: db}
}

var _ GuildStore = (*GuildRepo)(nil)

func (r *GuildRepo) Create(ctx context.Context, name string, leaderGuid uint64) (*Guild, error) {
	var id int64
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO guilds (name, leader_guid) VALUES ($1,$2) RETURNING id`, name, leaderGuid,
	).Scan(&id)
	if err != nil {
		return nil, err
	}
	if err := r.AddMember(ctx, id, leaderGuid); err != nil {
		return nil, err
	}
	return &Guild{ID: id, Name: name, LeaderGuid: leaderGuid}, nil
}

func (r *GuildRepo) AddMember(ctx context.Context, guildID int64, characterGuid uint64) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO guild_members (guild_id, character_guid) VALUES ($1,$2) ON CONFLICT DO NOTHING`,
		guildID, characterGuid)
	return err
}

func (r *GuildRepo) RemoveMember(ctx context.Context, guildID int64, characterGuid uint64) error {
	_, err := r.db.Pool.Exec(ctx,
		`DELETE FROM guild_members WHERE guild_id = $1 AND character_guid = $2`, guildID, characterGuid)
	return err
}

func (r *GuildRepo) ListMembers(ctx context.Context, guildID int64) ([]uint64, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT character_guid FROM guild_members WHERE guild_id = $1`, guildID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []uint64
	for rows.Next() {
		var g uint64
		if err := rows.Scan(&g); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *GuildRepo) Update(ctx context.Context, g *Guild) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE guilds SET name = $1, leader_guid = $2 WHERE id = $3`, g.Name, g.LeaderGuid, g.ID)
	return err
}

// Destroy is called by guild master action, unlike groups which
// self-destroy when the last member leaves.
func (r *GuildRepo) Destroy(ctx context.Context, guildID int64) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM guilds WHERE id = $1`, guildID)
	return err
}

func (r *GuildRepo) GuildAccounts(ctx context.Context, guildID int64) ([]int64, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT DISTINCT c.account_id FROM guild_members gm
		 JOIN characters c ON c.guid = gm.character_guid
		 WHERE gm.guild_id = $1`, guildID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var a int64
		if err := rows.Scan(&a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *GuildRepo) CreatePetition(ctx context.Context, p *Petition) (int64, error) {
	var id int64
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO guild_petitions (item_guid, owner_guid, guild_name, signatures_required)
		 VALUES ($1,$2,$3,$4) RETURNING id`,
		p.ItemGuid, p.OwnerGuid, p.GuildName, p.SignaturesRequired,
	).Scan(&id)
	return id, err
}

func scanPetition(row pgx.Row) (*Petition, error) {
	p := &Petition{}
	var sigs []int64
	err := row.Scan(&p.ID, &p.ItemGuid, &p.OwnerGuid, &p.GuildName, &sigs, &p.SignaturesRequired)
	if err != nil {
		return nil, ErrNotFound
	}
	p.Signatures = make([]uint64, len(sigs))
	for i, s := range sigs {
		p.Signatures[i] = uint64(s)
	}
	return p, nil
}

const petitionColumns = `id, item_guid, owner_guid, guild_name, signatures, signatures_required`

func (r *GuildRepo) GetPetitionByItemGuid(ctx context.Context, itemGuid uint64) (*Petition, error) {
	row := r.db.Pool.QueryRow(ctx, `SELECT `+petitionColumns+` FROM guild_petitions WHERE item_guid = $1`, itemGuid)
	return scanPetition(row)
}

func (r *GuildRepo) GetPetitionsByOwner(ctx context.Context, ownerGuid uint64) ([]Petition, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT `+petitionColumns+` FROM guild_petitions WHERE owner_guid = $1`, ownerGuid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Petition
	for rows.Next() {
		p, err := scanPetition(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *GuildRepo) GetPetitionByName(ctx context.Context, guildName string) (*Petition, error) {
	row := r.db.Pool.QueryRow(ctx, `SELECT `+petitionColumns+` FROM guild_petitions WHERE guild_name = $1`, guildName)
	return scanPetition(row)
}

func (r *GuildRepo) UpdatePetition(ctx context.Context, p *Petition) error {
	sigs := make([]int64, len(p.Signatures))
	for i, s := range p.Signatures {
		sigs[i] = int64(s)
	}
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE guild_petitions SET signatures = $1 WHERE id = $2`, sigs, p.ID)
	return err
}

func (r *GuildRepo) DestroyPetition(ctx context.Context, id int64) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM guild_petitions WHERE id = $1`, id)
	return err
}
