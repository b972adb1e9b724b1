package persist

import "context"

// GroupRepo backs GroupStore: create / add_member / remove_member /
// list_members / destroy, destroyed when the last member leaves.
type GroupRepo struct {
	db *DB
}

func NewGroupRepo(db *DB) *GroupRepo {
	return &GroupRepo{db: db}
}

var _ GroupStore = (*GroupRepo)(nil)

func (r *GroupRepo) Create(ctx context.Context, leaderGuid uint64) (*Group, error) {
	var id int64
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO groups (leader_guid) VALUES ($1) RETURNING id`, leaderGuid,
	).Scan(&id)
	if err != nil {
		return nil, err
	}
	if err := r.AddMember(ctx, id, leaderGuid); err != nil {
		return nil, err
	}
	return &Group{ID: id, LeaderGuid: leaderGuid, Members: []uint64{leaderGuid}}, nil
}

func (r *GroupRepo) AddMember(ctx context.Context, groupID int64, characterGuid uint64) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO group_members (group_id, character_guid) VALUES ($1,$2) ON CONFLICT DO NOTHING`,
		groupID, characterGuid)
	return err
}

// RemoveMember drops a member and destroys the group once empty (spec
// §3 — "destroyed when last member leaves").
func (r *GroupRepo) RemoveMember(ctx context.Context, groupID int64, characterGuid uint64) error {
	if _, err := r.db.Pool.Exec(ctx,
		`DELETE FROM group_members WHERE group_id = $1 AND character_guid = $2`, groupID, characterGuid); err != nil {
		return err
	}
	members, err := r.ListMembers(ctx, groupID)
	if err != nil {
		return err
	}
	if len(members) == 0 {
		return r.Destroy(ctx, groupID)
	}
	return nil
}

func (r *GroupRepo) ListMembers(ctx context.Context, groupID int64) ([]uint64, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT character_guid FROM group_members WHERE group_id = $1`, groupID)
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

func (r *GroupRepo) Destroy(ctx context.Context, groupID int64) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM groups WHERE id = $1`, groupID)
	return err
}
