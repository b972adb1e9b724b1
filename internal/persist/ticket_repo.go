package persist

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// TicketRepo backs TicketStore — the GM support-ticket queue.
type TicketRepo struct {
	db *DB
}

func NewTicketRepo(db *DB) *TicketRepo {
	return &TicketRepo{db: db}
}

var _ TicketStore = (*TicketRepo)(nil)

func (r *TicketRepo) Add(ctx context.Context, t *Ticket) (int64, error) {
	var id int64
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO tickets (character_guid, message, created_at) VALUES ($1,$2,NOW()) RETURNING id, created_at`,
		t.CharacterGuid, t.Message,
	).Scan(&id, &t.CreatedAt)
	return id, err
}

func (r *TicketRepo) GetByID(ctx context.Context, id int64) (*Ticket, error) {
	t := &Ticket{ID: id}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT character_guid, message, created_at FROM tickets WHERE id = $1`, id,
	).Scan(&t.CharacterGuid, &t.Message, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Delete is idempotent: deleting an already-removed ticket returns
// ErrNotFound as a benign signal rather than failing.
func (r *TicketRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TicketRepo) ListAll(ctx context.Context) ([]Ticket, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, character_guid, message, created_at FROM tickets ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Ticket
	for rows.Next() {
		var t Ticket
		if err := rows.Scan(&t.ID, &t.CharacterGuid, &t.Message, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
