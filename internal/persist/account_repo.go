package persist

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// AccountRepo is the Postgres-backed AccountStore, using the same
// bcrypt + pgx pattern as the rest of this package, generalized to
// the try_login/create/characters_of contract shape.
type AccountRepo struct {
	db *DB
}

func NewAccountRepo(db *DB) *AccountRepo {
	return &AccountRepo{db: db}
}

var _ AccountStore = (*AccountRepo)(nil)

func (r *AccountRepo) TryLogin(ctx context.Context, name, password, ip string) (LoginStatus, *AccountHandle, error) {
	var id int64
	var hash string
	err := r.db.Pool.QueryRow(ctx,
		`SELECT id, password_hash FROM accounts WHERE name = $1`, name,
	).Scan(&id, &hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return LoginNoSuchUser, nil, nil
	}
	if err != nil {
		return LoginNoSuchUser, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return LoginBadPassword, nil, nil
	}

	if _, err := r.db.Pool.Exec(ctx,
		`UPDATE accounts SET last_active = NOW(), ip = $2 WHERE id = $1`, id, ip,
	); err != nil {
		return LoginSuccess, nil, err
	}
	return LoginSuccess, &AccountHandle{ID: id, Name: name, IP: ip}, nil
}

func (r *AccountRepo) Create(ctx context.Context, name, password, ip string) (*AccountHandle, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	var id int64
	now := time.Now()
	err = r.db.Pool.QueryRow(ctx,
		`INSERT INTO accounts (name, password_hash, ip, last_active)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		name, string(hash), ip, now,
	).Scan(&id)
	if err != nil {
		return nil, err
	}
	return &AccountHandle{ID: id, Name: name, IP: ip}, nil
}

func (r *AccountRepo) CharactersOf(ctx context.Context, accountID int64) ([]CharacterSummary, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT guid, name, level, map_id FROM characters
		 WHERE account_id = $1 AND deleted_at IS NULL ORDER BY guid`, accountID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CharacterSummary
	for rows.Next() {
		var s CharacterSummary
		if err := rows.Scan(&s.Guid, &s.Name, &s.Level, &s.MapID); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
