package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// SQLiteRepository keeps the saved state in a key/value table.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository returns a repository bound to db.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// InitDatabase opens (creating if needed) the local state database.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	_, err = db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS state (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	if err != nil {
		return nil, fmt.Errorf("failed to init state table: %w", err)
	}
	return db, nil
}

func (r *SQLiteRepository) set(ctx context.Context, tx *sql.Tx, key string, value []byte) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set state[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get state[%s]: %w", key, err)
	}
	return value, nil
}

// Save writes token, user and preferences in one transaction.
func (r *SQLiteRepository) Save(ctx context.Context, s Saved) (err error) {
	user, err := json.Marshal(s.User)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	prefs, err := json.Marshal(s.Preferences)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	if err = r.set(ctx, tx, "token", []byte(s.Token)); err != nil {
		return err
	}
	if err = r.set(ctx, tx, "user", user); err != nil {
		return err
	}
	if err = r.set(ctx, tx, "preferences", prefs); err != nil {
		return err
	}
	return nil
}

// Load restores the saved state, or ErrNoSession when no token is
// persisted.
func (r *SQLiteRepository) Load(ctx context.Context) (*Saved, error) {
	token, err := r.get(ctx, "token")
	if err != nil {
		return nil, err
	}
	if len(token) == 0 {
		return nil, ErrNoSession
	}

	s := &Saved{Token: string(token)}

	user, err := r.get(ctx, "user")
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(user, &s.User); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}

	prefs, err := r.get(ctx, "preferences")
	if err != nil {
		return nil, err
	}
	if len(prefs) > 0 {
		if err := json.Unmarshal(prefs, &s.Preferences); err != nil {
			return nil, fmt.Errorf("failed to decode preferences: %w", err)
		}
	}
	return s, nil
}

// Clear wipes the saved state (logout, forced or not).
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM state`)
	if err != nil {
		return fmt.Errorf("failed to clear state: %w", err)
	}
	return nil
}

var _ Repository = (*SQLiteRepository)(nil)
