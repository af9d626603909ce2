package draft

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

const draftsSchema = `
CREATE TABLE IF NOT EXISTS goods_drafts (
    draft_key  VARCHAR(64) NOT NULL PRIMARY KEY,
    payload    MEDIUMBLOB  NOT NULL,
    expires_at DATETIME    NOT NULL,
    updated_at DATETIME    NOT NULL
)`

type draftRecord struct {
	Key       string    `db:"draft_key"`
	Payload   []byte    `db:"payload"`
	ExpiresAt time.Time `db:"expires_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// MySQLKV stores drafts in the goods_drafts table.
type MySQLKV struct {
	DB *sqlx.DB
}

func NewMySQLKV(db *sqlx.DB) *MySQLKV {
	return &MySQLKV{DB: db}
}

// EnsureSchema creates the goods_drafts table if it is missing.
func (m *MySQLKV) EnsureSchema(ctx context.Context) error {
	_, err := m.DB.ExecContext(ctx, draftsSchema)
	return err
}

func (m *MySQLKV) Get(ctx context.Context, key string) ([]byte, error) {
	var rec draftRecord
	query := `SELECT draft_key, payload, expires_at, updated_at FROM goods_drafts WHERE draft_key = ? AND expires_at > ? LIMIT 1`
	err := m.DB.GetContext(ctx, &rec, query, key, time.Now().UTC())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec.Payload, nil
}

func (m *MySQLKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	now := time.Now().UTC()
	rec := draftRecord{Key: key, Payload: value, ExpiresAt: now.Add(ttl), UpdatedAt: now}
	query := `
        INSERT INTO goods_drafts (draft_key, payload, expires_at, updated_at)
        VALUES (:draft_key, :payload, :expires_at, :updated_at)
        ON DUPLICATE KEY UPDATE payload = VALUES(payload), expires_at = VALUES(expires_at), updated_at = VALUES(updated_at)
    `
	_, err := m.DB.NamedExecContext(ctx, query, rec)
	return err
}

func (m *MySQLKV) Delete(ctx context.Context, key string) error {
	_, err := m.DB.ExecContext(ctx, `DELETE FROM goods_drafts WHERE draft_key = ?`, key)
	return err
}
