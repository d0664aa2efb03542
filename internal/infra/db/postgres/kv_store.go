package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const schema = `
CREATE TABLE IF NOT EXISTS workspace_kv (
  tenant_id  TEXT        NOT NULL,
  kv_key     TEXT        NOT NULL,
  kv_value   BYTEA       NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  PRIMARY KEY (tenant_id, kv_key)
)`

type KVStore struct{ db *sql.DB }

func NewKVStore(db *sql.DB) *KVStore { return &KVStore{db: db} }

func (s *KVStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create workspace_kv: %w", err)
	}
	return nil
}

// Get returns nil, nil when the key does not exist
func (s *KVStore) Get(ctx context.Context, tenant, key string) ([]byte, error) {
	const q = `SELECT kv_value FROM workspace_kv WHERE tenant_id = $1 AND kv_key = $2`

	var value []byte
	err := s.db.QueryRowContext(ctx, q, tenant, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", tenant, key, err)
	}
	return value, nil
}

func (s *KVStore) Set(ctx context.Context, tenant, key string, value []byte) error {
	const q = `
INSERT INTO workspace_kv (tenant_id, kv_key, kv_value, updated_at)
VALUES ($1,$2,$3,$4)
ON CONFLICT (tenant_id, kv_key) DO UPDATE SET
 kv_value = EXCLUDED.kv_value,
 updated_at = EXCLUDED.updated_at;`

	if _, err := s.db.ExecContext(ctx, q, tenant, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("set %s/%s: %w", tenant, key, err)
	}
	return nil
}

func (s *KVStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }
