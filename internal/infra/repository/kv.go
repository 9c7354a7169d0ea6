package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"restock-sentinel/internal/infra"
	"restock-sentinel/internal/pkg/clock"

	"github.com/jackc/pgx/v5"
)

// KVStore is the ephemeral key-value surface backing idempotency locks and
// hot-window announcements. Entries carry an absolute expiry; expired rows
// are treated as absent and may be overwritten in place, so no background
// sweeper is strictly required (DeleteExpired exists for hygiene).
type KVStore struct {
	db    DBTX
	clock clock.Clock
}

func NewKVStore(db DBTX, clk clock.Clock) *KVStore {
	return &KVStore{db: db, clock: clk}
}

const setNXSQL = `
INSERT INTO kv_entries (key, value, expires_at)
VALUES ($1, $2, $3)
ON CONFLICT (key) DO UPDATE
	SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at
	WHERE kv_entries.expires_at <= $4`

// SetNX stores value under key only if the key is absent or expired.
// Returns true when this caller won the slot.
func (s *KVStore) SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	now := s.clock.Now()
	tag, err := s.db.Exec(ctx, setNXSQL, key, value, now.Add(ttl), now)
	if err != nil {
		return false, infra.WrapRepoErr("failed to set kv entry", err)
	}
	return tag.RowsAffected() > 0, nil
}

const getKVSQL = `
SELECT value FROM kv_entries WHERE key = $1 AND expires_at > $2`

// GetJSON unmarshals the live value under key into dest. Returns false with
// no error when the key is absent or expired: that is a normal condition for
// both consumers, not a failure.
func (s *KVStore) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	var raw []byte
	err := s.db.QueryRow(ctx, getKVSQL, key, s.clock.Now()).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, infra.WrapRepoErr("failed to read kv entry", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, infra.WrapRepoErr("failed to decode kv entry", err)
	}
	return true, nil
}

const deleteExpiredKVSQL = `
DELETE FROM kv_entries WHERE expires_at <= $1`

func (s *KVStore) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := s.db.Exec(ctx, deleteExpiredKVSQL, s.clock.Now())
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired kv entries", err)
	}
	return tag.RowsAffected(), nil
}
