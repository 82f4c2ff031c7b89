package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/artart33/travel-logger/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore persists the snapshot as a single jsonb row in the snapshots
// table, keyed by slot name. It exists for deployments that want the journal
// data in a managed database; the whole-collection-per-write contract is the
// same as the file backend's.
type PostgresStore struct {
	db db
}

// NewPostgresStore constructs a PostgresStore backed by the provided db
// connection. In production pass *pgxpool.Pool; in tests pass a pgx.Tx for
// rollback isolation.
func NewPostgresStore(db db) *PostgresStore {
	return &PostgresStore{db: db}
}

// Load reads and decodes the slot row. A missing row loads as an empty
// collection.
func (s *PostgresStore) Load(ctx context.Context) ([]domain.Entry, error) {
	const q = `SELECT data FROM snapshots WHERE slot = @slot`

	var data []byte
	err := s.db.QueryRow(ctx, q, pgx.NamedArgs{"slot": Slot}).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Entry{}, nil
		}
		return nil, fmt.Errorf("snapshot.PostgresStore.Load: %w: %w", domain.ErrStorage, err)
	}

	var entries []domain.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("snapshot.PostgresStore.Load: decode: %w: %w", domain.ErrStorage, err)
	}
	if entries == nil {
		entries = []domain.Entry{}
	}
	return entries, nil
}

// Save upserts the slot row with the full serialized collection.
func (s *PostgresStore) Save(ctx context.Context, entries []domain.Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("snapshot.PostgresStore.Save: encode: %w: %w", domain.ErrStorage, err)
	}

	const q = `
		INSERT INTO snapshots (slot, data, updated_at)
		VALUES (@slot, @data, now())
		ON CONFLICT (slot) DO UPDATE
		SET data = excluded.data, updated_at = now()`

	if _, err := s.db.Exec(ctx, q, pgx.NamedArgs{"slot": Slot, "data": data}); err != nil {
		return fmt.Errorf("snapshot.PostgresStore.Save: %w: %w", domain.ErrStorage, err)
	}
	return nil
}

// Available probes the connection with a trivial query.
func (s *PostgresStore) Available(ctx context.Context) bool {
	var one int
	return s.db.QueryRow(ctx, `SELECT 1`).Scan(&one) == nil
}
