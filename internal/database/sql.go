package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// SQLStore persists blobs in a single kv table. It serves both the
// postgres and sqlite drivers; queries are written with ? and rebound
// to the driver's placeholder style.
type SQLStore struct {
	db *sqlx.DB

	selectQuery string
	upsertQuery string
	deleteQuery string
}

func newSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{
		db:          db,
		selectQuery: db.Rebind(`SELECT value FROM kv WHERE key = ?`),
		upsertQuery: db.Rebind(`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`),
		deleteQuery: db.Rebind(`DELETE FROM kv WHERE key = ?`),
	}
}

// DB exposes the connection pool.
func (s *SQLStore) DB() *sqlx.DB {
	return s.db
}

func (s *SQLStore) Read(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.GetContext(ctx, &value, s.selectQuery, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (s *SQLStore) Write(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, s.upsertQuery, key, value)
	return err
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, s.deleteQuery, key)
	return err
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
