package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"bookcatalog/internal/entity"
)

// SQLiteStore keeps the serialized collection in a single-row table, so a
// save is one transactional row replacement.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite catalog: %w", err)
	}
	const schema = `CREATE TABLE IF NOT EXISTS catalog (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		data BLOB NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init sqlite catalog: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) ([]entity.Record, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM catalog WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return []entity.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load sqlite catalog: %w", err)
	}
	return decodeRecords(data)
}

func (s *SQLiteStore) Save(ctx context.Context, records []entity.Record) error {
	data, err := encodeRecords(records)
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save sqlite catalog: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO catalog (id, data) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data`, data)
	if err != nil {
		return fmt.Errorf("save sqlite catalog: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save sqlite catalog: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
