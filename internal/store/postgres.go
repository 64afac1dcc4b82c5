package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookcatalog/internal/entity"
)

// PostgresStore keeps the serialized collection in a single jsonb row.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	const schema = `CREATE TABLE IF NOT EXISTS catalog (
		id INT PRIMARY KEY CHECK (id = 1),
		data JSONB NOT NULL
	)`
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("init postgres catalog: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Load(ctx context.Context) ([]entity.Record, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM catalog WHERE id = 1`).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return []entity.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load postgres catalog: %w", err)
	}
	return decodeRecords(data)
}

func (s *PostgresStore) Save(ctx context.Context, records []entity.Record) error {
	data, err := encodeRecords(records)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO catalog (id, data) VALUES (1, $1)
		 ON CONFLICT (id) DO UPDATE SET data = excluded.data`, data)
	if err != nil {
		return fmt.Errorf("save postgres catalog: %w", err)
	}
	return nil
}
