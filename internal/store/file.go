package store

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"bookcatalog/internal/entity"
)

// FileStore persists the collection as a single JSON array on disk.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads and decodes the whole collection. A missing file is an empty
// collection, not an error. Numbers decode as json.Number so that ids and
// download counts survive a load/save round trip verbatim.
func (s *FileStore) Load(ctx context.Context) ([]entity.Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []entity.Record{}, nil
		}
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return decodeRecords(data)
}

// Save writes the full collection to a temp file in the target directory and
// renames it over the catalog file, so a crash mid-write never leaves a
// truncated catalog behind.
func (s *FileStore) Save(ctx context.Context, records []entity.Record) error {
	data, err := encodeRecords(records)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp catalog file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write catalog file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync catalog file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close catalog file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace catalog file: %w", err)
	}
	return nil
}

func decodeRecords(data []byte) ([]entity.Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []entity.Record{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var records []entity.Record
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if records == nil {
		records = []entity.Record{}
	}
	return records, nil
}

func encodeRecords(records []entity.Record) ([]byte, error) {
	if records == nil {
		records = []entity.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	return data, nil
}
