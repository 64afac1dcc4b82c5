package main

import (
	"bytes"
	"context"
	"flag"
	"log"
	"os"

	json "github.com/goccy/go-json"
	"github.com/joho/godotenv"

	"bookcatalog/internal/entity"
	"bookcatalog/internal/store"
)

// Seeds the catalog from a Gutendex-style dump: either a bare JSON array of
// records or an object with a "results" array. Records without an id get one
// assigned, continuing past the highest id in the dump.
func main() {
	_ = godotenv.Load(".env.local")

	dumpPath := flag.String("dump", "books.json", "path to the JSON dump to import")
	target := flag.String("out", "catalog.json", "catalog file to write")
	flag.Parse()

	ctx := context.Background()

	records, err := readDump(*dumpPath)
	if err != nil {
		log.Fatalf("cannot read dump: %v", err)
	}

	assignMissingIDs(records)

	catalogStore := store.NewFileStore(*target)
	if err := catalogStore.Save(ctx, records); err != nil {
		log.Fatalf("cannot write catalog: %v", err)
	}
	log.Printf("seeded %d records into %s", len(records), *target)
}

func readDump(path string) ([]entity.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var wrapper struct {
			Results []entity.Record `json:"results"`
		}
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.UseNumber()
		if err := dec.Decode(&wrapper); err != nil {
			return nil, err
		}
		return wrapper.Results, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var records []entity.Record
	if err := dec.Decode(&records); err != nil {
		return nil, err
	}
	return records, nil
}

func assignMissingIDs(records []entity.Record) {
	var maxID int64
	for _, r := range records {
		if id, ok := r.ID(); ok && id > maxID {
			maxID = id
		}
	}
	for _, r := range records {
		if _, ok := r.ID(); !ok {
			maxID++
			r["id"] = maxID
		}
	}
}
