package punchcard

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/buntdb"
)

// BuntStore keeps every subject's sheet bytes in a single buntdb database,
// one value per subject.
type BuntStore struct {
	db *buntdb.DB
}

// OpenBuntStore opens the database file, creating it and any missing parent
// directories on first use. Pass ":memory:" for an ephemeral store.
func OpenBuntStore(path string) (*BuntStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create sheet directory: %w", err)
		}
	}
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sheet database: %w", err)
	}
	return &BuntStore{db: db}, nil
}

func sheetKey(subject string) string {
	return "sheet:" + subject
}

func (s *BuntStore) Load(subject string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(tx *buntdb.Tx) error {
		v, err := tx.Get(sheetKey(subject))
		if err != nil {
			return err
		}
		data = []byte(v)
		return nil
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	return data, nil
}

func (s *BuntStore) Save(subject string, data []byte) error {
	return s.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(sheetKey(subject), string(data), nil)
		return err
	})
}

func (s *BuntStore) Close() error {
	return s.db.Close()
}
