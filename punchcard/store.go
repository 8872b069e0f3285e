package punchcard

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Store moves raw sheet bytes in and out of persistence. A subject that was
// never saved loads as (nil, nil), never as an error; the codec turns nil
// bytes into the empty sheet.
type Store interface {
	Load(subject string) ([]byte, error)
	Save(subject string, data []byte) error
	Close() error
}

// FileStore keeps one plain file per subject inside a data directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path(subject string) string {
	return filepath.Join(s.dir, subject+".sheet")
}

func (s *FileStore) Load(subject string) ([]byte, error) {
	data, err := os.ReadFile(s.path(subject))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	return data, nil
}

// Save replaces the subject's sheet, creating missing directories on the
// way and writing through a temp file and rename so an interrupted write
// cannot truncate the sheet.
func (s *FileStore) Save(subject string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create sheet directory: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, subject+".sheet.tmp-*")
	if err != nil {
		return fmt.Errorf("write sheet: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write sheet: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write sheet: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(subject)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write sheet: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
