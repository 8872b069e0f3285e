package punchcard

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	store := NewFileStore(t.TempDir())

	data, err := store.Load("default")
	if err != nil {
		t.Fatalf("loading a missing sheet: %v", err)
	}
	if data != nil {
		t.Errorf("expected nil bytes for a missing sheet, got %q", data)
	}
}

func TestFileStoreMissingDirectoryIsEmpty(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "not", "created", "yet"))

	data, err := store.Load("default")
	if err != nil {
		t.Fatalf("loading from a missing directory: %v", err)
	}
	if data != nil {
		t.Errorf("expected nil bytes, got %q", data)
	}
}

func TestFileStoreSaveCreatesDirectories(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "punch")
	store := NewFileStore(dir)

	if err := store.Save("default", []byte("hello\n")); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	data, err := store.Load("default")
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if !bytes.Equal(data, []byte("hello\n")) {
		t.Errorf("expected saved bytes back, got %q", data)
	}
}

func TestFileStoreOverwrites(t *testing.T) {
	store := NewFileStore(t.TempDir())

	if err := store.Save("default", []byte("first")); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	if err := store.Save("default", []byte("second")); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	data, err := store.Load("default")
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("expected the second write, got %q", data)
	}
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	if err := store.Save("default", []byte("data")); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to list directory: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "default.sheet" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only default.sheet, got %v", names)
	}
}

func TestFileStoreSubjectsAreIndependent(t *testing.T) {
	store := NewFileStore(t.TempDir())

	if err := store.Save("work", []byte("w")); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	if err := store.Save("side", []byte("s")); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	work, err := store.Load("work")
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	side, err := store.Load("side")
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if string(work) != "w" || string(side) != "s" {
		t.Errorf("subjects bleed into each other: %q %q", work, side)
	}
}

func TestBuntStoreMissingKeyIsEmpty(t *testing.T) {
	store, err := OpenBuntStore(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	data, err := store.Load("default")
	if err != nil {
		t.Fatalf("loading a missing sheet: %v", err)
	}
	if data != nil {
		t.Errorf("expected nil bytes for a missing sheet, got %q", data)
	}
}

func TestBuntStoreSaveLoad(t *testing.T) {
	store, err := OpenBuntStore(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	if err := store.Save("default", []byte("sheet bytes")); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	data, err := store.Load("default")
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if string(data) != "sheet bytes" {
		t.Errorf("expected saved bytes back, got %q", data)
	}
}

func TestBuntStorePersistsToDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "punch.db")

	store, err := OpenBuntStore(path)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	if err := store.Save("default", []byte("persisted")); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close: %v", err)
	}

	reopened, err := OpenBuntStore(path)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer reopened.Close()

	data, err := reopened.Load("default")
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if string(data) != "persisted" {
		t.Errorf("expected bytes to survive a reopen, got %q", data)
	}
}
