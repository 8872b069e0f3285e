package main

import (
	"testing"
	"time"
)

func TestResolveWindowNamedPeriods(t *testing.T) {
	now := time.Date(2024, 3, 13, 15, 30, 0, 0, time.Local) // a Wednesday

	window, label, err := resolveWindow("", "", "", now)
	if err != nil {
		t.Fatalf("default window failed: %v", err)
	}
	midnight := time.Date(2024, 3, 13, 0, 0, 0, 0, time.Local)
	if !window.From.Equal(midnight) || !window.To.Equal(midnight.AddDate(0, 0, 1)) {
		t.Errorf("default window = [%v, %v), want today", window.From, window.To)
	}
	if label != "today" {
		t.Errorf("default label = %q, want today", label)
	}

	window, label, err = resolveWindow("lw", "", "", now)
	if err != nil {
		t.Fatalf("last week window failed: %v", err)
	}
	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local)
	if !window.From.Equal(monday) || !window.To.Equal(monday.AddDate(0, 0, 7)) {
		t.Errorf("last week window = [%v, %v), want the week of March 4", window.From, window.To)
	}
	if label != "last week" {
		t.Errorf("last week label = %q", label)
	}

	if _, _, err := resolveWindow("fortnight", "", "", now); err == nil {
		t.Error("unknown period did not fail")
	}
}

func TestResolveWindowExplicitBounds(t *testing.T) {
	now := time.Date(2024, 3, 13, 15, 30, 0, 0, time.Local)

	window, label, err := resolveWindow("", "2024-03-01", "", now)
	if err != nil {
		t.Fatalf("--from window failed: %v", err)
	}
	if !window.From.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)) {
		t.Errorf("--from bound = %v, want March 1 midnight", window.From)
	}
	if !window.To.Equal(now) {
		t.Errorf("open --to bound = %v, want now", window.To)
	}
	if label != "since 2024-03-01 00:00:00" {
		t.Errorf("--from label = %q", label)
	}

	window, label, err = resolveWindow("", "", "10:00", now)
	if err != nil {
		t.Fatalf("--to window failed: %v", err)
	}
	if !window.From.IsZero() {
		t.Errorf("open --from bound = %v, want zero", window.From)
	}
	if !window.To.Equal(time.Date(2024, 3, 13, 10, 0, 0, 0, time.Local)) {
		t.Errorf("--to bound = %v, want 10:00 today", window.To)
	}
	if label != "until 10:00:00" {
		t.Errorf("--to label = %q", label)
	}

	_, label, err = resolveWindow("", "09:00", "17:00", now)
	if err != nil {
		t.Fatalf("--from/--to window failed: %v", err)
	}
	if label != "between 09:00:00 and 17:00:00" {
		t.Errorf("--from/--to label = %q", label)
	}

	if _, _, err := resolveWindow("week", "09:00", "", now); err == nil {
		t.Error("combining a named period with --from did not fail")
	}
	if _, _, err := resolveWindow("", "whenever", "", now); err == nil {
		t.Error("unparseable --from did not fail")
	}
}

func TestOpenStoreUnknownBackend(t *testing.T) {
	if _, err := openStore("cloud", t.TempDir()); err == nil {
		t.Error("unknown store backend did not fail")
	}
}
