package eventlog

import (
	"context"
	"path/filepath"
	"testing"
)

func TestMemoryLogAppendAndDay(t *testing.T) {
	log := NewMemoryLog()
	ctx := context.Background()

	recs := []Record{
		{Day: 1, DiseaseID: 0, HostID: 7, Kind: "exposure", Line: "line one"},
		{Day: 1, DiseaseID: 0, HostID: 8, Kind: "became_infectious"},
		{Day: 2, DiseaseID: 0, HostID: 7, Kind: "recovered"},
	}
	for _, rec := range recs {
		if err := log.Append(ctx, rec); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	day1, err := log.Day(ctx, 1)
	if err != nil {
		t.Fatalf("day: %v", err)
	}
	if len(day1) != 2 {
		t.Fatalf("day 1 records = %d, want 2", len(day1))
	}
	if day1[0].HostID != 7 || day1[1].HostID != 8 {
		t.Fatalf("insertion order lost: %+v", day1)
	}
	if day1[0].RecordedAt.IsZero() {
		t.Fatal("recorded-at not stamped")
	}

	if all := log.All(); len(all) != 3 {
		t.Fatalf("all records = %d, want 3", len(all))
	}
	if err := log.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestSQLiteLogRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")
	log, err := NewSQLiteLog(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = log.Close() }()
	ctx := context.Background()

	if err := log.Append(ctx, Record{Day: 3, DiseaseID: 1, HostID: 42, Kind: "exposure", Line: "day 3 dis 1 host 42"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := log.Append(ctx, Record{Day: 4, DiseaseID: 1, HostID: 42, Kind: "became_infectious"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	recs, err := log.Day(ctx, 3)
	if err != nil {
		t.Fatalf("day: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("day 3 records = %d, want 1", len(recs))
	}
	got := recs[0]
	if got.DiseaseID != 1 || got.HostID != 42 || got.Kind != "exposure" || got.Line != "day 3 dis 1 host 42" {
		t.Fatalf("record mismatch: %+v", got)
	}
	if got.RecordedAt.IsZero() {
		t.Fatal("recorded-at lost in round trip")
	}

	empty, err := log.Day(ctx, 99)
	if err != nil {
		t.Fatalf("day: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("day 99 records = %d, want 0", len(empty))
	}
	if log.Path() != path {
		t.Fatalf("path = %q, want %q", log.Path(), path)
	}
}

func TestOpenSelectsDriverFromEnv(t *testing.T) {
	t.Setenv("EPICORE_EVENTLOG_DRIVER", "memory")
	log, err := Open()
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, ok := log.(*MemoryLog); !ok {
		t.Fatalf("driver = %T, want *MemoryLog", log)
	}

	t.Setenv("EPICORE_EVENTLOG_DRIVER", "bogus")
	if _, err := Open(); err == nil {
		t.Fatal("unknown driver accepted")
	}
}

func TestOpenDefaultsToSQLite(t *testing.T) {
	t.Setenv("EPICORE_EVENTLOG_DRIVER", "")
	t.Setenv("EPICORE_EVENTLOG_SQLITE_PATH", filepath.Join(t.TempDir(), "default.db"))
	log, err := Open()
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = log.Close() }()
	if _, ok := log.(*SQLiteLog); !ok {
		t.Fatalf("driver = %T, want *SQLiteLog", log)
	}
}
