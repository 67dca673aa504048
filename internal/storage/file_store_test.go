package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), ProgressFileName))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestFileStoreMissingFileIsFirstRun(t *testing.T) {
	s := newTestFileStore(t)
	p, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(p, DefaultProgress()) {
		t.Fatalf("got %+v, want defaults", p)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestFileStore(t)
	want := &Progress{
		Version:  SchemaVersion,
		Level:    4,
		XP:       17,
		XPNeeded: 172,
		Tasks: []Task{
			{ID: "a", Name: "Laundry", XPReward: 10, BossDamage: 5},
			{ID: "b", Name: "Laundry", XPReward: 10, BossDamage: 5},
			{ID: "c", Name: "Taxes", XPReward: 0, BossDamage: 0},
		},
	}
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the state file, found %d entries", len(entries))
	}
}

func TestFileStoreFieldDefaults(t *testing.T) {
	ctx := context.Background()
	s := newTestFileStore(t)

	writeFile(t, s.Path(), `{"level": 3, "xp": 12, "xp_needed": 144}`)
	p, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Tasks == nil || len(p.Tasks) != 0 {
		t.Fatalf("tasks=%#v, want empty slice", p.Tasks)
	}
	if p.Level != 3 || p.XP != 12 || p.XPNeeded != 144 {
		t.Fatalf("got %+v", p)
	}

	writeFile(t, s.Path(), `{"xp": 40}`)
	p, err = s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Level != DefaultLevel || p.XP != 40 || p.XPNeeded != DefaultXPNeeded {
		t.Fatalf("got %+v", p)
	}
	if p.Version != SchemaVersion {
		t.Fatalf("version=%d, want %d", p.Version, SchemaVersion)
	}
}

func TestFileStoreLegacyTasksGetIDs(t *testing.T) {
	s := newTestFileStore(t)
	writeFile(t, s.Path(), `{"level": 2, "xp": 0, "xp_needed": 120, "tasks": [{"name": "Walk", "xp": 20, "damage": 10}, {"name": "Walk", "xp": 20, "damage": 10}]}`)

	p, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(p.Tasks) != 2 {
		t.Fatalf("tasks=%+v", p.Tasks)
	}
	if p.Tasks[0].ID == "" || p.Tasks[0].ID == p.Tasks[1].ID {
		t.Fatalf("expected distinct ids, got %q and %q", p.Tasks[0].ID, p.Tasks[1].ID)
	}
	if p.Tasks[0].XPReward != 20 || p.Tasks[0].BossDamage != 10 {
		t.Fatalf("task=%+v", p.Tasks[0])
	}
}

func TestFileStoreCorruptFileIsPreserved(t *testing.T) {
	s := newTestFileStore(t)
	s.now = func() time.Time { return time.Unix(1700000000, 0) }
	writeFile(t, s.Path(), `level: 3`)

	p, err := s.Load(context.Background())
	var cerr *CorruptStateError
	if !errors.As(err, &cerr) {
		t.Fatalf("err=%v, want CorruptStateError", err)
	}
	if !reflect.DeepEqual(p, DefaultProgress()) {
		t.Fatalf("expected defaults alongside the error, got %+v", p)
	}
	if !strings.HasSuffix(cerr.PreservedAs, ".corrupt-1700000000") {
		t.Fatalf("PreservedAs=%q", cerr.PreservedAs)
	}
	data, err := os.ReadFile(cerr.PreservedAs)
	if err != nil {
		t.Fatalf("read preserved: %v", err)
	}
	if string(data) != "level: 3" {
		t.Fatalf("preserved content=%q", data)
	}
	if _, err := os.Stat(s.Path()); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("corrupt file still at original path: %v", err)
	}
}

func TestFileStoreCorruptLoadsKeepEveryCopy(t *testing.T) {
	s := newTestFileStore(t)
	s.now = func() time.Time { return time.Unix(1700000000, 0) }

	var preserved []string
	for _, content := range []string{"first {", "second {", "third {"} {
		writeFile(t, s.Path(), content)
		_, err := s.Load(context.Background())
		var cerr *CorruptStateError
		if !errors.As(err, &cerr) {
			t.Fatalf("err=%v, want CorruptStateError", err)
		}
		preserved = append(preserved, cerr.PreservedAs)
	}

	want := []string{"first {", "second {", "third {"}
	seen := map[string]bool{}
	for i, p := range preserved {
		if seen[p] {
			t.Fatalf("preserved path %q reused", p)
		}
		seen[p] = true
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("read %s: %v", p, err)
		}
		if string(data) != want[i] {
			t.Fatalf("%s holds %q, want %q", p, data, want[i])
		}
	}
}

func TestFileStoreClampsNegativeTaskValues(t *testing.T) {
	s := newTestFileStore(t)
	writeFile(t, s.Path(), `{"tasks":[{"id":"t1","name":"Odd","xp":-3,"damage":-5}]}`)

	p, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := p.Tasks[0]; got.XPReward != 0 || got.BossDamage != 0 {
		t.Fatalf("task=%+v, want xp and damage clamped to 0", got)
	}
}

func TestFileStoreBackup(t *testing.T) {
	ctx := context.Background()
	s := newTestFileStore(t)

	dst, err := s.Backup()
	if err != nil || dst != "" {
		t.Fatalf("Backup with no file = %q, %v", dst, err)
	}

	if err := s.Save(ctx, DefaultProgress()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	dst, err = s.Backup()
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}
	if _, err := os.Stat(dst); err != nil {
		t.Fatalf("backup missing: %v", err)
	}
}
