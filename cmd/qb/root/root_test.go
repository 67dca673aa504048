package root

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"questboss/internal/engine"
	"questboss/internal/storage"
)

func useTempDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("QB_CATALOG", "")
	t.Setenv("QB_JOURNAL", "true")
	flagDataDir, flagBackend, flagCatalog = dir, "file", ""
	t.Cleanup(func() { flagDataDir, flagBackend, flagCatalog = "", "", "" })
	return dir
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAddListDoHistory(t *testing.T) {
	dir := useTempDataDir(t)

	out, err := run(t, newAddCmd(), "Write report", "--xp", "120", "-d", "30")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(out, "Write report") {
		t.Fatalf("add output = %q", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "progress.json")); err != nil {
		t.Fatalf("progress.json not written: %v", err)
	}

	out, err = run(t, newListCmd())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "Write report") || !strings.Contains(out, "water") {
		t.Fatalf("list output missing entries: %q", out)
	}

	out, err = run(t, newDoCmd(), "water")
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if !strings.Contains(out, "Completed") || !strings.Contains(out, "(+10 XP)") {
		t.Fatalf("do output = %q", out)
	}

	out, err = run(t, newHistoryCmd(), "-n", "5")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "Drink 8 glasses of water") {
		t.Fatalf("history output = %q", out)
	}
}

func TestDoUnknownTask(t *testing.T) {
	useTempDataDir(t)
	if _, err := run(t, newDoCmd(), "nope"); err == nil {
		t.Fatalf("expected error for unknown task")
	}
}

func TestAddRejectsNegativeXP(t *testing.T) {
	useTempDataDir(t)
	if _, err := run(t, newAddCmd(), "Bad", "--xp=-5"); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestResetRequiresYes(t *testing.T) {
	dir := useTempDataDir(t)
	if _, err := run(t, newResetCmd()); err == nil {
		t.Fatalf("expected refusal without --yes")
	}

	if _, err := run(t, newAddCmd(), "Keep me"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := run(t, newResetCmd(), "--yes"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	bak, err := os.ReadFile(filepath.Join(dir, "progress.json.bak"))
	if err != nil {
		t.Fatalf("backup missing: %v", err)
	}
	if !strings.Contains(string(bak), "Keep me") {
		t.Fatalf("backup does not hold previous progress: %s", bak)
	}
	cur, err := os.ReadFile(filepath.Join(dir, "progress.json"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(cur), "Keep me") {
		t.Fatalf("reset kept tasks: %s", cur)
	}
}

func TestStatusShowsBoss(t *testing.T) {
	useTempDataDir(t)
	out, err := run(t, newStatusCmd())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "Weekly Boss") || !strings.Contains(out, "Achievements (0/") {
		t.Fatalf("status output = %q", out)
	}
}

func TestStartOfISOWeek(t *testing.T) {
	cases := map[string]string{
		"2026-10-18": "2026-10-12", // Sunday
		"2026-10-12": "2026-10-12", // Monday
		"2026-10-14": "2026-10-12",
		"2027-01-01": "2026-12-28",
	}
	for in, want := range cases {
		day, _ := time.ParseInLocation("2006-01-02", in, time.Local)
		got := startOfISOWeek(day.Add(15 * time.Hour)).Format("2006-01-02")
		if got != want {
			t.Errorf("startOfISOWeek(%s) = %s, want %s", in, got, want)
		}
	}
}

func TestOpenSessionBackendFromEnvIgnoresCase(t *testing.T) {
	dir := useTempDataDir(t)
	flagBackend = ""
	t.Setenv("QB_BACKEND", "SQLite")

	s, err := openSession(context.Background(), io.Discard)
	if err != nil {
		t.Fatalf("openSession: %v", err)
	}
	defer s.Close()
	if s.file != nil {
		t.Fatalf("QB_BACKEND=SQLite opened the file backend")
	}
	if _, err := s.svc.AddTask(context.Background(), "Stored in sqlite", 5, 5); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, storage.ProgressDBName)); err != nil {
		t.Fatalf("progress.db missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, storage.ProgressFileName)); !os.IsNotExist(err) {
		t.Fatalf("progress.json should not exist, stat err=%v", err)
	}
}

func TestBackendFlagOverridesInvalidEnv(t *testing.T) {
	useTempDataDir(t)
	t.Setenv("QB_BACKEND", "bogus")

	s, err := openSession(context.Background(), io.Discard)
	if err != nil {
		t.Fatalf("flag should win over env: %v", err)
	}
	defer s.Close()
	if s.file == nil {
		t.Fatalf("expected the file backend from --backend file")
	}

	flagBackend = ""
	if _, err := openSession(context.Background(), io.Discard); err == nil {
		t.Fatalf("expected invalid env backend to fail without a flag")
	}
}

func TestOpenDailiesCountsOnlyUndone(t *testing.T) {
	snap := engine.Snapshot{Dailies: []engine.DailyView{
		{Quest: engine.Quest{ID: "read"}, Done: true},
		{Quest: engine.Quest{ID: "plan"}},
		{Quest: engine.Quest{ID: "tidy"}},
	}}
	if got := openDailies(snap); got != 2 {
		t.Fatalf("openDailies=%d, want 2", got)
	}
}
