package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
)

var testNow = time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC)

type harness struct {
	t    *testing.T
	dir  string
	slot *store.Memory
}

// newHarness gives each test its own config and data locations and an
// in-memory slot shared by every run.
func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	for _, k := range []string{"TADA_BACKEND", "TADA_DATA_DIR", "TADA_THEME", "TADA_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	t.Setenv("TADA_CONFIG", filepath.Join(dir, "config.yaml"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	return &harness{t: t, dir: dir, slot: store.NewMemory()}
}

func (h *harness) run(args ...string) (int, string, string) {
	h.t.Helper()
	var stdout, stderr bytes.Buffer
	opt := Options{Stdout: &stdout, Stderr: &stderr, Now: func() time.Time { return testNow }}
	if h.slot != nil {
		opt.Slot = h.slot
	}
	code := Run(args, opt)
	return code, stdout.String(), stderr.String()
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	code, out, errOut := h.run(args...)
	require.Equal(h.t, ExitOK, code, "stderr: %s", errOut)
	return out
}

func (h *harness) items() []model.Todo {
	h.t.Helper()
	out := h.mustRun("ls", "--json")
	items, err := store.Decode([]byte(out))
	require.NoError(h.t, err)
	return items
}

func TestAddAndList(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("add", "Buy", "milk", "-c", "shopping")
	assert.Contains(t, out, "added Buy milk")
	h.mustRun("add", "Write report", "-c", "work", "--due", "2026-10-01")

	out = h.mustRun("ls")
	assert.Contains(t, out, "Todos")
	assert.Contains(t, out, "0/2")
	assert.Contains(t, out, " 1.")
	assert.Contains(t, out, "Write report")
	assert.Contains(t, out, "due 2026-10-01 (overdue)")
	assert.Contains(t, out, "☐ Buy milk")
	assert.Contains(t, out, "shopping")

	items := h.items()
	require.Len(t, items, 2)
	assert.Equal(t, "Write report", items[0].Title)
	assert.Equal(t, model.Work, items[0].Category)
	require.NotNil(t, items[0].DueDate)
	assert.Equal(t, "2026-10-01", items[0].DueDate.String())
	assert.Equal(t, model.Shopping, items[1].Category)
	assert.True(t, testNow.Equal(items[1].CreatedAt))
}

func TestAddDefaultsToPersonal(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "Call mom")
	assert.Equal(t, model.Personal, h.items()[0].Category)
}

func TestAddValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no title", []string{"add"}, "usage: todo add <title...>"},
		{"blank title", []string{"add", "   "}, "Todo title is required"},
		{"bad category", []string{"add", "x", "-c", "errands"}, "Category must be one of work, personal or shopping"},
		{"bad due", []string{"add", "x", "--due", "31/01/2026"}, "Due date must look like 2026-01-31"},
		{"unknown flag", []string{"add", "x", "--colour", "red"}, "unknown flag: --colour"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			code, _, errOut := h.run(tt.args...)
			assert.Equal(t, ExitUsage, code)
			assert.Contains(t, errOut, tt.want)
			assert.Zero(t, h.slot.Writes, "nothing reaches the store")
		})
	}
}

func TestDoneTogglesByIndex(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "A")
	h.mustRun("add", "B")

	out := h.mustRun("done", "2")
	assert.Contains(t, out, "completed A")
	items := h.items()
	assert.False(t, items[0].Completed)
	assert.True(t, items[1].Completed)

	out = h.mustRun("done", "2")
	assert.Contains(t, out, "reopened A")
	assert.False(t, h.items()[1].Completed)
}

func TestDoneByIDPrefix(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "A")
	id := h.items()[0].ID

	h.mustRun("done", id[:13])
	assert.True(t, h.items()[0].Completed)
}

func TestStaleRefIsUsageError(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "A")
	writes := h.slot.Writes

	code, _, errOut := h.run("done", "5")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, errOut, "index out of range: have 1, got 5")
	assert.Contains(t, errOut, "Hint: run `todo ls` to see valid indexes")

	code, _, errOut = h.run("rm", "no-such-id")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, errOut, `no todo matches "no-such-id"`)

	code, _, errOut = h.run("done")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, errOut, "usage: todo done <ref>")

	assert.Equal(t, writes, h.slot.Writes)
}

func TestRemove(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "A")
	h.mustRun("add", "B")

	out := h.mustRun("rm", "1")
	assert.Contains(t, out, "removed B")
	items := h.items()
	require.Len(t, items, 1)
	assert.Equal(t, "A", items[0].Title)
}

func TestEdit(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "Buy milk", "-c", "shopping", "--due", "2026-11-01")

	out := h.mustRun("edit", "1", "--title", "Buy oat milk", "--no-due")
	assert.Contains(t, out, "updated Buy oat milk")
	td := h.items()[0]
	assert.Equal(t, "Buy oat milk", td.Title)
	assert.Equal(t, model.Shopping, td.Category)
	assert.Nil(t, td.DueDate)

	h.mustRun("edit", "1", "-c", "work", "--due", "2026-12-24")
	td = h.items()[0]
	assert.Equal(t, model.Work, td.Category)
	require.NotNil(t, td.DueDate)
	assert.Equal(t, "2026-12-24", td.DueDate.String())
}

func TestEditRejects(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "A")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"nothing", []string{"edit", "1"}, "edit: nothing to change"},
		{"due and no-due", []string{"edit", "1", "--due", "2026-01-01", "--no-due"}, "can't be used together"},
		{"blank title", []string{"edit", "1", "--title", " "}, "Todo title is required"},
		{"bad category", []string{"edit", "1", "-c", "chores"}, "Category must be one of"},
		{"stale ref", []string{"edit", "9", "--title", "x"}, "index out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := h.run(tt.args...)
			assert.Equal(t, ExitUsage, code)
			assert.Contains(t, errOut, tt.want)
		})
	}
	assert.Equal(t, "A", h.items()[0].Title)
}

func TestClearAndStats(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "A")
	h.mustRun("add", "B")
	h.mustRun("add", "C")
	h.mustRun("done", "1")

	out := h.mustRun("stats")
	assert.Contains(t, out, "Total: 3  Active: 2  Completed: 1")

	out = h.mustRun("stats", "--json")
	var got map[string]int
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, map[string]int{"total": 3, "active": 2, "completed": 1}, got)

	out = h.mustRun("clear")
	assert.Contains(t, out, "cleared 1 completed")
	assert.Len(t, h.items(), 2)

	writes := h.slot.Writes
	out = h.mustRun("clear")
	assert.Contains(t, out, "cleared 0 completed")
	assert.Equal(t, writes+1, h.slot.Writes, "clear saves even when nothing went")
}

func TestListFilters(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "Buy milk", "-c", "shopping")
	h.mustRun("add", "Write report", "-c", "work")
	h.mustRun("done", "2")

	out := h.mustRun("ls", "--status", "active")
	assert.Contains(t, out, "Write report")
	assert.NotContains(t, out, "Buy milk ")

	out = h.mustRun("ls", "--status", "completed", "-s", "MILK")
	assert.Contains(t, out, " 2.", "positions refer to the full list")
	assert.Contains(t, out, "☑ Buy milk")

	out = h.mustRun("ls", "-c", "shopping", "-s", "report")
	assert.Contains(t, out, "No todos match your filters")

	out = h.mustRun("ls", "--group")
	assert.Contains(t, out, "Pending")
	assert.Contains(t, out, "Done")

	code, _, errOut := h.run("ls", "--status", "finished")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, errOut, `unknown status "finished"`)

	code, _, _ = h.run("ls", "-c", "errands")
	assert.Equal(t, ExitUsage, code)
}

func TestListEmpty(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("ls")
	assert.Contains(t, out, "No todos yet. Add one to get started!")
	assert.Equal(t, "[]\n", h.mustRun("ls", "--json"))
}

func TestUnknownSubcommand(t *testing.T) {
	h := newHarness(t)
	code, _, errOut := h.run("frobnicate")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, errOut, "unknown subcommand: frobnicate")
}

func TestHelp(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("--help")
	assert.Contains(t, out, "add")
	assert.Contains(t, out, "--backend")
}

func TestSaveFailureExitsOne(t *testing.T) {
	h := newHarness(t)
	h.slot.SetErr = errors.New("disk full")

	code, _, errOut := h.run("add", "A")
	assert.Equal(t, ExitError, code)
	assert.Contains(t, errOut, "save: disk full")
}

func TestFileBackend(t *testing.T) {
	h := newHarness(t)
	h.slot = nil
	dataDir := filepath.Join(h.dir, "todos")

	h.mustRun("--data-dir", dataDir, "add", "Persist me")
	assert.FileExists(t, filepath.Join(dataDir, "todos.json"))

	out := h.mustRun("--data-dir", dataDir, "ls")
	assert.Contains(t, out, "Persist me")
}

func TestFileBackendIgnoresCorruptData(t *testing.T) {
	h := newHarness(t)
	h.slot = nil
	dataDir := filepath.Join(h.dir, "todos")
	require.NoError(t, os.MkdirAll(dataDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "todos.json"), []byte("{not json"), 0o644))

	out := h.mustRun("--data-dir", dataDir, "ls")
	assert.Contains(t, out, "No todos yet")
}

func TestSQLiteBackendFromEnv(t *testing.T) {
	h := newHarness(t)
	h.slot = nil
	dataDir := filepath.Join(h.dir, "db")
	t.Setenv("TADA_BACKEND", "sqlite")
	t.Setenv("TADA_DATA_DIR", dataDir)

	h.mustRun("add", "In a row")
	assert.FileExists(t, filepath.Join(dataDir, "tada.db"))

	out := h.mustRun("ls")
	assert.Contains(t, out, "In a row")
}

func TestBackendFromConfigFile(t *testing.T) {
	h := newHarness(t)
	h.slot = nil
	dataDir := filepath.Join(h.dir, "cfgdata")
	cfg := "backend: sqlite\ndata_dir: " + dataDir + "\ntheme: mono\n"
	require.NoError(t, os.WriteFile(filepath.Join(h.dir, "config.yaml"), []byte(cfg), 0o644))

	out := h.mustRun("add", "From config")
	assert.Contains(t, out, "ok added From config", "mono theme symbols")
	assert.FileExists(t, filepath.Join(dataDir, "tada.db"))
}

func TestBadBackend(t *testing.T) {
	h := newHarness(t)
	code, _, errOut := h.run("--backend", "cloud", "ls")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, errOut, `unknown backend "cloud"`)
}

func TestRunLeavesSlogDefault(t *testing.T) {
	h := newHarness(t)
	prev := slog.Default()

	h.mustRun("add", "A")
	assert.Same(t, prev, slog.Default())
}
