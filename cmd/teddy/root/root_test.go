package root

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teddy/internal/engine"
)

func TestMatchID(t *testing.T) {
	ids := []string{"abc12345-0000", "abd99999-0000", "ffff0000-1111"}

	got, err := matchID("task", "ff", ids)
	require.NoError(t, err)
	assert.Equal(t, "ffff0000-1111", got)

	got, err = matchID("task", "abc12345-0000", ids)
	require.NoError(t, err)
	assert.Equal(t, "abc12345-0000", got)

	_, err = matchID("task", "ab", ids)
	assert.ErrorContains(t, err, "ambiguous")

	_, err = matchID("task", "zz", ids)
	var nf engine.NotFoundError
	assert.True(t, errors.As(err, &nf))

	_, err = matchID("task", " ", ids)
	assert.Error(t, err)
}

func TestParseWhen(t *testing.T) {
	loc := time.FixedZone("X", 2*3600)
	now := time.Date(2026, 3, 2, 9, 30, 15, 0, loc)

	tests := []struct {
		in   string
		want time.Time
	}{
		{"+30m", time.Date(2026, 3, 2, 10, 0, 15, 0, loc)},
		{"14:05", time.Date(2026, 3, 2, 14, 5, 0, 0, loc)},
		{"2026-03-04 08:00", time.Date(2026, 3, 4, 8, 0, 0, 0, loc)},
		{"2026-03-04", time.Date(2026, 3, 4, 0, 0, 0, 0, loc)},
		{"2026-03-04T06:00:00Z", time.Date(2026, 3, 4, 8, 0, 0, 0, loc)},
	}
	for _, tt := range tests {
		got, err := parseWhen(tt.in, now)
		if err != nil {
			t.Fatalf("parseWhen(%q): %v", tt.in, err)
		}
		if !got.Equal(tt.want) {
			t.Fatalf("parseWhen(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "tomorrow", "+soon"} {
		if _, err := parseWhen(bad, now); err == nil {
			t.Fatalf("parseWhen(%q) should fail", bad)
		}
	}
}

func setupCLI(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("TEDDY_DB_PATH", filepath.Join(dir, "teddy.db"))
	t.Setenv("TEDDY_TIMEZONE", "UTC")

	prev := configPath
	configPath = filepath.Join(dir, "config.yaml")
	t.Cleanup(func() { configPath = prev })
	return dir
}

func run(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("%s %v: %v\n%s", cmd.Name(), args, err, out.String())
	}
	return out.String()
}

func TestHabitCommands(t *testing.T) {
	setupCLI(t)

	out := run(t, newHabitCmd(), "add", "Drink water", "-f", "daily")
	assert.Contains(t, out, "Added daily habit")

	a, cleanup, err := openService(context.Background(), nil)
	require.NoError(t, err)
	habits, err := a.svc.ListHabits(context.Background())
	cleanup()
	require.NoError(t, err)
	require.Len(t, habits, 1)
	id := shortID(habits[0].ID)

	out = run(t, newHabitCmd(), "done", id)
	assert.Contains(t, out, "Drink water")
	assert.Contains(t, out, "+15 XP")

	out = run(t, newHabitCmd(), "done", id)
	assert.Contains(t, out, "already done today")

	out = run(t, newHabitCmd(), "list")
	assert.Contains(t, out, "Drink water")
	assert.Contains(t, out, id)
}

func TestTaskCommandsUnlockAccessory(t *testing.T) {
	setupCLI(t)

	for i := 0; i < 5; i++ {
		run(t, newTaskCmd(), "add", "Chore", "-p", "high")
	}
	a, cleanup, err := openService(context.Background(), nil)
	require.NoError(t, err)
	tasks, err := a.svc.ListTasks(context.Background())
	cleanup()
	require.NoError(t, err)
	require.Len(t, tasks, 5)

	var out string
	for _, task := range tasks {
		out = run(t, newTaskCmd(), "done", task.ID)
	}
	assert.Contains(t, out, "New accessory unlocked!")

	out = run(t, newStatusCmd())
	assert.Contains(t, out, "Level")
	assert.Contains(t, out, "XP today: 150")
	assert.Contains(t, out, "4/5 unlocked")

	out = run(t, newHistoryCmd(), "-n", "2")
	assert.Equal(t, 3, strings.Count(out, "\n"), out)
}

func TestRemindWatchStops(t *testing.T) {
	setupCLI(t)

	run(t, newRemindCmd(), "add", "Stretch", "--at", "+0s")
	out := run(t, newRemindCmd(), "watch", "--interval", "10ms", "--for", "100ms")
	assert.Contains(t, out, "Reminder: Stretch")

	out = run(t, newRemindCmd(), "list")
	assert.Contains(t, out, "fired")
}
