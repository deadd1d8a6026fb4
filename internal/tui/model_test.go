package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teddy/internal/engine"
)

func loadedBoard(t *testing.T) boardModel {
	t.Helper()
	m := newBoardModel(context.Background(), nil, time.Minute)
	c := engine.DefaultCustomization("Teddy")
	c.Experience = 40

	next, _ := m.Update(loadedMsg{
		companion:   c,
		accessories: engine.DefaultAccessories(),
		habits:      []engine.Habit{{ID: "h1", Title: "Drink water", Frequency: engine.FrequencyDaily, Streak: 3}},
		tasks: []engine.Task{
			{ID: "t1", Title: "Write report", Priority: engine.PriorityHigh},
			{ID: "t2", Title: "Old chore", Completed: true, Priority: engine.PriorityLow},
		},
		advice: "Focus on progress, not perfection.",
	})
	return next.(boardModel)
}

func press(m boardModel, key string) (boardModel, tea.Cmd) {
	var msg tea.KeyMsg
	switch key {
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	return next.(boardModel), cmd
}

func TestBoardRowsOrder(t *testing.T) {
	m := loadedBoard(t)
	rows := m.rows()
	require.Len(t, rows, 3)
	assert.True(t, rows[0].habit)
	assert.Equal(t, "t1", rows[1].id)
	assert.True(t, rows[2].done)
}

func TestBoardNavigationAndComplete(t *testing.T) {
	m := loadedBoard(t)

	m, _ = press(m, "k")
	assert.Equal(t, 0, m.selected)

	m, cmd := press(m, "c")
	require.NotNil(t, cmd)
	assert.Contains(t, m.log[len(m.log)-1], "Completing Drink water")

	m, _ = press(m, "j")
	m, _ = press(m, "j")
	m, _ = press(m, "j")
	assert.Equal(t, 2, m.selected)

	m, cmd = press(m, " ")
	require.NotNil(t, cmd)
	assert.Contains(t, m.log[len(m.log)-1], "Updating Old chore")
}

func TestBoardLogsCompletionEvents(t *testing.T) {
	m := loadedBoard(t)

	next, cmd := m.Update(habitDoneMsg{res: &engine.HabitResult{
		Reward: engine.Reward{
			XPAwarded: 25,
			Events:    []engine.Event{{Kind: engine.EventLevelUp, Message: "Teddy has reached level 2! Keep up the good work!"}},
		},
		Habit:       engine.Habit{Title: "Drink water", Streak: 2},
		DidComplete: true,
	}})
	m = next.(boardModel)
	require.NotNil(t, cmd)

	joined := strings.Join(m.log, "\n")
	assert.Contains(t, joined, "streak 2, +25 XP")
	assert.Contains(t, joined, "reached level 2")

	next, _ = m.Update(polledMsg{fired: []engine.Reminder{{Title: "Stretch"}}})
	m = next.(boardModel)
	assert.Contains(t, m.log[len(m.log)-1], "Reminder: Stretch")
	assert.LessOrEqual(t, len(m.log), maxLogLines)
}

func TestBoardView(t *testing.T) {
	m := loadedBoard(t)
	view := m.View()
	assert.Contains(t, view, "Teddy")
	assert.Contains(t, view, "Level 1")
	assert.Contains(t, view, "40/100 XP")
	assert.Contains(t, view, "Drink water")
	assert.Contains(t, view, "Write report")
	assert.Contains(t, view, "3/5")
}
