package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"teddy/internal/engine"
	"teddy/internal/ui"
)

const maxLogLines = 4

type boardModel struct {
	ctx  context.Context
	svc  *engine.Service
	poll time.Duration

	width  int
	height int

	companion   engine.Customization
	accessories []engine.Accessory
	habits      []engine.Habit
	tasks       []engine.Task
	upcoming    []engine.Reminder
	weather     engine.WeatherCondition
	advice      string

	xpBar    progress.Model
	selected int

	log     []string
	loading bool
	err     error
}

type loadedMsg struct {
	companion   engine.Customization
	accessories []engine.Accessory
	habits      []engine.Habit
	tasks       []engine.Task
	upcoming    []engine.Reminder
	weather     engine.WeatherCondition
	advice      string
	err         error
}

type habitDoneMsg struct {
	res *engine.HabitResult
	err error
}

type taskDoneMsg struct {
	res *engine.TaskResult
	err error
}

type tickMsg time.Time

type polledMsg struct {
	fired []engine.Reminder
	err   error
}

func newBoardModel(ctx context.Context, svc *engine.Service, poll time.Duration) boardModel {
	if poll <= 0 {
		poll = time.Minute
	}
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		poll:    poll,
		xpBar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
		loading: true,
		log:     []string{"Loaded."},
	}
}

func (m boardModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.pollCmd(), m.tickCmd())
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		c, acc, err := m.svc.Companion(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		habits, err := m.svc.ListHabits(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		tasks, err := m.svc.ListTasks(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		reminders, err := m.svc.ListReminders(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		advice, err := m.svc.CurrentAdvice(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		now := m.svc.Clock().Now()
		var upcoming []engine.Reminder
		for _, r := range reminders {
			if r.State() == engine.ReminderPending && r.Time.After(now) {
				upcoming = append(upcoming, r)
			}
		}
		return loadedMsg{
			companion:   c,
			accessories: acc,
			habits:      habits,
			tasks:       tasks,
			upcoming:    upcoming,
			weather:     m.svc.Weather(),
			advice:      advice.Text,
		}
	}
}

func (m boardModel) tickCmd() tea.Cmd {
	return tea.Tick(m.poll, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m boardModel) pollCmd() tea.Cmd {
	return func() tea.Msg {
		fired, err := m.svc.PollReminders(m.ctx)
		return polledMsg{fired: fired, err: err}
	}
}

func (m boardModel) completeHabitCmd(id string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CompleteHabit(m.ctx, id)
		return habitDoneMsg{res: res, err: err}
	}
}

func (m boardModel) completeTaskCmd(id string, completed bool) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CompleteTask(m.ctx, id, completed)
		return taskDoneMsg{res: res, err: err}
	}
}

func (m *boardModel) logf(format string, args ...any) {
	m.log = append(m.log, fmt.Sprintf(format, args...))
	if len(m.log) > maxLogLines {
		m.log = m.log[len(m.log)-maxLogLines:]
	}
}

func (m *boardModel) logEvents(events []engine.Event) {
	for _, e := range events {
		m.logf("%s %s", eventIcon(e.Kind), e.Message)
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.logf("Load failed: %v", msg.err)
			return m, nil
		}
		m.companion = msg.companion
		m.accessories = msg.accessories
		m.habits = msg.habits
		m.tasks = msg.tasks
		m.upcoming = msg.upcoming
		m.weather = msg.weather
		m.advice = msg.advice
		if n := len(m.rows()); m.selected >= n {
			m.selected = max(0, n-1)
		}
		return m, nil
	case habitDoneMsg:
		if msg.err != nil {
			m.logf("Complete failed: %v", msg.err)
			return m, nil
		}
		if !msg.res.DidComplete {
			m.logf("%q is already done for this period.", msg.res.Habit.Title)
			return m, nil
		}
		m.logf("%s %s: streak %d, +%d XP", ui.IconFire, msg.res.Habit.Title, msg.res.Habit.Streak, msg.res.XPAwarded)
		m.logEvents(msg.res.Events)
		return m, m.loadCmd()
	case taskDoneMsg:
		if msg.err != nil {
			m.logf("Update failed: %v", msg.err)
			return m, nil
		}
		if msg.res.Task.Completed {
			m.logf("%s %s: +%d XP", ui.IconDone, msg.res.Task.Title, msg.res.XPAwarded)
		} else {
			m.logf("Reopened %s.", msg.res.Task.Title)
		}
		m.logEvents(msg.res.Events)
		return m, m.loadCmd()
	case tickMsg:
		return m, tea.Batch(m.pollCmd(), m.tickCmd())
	case polledMsg:
		if msg.err != nil {
			m.logf("Reminder check failed: %v", msg.err)
			return m, nil
		}
		if len(msg.fired) == 0 {
			return m, nil
		}
		for _, r := range msg.fired {
			m.logf("%s Reminder: %s", ui.IconBell, r.Title)
		}
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.logf("Refreshing…")
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.rows())-1 {
				m.selected++
			}
			return m, nil
		case "c", " ", "enter":
			rows := m.rows()
			if m.selected < 0 || m.selected >= len(rows) {
				return m, nil
			}
			row := rows[m.selected]
			if row.habit {
				if !row.canComplete {
					m.logf("%q is already done for this period.", row.title)
					return m, nil
				}
				m.logf("Completing %s…", row.title)
				return m, m.completeHabitCmd(row.id)
			}
			m.logf("Updating %s…", row.title)
			return m, m.completeTaskCmd(row.id, !row.done)
		}
	}
	return m, nil
}

type boardRow struct {
	id          string
	title       string
	habit       bool
	weekly      bool
	streak      int
	done        bool
	canComplete bool
	priority    engine.Priority
}

// rows lists habits first, then open tasks, then completed tasks.
func (m boardModel) rows() []boardRow {
	var out []boardRow
	for _, h := range m.habits {
		can := true
		if m.svc != nil {
			can = m.svc.CanCompleteHabit(h)
		}
		out = append(out, boardRow{
			id:          h.ID,
			title:       h.Title,
			habit:       true,
			weekly:      h.Frequency == engine.FrequencyWeekly,
			streak:      h.Streak,
			done:        !can,
			canComplete: can,
		})
	}
	for _, t := range m.tasks {
		out = append(out, boardRow{
			id:       t.ID,
			title:    t.Title,
			done:     t.Completed,
			priority: t.Priority,
		})
	}
	return out
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	leftW := 30
	if m.width > 0 && m.width/2 < leftW {
		leftW = max(m.width/2, 20)
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		ui.Panel.Width(leftW).Render(m.renderSidebar()),
		"  ",
		m.renderMain(),
	)
	return m.renderHeader() + "\n" + body + "\n" + m.renderFooter()
}

func (m boardModel) renderHeader() string {
	if m.companion.Name == "" {
		return "Teddy, loading…"
	}
	p := m.companion.ProgressionState
	return fmt.Sprintf("%s %s | Level %d | %d/%d XP %s | %s %s",
		ui.IconBear, ui.Title.Render(m.companion.Name), p.Level, p.Experience, p.NextLevelExperience,
		m.xpBar.ViewAs(p.Fraction()), m.weather.Icon, m.weather.Description)
}

func (m boardModel) renderSidebar() string {
	if m.companion.Name == "" {
		return "Companion\n\nLoading…"
	}
	lines := []string{ui.Companion(m.companion.Name, string(m.companion.Mood), m.companion.Accessories), ""}

	unlocked := 0
	for _, a := range m.accessories {
		if a.Unlocked {
			unlocked++
		}
	}
	lines = append(lines, ui.LabelValue("Wardrobe", fmt.Sprintf("%d/%d", unlocked, len(m.accessories))))
	if m.advice != "" {
		lines = append(lines, "", ui.IconBulb+" "+ui.Muted.Render(m.advice))
	}
	lines = append(lines, "", ui.PanelTitle.Render("Upcoming"))
	if len(m.upcoming) == 0 {
		lines = append(lines, ui.Muted.Render("(no reminders)"))
	}
	for i, r := range m.upcoming {
		if i == 3 {
			break
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", ui.IconBell, r.Time.Format("Mon 15:04"), r.Title))
	}
	lines = append(lines, "", ui.PanelTitle.Render("Keys"),
		"- ↑/↓ or j/k: move",
		"- c/space: complete",
		"- r: refresh",
		"- q: quit",
	)
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	rows := m.rows()
	habits, tasks := 0, 0
	for _, r := range rows {
		if r.habit {
			habits++
		} else {
			tasks++
		}
	}

	var out []string
	for i, r := range rows {
		if i == 0 && r.habit {
			out = append(out, ui.H2.Render("Habits"))
		}
		if i == habits {
			if habits > 0 {
				out = append(out, "")
			}
			out = append(out, ui.H2.Render("Tasks"))
		}
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		var line string
		if r.habit {
			line = fmt.Sprintf("%s %s %s %s", ui.CheckIcon(r.done), ui.FrequencyIcon(r.weekly), r.title, ui.Muted.Render(fmt.Sprintf("%s %d", ui.IconFire, r.streak)))
		} else {
			line = fmt.Sprintf("%s %s %s", ui.CheckIcon(r.done), r.title, ui.PriorityText(string(r.priority)))
		}
		if i == m.selected {
			line = ui.SelectedRow.Render(line)
		}
		out = append(out, cursor+line)
	}
	if habits == 0 && tasks == 0 {
		out = append(out, ui.Muted.Render("(nothing yet: try `teddy habit add` or `teddy task add`)"))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + strings.Join(m.log, "\n")
}

func eventIcon(k engine.EventKind) string {
	switch k {
	case engine.EventLevelUp:
		return ui.BadgeLevelUp
	case engine.EventAccessoryUnlocked:
		return ui.IconGift
	case engine.EventGoalAchieved:
		return ui.IconTarget
	case engine.EventReminderDue:
		return ui.IconBell
	default:
		return ui.IconInfo
	}
}
