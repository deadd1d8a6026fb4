package engine

import (
	"sort"
	"strings"
	"time"
)

// DefaultDueWindow is how long after its time a reminder still counts as due.
const DefaultDueWindow = time.Minute

type Reminder struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Time      time.Time  `json:"time"`
	Completed bool       `json:"completed"`
	TaskID    string     `json:"taskId,omitempty"`
	HabitID   string     `json:"habitId,omitempty"`
	FiredAt   *time.Time `json:"firedAt,omitempty"`
}

type ReminderState string

const (
	ReminderPending   ReminderState = "pending"
	ReminderDueFired  ReminderState = "due_fired"
	ReminderCompleted ReminderState = "completed"
)

func (r Reminder) State() ReminderState {
	switch {
	case r.Completed:
		return ReminderCompleted
	case r.FiredAt != nil:
		return ReminderDueFired
	default:
		return ReminderPending
	}
}

// IsDue reports whether now falls inside [r.Time, r.Time+window).
func IsDue(r Reminder, now time.Time, window time.Duration) bool {
	elapsed := now.Sub(r.Time)
	return elapsed >= 0 && elapsed < window
}

// ReminderScheduler owns the reminder collection.
type ReminderScheduler struct {
	reminders []Reminder
	clock     Clock
	window    time.Duration
}

func NewReminderScheduler(reminders []Reminder, clock Clock, window time.Duration) *ReminderScheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	if window <= 0 {
		window = DefaultDueWindow
	}
	s := &ReminderScheduler{clock: clock, window: window}
	for _, r := range reminders {
		s.reminders = append(s.reminders, r.clone())
	}
	return s
}

func (r Reminder) clone() Reminder {
	out := r
	if r.FiredAt != nil {
		v := *r.FiredAt
		out.FiredAt = &v
	}
	return out
}

func (s *ReminderScheduler) Reminders() []Reminder {
	out := make([]Reminder, 0, len(s.reminders))
	for _, r := range s.reminders {
		out = append(out, r.clone())
	}
	return out
}

type AddReminderInput struct {
	Title   string
	Time    time.Time
	TaskID  string
	HabitID string
}

func (s *ReminderScheduler) Add(in AddReminderInput) (Reminder, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Reminder{}, InvalidInputError{Field: "title", Reason: "title is required"}
	}
	if in.Time.IsZero() {
		return Reminder{}, InvalidInputError{Field: "time", Reason: "time is required"}
	}
	if in.TaskID != "" && in.HabitID != "" {
		return Reminder{}, InvalidInputError{Field: "target", Reason: "a reminder belongs to a task or a habit, not both"}
	}
	r := Reminder{
		ID:      newID(),
		Title:   title,
		Time:    in.Time,
		TaskID:  in.TaskID,
		HabitID: in.HabitID,
	}
	s.reminders = append(s.reminders, r)
	return r.clone(), nil
}

// SetTaskReminder replaces any reminder bound to taskID with a new one.
func (s *ReminderScheduler) SetTaskReminder(taskID, title string, at time.Time) (Reminder, error) {
	if taskID == "" {
		return Reminder{}, InvalidInputError{Field: "taskId", Reason: "task id is required"}
	}
	s.removeWhere(func(r Reminder) bool { return r.TaskID == taskID })
	return s.Add(AddReminderInput{Title: title, Time: at, TaskID: taskID})
}

// SetHabitReminder replaces any reminder bound to habitID with a new one.
func (s *ReminderScheduler) SetHabitReminder(habitID, title string, at time.Time) (Reminder, error) {
	if habitID == "" {
		return Reminder{}, InvalidInputError{Field: "habitId", Reason: "habit id is required"}
	}
	s.removeWhere(func(r Reminder) bool { return r.HabitID == habitID })
	return s.Add(AddReminderInput{Title: title, Time: at, HabitID: habitID})
}

func (s *ReminderScheduler) Complete(id string) (Reminder, error) {
	for i := range s.reminders {
		if s.reminders[i].ID == id {
			s.reminders[i].Completed = true
			return s.reminders[i].clone(), nil
		}
	}
	return Reminder{}, NotFoundError{Kind: "reminder", ID: id}
}

func (s *ReminderScheduler) Delete(id string) error {
	if s.removeWhere(func(r Reminder) bool { return r.ID == id }) == 0 {
		return NotFoundError{Kind: "reminder", ID: id}
	}
	return nil
}

// DeleteForTask drops reminders bound to the task and returns how many went.
func (s *ReminderScheduler) DeleteForTask(taskID string) int {
	return s.removeWhere(func(r Reminder) bool { return r.TaskID == taskID })
}

func (s *ReminderScheduler) DeleteForHabit(habitID string) int {
	return s.removeWhere(func(r Reminder) bool { return r.HabitID == habitID })
}

func (s *ReminderScheduler) removeWhere(match func(Reminder) bool) int {
	kept := s.reminders[:0]
	removed := 0
	for _, r := range s.reminders {
		if match(r) {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	s.reminders = kept
	return removed
}

// Poll fires every pending reminder that is due at now and returns them.
// A fired reminder is stamped with FiredAt and never fires again; one whose
// window passed unpolled is missed.
func (s *ReminderScheduler) Poll(now time.Time) []Reminder {
	var fired []Reminder
	for i := range s.reminders {
		r := &s.reminders[i]
		if r.State() != ReminderPending || !IsDue(*r, now, s.window) {
			continue
		}
		at := now
		r.FiredAt = &at
		fired = append(fired, r.clone())
	}
	return fired
}

// PollNow polls at the scheduler clock's current time.
func (s *ReminderScheduler) PollNow() []Reminder {
	return s.Poll(s.clock.Now())
}

// Upcoming returns pending reminders scheduled after now, soonest first.
func (s *ReminderScheduler) Upcoming(now time.Time) []Reminder {
	var out []Reminder
	for _, r := range s.reminders {
		if r.State() == ReminderPending && r.Time.After(now) {
			out = append(out, r.clone())
		}
	}
	sortReminders(out)
	return out
}

func sortReminders(rs []Reminder) {
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].Time.Before(rs[j].Time) })
}
