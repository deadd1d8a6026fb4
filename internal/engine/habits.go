package engine

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DailyHabitXP      = 15
	WeeklyHabitXP     = 30
	StreakBonusPerDay = 5
	MaxStreakBonus    = 50
)

var newID = uuid.NewString

type Habit struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description,omitempty"`
	Frequency     Frequency   `json:"frequency"`
	Streak        int         `json:"streak"`
	LastCompleted *time.Time  `json:"lastCompleted,omitempty"`
	DaysCompleted []time.Time `json:"daysCompleted"`
	CreatedAt     time.Time   `json:"createdAt"`
}

func (h Habit) clone() Habit {
	out := h
	if h.LastCompleted != nil {
		v := *h.LastCompleted
		out.LastCompleted = &v
	}
	out.DaysCompleted = append([]time.Time(nil), h.DaysCompleted...)
	return out
}

// HabitXP is the experience awarded for a completion that leaves the habit at streak.
func HabitXP(f Frequency, streak int) int {
	if f == FrequencyWeekly {
		return WeeklyHabitXP
	}
	xp := DailyHabitXP
	if streak > 1 {
		xp += min(MaxStreakBonus, streak*StreakBonusPerDay)
	}
	return xp
}

// CanCompleteHabit reports whether h accepts a completion at now.
func CanCompleteHabit(h Habit, now time.Time) bool {
	switch h.Frequency {
	case FrequencyWeekly:
		weekStart := StartOfWeek(now)
		for _, d := range h.DaysCompleted {
			if !d.Before(weekStart) {
				return false
			}
		}
		return true
	default:
		return h.LastCompleted == nil || !SameDay(now, *h.LastCompleted)
	}
}

// HabitStore owns the habit collection and is the only writer of streaks and
// completion history.
type HabitStore struct {
	habits []Habit
	clock  Clock
}

func NewHabitStore(habits []Habit, clock Clock) *HabitStore {
	if clock == nil {
		clock = SystemClock{}
	}
	s := &HabitStore{clock: clock}
	for _, h := range habits {
		s.habits = append(s.habits, h.clone())
	}
	return s
}

func (s *HabitStore) Habits() []Habit {
	out := make([]Habit, 0, len(s.habits))
	for _, h := range s.habits {
		out = append(out, h.clone())
	}
	return out
}

func (s *HabitStore) index(id string) int {
	for i := range s.habits {
		if s.habits[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *HabitStore) Get(id string) (Habit, error) {
	i := s.index(id)
	if i < 0 {
		return Habit{}, NotFoundError{Kind: "habit", ID: id}
	}
	return s.habits[i].clone(), nil
}

type AddHabitInput struct {
	Title       string
	Description string
	Frequency   Frequency
}

func (s *HabitStore) Add(in AddHabitInput) (Habit, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Habit{}, InvalidInputError{Field: "title", Reason: "title is required"}
	}
	if !in.Frequency.IsValid() {
		return Habit{}, InvalidInputError{Field: "frequency", Reason: "must be daily or weekly"}
	}
	h := Habit{
		ID:            newID(),
		Title:         title,
		Description:   strings.TrimSpace(in.Description),
		Frequency:     in.Frequency,
		DaysCompleted: []time.Time{},
		CreatedAt:     s.clock.Now(),
	}
	s.habits = append(s.habits, h)
	return h.clone(), nil
}

func (s *HabitStore) Delete(id string) error {
	i := s.index(id)
	if i < 0 {
		return NotFoundError{Kind: "habit", ID: id}
	}
	s.habits = append(s.habits[:i], s.habits[i+1:]...)
	return nil
}

// HabitCompletion is the outcome of Complete. XP is zero when DidComplete is false.
type HabitCompletion struct {
	Habit       Habit
	DidComplete bool
	XP          int
}

// Complete records a completion for the habit at the clock's current time.
// A second completion inside the same day (daily) or ISO week (weekly)
// leaves the habit untouched and reports DidComplete=false.
func (s *HabitStore) Complete(id string) (HabitCompletion, error) {
	i := s.index(id)
	if i < 0 {
		return HabitCompletion{}, NotFoundError{Kind: "habit", ID: id}
	}
	h := &s.habits[i]
	now := s.clock.Now()

	if !CanCompleteHabit(*h, now) {
		return HabitCompletion{Habit: h.clone()}, nil
	}

	switch h.Frequency {
	case FrequencyWeekly:
		h.Streak++
	default:
		yesterday := StartOfDay(now).AddDate(0, 0, -1)
		if h.LastCompleted != nil && SameDay(yesterday, *h.LastCompleted) {
			h.Streak++
		} else {
			h.Streak = 1
		}
	}

	h.DaysCompleted = append(h.DaysCompleted, now)
	completedAt := now
	h.LastCompleted = &completedAt

	return HabitCompletion{
		Habit:       h.clone(),
		DidComplete: true,
		XP:          HabitXP(h.Frequency, h.Streak),
	}, nil
}

func (s *HabitStore) CanCompleteNow(h Habit) bool {
	return CanCompleteHabit(h, s.clock.Now())
}
