package engine

import (
	"context"
	"sort"

	"teddy/internal/storage"
)

func (s *Service) ListHabits(ctx context.Context) ([]Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	store, err := s.loadHabits(ctx)
	if err != nil {
		return nil, err
	}
	return store.Habits(), nil
}

// CanCompleteHabit reports whether h accepts a completion right now.
func (s *Service) CanCompleteHabit(h Habit) bool {
	return CanCompleteHabit(h, s.clock.Now())
}

// ListTasks returns open tasks first (by due date, then creation), then completed ones.
func (s *Service) ListTasks(ctx context.Context) ([]Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks, err := loadCollection(ctx, s, storage.KeyTasks, []Task{})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.Completed != b.Completed {
			return !a.Completed
		}
		if (a.DueDate == nil) != (b.DueDate == nil) {
			return a.DueDate != nil
		}
		if a.DueDate != nil && !a.DueDate.Equal(*b.DueDate) {
			return a.DueDate.Before(*b.DueDate)
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	return tasks, nil
}

func (s *Service) ListGoals(ctx context.Context) ([]Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loadCollection(ctx, s, storage.KeyGoals, []Goal{})
}

// ListJournal returns entries newest first.
func (s *Service) ListJournal(ctx context.Context) ([]JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loadCollection(ctx, s, storage.KeyJournal, []JournalEntry{})
}

func (s *Service) SavedAdvices(ctx context.Context) ([]DailyAdvice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	advices, err := loadCollection(ctx, s, storage.KeyAdvices, []DailyAdvice{})
	if err != nil {
		return nil, err
	}
	var out []DailyAdvice
	for _, a := range advices {
		if a.Saved {
			out = append(out, a)
		}
	}
	return out, nil
}

// Companion returns the companion document and the accessory wardrobe.
func (s *Service) Companion(ctx context.Context) (Customization, []Accessory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, err := s.loadLedger(ctx, nil)
	if err != nil {
		return Customization{}, nil, err
	}
	return l.Companion(), l.Accessories(), nil
}

func (s *Service) Weather() WeatherCondition {
	return WeatherAt(s.clock.Now(), s.rnd)
}

// History returns the most recent XP awards, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]storage.LedgerEntry, error) {
	return s.ledger.ListRecent(ctx, limit)
}

// XPToday sums the experience awarded since local midnight.
func (s *Service) XPToday(ctx context.Context) (int, error) {
	return s.ledger.SumSince(ctx, StartOfDay(s.clock.Now()))
}
