package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"teddy/internal/storage"
)

type GoalResult struct {
	Reward
	Goal     Goal
	Achieved bool
}

// UpdateGoal sets the goal's progress. Crossing the target from below
// reports Achieved and awards the goal reward once.
func (s *Service) UpdateGoal(ctx context.Context, id string, progress int) (*GoalResult, error) {
	if progress < 0 {
		return nil, InvalidInputError{Field: "progress", Reason: fmt.Sprintf("must not be negative, got %d", progress)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	goals, err := loadCollection(ctx, s, storage.KeyGoals, []Goal{})
	if err != nil {
		return nil, err
	}
	i := findGoal(goals, id)
	if i < 0 {
		return nil, NotFoundError{Kind: "goal", ID: id}
	}
	cs := s.newChangeSet()
	l, err := s.loadLedger(ctx, cs)
	if err != nil {
		return nil, err
	}

	wasComplete := goals[i].Achieved()
	goals[i].Progress = progress
	cs.put(storage.KeyGoals, goals)

	res := &GoalResult{Reward: newReward(l), Goal: goals[i]}
	if !wasComplete && goals[i].Achieved() {
		res.Achieved = true
		cs.Notify(Event{
			Kind:    EventGoalAchieved,
			Title:   "Goal achieved!",
			Message: fmt.Sprintf("Congratulations! You've reached your goal: %q", goals[i].Title),
		})
		xp, err := s.award(cs, l, "goal", id, s.rewards.Goal)
		if err != nil {
			return nil, err
		}
		res.apply(xp)
	}

	if err := s.commit(ctx, cs); err != nil {
		return nil, err
	}
	res.Events = cs.events
	return res, nil
}

// DeleteTask removes the task and any reminder bound to it.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := loadCollection(ctx, s, storage.KeyTasks, []Task{})
	if err != nil {
		return err
	}
	i := findTask(tasks, id)
	if i < 0 {
		return NotFoundError{Kind: "task", ID: id}
	}
	tasks = append(tasks[:i], tasks[i+1:]...)

	sched, err := s.loadReminders(ctx)
	if err != nil {
		return err
	}
	cs := s.newChangeSet()
	cs.put(storage.KeyTasks, tasks)
	if sched.DeleteForTask(id) > 0 {
		cs.put(storage.KeyReminders, sched.Reminders())
	}
	return s.commit(ctx, cs)
}

// DeleteHabit removes the habit, its history and any reminder bound to it.
func (s *Service) DeleteHabit(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.loadHabits(ctx)
	if err != nil {
		return err
	}
	if err := store.Delete(id); err != nil {
		return err
	}
	sched, err := s.loadReminders(ctx)
	if err != nil {
		return err
	}
	cs := s.newChangeSet()
	cs.put(storage.KeyHabits, store.Habits())
	if sched.DeleteForHabit(id) > 0 {
		cs.put(storage.KeyReminders, sched.Reminders())
	}
	return s.commit(ctx, cs)
}

// Customize changes the companion's cosmetics. Progression is untouched.
func (s *Service) Customize(ctx context.Context, in CustomizeInput) (Customization, error) {
	if in.Location != nil && strings.TrimSpace(in.Location.Timezone) != "" {
		if _, err := time.LoadLocation(in.Location.Timezone); err != nil {
			return Customization{}, InvalidInputError{Field: "timezone", Reason: err.Error()}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cs := s.newChangeSet()
	l, err := s.loadLedger(ctx, cs)
	if err != nil {
		return Customization{}, err
	}
	c, err := l.Customize(in)
	if err != nil {
		return Customization{}, err
	}
	cs.put(storage.KeyCustomization, c)
	if err := s.commit(ctx, cs); err != nil {
		return Customization{}, err
	}
	return c, nil
}

// CurrentAdvice returns today's advice, picking and saving a new one on the
// first call of the day.
func (s *Service) CurrentAdvice(ctx context.Context) (DailyAdvice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	advices, err := loadCollection(ctx, s, storage.KeyAdvices, []DailyAdvice{})
	if err != nil {
		return DailyAdvice{}, err
	}
	a, advices, created := adviceForDay(advices, s.clock.Now(), s.rnd)
	if !created {
		return a, nil
	}
	cs := s.newChangeSet()
	cs.put(storage.KeyAdvices, advices)
	if err := s.commit(ctx, cs); err != nil {
		return DailyAdvice{}, err
	}
	return a, nil
}

// SaveAdvice bookmarks (or un-bookmarks) an advice.
func (s *Service) SaveAdvice(ctx context.Context, id string, saved bool) (DailyAdvice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	advices, err := loadCollection(ctx, s, storage.KeyAdvices, []DailyAdvice{})
	if err != nil {
		return DailyAdvice{}, err
	}
	for i := range advices {
		if advices[i].ID != id {
			continue
		}
		advices[i].Saved = saved
		cs := s.newChangeSet()
		cs.put(storage.KeyAdvices, advices)
		if err := s.commit(ctx, cs); err != nil {
			return DailyAdvice{}, err
		}
		return advices[i], nil
	}
	return DailyAdvice{}, NotFoundError{Kind: "advice", ID: id}
}
