package engine

import (
	"context"

	"teddy/internal/storage"
)

type HabitResult struct {
	Reward
	Habit       Habit
	DidComplete bool
}

// CompleteHabit records a completion and awards HabitXP when it counts.
// A repeated completion in the same period returns DidComplete=false and
// awards nothing.
func (s *Service) CompleteHabit(ctx context.Context, id string) (*HabitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.loadHabits(ctx)
	if err != nil {
		return nil, err
	}
	cs := s.newChangeSet()
	l, err := s.loadLedger(ctx, cs)
	if err != nil {
		return nil, err
	}

	c, err := store.Complete(id)
	if err != nil {
		return nil, err
	}
	res := &HabitResult{Reward: newReward(l), Habit: c.Habit, DidComplete: c.DidComplete}
	if !c.DidComplete {
		return res, nil
	}

	cs.put(storage.KeyHabits, store.Habits())
	xp, err := s.award(cs, l, "habit", id, c.XP)
	if err != nil {
		return nil, err
	}
	res.apply(xp)

	if err := s.commit(ctx, cs); err != nil {
		return nil, err
	}
	res.Events = cs.events
	return res, nil
}

type TaskResult struct {
	Reward
	Task     Task
	Changed  bool
	Unlocked *Accessory
}

// CompleteTask sets the task's completion flag. Marking it complete awards XP
// by priority and may unlock an accessory; un-marking keeps earned XP.
// Setting the flag it already has is a no-op.
func (s *Service) CompleteTask(ctx context.Context, id string, completed bool) (*TaskResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := loadCollection(ctx, s, storage.KeyTasks, []Task{})
	if err != nil {
		return nil, err
	}
	i := findTask(tasks, id)
	if i < 0 {
		return nil, NotFoundError{Kind: "task", ID: id}
	}
	cs := s.newChangeSet()
	l, err := s.loadLedger(ctx, cs)
	if err != nil {
		return nil, err
	}

	res := &TaskResult{Reward: newReward(l), Task: tasks[i]}
	if tasks[i].Completed == completed {
		return res, nil
	}

	tasks[i].Completed = completed
	tasks[i].CompletedAt = nil
	if completed {
		now := s.clock.Now()
		tasks[i].CompletedAt = &now
	}
	cs.put(storage.KeyTasks, tasks)
	res.Task = tasks[i]
	res.Changed = true

	if completed {
		xp, err := s.award(cs, l, "task", id, s.rewards.TaskXP(tasks[i].Priority))
		if err != nil {
			return nil, err
		}
		res.apply(xp)

		unlocked, err := l.UnlockAccessory(countCompleted(tasks))
		if err != nil {
			return nil, err
		}
		if unlocked != nil {
			cs.put(storage.KeyAccessories, l.Accessories())
			res.Unlocked = unlocked
		}
	}

	if err := s.commit(ctx, cs); err != nil {
		return nil, err
	}
	res.Events = cs.events
	return res, nil
}

// AwardExperience grants amount directly, for completions the engine does not track.
func (s *Service) AwardExperience(ctx context.Context, kind, sourceID string, amount int) (*ExperienceResult, []Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cs := s.newChangeSet()
	l, err := s.loadLedger(ctx, cs)
	if err != nil {
		return nil, nil, err
	}
	res, err := s.award(cs, l, kind, sourceID, amount)
	if err != nil {
		return nil, nil, err
	}
	if err := s.commit(ctx, cs); err != nil {
		return nil, nil, err
	}
	return &res, cs.events, nil
}
