package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"teddy/internal/storage"
)

// AddReminder creates a reminder. A referenced task or habit must exist.
func (s *Service) AddReminder(ctx context.Context, in AddReminderInput) (Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if in.TaskID != "" {
		if _, err := s.taskTitle(ctx, in.TaskID); err != nil {
			return Reminder{}, err
		}
	}
	if in.HabitID != "" {
		if _, err := s.habitTitle(ctx, in.HabitID); err != nil {
			return Reminder{}, err
		}
	}

	sched, err := s.loadReminders(ctx)
	if err != nil {
		return Reminder{}, err
	}
	r, err := sched.Add(in)
	if err != nil {
		return Reminder{}, err
	}
	if err := s.saveReminders(ctx, sched); err != nil {
		return Reminder{}, err
	}
	return r, nil
}

// SetTaskReminder points the task's single reminder at a new time.
func (s *Service) SetTaskReminder(ctx context.Context, taskID string, at time.Time) (Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	title, err := s.taskTitle(ctx, taskID)
	if err != nil {
		return Reminder{}, err
	}
	sched, err := s.loadReminders(ctx)
	if err != nil {
		return Reminder{}, err
	}
	r, err := sched.SetTaskReminder(taskID, title, at)
	if err != nil {
		return Reminder{}, err
	}
	if err := s.saveReminders(ctx, sched); err != nil {
		return Reminder{}, err
	}
	return r, nil
}

// SetHabitReminder points the habit's single reminder at a new time.
func (s *Service) SetHabitReminder(ctx context.Context, habitID string, at time.Time) (Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	title, err := s.habitTitle(ctx, habitID)
	if err != nil {
		return Reminder{}, err
	}
	sched, err := s.loadReminders(ctx)
	if err != nil {
		return Reminder{}, err
	}
	r, err := sched.SetHabitReminder(habitID, title, at)
	if err != nil {
		return Reminder{}, err
	}
	if err := s.saveReminders(ctx, sched); err != nil {
		return Reminder{}, err
	}
	return r, nil
}

func (s *Service) CompleteReminder(ctx context.Context, id string) (Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sched, err := s.loadReminders(ctx)
	if err != nil {
		return Reminder{}, err
	}
	r, err := sched.Complete(id)
	if err != nil {
		return Reminder{}, err
	}
	if err := s.saveReminders(ctx, sched); err != nil {
		return Reminder{}, err
	}
	return r, nil
}

func (s *Service) DeleteReminder(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sched, err := s.loadReminders(ctx)
	if err != nil {
		return err
	}
	if err := sched.Delete(id); err != nil {
		return err
	}
	return s.saveReminders(ctx, sched)
}

// ListReminders returns all reminders ordered by time.
func (s *Service) ListReminders(ctx context.Context) ([]Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sched, err := s.loadReminders(ctx)
	if err != nil {
		return nil, err
	}
	out := sched.Reminders()
	sortReminders(out)
	return out, nil
}

// PollReminders fires the reminders due now, saves their fired state and
// publishes one EventReminderDue each.
func (s *Service) PollReminders(ctx context.Context) ([]Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sched, err := s.loadReminders(ctx)
	if err != nil {
		return nil, err
	}
	fired := sched.PollNow()
	if len(fired) == 0 {
		return nil, nil
	}

	cs := s.newChangeSet()
	cs.put(storage.KeyReminders, sched.Reminders())
	for i := range fired {
		r := fired[i]
		cs.Notify(Event{
			Kind:     EventReminderDue,
			Title:    "Reminder: " + r.Title,
			Message:  "This task is due now!",
			Reminder: &r,
		})
	}
	if err := s.commit(ctx, cs); err != nil {
		return nil, err
	}
	return fired, nil
}

// RunReminderLoop polls once immediately and then every interval until ctx
// is done. Poll failures are logged and the loop keeps going.
func (s *Service) RunReminderLoop(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := s.PollReminders(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			s.logger.Error("poll reminders", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (s *Service) saveReminders(ctx context.Context, sched *ReminderScheduler) error {
	cs := s.newChangeSet()
	cs.put(storage.KeyReminders, sched.Reminders())
	return s.commit(ctx, cs)
}

func (s *Service) taskTitle(ctx context.Context, id string) (string, error) {
	tasks, err := loadCollection(ctx, s, storage.KeyTasks, []Task{})
	if err != nil {
		return "", err
	}
	i := findTask(tasks, id)
	if i < 0 {
		return "", NotFoundError{Kind: "task", ID: id}
	}
	return tasks[i].Title, nil
}

func (s *Service) habitTitle(ctx context.Context, id string) (string, error) {
	store, err := s.loadHabits(ctx)
	if err != nil {
		return "", err
	}
	h, err := store.Get(id)
	if err != nil {
		return "", err
	}
	return h.Title, nil
}
