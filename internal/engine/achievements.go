package engine

import (
	"context"

	"teddy/internal/storage"
)

// Achievement represents a badge the user can earn.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Earned      bool
}

// AchievementChecker calculates which achievements have been earned from current state.
type AchievementChecker struct {
	companion Customization
	tasks     []Task
	habits    []Habit
	goals     []Goal
	journal   []JournalEntry
}

func NewAchievementChecker(companion Customization, tasks []Task, habits []Habit, goals []Goal, journal []JournalEntry) *AchievementChecker {
	return &AchievementChecker{
		companion: companion,
		tasks:     tasks,
		habits:    habits,
		goals:     goals,
		journal:   journal,
	}
}

// GetAchievements returns all achievements with their earned status.
func (c *AchievementChecker) GetAchievements() []Achievement {
	return []Achievement{
		// Level milestones
		c.levelAchievement("growing_up", "Growing Up", "Reach level 2", "🌱", 2),
		c.levelAchievement("best_friends", "Best Friends", "Reach level 5", "🧸", 5),
		c.levelAchievement("legend", "Legend", "Reach level 10", "👑", 10),

		// Task completion milestones
		c.taskCountAchievement("first_task", "First Step", "Complete 1 task", "✓", 1),
		c.taskCountAchievement("productive", "Productive", "Complete 10 tasks", "📋", 10),
		c.taskCountAchievement("powerhouse", "Powerhouse", "Complete 50 tasks", "🏆", 50),

		// Streaks
		c.streakAchievement("warming_up", "Warming Up", "Reach a 3 day streak", "🔥", 3),
		c.streakAchievement("on_a_roll", "On a Roll", "Reach a 7 day streak", "⚡", 7),
		c.streakAchievement("unstoppable", "Unstoppable", "Reach a 30 day streak", "💫", 30),

		c.goalAchievement("goal_getter", "Goal Getter", "Reach a goal", "🎯"),
		c.journalAchievement("dear_diary", "Dear Diary", "Write a journal entry", "📓"),
	}
}

// CountEarned returns how many achievements have been earned.
func (c *AchievementChecker) CountEarned() int {
	count := 0
	for _, a := range c.GetAchievements() {
		if a.Earned {
			count++
		}
	}
	return count
}

func (c *AchievementChecker) levelAchievement(id, name, desc, icon string, level int) Achievement {
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: c.companion.Level >= level}
}

func (c *AchievementChecker) taskCountAchievement(id, name, desc, icon string, count int) Achievement {
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: countCompleted(c.tasks) >= count}
}

func (c *AchievementChecker) streakAchievement(id, name, desc, icon string, streak int) Achievement {
	earned := false
	for _, h := range c.habits {
		if h.Frequency == FrequencyDaily && h.Streak >= streak {
			earned = true
			break
		}
	}
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) goalAchievement(id, name, desc, icon string) Achievement {
	earned := false
	for _, g := range c.goals {
		if g.Achieved() {
			earned = true
			break
		}
	}
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) journalAchievement(id, name, desc, icon string) Achievement {
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: len(c.journal) > 0}
}

// Achievements loads current state and evaluates every achievement.
func (s *Service) Achievements(ctx context.Context) ([]Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.loadLedger(ctx, nil)
	if err != nil {
		return nil, err
	}
	tasks, err := loadCollection(ctx, s, storage.KeyTasks, []Task{})
	if err != nil {
		return nil, err
	}
	store, err := s.loadHabits(ctx)
	if err != nil {
		return nil, err
	}
	goals, err := loadCollection(ctx, s, storage.KeyGoals, []Goal{})
	if err != nil {
		return nil, err
	}
	journal, err := loadCollection(ctx, s, storage.KeyJournal, []JournalEntry{})
	if err != nil {
		return nil, err
	}
	checker := NewAchievementChecker(l.Companion(), tasks, store.Habits(), goals, journal)
	return checker.GetAchievements(), nil
}
