package engine

import (
	"context"
	"strings"
	"time"

	"teddy/internal/storage"
)

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", InvalidInputError{Field: "title", Reason: "title is required"}
	}
	return t, nil
}

func (s *Service) AddHabit(ctx context.Context, in AddHabitInput) (Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.loadHabits(ctx)
	if err != nil {
		return Habit{}, err
	}
	h, err := store.Add(in)
	if err != nil {
		return Habit{}, err
	}

	cs := s.newChangeSet()
	cs.put(storage.KeyHabits, store.Habits())
	if err := s.commit(ctx, cs); err != nil {
		return Habit{}, err
	}
	return h, nil
}

type AddTaskInput struct {
	Title       string
	Description string
	Priority    Priority
	Category    string
	DueDate     *time.Time
}

func (s *Service) AddTask(ctx context.Context, in AddTaskInput) (Task, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return Task{}, err
	}
	priority := in.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.IsValid() {
		return Task{}, InvalidInputError{Field: "priority", Reason: "must be low, medium or high"}
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = "General"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := loadCollection(ctx, s, storage.KeyTasks, []Task{})
	if err != nil {
		return Task{}, err
	}
	t := Task{
		ID:          newID(),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Priority:    priority,
		DueDate:     in.DueDate,
		Category:    category,
		CreatedAt:   s.clock.Now(),
	}
	tasks = append(tasks, t)

	cs := s.newChangeSet()
	cs.put(storage.KeyTasks, tasks)
	if err := s.commit(ctx, cs); err != nil {
		return Task{}, err
	}
	return t, nil
}

type AddGoalInput struct {
	Title       string
	Description string
	Target      int
	Progress    int
	Category    string
	DueDate     *time.Time
}

func (s *Service) AddGoal(ctx context.Context, in AddGoalInput) (Goal, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return Goal{}, err
	}
	if in.Target <= 0 {
		return Goal{}, InvalidInputError{Field: "target", Reason: "must be positive"}
	}
	if in.Progress < 0 {
		return Goal{}, InvalidInputError{Field: "progress", Reason: "must not be negative"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	goals, err := loadCollection(ctx, s, storage.KeyGoals, []Goal{})
	if err != nil {
		return Goal{}, err
	}
	g := Goal{
		ID:          newID(),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Progress:    in.Progress,
		Target:      in.Target,
		Category:    strings.TrimSpace(in.Category),
		DueDate:     in.DueDate,
		CreatedAt:   s.clock.Now(),
	}
	goals = append(goals, g)

	cs := s.newChangeSet()
	cs.put(storage.KeyGoals, goals)
	if err := s.commit(ctx, cs); err != nil {
		return Goal{}, err
	}
	return g, nil
}

type AddJournalInput struct {
	Content string
	Mood    JournalMood
	Tags    []string
}

// AddJournalEntry stores a new entry ahead of older ones.
func (s *Service) AddJournalEntry(ctx context.Context, in AddJournalInput) (JournalEntry, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return JournalEntry{}, InvalidInputError{Field: "content", Reason: "content is required"}
	}
	mood := in.Mood
	if mood == "" {
		mood = JournalNeutral
	}
	if !mood.IsValid() {
		return JournalEntry{}, InvalidInputError{Field: "mood", Reason: "unknown mood " + string(mood)}
	}

	tags := []string{}
	seen := map[string]bool{}
	for _, tag := range in.Tags {
		tag = normalize(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := loadCollection(ctx, s, storage.KeyJournal, []JournalEntry{})
	if err != nil {
		return JournalEntry{}, err
	}
	e := JournalEntry{
		ID:      newID(),
		Content: content,
		Mood:    mood,
		Date:    s.clock.Now(),
		Tags:    tags,
	}
	entries = append([]JournalEntry{e}, entries...)

	cs := s.newChangeSet()
	cs.put(storage.KeyJournal, entries)
	if err := s.commit(ctx, cs); err != nil {
		return JournalEntry{}, err
	}
	return e, nil
}
