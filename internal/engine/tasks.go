package engine

import "time"

type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Category    string     `json:"category"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Rewards holds the XP awarded for tasks and goals.
type Rewards struct {
	TaskLow    int
	TaskMedium int
	TaskHigh   int
	Goal       int
}

func DefaultRewards() Rewards {
	return Rewards{TaskLow: 10, TaskMedium: 20, TaskHigh: 30, Goal: 50}
}

// TaskXP is the experience for completing a task of priority p.
func (r Rewards) TaskXP(p Priority) int {
	switch p {
	case PriorityHigh:
		return r.TaskHigh
	case PriorityMedium:
		return r.TaskMedium
	default:
		return r.TaskLow
	}
}

func countCompleted(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

func findTask(tasks []Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}
