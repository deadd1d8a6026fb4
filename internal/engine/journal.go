package engine

import "time"

type JournalEntry struct {
	ID      string      `json:"id"`
	Content string      `json:"content"`
	Mood    JournalMood `json:"mood"`
	Date    time.Time   `json:"date"`
	Tags    []string    `json:"tags"`
}
