package storage

import "time"

// Collection keys for the blob table.
const (
	KeyTasks         = "tasks"
	KeyHabits        = "habits"
	KeyGoals         = "goals"
	KeyCustomization = "customization"
	KeyAccessories   = "accessories"
	KeyAdvices       = "advices"
	KeyJournal       = "journal"
	KeyReminders     = "reminders"
)

type LedgerEntry struct {
	ID         int64
	SourceKind string
	SourceID   string
	Amount     int
	LevelAfter int
	AwardedAt  time.Time
}
