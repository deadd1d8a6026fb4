package engine

import "time"

type EventKind string

const (
	EventLevelUp           EventKind = "level_up"
	EventAccessoryUnlocked EventKind = "accessory_unlocked"
	EventReminderDue       EventKind = "reminder_due"
	EventGoalAchieved      EventKind = "goal_achieved"
)

// Event is a user-facing notification raised by the engine.
type Event struct {
	Kind      EventKind
	Title     string
	Message   string
	Level     int
	Accessory *Accessory
	Reminder  *Reminder
	At        time.Time
}

type Notifier interface {
	Notify(Event)
}

type NotifierFunc func(Event)

func (f NotifierFunc) Notify(e Event) { f(e) }

type NopNotifier struct{}

func (NopNotifier) Notify(Event) {}
