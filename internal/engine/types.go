package engine

import (
	"fmt"
	"strings"
)

type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly:
		return true
	default:
		return false
	}
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// CompanionMood is the companion's displayed mood.
type CompanionMood string

const (
	MoodHappy   CompanionMood = "happy"
	MoodExcited CompanionMood = "excited"
	MoodNeutral CompanionMood = "neutral"
	MoodSad     CompanionMood = "sad"
)

func (m CompanionMood) IsValid() bool {
	switch m {
	case MoodHappy, MoodExcited, MoodNeutral, MoodSad:
		return true
	default:
		return false
	}
}

// JournalMood is the mood attached to a journal entry.
type JournalMood string

const (
	JournalHappy   JournalMood = "happy"
	JournalNeutral JournalMood = "neutral"
	JournalSad     JournalMood = "sad"
	JournalExcited JournalMood = "excited"
	JournalCalm    JournalMood = "calm"
	JournalAngry   JournalMood = "angry"
)

func (m JournalMood) IsValid() bool {
	switch m {
	case JournalHappy, JournalNeutral, JournalSad, JournalExcited, JournalCalm, JournalAngry:
		return true
	default:
		return false
	}
}

type AccessoryType string

const (
	AccessoryHat     AccessoryType = "hat"
	AccessoryScarf   AccessoryType = "scarf"
	AccessoryGlasses AccessoryType = "glasses"
	AccessoryOutfit  AccessoryType = "outfit"
)

func normalize(input string) string {
	return strings.TrimSpace(strings.ToLower(input))
}

func ParseFrequency(input string) (Frequency, error) {
	f := Frequency(normalize(input))
	if !f.IsValid() {
		return "", InvalidInputError{Field: "frequency", Reason: fmt.Sprintf("unknown value %q", input)}
	}
	return f, nil
}

// ParsePriority parses user input; empty input means medium.
func ParsePriority(input string) (Priority, error) {
	s := normalize(input)
	if s == "" {
		return PriorityMedium, nil
	}
	p := Priority(s)
	if !p.IsValid() {
		return "", InvalidInputError{Field: "priority", Reason: fmt.Sprintf("unknown value %q", input)}
	}
	return p, nil
}

func ParseCompanionMood(input string) (CompanionMood, error) {
	m := CompanionMood(normalize(input))
	if !m.IsValid() {
		return "", InvalidInputError{Field: "mood", Reason: fmt.Sprintf("unknown value %q", input)}
	}
	return m, nil
}

// ParseJournalMood parses user input; empty input means neutral.
func ParseJournalMood(input string) (JournalMood, error) {
	s := normalize(input)
	if s == "" {
		return JournalNeutral, nil
	}
	m := JournalMood(s)
	if !m.IsValid() {
		return "", InvalidInputError{Field: "mood", Reason: fmt.Sprintf("unknown value %q", input)}
	}
	return m, nil
}
