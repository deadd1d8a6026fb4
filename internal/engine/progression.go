package engine

import (
	"fmt"
	"math"
)

const (
	StartingLevel               = 1
	StartingNextLevelExperience = 100

	// LevelGrowthFactor scales the threshold on every level-up (floored).
	LevelGrowthFactor = 1.5

	// AccessoryUnlockEvery is the completed-task cadence for accessory unlocks.
	AccessoryUnlockEvery = 5
)

type ProgressionState struct {
	Level               int `json:"level"`
	Experience          int `json:"experience"`
	NextLevelExperience int `json:"nextLevelExperience"`
}

func NewProgressionState() ProgressionState {
	return ProgressionState{
		Level:               StartingLevel,
		Experience:          0,
		NextLevelExperience: StartingNextLevelExperience,
	}
}

// normalized repairs values a hand-edited or older document may carry.
func (p ProgressionState) normalized() ProgressionState {
	if p.Level < StartingLevel {
		p.Level = StartingLevel
	}
	if p.NextLevelExperience <= 0 {
		p.NextLevelExperience = StartingNextLevelExperience
	}
	if p.Experience < 0 {
		p.Experience = 0
	}
	return p
}

// NextThreshold returns the experience needed for the level after a level-up.
func NextThreshold(current int) int {
	next := int(math.Floor(float64(current) * LevelGrowthFactor))
	if next < 1 {
		next = 1
	}
	return next
}

// ApplyExperience adds amount to p and performs as many level-ups as the
// total covers, carrying the overflow each time. It returns the new state
// and the number of levels gained.
func ApplyExperience(p ProgressionState, amount int) (ProgressionState, int, error) {
	if amount < 0 {
		return p, 0, InvalidInputError{Field: "amount", Reason: fmt.Sprintf("must not be negative, got %d", amount)}
	}
	p = p.normalized()
	p.Experience += amount

	gained := 0
	for p.Experience >= p.NextLevelExperience {
		p.Experience -= p.NextLevelExperience
		p.Level++
		p.NextLevelExperience = NextThreshold(p.NextLevelExperience)
		gained++
	}
	return p, gained, nil
}

// Fraction reports progress through the current level in [0, 1).
func (p ProgressionState) Fraction() float64 {
	if p.NextLevelExperience <= 0 {
		return 0
	}
	return float64(p.Experience) / float64(p.NextLevelExperience)
}

type ExperienceResult struct {
	ProgressionState
	Amount       int
	LeveledUp    bool
	LevelsGained int
}

// Ledger owns the companion's progression and accessory unlock state.
type Ledger struct {
	companion   Customization
	accessories []Accessory
	rnd         Rand
	notifier    Notifier
}

func NewLedger(companion Customization, accessories []Accessory, rnd Rand, notifier Notifier) *Ledger {
	if rnd == nil {
		rnd = globalRand{}
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	companion.ProgressionState = companion.ProgressionState.normalized()
	return &Ledger{
		companion:   companion.clone(),
		accessories: append([]Accessory(nil), accessories...),
		rnd:         rnd,
		notifier:    notifier,
	}
}

func (l *Ledger) State() ProgressionState { return l.companion.ProgressionState }

func (l *Ledger) Companion() Customization { return l.companion.clone() }

func (l *Ledger) Accessories() []Accessory {
	return append([]Accessory(nil), l.accessories...)
}

// GainExperience adds amount and emits one EventLevelUp per level gained.
func (l *Ledger) GainExperience(amount int) (ExperienceResult, error) {
	next, gained, err := ApplyExperience(l.companion.ProgressionState, amount)
	if err != nil {
		return ExperienceResult{}, err
	}
	before := l.companion.Level
	l.companion.ProgressionState = next

	for lvl := before + 1; lvl <= next.Level; lvl++ {
		l.notifier.Notify(Event{
			Kind:    EventLevelUp,
			Title:   "Level Up!",
			Message: fmt.Sprintf("%s has reached level %d! Keep up the good work!", l.companion.Name, lvl),
			Level:   lvl,
		})
	}

	return ExperienceResult{
		ProgressionState: next,
		Amount:           amount,
		LeveledUp:        gained > 0,
		LevelsGained:     gained,
	}, nil
}

// UnlockAccessory unlocks one random locked accessory when completedCount is
// a positive multiple of AccessoryUnlockEvery. Calls are not memoized: the
// same count twice can unlock two accessories.
func (l *Ledger) UnlockAccessory(completedCount int) (*Accessory, error) {
	if completedCount < 0 {
		return nil, InvalidInputError{Field: "completedCount", Reason: fmt.Sprintf("must not be negative, got %d", completedCount)}
	}
	if completedCount == 0 || completedCount%AccessoryUnlockEvery != 0 {
		return nil, nil
	}

	var locked []int
	for i := range l.accessories {
		if !l.accessories[i].Unlocked {
			locked = append(locked, i)
		}
	}
	if len(locked) == 0 {
		return nil, nil
	}

	i := locked[l.rnd.IntN(len(locked))]
	l.accessories[i].Unlocked = true
	unlocked := l.accessories[i]

	l.notifier.Notify(Event{
		Kind:      EventAccessoryUnlocked,
		Title:     "New accessory unlocked!",
		Message:   fmt.Sprintf("You've unlocked the %q for %s!", unlocked.Name, l.companion.Name),
		Accessory: &unlocked,
	})
	return &unlocked, nil
}

func (l *Ledger) accessory(id string) *Accessory {
	for i := range l.accessories {
		if l.accessories[i].ID == id {
			return &l.accessories[i]
		}
	}
	return nil
}
