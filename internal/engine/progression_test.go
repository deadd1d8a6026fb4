package engine

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger(p ProgressionState, rnd Rand) (*Ledger, *recorder) {
	rec := &recorder{}
	c := DefaultCustomization("Teddy")
	c.ProgressionState = p
	return NewLedger(c, DefaultAccessories(), rnd, rec), rec
}

func TestGainExperienceCarriesOverflow(t *testing.T) {
	l, rec := newTestLedger(ProgressionState{Level: 1, Experience: 90, NextLevelExperience: 100}, fixedRand{})

	res, err := l.GainExperience(20)
	require.NoError(t, err)

	want := ProgressionState{Level: 2, Experience: 10, NextLevelExperience: 150}
	if diff := cmp.Diff(want, res.ProgressionState); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, res.LeveledUp)
	assert.Equal(t, 1, res.LevelsGained)
	assert.Equal(t, want, l.State())

	require.Len(t, rec.events, 1)
	assert.Equal(t, EventLevelUp, rec.events[0].Kind)
	assert.Equal(t, 2, rec.events[0].Level)
	assert.Contains(t, rec.events[0].Message, "Teddy has reached level 2")
}

func TestGainExperienceBelowThreshold(t *testing.T) {
	l, rec := newTestLedger(NewProgressionState(), fixedRand{})

	res, err := l.GainExperience(99)
	require.NoError(t, err)
	assert.False(t, res.LeveledUp)
	assert.Equal(t, ProgressionState{Level: 1, Experience: 99, NextLevelExperience: 100}, res.ProgressionState)
	assert.Empty(t, rec.events)

	res, err = l.GainExperience(0)
	require.NoError(t, err)
	assert.Equal(t, 99, res.Experience)
}

func TestGainExperienceExactThreshold(t *testing.T) {
	l, _ := newTestLedger(NewProgressionState(), fixedRand{})

	res, err := l.GainExperience(100)
	require.NoError(t, err)
	assert.Equal(t, ProgressionState{Level: 2, Experience: 0, NextLevelExperience: 150}, res.ProgressionState)
}

func TestGainExperienceMultipleLevels(t *testing.T) {
	l, rec := newTestLedger(NewProgressionState(), fixedRand{})

	// 100 + 150 + 225 = 475; 500 leaves 25 towards 337.
	res, err := l.GainExperience(500)
	require.NoError(t, err)
	assert.Equal(t, ProgressionState{Level: 4, Experience: 25, NextLevelExperience: 337}, res.ProgressionState)
	assert.Equal(t, 3, res.LevelsGained)
	assert.Less(t, res.Experience, res.NextLevelExperience)

	var levels []int
	for _, e := range rec.events {
		levels = append(levels, e.Level)
	}
	assert.Equal(t, []int{2, 3, 4}, levels)
}

func TestGainExperienceRejectsNegative(t *testing.T) {
	l, _ := newTestLedger(NewProgressionState(), fixedRand{})

	_, err := l.GainExperience(-5)
	var invalid InvalidInputError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "amount", invalid.Field)
	assert.Equal(t, NewProgressionState(), l.State())
}

func TestNextThreshold(t *testing.T) {
	assert.Equal(t, 150, NextThreshold(100))
	assert.Equal(t, 225, NextThreshold(150))
	assert.Equal(t, 337, NextThreshold(225))
	assert.Equal(t, 1, NextThreshold(0))
}

func TestProgressionNormalizesBrokenState(t *testing.T) {
	l, _ := newTestLedger(ProgressionState{Level: 0, Experience: -3, NextLevelExperience: 0}, fixedRand{})
	assert.Equal(t, NewProgressionState(), l.State())
}

func lockedIDs(accs []Accessory) []string {
	var out []string
	for _, a := range accs {
		if !a.Unlocked {
			out = append(out, a.ID)
		}
	}
	return out
}

func TestUnlockAccessoryCadence(t *testing.T) {
	tests := []struct {
		count      int
		wantUnlock bool
	}{
		{0, false},
		{1, false},
		{4, false},
		{5, true},
		{6, false},
		{10, true},
		{11, false},
	}
	for _, tt := range tests {
		l, rec := newTestLedger(NewProgressionState(), fixedRand{})
		got, err := l.UnlockAccessory(tt.count)
		require.NoError(t, err)
		if !tt.wantUnlock {
			assert.Nil(t, got, "count %d", tt.count)
			assert.Empty(t, rec.events)
			assert.Len(t, lockedIDs(l.Accessories()), 2)
			continue
		}
		require.NotNil(t, got, "count %d", tt.count)
		assert.True(t, got.Unlocked)
		assert.Len(t, lockedIDs(l.Accessories()), 1)
		require.Len(t, rec.events, 1)
		assert.Equal(t, EventAccessoryUnlocked, rec.events[0].Kind)
	}
}

func TestUnlockAccessoryUsesRandomSource(t *testing.T) {
	l, _ := newTestLedger(NewProgressionState(), fixedRand{n: 1})
	got, err := l.UnlockAccessory(5)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "crown", got.ID)

	l, _ = newTestLedger(NewProgressionState(), fixedRand{n: 0})
	got, err = l.UnlockAccessory(5)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "bowtie", got.ID)
}

func TestUnlockAccessoryIsNotMemoized(t *testing.T) {
	l, rec := newTestLedger(NewProgressionState(), fixedRand{})

	first, err := l.UnlockAccessory(5)
	require.NoError(t, err)
	second, err := l.UnlockAccessory(5)
	require.NoError(t, err)
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Empty(t, lockedIDs(l.Accessories()))

	// Nothing left to unlock.
	third, err := l.UnlockAccessory(5)
	require.NoError(t, err)
	assert.Nil(t, third)
	assert.Len(t, rec.events, 2)
}

func TestUnlockAccessoryRejectsNegative(t *testing.T) {
	l, _ := newTestLedger(NewProgressionState(), fixedRand{})
	_, err := l.UnlockAccessory(-5)
	var invalid InvalidInputError
	assert.True(t, errors.As(err, &invalid))
}

func TestCustomizeEquip(t *testing.T) {
	l, _ := newTestLedger(NewProgressionState(), fixedRand{})

	equip := []string{"Scarf", "glasses", "scarf"}
	c, err := l.Customize(CustomizeInput{Equip: &equip})
	require.NoError(t, err)
	assert.Equal(t, []string{"scarf", "glasses"}, c.Accessories)

	locked := []string{"crown"}
	_, err = l.Customize(CustomizeInput{Equip: &locked})
	var lockedErr LockedError
	require.True(t, errors.As(err, &lockedErr))
	assert.Equal(t, "Royal Crown", lockedErr.Accessory)

	unknown := []string{"cape"}
	_, err = l.Customize(CustomizeInput{Equip: &unknown})
	var nf NotFoundError
	require.True(t, errors.As(err, &nf))

	// Failed calls leave the companion as it was.
	assert.Equal(t, []string{"scarf", "glasses"}, l.Companion().Accessories)
}

func TestCustomizeFields(t *testing.T) {
	l, _ := newTestLedger(ProgressionState{Level: 3, Experience: 5, NextLevelExperience: 225}, fixedRand{})

	name := " Bruno "
	mood := MoodExcited
	loc := Location{Country: "Japan", District: "Shibuya", Timezone: "Asia/Tokyo"}
	c, err := l.Customize(CustomizeInput{Name: &name, Mood: &mood, Location: &loc})
	require.NoError(t, err)
	assert.Equal(t, "Bruno", c.Name)
	assert.Equal(t, MoodExcited, c.Mood)
	assert.Equal(t, loc, c.Location)
	assert.Equal(t, 3, c.Level, "progression untouched")

	blank := "  "
	_, err = l.Customize(CustomizeInput{Name: &blank})
	var invalid InvalidInputError
	require.True(t, errors.As(err, &invalid))

	bad := CompanionMood("grumpy")
	_, err = l.Customize(CustomizeInput{Mood: &bad})
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "mood", invalid.Field)
}
