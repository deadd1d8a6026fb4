package engine

import (
	"strings"
)

type Accessory struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Type     AccessoryType `json:"type"`
	Unlocked bool          `json:"unlocked"`
}

// DefaultAccessories is the starting wardrobe: three unlocked, two to earn.
func DefaultAccessories() []Accessory {
	return []Accessory{
		{ID: "hat", Name: "Cozy Hat", Type: AccessoryHat, Unlocked: true},
		{ID: "scarf", Name: "Warm Scarf", Type: AccessoryScarf, Unlocked: true},
		{ID: "glasses", Name: "Reading Glasses", Type: AccessoryGlasses, Unlocked: true},
		{ID: "bowtie", Name: "Fancy Bow Tie", Type: AccessoryOutfit, Unlocked: false},
		{ID: "crown", Name: "Royal Crown", Type: AccessoryHat, Unlocked: false},
	}
}

type Location struct {
	Country  string `json:"country"`
	District string `json:"district"`
	Timezone string `json:"timezone"`
}

// Customization is the companion document: cosmetics plus progression.
type Customization struct {
	Name         string        `json:"name"`
	Color        string        `json:"color"`
	Accessories  []string      `json:"accessories"`
	ProfileImage string        `json:"profileImage,omitempty"`
	Location     Location      `json:"location"`
	Mood         CompanionMood `json:"mood"`
	ProgressionState
}

func (c Customization) clone() Customization {
	out := c
	out.Accessories = append([]string(nil), c.Accessories...)
	return out
}

func DefaultCustomization(name string) Customization {
	if strings.TrimSpace(name) == "" {
		name = "Teddy"
	}
	return Customization{
		Name:             name,
		Color:            "brown",
		Accessories:      []string{"hat"},
		Mood:             MoodHappy,
		ProgressionState: NewProgressionState(),
	}
}

// CustomizeInput carries optional changes; nil fields are left alone.
type CustomizeInput struct {
	Name         *string
	Color        *string
	Mood         *CompanionMood
	ProfileImage *string
	Location     *Location
	// Equip replaces the equipped accessory list. Every id must be unlocked.
	Equip *[]string
}

func (l *Ledger) Customize(in CustomizeInput) (Customization, error) {
	c := l.companion.clone()

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Customization{}, InvalidInputError{Field: "name", Reason: "name is required"}
		}
		c.Name = name
	}
	if in.Color != nil {
		c.Color = strings.TrimSpace(*in.Color)
	}
	if in.Mood != nil {
		if !in.Mood.IsValid() {
			return Customization{}, InvalidInputError{Field: "mood", Reason: "unknown mood " + string(*in.Mood)}
		}
		c.Mood = *in.Mood
	}
	if in.ProfileImage != nil {
		c.ProfileImage = strings.TrimSpace(*in.ProfileImage)
	}
	if in.Location != nil {
		c.Location = *in.Location
	}
	if in.Equip != nil {
		equipped := make([]string, 0, len(*in.Equip))
		seen := map[string]bool{}
		for _, id := range *in.Equip {
			id = normalize(id)
			if id == "" || seen[id] {
				continue
			}
			a := l.accessory(id)
			if a == nil {
				return Customization{}, NotFoundError{Kind: "accessory", ID: id}
			}
			if !a.Unlocked {
				return Customization{}, LockedError{Accessory: a.Name}
			}
			seen[id] = true
			equipped = append(equipped, id)
		}
		c.Accessories = equipped
	}

	l.companion = c
	return c.clone(), nil
}
