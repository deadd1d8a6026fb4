package root

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"teddy/internal/engine"
	"teddy/internal/ui"
)

const shortIDLen = 8

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

// matchID expands a (possibly shortened) id against the known ids.
func matchID(kind, prefix string, ids []string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", errors.New(kind + " id is required")
	}
	var found []string
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			found = append(found, id)
		}
	}
	switch len(found) {
	case 0:
		return "", engine.NotFoundError{Kind: kind, ID: prefix}
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("%s id %q is ambiguous (%d matches)", kind, prefix, len(found))
	}
}

var whenLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseWhen reads a reminder or due time: RFC 3339, "2006-01-02 15:04",
// "2006-01-02", "15:04" (today) or a relative "+30m".
func parseWhen(input string, now time.Time) (time.Time, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return time.Time{}, errors.New("time is required")
	}
	if strings.HasPrefix(s, "+") {
		d, err := time.ParseDuration(s[1:])
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid duration %q: %w", s, err)
		}
		return now.Add(d).Truncate(time.Second), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(now.Location()), nil
	}
	for _, layout := range whenLayouts {
		if t, err := time.ParseInLocation(layout, s, now.Location()); err == nil {
			return t, nil
		}
	}
	if t, err := time.ParseInLocation("15:04", s, now.Location()); err == nil {
		y, m, d := now.Date()
		return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, now.Location()), nil
	}
	return time.Time{}, fmt.Errorf("unrecognised time %q (try 15:04, 2006-01-02 15:04 or +30m)", s)
}

func formatWhen(t time.Time) string {
	return t.Format("Mon Jan 2 15:04")
}

func eventIcon(k engine.EventKind) string {
	switch k {
	case engine.EventLevelUp:
		return ui.IconStar
	case engine.EventAccessoryUnlocked:
		return ui.IconGift
	case engine.EventGoalAchieved:
		return ui.IconTarget
	case engine.EventReminderDue:
		return ui.IconBell
	default:
		return ui.IconInfo
	}
}

func printEvent(w io.Writer, e engine.Event) {
	title := ui.Gold.Render(e.Title)
	if e.Kind == engine.EventLevelUp {
		title = ui.BadgeLevelUp
	}
	fmt.Fprintf(w, "%s %s %s\n", eventIcon(e.Kind), title, e.Message)
}

// printReward summarises the progression side of a completion.
func printReward(w io.Writer, r engine.Reward) {
	if r.XPAwarded == 0 {
		return
	}
	p := r.Progress
	fmt.Fprintf(w, "%s +%d XP %s\n", ui.IconSparkle, r.XPAwarded,
		ui.Muted.Render(fmt.Sprintf("(level %d, %d/%d)", p.Level, p.Experience, p.NextLevelExperience)))
}
