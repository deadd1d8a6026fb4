package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Teddy theme (CLI + TUI): shared styles and a handful of emojis.

const (
	IconBear      = "🧸"
	IconSparkle   = "✨"
	IconPlus      = "➕"
	IconDone      = "✅"
	IconTodo      = "⬜"
	IconTrophy    = "🏆"
	IconFire      = "🔥"
	IconBell      = "🔔"
	IconTarget    = "🎯"
	IconJournal   = "📓"
	IconBulb      = "💡"
	IconGift      = "🎁"
	IconLock      = "🔒"
	IconInfo      = "ℹ️"
	IconWarn      = "⚠️"
	IconError     = "🧨"
	IconLoop      = "🔁"
	IconScroll    = "📜"
	IconCalendar  = "📅"
	IconStar      = "⭐"
	IconHeartFull = "♥"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
	cBrown   = lipgloss.Color("130")
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Dim   = lipgloss.NewStyle().Foreground(cMuted)
	Bear  = lipgloss.NewStyle().Bold(true).Foreground(cBrown)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// PriorityText colours a task priority.
func PriorityText(priority string) string {
	p := strings.ToLower(strings.TrimSpace(priority))
	switch p {
	case "high":
		return Bad.Render("high")
	case "medium":
		return Warn.Render("medium")
	case "low":
		return Good.Render("low")
	default:
		return Muted.Render(priority)
	}
}

// ReminderStateText colours a reminder state.
func ReminderStateText(state string) string {
	switch strings.ToLower(strings.TrimSpace(state)) {
	case "completed":
		return Good.Render("done")
	case "due_fired":
		return Warn.Render("fired")
	case "pending":
		return H2.Render("pending")
	default:
		return Muted.Render(state)
	}
}

func CheckIcon(done bool) string {
	if done {
		return IconDone
	}
	return IconTodo
}

// FrequencyIcon marks habits by cadence.
func FrequencyIcon(weekly bool) string {
	if weekly {
		return IconCalendar
	}
	return IconLoop
}

// Bar renders a plain-text progress bar of width cells for frac in [0, 1].
func Bar(frac float64, width int) string {
	if width <= 0 {
		return ""
	}
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac * float64(width))
	return Good.Render(strings.Repeat("█", filled)) + Dim.Render(strings.Repeat("░", width-filled))
}

// Companion draws the bear with its mood face and equipped accessories.
func Companion(name, mood string, accessories []string) string {
	face := "(•ᴥ•)"
	switch mood {
	case "excited":
		face = "(★ᴥ★)"
	case "neutral":
		face = "(-ᴥ-)"
	case "sad":
		face = "(╥ᴥ╥)"
	}
	hat := "  ʕ   ʔ"
	for _, a := range accessories {
		switch a {
		case "hat":
			hat = "  🎩"
		case "crown":
			hat = "  👑"
		}
	}
	var extras []string
	for _, a := range accessories {
		switch a {
		case "scarf":
			extras = append(extras, "🧣")
		case "glasses":
			extras = append(extras, "👓")
		case "bowtie":
			extras = append(extras, "🎀")
		}
	}
	lines := []string{hat, Bear.Render("ʕ" + face + "ʔ")}
	if len(extras) > 0 {
		lines = append(lines, "  "+strings.Join(extras, " "))
	}
	lines = append(lines, Title.Render(name))
	return strings.Join(lines, "\n")
}
