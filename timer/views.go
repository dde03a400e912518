package timer

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/studytrack/studytrack/internal/config"
	"github.com/studytrack/studytrack/internal/timeutil"
)

type styles struct {
	base      lipgloss.Style
	focus     lipgloss.Style
	brk       lipgloss.Style
	main      lipgloss.Style
	secondary lipgloss.Style
	hint      lipgloss.Style
	notice    lipgloss.Style
	warn      lipgloss.Style
}

func newStyles(cfg *config.Config) styles {
	text, muted := lipgloss.Color("#FFFDF5"), lipgloss.Color("#7D7D7D")
	if !cfg.Display.DarkTheme {
		text, muted = lipgloss.Color("#1A1A1A"), lipgloss.Color("#6C6C6C")
	}

	label := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#1A1A1A")).
		Padding(0, 1).
		MarginRight(1)

	return styles{
		base:      lipgloss.NewStyle().Padding(1, padding),
		focus:     label.Background(lipgloss.Color(cfg.Focus.Color)).SetString("FOCUS"),
		brk:       label.Background(lipgloss.Color(cfg.Break.Color)).SetString("BREAK"),
		main:      lipgloss.NewStyle().Bold(true).Foreground(text),
		secondary: lipgloss.NewStyle().Foreground(text),
		hint:      lipgloss.NewStyle().Foreground(muted),
		notice:    lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Focus.Color)),
		warn:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
	}
}

// formatTimeRemaining returns the remaining time formatted as "MM:SS".
func formatTimeRemaining(seconds int) string {
	m, s := timeutil.SecsToMinsAndSecs(seconds)

	return fmt.Sprintf("%02d:%02d", m, s)
}

func (t *Timer) timeFormat() string {
	if t.cfg.Settings.TwentyFourHour {
		return "15:04:05"
	}

	return "03:04:05 PM"
}

// endTime returns when the countdown will reach zero if it keeps running.
func (t *Timer) endTime(state State) time.Time {
	return t.now().Add(time.Duration(state.Remaining) * time.Second)
}

func (t *Timer) headerView(state State) string {
	var s strings.Builder

	if state.Mode == Focus {
		s.WriteString(t.styles.focus.Render())
	} else {
		s.WriteString(t.styles.brk.Render())
	}

	switch {
	case state.Idle():
		s.WriteString(t.styles.secondary.Render("[Ready] press enter to start"))
	case state.Paused:
		s.WriteString(t.styles.secondary.Render("[Paused]"))
	default:
		s.WriteString(t.styles.hint.Render(
			"until " + t.endTime(state).Format(t.timeFormat()),
		))
	}

	s.WriteString(t.styles.hint.Render(
		fmt.Sprintf(" (sessions: %d)", state.Sessions),
	))

	return s.String()
}

func (t *Timer) detailsView(state State) string {
	var parts []string

	if task := t.rec.task; task != nil {
		title := task.Title
		if task.Completed {
			title += " (done)"
		}

		parts = append(parts, "Task: "+title)
	}

	parts = append(parts, fmt.Sprintf("Streak: %d", t.streak))

	message := t.cfg.Focus.Message
	if state.Mode == Break {
		message = t.cfg.Break.Message
	}

	return t.styles.secondary.Render(message) + "\n" +
		t.styles.hint.Render(strings.Join(parts, " | "))
}

func (t *Timer) timerView() string {
	state := t.countdown.State()

	var percent float64
	if state.Total > 0 {
		percent = float64(state.Elapsed()) / float64(state.Total)
	}

	var s strings.Builder

	s.WriteString(t.headerView(state))
	s.WriteString("\n\n")
	s.WriteString(t.styles.main.Render(formatTimeRemaining(state.Remaining)))
	s.WriteString("\n\n")
	s.WriteString(t.progress.ViewAs(percent))
	s.WriteString("\n\n")
	s.WriteString(t.detailsView(state))

	if t.status != "" {
		s.WriteString("\n\n" + t.status)
	}

	s.WriteString("\n\n" + t.help.View(t.keys))

	return s.String()
}

func (t *Timer) View() string {
	return t.styles.base.Render(t.timerView())
}
