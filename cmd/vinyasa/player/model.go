// Package player is the terminal front end of a practice session. It forwards
// keys to a playback controller and renders the controller's state.
package player

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/benjamonnguyen/vinyasa-go"
	"github.com/benjamonnguyen/vinyasa-go/playback"
)

const (
	timerBarWidth      = 20
	timerBarFilledChar = "⣶"
	timerBarEmptyChar  = "⡀"
)

// Controller is the subset of *playback.Controller the player drives.
type Controller interface {
	Toggle()
	Advance()
	Retreat()
	Jump(int)
	State() playback.State
	Entries() []vinyasa.Entry
}

// Model is the root bubbletea model for a practice session.
type Model struct {
	ctl   Controller
	title string
	state playback.State

	showDetails bool
	completed   bool
	width       int
	height      int
}

func New(title string, ctl Controller) Model {
	return Model{
		ctl:         ctl,
		title:       title,
		state:       ctl.State(),
		showDetails: true,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case StateChangedMsg:
		m.state = m.ctl.State()
		return m, nil
	case CompletedMsg:
		m.state = m.ctl.State()
		m.completed = true
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case KeyQuit, KeyCtrlC, KeyEsc:
		return m, tea.Quit
	case KeySpace, KeyEnter:
		m.ctl.Toggle()
	case KeyRight, KeyNext, KeyL:
		m.ctl.Advance()
	case KeyLeft, KeyPrev, KeyH:
		m.ctl.Retreat()
	case KeyRestart:
		m.ctl.Jump(0)
	case KeyDetails:
		m.showDetails = !m.showDetails
	default:
		// 1-9 jump to that pose
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			m.ctl.Jump(int(key[0] - '1'))
		}
	}
	m.state = m.ctl.State()
	if m.state.Status == playback.Completed {
		m.completed = true
	}
	return m, nil
}

func (m Model) View() string {
	entries := m.ctl.Entries()
	if len(entries) == 0 {
		return DimStyle.Render("No poses to practice.") + "\n"
	}
	entry := entries[m.state.Index]

	var b strings.Builder
	b.WriteString(TitleStyle.Render(m.title))
	b.WriteString(DimStyle.Render(fmt.Sprintf("  Pose %d of %d", m.state.Index+1, len(entries))))
	b.WriteString("\n\n")

	if m.completed {
		b.WriteString(CompletedStyle.Render("Practice complete! Great job finishing your sequence."))
		b.WriteString("\n\n")
	}

	b.WriteString(PoseNameStyle.Render(entry.Pose.Name))
	if entry.Pose.Difficulty != "" {
		b.WriteString(DimStyle.Render(fmt.Sprintf("  %s · %s", entry.Pose.Difficulty, strings.ReplaceAll(string(entry.Pose.Category), "_", " "))))
	}
	b.WriteString("\n")
	b.WriteString(statusBadge(m.state.Status))
	b.WriteString("  ")
	b.WriteString(ClockStyle.Render(FormatClock(m.state.Remaining)))
	b.WriteString("  ")
	b.WriteString(TimerBarStyle.Render(TimerBar(m.state.Remaining, entry.EffectiveDuration())))
	b.WriteString("\n")

	if m.showDetails {
		b.WriteString(m.renderDetails(entry))
	}

	b.WriteString("\n")
	b.WriteString(m.renderSequence(entries))
	b.WriteString("\n")
	b.WriteString(renderFooter(m.completed))
	return b.String()
}

func (m Model) renderDetails(entry vinyasa.Entry) string {
	var b strings.Builder
	for _, section := range []struct {
		label, text string
	}{
		{"Notes", entry.Notes},
		{"Description", entry.Pose.Description},
		{"Instructions", entry.Pose.Instructions},
		{"Benefits", entry.Pose.Benefits},
		{"Precautions", entry.Pose.Precautions},
	} {
		if section.text == "" {
			continue
		}
		b.WriteString("\n")
		b.WriteString(LabelStyle.Render(section.label))
		b.WriteString("\n")
		text := section.text
		if m.width > 4 {
			text = lipgloss.NewStyle().Width(m.width - 2).Render(text)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderSequence(entries []vinyasa.Entry) string {
	var b strings.Builder
	b.WriteString(DividerStyle.Render(strings.Repeat("─", 32)))
	b.WriteString("\n")
	for i, e := range entries {
		line := fmt.Sprintf("%2d. %-28s %s", e.Position, e.Pose.Name, FormatClock(e.EffectiveDuration()))
		switch {
		case i == m.state.Index:
			b.WriteString(SelectedStyle.Render("› " + line))
		case i < m.state.Index:
			b.WriteString(DimStyle.Render("  " + line))
		default:
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

type footerKey struct{ key, desc string }

// renderFooter lists the keys that still do something; a completed session only quits.
func renderFooter(completed bool) string {
	keys := []footerKey{
		{"space", "play/pause"},
		{"←/→", "prev/next"},
		{"1-9", "jump"},
		{"r", "restart"},
		{"d", "details"},
		{"q", "quit"},
	}
	if completed {
		keys = []footerKey{
			{"d", "details"},
			{"q", "quit"},
		}
	}
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = FooterKeyStyle.Render(k.key) + " " + FooterDescStyle.Render(k.desc)
	}
	return strings.Join(parts, "  ")
}

func statusBadge(s playback.Status) string {
	switch s {
	case playback.Running:
		return RunningBadgeStyle.Render("● running")
	case playback.Paused:
		return PausedBadgeStyle.Render("❚❚ paused")
	case playback.Completed:
		return CompletedStyle.Render("✓ done")
	default:
		return IdleBadgeStyle.Render("○ ready")
	}
}

// TimerBar renders the share of total still remaining.
func TimerBar(remaining, total time.Duration) string {
	filled := 0
	if total > 0 {
		frac := float64(remaining) / float64(total)
		frac = math.Max(0, math.Min(1, frac))
		filled = int(math.Round(frac * timerBarWidth))
	}
	return strings.Repeat(timerBarFilledChar, filled) + strings.Repeat(timerBarEmptyChar, timerBarWidth-filled)
}

// FormatClock renders d as mm:ss, rounding up partial seconds.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
