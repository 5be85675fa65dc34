// Package tui provides the Bubble Tea typing and quiz interfaces.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/calciprep/internal/exercise"
	"github.com/verte-zerg/calciprep/internal/generator"
	"github.com/verte-zerg/calciprep/internal/model"
	"github.com/verte-zerg/calciprep/internal/timer"
	"github.com/verte-zerg/calciprep/internal/typing"
)

const contentRatio = 0.70

// TypingSaver persists finished typing attempts.
type TypingSaver interface {
	InsertTypingResult(ctx context.Context, rec model.TypingRecord) (string, error)
}

// TypingModel implements the Bubble Tea typing UI for one exercise.
type TypingModel struct {
	exercise exercise.Exercise
	gen      *generator.Generator
	saver    TypingSaver
	session  *typing.Session
	keys     typingKeyMap
	help     help.Model

	width  int
	height int

	saved    bool
	saveErr  error
	saveErrs []error
	hasLast  bool
	last     model.TypingResult
}

// NewTypingModel constructs a typing model. A zero duration runs untimed.
func NewTypingModel(ex exercise.Exercise, duration time.Duration, gen *generator.Generator, saver TypingSaver, opts ...typing.Option) *TypingModel {
	return &TypingModel{
		exercise: ex,
		gen:      gen,
		saver:    saver,
		session:  typing.New(ex.Passage(gen), duration, opts...),
		keys:     newTypingKeyMap(),
		help:     help.New(),
	}
}

// Session exposes the run state machine.
func (m *TypingModel) Session() *typing.Session { return m.session }

// SaveErr joins every failed save since the model was created.
func (m *TypingModel) SaveErr() error { return errors.Join(m.saveErrs...) }

// Init implements tea.Model.
func (m *TypingModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *TypingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case timer.TickMsg:
		again := m.session.Tick(msg)
		if m.session.State() == typing.Finished {
			m.save()
			return m, nil
		}
		if again {
			return m, m.session.Timer().TickCmd()
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *TypingModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.session.Timer().Cancel(time.Now())
		return m, tea.Quit
	case key.Matches(msg, m.keys.Restart):
		m.restart()
		return m, nil
	}

	switch m.session.State() {
	case typing.Finished:
		if msg.Type == tea.KeyEnter {
			m.restart()
		}
		return m, nil
	case typing.Paused:
		if key.Matches(msg, m.keys.Pause) {
			if err := m.session.Resume(); err == nil {
				return m, m.session.Timer().TickCmd()
			}
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Pause):
		if err := m.session.Pause(); err != nil && m.session.State() == typing.Finished {
			m.save()
		}
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		if m.session.State() == typing.Running {
			m.session.Finalize()
			m.save()
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete:
		if err := m.session.Backspace(); err != nil && m.session.State() == typing.Finished {
			m.save()
		}
		return m, nil
	case tea.KeySpace:
		return m, m.typeRunes([]rune{' '})
	case tea.KeyRunes:
		return m, m.typeRunes(msg.Runes)
	default:
		return m, nil
	}
}

// typeRunes forwards keystrokes and starts the tick loop on the first one.
func (m *TypingModel) typeRunes(runes []rune) tea.Cmd {
	wasIdle := m.session.State() == typing.Idle
	for _, r := range runes {
		if err := m.session.Type(r); err != nil {
			break
		}
	}
	switch m.session.State() {
	case typing.Finished:
		m.save()
		return nil
	case typing.Running:
		if wasIdle {
			return m.session.Timer().TickCmd()
		}
	}
	return nil
}

func (m *TypingModel) restart() {
	if m.session.State() == typing.Finished {
		if res, ok := m.session.Result(); ok {
			m.last = res
			m.hasLast = true
		}
	}
	m.session.Reset(m.exercise.Passage(m.gen), m.session.Duration())
	m.saved = false
	m.saveErr = nil
}

func (m *TypingModel) save() {
	if m.saved {
		return
	}
	m.saved = true
	res, ok := m.session.Result()
	if !ok || m.saver == nil || m.session.StartedAt().IsZero() {
		return
	}
	rec := model.TypingRecord{
		StartedAt: m.session.StartedAt(),
		EndedAt:   m.session.EndedAt(),
		Exercise:  m.exercise.Name(),
		Mode:      string(m.exercise.Mode()),
		Duration:  m.session.Duration(),
		Result:    res,
	}
	if _, err := m.saver.InsertTypingResult(context.Background(), rec); err != nil {
		m.saveErr = err
		m.saveErrs = append(m.saveErrs, err)
	}
}

// View implements tea.Model.
func (m *TypingModel) View() string {
	if m.session.State() == typing.Finished {
		return m.place(m.renderResult(), "")
	}
	target := m.session.Target()
	if len(target) == 0 {
		return ""
	}
	input := m.session.Input()
	cursor := -1
	if len(input) < len(target) {
		cursor = len(input)
	}
	cells := passageCells(target, input, cursor)
	if m.width == 0 || m.height == 0 {
		return joinCells(cells)
	}
	contentWidth := max(1, int(float64(m.width)*contentRatio))
	body := wrapCells(cells, contentWidth)
	header := titleStyle.Render(m.exercise.Title())
	if m.session.State() == typing.Paused {
		header += "  " + pausedStyle.Render("paused, press esc to resume")
	}
	content := lipgloss.NewStyle().Width(contentWidth).Render(header + "\n\n" + body)
	return m.place(content, m.renderFooter())
}

func (m *TypingModel) place(content, footer string) string {
	if m.width == 0 || m.height == 0 {
		if footer == "" {
			return content
		}
		return content + "\n" + footer
	}
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	return body + "\n" + lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
}

func (m *TypingModel) renderFooter() string {
	target := m.session.Target()
	if len(target) == 0 {
		return ""
	}
	progress := int(float64(len(m.session.Input())) / float64(len(target)) * 100)
	var clock string
	if m.session.Duration() > 0 {
		clock = "Left " + formatClock(m.session.Remaining())
	} else {
		clock = "Time " + formatClock(m.session.Elapsed())
	}
	segments := []string{clock, fmt.Sprintf("Progress %d%%", progress)}
	if m.session.State() != typing.Idle {
		live := m.session.LiveResult()
		segments = append(segments, fmt.Sprintf("%.0f WPM · %.1f%%", live.NetWPM, live.Accuracy))
	}
	if m.hasLast {
		segments = append(segments, fmt.Sprintf("Last %.0f WPM · %.1f%%", m.last.NetWPM, m.last.Accuracy))
	}
	footer := footerStyle.Render(strings.Join(segments, "  "))
	return footer + "  " + m.help.ShortHelpView(m.keys.ShortHelp())
}

func (m *TypingModel) renderResult() string {
	res, _ := m.session.Result()
	lines := []string{
		titleStyle.Render(m.exercise.Title() + " finished"),
		"",
		fmt.Sprintf("Net speed      %.0f WPM", res.NetWPM),
		fmt.Sprintf("Gross speed    %.0f WPM", res.GrossWPM),
		fmt.Sprintf("Accuracy       %.1f%%", res.Accuracy),
		fmt.Sprintf("Errors         %.1f%% of words", res.ErrorPercentage),
		fmt.Sprintf("Time           %s", formatClock(res.Elapsed)),
		"",
		fmt.Sprintf("Mistakes       %.1f (%d full, %d half)", res.TotalMistakes, res.FullMistakes, res.HalfMistakes),
		fmt.Sprintf("Spelling       %d", res.Spelling),
		fmt.Sprintf("Capitalization %d", res.Capitalization),
		fmt.Sprintf("Omissions      %d", res.Omissions),
		fmt.Sprintf("Additions      %d", res.Additions),
		"",
		dimStyle.Render(fmt.Sprintf("Word method    %.0f gross · %.0f net WPM", res.WordGrossWPM, res.WordNetWPM)),
		dimStyle.Render(fmt.Sprintf("Keystrokes     %d (%d backspaces)", res.Keystrokes, res.Backspaces)),
	}
	if m.saveErr != nil {
		lines = append(lines, "", failStyle.Render("result not saved"))
	}
	lines = append(lines, "", m.help.ShortHelpView([]key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "again")),
		m.keys.Quit,
	}))
	return strings.Join(lines, "\n")
}

// formatClock renders a duration as m:ss, rounded down to whole seconds.
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
