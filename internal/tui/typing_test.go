package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/calciprep/internal/exercise"
	"github.com/verte-zerg/calciprep/internal/generator"
	"github.com/verte-zerg/calciprep/internal/model"
	"github.com/verte-zerg/calciprep/internal/timer"
	"github.com/verte-zerg/calciprep/internal/typing"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type recordingSaver struct {
	typing  []model.TypingRecord
	quizzes []model.QuizRecord
	err     error
}

func (s *recordingSaver) InsertTypingResult(_ context.Context, rec model.TypingRecord) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.typing = append(s.typing, rec)
	return "id", nil
}

func (s *recordingSaver) InsertQuizResult(_ context.Context, rec model.QuizRecord) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.quizzes = append(s.quizzes, rec)
	return "id", nil
}

func newTypingTestModel(text string, duration time.Duration) (*TypingModel, *fakeClock, *recordingSaver) {
	clock := &fakeClock{now: time.Unix(5000, 0)}
	saver := &recordingSaver{}
	ex := exercise.Paragraphs{ID: "para", Label: "Paragraph", Texts: []string{text}}
	m := NewTypingModel(ex, duration, generator.NewSeeded(1), saver, typing.WithClock(clock.Now))
	return m, clock, saver
}

func runeKey(r rune) tea.KeyMsg {
	if r == ' ' {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func typeKeys(m tea.Model, text string) []tea.Cmd {
	var cmds []tea.Cmd
	for _, r := range text {
		var cmd tea.Cmd
		_, cmd = m.Update(runeKey(r))
		cmds = append(cmds, cmd)
	}
	return cmds
}

func TestTypingFirstKeySchedulesTick(t *testing.T) {
	m, _, _ := newTypingTestModel("ab cd", time.Minute)
	cmds := typeKeys(m, "ab")
	if cmds[0] == nil {
		t.Fatalf("expected tick command after first keystroke")
	}
	if cmds[1] != nil {
		t.Fatalf("expected no extra tick command on later keystrokes")
	}
}

func TestTypingCompletionSavesOnce(t *testing.T) {
	m, clock, saver := newTypingTestModel("ab cd", 0)
	typeKeys(m, "ab")
	clock.Advance(6 * time.Second)
	typeKeys(m, " cd")
	if m.Session().State() != typing.Finished {
		t.Fatalf("expected finished session")
	}
	if len(saver.typing) != 1 {
		t.Fatalf("expected 1 saved record, got %d", len(saver.typing))
	}
	rec := saver.typing[0]
	if rec.Exercise != "para" || rec.Mode != "paragraphs" || rec.Result.Elapsed != 6*time.Second {
		t.Fatalf("unexpected record %+v", rec)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if len(saver.typing) != 1 {
		t.Fatalf("expected no second save")
	}
	if !strings.Contains(m.View(), "Net speed") {
		t.Fatalf("expected result screen")
	}
}

func TestTypingPauseIgnoresStaleTick(t *testing.T) {
	m, clock, _ := newTypingTestModel("the quick brown fox", 30*time.Second)
	typeKeys(m, "th")
	staleID := m.Session().Timer().ID()
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Session().State() != typing.Paused {
		t.Fatalf("expected paused, got %s", m.Session().State())
	}
	clock.Advance(time.Minute)
	_, cmd := m.Update(timer.TickMsg{ID: staleID, Time: clock.now})
	if cmd != nil || m.Session().State() != typing.Paused {
		t.Fatalf("expected stale tick to be ignored")
	}
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil || m.Session().State() != typing.Running {
		t.Fatalf("expected resume to reschedule ticks")
	}
}

func TestTypingCountdownExpirySaves(t *testing.T) {
	m, clock, saver := newTypingTestModel("the quick brown fox", 10*time.Second)
	typeKeys(m, "the")
	clock.Advance(10 * time.Second)
	_, cmd := m.Update(timer.TickMsg{ID: m.Session().Timer().ID(), Time: clock.now})
	if cmd != nil {
		t.Fatalf("expected tick loop to stop on expiry")
	}
	if len(saver.typing) != 1 || saver.typing[0].Result.Elapsed != 10*time.Second {
		t.Fatalf("expected expiry result saved with configured duration, got %+v", saver.typing)
	}
}

func TestTypingRestartKeepsLastResult(t *testing.T) {
	m, _, _ := newTypingTestModel("ab", 0)
	typeKeys(m, "ab")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Session().State() != typing.Idle {
		t.Fatalf("expected idle after restart")
	}
	if !m.hasLast {
		t.Fatalf("expected last result to be kept")
	}
	if !strings.Contains(m.renderFooter(), "Last") {
		t.Fatalf("expected last result in footer: %s", m.renderFooter())
	}
}

func TestTypingSaveErrorIsShown(t *testing.T) {
	m, _, saver := newTypingTestModel("ab", 0)
	saver.err = errors.New("disk full")
	typeKeys(m, "ab")
	if !strings.Contains(m.View(), "result not saved") {
		t.Fatalf("expected save failure notice")
	}
	m.restart()
	typeKeys(m, "ab")
	if err := m.SaveErr(); !errors.Is(err, saver.err) {
		t.Fatalf("expected save error returned, got %v", err)
	}
	if m.saveErr == nil || len(m.saveErrs) != 2 {
		t.Fatalf("expected both failed saves kept, got %d", len(m.saveErrs))
	}
}

func TestRenderFooterFormats(t *testing.T) {
	m, clock, _ := newTypingTestModel("abcd", time.Minute)
	typeKeys(m, "ab")
	clock.Advance(15 * time.Second)
	out := m.renderFooter()
	for _, needle := range []string{"Left 0:45", "Progress 50%", "WPM", "100.0%"} {
		if !strings.Contains(out, needle) {
			t.Fatalf("footer missing %q: %s", needle, out)
		}
	}
}

func TestFormatClock(t *testing.T) {
	if got := formatClock(125 * time.Second); got != "2:05" {
		t.Fatalf("unexpected clock %q", got)
	}
	if got := formatClock(-time.Second); got != "0:00" {
		t.Fatalf("unexpected negative clock %q", got)
	}
}

func TestTypingKeyAfterCountdownSavesOnce(t *testing.T) {
	m, clock, saver := newTypingTestModel("ab cd ef", 10*time.Second)
	typeKeys(m, "ab")
	clock.Advance(11 * time.Second)
	typeKeys(m, " cd")
	if m.Session().State() != typing.Finished {
		t.Fatalf("expected finished, got %s", m.Session().State())
	}
	if len(saver.typing) != 1 {
		t.Fatalf("expected one save, got %d", len(saver.typing))
	}
	if got := saver.typing[0].Result.TypedChars; got != 2 {
		t.Fatalf("expected 2 typed chars, got %d", got)
	}
}
