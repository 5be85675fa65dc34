package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/calciprep/internal/model"
	"github.com/verte-zerg/calciprep/internal/quiz"
	"github.com/verte-zerg/calciprep/internal/timer"
)

const (
	progressMaxWidth = 40
	quizPadding      = 2
)

// QuizSaver persists finished quiz attempts.
type QuizSaver interface {
	InsertQuizResult(ctx context.Context, rec model.QuizRecord) (string, error)
}

// advanceMsg fires once the feedback delay for question index has passed.
type advanceMsg struct {
	index int
}

// QuizModel implements the Bubble Tea multiple-choice quiz UI.
type QuizModel struct {
	kind     string
	title    string
	delay    time.Duration
	saver    QuizSaver
	session  *quiz.Session
	keys     quizKeyMap
	help     help.Model
	progress progress.Model

	width  int
	height int

	saved   bool
	saveErr error
}

// NewQuizModel starts a quiz. kind labels the stored result, delay is how long
// answer feedback stays on screen before the next question.
func NewQuizModel(kind, title string, questions []model.Question, delay time.Duration, saver QuizSaver, opts ...quiz.Option) *QuizModel {
	return &QuizModel{
		kind:     kind,
		title:    title,
		delay:    delay,
		saver:    saver,
		session:  quiz.New(questions, opts...),
		keys:     newQuizKeyMap(),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(progressMaxWidth)),
	}
}

// Session exposes the run state machine.
func (m *QuizModel) Session() *quiz.Session { return m.session }

// SaveErr returns the error from saving the result, if any.
func (m *QuizModel) SaveErr() error { return m.saveErr }

// Init implements tea.Model.
func (m *QuizModel) Init() tea.Cmd {
	if m.session.Phase() == quiz.Finished {
		m.save()
		return nil
	}
	return m.session.Timer().TickCmd()
}

// Update implements tea.Model.
func (m *QuizModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = max(1, min(progressMaxWidth, msg.Width-quizPadding*2))
		return m, nil
	case timer.TickMsg:
		again := m.session.Tick(msg)
		if m.session.Phase() == quiz.Finished {
			m.save()
			return m, nil
		}
		if again {
			return m, m.session.Timer().TickCmd()
		}
		return m, nil
	case advanceMsg:
		if m.session.Advance(msg.index) && m.session.Phase() == quiz.Finished {
			m.save()
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *QuizModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.session.Timer().Cancel(time.Now())
		return m, tea.Quit
	}
	if m.session.Phase() == quiz.Finished {
		if msg.Type == tea.KeyEnter {
			return m, tea.Quit
		}
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Finish):
		m.session.Finalize()
		m.save()
		return m, nil
	case key.Matches(msg, m.keys.Skip):
		_ = m.session.Skip()
	case key.Matches(msg, m.keys.Choose):
		cmd := m.choose(msg.String())
		if m.session.Phase() == quiz.Finished {
			m.save()
			return m, nil
		}
		return m, cmd
	}
	if m.session.Phase() == quiz.Finished {
		m.save()
	}
	return m, nil
}

// choose selects the numbered option and schedules the advance.
func (m *QuizModel) choose(pressed string) tea.Cmd {
	n, err := strconv.Atoi(pressed)
	if err != nil {
		return nil
	}
	q, ok := m.session.Current()
	if !ok || n < 1 || n > len(q.Options) {
		return nil
	}
	if _, err := m.session.Select(q.Options[n-1]); err != nil {
		return nil
	}
	index := m.session.Index()
	if m.delay <= 0 {
		return func() tea.Msg { return advanceMsg{index: index} }
	}
	return tea.Tick(m.delay, func(time.Time) tea.Msg {
		return advanceMsg{index: index}
	})
}

func (m *QuizModel) save() {
	if m.saved {
		return
	}
	m.saved = true
	res, ok := m.session.Result()
	if !ok || m.saver == nil || m.session.Len() == 0 {
		return
	}
	rec := model.QuizRecord{
		StartedAt: m.session.StartedAt(),
		EndedAt:   m.session.EndedAt(),
		Kind:      m.kind,
		Result:    res,
	}
	if _, err := m.saver.InsertQuizResult(context.Background(), rec); err != nil {
		m.saveErr = err
	}
}

// View implements tea.Model.
func (m *QuizModel) View() string {
	var content string
	if m.session.Phase() == quiz.Finished {
		content = m.renderReview()
	} else {
		content = m.renderQuestion()
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *QuizModel) renderQuestion() string {
	q, _ := m.session.Current()
	index := m.session.Index()
	total := m.session.Len()

	var clock string
	if m.session.Timer().Mode() == timer.Countdown {
		clock = "Left " + formatClock(m.session.Remaining())
	} else {
		clock = "Time " + formatClock(m.session.Elapsed())
	}
	lines := []string{
		titleStyle.Render(m.title) + "  " + footerStyle.Render(fmt.Sprintf("Question %d/%d  %s", index+1, total, clock)),
		m.progress.ViewAs(float64(index) / float64(total)),
		"",
		optionStyle.Bold(true).Render(q.Question),
		"",
	}
	attempt := m.session.Attempts()[index]
	for i, opt := range q.Options {
		line := fmt.Sprintf("%d) %s", i+1, opt)
		lines = append(lines, optionLine(line, opt, q.Answer, attempt))
	}
	lines = append(lines, "")
	switch attempt.Status {
	case model.StatusCorrect:
		lines = append(lines, passStyle.Render("Correct"))
	case model.StatusIncorrect:
		lines = append(lines, failStyle.Render("Incorrect, the answer is "+q.Answer))
	default:
		lines = append(lines, m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	return strings.Join(lines, "\n")
}

// optionLine colors an option once the question has been answered.
func optionLine(line, opt, answer string, attempt model.QuizAttempt) string {
	if attempt.UserAnswer == nil {
		return optionStyle.Render(line)
	}
	switch {
	case opt == answer:
		return passStyle.Render(line)
	case opt == *attempt.UserAnswer:
		return failStyle.Render(line)
	default:
		return dimStyle.Render(line)
	}
}

func (m *QuizModel) renderReview() string {
	res, _ := m.session.Result()
	verdict := failStyle.Render("Not passed")
	if res.Passed {
		verdict = passStyle.Render("Passed")
	}
	lines := []string{
		titleStyle.Render(m.title+" finished") + "  " + verdict,
		"",
		fmt.Sprintf("Score      %.1f%% (%d of %d answered)", res.PassPercentage, res.Correct, res.Answered),
		fmt.Sprintf("Correct    %d", res.Correct),
		fmt.Sprintf("Incorrect  %d", res.Incorrect),
		fmt.Sprintf("Skipped    %d", res.Skipped),
		fmt.Sprintf("Unanswered %d", res.Unanswered),
		fmt.Sprintf("Time       %s", formatClock(res.Elapsed)),
		"",
	}
	attempts := m.session.Attempts()
	for i, q := range m.session.Questions() {
		lines = append(lines, reviewLine(i+1, q, attempts[i]))
	}
	if m.saveErr != nil {
		lines = append(lines, "", failStyle.Render("result not saved"))
	}
	lines = append(lines, "", m.help.ShortHelpView([]key.Binding{m.keys.Quit}))
	return strings.Join(lines, "\n")
}

func reviewLine(n int, q model.Question, attempt model.QuizAttempt) string {
	prefix := fmt.Sprintf("%2d. %s ", n, q.Question)
	switch attempt.Status {
	case model.StatusCorrect:
		return prefix + passStyle.Render(q.Answer)
	case model.StatusIncorrect:
		return prefix + failStyle.Render(*attempt.UserAnswer) + dimStyle.Render(" → "+q.Answer)
	case model.StatusSkipped:
		return prefix + dimStyle.Render("skipped → "+q.Answer)
	default:
		return prefix + dimStyle.Render("unanswered → "+q.Answer)
	}
}
