// Package quiz implements the multiple-choice quiz run state machine.
package quiz

import (
	"errors"
	"time"

	"github.com/verte-zerg/calciprep/internal/metrics"
	"github.com/verte-zerg/calciprep/internal/model"
	"github.com/verte-zerg/calciprep/internal/timer"
)

// Phase is the run phase of a quiz.
type Phase int

const (
	// Answering waits for a selection or skip on the current question.
	Answering Phase = iota
	// Advancing shows feedback for the answered question until Advance.
	Advancing
	// Finished is terminal.
	Finished
)

func (p Phase) String() string {
	switch p {
	case Advancing:
		return "advancing"
	case Finished:
		return "finished"
	default:
		return "answering"
	}
}

var (
	ErrFinished = errors.New("quiz already finished")
	ErrAnswered = errors.New("question already answered")
)

// Session runs one attempt over a fixed list of questions.
type Session struct {
	questions []model.Question
	attempts  []model.QuizAttempt
	index     int
	phase     Phase
	threshold float64

	timeLimit time.Duration
	timer     *timer.Timer
	startedAt time.Time
	endedAt   time.Time
	result    *model.QuizResult

	now func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithTimeLimit bounds the quiz with a countdown. Zero means a stopwatch.
func WithTimeLimit(limit time.Duration) Option {
	return func(s *Session) {
		s.timeLimit = limit
	}
}

// WithThreshold overrides the pass percentage.
func WithThreshold(threshold float64) Option {
	return func(s *Session) {
		s.threshold = threshold
	}
}

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// New starts a quiz over questions. The timer starts immediately.
func New(questions []model.Question, opts ...Option) *Session {
	s := &Session{
		questions: questions,
		attempts:  make([]model.QuizAttempt, len(questions)),
		threshold: metrics.PassThreshold,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.timeLimit > 0 {
		s.timer = timer.NewCountdown(s.timeLimit, s.Expire)
	} else {
		s.timer = timer.NewStopwatch()
	}
	s.startedAt = s.now()
	s.timer.Start(s.startedAt)
	if len(questions) == 0 {
		s.Finalize()
	}
	return s
}

// Select answers the current question. Each question accepts one selection,
// and none once the time limit has passed.
func (s *Session) Select(option string) (model.AttemptStatus, error) {
	if s.phase == Finished || s.timer.Check(s.now()) {
		return model.StatusUndefined, ErrFinished
	}
	attempt := &s.attempts[s.index]
	if s.phase != Answering || attempt.Status != model.StatusUndefined {
		return attempt.Status, ErrAnswered
	}
	answer := option
	attempt.UserAnswer = &answer
	if option == s.questions[s.index].Answer {
		attempt.Status = model.StatusCorrect
	} else {
		attempt.Status = model.StatusIncorrect
	}
	s.phase = Advancing
	return attempt.Status, nil
}

// Advance moves past the answered question at index once its feedback delay
// has elapsed. Calls for any other index or phase are ignored.
func (s *Session) Advance(index int) bool {
	if s.phase != Advancing || index != s.index {
		return false
	}
	if s.timer.Check(s.now()) {
		return true
	}
	s.next()
	return true
}

// Skip marks the current question skipped and moves on immediately.
func (s *Session) Skip() error {
	if s.phase == Finished || s.timer.Check(s.now()) {
		return ErrFinished
	}
	if s.phase != Answering {
		return ErrAnswered
	}
	s.attempts[s.index].Status = model.StatusSkipped
	s.next()
	return nil
}

func (s *Session) next() {
	if s.index >= len(s.questions)-1 {
		s.Finalize()
		return
	}
	s.index++
	s.phase = Answering
}

// Expire finalizes the quiz regardless of the current question.
func (s *Session) Expire() {
	s.Finalize()
}

// Tick forwards a timer tick and reports whether another tick is needed.
func (s *Session) Tick(msg timer.TickMsg) bool {
	live := s.timer.Tick(msg.ID, msg.Time)
	return live && s.timer.Running()
}

// Finalize ends the quiz and returns its result. Later calls return the first
// result unchanged.
func (s *Session) Finalize() model.QuizResult {
	if s.result != nil {
		return *s.result
	}
	now := s.now()
	elapsed := s.timer.Elapsed(now)
	s.timer.Cancel(now)
	s.phase = Finished
	s.endedAt = now
	res := metrics.ComputeQuizResult(s.attempts, s.threshold)
	res.Elapsed = elapsed
	s.result = &res
	return res
}

// Phase returns the run phase.
func (s *Session) Phase() Phase { return s.phase }

// Index returns the current question position.
func (s *Session) Index() int { return s.index }

// Len returns the number of questions.
func (s *Session) Len() int { return len(s.questions) }

// Current returns the current question.
func (s *Session) Current() (model.Question, bool) {
	if s.index >= len(s.questions) {
		return model.Question{}, false
	}
	return s.questions[s.index], true
}

// Questions returns all questions in order.
func (s *Session) Questions() []model.Question { return s.questions }

// Attempts returns a copy of the per-question annotations.
func (s *Session) Attempts() []model.QuizAttempt {
	out := make([]model.QuizAttempt, len(s.attempts))
	copy(out, s.attempts)
	return out
}

// Timer exposes the quiz timer for tick scheduling.
func (s *Session) Timer() *timer.Timer { return s.timer }

// StartedAt returns when the quiz began.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// EndedAt returns when the quiz was finalized.
func (s *Session) EndedAt() time.Time { return s.endedAt }

// Elapsed returns time spent so far.
func (s *Session) Elapsed() time.Duration {
	if s.result != nil {
		return s.result.Elapsed
	}
	return s.timer.Elapsed(s.now())
}

// Remaining returns the countdown time left, zero without a time limit.
func (s *Session) Remaining() time.Duration {
	if s.phase == Finished {
		return 0
	}
	return s.timer.Remaining(s.now())
}

// Result returns the result once the quiz has finished.
func (s *Session) Result() (model.QuizResult, bool) {
	if s.result == nil {
		return model.QuizResult{}, false
	}
	return *s.result, true
}
