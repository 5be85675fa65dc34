// Package typing implements the typing test run state machine.
package typing

import (
	"errors"
	"time"

	"github.com/verte-zerg/calciprep/internal/metrics"
	"github.com/verte-zerg/calciprep/internal/model"
	"github.com/verte-zerg/calciprep/internal/timer"
)

// State is the run state of a typing session.
type State int

const (
	Idle State = iota
	Running
	Paused
	Finished
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	default:
		return "idle"
	}
}

var (
	ErrFinished   = errors.New("typing session already finished")
	ErrPaused     = errors.New("typing session is paused")
	ErrNotRunning = errors.New("typing session is not running")
	ErrNotPaused  = errors.New("typing session is not paused")
)

// Session tracks one attempt at a passage. Elapsed time excludes paused
// periods. With a zero duration the session is untimed and ends only when the
// whole passage is typed or Finalize is called.
type Session struct {
	passage  model.Passage
	target   []rune
	input    []rune
	duration time.Duration

	keystrokes int
	backspaces int

	state     State
	startedAt time.Time
	endedAt   time.Time
	timer     *timer.Timer
	result    *model.TypingResult

	now func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// New returns an idle session for the passage.
func New(passage model.Passage, duration time.Duration, opts ...Option) *Session {
	s := &Session{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset(passage, duration)
	return s
}

// Reset discards the current attempt and starts over with a new passage or
// duration. A running timer is canceled.
func (s *Session) Reset(passage model.Passage, duration time.Duration) {
	if s.timer != nil {
		s.timer.Cancel(s.now())
	}
	s.passage = passage
	s.target = []rune(passage.Text)
	s.input = nil
	s.duration = duration
	s.keystrokes = 0
	s.backspaces = 0
	s.state = Idle
	s.startedAt = time.Time{}
	s.endedAt = time.Time{}
	s.result = nil
	if duration > 0 {
		s.timer = timer.NewCountdown(duration, s.onTimerExpired)
	} else {
		s.timer = timer.NewStopwatch()
	}
}

// Type records one keystroke. The first keystroke starts the session and its
// timer. Input past the end of the passage is ignored, and a keystroke that
// arrives after the countdown ran out finishes the session instead.
func (s *Session) Type(r rune) error {
	switch s.state {
	case Finished:
		return ErrFinished
	case Paused:
		return ErrPaused
	}
	now := s.now()
	if s.timer.Check(now) {
		return ErrFinished
	}
	if len(s.input) >= len(s.target) {
		return nil
	}
	if s.state == Idle {
		s.state = Running
		s.startedAt = now
		s.timer.Start(now)
	}
	s.input = append(s.input, r)
	s.keystrokes++
	if len(s.input) == len(s.target) {
		s.finish(s.timer.Elapsed(now), now)
	}
	return nil
}

// Backspace deletes the last typed rune.
func (s *Session) Backspace() error {
	switch s.state {
	case Finished:
		return ErrFinished
	case Paused:
		return ErrPaused
	}
	if s.timer.Check(s.now()) {
		return ErrFinished
	}
	if len(s.input) == 0 {
		return nil
	}
	s.input = s.input[:len(s.input)-1]
	s.backspaces++
	return nil
}

// Pause suspends a running session and its timer.
func (s *Session) Pause() error {
	if s.state != Running {
		return ErrNotRunning
	}
	now := s.now()
	if s.timer.Check(now) {
		return ErrFinished
	}
	s.timer.Stop(now)
	s.state = Paused
	return nil
}

// Resume continues a paused session.
func (s *Session) Resume() error {
	if s.state != Paused {
		return ErrNotPaused
	}
	s.timer.Start(s.now())
	s.state = Running
	return nil
}

// Tick forwards a timer tick and reports whether another tick is needed.
func (s *Session) Tick(msg timer.TickMsg) bool {
	live := s.timer.Tick(msg.ID, msg.Time)
	return live && s.timer.Running()
}

// Finalize ends the session now and returns its result. Later calls return
// the first result unchanged.
func (s *Session) Finalize() model.TypingResult {
	if s.state != Finished {
		now := s.now()
		s.finish(s.timer.Elapsed(now), now)
	}
	return *s.result
}

func (s *Session) onTimerExpired() {
	s.finish(s.duration, s.now())
}

func (s *Session) finish(elapsed time.Duration, now time.Time) {
	if s.state == Finished {
		return
	}
	s.timer.Cancel(now)
	s.state = Finished
	s.endedAt = now
	res := metrics.ComputeTypingResult(string(s.target), string(s.input), elapsed.Seconds())
	res.Keystrokes = s.keystrokes
	res.Backspaces = s.backspaces
	res.Elapsed = elapsed
	s.result = &res
}

// State returns the run state.
func (s *Session) State() State { return s.state }

// Passage returns the reference passage.
func (s *Session) Passage() model.Passage { return s.passage }

// Duration returns the configured countdown, zero when untimed.
func (s *Session) Duration() time.Duration { return s.duration }

// Target returns the passage runes.
func (s *Session) Target() []rune { return s.target }

// Input returns the typed runes.
func (s *Session) Input() []rune { return s.input }

// Keystrokes returns the number of typed characters, including corrected ones.
func (s *Session) Keystrokes() int { return s.keystrokes }

// Backspaces returns the number of deletions.
func (s *Session) Backspaces() int { return s.backspaces }

// StartedAt returns the time of the first keystroke.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// EndedAt returns the finalization time.
func (s *Session) EndedAt() time.Time { return s.endedAt }

// Timer exposes the session timer for tick scheduling.
func (s *Session) Timer() *timer.Timer { return s.timer }

// Elapsed returns active typing time so far.
func (s *Session) Elapsed() time.Duration {
	if s.result != nil {
		return s.result.Elapsed
	}
	return s.timer.Elapsed(s.now())
}

// Remaining returns the countdown time left.
func (s *Session) Remaining() time.Duration {
	if s.state == Finished {
		return 0
	}
	return s.timer.Remaining(s.now())
}

// Result returns the result once the session has finished.
func (s *Session) Result() (model.TypingResult, bool) {
	if s.result == nil {
		return model.TypingResult{}, false
	}
	return *s.result, true
}

// LiveResult scores the text typed so far without finishing the session.
func (s *Session) LiveResult() model.TypingResult {
	if s.result != nil {
		return *s.result
	}
	return metrics.ComputeTypingResult(string(s.target), string(s.input), s.Elapsed().Seconds())
}
