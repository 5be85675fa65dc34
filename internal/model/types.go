// Package model defines shared data structures.
package model

import "time"

// Passage is the immutable reference text of a typing exercise.
type Passage struct {
	Title string
	Text  string
}

// TypingResult is the snapshot computed once when a typing session finishes.
type TypingResult struct {
	GrossWPM        float64
	NetWPM          float64
	Accuracy        float64
	ErrorPercentage float64

	FullMistakes  int
	HalfMistakes  int
	TotalMistakes float64

	Omissions      int
	Additions      int
	Spelling       int
	Capitalization int

	CorrectChars int
	TypedChars   int
	Keystrokes   int
	Backspaces   int

	// Word based accounting, reported alongside the character based WPM.
	WordGrossWPM float64
	WordNetWPM   float64
	CorrectWords int

	Elapsed time.Duration
}

// Question is a multiple-choice question. Answer is one of Options.
type Question struct {
	Question string   `toml:"question"`
	Options  []string `toml:"options"`
	Answer   string   `toml:"answer"`
}

// AttemptStatus is the review state of a single quiz question.
type AttemptStatus int

const (
	StatusUndefined AttemptStatus = iota
	StatusCorrect
	StatusIncorrect
	StatusSkipped
)

func (s AttemptStatus) String() string {
	switch s {
	case StatusCorrect:
		return "correct"
	case StatusIncorrect:
		return "incorrect"
	case StatusSkipped:
		return "skipped"
	default:
		return "undefined"
	}
}

// QuizAttempt annotates one question of a quiz run.
type QuizAttempt struct {
	UserAnswer *string
	Status     AttemptStatus
}

// QuizResult summarizes a finished quiz.
type QuizResult struct {
	Total          int
	Correct        int
	Incorrect      int
	Skipped        int
	Unanswered     int
	Answered       int
	PassPercentage float64
	Passed         bool
	Elapsed        time.Duration
}

// TypingConfig defines typing test settings.
type TypingConfig struct {
	Exercise string
	Duration time.Duration
	Words    int
	CapsPct  float64
	PunctPct float64
}

// QuizConfig defines vocabulary quiz settings.
type QuizConfig struct {
	Questions     int
	TimeLimit     time.Duration
	FeedbackDelay time.Duration
}

// MathsConfig defines maths drill settings.
type MathsConfig struct {
	Questions     int
	Ops           string
	MaxOperand    int
	TimeLimit     time.Duration
	BitterEnd     bool
	FeedbackDelay time.Duration
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Kind        string
	Since       *time.Time
	Last        int
	CurveWindow int
}

// TypingRecord is a persisted typing result.
type TypingRecord struct {
	AttemptID string
	StartedAt time.Time
	EndedAt   time.Time
	Exercise  string
	Mode      string
	Duration  time.Duration
	Result    TypingResult
}

// QuizRecord is a persisted quiz result.
type QuizRecord struct {
	AttemptID string
	StartedAt time.Time
	EndedAt   time.Time
	Kind      string
	Result    QuizResult
}
