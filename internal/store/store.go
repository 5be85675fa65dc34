// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/calciprep/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout is fixed width and UTC so stored timestamps order as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// Store wraps SQLite access for finished results.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS typing_results (
			id INTEGER PRIMARY KEY,
			attempt_id TEXT NOT NULL UNIQUE,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			exercise TEXT NOT NULL,
			mode TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			gross_wpm REAL NOT NULL,
			net_wpm REAL NOT NULL,
			accuracy REAL NOT NULL,
			error_pct REAL NOT NULL,
			full_mistakes INTEGER NOT NULL,
			half_mistakes INTEGER NOT NULL,
			omissions INTEGER NOT NULL,
			additions INTEGER NOT NULL,
			typed_chars INTEGER NOT NULL,
			correct_chars INTEGER NOT NULL,
			keystrokes INTEGER NOT NULL,
			backspaces INTEGER NOT NULL,
			word_gross_wpm REAL NOT NULL,
			word_net_wpm REAL NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS quiz_results (
			id INTEGER PRIMARY KEY,
			attempt_id TEXT NOT NULL UNIQUE,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			kind TEXT NOT NULL,
			total INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			incorrect INTEGER NOT NULL,
			skipped INTEGER NOT NULL,
			unanswered INTEGER NOT NULL,
			pass_pct REAL NOT NULL,
			passed INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_typing_results_ended_at ON typing_results(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_quiz_results_ended_at ON quiz_results(ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertTypingResult stores a finished typing attempt and returns its attempt ID.
func (s *Store) InsertTypingResult(ctx context.Context, rec model.TypingRecord) (string, error) {
	if rec.AttemptID == "" {
		rec.AttemptID = uuid.NewString()
	}
	r := rec.Result
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO typing_results (attempt_id, started_at, ended_at, exercise, mode, duration_ms, elapsed_ms,
			gross_wpm, net_wpm, accuracy, error_pct, full_mistakes, half_mistakes, omissions, additions,
			typed_chars, correct_chars, keystrokes, backspaces, word_gross_wpm, word_net_wpm)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.AttemptID,
		formatTime(rec.StartedAt),
		formatTime(rec.EndedAt),
		rec.Exercise,
		rec.Mode,
		rec.Duration.Milliseconds(),
		r.Elapsed.Milliseconds(),
		r.GrossWPM,
		r.NetWPM,
		r.Accuracy,
		r.ErrorPercentage,
		r.FullMistakes,
		r.HalfMistakes,
		r.Omissions,
		r.Additions,
		r.TypedChars,
		r.CorrectChars,
		r.Keystrokes,
		r.Backspaces,
		r.WordGrossWPM,
		r.WordNetWPM,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert typing result: %w", err)
	}
	return rec.AttemptID, nil
}

// InsertQuizResult stores a finished quiz attempt and returns its attempt ID.
func (s *Store) InsertQuizResult(ctx context.Context, rec model.QuizRecord) (string, error) {
	if rec.AttemptID == "" {
		rec.AttemptID = uuid.NewString()
	}
	r := rec.Result
	passed := 0
	if r.Passed {
		passed = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO quiz_results (attempt_id, started_at, ended_at, kind, total, correct, incorrect, skipped,
			unanswered, pass_pct, passed, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.AttemptID,
		formatTime(rec.StartedAt),
		formatTime(rec.EndedAt),
		rec.Kind,
		r.Total,
		r.Correct,
		r.Incorrect,
		r.Skipped,
		r.Unanswered,
		r.PassPercentage,
		passed,
		r.Elapsed.Milliseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert quiz result: %w", err)
	}
	return rec.AttemptID, nil
}

func filterClauses(column string, cfg model.StatsConfig) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Kind != "" {
		clauses = append(clauses, column+" = ?")
		args = append(args, cfg.Kind)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, formatTime(*cfg.Since))
	}
	return strings.Join(clauses, " AND "), args
}

func lastN[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[len(items)-n:]
	}
	return items
}

// ListTypingResults returns typing results oldest first, filtered by exercise
// name (Kind), start date and the last N limit.
func (s *Store) ListTypingResults(ctx context.Context, cfg model.StatsConfig) ([]model.TypingRecord, error) {
	where, args := filterClauses("exercise", cfg)
	query := fmt.Sprintf(`SELECT attempt_id, started_at, ended_at, exercise, mode, duration_ms, elapsed_ms,
			gross_wpm, net_wpm, accuracy, error_pct, full_mistakes, half_mistakes, omissions, additions,
			typed_chars, correct_chars, keystrokes, backspaces, word_gross_wpm, word_net_wpm
		FROM typing_results
		WHERE %s
		ORDER BY ended_at ASC`, where)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var records []model.TypingRecord
	for rows.Next() {
		var rec model.TypingRecord
		var startedAt, endedAt string
		var durationMs, elapsedMs int64
		r := &rec.Result
		if err := rows.Scan(&rec.AttemptID, &startedAt, &endedAt, &rec.Exercise, &rec.Mode, &durationMs, &elapsedMs,
			&r.GrossWPM, &r.NetWPM, &r.Accuracy, &r.ErrorPercentage, &r.FullMistakes, &r.HalfMistakes,
			&r.Omissions, &r.Additions, &r.TypedChars, &r.CorrectChars, &r.Keystrokes, &r.Backspaces,
			&r.WordGrossWPM, &r.WordNetWPM); err != nil {
			return nil, err
		}
		if rec.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if rec.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		rec.Duration = time.Duration(durationMs) * time.Millisecond
		r.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		r.Spelling = r.FullMistakes
		r.Capitalization = r.HalfMistakes
		r.TotalMistakes = float64(r.FullMistakes) + float64(r.HalfMistakes)/2
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lastN(records, cfg.Last), nil
}

// ListQuizResults returns quiz results oldest first, filtered by kind, start
// date and the last N limit.
func (s *Store) ListQuizResults(ctx context.Context, cfg model.StatsConfig) ([]model.QuizRecord, error) {
	where, args := filterClauses("kind", cfg)
	query := fmt.Sprintf(`SELECT attempt_id, started_at, ended_at, kind, total, correct, incorrect, skipped,
			unanswered, pass_pct, passed, elapsed_ms
		FROM quiz_results
		WHERE %s
		ORDER BY ended_at ASC`, where)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var records []model.QuizRecord
	for rows.Next() {
		var rec model.QuizRecord
		var startedAt, endedAt string
		var passed int
		var elapsedMs int64
		r := &rec.Result
		if err := rows.Scan(&rec.AttemptID, &startedAt, &endedAt, &rec.Kind, &r.Total, &r.Correct, &r.Incorrect,
			&r.Skipped, &r.Unanswered, &r.PassPercentage, &passed, &elapsedMs); err != nil {
			return nil, err
		}
		if rec.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if rec.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		r.Answered = r.Correct + r.Incorrect
		r.Passed = passed == 1
		r.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lastN(records, cfg.Last), nil
}
