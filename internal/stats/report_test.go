package stats

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/calciprep/internal/model"
	"github.com/verte-zerg/calciprep/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "calciprep.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		begin := start.Add(time.Duration(i) * time.Hour)
		_, err := st.InsertTypingResult(ctx, model.TypingRecord{
			StartedAt: begin,
			EndedAt:   begin.Add(time.Minute),
			Exercise:  "timed-test",
			Mode:      "tests",
			Duration:  time.Minute,
			Result:    model.TypingResult{GrossWPM: 50, NetWPM: float64(40 + i), Accuracy: 96, Elapsed: time.Minute},
		})
		if err != nil {
			t.Fatalf("insert typing: %v", err)
		}
	}
	_, err = st.InsertQuizResult(ctx, model.QuizRecord{
		StartedAt: start,
		EndedAt:   start.Add(time.Minute),
		Kind:      "vocab",
		Result:    model.QuizResult{Total: 5, Correct: 3, Incorrect: 2, PassPercentage: 60, Passed: true},
	})
	if err != nil {
		t.Fatalf("insert quiz: %v", err)
	}

	report, err := BuildReport(ctx, st, model.StatsConfig{Last: 2})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Typing) != 2 || report.Typing[1].Result.NetWPM != 42 {
		t.Fatalf("unexpected typing records %+v", report.Typing)
	}
	if len(report.Quizzes) != 1 {
		t.Fatalf("expected 1 quiz record, got %d", len(report.Quizzes))
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, 2, 80); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, needle := range []string{"Typing", "Recent", "timed-test", "Quizzes", "vocab", "100.0%"} {
		if !strings.Contains(out, needle) {
			t.Fatalf("expected %q in output:\n%s", needle, out)
		}
	}
}
