package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/calciprep/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "calciprep.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestTypingResultsRoundTripAndFilters(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Unix(0, 0).UTC()
	for i, ex := range []string{"paragraphs", "timed-test", "timed-test"} {
		start := base.Add(time.Duration(i) * time.Hour)
		rec := model.TypingRecord{
			StartedAt: start,
			EndedAt:   start.Add(time.Minute),
			Exercise:  ex,
			Mode:      "tests",
			Duration:  time.Minute,
			Result: model.TypingResult{
				GrossWPM:     float64(40 + i),
				NetWPM:       float64(35 + i),
				Accuracy:     97.5,
				FullMistakes: 2,
				HalfMistakes: 1,
				Elapsed:      time.Minute,
			},
		}
		id, err := st.InsertTypingResult(ctx, rec)
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
		if id == "" {
			t.Fatalf("expected generated attempt id")
		}
	}

	all, err := st.ListTypingResults(ctx, model.StatsConfig{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 records, got %d", len(all))
	}
	if all[0].Result.NetWPM != 35 || all[2].Result.GrossWPM != 42 {
		t.Fatalf("unexpected ordering: %+v", all)
	}
	if all[0].Result.TotalMistakes != 2.5 || all[0].Result.Elapsed != time.Minute {
		t.Fatalf("unexpected derived fields: %+v", all[0].Result)
	}

	tests, err := st.ListTypingResults(ctx, model.StatsConfig{Kind: "timed-test", Last: 1})
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(tests) != 1 || tests[0].Result.NetWPM != 37 {
		t.Fatalf("unexpected filtered records: %+v", tests)
	}

	since := base.Add(90 * time.Minute)
	recent, err := st.ListTypingResults(ctx, model.StatsConfig{Since: &since})
	if err != nil {
		t.Fatalf("list since: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("expected 1 record since %v, got %d", since, len(recent))
	}
}

func TestQuizResultsRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	start := time.Unix(100, 0).UTC()
	rec := model.QuizRecord{
		AttemptID: "fixed-id",
		StartedAt: start,
		EndedAt:   start.Add(2 * time.Minute),
		Kind:      "maths",
		Result: model.QuizResult{
			Total:          10,
			Correct:        3,
			Incorrect:      2,
			Skipped:        5,
			PassPercentage: 60,
			Passed:         true,
			Elapsed:        2 * time.Minute,
		},
	}
	id, err := st.InsertQuizResult(ctx, rec)
	if err != nil || id != "fixed-id" {
		t.Fatalf("insert: id=%q err=%v", id, err)
	}
	if _, err := st.InsertQuizResult(ctx, rec); err == nil {
		t.Fatalf("expected duplicate attempt id to fail")
	}
	got, err := st.ListQuizResults(ctx, model.StatsConfig{Kind: "maths"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	r := got[0].Result
	if !r.Passed || r.Answered != 5 || r.Skipped != 5 || r.Elapsed != 2*time.Minute {
		t.Fatalf("unexpected result %+v", r)
	}
	vocab, err := st.ListQuizResults(ctx, model.StatsConfig{Kind: "vocab"})
	if err != nil {
		t.Fatalf("list vocab: %v", err)
	}
	if len(vocab) != 0 {
		t.Fatalf("expected no vocab records")
	}
}

func TestTimestampsOrderAcrossFractionsAndZones(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	east := time.FixedZone("east", 3*3600)
	whole := time.Date(2026, 3, 1, 10, 0, 5, 0, time.UTC)
	ends := []time.Time{
		whole.Add(-500 * time.Millisecond),
		whole,
		whole.Add(500 * time.Millisecond).In(east),
	}
	for i, end := range ends {
		rec := model.TypingRecord{
			StartedAt: end.Add(-time.Minute),
			EndedAt:   end,
			Exercise:  "timed-test",
			Mode:      "tests",
			Result:    model.TypingResult{NetWPM: float64(i)},
		}
		if _, err := st.InsertTypingResult(ctx, rec); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	all, err := st.ListTypingResults(ctx, model.StatsConfig{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i, rec := range all {
		if rec.Result.NetWPM != float64(i) {
			t.Fatalf("record %d out of order: %+v", i, all)
		}
		if !rec.EndedAt.Equal(ends[i]) {
			t.Fatalf("record %d ended %v, want %v", i, rec.EndedAt, ends[i])
		}
	}
	since := whole.In(east)
	recent, err := st.ListTypingResults(ctx, model.StatsConfig{Since: &since})
	if err != nil {
		t.Fatalf("list since: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 records since %v, got %d", since, len(recent))
	}
}
