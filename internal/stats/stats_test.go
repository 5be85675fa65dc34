package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/calciprep/internal/model"
)

func typingRecords(nets ...float64) []model.TypingRecord {
	out := make([]model.TypingRecord, 0, len(nets))
	for i, net := range nets {
		out = append(out, model.TypingRecord{
			EndedAt:  time.Unix(int64(i)*3600, 0),
			Exercise: "timed-test",
			Result: model.TypingResult{
				NetWPM:   net,
				GrossWPM: net + 5,
				Accuracy: 95,
				Elapsed:  time.Minute,
			},
		})
	}
	return out
}

func TestSummarizeTyping(t *testing.T) {
	sum := SummarizeTyping(typingRecords(30, 40, 50))
	if sum.Sessions != 3 || sum.AvgNetWPM != 40 || sum.BestNetWPM != 50 || sum.AvgGrossWPM != 45 {
		t.Fatalf("unexpected summary %+v", sum)
	}
}

func TestSummarizeQuizzesByKind(t *testing.T) {
	records := []model.QuizRecord{
		{Kind: "vocab", Result: model.QuizResult{PassPercentage: 60, Passed: true}},
		{Kind: "maths", Result: model.QuizResult{PassPercentage: 20}},
		{Kind: "vocab", Result: model.QuizResult{PassPercentage: 30}},
	}
	sums := SummarizeQuizzes(records)
	if len(sums) != 2 || sums[0].Kind != "maths" || sums[1].Kind != "vocab" {
		t.Fatalf("unexpected summaries %+v", sums)
	}
	vocab := sums[1]
	if vocab.Attempts != 2 || vocab.Passed != 1 || vocab.AvgPassPct != 45 || vocab.PassRate() != 50 {
		t.Fatalf("unexpected vocab summary %+v", vocab)
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: want %.1f, got %.1f", i, want[i], got[i])
		}
	}
}

func TestSparklineFlatSeries(t *testing.T) {
	if got := Sparkline([]float64{3, 3, 3}); got != "+++" {
		t.Fatalf("unexpected flat sparkline %q", got)
	}
	line := Sparkline([]float64{0, 10})
	if line != " @" {
		t.Fatalf("unexpected sparkline %q", line)
	}
}

func TestRenderFitsCurveToWidth(t *testing.T) {
	var buf bytes.Buffer
	report := Report{Typing: typingRecords(10, 20, 30, 40, 50, 60, 70, 80)}
	if err := report.Render(&buf, 1, sparkLabelWidth+4); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, needle := range []string{"Sessions: 8", "Best net WPM: 80", "Recent", "No quiz results found."} {
		if !strings.Contains(out, needle) {
			t.Fatalf("expected %q in output:\n%s", needle, out)
		}
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "Net WPM") && len(line) != sparkLabelWidth+4 {
			t.Fatalf("expected curve fitted to width, got %q", line)
		}
	}
}
