// Package stats contains history calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/verte-zerg/calciprep/internal/model"
)

const (
	sparkChars          = " .:-=+*#%@"
	terminalWidthBackup = 80
	sparkLabelWidth     = 10
)

// TypingSummary aggregates typing results.
type TypingSummary struct {
	Sessions    int
	AvgNetWPM   float64
	BestNetWPM  float64
	AvgGrossWPM float64
	AvgAccuracy float64
}

// SummarizeTyping averages results. Net WPM is the headline figure.
func SummarizeTyping(records []model.TypingRecord) TypingSummary {
	sum := TypingSummary{Sessions: len(records)}
	if len(records) == 0 {
		return sum
	}
	var net, gross, acc float64
	for _, rec := range records {
		net += rec.Result.NetWPM
		gross += rec.Result.GrossWPM
		acc += rec.Result.Accuracy
		if rec.Result.NetWPM > sum.BestNetWPM {
			sum.BestNetWPM = rec.Result.NetWPM
		}
	}
	count := float64(len(records))
	sum.AvgNetWPM = net / count
	sum.AvgGrossWPM = gross / count
	sum.AvgAccuracy = acc / count
	return sum
}

// QuizSummary aggregates quiz results of one kind.
type QuizSummary struct {
	Kind        string
	Attempts    int
	Passed      int
	AvgPassPct  float64
	BestPassPct float64
}

// PassRate returns the share of passed attempts in percent.
func (q QuizSummary) PassRate() float64 {
	if q.Attempts == 0 {
		return 0
	}
	return 100 * float64(q.Passed) / float64(q.Attempts)
}

// SummarizeQuizzes groups results by kind, sorted by kind.
func SummarizeQuizzes(records []model.QuizRecord) []QuizSummary {
	byKind := map[string]*QuizSummary{}
	for _, rec := range records {
		sum, ok := byKind[rec.Kind]
		if !ok {
			sum = &QuizSummary{Kind: rec.Kind}
			byKind[rec.Kind] = sum
		}
		sum.Attempts++
		if rec.Result.Passed {
			sum.Passed++
		}
		sum.AvgPassPct += rec.Result.PassPercentage
		if rec.Result.PassPercentage > sum.BestPassPct {
			sum.BestPassPct = rec.Result.PassPercentage
		}
	}
	out := make([]QuizSummary, 0, len(byKind))
	for _, sum := range byKind {
		sum.AvgPassPct /= float64(sum.Attempts)
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// TerminalWidth returns the width of stdout, or a fallback when it is not a terminal.
func TerminalWidth() int {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return terminalWidthBackup
	}
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// RenderTypingSummary prints the typing summary block.
func RenderTypingSummary(w io.Writer, records []model.TypingRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No typing results found.")
		return err
	}
	sum := SummarizeTyping(records)
	lines := []string{
		"Typing",
		fmt.Sprintf("Sessions: %d", sum.Sessions),
		fmt.Sprintf("Avg net WPM: %.1f", sum.AvgNetWPM),
		fmt.Sprintf("Best net WPM: %.0f", sum.BestNetWPM),
		fmt.Sprintf("Avg gross WPM: %.1f", sum.AvgGrossWPM),
		fmt.Sprintf("Avg accuracy: %.1f%%", sum.AvgAccuracy),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderTypingCurves prints moving-average sparklines fitted to width.
func RenderTypingCurves(w io.Writer, records []model.TypingRecord, window, width int) error {
	if len(records) == 0 {
		return nil
	}
	net := make([]float64, len(records))
	acc := make([]float64, len(records))
	for i, rec := range records {
		net[i] = rec.Result.NetWPM
		acc[i] = rec.Result.Accuracy
	}
	net = fitSeries(MovingAverage(net, window), width-sparkLabelWidth)
	acc = fitSeries(MovingAverage(acc, window), width-sparkLabelWidth)
	if _, err := fmt.Fprintf(w, "%-*s%s\n", sparkLabelWidth, "Net WPM", Sparkline(net)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%-*s%s\n\n", sparkLabelWidth, "Accuracy", Sparkline(acc)); err != nil {
		return err
	}
	return nil
}

func fitSeries(values []float64, width int) []float64 {
	if width < 1 {
		width = 1
	}
	if len(values) <= width {
		return values
	}
	return values[len(values)-width:]
}

// RenderRecentTable prints the last n typing results.
func RenderRecentTable(w io.Writer, records []model.TypingRecord, n int) error {
	if len(records) == 0 {
		return nil
	}
	if n > 0 && len(records) > n {
		records = records[len(records)-n:]
	}
	tbl := NewTable("Date", "Exercise", "Net", "Gross", "Accuracy", "Mistakes", "Time").AlignRight(2, 3, 4, 5, 6)
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		tbl.Add(
			rec.EndedAt.Local().Format("2006-01-02 15:04"),
			rec.Exercise,
			fmt.Sprintf("%.0f", rec.Result.NetWPM),
			fmt.Sprintf("%.0f", rec.Result.GrossWPM),
			fmt.Sprintf("%.1f%%", rec.Result.Accuracy),
			fmt.Sprintf("%.1f", rec.Result.TotalMistakes),
			rec.Result.Elapsed.Round(time.Second).String(),
		)
	}
	return tbl.write(w, "Recent")
}

// RenderQuizSummary prints one row per quiz kind.
func RenderQuizSummary(w io.Writer, records []model.QuizRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No quiz results found.")
		return err
	}
	tbl := NewTable("Quiz", "Attempts", "Passed", "Pass rate", "Avg score", "Best score").AlignRight(1, 2, 3, 4, 5)
	for _, sum := range SummarizeQuizzes(records) {
		tbl.Add(
			sum.Kind,
			fmt.Sprintf("%d", sum.Attempts),
			fmt.Sprintf("%d", sum.Passed),
			fmt.Sprintf("%.1f%%", sum.PassRate()),
			fmt.Sprintf("%.1f%%", sum.AvgPassPct),
			fmt.Sprintf("%.1f%%", sum.BestPassPct),
		)
	}
	return tbl.write(w, "Quizzes")
}
