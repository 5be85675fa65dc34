package stats

import (
	"context"
	"fmt"
	"io"

	"github.com/verte-zerg/calciprep/internal/model"
	"github.com/verte-zerg/calciprep/internal/store"
)

const recentRows = 10

// Report contains the history loaded for rendering.
type Report struct {
	Typing  []model.TypingRecord
	Quizzes []model.QuizRecord
}

// BuildReport loads typing and quiz history with the same filters.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	typing, err := st.ListTypingResults(ctx, cfg)
	if err != nil {
		return Report{}, fmt.Errorf("failed to load typing results: %w", err)
	}
	quizzes, err := st.ListQuizResults(ctx, cfg)
	if err != nil {
		return Report{}, fmt.Errorf("failed to load quiz results: %w", err)
	}
	return Report{Typing: typing, Quizzes: quizzes}, nil
}

// Render writes the full report sized to width.
func (r Report) Render(w io.Writer, window, width int) error {
	if err := RenderTypingSummary(w, r.Typing); err != nil {
		return err
	}
	if err := RenderTypingCurves(w, r.Typing, window, width); err != nil {
		return err
	}
	if err := RenderRecentTable(w, r.Typing, recentRows); err != nil {
		return err
	}
	return RenderQuizSummary(w, r.Quizzes)
}
