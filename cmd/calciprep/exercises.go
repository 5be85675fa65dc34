package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/calciprep/internal/exercise"
	"github.com/verte-zerg/calciprep/internal/stats"
)

func newExercisesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exercises",
		Short: "List typing exercises",
		Args:  cobra.NoArgs,
		RunE:  runExercisesCmd,
	}
}

func runExercisesCmd(cmd *cobra.Command, _ []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	tbl := stats.NewTable()
	for _, name := range cat.Names() {
		ex, _ := cat.Get(name)
		tbl.Add(name, string(ex.Mode()), ex.Title(), exerciseDetail(ex))
	}
	if err := tbl.Print(cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func exerciseDetail(ex exercise.Exercise) string {
	switch e := ex.(type) {
	case exercise.LearnKeys:
		return "keys " + e.Keys
	case exercise.PracticeWords:
		return fmt.Sprintf("%d words", e.Count)
	case exercise.Paragraphs:
		return fmt.Sprintf("%d paragraphs", len(e.Texts))
	case exercise.Tests:
		secs := make([]string, 0, len(e.Durations))
		for _, d := range e.Durations {
			secs = append(secs, fmt.Sprintf("%ds", int(d/time.Second)))
		}
		return strings.Join(secs, " ")
	default:
		return ""
	}
}
