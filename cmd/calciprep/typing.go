package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/calciprep/internal/exercise"
	"github.com/verte-zerg/calciprep/internal/generator"
	"github.com/verte-zerg/calciprep/internal/model"
	"github.com/verte-zerg/calciprep/internal/tui"
)

const (
	defaultExercise = "timed-test"
	keepSetting     = -1
)

var (
	typeExercise string
	typeDuration int
	typeWords    int
	typeCaps     float64
	typePunct    float64
)

func newTypeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "type",
		Short: "Run a typing exercise",
		Args:  cobra.NoArgs,
		RunE:  runTypeCmd,
	}
	bindTypeFlags(cmd)
	return cmd
}

func bindTypeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&typeExercise, "exercise", defaultExercise, "exercise name (see: calciprep exercises)")
	cmd.Flags().IntVar(&typeDuration, "duration", 0, "time limit in seconds, 0 for untimed or the test default")
	cmd.Flags().IntVar(&typeWords, "words", 0, "words per passage, 0 keeps the exercise value")
	cmd.Flags().Float64Var(&typeCaps, "caps", keepSetting, "capitalization probability (0-1), -1 keeps the exercise value")
	cmd.Flags().Float64Var(&typePunct, "punct", keepSetting, "punctuation probability (0-1), -1 keeps the exercise value")
}

func runTypeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "exercise", &typeExercise, fileCfg.Typing.Exercise)
	applyIntConfig(cmd, "duration", &typeDuration, fileCfg.Typing.Duration)
	applyIntConfig(cmd, "words", &typeWords, fileCfg.Typing.Words)
	applyFloatConfig(cmd, "caps", &typeCaps, fileCfg.Typing.CapsPct)
	applyFloatConfig(cmd, "punct", &typePunct, fileCfg.Typing.PunctPct)

	cfg := model.TypingConfig{
		Exercise: typeExercise,
		Duration: time.Duration(typeDuration) * time.Second,
		Words:    typeWords,
		CapsPct:  typeCaps,
		PunctPct: typePunct,
	}
	if err := validateTypingConfig(cfg); err != nil {
		return err
	}

	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	ex, ok := cat.Get(cfg.Exercise)
	if !ok {
		return fmt.Errorf("unknown exercise %q (available: %s)", cfg.Exercise, strings.Join(cat.Names(), ", "))
	}
	duration, err := resolveDuration(ex, cfg.Duration)
	if err != nil {
		return err
	}
	ex = exercise.Tune(ex, cfg.Words, cfg.CapsPct, cfg.PunctPct)

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	return runProgram(tui.NewTypingModel(ex, duration, generator.New(), st))
}

func validateTypingConfig(cfg model.TypingConfig) error {
	if strings.TrimSpace(cfg.Exercise) == "" {
		return fmt.Errorf("--exercise must not be empty")
	}
	if cfg.Duration < 0 {
		return fmt.Errorf("--duration must be >= 0")
	}
	if cfg.Words < 0 {
		return fmt.Errorf("--words must be >= 0")
	}
	if cfg.CapsPct != keepSetting && (cfg.CapsPct < 0 || cfg.CapsPct > 1) {
		return fmt.Errorf("--caps must be between 0 and 1")
	}
	if cfg.PunctPct != keepSetting && (cfg.PunctPct < 0 || cfg.PunctPct > 1) {
		return fmt.Errorf("--punct must be between 0 and 1")
	}
	return nil
}

// resolveDuration picks the countdown for timed tests. Other exercises run
// with the requested duration, untimed when it is zero.
func resolveDuration(ex exercise.Exercise, requested time.Duration) (time.Duration, error) {
	tests, ok := ex.(exercise.Tests)
	if !ok {
		return requested, nil
	}
	if requested == 0 {
		return tests.Durations[0], nil
	}
	if !tests.AllowsDuration(requested) {
		allowed := make([]string, 0, len(tests.Durations))
		for _, d := range tests.Durations {
			allowed = append(allowed, fmt.Sprintf("%d", int(d/time.Second)))
		}
		return 0, fmt.Errorf("--duration %d is not allowed for %s (allowed: %s)",
			int(requested/time.Second), tests.Name(), strings.Join(allowed, ", "))
	}
	return requested, nil
}
