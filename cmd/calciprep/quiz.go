package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/calciprep/internal/config"
	"github.com/verte-zerg/calciprep/internal/exercise"
	"github.com/verte-zerg/calciprep/internal/generator"
	"github.com/verte-zerg/calciprep/internal/model"
	"github.com/verte-zerg/calciprep/internal/quiz"
	"github.com/verte-zerg/calciprep/internal/tui"
)

const (
	kindVocab = "vocab"
	kindMaths = "maths"

	defaultQuizQuestions  = 10
	defaultMathsQuestions = 20
	defaultMaxOperand     = 12
	defaultFeedbackMs     = 1000
)

var (
	quizQuestions  int
	quizTimeLimit  int
	quizFeedbackMs int

	mathsQuestions  int
	mathsOps        string
	mathsMaxOperand int
	mathsTimeLimit  int
	mathsBitterEnd  bool
	mathsFeedbackMs int
)

func newQuizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Run a vocabulary quiz",
		Args:  cobra.NoArgs,
		RunE:  runQuizCmd,
	}
	cmd.Flags().IntVar(&quizQuestions, "questions", defaultQuizQuestions, "number of questions, 0 for the whole bank")
	cmd.Flags().IntVar(&quizTimeLimit, "time-limit", 0, "time limit in seconds, 0 for no limit")
	cmd.Flags().IntVar(&quizFeedbackMs, "feedback-delay-ms", defaultFeedbackMs, "how long answer feedback stays on screen")
	return cmd
}

func runQuizCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	applyIntConfig(cmd, "questions", &quizQuestions, fileCfg.Quiz.Questions)
	applyIntConfig(cmd, "time-limit", &quizTimeLimit, fileCfg.Quiz.TimeLimit)
	applyIntConfig(cmd, "feedback-delay-ms", &quizFeedbackMs, fileCfg.Quiz.FeedbackDelay)

	cfg := model.QuizConfig{
		Questions:     quizQuestions,
		TimeLimit:     time.Duration(quizTimeLimit) * time.Second,
		FeedbackDelay: time.Duration(quizFeedbackMs) * time.Millisecond,
	}
	if err := validateQuizConfig(cfg); err != nil {
		return err
	}

	bank, err := exercise.LoadVocabulary(config.DefaultVocabPath())
	if err != nil {
		return fmt.Errorf("failed to load vocabulary: %w", err)
	}
	questions := exercise.SelectQuestions(generator.New(), bank, cfg.Questions)

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	m := tui.NewQuizModel(kindVocab, "Vocabulary", questions, cfg.FeedbackDelay, st, quiz.WithTimeLimit(cfg.TimeLimit))
	return runProgram(m)
}

func newMathsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "maths",
		Short: "Run a mental arithmetic drill",
		Args:  cobra.NoArgs,
		RunE:  runMathsCmd,
	}
	cmd.Flags().IntVar(&mathsQuestions, "questions", defaultMathsQuestions, "number of questions")
	cmd.Flags().StringVar(&mathsOps, "ops", generator.DefaultOps, "operators to drill (+ - x /)")
	cmd.Flags().IntVar(&mathsMaxOperand, "max-operand", defaultMaxOperand, "largest operand")
	cmd.Flags().IntVar(&mathsTimeLimit, "time-limit", 0, "time limit in seconds, 0 for no limit")
	cmd.Flags().BoolVar(&mathsBitterEnd, "bitter-end", false, "ignore the time limit and answer every question")
	cmd.Flags().IntVar(&mathsFeedbackMs, "feedback-delay-ms", defaultFeedbackMs, "how long answer feedback stays on screen")
	return cmd
}

func runMathsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	applyIntConfig(cmd, "questions", &mathsQuestions, fileCfg.Maths.Questions)
	applyStringConfig(cmd, "ops", &mathsOps, fileCfg.Maths.Ops)
	applyIntConfig(cmd, "max-operand", &mathsMaxOperand, fileCfg.Maths.MaxOperand)
	applyIntConfig(cmd, "time-limit", &mathsTimeLimit, fileCfg.Maths.TimeLimit)
	applyBoolConfig(cmd, "bitter-end", &mathsBitterEnd, fileCfg.Maths.BitterEnd)
	applyIntConfig(cmd, "feedback-delay-ms", &mathsFeedbackMs, fileCfg.Maths.FeedbackDelay)

	cfg := model.MathsConfig{
		Questions:     mathsQuestions,
		Ops:           mathsOps,
		MaxOperand:    mathsMaxOperand,
		TimeLimit:     time.Duration(mathsTimeLimit) * time.Second,
		BitterEnd:     mathsBitterEnd,
		FeedbackDelay: time.Duration(mathsFeedbackMs) * time.Millisecond,
	}
	if err := validateMathsConfig(cfg); err != nil {
		return err
	}
	if cfg.BitterEnd && cfg.TimeLimit > 0 {
		logErrln("--bitter-end set; ignoring the time limit")
	}

	questions, err := generator.New().MathsQuestions(cfg.Questions, cfg.Ops, cfg.MaxOperand)
	if err != nil {
		return fmt.Errorf("failed to generate questions: %w", err)
	}

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	m := tui.NewQuizModel(kindMaths, "Maths", questions, cfg.FeedbackDelay, st, quiz.WithTimeLimit(mathsLimit(cfg)))
	return runProgram(m)
}

// mathsLimit returns the countdown for a drill. Bitter-end drills use a stopwatch.
func mathsLimit(cfg model.MathsConfig) time.Duration {
	if cfg.BitterEnd {
		return 0
	}
	return cfg.TimeLimit
}

func validateQuizConfig(cfg model.QuizConfig) error {
	if cfg.Questions < 0 {
		return fmt.Errorf("--questions must be >= 0")
	}
	if cfg.TimeLimit < 0 {
		return fmt.Errorf("--time-limit must be >= 0")
	}
	if cfg.FeedbackDelay < 0 {
		return fmt.Errorf("--feedback-delay-ms must be >= 0")
	}
	return nil
}

func validateMathsConfig(cfg model.MathsConfig) error {
	if cfg.Questions <= 0 {
		return fmt.Errorf("--questions must be > 0")
	}
	if cfg.MaxOperand < 1 {
		return fmt.Errorf("--max-operand must be >= 1")
	}
	if cfg.Ops == "" {
		return fmt.Errorf("--ops must not be empty")
	}
	if cfg.TimeLimit < 0 {
		return fmt.Errorf("--time-limit must be >= 0")
	}
	if cfg.FeedbackDelay < 0 {
		return fmt.Errorf("--feedback-delay-ms must be >= 0")
	}
	return nil
}
