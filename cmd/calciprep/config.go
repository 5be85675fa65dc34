package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/calciprep/internal/config"
	"github.com/verte-zerg/calciprep/internal/generator"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// ensureConfigFile writes the commented template unless a config exists.
func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# calciprep configuration
# Uncomment a value to enable it. CLI flags override config values.
# Exercises, vocabulary and the word list can be extended with
# exercises.toml, vocab.toml and words.txt next to this file.

[typing]
# exercise = %q   # Exercise name (calciprep exercises)
# duration = 0              # Time limit in seconds, 0 for untimed or the test default
# words = 0                 # Words per passage, 0 keeps the exercise value
# caps = -1                 # Capitalization probability (0-1), -1 keeps the exercise value
# punct = -1                # Punctuation probability (0-1), -1 keeps the exercise value

[quiz]
# questions = %d            # Number of questions, 0 for the whole bank
# time-limit = 0            # Time limit in seconds, 0 for no limit
# feedback-delay-ms = %d  # How long answer feedback stays on screen

[maths]
# questions = %d            # Number of questions
# ops = %q              # Operators to drill
# max-operand = %d          # Largest operand
# time-limit = 0            # Time limit in seconds, 0 for no limit
# bitter-end = false        # Ignore the time limit and answer every question
# feedback-delay-ms = %d  # How long answer feedback stays on screen
`,
		defaultExercise,
		defaultQuizQuestions,
		defaultFeedbackMs,
		defaultMathsQuestions,
		generator.DefaultOps,
		defaultMaxOperand,
		defaultFeedbackMs,
	)
}
