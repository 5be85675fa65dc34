// Package main provides the CLI entrypoint for calciprep.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/calciprep/internal/config"
	"github.com/verte-zerg/calciprep/internal/exercise"
	"github.com/verte-zerg/calciprep/internal/store"
	"github.com/verte-zerg/calciprep/internal/wordlist"
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "calciprep",
		Short:         "Typing tests, vocabulary quizzes and maths drills",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTypeCmd,
	}
	bindTypeFlags(rootCmd)

	rootCmd.AddCommand(newTypeCmd())
	rootCmd.AddCommand(newQuizCmd())
	rootCmd.AddCommand(newMathsCmd())
	rootCmd.AddCommand(newExercisesCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newConfigCmd())
	return rootCmd
}

func loadFileConfig() (config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	return fileCfg, nil
}

// loadWords returns the user word list when present, else the built-in one.
func loadWords() ([]string, error) {
	path := config.DefaultWordListPath()
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return wordlist.DefaultWords(), nil
		}
		return nil, fmt.Errorf("failed to stat word list: %w", err)
	}
	words, err := wordlist.LoadWords(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load word list %s: %w", path, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list %s is empty", path)
	}
	return words, nil
}

func loadCatalog() (exercise.Catalog, error) {
	words, err := loadWords()
	if err != nil {
		return exercise.Catalog{}, err
	}
	cat, err := exercise.LoadCatalog(config.DefaultCatalogPath(), words)
	if err != nil {
		return exercise.Catalog{}, fmt.Errorf("failed to load exercises: %w", err)
	}
	return cat, nil
}

func openStore() (*store.Store, func(), error) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	closeFn := func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}
	return st, closeFn, nil
}

func runProgram(m tea.Model) error {
	program := tea.NewProgram(m, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if s, ok := final.(interface{ SaveErr() error }); ok {
		if err := s.SaveErr(); err != nil {
			return fmt.Errorf("failed to save result: %w", err)
		}
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format, args...)
}

func logErrln(args ...any) {
	_, _ = fmt.Fprintln(os.Stderr, args...)
}
