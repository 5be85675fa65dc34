package main

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/calciprep/internal/config"
	"github.com/verte-zerg/calciprep/internal/exercise"
	"github.com/verte-zerg/calciprep/internal/model"
)

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	setting := regexp.MustCompile(`^# [a-z-]+ = `)
	var lines []string
	for _, line := range strings.Split(defaultConfigTemplate(), "\n") {
		if setting.MatchString(line) {
			line = strings.TrimPrefix(line, "# ")
		}
		lines = append(lines, line)
	}
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("load uncommented template: %v", err)
	}
	if cfg.Typing.Exercise == nil || *cfg.Typing.Exercise != defaultExercise {
		t.Fatalf("unexpected typing exercise %v", cfg.Typing.Exercise)
	}
	if cfg.Maths.Ops == nil || *cfg.Maths.Ops != "+-x/" {
		t.Fatalf("unexpected maths ops %v", cfg.Maths.Ops)
	}
	if cfg.Quiz.FeedbackDelay == nil || *cfg.Quiz.FeedbackDelay != defaultFeedbackMs {
		t.Fatalf("unexpected feedback delay %v", cfg.Quiz.FeedbackDelay)
	}
}

func TestEnsureConfigFileKeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := ensureConfigFile(path); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := os.WriteFile(path, []byte("[typing]\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := ensureConfigFile(path); err != nil {
		t.Fatalf("ensure existing: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "[typing]\n" {
		t.Fatalf("expected existing config to be kept, got %q", data)
	}
}

func TestValidateTypingConfig(t *testing.T) {
	ok := model.TypingConfig{Exercise: "timed-test", CapsPct: keepSetting, PunctPct: 0.5}
	if err := validateTypingConfig(ok); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	bad := ok
	bad.CapsPct = 1.5
	if err := validateTypingConfig(bad); err == nil {
		t.Fatalf("expected caps range error")
	}
	bad = ok
	bad.Exercise = " "
	if err := validateTypingConfig(bad); err == nil {
		t.Fatalf("expected empty exercise error")
	}
}

func TestResolveDuration(t *testing.T) {
	tests := exercise.Tests{ID: "t", Durations: []time.Duration{time.Minute, 2 * time.Minute}}
	if d, err := resolveDuration(tests, 0); err != nil || d != time.Minute {
		t.Fatalf("expected default test duration, got %v %v", d, err)
	}
	if d, err := resolveDuration(tests, 2*time.Minute); err != nil || d != 2*time.Minute {
		t.Fatalf("expected allowed duration, got %v %v", d, err)
	}
	if _, err := resolveDuration(tests, 90*time.Second); err == nil || !strings.Contains(err.Error(), "60, 120") {
		t.Fatalf("expected disallowed duration error, got %v", err)
	}
	para := exercise.Paragraphs{ID: "p"}
	if d, err := resolveDuration(para, 0); err != nil || d != 0 {
		t.Fatalf("expected untimed paragraphs, got %v %v", d, err)
	}
}

func TestMathsLimitBitterEnd(t *testing.T) {
	cfg := model.MathsConfig{TimeLimit: time.Minute, BitterEnd: true}
	if mathsLimit(cfg) != 0 {
		t.Fatalf("expected stopwatch for bitter-end drills")
	}
	cfg.BitterEnd = false
	if mathsLimit(cfg) != time.Minute {
		t.Fatalf("expected configured limit")
	}
}

func TestValidateQuizAndMaths(t *testing.T) {
	if err := validateQuizConfig(model.QuizConfig{Questions: -1}); err == nil {
		t.Fatalf("expected negative questions error")
	}
	if err := validateMathsConfig(model.MathsConfig{Questions: 5, MaxOperand: 0, Ops: "+"}); err == nil {
		t.Fatalf("expected max operand error")
	}
	if err := validateMathsConfig(model.MathsConfig{Questions: 5, MaxOperand: 9, Ops: "+"}); err != nil {
		t.Fatalf("expected valid maths config, got %v", err)
	}
}

func TestStatsConfig(t *testing.T) {
	cfg, err := statsConfig("maths", "2024-03-01", 5, 3)
	if err != nil {
		t.Fatalf("stats config: %v", err)
	}
	if cfg.Since == nil || cfg.Since.Year() != 2024 || cfg.Kind != "maths" || cfg.Last != 5 {
		t.Fatalf("unexpected stats config %+v", cfg)
	}
	if _, err := statsConfig("", "yesterday", 0, 3); err == nil {
		t.Fatalf("expected invalid since error")
	}
	if _, err := statsConfig("", "", 0, 0); err == nil {
		t.Fatalf("expected curve window error")
	}
}

func TestExerciseDetail(t *testing.T) {
	tests := exercise.Tests{Durations: []time.Duration{time.Minute, 5 * time.Minute}}
	if got := exerciseDetail(tests); got != "60s 300s" {
		t.Fatalf("unexpected detail %q", got)
	}
	if got := exerciseDetail(exercise.LearnKeys{Keys: "asdf"}); got != "keys asdf" {
		t.Fatalf("unexpected detail %q", got)
	}
}

func TestExercisesListingAlignsColumns(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	cmd := newExercisesCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	if err := runExercisesCmd(cmd, nil); err != nil {
		t.Fatalf("list exercises: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) < 2 || !strings.Contains(buf.String(), "timed-test") {
		t.Fatalf("unexpected listing %q", buf.String())
	}
	width := runewidth.StringWidth(lines[0])
	for _, line := range lines[1:] {
		if runewidth.StringWidth(line) != width {
			t.Fatalf("expected padded rows of width %d, got %q", width, line)
		}
	}
}
