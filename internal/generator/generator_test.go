package generator

import (
	"strconv"
	"strings"
	"testing"
)

func TestMathsQuestionsContainAnswerOnce(t *testing.T) {
	g := NewSeeded(42)
	questions, err := g.MathsQuestions(200, "+-x/", 12)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(questions) != 200 {
		t.Fatalf("expected 200 questions, got %d", len(questions))
	}
	for _, q := range questions {
		if len(q.Options) != mathsOptions {
			t.Fatalf("expected %d options for %q, got %v", mathsOptions, q.Question, q.Options)
		}
		count := 0
		seen := map[string]struct{}{}
		for _, opt := range q.Options {
			if opt == q.Answer {
				count++
			}
			if _, ok := seen[opt]; ok {
				t.Fatalf("duplicate option %q in %v", opt, q.Options)
			}
			seen[opt] = struct{}{}
			if n, err := strconv.Atoi(opt); err != nil || n < 0 {
				t.Fatalf("expected non-negative integer option, got %q", opt)
			}
		}
		if count != 1 {
			t.Fatalf("expected answer exactly once in %v for %q", q.Options, q.Question)
		}
	}
}

func TestMathsQuestionsDivisionIsExact(t *testing.T) {
	g := NewSeeded(7)
	questions, err := g.MathsQuestions(50, "/", 10)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, q := range questions {
		var a, b int
		parts := strings.Fields(q.Question)
		a, _ = strconv.Atoi(parts[0])
		b, _ = strconv.Atoi(parts[2])
		if b == 0 || a%b != 0 {
			t.Fatalf("expected exact division in %q", q.Question)
		}
		if strconv.Itoa(a/b) != q.Answer {
			t.Fatalf("wrong answer for %q: %s", q.Question, q.Answer)
		}
	}
}

func TestMathsQuestionsRejectsBadOps(t *testing.T) {
	g := NewSeeded(1)
	if _, err := g.MathsQuestions(5, "+%", 10); err == nil {
		t.Fatalf("expected error for unknown operator")
	}
	if _, err := g.MathsQuestions(5, "+", 0); err == nil {
		t.Fatalf("expected error for max operand 0")
	}
}

func TestGenerateWeightedPrefersFocusKeys(t *testing.T) {
	g := NewSeeded(3)
	words := []string{"fff", "jjj"}
	focus := map[rune]struct{}{'f': {}}
	picked := g.GenerateWeighted(words, 1000, focus, 10)
	f := 0
	for _, w := range picked {
		if w == "fff" {
			f++
		}
	}
	if f < 800 {
		t.Fatalf("expected focus word to dominate, got %d/1000", f)
	}
}
