package exercise

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/calciprep/internal/generator"
	"github.com/verte-zerg/calciprep/internal/model"
)

//go:embed vocab.toml
var defaultVocab string

type vocabFile struct {
	Questions []model.Question `toml:"question"`
}

// DefaultVocabulary returns the embedded vocabulary bank.
func DefaultVocabulary() ([]model.Question, error) {
	return ParseVocabulary(defaultVocab)
}

// LoadVocabulary reads a vocabulary bank from path, or the embedded bank when
// the file does not exist.
func LoadVocabulary(path string) ([]model.Question, error) {
	if path == "" {
		return DefaultVocabulary()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultVocabulary()
		}
		return nil, fmt.Errorf("failed to read vocabulary: %w", err)
	}
	questions, err := ParseVocabulary(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary %s: %w", path, err)
	}
	return questions, nil
}

// ParseVocabulary decodes and validates a TOML question bank.
func ParseVocabulary(data string) ([]model.Question, error) {
	var file vocabFile
	if _, err := toml.Decode(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode vocabulary: %w", err)
	}
	for i, q := range file.Questions {
		if err := ValidateQuestion(q); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	if len(file.Questions) == 0 {
		return nil, fmt.Errorf("vocabulary is empty")
	}
	return file.Questions, nil
}

// ValidateQuestion checks that a question has distinct options including its answer.
func ValidateQuestion(q model.Question) error {
	if q.Question == "" {
		return fmt.Errorf("question text is empty")
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("%q needs at least two options", q.Question)
	}
	seen := map[string]struct{}{}
	found := false
	for _, opt := range q.Options {
		if _, dup := seen[opt]; dup {
			return fmt.Errorf("%q has duplicate option %q", q.Question, opt)
		}
		seen[opt] = struct{}{}
		if opt == q.Answer {
			found = true
		}
	}
	if !found {
		return fmt.Errorf("%q: answer %q is not one of the options", q.Question, q.Answer)
	}
	return nil
}

// SelectQuestions picks up to n questions in random order with shuffled
// options. n <= 0 selects all of them.
func SelectQuestions(g *generator.Generator, bank []model.Question, n int) []model.Question {
	order := make([]int, len(bank))
	for i := range order {
		order[i] = i
	}
	for i := len(order) - 1; i > 0; i-- {
		j := g.Intn(i + 1)
		order[i], order[j] = order[j], order[i]
	}
	if n <= 0 || n > len(order) {
		n = len(order)
	}
	out := make([]model.Question, 0, n)
	for _, idx := range order[:n] {
		q := bank[idx]
		q.Options = g.Shuffle(q.Options)
		out = append(out, q)
	}
	return out
}
