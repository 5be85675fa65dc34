package generator

import (
	"fmt"
	"strconv"

	"github.com/verte-zerg/calciprep/internal/model"
)

// DefaultOps is the operator set used when none is configured.
const DefaultOps = "+-x/"

const mathsOptions = 4

// MathsQuestions generates arithmetic multiple-choice questions. ops may
// contain '+', '-', 'x' (or '*') and '/'. Subtraction never goes negative and
// division is always exact.
func (g *Generator) MathsQuestions(count int, ops string, maxOperand int) ([]model.Question, error) {
	if count <= 0 {
		return nil, fmt.Errorf("question count must be > 0")
	}
	if maxOperand < 1 {
		return nil, fmt.Errorf("max operand must be >= 1")
	}
	opList, err := parseOps(ops)
	if err != nil {
		return nil, err
	}
	questions := make([]model.Question, 0, count)
	for i := 0; i < count; i++ {
		op := opList[g.rnd.Intn(len(opList))]
		a := g.rnd.Intn(maxOperand) + 1
		b := g.rnd.Intn(maxOperand) + 1
		var answer int
		switch op {
		case '+':
			answer = a + b
		case '-':
			if a < b {
				a, b = b, a
			}
			answer = a - b
		case 'x':
			answer = a * b
		case '/':
			answer = a
			a = a * b
		}
		text := fmt.Sprintf("%d %s %d = ?", a, opSymbol(op), b)
		options := g.Shuffle(g.mathsOptions(answer))
		questions = append(questions, model.Question{
			Question: text,
			Options:  options,
			Answer:   strconv.Itoa(answer),
		})
	}
	return questions, nil
}

func (g *Generator) mathsOptions(answer int) []string {
	seen := map[int]struct{}{answer: {}}
	options := []string{strconv.Itoa(answer)}
	spread := answer/5 + 5
	for attempts := 0; len(options) < mathsOptions && attempts < 50; attempts++ {
		delta := g.rnd.Intn(spread) + 1
		if g.rnd.Intn(2) == 0 {
			delta = -delta
		}
		candidate := answer + delta
		if candidate < 0 {
			continue
		}
		if _, ok := seen[candidate]; ok {
			continue
		}
		seen[candidate] = struct{}{}
		options = append(options, strconv.Itoa(candidate))
	}
	for next := answer + 1; len(options) < mathsOptions; next++ {
		if _, ok := seen[next]; ok {
			continue
		}
		seen[next] = struct{}{}
		options = append(options, strconv.Itoa(next))
	}
	return options
}

func parseOps(ops string) ([]rune, error) {
	if ops == "" {
		ops = DefaultOps
	}
	seen := map[rune]struct{}{}
	var out []rune
	for _, r := range ops {
		switch r {
		case '*', '×':
			r = 'x'
		case '÷':
			r = '/'
		case ' ', ',':
			continue
		}
		switch r {
		case '+', '-', 'x', '/':
		default:
			return nil, fmt.Errorf("unknown operator %q (allowed: + - x /)", r)
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("operator set must not be empty")
	}
	return out, nil
}

func opSymbol(op rune) string {
	switch op {
	case 'x':
		return "×"
	case '/':
		return "÷"
	default:
		return string(op)
	}
}
