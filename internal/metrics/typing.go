// Package metrics computes typing and quiz scores.
package metrics

import (
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/verte-zerg/calciprep/internal/model"
)

// MinElapsedSeconds is the floor applied to elapsed time before dividing by it.
const MinElapsedSeconds = 1.0

// charsPerWord is the standard word length used for WPM.
const charsPerWord = 5.0

// ComputeTypingResult scores typed text against the original passage.
func ComputeTypingResult(original, typed string, elapsedSeconds float64) model.TypingResult {
	origRunes := []rune(original)
	typedRunes := []rune(typed)

	correct := 0
	for i, r := range typedRunes {
		if i < len(origRunes) && r == origRunes[i] {
			correct++
		}
	}
	accuracy := 100.0
	if len(typedRunes) > 0 {
		accuracy = 100 * float64(correct) / float64(len(typedRunes))
	}

	origWords := strings.Fields(original)
	typedWords := strings.Fields(typed)
	inProgress := endsMidWord(typedRunes) && len(typedRunes) < len(origRunes)
	full, half, correctWords := classifyWords(origWords, typedWords, inProgress)
	totalMistakes := float64(full) + float64(half)/2

	minutes := math.Max(elapsedSeconds, MinElapsedSeconds) / 60
	gross := math.Round((float64(len(typedRunes)) / charsPerWord) / minutes)
	net := math.Round(gross - totalMistakes/minutes)
	if net < 0 {
		net = 0
	}

	errPct := 0.0
	if len(origWords) > 0 {
		errPct = 100 * totalMistakes / float64(len(origWords))
	}

	return model.TypingResult{
		GrossWPM:        gross,
		NetWPM:          net,
		Accuracy:        accuracy,
		ErrorPercentage: errPct,
		FullMistakes:    full,
		HalfMistakes:    half,
		TotalMistakes:   totalMistakes,
		Omissions:       max(0, len(origWords)-len(typedWords)),
		Additions:       max(0, len(typedWords)-len(origWords)),
		Spelling:        full,
		Capitalization:  half,
		CorrectChars:    correct,
		TypedChars:      len(typedRunes),
		WordGrossWPM:    math.Round(float64(len(typedWords)) / minutes),
		WordNetWPM:      math.Round(float64(correctWords) / minutes),
		CorrectWords:    correctWords,
		Elapsed:         time.Duration(elapsedSeconds * float64(time.Second)),
	}
}

// classifyWords compares words position by position. A case-only mismatch is a
// half mistake; any other mismatch is a full mistake. When the typed text ends
// mid-word, that last word is compared against the same-length prefix of the
// expected word.
func classifyWords(original, typed []string, inProgress bool) (full, half, correct int) {
	n := min(len(original), len(typed))
	for i := 0; i < n; i++ {
		want, got := original[i], typed[i]
		partial := false
		if inProgress && i == len(typed)-1 {
			wantRunes := []rune(want)
			if gotLen := len([]rune(got)); gotLen < len(wantRunes) {
				want = string(wantRunes[:gotLen])
				partial = true
			}
		}
		switch {
		case want == got:
			if !partial {
				correct++
			}
		case strings.ToLower(want) == strings.ToLower(got):
			half++
		default:
			full++
		}
	}
	return full, half, correct
}

func endsMidWord(typed []rune) bool {
	return len(typed) > 0 && !unicode.IsSpace(typed[len(typed)-1])
}
