package metrics

import "github.com/verte-zerg/calciprep/internal/model"

// PassThreshold is the pass percentage a quiz must reach.
const PassThreshold = 40.0

// ComputeQuizResult tallies attempts. Skipped and unanswered questions are
// excluded from the pass percentage denominator.
func ComputeQuizResult(attempts []model.QuizAttempt, threshold float64) model.QuizResult {
	res := model.QuizResult{Total: len(attempts)}
	for _, a := range attempts {
		switch a.Status {
		case model.StatusCorrect:
			res.Correct++
		case model.StatusIncorrect:
			res.Incorrect++
		case model.StatusSkipped:
			res.Skipped++
		default:
			res.Unanswered++
		}
	}
	res.Answered = res.Correct + res.Incorrect
	if res.Answered > 0 {
		res.PassPercentage = 100 * float64(res.Correct) / float64(res.Answered)
	}
	res.Passed = res.Answered > 0 && res.PassPercentage >= threshold
	return res
}
