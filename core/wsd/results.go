package wsd

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/siherrmann/wsdgraph/helper"
	"github.com/siherrmann/wsdgraph/model"
)

// Predict returns the option with the highest score.
// Among equal scores the lexicographically greatest option wins.
func Predict(scores []float64, options []string) string {
	best := -1
	for i := range options {
		if i >= len(scores) {
			break
		}
		if best < 0 || scores[i] > scores[best] || (scores[i] == scores[best] && options[i] > options[best]) {
			best = i
		}
	}
	if best < 0 {
		return ""
	}
	return options[best]
}

// Results holds the per case outcomes of a run in case order.
type Results struct {
	Cases []*model.CaseResult
}

// Accuracy is the fraction of cases whose prediction is a correct key.
func (r *Results) Accuracy() float64 {
	if len(r.Cases) == 0 {
		return 0
	}
	return float64(r.CorrectCases()) / float64(len(r.Cases))
}

// CorrectCases counts the correctly predicted cases.
func (r *Results) CorrectCases() int {
	n := 0
	for _, c := range r.Cases {
		if c.IsCorrect {
			n++
		}
	}
	return n
}

// Predictions returns the predicted option of every case.
func (r *Results) Predictions() []string {
	predictions := make([]string, len(r.Cases))
	for i, c := range r.Cases {
		predictions[i] = c.Prediction
	}
	return predictions
}

// split separates the scores of correct and incorrect options.
func split(result *model.CaseResult) ([]float64, []float64, error) {
	correct := result.Case.CorrectSet()

	var good, bad []float64
	for i, option := range result.Case.Options {
		if correct.Has(option) {
			good = append(good, result.Scores[i])
		} else {
			bad = append(bad, result.Scores[i])
		}
	}

	if len(good) == 0 || len(bad) == 0 {
		return nil, nil, fmt.Errorf("%w: case %s needs correct and incorrect options", ErrInvariant, result.Case.Target)
	}
	return good, bad, nil
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// GapInAverages returns, per case, the mean incorrect score minus the mean correct score.
func (r *Results) GapInAverages() ([]float64, error) {
	gaps := make([]float64, len(r.Cases))
	for i, c := range r.Cases {
		good, bad, err := split(c)
		if err != nil {
			return nil, helper.NewError("gap in averages", err)
		}
		gaps[i] = mean(bad) - mean(good)
	}
	return gaps, nil
}

// GapInMinimums returns, per case, the minimum incorrect score minus the minimum correct score.
func (r *Results) GapInMinimums() ([]float64, error) {
	gaps := make([]float64, len(r.Cases))
	for i, c := range r.Cases {
		good, bad, err := split(c)
		if err != nil {
			return nil, helper.NewError("gap in minimums", err)
		}
		gaps[i] = slices.Min(bad) - slices.Min(good)
	}
	return gaps, nil
}

// Summary aggregates the run under a fresh run id.
func (r *Results) Summary(scorer string) (*model.Summary, error) {
	avgs, err := r.GapInAverages()
	if err != nil {
		return nil, err
	}
	mins, err := r.GapInMinimums()
	if err != nil {
		return nil, err
	}

	summary := &model.Summary{
		RunID:        uuid.New().String(),
		Scorer:       scorer,
		Cases:        len(r.Cases),
		CorrectCases: r.CorrectCases(),
		Accuracy:     r.Accuracy(),
	}
	if len(r.Cases) > 0 {
		summary.MeanGapInAvgs = mean(avgs)
		summary.MeanGapInMins = mean(mins)
	}

	return summary, nil
}
