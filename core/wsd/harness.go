package wsd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"slices"
	"strings"

	"github.com/siherrmann/wsdgraph/helper"
	"github.com/siherrmann/wsdgraph/model"
	"golang.org/x/sync/errgroup"
)

// ErrInvariant is returned when an evaluation would have to skip or misalign a case.
var ErrInvariant = errors.New("evaluation invariant violated")

// OptionStore lists the candidate sense keys of a word.
type OptionStore interface {
	SenseKeys(ctx context.Context, lemma string) ([]string, error)
}

// Graph is what scorers may ask of the distance engine.
type Graph interface {
	ResolveSenses(ctx context.Context, lemma string) (model.Set[int64], error)
	SenseKeyToID(ctx context.Context, senseKey string) (int64, error)
	Distance(ctx context.Context, src int64, dst int64) (int, error)
	MinDistanceToSet(ctx context.Context, src int64, dsts model.Set[int64], maxDist int) (int, error)
	Distances(ctx context.Context, src int64, dsts model.Set[int64], maxDist int) (map[int64]int, error)
}

// ScoreFunc scores every option of a case. The returned scores are
// positionally aligned with options; the highest score is the prediction.
type ScoreFunc func(ctx context.Context, contextWords []string, target string, options []string, g Graph, args any) ([]float64, error)

// Tester holds the evaluable test cases.
type Tester struct {
	cases   []*model.TestCase
	workers int
	logger  *slog.Logger
}

// TesterOption configures a Tester.
type TesterOption func(*Tester)

// WithTesterLogger sets the tester logger.
func WithTesterLogger(logger *slog.Logger) TesterOption {
	return func(t *Tester) {
		t.logger = logger
	}
}

// NewTester resolves the options of every case and keeps the evaluable ones.
// Options are the target's sense keys matching the case's sense filter. Cases
// whose options miss every correct key, or offer no distractor, are dropped.
// With config.SampleSize > 0 a seeded random subsample is kept in input order.
func NewTester(ctx context.Context, store OptionStore, cases []*model.TestCase, config model.EvalConfig, opts ...TesterOption) (*Tester, error) {
	if store == nil {
		return nil, helper.NewError("tester validation", fmt.Errorf("store is nil"))
	}

	t := &Tester{
		workers: max(config.Workers, 1),
		logger:  helper.NewLogger(os.Stdout, slog.LevelInfo),
	}
	for _, opt := range opts {
		opt(t)
	}

	kept := make([]*model.TestCase, 0, len(cases))
	for _, c := range cases {
		keys, err := store.SenseKeys(ctx, c.Target)
		if err != nil {
			return nil, helper.NewError("sense keys", err)
		}

		testCase := *c
		testCase.Options = make([]string, 0, len(keys))
		for _, key := range keys {
			if testCase.MatchesFilter(key) {
				testCase.Options = append(testCase.Options, key)
			}
		}

		if !testCase.Evaluable() {
			t.logger.Debug("Excluded test case", slog.String("target", c.Target), slog.Int("options", len(testCase.Options)))
			continue
		}
		kept = append(kept, &testCase)
	}

	if config.SampleSize > 0 && config.SampleSize < len(kept) {
		rng := rand.New(rand.NewSource(config.Seed))
		indices := rng.Perm(len(kept))[:config.SampleSize]
		slices.Sort(indices)

		sample := make([]*model.TestCase, 0, config.SampleSize)
		for _, i := range indices {
			sample = append(sample, kept[i])
		}
		kept = sample
	}

	t.cases = kept
	t.logger.Info("Initialized Tester", slog.Int("input_cases", len(cases)), slog.Int("cases", len(kept)))

	return t, nil
}

// Cases returns the retained test cases.
func (t *Tester) Cases() []*model.TestCase {
	return t.cases
}

// PrintCases writes one line per retained case: target, correct keys and options.
func (t *Tester) PrintCases(w io.Writer) error {
	for _, c := range t.cases {
		_, err := fmt.Fprintf(w, "%s: %s FROM %s\n", c.Target, strings.Join(c.Correct, ", "), strings.Join(c.Options, ", "))
		if err != nil {
			return helper.NewError("print cases", err)
		}
	}
	return nil
}

// Test scores every retained case with scorer. Cases are scored concurrently
// by up to the configured number of workers; results keep the case order.
// Any scorer error aborts the run.
func (t *Tester) Test(ctx context.Context, g Graph, scorer ScoreFunc, args any) (*Results, error) {
	if len(t.cases) == 0 {
		return nil, helper.NewError("test", fmt.Errorf("%w: no evaluable test cases", ErrInvariant))
	}

	results := make([]*model.CaseResult, len(t.cases))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(t.workers)

	for i, c := range t.cases {
		eg.Go(func() error {
			scores, err := scorer(egCtx, c.Context, c.Target, c.Options, g, args)
			if err != nil {
				return helper.NewError(fmt.Sprintf("score %s", c.Target), err)
			}
			if len(scores) != len(c.Options) {
				return helper.NewError("test", fmt.Errorf("%w: %d scores for %d options of %s", ErrInvariant, len(scores), len(c.Options), c.Target))
			}

			prediction := Predict(scores, c.Options)
			results[i] = &model.CaseResult{
				Case:       c,
				Scores:     scores,
				Prediction: prediction,
				IsCorrect:  slices.Contains(c.Correct, prediction),
			}
			return nil
		})
	}

	err := eg.Wait()
	if err != nil {
		return nil, err
	}

	r := &Results{Cases: results}
	t.logger.Info("Evaluated test cases", slog.Int("cases", len(results)), slog.Float64("accuracy", r.Accuracy()))

	return r, nil
}
