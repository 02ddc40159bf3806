package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/siherrmann/wsdgraph/core/wsd"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type evalFlags struct {
	scorer      string
	closest     bool
	sampleSize  int
	seed        int64
	workers     int
	maxDistance int
	list        bool
	metrics     bool
}

func evalCmd(flags *globalFlags) *cobra.Command {
	ef := &evalFlags{}

	cmd := &cobra.Command{
		Use:   "eval <testcases-file>",
		Short: "Evaluate a scorer on a test case file and print a YAML summary",
		Long: `Evaluate reads one test case per line:

  context words with the target in the middle,correct sense key,...,POS

and scores every evaluable case. Distance scorers return distances, so the
farthest sense is predicted unless --closest is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scorer, err := wsd.LookupScorer(ef.scorer)
			if err != nil {
				return err
			}
			if ef.closest {
				scorer = wsd.Negate(scorer)
			}

			config, err := flags.evalConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("sample") {
				config.SampleSize = ef.sampleSize
			}
			if cmd.Flags().Changed("seed") {
				config.Seed = ef.seed
			}
			if cmd.Flags().Changed("workers") {
				config.Workers = ef.workers
			}
			if cmd.Flags().Changed("max-distance") {
				config.MaxDistance = ef.maxDistance
			}

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open test cases: %w", err)
			}
			defer file.Close()

			cases, err := wsd.ReadTestCases(file)
			if err != nil {
				return err
			}

			g, err := flags.open(cmd.Context(), *config, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer g.Close()

			tester, err := g.Tester(cmd.Context(), cases)
			if err != nil {
				return err
			}
			if ef.list {
				return tester.PrintCases(cmd.OutOrStdout())
			}

			results, err := tester.Test(cmd.Context(), g.Engine, scorer, wsd.ScorerArgs{MaxDistance: g.Config.MaxDistance})
			if err != nil {
				return err
			}

			name := ef.scorer
			if ef.closest {
				name += " (closest)"
			}
			summary, err := results.Summary(name)
			if err != nil {
				return err
			}

			out, err := yaml.Marshal(summary)
			if err != nil {
				return fmt.Errorf("marshal summary: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			if err != nil {
				return err
			}

			if ef.metrics {
				return printMetrics(cmd.OutOrStdout(), g.Registry)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&ef.scorer, "scorer", "nearest_context", fmt.Sprintf("Scorer, one of %s", strings.Join(wsd.ScorerNames(), ", ")))
	cmd.Flags().BoolVar(&ef.closest, "closest", false, "Predict the closest sense instead of the highest raw score")
	cmd.Flags().IntVar(&ef.sampleSize, "sample", 0, "Random sample size after filtering, 0 keeps all cases")
	cmd.Flags().Int64Var(&ef.seed, "seed", 0, "Sampling seed")
	cmd.Flags().IntVar(&ef.workers, "workers", 1, "Concurrent scoring workers")
	cmd.Flags().IntVar(&ef.maxDistance, "max-distance", 12, "Distance cap of the distance scorers")
	cmd.Flags().BoolVar(&ef.list, "list", false, "Only list the evaluable cases")
	cmd.Flags().BoolVar(&ef.metrics, "metrics", false, "Print engine metrics after the summary")

	return cmd
}

// printMetrics writes counters and histogram sample counts, one per line.
func printMetrics(w io.Writer, registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	var lines []string
	for _, family := range families {
		for _, m := range family.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
			}
			name := family.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}

			switch {
			case m.GetCounter() != nil:
				lines = append(lines, fmt.Sprintf("%s %g", name, m.GetCounter().GetValue()))
			case m.GetHistogram() != nil:
				lines = append(lines, fmt.Sprintf("%s_count %d", name, m.GetHistogram().GetSampleCount()))
			}
		}
	}
	sort.Strings(lines)

	_, err = fmt.Fprintln(w, "# metrics")
	if err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
