package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/siherrmann/wsdgraph/core/graph"
	"github.com/siherrmann/wsdgraph/model"
	"github.com/spf13/cobra"
)

func distanceCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "distance <sense-key> <sense-key>",
		Short: "Print the link distance between two senses, -1 if unconnected",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := flags.evalConfig()
			if err != nil {
				return err
			}
			g, err := flags.open(cmd.Context(), *config, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer g.Close()

			d, err := g.Distance(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), d)
			return nil
		},
	}
}

func neighborsCmd(flags *globalFlags) *cobra.Command {
	var hops int
	var idsOnly bool

	cmd := &cobra.Command{
		Use:   "neighbors <synset-id>",
		Short: "List the synsets within a number of links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid synset id %q: %w", args[0], err)
			}

			config, err := flags.evalConfig()
			if err != nil {
				return err
			}
			g, err := flags.open(cmd.Context(), *config, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer g.Close()

			if idsOnly {
				ids, err := g.Neighbors(cmd.Context(), id)
				if err != nil {
					return err
				}
				for _, n := range ids {
					fmt.Fprintln(cmd.OutOrStdout(), n)
				}
				return nil
			}

			results, err := g.Neighborhood(cmd.Context(), id, hops)
			if err != nil {
				return err
			}
			for _, r := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%d\t%s\n", r.Distance, r.SynsetID, formatPath(r))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&hops, "hops", 1, "Maximum number of links from the synset")
	cmd.Flags().BoolVar(&idsOnly, "ids", false, "Only print the ids of directly linked synsets")

	return cmd
}

func formatPath(r *graph.TraversalResult) string {
	parts := make([]string, len(r.Path))
	for i, id := range r.Path {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ">")
}

func linksCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "links <link-type>",
		Short: "List every link of a semantic link type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := flags.evalConfig()
			if err != nil {
				return err
			}
			g, err := flags.open(cmd.Context(), *config, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer g.Close()

			links, err := g.Links(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, l := range links {
				fmt.Fprintln(cmd.OutOrStdout(), l.String())
			}
			return nil
		},
	}
}

func senseCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "sense <synset-id>",
		Short: "Print the sense keys and gloss of a synset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid synset id %q: %w", args[0], err)
			}

			config, err := flags.evalConfig()
			if err != nil {
				return err
			}
			g, err := flags.open(cmd.Context(), *config, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer g.Close()

			sense, err := g.Sense(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\n", sense.ID, sense.POS, sense.String(), sense.Gloss)
			return nil
		},
	}
}

func synsetsCmd(flags *globalFlags) *cobra.Command {
	var pos string

	cmd := &cobra.Command{
		Use:   "synsets [lemma...]",
		Short: "List the synsets of lemmas, or every synset of a part of speech",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (pos == "") == (len(args) == 0) {
				return fmt.Errorf("either lemmas or --pos must be given")
			}

			config, err := flags.evalConfig()
			if err != nil {
				return err
			}
			g, err := flags.open(cmd.Context(), *config, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer g.Close()

			if pos != "" {
				senses, err := g.SynsetsByPOS(cmd.Context(), model.POS(pos))
				if err != nil {
					return err
				}
				for _, s := range senses {
					fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", s.ID, s.String(), s.Gloss)
				}
				return nil
			}

			ids, err := g.Synsets(cmd.Context(), args)
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&pos, "pos", "", "Part of speech (n, v, a, s)")

	return cmd
}
