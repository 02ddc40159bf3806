// Package main provides the wsdgraph binary: link distances between
// WordNet synsets and word sense disambiguation evaluation runs.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/siherrmann/wsdgraph"
	"github.com/siherrmann/wsdgraph/helper"
	"github.com/siherrmann/wsdgraph/model"
	"github.com/spf13/cobra"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "wsdgraph"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	wordnetPath string
	configPath  string
	logLevel    string
	linkType    string
}

func rootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "WordNet link distances and WSD evaluation",
		Long: `wsdgraph computes shortest link distances between WordNet synsets and
evaluates distance based word sense disambiguation scorers.

The lexical database is either a native WordNet sqlite file (--wordnet)
or a Postgres database configured through DB_* environment variables.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flags.wordnetPath, "wordnet", "", "WordNet sqlite file, Postgres is used if empty")
	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Evaluation config file (YAML)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&flags.linkType, "link-type", "", "Semantic link type the engine is bound to")

	cmd.AddCommand(evalCmd(flags))
	cmd.AddCommand(distanceCmd(flags))
	cmd.AddCommand(neighborsCmd(flags))
	cmd.AddCommand(linksCmd(flags))
	cmd.AddCommand(senseCmd(flags))
	cmd.AddCommand(synsetsCmd(flags))

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	}
	return slog.LevelWarn
}

func (f *globalFlags) evalConfig() (*model.EvalConfig, error) {
	config, err := helper.LoadEvalConfig(f.configPath)
	if err != nil {
		return nil, err
	}
	if f.linkType != "" {
		config.LinkType = f.linkType
	}
	return config, nil
}

// open connects to the configured lexical database. Logs go to logOutput.
func (f *globalFlags) open(ctx context.Context, config model.EvalConfig, logOutput io.Writer) (*wsdgraph.WSDGraph, error) {
	opt := wsdgraph.WithLogOutput(logOutput, parseLogLevel(f.logLevel))

	if f.wordnetPath != "" {
		return wsdgraph.OpenWordNet(ctx, f.wordnetPath, config, opt)
	}

	dbConfig, err := helper.NewDatabaseConfiguration()
	if err != nil {
		return nil, err
	}
	return wsdgraph.NewWSDGraph(ctx, dbConfig, config, opt)
}
