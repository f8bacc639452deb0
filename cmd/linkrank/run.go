package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vertex-lab/linkrank/pkg/emitter"
	"github.com/vertex-lab/linkrank/pkg/loader"
	"github.com/vertex-lab/linkrank/pkg/models"
	"github.com/vertex-lab/linkrank/pkg/pagerank"
	"github.com/vertex-lab/linkrank/pkg/utils/logger"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Compute the ranking and write it",
	Long: `Compute the ranking of the graph and write one line per vertex, sorted
by score descending:

	<id>\t<score>[\t<comma-joined out-links>]

If a store is configured, the ranking is also saved there.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringP("output", "o", "", "write the ranking to this file instead of stdout")
	runCmd.Flags().Int("summary", 0, "how many top entries to log")
	_ = viper.BindPFlag("output", runCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("summary", runCmd.Flags().Lookup("summary"))

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	env, err := setup(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	ranked, err := compute(env.ctx, env.log, env.config)
	if err != nil {
		return err
	}

	if err := writeRanking(env.config.Output, ranked); err != nil {
		return err
	}

	if env.config.Store == StoreNone {
		return nil
	}

	store, err := openStore(env.ctx, env.config)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Save(env.ctx, ranked); err != nil {
		return fmt.Errorf("failed to save the ranking: %w", err)
	}

	env.log.Info("Saved %d entries to the %v store", len(ranked), env.config.Store)
	return nil
}

// compute() loads the graph, runs the computation and returns the ranking.
func compute(ctx context.Context, log *logger.Aggregate, config Config) ([]models.Ranked[string], error) {
	if config.Vertices == "" || config.Edges == "" {
		return nil, ErrMissingInput
	}

	start := time.Now()
	graph, stats, err := loader.LoadResources(ctx, config.Vertices, config.Edges)
	if err != nil {
		return nil, err
	}

	log.Info("Loaded %d vertices from %d vertex and %d edge records (%d lines skipped)",
		graph.Size(), stats.VertexRecords, stats.EdgeRecords, stats.Skipped)

	result, err := pagerank.Compute(ctx, log, graph, config.PageRank)
	if err != nil {
		return nil, err
	}

	switch result.State {
	case pagerank.Converged:
		log.Info("Converged after %d iterations in %v", result.Iterations, time.Since(start))
	case pagerank.Exhausted:
		log.Warn("Stopped after %d iterations in %v, average difference %.6f", result.Iterations, time.Since(start), result.AvgDiff)
	}

	ranked := emitter.Rank(graph, result.Scores.Map())
	for i, entry := range emitter.Top(ranked, config.Summary) {
		log.Info("%d. %v (%v): %.6f", i+1, entry.ID, entry.Label, entry.Score)
	}

	return ranked, nil
}

// writeRanking writes the ranking to the file at path, or to stdout if path is empty.
func writeRanking(path string, ranked []models.Ranked[string]) error {
	if path == "" {
		return emitter.Write(os.Stdout, ranked)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := emitter.Write(file, ranked); err != nil {
		file.Close()
		return err
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %v: %w", path, err)
	}
	return nil
}
