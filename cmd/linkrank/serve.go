package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vertex-lab/linkrank/pkg/models"
	"github.com/vertex-lab/linkrank/pkg/server"
	"github.com/vertex-lab/linkrank/pkg/utils/logger"
	"github.com/vertex-lab/linkrank/pkg/watch"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Compute the ranking and serve it over HTTP",
	Long: `Compute the ranking, save it to the configured store (memory if none)
and serve it:

	GET /ranks?limit=N   the first N entries of the ranking
	GET /ranks/:id       the entry of one vertex
	GET /healthz         the number of ranked vertices and served requests

With --watch, the ranking is recomputed every time an input file changes.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("listen", "", "address the server listens on")
	serveCmd.Flags().Bool("watch", false, "recompute when the input files change")
	_ = viper.BindPFlag("listen", serveCmd.Flags().Lookup("listen"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	env, err := setup(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	if env.config.Store == StoreNone {
		env.config.Store = StoreMemory
	}

	store, err := openStore(env.ctx, env.config)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := refresh(env.ctx, env.log, env.config, store); err != nil {
		return err
	}

	srv, err := server.New(store, env.log)
	if err != nil {
		return err
	}

	group, ctx := errgroup.WithContext(env.ctx)
	group.Go(func() error {
		return srv.Run(ctx, env.config.Listen)
	})

	if watchInputs, _ := cmd.Flags().GetBool("watch"); watchInputs {
		watcher, err := watch.NewWatcher([]string{env.config.Vertices, env.config.Edges}, watch.DefaultDebounce)
		if err != nil {
			env.cancel()
			group.Wait()
			return err
		}
		watcher.Log = env.log

		group.Go(func() error {
			return watcher.Run(ctx, func(ctx context.Context) error {
				return refresh(ctx, env.log, env.config, store)
			})
		})
	}

	return group.Wait()
}

// refresh() recomputes the ranking and replaces the one in the store.
func refresh(ctx context.Context, log *logger.Aggregate, config Config, store models.ResultStore) error {
	ranked, err := compute(ctx, log, config)
	if err != nil {
		return err
	}

	if err := store.Save(ctx, ranked); err != nil {
		return fmt.Errorf("failed to save the ranking: %w", err)
	}

	log.Info("Saved %d entries to the %v store", len(ranked), config.Store)
	return nil
}
