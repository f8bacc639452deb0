// linkrank computes an iterative link-based ranking of the vertices of a
// directed graph, read from tab-separated vertex and edge files.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vertex-lab/linkrank/pkg/utils/logger"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// handleSignals cancels the context when SIGINT or SIGTERM is received.
// It returns when either a signal arrives or the context is done.
func handleSignals(ctx context.Context, cancel context.CancelFunc, l *logger.Aggregate) {
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signalChan)

	select {
	case <-signalChan:
		l.Info("Signal received. Shutting down...")
		cancel()
	case <-ctx.Done():
	}
}
