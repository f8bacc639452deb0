package main

import (
	"context"
	"io"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vertex-lab/linkrank/pkg/utils/logger"
)

var rootCmd = &cobra.Command{
	Use:   "linkrank",
	Short: "Iterative link-based ranking of a directed graph",
	Long: `linkrank loads a directed graph from tab-separated vertex and edge records,
assigns every vertex an importance score and refines the scores until they
converge or the iteration cap is reached.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default linkrank.toml)")
	flags.String("vertices", "", "vertex records: a path or an http(s) URL")
	flags.String("edges", "", "edge records: a path or an http(s) URL")
	flags.String("log-file", "", "append the logs to this file instead of stderr")
	flags.String("store", "", "where to persist the ranking: none, memory, redis, sqlite")
	flags.String("redis-addr", "", "address of the Redis server")
	flags.String("sqlite-path", "", "path of the SQLite database")
	flags.Float64("damping-factor", 0, "fraction of a score propagated along the out-links")
	flags.Float64("teleportation", 0, "flat score added to every vertex at each iteration")
	flags.Int("max-iterations", 0, "maximum number of iterations")
	flags.Float64("convergence-threshold", 0, "stop when the average change drops below this value")
	flags.Int("workers", 0, "goroutines sharing each iteration")

	bind := map[string]string{
		"vertices":                       "vertices",
		"edges":                          "edges",
		"log_file":                       "log-file",
		"store":                          "store",
		"redis_addr":                     "redis-addr",
		"sqlite_path":                    "sqlite-path",
		"pagerank.damping_factor":        "damping-factor",
		"pagerank.teleportation":         "teleportation",
		"pagerank.max_iterations":        "max-iterations",
		"pagerank.convergence_threshold": "convergence-threshold",
		"pagerank.workers":               "workers",
	}

	for key, flag := range bind {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("linkrank")
		viper.SetConfigType("toml")
		viper.AddConfigPath(".")
	}

	// variables in .env don't override the ones already set
	_ = godotenv.Load()

	viper.SetEnvPrefix("LINKRANK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// environment is what every command needs to start.
type environment struct {
	config  Config
	log     *logger.Aggregate
	logFile io.Closer
	ctx     context.Context
	cancel  context.CancelFunc
}

// setup() loads the configuration, opens the logger and returns a context
// that is cancelled on SIGINT or SIGTERM.
func setup(cmd *cobra.Command) (*environment, error) {
	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	log, logFile, err := logger.Init(config.LogFile)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	go handleSignals(ctx, cancel, log)

	return &environment{
		config:  config,
		log:     log,
		logFile: logFile,
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

func (e *environment) close() {
	e.cancel()
	e.logFile.Close()
}
