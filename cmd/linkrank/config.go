package main

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"slices"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"github.com/vertex-lab/linkrank/pkg/pagerank"
	"github.com/vertex-lab/linkrank/pkg/utils/redisutils"
)

const (
	StoreNone   string = "none"
	StoreMemory string = "memory"
	StoreRedis  string = "redis"
	StoreSQLite string = "sqlite"
)

var stores = []string{StoreNone, StoreMemory, StoreRedis, StoreSQLite}

// Config holds the runtime configuration of linkrank.
// Values are populated from linkrank.toml, LINKRANK_* env vars (a .env file
// included) and CLI flags.
type Config struct {
	// the vertex and edge sources: local paths or http(s) URLs.
	Vertices string `mapstructure:"vertices" toml:"vertices"`
	Edges    string `mapstructure:"edges" toml:"edges"`

	// where the ranking is written. Empty means stdout.
	Output  string `mapstructure:"output" toml:"output"`
	LogFile string `mapstructure:"log_file" toml:"log_file"`

	// how many entries of the ranking are logged at the end of a run.
	Summary int `mapstructure:"summary" toml:"summary"`

	Store      string `mapstructure:"store" toml:"store"`
	RedisAddr  string `mapstructure:"redis_addr" toml:"redis_addr"`
	SQLitePath string `mapstructure:"sqlite_path" toml:"sqlite_path"`
	Listen     string `mapstructure:"listen" toml:"listen"`

	PageRank pagerank.Config `mapstructure:"pagerank" toml:"pagerank"`
}

// setDefaults registers the default value of every key.
func setDefaults() {
	viper.SetDefault("vertices", "")
	viper.SetDefault("edges", "")
	viper.SetDefault("output", "")
	viper.SetDefault("log_file", "")
	viper.SetDefault("summary", 10)
	viper.SetDefault("store", StoreNone)
	viper.SetDefault("redis_addr", redisutils.DefaultAddr)
	viper.SetDefault("sqlite_path", "linkrank.db")
	viper.SetDefault("listen", ":8080")

	viper.SetDefault("pagerank.damping_factor", pagerank.DefaultDampingFactor)
	viper.SetDefault("pagerank.teleportation", pagerank.DefaultTeleportation)
	viper.SetDefault("pagerank.max_iterations", pagerank.DefaultMaxIterations)
	viper.SetDefault("pagerank.convergence_threshold", pagerank.DefaultConvergenceThreshold)
	viper.SetDefault("pagerank.workers", runtime.NumCPU())
}

// LoadConfig() reads the configuration from viper, applying the defaults for
// any value not set by config file, environment or flags, and validates it.
func LoadConfig() (Config, error) {
	setDefaults()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to decode the configuration: %w", err)
	}

	return config, config.Validate()
}

// Validate() returns all the problems of the configuration.
func (c Config) Validate() error {
	var err error
	if pagerankErr := c.PageRank.Validate(); pagerankErr != nil {
		err = multierror.Append(err, pagerankErr)
	}

	if !slices.Contains(stores, c.Store) {
		err = multierror.Append(err, fmt.Errorf("%w: got %q", ErrInvalidStore, c.Store))
	}

	if c.Summary < 0 {
		err = multierror.Append(err, fmt.Errorf("%w: got %v", ErrInvalidSummary, c.Summary))
	}

	return err
}

// Print() writes the configuration as TOML.
func (c Config) Print(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

//--------------------------ERROR-CODES--------------------------

var ErrInvalidStore = errors.New("store should be one of none, memory, redis, sqlite")
var ErrInvalidSummary = errors.New("summary should be non-negative")
var ErrMissingInput = errors.New("both --vertices and --edges are required")
