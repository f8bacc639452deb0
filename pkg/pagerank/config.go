package pagerank

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	multierror "github.com/hashicorp/go-multierror"
)

const (
	DefaultDampingFactor        float64 = 0.85
	DefaultTeleportation        float64 = 0.15
	DefaultMaxIterations        int     = 100
	DefaultConvergenceThreshold float64 = 0.001

	// the score every vertex starts with. Scores are not normalized.
	InitialScore float64 = 1.0
)

// Config encapsulates the parameters of the rank computation.
type Config struct {
	// DampingFactor is the fraction of a vertex's score propagated along its
	// out-links at each iteration.
	DampingFactor float64 `mapstructure:"damping_factor" toml:"damping_factor"`

	// Teleportation is the flat score added to every vertex at each iteration.
	// It is NOT divided by the number of vertices, and it is independent of the
	// damping factor (the two don't need to sum to one).
	Teleportation float64 `mapstructure:"teleportation" toml:"teleportation"`

	// MaxIterations bounds the number of iterations.
	MaxIterations int `mapstructure:"max_iterations" toml:"max_iterations"`

	// The computation stops once the average per-vertex absolute change drops
	// below ConvergenceThreshold.
	ConvergenceThreshold float64 `mapstructure:"convergence_threshold" toml:"convergence_threshold"`

	// The number of goroutines that share an iteration. 1 means sequential.
	Workers int `mapstructure:"workers" toml:"workers"`
}

// NewConfig() returns a config with default parameters.
func NewConfig() Config {
	return Config{
		DampingFactor:        DefaultDampingFactor,
		Teleportation:        DefaultTeleportation,
		MaxIterations:        DefaultMaxIterations,
		ConvergenceThreshold: DefaultConvergenceThreshold,
		Workers:              runtime.NumCPU(),
	}
}

// Validate() checks every parameter and returns all the problems found.
// NaN and infinite values are rejected.
func (c Config) Validate() error {
	var err error
	if !(c.DampingFactor > 0 && c.DampingFactor < 1) {
		err = multierror.Append(err, fmt.Errorf("%w: got %v", ErrInvalidDamping, c.DampingFactor))
	}

	if !(c.Teleportation >= 0) || math.IsInf(c.Teleportation, 1) {
		err = multierror.Append(err, fmt.Errorf("%w: got %v", ErrInvalidTeleportation, c.Teleportation))
	}

	if c.MaxIterations <= 0 {
		err = multierror.Append(err, fmt.Errorf("%w: got %v", ErrInvalidMaxIterations, c.MaxIterations))
	}

	if !(c.ConvergenceThreshold > 0) || math.IsInf(c.ConvergenceThreshold, 1) {
		err = multierror.Append(err, fmt.Errorf("%w: got %v", ErrInvalidThreshold, c.ConvergenceThreshold))
	}

	if c.Workers <= 0 {
		err = multierror.Append(err, fmt.Errorf("%w: got %v", ErrInvalidWorkers, c.Workers))
	}

	return err
}

//--------------------------ERROR-CODES--------------------------

var ErrInvalidDamping = errors.New("damping factor should be a number between 0 and 1 (excluded)")
var ErrInvalidTeleportation = errors.New("teleportation should be a finite non-negative number")
var ErrInvalidMaxIterations = errors.New("max iterations should be greater than zero")
var ErrInvalidThreshold = errors.New("convergence threshold should be a finite number greater than zero")
var ErrInvalidWorkers = errors.New("workers should be greater than zero")
var ErrNilRankStorePointer = errors.New("nil rank store pointer")
var ErrGraphMismatch = errors.New("rank store was built for a different graph")
