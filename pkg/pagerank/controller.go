package pagerank

import (
	"cmp"
	"context"
	"fmt"

	"github.com/vertex-lab/linkrank/pkg/models"
	"github.com/vertex-lab/linkrank/pkg/utils/logger"
)

// State of the Controller, treated as an enum.
type State int

const (
	Running   State = iota // iterating
	Converged              // the average difference dropped below the threshold
	Exhausted              // max iterations reached without converging
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Converged:
		return "converged"
	case Exhausted:
		return "exhausted"
	}
	return "undefined"
}

// Progress is emitted after every completed iteration.
type Progress struct {
	Iteration int     // 1-based index of the completed iteration
	AvgDiff   float64 // total absolute difference divided by the number of vertices
}

// Result of a computation. Both terminal states are a success.
type Result[ID cmp.Ordered] struct {
	State      State
	Iterations int
	AvgDiff    float64
	Scores     *RankStore[ID]
}

// Controller drives the iterations of an Engine until the scores converge or
// the iteration cap is reached.
type Controller[ID cmp.Ordered] struct {
	engine *Engine[ID]
	config Config
	scores *RankStore[ID]

	state     State
	iteration int
	avgDiff   float64

	// Log receives one INFO line per iteration; it can be nil.
	Log *logger.Aggregate

	// OnProgress, if not nil, is called after every iteration.
	OnProgress func(Progress)
}

// NewController() returns a Controller in the Running state, with every
// vertex of the graph set to the InitialScore.
func NewController[ID cmp.Ordered](graph *models.Graph[ID], config Config) (*Controller[ID], error) {
	engine, err := NewEngine(graph, config)
	if err != nil {
		return nil, err
	}

	scores, err := NewRankStore(graph, InitialScore)
	if err != nil {
		return nil, err
	}

	return &Controller[ID]{
		engine: engine,
		config: config,
		scores: scores,
		state:  Running,
	}, nil
}

// State() returns the current state of the controller.
func (c *Controller[ID]) State() State {
	return c.state
}

// Iterations() returns the number of completed iterations.
func (c *Controller[ID]) Iterations() int {
	return c.iteration
}

// Advance() runs one iteration, if the controller is still Running, and returns the new state.
func (c *Controller[ID]) Advance() (State, error) {
	if c.state != Running {
		return c.state, nil
	}

	totalDiff, err := c.engine.Step(c.scores)
	if err != nil {
		return c.state, err
	}

	c.iteration++
	c.avgDiff = totalDiff / float64(c.scores.Len())

	c.Log.Info("Iteration %d: average difference = %.6f", c.iteration, c.avgDiff)
	if c.OnProgress != nil {
		c.OnProgress(Progress{Iteration: c.iteration, AvgDiff: c.avgDiff})
	}

	switch {
	case c.avgDiff < c.config.ConvergenceThreshold:
		c.state = Converged
		c.Log.Info("Converged at iteration %d", c.iteration)

	case c.iteration >= c.config.MaxIterations:
		c.state = Exhausted
		c.Log.Warn("Max iterations (%d) reached without converging", c.config.MaxIterations)
	}

	return c.state, nil
}

// Run() iterates until a terminal state is reached. The context is checked
// between iterations; if it's cancelled, Run returns the context error.
func (c *Controller[ID]) Run(ctx context.Context) (Result[ID], error) {
	for c.state == Running {
		if err := ctx.Err(); err != nil {
			return c.result(), fmt.Errorf("stopped after %d iterations: %w", c.iteration, err)
		}

		if _, err := c.Advance(); err != nil {
			return c.result(), err
		}
	}

	return c.result(), nil
}

func (c *Controller[ID]) result() Result[ID] {
	return Result[ID]{
		State:      c.state,
		Iterations: c.iteration,
		AvgDiff:    c.avgDiff,
		Scores:     c.scores,
	}
}

// Compute() runs a full computation over the graph with the specified config.
func Compute[ID cmp.Ordered](
	ctx context.Context,
	log *logger.Aggregate,
	graph *models.Graph[ID],
	config Config) (Result[ID], error) {

	controller, err := NewController(graph, config)
	if err != nil {
		return Result[ID]{}, err
	}

	controller.Log = log
	log.Info("Computing ranks of %d vertices (damping factor %v, teleportation %v, threshold %v)",
		graph.Size(), config.DampingFactor, config.Teleportation, config.ConvergenceThreshold)

	return controller.Run(ctx)
}
