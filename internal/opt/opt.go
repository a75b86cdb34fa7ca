package opt

import (
	"context"
	"time"

	"qapSearch/internal/qap"
)

type Optimizer interface {
	Solve(ctx context.Context, inst *qap.Instance) (Result, error)
}

type Result struct {
	Assignment  []int
	Fitness     int
	Evaluations int
	Iterations  int
	Duration    time.Duration
	// History holds the best fitness after each generation for solvers that
	// track convergence (nil otherwise).
	History []int
	Meta    map[string]any
}
