package sa_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qapSearch/internal/opt"
	"qapSearch/internal/qap"
	"qapSearch/internal/sa"
)

var _ opt.Optimizer = (*sa.Solver)(nil)

func smallConfig() sa.Config {
	cfg := sa.DefaultConfig()
	cfg.Iterations = 500
	cfg.InitialTemp = 100.0
	cfg.FinalTemp = 0.1
	cfg.Alpha = 0.99
	return cfg
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, sa.DefaultConfig().Validate())

	bad := sa.DefaultConfig()
	bad.InitialTemp = 0
	assert.Error(t, bad.Validate())

	bad = sa.DefaultConfig()
	bad.FinalTemp = bad.InitialTemp + 1
	assert.Error(t, bad.Validate())

	bad = sa.DefaultConfig()
	bad.Alpha = 1.0
	assert.Error(t, bad.Validate())

	bad = sa.DefaultConfig()
	bad.Neighborhood = "scramble"
	assert.Error(t, bad.Validate())
}

func TestSolveReturnsValidAssignment(t *testing.T) {
	inst := qap.RandomInstance(12, 9, 9, rand.New(rand.NewSource(1)))

	for _, neigh := range []sa.Neighborhood{sa.NeighborhoodSwap, sa.NeighborhoodInsert} {
		cfg := smallConfig()
		cfg.Neighborhood = neigh

		solver, err := sa.New(cfg, rand.New(rand.NewSource(2)))
		require.NoError(t, err)

		res, err := solver.Solve(context.Background(), inst)
		require.NoError(t, err)

		require.NoError(t, qap.ValidatePermutation(res.Assignment, 12))
		eval, err := qap.NewEvaluator(inst)
		require.NoError(t, err)
		assert.Equal(t, eval.MustCost(res.Assignment), res.Fitness)
	}
}

func TestSolveDeterministicForSeed(t *testing.T) {
	inst := qap.RandomInstance(10, 9, 9, rand.New(rand.NewSource(3)))

	run := func() opt.Result {
		solver, err := sa.New(smallConfig(), rand.New(rand.NewSource(4)))
		require.NoError(t, err)
		res, err := solver.Solve(context.Background(), inst)
		require.NoError(t, err)
		return res
	}

	a := run()
	b := run()
	assert.Equal(t, a.Fitness, b.Fitness)
	assert.Equal(t, a.Assignment, b.Assignment)
}

func TestSolveContextCancellation(t *testing.T) {
	inst := qap.RandomInstance(10, 9, 9, rand.New(rand.NewSource(5)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	solver, err := sa.New(smallConfig(), rand.New(rand.NewSource(6)))
	require.NoError(t, err)

	res, err := solver.Solve(ctx, inst)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "context", res.Meta["stopped"])
}

func TestNewRequiresRng(t *testing.T) {
	_, err := sa.New(sa.DefaultConfig(), nil)
	assert.Error(t, err)
}
