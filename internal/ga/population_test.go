package ga

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qapSearch/internal/qap"
)

func TestPopulationInitAndEvaluate(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	inst := qap.RandomInstance(12, 9, 9, rng)

	pop := NewPopulation(inst, 20)
	assert.Equal(t, 20, pop.Len())

	pop.Init(rng)
	for _, s := range pop.Members() {
		require.NoError(t, s.Validate())
		assert.False(t, s.Evaluated())
	}

	evals := pop.Evaluate(1)
	assert.Equal(t, 20, evals)
	for _, s := range pop.Members() {
		assert.True(t, s.Evaluated())
	}

	// A second pass finds nothing stale.
	assert.Zero(t, pop.Evaluate(1))
}

func TestPopulationEvaluateParallelMatchesSerial(t *testing.T) {
	rng := rand.New(rand.NewSource(19))
	inst := qap.RandomInstance(15, 9, 9, rng)

	serial := NewPopulation(inst, 30)
	serial.Init(rand.New(rand.NewSource(42)))
	parallel := NewPopulation(inst, 30)
	parallel.Init(rand.New(rand.NewSource(42)))

	serial.Evaluate(1)
	parallel.Evaluate(4)

	for i := range serial.Members() {
		assert.Equal(t,
			serial.Members()[i].MustFitness(),
			parallel.Members()[i].MustFitness(),
		)
	}
}

func TestPopulationBest(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	inst := qap.RandomInstance(10, 9, 9, rng)

	pop := NewPopulation(inst, 25)
	pop.Init(rng)
	pop.Evaluate(1)

	best := pop.Best()
	for _, s := range pop.Members() {
		assert.LessOrEqual(t, best.MustFitness(), s.MustFitness())
	}
}
