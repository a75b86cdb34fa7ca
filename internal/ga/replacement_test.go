package ga

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qapSearch/internal/qap"
)

func evaluatedSolutions(t *testing.T, inst *qap.Instance, count int, seed int64) []*qap.Solution {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	out := make([]*qap.Solution, count)
	for i := range out {
		out[i] = qap.NewSolution(inst)
		out[i].Initialize(rng)
		out[i].EvaluateFitness()
	}
	return out
}

func fitnesses(members []*qap.Solution) []int {
	out := make([]int, len(members))
	for i, s := range members {
		out[i] = s.MustFitness()
	}
	return out
}

func TestGenerationalElitistKeepsElite(t *testing.T) {
	rng := rand.New(rand.NewSource(43))
	inst := qap.RandomInstance(10, 9, 9, rng)

	curr := evaluatedSolutions(t, inst, 10, 1)
	offspring := evaluatedSolutions(t, inst, 8, 2)

	next := GenerationalElitist{Elite: 2}.Replace(curr, offspring)
	require.Len(t, next, 10)

	// The two best current solutions survive unchanged.
	bestIdx := sortByFitness(curr)
	assert.Contains(t, next, curr[bestIdx[0]])
	assert.Contains(t, next, curr[bestIdx[1]])

	// The remaining slots are filled by offspring.
	for _, s := range offspring {
		assert.Contains(t, next, s)
	}
}

func TestGenerationalElitistBackfillsWhenOffspringShort(t *testing.T) {
	rng := rand.New(rand.NewSource(47))
	inst := qap.RandomInstance(8, 9, 9, rng)

	curr := evaluatedSolutions(t, inst, 10, 3)
	offspring := evaluatedSolutions(t, inst, 3, 4)

	next := GenerationalElitist{Elite: 2}.Replace(curr, offspring)
	assert.Len(t, next, 10)
}

func TestSteadyStateKeepsBestOfMergedPool(t *testing.T) {
	rng := rand.New(rand.NewSource(53))
	inst := qap.RandomInstance(10, 9, 9, rng)

	curr := evaluatedSolutions(t, inst, 10, 5)
	offspring := evaluatedSolutions(t, inst, 6, 6)

	next := SteadyState{}.Replace(curr, offspring)
	require.Len(t, next, 10)

	merged := append(fitnesses(curr), fitnesses(offspring)...)
	sort.Ints(merged)

	got := fitnesses(next)
	sort.Ints(got)
	assert.Equal(t, merged[:10], got)
}
