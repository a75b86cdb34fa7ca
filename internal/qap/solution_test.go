package qap

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testInstance is the 3-facility scenario used throughout: for the identity
// assignment the objective is 5*1+2*2+5*1+3*1+2*2+3*1 = 24.
func testInstance(t *testing.T) *Instance {
	t.Helper()
	inst, err := NewInstance(3,
		[]int{0, 5, 2, 5, 0, 3, 2, 3, 0},
		[]int{0, 1, 2, 1, 0, 1, 2, 1, 0},
	)
	require.NoError(t, err)
	return inst
}

func TestNewSolutionStartsUnevaluated(t *testing.T) {
	s := NewSolution(testInstance(t))

	assert.Equal(t, []int{0, 1, 2}, s.Assignment())
	assert.NoError(t, s.Validate())
	assert.False(t, s.Evaluated())

	_, err := s.Fitness()
	assert.ErrorIs(t, err, ErrStaleFitness)
}

func TestInitializePermutationInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	inst := RandomInstance(30, 9, 9, rng)
	s := NewSolution(inst)

	for trial := 0; trial < 100; trial++ {
		s.Initialize(rng)
		require.NoError(t, s.Validate())
		assert.False(t, s.Evaluated())
		s.EvaluateFitness()
	}
}

func TestEvaluateFitnessIdentityScenario(t *testing.T) {
	s := NewSolution(testInstance(t))

	assert.Equal(t, 24, s.EvaluateFitness())
	assert.True(t, s.Evaluated())

	f, err := s.Fitness()
	require.NoError(t, err)
	assert.Equal(t, 24, f)
}

func TestFitnessDeterminism(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	inst := RandomInstance(15, 9, 9, rng)
	s := NewSolution(inst)
	s.Initialize(rng)

	first := s.EvaluateFitness()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, s.EvaluateFitness())
	}
}

func TestMutateInvalidatesFitness(t *testing.T) {
	inst := testInstance(t)
	s := NewSolution(inst)
	s.EvaluateFitness()

	require.NoError(t, s.Mutate(0, 2))
	assert.Equal(t, []int{2, 1, 0}, s.Assignment())

	// Reading the cache before recomputation is a usage error.
	_, err := s.Fitness()
	assert.ErrorIs(t, err, ErrStaleFitness)

	// Recomputed fitness must match a direct evaluation of the new
	// assignment, not the stale cached value path.
	eval, err := NewEvaluator(inst)
	require.NoError(t, err)
	assert.Equal(t, eval.MustCost([]int{2, 1, 0}), s.EvaluateFitness())
}

func TestMutateSamePositionStillStales(t *testing.T) {
	s := NewSolution(testInstance(t))
	s.EvaluateFitness()

	require.NoError(t, s.Mutate(1, 1))
	_, err := s.Fitness()
	assert.ErrorIs(t, err, ErrStaleFitness)
}

func TestMutateOutOfRange(t *testing.T) {
	s := NewSolution(testInstance(t))

	assert.ErrorIs(t, s.Mutate(-1, 0), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.Mutate(0, 3), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.Mutate(5, -2), ErrIndexOutOfRange)

	// Failed mutations must leave the assignment untouched.
	assert.Equal(t, []int{0, 1, 2}, s.Assignment())
}

func TestMutateIsPureSwap(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	inst := RandomInstance(20, 9, 9, rng)
	s := NewSolution(inst)
	s.Initialize(rng)

	for trial := 0; trial < 50; trial++ {
		before := s.CopyAssignment()
		p1 := rng.Intn(20)
		p2 := rng.Intn(20)
		require.NoError(t, s.Mutate(p1, p2))
		after := s.Assignment()

		// Only p1 and p2 may change, and only by exchanging values.
		for i := range after {
			if i == p1 || i == p2 {
				continue
			}
			assert.Equal(t, before[i], after[i])
		}
		assert.Equal(t, before[p1], after[p2])
		assert.Equal(t, before[p2], after[p1])

		// The multiset of values is unchanged.
		sortedBefore := append([]int(nil), before...)
		sortedAfter := append([]int(nil), after...)
		sort.Ints(sortedBefore)
		sort.Ints(sortedAfter)
		assert.Equal(t, sortedBefore, sortedAfter)
	}
}

func TestMutateRandomKeepsPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	inst := RandomInstance(12, 9, 9, rng)
	s := NewSolution(inst)
	s.Initialize(rng)
	s.EvaluateFitness()

	for trial := 0; trial < 50; trial++ {
		s.MutateRandom(rng)
		require.NoError(t, s.Validate())
		assert.False(t, s.Evaluated())
		s.EvaluateFitness()
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := NewSolution(testInstance(t))
	s.EvaluateFitness()

	c := s.Clone()
	assert.Equal(t, s.Assignment(), c.Assignment())
	assert.Equal(t, s.MustFitness(), c.MustFitness())
	assert.Same(t, s.Instance(), c.Instance())

	require.NoError(t, c.Mutate(0, 1))
	assert.NotEqual(t, s.Assignment(), c.Assignment())
	assert.True(t, s.Evaluated())
}

func TestCopyAssignmentIsSnapshot(t *testing.T) {
	s := NewSolution(testInstance(t))
	snap := s.CopyAssignment()
	require.NoError(t, s.Mutate(0, 2))
	assert.Equal(t, []int{0, 1, 2}, snap)
}

func TestMustFitnessPanicsWhenStale(t *testing.T) {
	s := NewSolution(testInstance(t))
	assert.Panics(t, func() { s.MustFitness() })
}
