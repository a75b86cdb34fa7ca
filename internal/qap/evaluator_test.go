package qap

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluatorIdentityFormula(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	inst := RandomInstance(10, 9, 9, rng)
	eval, err := NewEvaluator(inst)
	require.NoError(t, err)

	identity := make([]int, 10)
	InitPermutation(identity)

	// For the identity assignment the objective reduces to
	// Σ_i Σ_j flow(i,j) * distance(i,j).
	want := 0
	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j++ {
			want += inst.Flow(i, j) * inst.Distance(i, j)
		}
	}

	got, err := eval.Cost(identity)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestEvaluatorScenario(t *testing.T) {
	inst := testInstance(t)
	eval, err := NewEvaluator(inst)
	require.NoError(t, err)

	assert.Equal(t, 24, eval.MustCost([]int{0, 1, 2}))
}

func TestEvaluatorRejectsBrokenInput(t *testing.T) {
	inst := testInstance(t)
	eval, err := NewEvaluator(inst)
	require.NoError(t, err)

	_, err = eval.Cost([]int{0, 1})
	assert.ErrorIs(t, err, ErrInvalidPermutation)

	_, err = eval.Cost([]int{0, 1, 1})
	assert.ErrorIs(t, err, ErrInvalidPermutation)

	_, err = eval.Cost([]int{0, 1, 3})
	assert.ErrorIs(t, err, ErrInvalidPermutation)
}

func TestNewEvaluatorNilInstance(t *testing.T) {
	_, err := NewEvaluator(nil)
	assert.ErrorIs(t, err, ErrMalformedInstance)
}
