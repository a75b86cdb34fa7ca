package qap

import (
	"fmt"
	"math/rand"
)

// Solution is one candidate assignment of facilities to locations:
// assignment[i] is the location of facility i, always a permutation of
// [0, n). The fitness cache is an explicit tagged state — evaluated or
// stale — never a sentinel value; every mutating operation marks it stale
// and readers of a stale cache get ErrStaleFitness.
type Solution struct {
	inst       *Instance
	assignment []int
	fitness    int
	evaluated  bool
}

// NewSolution creates a solution with the identity assignment and an
// unevaluated fitness. The permutation invariant holds from birth.
func NewSolution(inst *Instance) *Solution {
	s := &Solution{inst: inst, assignment: make([]int, inst.n)}
	InitPermutation(s.assignment)
	return s
}

// Instance returns the shared problem instance.
func (s *Solution) Instance() *Instance { return s.inst }

// Initialize replaces the assignment with a uniform random permutation and
// marks the fitness stale.
func (s *Solution) Initialize(rng *rand.Rand) {
	InitPermutation(s.assignment)
	ShufflePermutation(s.assignment, rng)
	s.evaluated = false
}

// EvaluateFitness recomputes the cached fitness from the current assignment
// and returns it. Pure in the instance and assignment; O(n²).
func (s *Solution) EvaluateFitness() int {
	s.fitness = costOf(s.inst, s.assignment)
	s.evaluated = true
	return s.fitness
}

// Fitness returns the cached objective value, or ErrStaleFitness when the
// assignment changed since the last EvaluateFitness.
func (s *Solution) Fitness() (int, error) {
	if !s.evaluated {
		return 0, fmt.Errorf("%w: call EvaluateFitness after mutating", ErrStaleFitness)
	}
	return s.fitness, nil
}

// MustFitness is Fitness for loops that have just evaluated.
func (s *Solution) MustFitness() int {
	f, err := s.Fitness()
	if err != nil {
		panic(err)
	}
	return f
}

// Evaluated reports whether the fitness cache is current.
func (s *Solution) Evaluated() bool { return s.evaluated }

// Mutate swaps the locations at positions pos1 and pos2. Swapping preserves
// the permutation invariant by construction. The cache goes stale even when
// pos1 == pos2.
func (s *Solution) Mutate(pos1, pos2 int) error {
	n := s.inst.n
	if pos1 < 0 || pos1 >= n {
		return fmt.Errorf("%w: pos1=%d, want [0,%d)", ErrIndexOutOfRange, pos1, n)
	}
	if pos2 < 0 || pos2 >= n {
		return fmt.Errorf("%w: pos2=%d, want [0,%d)", ErrIndexOutOfRange, pos2, n)
	}
	s.assignment[pos1], s.assignment[pos2] = s.assignment[pos2], s.assignment[pos1]
	s.evaluated = false
	return nil
}

// MutateRandom swaps two distinct random positions. No-op for n < 2.
func (s *Solution) MutateRandom(rng *rand.Rand) {
	n := s.inst.n
	if n < 2 {
		return
	}
	i := rng.Intn(n)
	j := rng.Intn(n - 1)
	if j >= i {
		j++
	}
	s.assignment[i], s.assignment[j] = s.assignment[j], s.assignment[i]
	s.evaluated = false
}

// Assignment returns the underlying assignment as a borrowed view for hot
// loops. Callers must not modify it; use CopyAssignment to keep a snapshot.
func (s *Solution) Assignment() []int { return s.assignment }

// CopyAssignment returns a copy of the current assignment.
func (s *Solution) CopyAssignment() []int {
	out := make([]int, len(s.assignment))
	copy(out, s.assignment)
	return out
}

// Clone deep-copies the solution including the cache state. The instance
// stays shared.
func (s *Solution) Clone() *Solution {
	c := &Solution{
		inst:       s.inst,
		assignment: make([]int, len(s.assignment)),
		fitness:    s.fitness,
		evaluated:  s.evaluated,
	}
	copy(c.assignment, s.assignment)
	return c
}

// Validate checks the permutation invariant. Unreachable failures here
// indicate an operator bug.
func (s *Solution) Validate() error {
	return ValidatePermutation(s.assignment, s.inst.n)
}
