package qap

import "fmt"

// Evaluator computes the QAP objective of raw assignments. Local-search
// solvers that work on bare permutations use it directly; Solution caches
// the same quantity per candidate.
type Evaluator struct {
	inst *Instance
}

func NewEvaluator(inst *Instance) (*Evaluator, error) {
	if inst == nil {
		return nil, fmt.Errorf("%w: instance is nil", ErrMalformedInstance)
	}
	return &Evaluator{inst: inst}, nil
}

// Cost returns Σ_i Σ_j flow(i,j) * distance(assignment[i], assignment[j])
// over all ordered pairs. O(n²).
func (e *Evaluator) Cost(assignment []int) (int, error) {
	if e == nil || e.inst == nil {
		return 0, fmt.Errorf("nil evaluator")
	}
	if err := ValidatePermutation(assignment, e.inst.n); err != nil {
		return 0, err
	}
	return costOf(e.inst, assignment), nil
}

func (e *Evaluator) MustCost(assignment []int) int {
	c, err := e.Cost(assignment)
	if err != nil {
		panic(err)
	}
	return c
}

// costOf is the unchecked inner loop shared by Evaluator and Solution.
// The i=j terms contribute nothing when distance diagonals are zero.
func costOf(inst *Instance, assignment []int) int {
	n := inst.n
	total := 0
	for i := 0; i < n; i++ {
		di := assignment[i] * n
		fi := i * n
		for j := 0; j < n; j++ {
			total += inst.flow[fi+j] * inst.dist[di+assignment[j]]
		}
	}
	return total
}
