package qap

import (
	"fmt"
	"math/rand"
)

// CrossoverFunc recombines two parent solutions into two children whose
// assignments stay permutations of [0, n). Children carry a stale fitness.
type CrossoverFunc func(a, b *Solution, rng *rand.Rand) (*Solution, *Solution, error)

// crossoverSegment draws the cut segment [lo, hi) with hi > lo, the same
// degenerate-segment handling the order crossover has always used.
func crossoverSegment(n int, rng *rand.Rand) (int, int) {
	a := rng.Intn(n)
	b := rng.Intn(n)
	if a > b {
		a, b = b, a
	}
	if a == b {
		b = (a + 1) % n
		if a > b {
			a, b = b, a
		}
	}
	return a, b
}

func checkParents(a, b *Solution) error {
	if a == nil || b == nil {
		return fmt.Errorf("%w: nil parent", ErrInvalidPermutation)
	}
	if a.inst != b.inst {
		return fmt.Errorf("%w: parents belong to different instances", ErrMalformedInstance)
	}
	return nil
}

// checkChildren is the defensive post-condition of every recombination:
// a non-permutation child is an operator bug and fails loudly instead of
// being repaired.
func checkChildren(c1, c2 *Solution) error {
	if err := c1.Validate(); err != nil {
		return fmt.Errorf("crossover produced broken child: %w", err)
	}
	if err := c2.Validate(); err != nil {
		return fmt.Errorf("crossover produced broken child: %w", err)
	}
	return nil
}

// OrderCrossover (OX) copies a random segment from one parent and fills the
// remaining positions with the other parent's genes in circular order
// starting after the segment.
func OrderCrossover(a, b *Solution, rng *rand.Rand) (*Solution, *Solution, error) {
	if err := checkParents(a, b); err != nil {
		return nil, nil, err
	}
	n := a.inst.n
	lo, hi := crossoverSegment(n, rng)

	c1 := NewSolution(a.inst)
	c2 := NewSolution(a.inst)
	oxFill(a.assignment, b.assignment, c1.assignment, lo, hi)
	oxFill(b.assignment, a.assignment, c2.assignment, lo, hi)

	if err := checkChildren(c1, c2); err != nil {
		return nil, nil, err
	}
	return c1, c2, nil
}

func oxFill(p1, p2, child []int, lo, hi int) {
	n := len(p1)
	taken := make([]bool, n)
	for i := range child {
		child[i] = -1
	}
	for i := lo; i < hi; i++ {
		child[i] = p1[i]
		taken[p1[i]] = true
	}
	pos := hi % n
	for i := 0; i < n; i++ {
		gene := p2[(hi+i)%n]
		if taken[gene] {
			continue
		}
		for child[pos] != -1 {
			pos = (pos + 1) % n
		}
		child[pos] = gene
		taken[gene] = true
	}
}

// PartiallyMappedCrossover (PMX) copies a random segment from one parent and
// places the other parent's displaced segment genes through the mapping
// chain the two segments define, then fills the rest positionally.
func PartiallyMappedCrossover(a, b *Solution, rng *rand.Rand) (*Solution, *Solution, error) {
	if err := checkParents(a, b); err != nil {
		return nil, nil, err
	}
	n := a.inst.n
	lo, hi := crossoverSegment(n, rng)

	c1 := NewSolution(a.inst)
	c2 := NewSolution(a.inst)
	pmxFill(a.assignment, b.assignment, c1.assignment, lo, hi)
	pmxFill(b.assignment, a.assignment, c2.assignment, lo, hi)

	if err := checkChildren(c1, c2); err != nil {
		return nil, nil, err
	}
	return c1, c2, nil
}

func pmxFill(p1, p2, child []int, lo, hi int) {
	n := len(p1)
	for i := range child {
		child[i] = -1
	}
	taken := make([]bool, n)
	for i := lo; i < hi; i++ {
		child[i] = p1[i]
		taken[p1[i]] = true
	}

	// pos2[gene] = position of gene in p2, for walking the mapping chain.
	pos2 := make([]int, n)
	for i, v := range p2 {
		pos2[v] = i
	}

	for i := lo; i < hi; i++ {
		gene := p2[i]
		if taken[gene] {
			continue
		}
		// Follow p1[j] → its position in p2 until we leave the segment.
		j := i
		for j >= lo && j < hi {
			j = pos2[p1[j]]
		}
		child[j] = gene
		taken[gene] = true
	}

	for i := 0; i < n; i++ {
		if child[i] == -1 {
			child[i] = p2[i]
		}
	}
}
