package qap

import (
	"fmt"
	"math/rand"
)

// ValidatePermutation checks that perm is a permutation of [0, n).
func ValidatePermutation(perm []int, n int) error {
	if len(perm) != n {
		return fmt.Errorf("%w: length must be %d (got %d)", ErrInvalidPermutation, n, len(perm))
	}
	seen := make([]bool, n)
	for i, v := range perm {
		if v < 0 || v >= n {
			return fmt.Errorf("%w: perm[%d]=%d out of range [0,%d)", ErrInvalidPermutation, i, v, n)
		}
		if seen[v] {
			return fmt.Errorf("%w: duplicate value %d", ErrInvalidPermutation, v)
		}
		seen[v] = true
	}
	return nil
}

// InitPermutation fills p with the identity [0, 1, ..., n-1].
func InitPermutation(p []int) {
	for i := range p {
		p[i] = i
	}
}

// ShufflePermutation performs a uniform Fisher–Yates shuffle in place.
func ShufflePermutation(p []int, rng *rand.Rand) {
	for i := len(p) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
}
