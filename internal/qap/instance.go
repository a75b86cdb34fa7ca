package qap

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strconv"
)

// Instance holds one Quadratic Assignment Problem input: an n×n flow matrix
// over facilities and an n×n distance matrix over locations, both stored
// flattened row-major. Immutable after construction and shared read-only by
// every solution of a search run.
type Instance struct {
	n    int
	flow []int
	dist []int
}

// NewInstance validates and wraps the flattened matrices. Both slices must
// have length n*n and non-negative entries.
func NewInstance(n int, flow, dist []int) (*Instance, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: size must be >= 1 (got %d)", ErrMalformedInstance, n)
	}
	if len(flow) != n*n {
		return nil, fmt.Errorf("%w: flow matrix length must be n*n=%d (got %d)", ErrMalformedInstance, n*n, len(flow))
	}
	if len(dist) != n*n {
		return nil, fmt.Errorf("%w: distance matrix length must be n*n=%d (got %d)", ErrMalformedInstance, n*n, len(dist))
	}
	for i, v := range flow {
		if v < 0 {
			return nil, fmt.Errorf("%w: flow[%d][%d] must be >= 0 (got %d)", ErrMalformedInstance, i/n, i%n, v)
		}
	}
	for i, v := range dist {
		if v < 0 {
			return nil, fmt.Errorf("%w: distance[%d][%d] must be >= 0 (got %d)", ErrMalformedInstance, i/n, i%n, v)
		}
	}
	inst := &Instance{n: n, flow: make([]int, n*n), dist: make([]int, n*n)}
	copy(inst.flow, flow)
	copy(inst.dist, dist)
	return inst, nil
}

// Size returns the number of facilities (and locations).
func (inst *Instance) Size() int { return inst.n }

// Flow returns the flow between facilities i and j.
func (inst *Instance) Flow(i, j int) int { return inst.flow[i*inst.n+j] }

// Distance returns the distance between locations p and q.
func (inst *Instance) Distance(p, q int) int { return inst.dist[p*inst.n+q] }

// RandomInstance generates a random instance with flows in [0, maxFlow] and
// distances in [0, maxDist]; diagonals are zero.
func RandomInstance(n, maxFlow, maxDist int, rng *rand.Rand) *Instance {
	if rng == nil {
		panic("генератор случайных чисел не инициализирован (nil)")
	}
	if n < 1 || maxFlow < 0 || maxDist < 0 {
		panic("invalid instance bounds")
	}
	flow := make([]int, n*n)
	dist := make([]int, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			flow[i*n+j] = rng.Intn(maxFlow + 1)
			dist[i*n+j] = rng.Intn(maxDist + 1)
		}
	}
	inst, err := NewInstance(n, flow, dist)
	if err != nil {
		panic(err)
	}
	return inst
}

// ReadInstance parses the QAPLIB text layout: the dimension n followed by
// n*n flow entries and n*n distance entries, whitespace separated.
func ReadInstance(r io.Reader) (*Instance, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	next := func() (int, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return 0, fmt.Errorf("%w: read failed: %v", ErrMalformedInstance, err)
			}
			return 0, fmt.Errorf("%w: unexpected end of input", ErrMalformedInstance)
		}
		v, err := strconv.Atoi(sc.Text())
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not an integer", ErrMalformedInstance, sc.Text())
		}
		return v, nil
	}

	n, err := next()
	if err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: size must be >= 1 (got %d)", ErrMalformedInstance, n)
	}

	flow := make([]int, n*n)
	for i := range flow {
		if flow[i], err = next(); err != nil {
			return nil, err
		}
	}
	dist := make([]int, n*n)
	for i := range dist {
		if dist[i], err = next(); err != nil {
			return nil, err
		}
	}
	return NewInstance(n, flow, dist)
}
