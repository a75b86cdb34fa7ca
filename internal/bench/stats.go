package bench

import "gonum.org/v1/gonum/stat"

type IntStats struct {
	N    int
	Best int
	Mean float64
	Std  float64
}

func CalcIntStats(values []int) IntStats {
	s := IntStats{N: len(values)}
	if s.N == 0 {
		return s
	}

	best := values[0]
	xs := make([]float64, s.N)
	for i, v := range values {
		if v < best {
			best = v
		}
		xs[i] = float64(v)
	}

	s.Best = best
	s.Mean = stat.Mean(xs, nil)
	if s.N >= 2 {
		s.Std = stat.StdDev(xs, nil)
	}
	return s
}

type FloatStats struct {
	N    int
	Best float64
	Mean float64
	Std  float64
}

func CalcFloatStats(values []float64) FloatStats {
	s := FloatStats{N: len(values)}
	if s.N == 0 {
		return s
	}

	best := values[0]
	for _, v := range values {
		if v < best {
			best = v
		}
	}

	s.Best = best
	s.Mean = stat.Mean(values, nil)
	if s.N >= 2 {
		s.Std = stat.StdDev(values, nil)
	}
	return s
}
