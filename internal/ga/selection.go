package ga

import (
	"math/rand"

	"qapSearch/internal/qap"
)

// Selector выбирает индекс родителя в оценённой популяции. Отбор читает
// приспособленность и никогда её не изменяет.
type Selector interface {
	Pick(members []*qap.Solution, rng *rand.Rand) int
}

// Tournament реализует турнирный отбор: из Size случайных решений
// возвращается индекс решения с минимальной приспособленностью.
type Tournament struct {
	Size int
}

func (t Tournament) Pick(members []*qap.Solution, rng *rand.Rand) int {
	best := rng.Intn(len(members))
	bestFit := members[best].MustFitness()
	for i := 1; i < t.Size; i++ {
		cand := rng.Intn(len(members))
		if f := members[cand].MustFitness(); f < bestFit {
			best = cand
			bestFit = f
		}
	}
	return best
}

// Roulette реализует пропорциональный отбор для задачи минимизации:
// вес решения равен (worst - fitness + 1), чтобы лучшее решение получало
// наибольшую долю рулетки, а худшее — ненулевую.
type Roulette struct{}

func (Roulette) Pick(members []*qap.Solution, rng *rand.Rand) int {
	worst := members[0].MustFitness()
	for _, s := range members[1:] {
		if f := s.MustFitness(); f > worst {
			worst = f
		}
	}

	total := 0
	for _, s := range members {
		total += worst - s.MustFitness() + 1
	}

	r := rng.Intn(total)
	acc := 0
	for i, s := range members {
		acc += worst - s.MustFitness() + 1
		if r < acc {
			return i
		}
	}
	return len(members) - 1
}
