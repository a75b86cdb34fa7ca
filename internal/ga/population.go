package ga

import (
	"math/rand"

	"github.com/sourcegraph/conc/pool"

	"qapSearch/internal/qap"
)

// Population — упорядоченный набор решений, разделяющих один экземпляр
// задачи. Размер фиксируется при создании и сохраняется между поколениями.
type Population struct {
	inst    *qap.Instance
	members []*qap.Solution
}

func NewPopulation(inst *qap.Instance, size int) *Population {
	members := make([]*qap.Solution, size)
	for i := range members {
		members[i] = qap.NewSolution(inst)
	}
	return &Population{inst: inst, members: members}
}

// Init заполняет популяцию случайными перестановками.
func (p *Population) Init(rng *rand.Rand) {
	for _, s := range p.members {
		s.Initialize(rng)
	}
}

func (p *Population) Len() int                 { return len(p.members) }
func (p *Population) Members() []*qap.Solution { return p.members }
func (p *Population) Instance() *qap.Instance  { return p.inst }

// Evaluate пересчитывает приспособленность всех решений с устаревшим кэшем
// и возвращает число выполненных оценок. Оценка — чистое чтение общего
// экземпляра плюс приватное состояние решения, поэтому параллельные воркеры
// не требуют синхронизации; генератор случайных чисел здесь не участвует.
func (p *Population) Evaluate(workers int) int {
	return evaluateAll(p.members, workers)
}

// Best возвращает решение с минимальной приспособленностью.
// Все решения должны быть оценены.
func (p *Population) Best() *qap.Solution {
	best := p.members[0]
	bestFit := best.MustFitness()
	for _, s := range p.members[1:] {
		if f := s.MustFitness(); f < bestFit {
			best = s
			bestFit = f
		}
	}
	return best
}

func evaluateAll(members []*qap.Solution, workers int) int {
	stale := make([]*qap.Solution, 0, len(members))
	for _, s := range members {
		if !s.Evaluated() {
			stale = append(stale, s)
		}
	}
	if len(stale) == 0 {
		return 0
	}

	if workers <= 1 || len(stale) == 1 {
		for _, s := range stale {
			s.EvaluateFitness()
		}
		return len(stale)
	}

	wp := pool.New().WithMaxGoroutines(workers)
	for _, s := range stale {
		s := s
		wp.Go(func() {
			s.EvaluateFitness()
		})
	}
	wp.Wait()
	return len(stale)
}
