package ga

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"qapSearch/internal/opt"
	"qapSearch/internal/qap"
)

// Solver — реализация генетического алгоритма для квадратичной задачи
// о назначениях.
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает новый GA-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
// Используется в фабриках.
func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	return &Solver{Cfg: cfg, Rng: rng}, nil
}

// selector возвращает стратегию отбора согласно конфигурации.
func (s *Solver) selector() Selector {
	switch s.Cfg.Selection {
	case SelectionRoulette:
		return Roulette{}
	default:
		return Tournament{Size: s.Cfg.TournamentSize}
	}
}

// crossover возвращает оператор рекомбинации согласно конфигурации.
func (s *Solver) crossover() qap.CrossoverFunc {
	switch s.Cfg.Crossover {
	case CrossoverPMX:
		return qap.PartiallyMappedCrossover
	default:
		return qap.OrderCrossover
	}
}

// replacer возвращает политику замещения согласно конфигурации.
func (s *Solver) replacer() Replacer {
	switch s.Cfg.Replacement {
	case ReplacementSteadyState:
		return SteadyState{}
	default:
		return GenerationalElitist{Elite: s.Cfg.Elite}
	}
}

// Solve — реализация эвристики.
func (s *Solver) Solve(ctx context.Context, inst *qap.Instance) (opt.Result, error) {
	start := time.Now()

	// Проверка корректности входных данных и конфигурации
	if inst == nil {
		return opt.Result{}, fmt.Errorf("%w: instance is nil", qap.ErrMalformedInstance)
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}

	selector := s.selector()
	crossover := s.crossover()
	replacer := s.replacer()

	// Инициализация и оценка начальной популяции
	pop := NewPopulation(inst, s.Cfg.Population)
	pop.Init(s.Rng)
	evaluations := pop.Evaluate(s.Cfg.Workers)

	// Глобально лучшее решение за все поколения
	best := pop.Best().Clone()
	bestFitness := best.MustFitness()
	lastImproved := 0

	history := make([]int, 0, s.Cfg.Generations)
	offspringPerGen := s.Cfg.Population - s.Cfg.Elite

	result := func(gens int, meta map[string]any) opt.Result {
		meta["population"] = s.Cfg.Population
		meta["elite"] = s.Cfg.Elite
		meta["selection"] = string(s.Cfg.Selection)
		meta["crossover"] = string(s.Cfg.Crossover)
		meta["replacement"] = string(s.Cfg.Replacement)
		return opt.Result{
			Assignment:  best.CopyAssignment(),
			Fitness:     bestFitness,
			Evaluations: evaluations,
			Iterations:  gens,
			Duration:    time.Since(start),
			History:     history,
			Meta:        meta,
		}
	}

	for gen := 0; gen < s.Cfg.Generations; gen++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			return result(gen, map[string]any{"stopped": "context"}), err
		}

		// Критерий достижения целевой приспособленности
		if s.Cfg.Target >= 0 && bestFitness <= s.Cfg.Target {
			return result(gen, map[string]any{"stopped": "target"}), nil
		}

		// Критерий стагнации лучшего решения
		if s.Cfg.Stagnation > 0 && gen-lastImproved >= s.Cfg.Stagnation {
			return result(gen, map[string]any{"stopped": "stagnation"}), nil
		}

		// Генерация потомков
		offspring := make([]*qap.Solution, 0, offspringPerGen)
		members := pop.Members()
		for len(offspring) < offspringPerGen {
			// Отбор родителей
			p1 := selector.Pick(members, s.Rng)
			p2 := selector.Pick(members, s.Rng)
			if pop.Len() > 1 {
				for p2 == p1 {
					p2 = selector.Pick(members, s.Rng)
				}
			}

			var c1, c2 *qap.Solution

			// Кроссовер
			if s.Rng.Float64() < s.Cfg.CrossoverRate {
				var err error
				c1, c2, err = crossover(members[p1], members[p2], s.Rng)
				if err != nil {
					// Нарушение инварианта перестановки — дефект
					// оператора, поиск прерывается немедленно.
					return opt.Result{}, err
				}
			} else {
				c1 = members[p1].Clone()
				c2 = members[p2].Clone()
			}

			// Мутация
			if s.Rng.Float64() < s.Cfg.MutationRate {
				c1.MutateRandom(s.Rng)
			}
			if s.Rng.Float64() < s.Cfg.MutationRate {
				c2.MutateRandom(s.Rng)
			}

			offspring = append(offspring, c1)
			if len(offspring) < offspringPerGen {
				offspring = append(offspring, c2)
			}
		}

		// Оценка потомков
		evaluations += evaluateAll(offspring, s.Cfg.Workers)

		// Смена поколений
		pop.members = replacer.Replace(pop.members, offspring)

		// Обновление глобально лучшего решения
		if genBest := pop.Best(); genBest.MustFitness() < bestFitness {
			best = genBest.Clone()
			bestFitness = best.MustFitness()
			lastImproved = gen
		}
		history = append(history, bestFitness)
	}

	return result(s.Cfg.Generations, map[string]any{"generations": s.Cfg.Generations}), nil
}
