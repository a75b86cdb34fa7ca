package aco

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"qapSearch/internal/opt"
	"qapSearch/internal/qap"
)

// Solver - структура реализации муравьиного алгоритма.
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает новый ACO-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
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

// Solve — реализация эвристики.
func (s *Solver) Solve(ctx context.Context, inst *qap.Instance) (opt.Result, error) {
	startTime := time.Now()

	// Валидация входных данных
	if inst == nil {
		return opt.Result{}, fmt.Errorf("%w: instance is nil", qap.ErrMalformedInstance)
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}

	// Оценка целевой функции
	eval, err := qap.NewEvaluator(inst)
	if err != nil {
		return opt.Result{}, err
	}

	n := inst.Size()

	maxIter := s.Cfg.Iterations
	if maxIter <= 0 {
		maxIter = s.Cfg.IterationsPerSize * n
	}

	ants := s.Cfg.Ants
	if ants < 1 {
		ants = 1
	}

	// Потенциалы объектов и площадок: объекты с большим суммарным потоком
	// выгодно ставить на площадки с малой суммарной удалённостью, поэтому
	// эвристика благоприятствует парам с малым произведением потенциалов.
	flowPot := make([]float64, n)
	distPot := make([]float64, n)
	for i := 0; i < n; i++ {
		fs, ds := 0, 0
		for j := 0; j < n; j++ {
			fs += inst.Flow(i, j)
			ds += inst.Distance(i, j)
		}
		flowPot[i] = float64(fs)
		distPot[i] = float64(ds)
	}
	eta := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for p := 0; p < n; p++ {
			eta[i*n+p] = 1.0 / (1.0 + flowPot[i]*distPot[p])
		}
	}

	// Матрица феромонов: tau[i*n+p] — привлекательность назначения
	// объекта i на площадку p
	tau := make([]float64, n*n)
	for i := range tau {
		tau[i] = s.Cfg.Tau0
	}

	// Вспомогательные буферы
	assignment := make([]int, n)  // текущее назначение
	available := make([]int, n)   // свободные площадки
	weights := make([]float64, n) // веса вероятностного выбора

	bestAssignment := make([]int, n)
	bestCost := math.MaxInt
	evals := 0

	alpha := s.Cfg.Alpha
	beta := s.Cfg.Beta
	rho := s.Cfg.Rho
	Q := s.Cfg.Q

	for iter := 0; iter < maxIter; iter++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			return opt.Result{
				Assignment:  bestAssignment,
				Fitness:     bestCost,
				Evaluations: evals,
				Iterations:  iter,
				Duration:    time.Since(startTime),
				Meta: map[string]any{
					"stopped": "context",
				},
			}, err
		}

		// Лучшее решение текущей итерации
		iterBestCost := math.MaxInt
		iterBestAssignment := make([]int, n)

		// Муравьи пошли
		for a := 0; a < ants; a++ {
			constructAssignment(
				n, tau, eta,
				alpha, beta,
				s.Cfg.CandidateK,
				s.Rng,
				assignment, available, weights,
			)

			cost := eval.MustCost(assignment)
			evals++

			// Локальное лучшее за итерацию
			if cost < iterBestCost {
				iterBestCost = cost
				copy(iterBestAssignment, assignment)
			}
			// Глобальное лучшее за всё время
			if cost < bestCost {
				bestCost = cost
				copy(bestAssignment, assignment)
			}
		}

		// Испарение феромона
		ev := 1.0 - rho
		for i := range tau {
			tau[i] *= ev
			if tau[i] < 1e-12 {
				tau[i] = 1e-12
			}
		}

		// Добавление феромона только по лучшему решению итерации
		dep := Q / float64(iterBestCost)
		addPheromone(tau, n, iterBestAssignment, dep)
	}

	return opt.Result{
		Assignment:  bestAssignment,
		Fitness:     bestCost,
		Evaluations: evals,
		Iterations:  maxIter,
		Duration:    time.Since(startTime),
		Meta: map[string]any{
			"ants":        ants,
			"alpha":       alpha,
			"beta":        beta,
			"rho":         rho,
			"Q":           Q,
			"tau0":        s.Cfg.Tau0,
			"candidate_k": s.Cfg.CandidateK,
		},
	}, nil
}

func tauIdx(n, facility, location int) int {
	return facility*n + location
}

// addPheromone усиливает феромон на всех парах объект-площадка решения.
func addPheromone(tau []float64, n int, assignment []int, delta float64) {
	for i, p := range assignment {
		tau[tauIdx(n, i, p)] += delta
	}
}

// constructAssignment строит одно назначение объектов на площадки.
// Объекты рассматриваются по порядку; для каждого свободная площадка
// выбирается вероятностно по формуле ACO.
func constructAssignment(
	n int,
	tau []float64,
	eta []float64,
	alpha float64,
	beta float64,
	candidateK int,
	rng *rand.Rand,
	outAssignment []int,
	available []int,
	weights []float64,
) {
	for i := 0; i < n; i++ {
		available[i] = i
	}
	rem := n

	for facility := 0; facility < n; facility++ {
		// Ограничение списка кандидатов
		k := rem
		if candidateK > 0 && candidateK < rem {
			k = candidateK
			for t := 0; t < k; t++ {
				r := t + rng.Intn(rem-t)
				available[t], available[r] = available[r], available[t]
			}
		}

		// Подсчёт весов вероятностей выбора
		sumW := 0.0
		for i := 0; i < k; i++ {
			p := available[i]
			t := tau[tauIdx(n, facility, p)]

			// Формула ACO
			w := fastPow(t, alpha) * fastPow(eta[tauIdx(n, facility, p)], beta)
			weights[i] = w
			sumW += w
		}

		// Стохастический выбор площадки
		var chosenIdx int
		if sumW <= 0 {
			chosenIdx = rng.Intn(k)
		} else {
			r := rng.Float64() * sumW
			acc := 0.0
			chosenIdx = k - 1
			for i := 0; i < k; i++ {
				acc += weights[i]
				if r <= acc {
					chosenIdx = i
					break
				}
			}
		}

		location := available[chosenIdx]
		outAssignment[facility] = location

		// Удаляем выбранную площадку из списка свободных
		available[chosenIdx], available[rem-1] =
			available[rem-1], available[chosenIdx]
		rem--
	}
}

// fastPow — оптимизация для частых степеней.
// Таким образом избегаем вызова math.Pow в простых случаях.
func fastPow(x, p float64) float64 {
	if p == 0 {
		return 1.0
	}
	if p == 1 {
		return x
	}
	if p == 2 {
		return x * x
	}
	return math.Pow(x, p)
}
