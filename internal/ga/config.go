package ga

import "fmt"

// Selection задаёт стратегию отбора родителей.
type Selection string

const (
	SelectionTournament Selection = "tournament"
	SelectionRoulette   Selection = "roulette"
)

// Crossover задаёт оператор рекомбинации перестановок.
type Crossover string

const (
	CrossoverOX  Crossover = "ox"
	CrossoverPMX Crossover = "pmx"
)

// Replacement задаёт политику формирования следующего поколения.
type Replacement string

const (
	ReplacementGenerational Replacement = "generational"
	ReplacementSteadyState  Replacement = "steady"
)

type Config struct {
	Population     int
	Generations    int
	Elite          int
	TournamentSize int
	CrossoverRate  float64
	MutationRate   float64

	Selection   Selection
	Crossover   Crossover
	Replacement Replacement

	// Workers — число параллельных воркеров при оценке приспособленности;
	// <= 1 означает последовательную оценку.
	Workers int

	// Stagnation — остановка после заданного числа поколений без улучшения
	// лучшего решения; 0 отключает критерий.
	Stagnation int

	// Target — остановка при достижении приспособленности <= Target;
	// отрицательное значение отключает критерий.
	Target int
}

func (c Config) Validate() error {
	if c.Population <= 1 {
		return fmt.Errorf(
			"размер популяции должен быть > 1 (получено %d)",
			c.Population,
		)
	}
	if c.Generations <= 0 {
		return fmt.Errorf(
			"количество поколений должно быть > 0 (получено %d)",
			c.Generations,
		)
	}
	if c.Elite < 0 || c.Elite >= c.Population {
		return fmt.Errorf(
			"число элитных особей должно быть в диапазоне [0, population) (получено %d)",
			c.Elite,
		)
	}
	if c.TournamentSize <= 0 {
		return fmt.Errorf(
			"размер турнира должен быть > 0 (получено %d)",
			c.TournamentSize,
		)
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return fmt.Errorf(
			"вероятность кроссовера должна быть в диапазоне [0,1] (получено %f)",
			c.CrossoverRate,
		)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf(
			"вероятность мутации должна быть в диапазоне [0,1] (получено %f)",
			c.MutationRate,
		)
	}
	switch c.Selection {
	case SelectionTournament, SelectionRoulette:
		// ok
	default:
		return fmt.Errorf(
			"неизвестная стратегия отбора %q",
			c.Selection,
		)
	}
	switch c.Crossover {
	case CrossoverOX, CrossoverPMX:
		// ok
	default:
		return fmt.Errorf(
			"неизвестный оператор кроссовера %q",
			c.Crossover,
		)
	}
	switch c.Replacement {
	case ReplacementGenerational, ReplacementSteadyState:
		// ok
	default:
		return fmt.Errorf(
			"неизвестная политика замещения %q",
			c.Replacement,
		)
	}
	if c.Stagnation < 0 {
		return fmt.Errorf(
			"Stagnation должно быть >= 0 (получено %d)",
			c.Stagnation,
		)
	}
	return nil
}

func DefaultConfig() Config {
	return Config{
		Population:     150,
		Generations:    400,
		Elite:          4,
		TournamentSize: 5,
		CrossoverRate:  0.90,
		MutationRate:   0.15,

		Selection:   SelectionTournament,
		Crossover:   CrossoverOX,
		Replacement: ReplacementGenerational,

		Workers:    1,
		Stagnation: 0,
		Target:     -1,
	}
}
