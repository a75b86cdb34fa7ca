package bench

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"qapSearch/internal/opt"
	"qapSearch/internal/qap"
)

type Algorithm struct {
	Name    string
	Factory func(seed int64) opt.Optimizer
}

type Case struct {
	Size         int
	InstanceSeed int64

	// Instance overrides random generation when set (e.g. a QAPLIB file).
	Instance *qap.Instance
}

type Record struct {
	Algo string
	Size int
	Runs int

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64

	FitnessBest int
	FitnessMean float64
	FitnessStd  float64
}

type Runner struct {
	Runs          int
	BaseSeed      int64
	PerRunTimeout time.Duration // 0 = no timeout
}

// RunCase executes the algorithm Runs times with distinct seeds and returns
// aggregated stats plus the result of the best run (its History feeds the
// convergence plot).
func (r Runner) RunCase(ctx context.Context, c Case, algo Algorithm) (Record, opt.Result, error) {
	inst := c.Instance
	if inst == nil {
		instRng := randForSeed(c.InstanceSeed)
		inst = qap.RandomInstance(c.Size, 99, 99, instRng)
	}

	fitnesses := make([]int, 0, r.Runs)
	timesMs := make([]float64, 0, r.Runs)
	var bestRes opt.Result
	haveBest := false

	for i := 0; i < r.Runs; i++ {
		runSeed := r.BaseSeed + int64(i)

		op := algo.Factory(runSeed)

		runCtx := ctx
		cancel := func() {}
		if r.PerRunTimeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, r.PerRunTimeout)
		}
		start := time.Now()
		res, err := op.Solve(runCtx, inst)
		dur := time.Since(start)
		cancel()

		if err != nil && runCtx.Err() != nil {
			return Record{}, opt.Result{}, fmt.Errorf("run %d: cancelled/timeout: %w", i, err)
		}
		if err != nil {
			return Record{}, opt.Result{}, fmt.Errorf("run %d: solve error: %w", i, err)
		}
		if err := qap.ValidatePermutation(res.Assignment, inst.Size()); err != nil {
			return Record{}, opt.Result{}, fmt.Errorf("run %d: %w", i, err)
		}

		fitnesses = append(fitnesses, res.Fitness)
		timesMs = append(timesMs, float64(dur.Microseconds())/1000.0)

		if !haveBest || res.Fitness < bestRes.Fitness {
			bestRes = res
			haveBest = true
		}
	}

	fStats := CalcIntStats(fitnesses)
	tStats := CalcFloatStats(timesMs)

	return Record{
		Algo: algo.Name,
		Size: inst.Size(),
		Runs: r.Runs,

		TimeBestMs: tStats.Best,
		TimeMeanMs: tStats.Mean,
		TimeStdMs:  tStats.Std,

		FitnessBest: fStats.Best,
		FitnessMean: fStats.Mean,
		FitnessStd:  fStats.Std,
	}, bestRes, nil
}

func WriteCSV(path string, records []Record) error {
	if d := dirOf(path); d != "" {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"algo", "size", "runs",
		"time_best_ms", "time_mean_ms", "time_std_ms",
		"fitness_best", "fitness_mean", "fitness_std",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.Algo,
			itoa(r.Size),
			itoa(r.Runs),

			ftoa(r.TimeBestMs),
			ftoa(r.TimeMeanMs),
			ftoa(r.TimeStdMs),

			itoa(r.FitnessBest),
			ftoa(r.FitnessMean),
			ftoa(r.FitnessStd),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
