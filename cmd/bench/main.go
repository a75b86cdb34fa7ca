package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"qapSearch/internal/aco"
	"qapSearch/internal/bench"
	"qapSearch/internal/ga"
	"qapSearch/internal/opt"
	"qapSearch/internal/pso"
	"qapSearch/internal/qap"
	"qapSearch/internal/sa"
	"qapSearch/internal/ts"
)

// Фабрики

func newGAFactory(cfg ga.Config) func(seed int64) opt.Optimizer {
	return func(seed int64) opt.Optimizer {
		solver, _ := ga.New(cfg, rand.New(rand.NewSource(seed)))
		return solver
	}
}

func newSAFactory(cfg sa.Config) func(seed int64) opt.Optimizer {
	return func(seed int64) opt.Optimizer {
		solver, _ := sa.New(cfg, rand.New(rand.NewSource(seed)))
		return solver
	}
}

func newTSFactory(cfg ts.Config) func(seed int64) opt.Optimizer {
	return func(seed int64) opt.Optimizer {
		solver, _ := ts.New(cfg, rand.New(rand.NewSource(seed)))
		return solver
	}
}

func newACOFactory(cfg aco.Config) func(seed int64) opt.Optimizer {
	return func(seed int64) opt.Optimizer {
		solver, _ := aco.New(cfg, rand.New(rand.NewSource(seed)))
		return solver
	}
}

func newPSOFactory(cfg pso.Config) func(seed int64) opt.Optimizer {
	return func(seed int64) opt.Optimizer {
		solver, _ := pso.New(cfg, rand.New(rand.NewSource(seed)))
		return solver
	}
}

func main() {
	// CLI флаги для настройки параметров алгоритмов и политики запуска
	var (
		out          = flag.String("out", "artifacts/results.csv", "путь к выходному CSV-файлу")
		sizes        = flag.String("sizes", "12,20,30", "размеры случайных экземпляров задачи (через запятую)")
		instancePath = flag.String("instance", "", "путь к файлу экземпляра в формате QAPLIB (заменяет -sizes)")
		algos        = flag.String("algos", "GA,SA,TS,ACO,PSO", "список алгоритмов: GA, SA, TS, ACO, PSO (через запятую)")
		runs         = flag.Int("runs", 30, "количество запусков каждого алгоритма (с разными сидами)")
		baseSeed     = flag.Int64("seed", 1000, "базовый сид для запусков алгоритмов")
		instanceSeed = flag.Int64("instance_seed", 777, "базовый сид для генерации экземпляров задачи (фиксирован для размера)")
		perRunTO     = flag.Duration("per_run_timeout", 0, "таймаут одного запуска; 0 — без ограничения")
		plotDir      = flag.String("plot_dir", "", "каталог для графиков сходимости; пусто — без графиков")

		// --- Генетический алгоритм ---
		gaPop     = flag.Int("ga_pop", 150, "размер популяции")
		gaGen     = flag.Int("ga_gen", 400, "количество поколений")
		gaElite   = flag.Int("ga_elite", 4, "размер элиты (количество лучших особей)")
		gaTour    = flag.Int("ga_tour", 5, "размер турнирной выборки")
		gaCx      = flag.Float64("ga_cx", 0.90, "вероятность применения кроссовера")
		gaMut     = flag.Float64("ga_mut", 0.15, "вероятность мутации")
		gaSel     = flag.String("ga_sel", "tournament", "стратегия отбора: tournament | roulette")
		gaXover   = flag.String("ga_xover", "ox", "оператор кроссовера: ox | pmx")
		gaRepl    = flag.String("ga_repl", "generational", "политика замещения: generational | steady")
		gaWorkers = flag.Int("ga_workers", 1, "число воркеров при оценке приспособленности")
		gaStagn   = flag.Int("ga_stagnation", 0, "остановка после N поколений без улучшения (0 — отключено)")
		gaTarget  = flag.Int("ga_target", -1, "остановка при достижении приспособленности <= target (<0 — отключено)")

		// --- Алгоритм имитации отжига ---
		saIterPerSize = flag.Int("sa_iter_per_size", 2500, "количество итераций на единицу размера (используется, если sa_iter == 0)")
		saIter        = flag.Int("sa_iter", 0, "общее количество итераций (0 => sa_iter_per_size × n)")
		saT0          = flag.Float64("sa_t0", 2000.0, "начальная температура")
		saTmin        = flag.Float64("sa_tmin", 0.5, "конечная температура")
		saAlpha       = flag.Float64("sa_alpha", 0.995, "коэффициент охлаждения (alpha)")
		saNeigh       = flag.String("sa_neigh", "swap", "тип окрестности: swap | insert")

		// --- Табу-поиск ---
		tsIterPerSize = flag.Int("ts_iter_per_size", 250, "количество итераций на единицу размера (используется, если ts_iter == 0)")
		tsIter        = flag.Int("ts_iter", 0, "общее количество итераций (0 => ts_iter_per_size × n)")
		tsTenure      = flag.Int("ts_tenure", 7, "длина табу-списка (в итерациях)")
		tsTenureRand  = flag.Int("ts_tenure_rand", 3, "случайное добавление к сроку табу [0..rand]")
		tsNeighbors   = flag.Int("ts_neighbors", 90, "количество рассматриваемых соседей на итерацию")
		tsNeigh       = flag.String("ts_neigh", "swap", "тип окрестности: swap | insert")

		// --- Муравьиный алгоритм ---
		acoIterPerSize = flag.Int("aco_iter_per_size", 120, "количество итераций на единицу размера (используется, если aco_iter == 0)")
		acoIter        = flag.Int("aco_iter", 0, "общее количество итераций (0 => aco_iter_per_size × n)")
		acoAnts        = flag.Int("aco_ants", 35, "количество муравьёв")
		acoA           = flag.Float64("aco_alpha", 1.0, "коэффициент alpha (влияние феромонов)")
		acoB           = flag.Float64("aco_beta", 2.0, "коэффициент beta (влияние эвристики)")
		acoRho         = flag.Float64("aco_rho", 0.20, "коэффициент rho (испарения феромонов)")
		acoQ           = flag.Float64("aco_q", 1000.0, "константа отложения феромонов")
		acoTau0        = flag.Float64("aco_tau0", 1.0, "начальный уровень феромонов")
		acoCandK       = flag.Int("aco_k", 0, "размер списка кандидатов (0 — все свободные площадки)")

		// --- Рой частиц ---
		psoIterPerSize = flag.Int("pso_iter_per_size", 180, "количество итераций на единицу размера (используется, если pso_iter == 0)")
		psoIter        = flag.Int("pso_iter", 0, "общее количество итераций (0 => pso_iter_per_size × n)")
		psoParticles   = flag.Int("pso_particles", 60, "количество частиц")
		psoW           = flag.Float64("pso_w", 0.729, "коэффициент W (инерция)")
		psoC1          = flag.Float64("pso_c1", 1.49445, "коэффициент C1 (когнитивный)")
		psoC2          = flag.Float64("pso_c2", 1.49445, "коэффициент C2 (социальный)")
		psoVMax        = flag.Float64("pso_vmax", 0.25, "ограничение скорости частицы (<=0 — без ограничения)")
		psoPosMin      = flag.Float64("pso_pos_min", 0.0, "минимальное значение позиции частицы")
		psoPosMax      = flag.Float64("pso_pos_max", 1.0, "максимальное значение позиции частицы")
	)
	flag.Parse()

	ctx := context.Background()

	var cases []bench.Case
	if *instancePath != "" {
		f, err := os.Open(*instancePath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Ошибка открытия файла экземпляра:", err)
			os.Exit(2)
		}
		inst, err := qap.ReadInstance(f)
		f.Close()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Ошибка чтения экземпляра:", err)
			os.Exit(2)
		}
		cases = []bench.Case{{Size: inst.Size(), Instance: inst}}
	} else {
		var err error
		cases, err = parseSizes(*sizes, *instanceSeed)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Конфликт:", err)
			os.Exit(2)
		}
	}

	gaCfg := ga.Config{
		Population:     *gaPop,
		Generations:    *gaGen,
		Elite:          *gaElite,
		TournamentSize: *gaTour,
		CrossoverRate:  *gaCx,
		MutationRate:   *gaMut,
		Selection:      ga.Selection(*gaSel),
		Crossover:      ga.Crossover(*gaXover),
		Replacement:    ga.Replacement(*gaRepl),
		Workers:        *gaWorkers,
		Stagnation:     *gaStagn,
		Target:         *gaTarget,
	}
	if err := gaCfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации генетического алгоритма:", err)
		os.Exit(2)
	}

	saCfg := sa.Config{
		Iterations:        *saIter,
		IterationsPerSize: *saIterPerSize,
		InitialTemp:       *saT0,
		FinalTemp:         *saTmin,
		Alpha:             *saAlpha,
		Neighborhood:      sa.Neighborhood(*saNeigh),
	}
	if err := saCfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации алгоритма имитации отжига:", err)
		os.Exit(2)
	}

	tsCfg := ts.Config{
		Iterations:        *tsIter,
		IterationsPerSize: *tsIterPerSize,
		TabuTenure:        *tsTenure,
		TabuTenureRand:    *tsTenureRand,
		NeighborsPerIter:  *tsNeighbors,
		Neighborhood:      ts.Neighborhood(*tsNeigh),
	}
	if err := tsCfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации табу-поиска:", err)
		os.Exit(2)
	}

	acoCfg := aco.Config{
		Iterations:        *acoIter,
		IterationsPerSize: *acoIterPerSize,
		Ants:              *acoAnts,
		Alpha:             *acoA,
		Beta:              *acoB,
		Rho:               *acoRho,
		Q:                 *acoQ,
		Tau0:              *acoTau0,
		CandidateK:        *acoCandK,
	}
	if err := acoCfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации муравьиного алгоритма:", err)
		os.Exit(2)
	}

	psoCfg := pso.Config{
		Iterations:        *psoIter,
		IterationsPerSize: *psoIterPerSize,
		Particles:         *psoParticles,
		W:                 *psoW,
		C1:                *psoC1,
		C2:                *psoC2,
		VMax:              *psoVMax,
		PosMin:            *psoPosMin,
		PosMax:            *psoPosMax,
	}
	if err := psoCfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации роя частиц:", err)
		os.Exit(2)
	}

	available := map[string]bench.Algorithm{
		"GA":  {Name: "GA", Factory: newGAFactory(gaCfg)},
		"SA":  {Name: "SA", Factory: newSAFactory(saCfg)},
		"TS":  {Name: "TS", Factory: newTSFactory(tsCfg)},
		"ACO": {Name: "ACO", Factory: newACOFactory(acoCfg)},
		"PSO": {Name: "PSO", Factory: newPSOFactory(psoCfg)},
	}

	var selected []bench.Algorithm
	for _, a := range splitCSV(*algos) {
		al, ok := available[a]
		if !ok {
			fmt.Fprintf(os.Stderr, "Алгоритм не предоставлен в программе %q; доступные: %v\n", a, keys(available))
			os.Exit(2)
		}
		selected = append(selected, al)
	}

	runner := bench.Runner{
		Runs:          *runs,
		BaseSeed:      *baseSeed,
		PerRunTimeout: *perRunTO,
	}

	var records []bench.Record
	for _, c := range cases {
		for _, a := range selected {
			fmt.Printf("Запущен алгоритм %s; размер задачи n=%d (общее кол-во запусков=%d)...\n", a.Name, caseSize(c), runner.Runs)

			rec, bestRes, err := runner.RunCase(ctx, c, a)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Ошибка:", err)
				os.Exit(1)
			}
			records = append(records, rec)

			fmt.Printf("  Значение целевой функции: лучшее=%d среднее=%.2f стандартное отклонение=%.2f | Время: среднее=%.2fms среднее отклонение=%.2fms\n",
				rec.FitnessBest, rec.FitnessMean, rec.FitnessStd,
				rec.TimeMeanMs, rec.TimeStdMs,
			)

			// Построение графика сходимости лучшего запуска
			if *plotDir != "" && len(bestRes.History) > 0 {
				name := fmt.Sprintf("%s_n%d.png", strings.ToLower(a.Name), rec.Size)
				path := filepath.Join(*plotDir, name)
				title := fmt.Sprintf("%s, n=%d, best=%d", a.Name, rec.Size, bestRes.Fitness)
				if err := bench.WriteConvergencePlot(path, title, bestRes.History); err != nil {
					fmt.Fprintln(os.Stderr, "Ошибка при построении графика:", err)
					os.Exit(1)
				}
			}
		}
	}

	if err := bench.WriteCSV(*out, records); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка при записи в CSV:", err)
		os.Exit(1)
	}
	fmt.Println("Saved:", *out)
}

// helpers

func parseSizes(s string, baseInstanceSeed int64) ([]bench.Case, error) {
	parts := splitCSV(s)
	cases := make([]bench.Case, 0, len(parts))

	for i, p := range parts {
		n, err := atoiStrict(p)
		if err != nil {
			return nil, fmt.Errorf("размер %q: ошибка парсинга: %w", p, err)
		}
		if n <= 0 {
			return nil, fmt.Errorf("размер %q: значение должно быть > 0", p)
		}

		seed := baseInstanceSeed + int64(i)*10_000 + int64(n)*100

		cases = append(cases, bench.Case{
			Size:         n,
			InstanceSeed: seed,
		})
	}

	return cases, nil
}

func caseSize(c bench.Case) int {
	if c.Instance != nil {
		return c.Instance.Size()
	}
	return c.Size
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func atoiStrict(s string) (int, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func keys(m map[string]bench.Algorithm) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
