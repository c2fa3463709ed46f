package optimize

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/wokhouse/viberesp-sub001/paramspace"
)

// Evaluator evaluates one candidate parameter vector into an objective
// vector (every component minimised) and a constraint violation set. It
// must be a pure function of x: the optimizer calls it concurrently from
// a worker pool and never mutates x after dispatch (§5).
type Evaluator func(x []float64) (objectives []float64, violations []paramspace.Violation)

// Config is one NSGA-II run's parameters (§4.10).
type Config struct {
	PopulationSize int
	Generations    int
	SeedHi, SeedLo uint64 // math/rand/v2 PCG seed, named explicitly for reproduce-by-seed
	CrossoverEta   float64
	MutationEta    float64
	Workers        int
}

// DefaultConfig returns the distribution indices §4.10 recommends
// (η_c≈15, η_m≈20) with a single worker; callers override PopulationSize,
// Generations, the seed and Workers.
func DefaultConfig() Config {
	return Config{
		PopulationSize: 100,
		Generations:    100,
		CrossoverEta:   15,
		MutationEta:    20,
		Workers:        1,
	}
}

func (c Config) validate() error {
	if c.PopulationSize < 2 {
		return fmt.Errorf("optimize: population size must be at least 2, got %d", c.PopulationSize)
	}
	if c.Generations < 1 {
		return fmt.Errorf("optimize: generations must be at least 1, got %d", c.Generations)
	}
	if c.Workers < 1 {
		return fmt.Errorf("optimize: workers must be at least 1, got %d", c.Workers)
	}
	return nil
}

// Metadata records what produced a Result, satisfying the reproduce-by-
// seed contract (§4.10).
type Metadata struct {
	SeedHi, SeedLo uint64
	NEvaluations   int
	Algorithm      string
	// Incomplete is true when ctx was cancelled before Run finished all
	// cfg.Generations generations: the current generation's unfinished
	// evaluations were discarded and Run returned the population of the
	// last fully-evaluated generation instead (empty if the initial
	// population was not finished), every rank, feasible or not; it is not
	// reduced to the feasible first front (§5, §7).
	Incomplete bool
}

// Result is the outcome of one NSGA-II run: the final population (all
// ranks, for inspection), the same individuals in TopN sorted by rank
// then by descending crowding distance (TopN is not cut to a fixed N),
// and run metadata (§4.10).
type Result struct {
	FinalFront []Individual
	TopN       []Individual
	Metadata   Metadata
}

// evalCount is incremented only by the sequential reduction step so the
// evaluation total itself is not a source of nondeterminism.
type evalCount struct {
	mu sync.Mutex
	n  int
}

func (e *evalCount) add(n int) {
	e.mu.Lock()
	e.n += n
	e.mu.Unlock()
}

// evaluateAll dispatches eval(x) for every candidate across cfg.Workers
// goroutines, writing results back into out at the candidate's own index
// so the reduction that follows sees a canonical, completion-order-
// independent ordering regardless of which worker finished first (§5). It
// returns the number of candidates actually evaluated and false if ctx was
// cancelled before every candidate was evaluated, in which case out holds
// only the results dispatched before the cancellation was observed and
// must not be used as a complete generation (§5, §7).
func evaluateAll(ctx context.Context, candidates [][]float64, eval Evaluator, workers int, out []Individual) (completedCount int, complete bool) {
	jobs := make(chan int)
	var wg sync.WaitGroup
	var cancelled atomic.Bool
	var n atomic.Int64
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					cancelled.Store(true)
					continue
				}
				objectives, violations := eval(candidates[i])
				out[i] = Individual{X: candidates[i], Objectives: objectives, Violations: violations}
				n.Add(1)
			}
		}()
	}
dispatch:
	for i := range candidates {
		select {
		case <-ctx.Done():
			cancelled.Store(true)
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	return int(n.Load()), !cancelled.Load()
}

// Run executes NSGA-II over slots using eval to score candidates, for
// cfg.Generations generations of cfg.PopulationSize individuals each
// (§4.10). The initial population is sampled uniformly (log-uniform for
// Log-scaled slots) from a PCG seeded by (cfg.SeedHi, cfg.SeedLo);
// identical inputs always reproduce identical fronts.
//
// ctx is checked once per generation and inside the worker pool's
// dispatch loop, at the coarse per-generation granularity §5 requires: a
// cancellation observed mid-generation discards that generation's
// unfinished evaluations entirely and Run returns immediately with the
// whole population of the last fully-evaluated generation (all ranks, not
// filtered for feasibility) and Result.Metadata.Incomplete set, rather
// than an error (§7's "Cancellation
// — returned as a partial-result status"). A nil ctx is treated as
// context.Background().
func Run(ctx context.Context, slots []paramspace.Slot, eval Evaluator, cfg Config) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := cfg.validate(); err != nil {
		return Result{}, err
	}
	if len(slots) == 0 {
		return Result{}, fmt.Errorf("optimize: parameter space must have at least one slot")
	}

	rng := rand.New(rand.NewPCG(cfg.SeedHi, cfg.SeedLo))
	counter := &evalCount{}

	population := make([]Individual, cfg.PopulationSize)
	candidates := make([][]float64, cfg.PopulationSize)
	for i := range candidates {
		candidates[i] = sampleRandom(rng, slots)
	}
	n, complete := evaluateAll(ctx, candidates, eval, cfg.Workers, population)
	counter.add(n)
	if !complete {
		return buildResult(nil, cfg, counter, true), nil
	}
	rankAndCrowd(population)

	for gen := 0; gen < cfg.Generations; gen++ {
		if ctx.Err() != nil {
			return buildResult(population, cfg, counter, true), nil
		}

		childCandidates := make([][]float64, 0, cfg.PopulationSize)
		for len(childCandidates) < cfg.PopulationSize {
			p1 := binaryTournament(rng, population)
			p2 := binaryTournament(rng, population)
			c1, c2 := sbxCrossover(rng, p1.X, p2.X, slots, cfg.CrossoverEta)
			polynomialMutation(rng, c1, slots, cfg.MutationEta)
			polynomialMutation(rng, c2, slots, cfg.MutationEta)
			childCandidates = append(childCandidates, c1, c2)
		}
		childCandidates = childCandidates[:cfg.PopulationSize]

		children := make([]Individual, cfg.PopulationSize)
		n, complete := evaluateAll(ctx, childCandidates, eval, cfg.Workers, children)
		counter.add(n)
		if !complete {
			return buildResult(population, cfg, counter, true), nil
		}

		combined := append(append([]Individual(nil), population...), children...)
		rankAndCrowd(combined)

		population = selectNext(combined, cfg.PopulationSize)
	}

	return buildResult(population, cfg, counter, false), nil
}

// buildResult assembles a Result from a (possibly partial, possibly nil)
// final population.
func buildResult(population []Individual, cfg Config, counter *evalCount, incomplete bool) Result {
	top := append([]Individual(nil), population...)
	sort.SliceStable(top, func(i, j int) bool {
		if top[i].Rank != top[j].Rank {
			return top[i].Rank < top[j].Rank
		}
		return top[i].Crowding > top[j].Crowding
	})

	return Result{
		FinalFront: population,
		TopN:       top,
		Metadata: Metadata{
			SeedHi:       cfg.SeedHi,
			SeedLo:       cfg.SeedLo,
			NEvaluations: counter.n,
			Algorithm:    "NSGA-II",
			Incomplete:   incomplete,
		},
	}
}

// rankAndCrowd runs non-dominated sorting and crowding distance over
// population in place.
func rankAndCrowd(population []Individual) {
	fronts := nonDominatedSort(population)
	for _, front := range fronts {
		crowdingDistance(population, front)
	}
}

// selectNext fills the next parent population by successive fronts,
// truncating the last included front by descending crowding distance
// (§4.10).
func selectNext(combined []Individual, n int) []Individual {
	fronts := nonDominatedSort(combined)
	next := make([]Individual, 0, n)
	for _, front := range fronts {
		crowdingDistance(combined, front)
		if len(next)+len(front) <= n {
			for _, idx := range front {
				next = append(next, combined[idx])
			}
			continue
		}
		remaining := n - len(next)
		ordered := append([]int(nil), front...)
		sort.SliceStable(ordered, func(i, j int) bool {
			return combined[ordered[i]].Crowding > combined[ordered[j]].Crowding
		})
		for _, idx := range ordered[:remaining] {
			next = append(next, combined[idx])
		}
		break
	}
	return next
}

// sampleRandom draws one candidate vector uniformly over each slot's
// bounds, log-uniform for Log-scaled slots (§4.9).
func sampleRandom(rng *rand.Rand, slots []paramspace.Slot) []float64 {
	x := make([]float64, len(slots))
	for i, s := range slots {
		u := rng.Float64()
		if s.Scale == paramspace.Log && s.Min > 0 {
			logLo, logHi := math.Log(s.Min), math.Log(s.Max)
			x[i] = math.Exp(logLo + u*(logHi-logLo))
		} else {
			x[i] = s.Min + u*(s.Max-s.Min)
		}
	}
	return x
}
