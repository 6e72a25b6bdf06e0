package gep

import (
	"fmt"
	"math/rand"

	"golang.org/x/sync/errgroup"
)

// Islands runs K independent MainProcesses in parallel, one goroutine
// per island, and migrates best individuals between them on demand.
// Each island owns a private random stream seeded from the master
// seed, so a parallel run is reproducible. Exchange and the aggregate
// queries must only be called while no island is running.
type Islands struct {
	rng   *rand.Rand
	procs []*MainProcess
}

// NewIslands returns k islands evaluating against ds. The master seed
// derives every island's stream and drives the migration permutation.
func NewIslands(ds *Dataset, k int, seed int64) (*Islands, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: island count must be at least 1, got %d", ErrConfiguration, k)
	}
	rng := rand.New(rand.NewSource(seed))
	procs := make([]*MainProcess, k)
	for i := range procs {
		procs[i] = NewMainProcess(ds, rng.Int63())
	}
	return &Islands{rng: rng, procs: procs}, nil
}

// Size returns the number of islands.
func (il *Islands) Size() int { return len(il.procs) }

// Island returns the i-th island's process.
func (il *Islands) Island(i int) *MainProcess { return il.procs[i] }

// Run starts every island with the same configuration and waits for
// all of them to finish.
func (il *Islands) Run(cfg Config) error {
	g := new(errgroup.Group)
	for _, p := range il.procs {
		p := p
		g.Go(func() error {
			return p.Run(cfg)
		})
	}
	return g.Wait()
}

// RunContinue resumes every island in parallel and waits for all of
// them to finish.
func (il *Islands) RunContinue(maxGenerations int, stopFitness float64, keep int, r float64) error {
	g := new(errgroup.Group)
	for _, p := range il.procs {
		p := p
		g.Go(func() error {
			return p.RunContinue(maxGenerations, stopFitness, keep, r)
		})
	}
	return g.Wait()
}

// Exchange migrates best individuals between islands: it deep-copies
// each island's best, permutes the copies uniformly at random, and
// installs copy i into island i over a non-best slot. A single island
// has nobody to trade with.
func (il *Islands) Exchange() {
	k := len(il.procs)
	if k == 1 {
		return
	}
	migrants := make([]*Chromosome, k)
	for i, p := range il.procs {
		migrants[i] = p.Best().Clone()
	}
	for i := 0; i < k-1; i++ {
		j := i + il.rng.Intn(k-i)
		migrants[i], migrants[j] = migrants[j], migrants[i]
	}
	for i, p := range il.procs {
		p.ReplaceChromosome(migrants[i])
	}
}

// Generation returns the first island's generation counter. Islands
// driven with identical caps advance in lockstep, except that an island
// whose best reaches the stop fitness stops counting early.
func (il *Islands) Generation() int { return il.procs[0].Generation() }

// MaxFitness returns the highest fitness across islands.
func (il *Islands) MaxFitness() float64 {
	max := il.procs[0].MaxFitness()
	for _, p := range il.procs[1:] {
		if f := p.MaxFitness(); f > max {
			max = f
		}
	}
	return max
}

// Best returns the best individual across islands; ties go to the
// lowest island index.
func (il *Islands) Best() *Chromosome {
	max := il.procs[0].MaxFitness()
	best := il.procs[0].Best()
	for _, p := range il.procs[1:] {
		if f := p.MaxFitness(); f > max {
			max = f
			best = p.Best()
		}
	}
	return best
}
