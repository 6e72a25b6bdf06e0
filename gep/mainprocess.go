package gep

import (
	"fmt"
	"math/rand"
)

// Config holds the parameters of a generational run.
type Config struct {
	// PopulationSize is the number of individuals, N.
	PopulationSize int
	// ChromosomeLength is the genome length, L. Must be at least 8.
	ChromosomeLength int
	// Min and Max bound the constants of the initial population.
	Min float64
	Max float64
	// MaxGenerations caps the run.
	MaxGenerations int
	// StopFitness stops the run early once the best individual
	// reaches it.
	StopFitness float64
	// Keep is the elite count: how many top individuals survive each
	// generation unchanged. 1 <= Keep <= PopulationSize.
	Keep int
	// MutationRate is the per-gene mutation probability r.
	MutationRate float64
}

// Validate checks the configuration and returns an error describing
// the first problem found.
func (c Config) Validate() error {
	if c.PopulationSize < 2 {
		return fmt.Errorf("%w: population size must be at least 2, got %d", ErrConfiguration, c.PopulationSize)
	}
	if c.ChromosomeLength < MinChromosomeLength {
		return fmt.Errorf("%w: chromosome length must be at least %d, got %d", ErrConfiguration, MinChromosomeLength, c.ChromosomeLength)
	}
	if c.Min > c.Max {
		return fmt.Errorf("%w: min %g above max %g", ErrConfiguration, c.Min, c.Max)
	}
	if c.MaxGenerations < 0 {
		return fmt.Errorf("%w: max generations must not be negative, got %d", ErrConfiguration, c.MaxGenerations)
	}
	if c.Keep < 1 || c.Keep > c.PopulationSize {
		return fmt.Errorf("%w: keep must be in [1, %d], got %d", ErrConfiguration, c.PopulationSize, c.Keep)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("%w: mutation rate must be in [0, 1], got %g", ErrConfiguration, c.MutationRate)
	}
	return nil
}

// ProgressFunc is invoked after ranking each generation with the
// generation counter and the current best individual.
type ProgressFunc func(generation int, best *Chromosome)

// MainProcess drives a single-island generational loop: init, then
// select, crossover, mutate, replace and rank until the generation cap
// or the stop fitness is reached. All of its operations run on the
// calling goroutine; concurrent use of one MainProcess is not
// supported.
type MainProcess struct {
	rng        *rand.Rand
	ds         *Dataset
	cfg        Config
	kill       int
	gen        int
	maxFitness float64
	pop        *Population
	selected   []*Chromosome
	newborn    []*Chromosome
	progress   ProgressFunc
}

// NewMainProcess returns a process evaluating against ds, with its own
// random stream seeded by seed.
func NewMainProcess(ds *Dataset, seed int64) *MainProcess {
	return &MainProcess{
		rng: rand.New(rand.NewSource(seed)),
		ds:  ds,
	}
}

// SetProgress installs a per-generation callback. Pass nil to disable.
func (m *MainProcess) SetProgress(fn ProgressFunc) {
	m.progress = fn
}

// Run builds a fresh random population and evolves it. Calling Run
// again discards all state of the previous run.
func (m *MainProcess) Run(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	m.cfg = cfg
	m.kill = cfg.PopulationSize - cfg.Keep
	pop, err := NewRandomPopulation(m.rng, m.ds, cfg.PopulationSize, cfg.ChromosomeLength, cfg.Min, cfg.Max)
	if err != nil {
		return err
	}
	m.pop = pop
	m.gen = 0
	m.selected = make([]*Chromosome, 2*m.kill)
	m.newborn = make([]*Chromosome, m.kill)
	m.rank()
	m.maxFitness = m.pop.Best().Fitness()
	m.report()
	return m.loop(cfg.MaxGenerations, cfg.StopFitness)
}

// RunContinue resumes the evolved population for up to maxGenerations
// more generations, possibly with a different elite count and mutation
// rate. If the previous run used Keep == 1, raising it forces a sort
// first, restoring the sorted-prefix invariant replacement relies on.
func (m *MainProcess) RunContinue(maxGenerations int, stopFitness float64, keep int, r float64) error {
	if m.pop == nil {
		return fmt.Errorf("%w: RunContinue before Run", ErrConfiguration)
	}
	if keep < 1 || keep > m.cfg.PopulationSize {
		return fmt.Errorf("%w: keep must be in [1, %d], got %d", ErrConfiguration, m.cfg.PopulationSize, keep)
	}
	if r < 0 || r > 1 {
		return fmt.Errorf("%w: mutation rate must be in [0, 1], got %g", ErrConfiguration, r)
	}
	if m.cfg.Keep != keep {
		if m.cfg.Keep == 1 && keep > 1 {
			m.pop.Sort()
		}
		m.cfg.Keep = keep
		m.kill = m.cfg.PopulationSize - keep
		m.selected = make([]*Chromosome, 2*m.kill)
		m.newborn = make([]*Chromosome, m.kill)
	}
	m.cfg.MutationRate = r
	m.maxFitness = m.pop.Best().Fitness()
	return m.loop(maxGenerations, stopFitness)
}

// Generation returns how many generations have been evolved. A run
// whose initial population already meets the stop fitness reports 0.
func (m *MainProcess) Generation() int { return m.gen }

// MaxFitness returns the best fitness seen at the last ranking.
func (m *MainProcess) MaxFitness() float64 { return m.maxFitness }

// Best returns the current best individual.
func (m *MainProcess) Best() *Chromosome { return m.pop.Best() }

// ReplaceChromosome installs c into a non-best slot, scanning from the
// tail of the population forward. Used by inter-island migration.
func (m *MainProcess) ReplaceChromosome(c *Chromosome) {
	best := m.pop.Best()
	for i := m.pop.Size() - 1; i >= 0; i-- {
		if m.pop.Chromosome(i) != best {
			m.pop.Set(i, c)
			return
		}
	}
}

func (m *MainProcess) loop(count int, stopFitness float64) error {
	for i := 0; i < count && m.maxFitness < stopFitness; i++ {
		m.selectParents()
		if err := m.crossover(); err != nil {
			return err
		}
		m.mutate()
		m.replace()
		m.rank()
		m.maxFitness = m.pop.Best().Fitness()
		m.gen++
		m.report()
	}
	return nil
}

// selectParents fills the scratch buffer with 2*kill winners of binary
// tournaments. Ties go to the first draw.
func (m *MainProcess) selectParents() {
	n := m.pop.Size()
	for i := range m.selected {
		a := m.pop.Chromosome(m.rng.Intn(n))
		b := m.pop.Chromosome(m.rng.Intn(n))
		if a.Fitness() >= b.Fitness() {
			m.selected[i] = a
		} else {
			m.selected[i] = b
		}
	}
}

func (m *MainProcess) crossover() error {
	for i := range m.newborn {
		child, err := m.selected[2*i].Crossover(m.selected[2*i+1], m.rng)
		if err != nil {
			return err
		}
		m.newborn[i] = child
	}
	return nil
}

func (m *MainProcess) mutate() {
	if m.cfg.MutationRate <= 0 {
		return
	}
	for _, c := range m.newborn {
		c.Mutate(m.cfg.MutationRate, m.rng)
	}
}

// replace installs the newborns. With Keep > 1 the population is
// sorted, so the slots after the elite prefix are overwritten in
// order. With Keep == 1 the population is unsorted and every slot
// except the best one is overwritten, which saves the per-generation
// sort.
func (m *MainProcess) replace() {
	if m.cfg.Keep != 1 {
		for i := m.cfg.Keep; i < m.pop.Size(); i++ {
			m.pop.Set(i, m.newborn[i-m.cfg.Keep])
		}
		return
	}
	best := m.pop.Best()
	next := 0
	for i := 0; i < m.pop.Size() && next < len(m.newborn); i++ {
		if m.pop.Chromosome(i) != best {
			m.pop.Set(i, m.newborn[next])
			next++
		}
	}
}

func (m *MainProcess) rank() {
	if m.cfg.Keep != 1 {
		m.pop.Sort()
		return
	}
	m.pop.Best()
}

func (m *MainProcess) report() {
	if m.progress != nil {
		m.progress(m.gen, m.pop.Best())
	}
}
