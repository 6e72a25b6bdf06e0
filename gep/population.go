package gep

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Population is a fixed-size collection of chromosomes with a cached
// best individual. Slots own their occupants; installing a different
// chromosome drops the previous one.
type Population struct {
	chromosomes []*Chromosome
	bestValid   bool
	bestIdx     int
}

// NewPopulation returns an empty population of the given size. Slots
// must be filled with Set before ranking or selection.
func NewPopulation(size int) *Population {
	return &Population{chromosomes: make([]*Chromosome, size)}
}

// NewRandomPopulation returns a population of size random chromosomes
// of the given length, constants initialized in [min, max].
func NewRandomPopulation(rng *rand.Rand, ds *Dataset, size, length int, min, max float64) (*Population, error) {
	p := NewPopulation(size)
	for i := 0; i < size; i++ {
		c, err := NewRandomChromosome(rng, ds, length, min, max)
		if err != nil {
			return nil, err
		}
		p.chromosomes[i] = c
	}
	return p, nil
}

// Size returns the number of slots.
func (p *Population) Size() int { return len(p.chromosomes) }

// Chromosome returns the occupant of slot i.
func (p *Population) Chromosome(i int) *Chromosome { return p.chromosomes[i] }

// Set installs c into slot i. Replacing a slot with its current
// occupant is a no-op, and so is installing the cached best into
// another slot as far as the cache is concerned. Otherwise the best
// cache survives when the cached best still wins against the newcomer
// and its own slot was not the one replaced, and is invalidated if not.
func (p *Population) Set(i int, c *Chromosome) error {
	if i < 0 || i >= len(p.chromosomes) {
		return fmt.Errorf("%w: population slot %d, size %d", ErrOutOfRange, i, len(p.chromosomes))
	}
	old := p.chromosomes[i]
	if old == c {
		return nil
	}
	if p.bestValid && old != nil {
		best := p.chromosomes[p.bestIdx]
		switch {
		case c == best:
			// re-installing the cached best elsewhere; cache untouched
		case i == p.bestIdx:
			p.bestValid = false
		case best.Fitness() > c.Fitness():
			// cache still wins
		default:
			p.bestValid = false
		}
	}
	p.chromosomes[i] = c
	return nil
}

// Best returns the highest-fitness individual, scanning only when the
// cache is invalid. The running maximum starts at the smallest
// positive float; fitness is strictly positive by construction, so the
// first individual always beats it.
func (p *Population) Best() *Chromosome {
	if p.bestValid {
		return p.chromosomes[p.bestIdx]
	}
	maxFitness := math.SmallestNonzeroFloat64
	idx := 0
	for i, c := range p.chromosomes {
		if c.Fitness() > maxFitness {
			idx, maxFitness = i, c.Fitness()
		}
	}
	p.bestValid = true
	p.bestIdx = idx
	return p.chromosomes[idx]
}

// Sort orders the population by descending fitness and marks slot 0 as
// the cached best.
func (p *Population) Sort() {
	sort.Slice(p.chromosomes, func(i, j int) bool {
		return p.chromosomes[i].Fitness() > p.chromosomes[j].Fitness()
	})
	p.bestValid = true
	p.bestIdx = 0
}
