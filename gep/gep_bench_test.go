package gep

import (
	"fmt"
	"math/rand"
	"testing"
)

// ==================== Chromosome Benchmarks ====================

// BenchmarkBuildTree benchmarks decoding across genome lengths.
func BenchmarkBuildTree(b *testing.B) {
	ds := DefaultDataset()
	lengths := []int{8, 20, 64, 256}

	for _, length := range lengths {
		b.Run(fmt.Sprintf("len_%d", length), func(b *testing.B) {
			rng := rand.New(rand.NewSource(12345))
			c, err := NewRandomChromosome(rng, ds, length, 1.0, 4.0)
			if err != nil {
				b.Fatal(err)
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := c.BuildTree(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkFitness benchmarks an uncached fitness evaluation.
func BenchmarkFitness(b *testing.B) {
	ds := DefaultDataset()
	rng := rand.New(rand.NewSource(12345))
	c, err := NewRandomChromosome(rng, ds, 20, 1.0, 4.0)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.cached = false
		c.Fitness()
	}
}

// BenchmarkCrossover benchmarks offspring creation.
func BenchmarkCrossover(b *testing.B) {
	ds := DefaultDataset()
	rng := rand.New(rand.NewSource(12345))
	p1, err := NewRandomChromosome(rng, ds, 20, 1.0, 4.0)
	if err != nil {
		b.Fatal(err)
	}
	p2, err := NewRandomChromosome(rng, ds, 20, 1.0, 4.0)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p1.Crossover(p2, rng); err != nil {
			b.Fatal(err)
		}
	}
}

// ==================== MainProcess Benchmarks ====================

// BenchmarkGeneration benchmarks one full generation over population sizes.
func BenchmarkGeneration(b *testing.B) {
	sizes := []int{50, 100, 300}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("pop_%d", size), func(b *testing.B) {
			mp := NewMainProcess(DefaultDataset(), 12345)
			cfg := Config{
				PopulationSize:   size,
				ChromosomeLength: 20,
				Min:              1.0,
				Max:              4.0,
				MaxGenerations:   0,
				StopFitness:      99.0,
				Keep:             size / 2,
				MutationRate:     0.1,
			}
			if err := mp.Run(cfg); err != nil {
				b.Fatal(err)
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := mp.RunContinue(1, 99.0, size/2, 0.1); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
