package main

import (
	"flag"
	"math/rand"

	"github.com/schollz/progressbar/v3"
	log "github.com/sirupsen/logrus"

	"github.com/aram/GeneExpressionProgramming/gep"
	"github.com/aram/GeneExpressionProgramming/sinefit"
)

func main() {
	mode := flag.String("mode", "single", "The mode to run (single, islands or sinefit)")
	seed := flag.Int64("seed", 1, "Master random seed")
	popSize := flag.Int("pop", 300, "Population size per island")
	length := flag.Int("len", 20, "Chromosome length")
	minV := flag.Float64("min", 1.0, "Lower bound of initial constants")
	maxV := flag.Float64("max", 4.0, "Upper bound of initial constants")
	generations := flag.Int("generations", 100, "Generation cap (per cycle in islands mode)")
	stop := flag.Float64("stop", 0.99, "Stop fitness")
	keep := flag.Int("keep", 150, "Elite count preserved each generation")
	rate := flag.Float64("rate", 0.1, "Per-gene mutation probability")
	islands := flag.Int("islands", 4, "Number of islands")
	cycles := flag.Int("cycles", 100, "Exchange/continue cycles in islands mode")
	cells := flag.Int("cells", 10, "Sine cells in sinefit mode")
	epochs := flag.Int("epochs", 2000, "Training epochs in sinefit mode")
	lr := flag.Float64("lr", 0.001, "Learning rate in sinefit mode")
	out := flag.String("out", "fit.svg", "Output SVG of the best fit (empty to skip)")
	flag.Parse()

	cfg := gep.Config{
		PopulationSize:   *popSize,
		ChromosomeLength: *length,
		Min:              *minV,
		Max:              *maxV,
		MaxGenerations:   *generations,
		StopFitness:      *stop,
		Keep:             *keep,
		MutationRate:     *rate,
	}

	switch *mode {
	case "single":
		runSingle(cfg, *seed, *out)
	case "islands":
		runIslands(cfg, *islands, *cycles, *seed, *out)
	case "sinefit":
		runSinefit(*cells, *epochs, *lr, *seed)
	default:
		log.Fatalf("Unknown mode: %s", *mode)
	}
}

func runSingle(cfg gep.Config, seed int64, out string) {
	ds := gep.DefaultDataset()
	mp := gep.NewMainProcess(ds, seed)
	mp.SetProgress(func(generation int, best *gep.Chromosome) {
		if generation%10 == 0 {
			log.WithFields(log.Fields{
				"generation": generation,
				"fitness":    best.Fitness(),
			}).Info("evolving")
		}
	})

	log.WithFields(log.Fields{
		"pop":  cfg.PopulationSize,
		"len":  cfg.ChromosomeLength,
		"seed": seed,
	}).Info("running single island")

	if err := mp.Run(cfg); err != nil {
		log.Fatalf("Failed to run: %v", err)
	}

	best := mp.Best()
	log.WithFields(log.Fields{
		"generations": mp.Generation(),
		"fitness":     mp.MaxFitness(),
	}).Info("finished")
	log.Infof("best individual: %s", best)

	writeFit(ds, best, out)
}

func runIslands(cfg gep.Config, k, cycles int, seed int64, out string) {
	ds := gep.DefaultDataset()
	il, err := gep.NewIslands(ds, k, seed)
	if err != nil {
		log.Fatalf("Failed to build islands: %v", err)
	}

	log.WithFields(log.Fields{
		"islands": k,
		"pop":     cfg.PopulationSize,
		"cycles":  cycles,
		"seed":    seed,
	}).Info("running island model")

	if err := il.Run(cfg); err != nil {
		log.Fatalf("Failed to run: %v", err)
	}

	bar := progressbar.Default(int64(cycles), "exchanging")
	for i := 0; i < cycles && il.MaxFitness() < cfg.StopFitness; i++ {
		il.Exchange()
		if err := il.RunContinue(cfg.MaxGenerations, cfg.StopFitness, cfg.Keep, cfg.MutationRate); err != nil {
			log.Fatalf("Failed to continue: %v", err)
		}
		bar.Add(1)
	}
	bar.Finish()

	best := il.Best()
	log.WithFields(log.Fields{
		"generations": il.Generation(),
		"fitness":     il.MaxFitness(),
	}).Info("finished")
	log.Infof("best individual: %s", best)

	writeFit(ds, best, out)
}

func runSinefit(cells, epochs int, lr float64, seed int64) {
	ds := gep.DefaultDataset()
	rng := rand.New(rand.NewSource(seed))
	model := sinefit.New(rng, cells, -1.0, 1.0)

	log.WithFields(log.Fields{
		"cells":  cells,
		"epochs": epochs,
		"lr":     lr,
		"seed":   seed,
	}).Info("fitting sum of sines")

	bar := progressbar.Default(int64(epochs), "training")
	var lastMSE float64
	model.Fit(
		ds.Input,
		ds.Output,
		ds.Total(),
		sinefit.WithEpochs(epochs),
		sinefit.WithLearningRate(lr),
		sinefit.WithProgress(func(epoch int, mse float64) {
			lastMSE = mse
			bar.Add(1)
		}),
	)
	bar.Finish()

	log.WithField("mse", lastMSE).Info("finished")
	log.Infof("model: %s", model)
}

func writeFit(ds *gep.Dataset, best *gep.Chromosome, out string) {
	if out == "" {
		return
	}
	if err := gep.VisualizeFit(ds, best, out); err != nil {
		log.Fatalf("Failed to write %s: %v", out, err)
	}
	log.Infof("fit visualization saved to %s", out)
}
