package gep

import "math"

// Dataset holds (input, output) pairs sampled from the target
// function. It is immutable after construction and safe to read from
// concurrent islands.
type Dataset struct {
	inputs  []float64
	outputs []float64
}

// sample is the target function the evolutionary search regresses.
func sample(x float64) float64 {
	return 0.4 * (math.Sin(10*x) + math.Sin(20*x) + math.Sin(30*x))
}

// NewDataset samples the target at sampleTotal interior points plus
// the two endpoints, evenly spaced over [start, end] inclusive.
func NewDataset(start, end float64, sampleTotal int) *Dataset {
	size := sampleTotal + 2
	interval := (end - start) / float64(sampleTotal+1)
	d := &Dataset{
		inputs:  make([]float64, size),
		outputs: make([]float64, size),
	}
	d.inputs[0] = start
	for i := 1; i < size-1; i++ {
		d.inputs[i] = start + interval*float64(i)
	}
	d.inputs[size-1] = end
	for i, x := range d.inputs {
		d.outputs[i] = sample(x)
	}
	return d
}

// DefaultDataset returns the standard instance: 100 interior samples
// over [0, 1].
func DefaultDataset() *Dataset {
	return NewDataset(0.0, 1.0, 100)
}

// Total returns the number of sampled points.
func (d *Dataset) Total() int { return len(d.inputs) }

// Input returns the i-th sampled input.
func (d *Dataset) Input(i int) float64 { return d.inputs[i] }

// Output returns the i-th sampled output.
func (d *Dataset) Output(i int) float64 { return d.outputs[i] }
