// Package sinefit fits a fixed sum-of-sines template to sampled data
// by Adam gradient descent. It is a parametric track independent of
// the evolutionary engine: the shape of the model is fixed up front
// and only its coefficients are trained.
//
// The fitted model is ŷ(x) = Σ kᵢ·sin(aᵢ·x + bᵢ) over a configured
// number of sine cells.
package sinefit

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// Model holds the coefficients of a sum of sine cells.
type Model struct {
	k []float64
	a []float64
	b []float64
}

// New returns a model of total sine cells with every coefficient
// initialized uniform in [minv, maxv].
func New(rng *rand.Rand, total int, minv, maxv float64) *Model {
	m := &Model{
		k: make([]float64, total),
		a: make([]float64, total),
		b: make([]float64, total),
	}
	for i := 0; i < total; i++ {
		m.k[i] = minv + rng.Float64()*(maxv-minv)
		m.a[i] = minv + rng.Float64()*(maxv-minv)
		m.b[i] = minv + rng.Float64()*(maxv-minv)
	}
	return m
}

// Total returns the number of sine cells.
func (m *Model) Total() int { return len(m.k) }

// Predict evaluates the model at x.
func (m *Model) Predict(x float64) float64 {
	var y float64
	for j := range m.k {
		y += m.k[j] * math.Sin(m.a[j]*x+m.b[j])
	}
	return y
}

type fitOptions struct {
	epochs   int
	lr       float64
	beta1    float64
	beta2    float64
	epsilon  float64
	progress func(epoch int, mse float64)
}

// FitOption customizes a Fit call.
type FitOption func(*fitOptions)

// WithEpochs sets how many passes over the data to train. Default 1.
func WithEpochs(epochs int) FitOption {
	return func(o *fitOptions) {
		o.epochs = epochs
	}
}

// WithLearningRate sets the Adam step size. Default 0.001.
func WithLearningRate(lr float64) FitOption {
	return func(o *fitOptions) {
		o.lr = lr
	}
}

// WithBetas sets the Adam moment decays. Defaults 0.9 and 0.999.
func WithBetas(beta1, beta2 float64) FitOption {
	return func(o *fitOptions) {
		o.beta1 = beta1
		o.beta2 = beta2
	}
}

// WithEpsilon sets the Adam denominator floor. Default 1e-8.
func WithEpsilon(epsilon float64) FitOption {
	return func(o *fitOptions) {
		o.epsilon = epsilon
	}
}

// WithProgress installs a callback invoked after every epoch with the
// epoch number (1-based) and the epoch's mean squared error.
func WithProgress(fn func(epoch int, mse float64)) FitOption {
	return func(o *fitOptions) {
		o.progress = fn
	}
}

// Fit trains the model by full-batch Adam. input and output yield the
// i-th sample for i in [0, size).
func (m *Model) Fit(input, output func(i int) float64, size int, opts ...FitOption) {
	o := fitOptions{
		epochs:  1,
		lr:      0.001,
		beta1:   0.9,
		beta2:   0.999,
		epsilon: 1e-8,
	}
	for _, opt := range opts {
		opt(&o)
	}

	total := len(m.k)
	mk := make([]float64, total)
	ma := make([]float64, total)
	mb := make([]float64, total)
	vk := make([]float64, total)
	va := make([]float64, total)
	vb := make([]float64, total)
	gk := make([]float64, total)
	ga := make([]float64, total)
	gb := make([]float64, total)

	step := func(theta, mo, vo, g []float64, j int) {
		mo[j] = o.beta1*mo[j] + (1-o.beta1)*g[j]
		vo[j] = o.beta2*vo[j] + (1-o.beta2)*g[j]*g[j]
		mhat := mo[j] / (1 - o.beta1)
		vhat := vo[j] / (1 - o.beta2)
		theta[j] -= o.lr * mhat / (math.Sqrt(vhat) + o.epsilon)
	}

	for epoch := 0; epoch < o.epochs; epoch++ {
		var errors float64
		for j := 0; j < total; j++ {
			gk[j], ga[j], gb[j] = 0, 0, 0
		}
		for i := 0; i < size; i++ {
			hx := input(i)
			hy := output(i)
			y := m.Predict(hx)
			diff := y - hy
			errors += diff * diff
			for j := 0; j < total; j++ {
				axb := m.a[j]*hx + m.b[j]
				tmp := diff * m.k[j] * math.Cos(axb)
				gk[j] += diff * math.Sin(axb)
				ga[j] += tmp * hx
				gb[j] += tmp
			}
		}
		for j := 0; j < total; j++ {
			step(m.k, mk, vk, gk, j)
			step(m.a, ma, va, ga, j)
			step(m.b, mb, vb, gb, j)
		}
		if o.progress != nil {
			o.progress(epoch+1, errors/float64(size))
		}
	}
}

// String renders the model as a sum of sine terms.
func (m *Model) String() string {
	var b strings.Builder
	for i := range m.k {
		if i > 0 && m.k[i] > 0 {
			b.WriteString("+")
		}
		fmt.Fprintf(&b, "%g*sin(%g*x", m.k[i], m.a[i])
		if m.b[i] > 0 {
			b.WriteString("+")
		}
		fmt.Fprintf(&b, "%g)", m.b[i])
	}
	return b.String()
}
