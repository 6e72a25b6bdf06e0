// Package gep implements symbolic regression by Gene Expression
// Programming: fixed-length linear chromosomes decode into expression
// trees that are scored against a sampled target function, and a
// generational loop with elitism evolves a population of them. An
// island model runs several independent populations in parallel with
// periodic migration of best individuals.
//
// Basic usage:
//
//	ds := gep.DefaultDataset()
//	mp := gep.NewMainProcess(ds, 42)
//	err := mp.Run(gep.Config{
//	    PopulationSize:   300,
//	    ChromosomeLength: 20,
//	    Min:              1.0,
//	    Max:              4.0,
//	    MaxGenerations:   100,
//	    StopFitness:      0.99,
//	    Keep:             150,
//	    MutationRate:     0.1,
//	})
//	best := mp.Best()
package gep

import (
	"math/rand"
	"strconv"
)

// OpKind identifies an operator symbol.
type OpKind int

// Operator symbols. End is a sentinel: it consumes no children and,
// when decoding meets it in the head, redirects the pending child to
// the first tail slot.
const (
	Add OpKind = iota + 1
	Sub
	Mul
	Div
	Sin
	End
)

const numOpKinds = 6

// Side marks whether an Op sits on the left or right edge under its
// parent in a decoded tree. It is set by the decoder and drives
// evaluation dispatch and infix printing.
type Side int

const (
	SideUnset Side = iota
	SideLeft
	SideRight
)

// divEpsilon is the protected-division guard: a division whose
// denominator has absolute value below it evaluates to 0.
const divEpsilon = 1e-18

type opClass int

const (
	classOperator opClass = iota + 1
	classNumber
	classVariable
)

// Op is a single gene: exactly one of an operator, a numeric constant
// with its initialization bounds, or the input variable.
type Op struct {
	class opClass
	kind  OpKind
	value float64
	min   float64
	max   float64
	side  Side
}

// NewOperator returns an operator Op of the given kind.
func NewOperator(kind OpKind) Op {
	return Op{class: classOperator, kind: kind}
}

// NewNumber returns a constant Op carrying value and its bounds.
func NewNumber(value, min, max float64) Op {
	return Op{class: classNumber, value: value, min: min, max: max}
}

// NewVariable returns a variable Op; it evaluates to the current input.
func NewVariable(min, max float64) Op {
	return Op{class: classVariable, min: min, max: max}
}

// RandomNumber returns a constant Op with value uniform in [min, max].
func RandomNumber(rng *rand.Rand, min, max float64) Op {
	return NewNumber(min+rng.Float64()*(max-min), min, max)
}

// RandomOperator returns an operator Op uniform over all kinds,
// End included.
func RandomOperator(rng *rand.Rand) Op {
	return NewOperator(OpKind(rng.Intn(numOpKinds) + 1))
}

// RandomTerminal returns, with equal probability, either a random
// constant in [min, max] or a variable carrying the same bounds.
func RandomTerminal(rng *rand.Rand, min, max float64) Op {
	if rng.Float64() < 0.5 {
		return RandomNumber(rng, min, max)
	}
	return NewVariable(min, max)
}

// Like returns a structurally identical copy of o with the side mark
// reset.
func Like(o Op) Op {
	o.side = SideUnset
	return o
}

// IsOperator reports whether o is an operator gene.
func (o Op) IsOperator() bool { return o.class == classOperator }

// IsNumber reports whether o is a numeric constant.
func (o Op) IsNumber() bool { return o.class == classNumber }

// IsVariable reports whether o is the input variable.
func (o Op) IsVariable() bool { return o.class == classVariable }

// IsTerminal reports whether o is a constant or a variable.
func (o Op) IsTerminal() bool { return o.class != classOperator }

// Kind returns the operator kind; zero for terminals.
func (o Op) Kind() OpKind { return o.kind }

// Value returns the constant's value. Variables carry no value and
// report 0.
func (o Op) Value() float64 { return o.value }

// Min returns the lower initialization bound of a terminal.
func (o Op) Min() float64 { return o.min }

// Max returns the upper initialization bound of a terminal.
func (o Op) Max() float64 { return o.max }

// Side returns the side mark set by the decoder.
func (o Op) Side() Side { return o.side }

// Arity returns how many children the gene consumes in a decoded
// tree: 2 for the binary operators, 1 for Sin, 0 for terminals and
// for End.
func (o Op) Arity() int {
	if o.class != classOperator {
		return 0
	}
	switch o.kind {
	case Sin:
		return 1
	case End:
		return 0
	default:
		return 2
	}
}

// symbol returns the infix token for an operator kind.
func (o Op) symbol() string {
	switch o.kind {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	default:
		return "?"
	}
}

// String renders a terminal for infix printing: negative constants are
// parenthesized, variables print as "x".
func (o Op) String() string {
	switch o.class {
	case classVariable:
		return "x"
	case classNumber:
		s := strconv.FormatFloat(o.value, 'g', -1, 64)
		if o.value < 0 {
			return "(" + s + ")"
		}
		return s
	default:
		return o.symbol()
	}
}
