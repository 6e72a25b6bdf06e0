package gep

import "errors"

// Error taxonomy. All of these flag programmer errors: they abort the
// current run and are reported at the driver boundary.
var (
	// ErrConfiguration marks invalid run parameters: chromosome
	// length below 8, keep above the population size, fewer than one
	// island, or a crossover between chromosomes of different length.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrDecoding marks a decoder that ran off the end of a genome.
	// Impossible for chromosomes that satisfy the head/tail invariant.
	ErrDecoding = errors.New("chromosome decoding failed")

	// ErrOutOfRange marks a gene or population slot access outside
	// the owning array.
	ErrOutOfRange = errors.New("offset out of range")
)
