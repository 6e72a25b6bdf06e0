package gep

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArity(t *testing.T) {
	tests := []struct {
		name string
		op   Op
		want int
	}{
		{"add", NewOperator(Add), 2},
		{"sub", NewOperator(Sub), 2},
		{"mul", NewOperator(Mul), 2},
		{"div", NewOperator(Div), 2},
		{"sin", NewOperator(Sin), 1},
		{"end", NewOperator(End), 0},
		{"number", NewNumber(1.5, 0, 2), 0},
		{"variable", NewVariable(0, 2), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.op.Arity())
		})
	}
}

func TestLikePreservesStructureAndResetsSide(t *testing.T) {
	ds := DefaultDataset()

	// Decode a tree so the children carry side marks.
	genes := []Op{
		NewOperator(Add), NewOperator(End), NewOperator(Mul),
		NewNumber(3, 1, 4), NewNumber(4, 1, 4), NewNumber(5, 1, 4), NewNumber(6, 1, 4), NewNumber(7, 1, 4),
	}
	c, err := NewChromosomeFromGenes(ds, genes)
	require.NoError(t, err)
	tree, err := c.BuildTree()
	require.NoError(t, err)
	child := tree.Children()[1]
	require.Equal(t, SideRight, child.Op().Side())

	dup := Like(child.Op())
	assert.Equal(t, SideUnset, dup.Side())
	assert.Equal(t, child.Op().Value(), dup.Value())
	assert.Equal(t, child.Op().Min(), dup.Min())
	assert.Equal(t, child.Op().Max(), dup.Max())

	op := NewOperator(Sin)
	assert.Equal(t, Sin, Like(op).Kind())
	assert.True(t, Like(op).IsOperator())
}

func TestRandomOperatorCoversAllKinds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	seen := make(map[OpKind]bool)
	for i := 0; i < 1000; i++ {
		op := RandomOperator(rng)
		require.True(t, op.IsOperator())
		require.GreaterOrEqual(t, int(op.Kind()), int(Add))
		require.LessOrEqual(t, int(op.Kind()), int(End))
		seen[op.Kind()] = true
	}
	assert.Len(t, seen, numOpKinds)
}

func TestRandomTerminal(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var numbers, variables int
	for i := 0; i < 1000; i++ {
		op := RandomTerminal(rng, 1.0, 4.0)
		require.True(t, op.IsTerminal())
		assert.Equal(t, 1.0, op.Min())
		assert.Equal(t, 4.0, op.Max())
		if op.IsNumber() {
			numbers++
			require.GreaterOrEqual(t, op.Value(), 1.0)
			require.LessOrEqual(t, op.Value(), 4.0)
		} else {
			variables++
		}
	}
	// Both kinds must show up; the split is a fair coin.
	assert.Greater(t, numbers, 300)
	assert.Greater(t, variables, 300)
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "x", NewVariable(0, 1).String())
	assert.Equal(t, "2.5", NewNumber(2.5, 0, 3).String())
	assert.Equal(t, "(-2.5)", NewNumber(-2.5, -3, 0).String())
}
