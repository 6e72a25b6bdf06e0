package gep

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func binaryNode(kind OpKind, left, right Op) *Node {
	n := NewNode(NewOperator(kind))
	n.add(NewNode(left))
	n.add(NewNode(right))
	return n
}

func TestEvalArithmetic(t *testing.T) {
	assert.Equal(t, 7.0, binaryNode(Add, NewNumber(3, 0, 9), NewNumber(4, 0, 9)).Eval(0))
	assert.Equal(t, -1.0, binaryNode(Sub, NewNumber(3, 0, 9), NewNumber(4, 0, 9)).Eval(0))
	assert.Equal(t, 12.0, binaryNode(Mul, NewNumber(3, 0, 9), NewNumber(4, 0, 9)).Eval(0))
	assert.Equal(t, 0.75, binaryNode(Div, NewNumber(3, 0, 9), NewNumber(4, 0, 9)).Eval(0))
}

func TestEvalVariable(t *testing.T) {
	n := binaryNode(Mul, NewVariable(0, 1), NewNumber(2, 0, 9))
	assert.Equal(t, 5.0, n.Eval(2.5))
}

func TestEvalSin(t *testing.T) {
	n := NewNode(NewOperator(Sin))
	n.add(NewNode(NewVariable(0, 1)))
	assert.InDelta(t, math.Sin(1.2), n.Eval(1.2), 1e-15)
}

func TestEvalProtectedDivision(t *testing.T) {
	assert.Equal(t, 0.0, binaryNode(Div, NewNumber(3, 0, 9), NewNumber(1e-19, 0, 1)).Eval(0))
	assert.Equal(t, 0.0, binaryNode(Div, NewNumber(3, 0, 9), NewNumber(-1e-19, -1, 0)).Eval(0))
	assert.NotEqual(t, 0.0, binaryNode(Div, NewNumber(3, 0, 9), NewNumber(1e-17, 0, 1)).Eval(0))
}

func TestEvalMissingChildrenContributeZero(t *testing.T) {
	n := NewNode(NewOperator(Add))
	n.add(NewNode(NewNumber(3, 0, 9)))
	// right child missing
	assert.Equal(t, 3.0, n.Eval(0))
}

func TestNodeString(t *testing.T) {
	n := binaryNode(Add, NewNumber(3, 0, 9), NewNumber(-4, -9, 0))
	assert.Equal(t, "(3+(-4))", n.String())

	s := NewNode(NewOperator(Sin))
	s.add(NewNode(NewVariable(0, 1)))
	assert.Equal(t, "sin(x)", s.String())

	incomplete := NewNode(NewOperator(Mul))
	incomplete.add(NewNode(NewNumber(3, 0, 9)))
	assert.Equal(t, "?", incomplete.String())

	empty := NewNode(NewOperator(Sin))
	assert.Equal(t, "sin(?)", empty.String())
}
