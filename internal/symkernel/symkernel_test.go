package symkernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstantFoldingIsExact(t *testing.T) {
	a := NewConstInt(3)
	b := NewConstInt(4)
	sum := Add(a, b)
	n, ok := sum.ToInt()
	require.True(t, ok)
	assert.Equal(t, 7, n)
}

func TestSymbolicExpressionDoesNotFold(t *testing.T) {
	x := NewSymbol("x", 1, 1)
	expr := Add(x, NewConstInt(1))
	assert.True(t, expr.IsSymbolic())
	_, ok := expr.ToInt()
	assert.False(t, ok)
}

func TestMtimesShape(t *testing.T) {
	a := NewSymbol("a", 2, 3)
	b := NewSymbol("b", 3, 4)
	c := Mtimes(a, b)
	rows, cols := c.Size()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 4, cols)
}

func TestSubstituteRewritesSymbol(t *testing.T) {
	x := NewSymbol("x", 1, 1)
	y := NewSymbol("y", 1, 1)
	expr := Add(x, NewConstInt(1))
	out := Substitute([]*Handle{expr}, []*Handle{x}, []*Handle{y})
	require.Len(t, out, 1)
	vars := SymVar(out[0])
	require.Len(t, vars, 1)
	assert.Equal(t, "y", vars[0].Name)
}

func TestMapSerialConcatenatesPerIndexResults(t *testing.T) {
	idx := NewSymbol("i", 1, 1)
	f := NewFunction("loop_body", []*Handle{idx}, []*Handle{Mul(idx, NewConstInt(2))})
	result, err := MapSerial(f, []int{1, 2, 3})
	require.NoError(t, err)
	rows, cols := result.Size()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 1, cols)
}

func TestMapSerialEmptyRangeYieldsEmpty(t *testing.T) {
	idx := NewSymbol("i", 1, 1)
	f := NewFunction("loop_body", []*Handle{idx}, []*Handle{idx})
	result, err := MapSerial(f, nil)
	require.NoError(t, err)
	rows, cols := result.Size()
	assert.Equal(t, 0, rows)
	assert.Equal(t, 0, cols)
}

func TestElementwiseMathUnknownNameErrors(t *testing.T) {
	_, err := ElementwiseMath("frobnicate", NewSymbol("x", 1, 1))
	assert.Error(t, err)
}

func TestElementwiseMathKnownName(t *testing.T) {
	h, err := ElementwiseMath("fabs", NewSymbol("x", 2, 1))
	require.NoError(t, err)
	rows, cols := h.Size()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 1, cols)
}
