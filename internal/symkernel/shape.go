package symkernel

import "github.com/shopspring/decimal"

// Linspace builds the n-point linear span from a to b (§4.E), as a 1xn
// handle. a and b may themselves be symbolic; n must already have been
// integer-evaluated by the caller via ToInt/GetInteger.
func Linspace(a, b *Handle, n int) *Handle {
	return &Handle{Op: "linspace", Rows: 1, Cols: n, Args: []*Handle{a, b, NewConstInt(n)}}
}

// Zeros, Ones and Eye are the dense constant-shape constructors of §6.
func Zeros(rows, cols int) *Handle {
	return &Handle{Op: "zeros", Rows: rows, Cols: cols}
}

func Ones(rows, cols int) *Handle {
	return &Handle{Op: "ones", Rows: rows, Cols: cols}
}

func Eye(n int) *Handle {
	return &Handle{Op: "eye", Rows: n, Cols: n}
}

// Fill broadcasts a scalar value v to an (rows, cols) constant handle.
func Fill(v *Handle, rows, cols int) *Handle {
	return &Handle{Op: "fill", Rows: rows, Cols: cols, Args: []*Handle{v}}
}

// Diagonal builds the sparse triplet representation of §6 ("sparse
// triplet for diagonal"): an nxn handle whose only nonzero entries are
// v's elements along the main diagonal.
func Diagonal(v *Handle) *Handle {
	n := v.Rows * v.Cols
	return &Handle{Op: "diag", Rows: n, Cols: n, Args: []*Handle{v}}
}

// Vertcat and Horzcat are the vertical/horizontal concatenation primitives
// of §6.
func Vertcat(args ...*Handle) *Handle {
	rows, cols := 0, 0
	for i, a := range args {
		rows += a.Rows
		if i == 0 {
			cols = a.Cols
		}
	}
	return &Handle{Op: "vertcat", Rows: rows, Cols: cols, Args: args}
}

func Horzcat(args ...*Handle) *Handle {
	rows, cols := 0, 0
	for i, a := range args {
		cols += a.Cols
		if i == 0 {
			rows = a.Rows
		}
	}
	return &Handle{Op: "horzcat", Rows: rows, Cols: cols, Args: args}
}

// IfElse is the conditional-selection primitive §4.E's if-expression
// lowering chains right-associatively.
func IfElse(cond, then, els *Handle) *Handle {
	rows, cols := broadcastShape(then, els)
	return &Handle{Op: "if_else", Rows: rows, Cols: cols, Args: []*Handle{cond, then, els}}
}

// ToInt implements §6's "constant evaluation ... convert to int": it
// succeeds only for a pure-constant, 1x1, integer-valued handle, using
// decimal arithmetic so that fractional drift never silently truncates.
func (h *Handle) ToInt() (int, bool) {
	if h.Op != "const" || h.Rows != 1 || h.Cols != 1 {
		return 0, false
	}
	if !h.Const.Equal(h.Const.Truncate(0)) {
		return 0, false
	}
	return int(h.Const.IntPart()), true
}

// AsDecimal exposes the exact constant value, when h is a pure 1x1 constant.
func (h *Handle) AsDecimal() (decimal.Decimal, bool) {
	if h.Op != "const" || h.Rows != 1 || h.Cols != 1 {
		return decimal.Zero, false
	}
	return h.Const, true
}
