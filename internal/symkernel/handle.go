// Package symkernel is the in-repo stand-in for §6's "symbolic kernel
// collaborator": a minimal symbolic-expression algebra satisfying exactly
// the operations the generator needs (shape-carrying symbol creation,
// arithmetic, comparisons, matrix ops, elementwise math, conditional
// selection, concatenation, constant folding, traversal, function
// construction and serial mapping). No bit-exact kernel compatibility is
// required by §6, so this is a from-scratch design rather than a binding
// to CasADi, grounded on bfix-dynamo's Equation/expression-evaluator shape
// (a tagged node tree with an explicit operator dispatch) and using
// github.com/shopspring/decimal for exact constant folding, the same
// precision concern santoshpalla27's Terraform cost estimator uses decimal
// for: dimension arithmetic drifting by a float64 ULP must never change an
// array's shape.
package symkernel

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Handle is an immutable symbolic expression node. Composition always
// produces a new Handle; existing handles are shared by reference and
// never mutated, matching §5's "generator never mutates a handle, only
// composes new ones."
type Handle struct {
	Op    string
	Name  string // populated when Op == "sym"
	Rows  int
	Cols  int
	Args  []*Handle
	Const decimal.Decimal // populated when Op == "const"
	Fn    *Function       // populated when Op == "call"
}

// NewSymbol creates a named leaf handle with the given shape.
func NewSymbol(name string, rows, cols int) *Handle {
	if rows == 0 {
		rows = 1
	}
	if cols == 0 {
		cols = 1
	}
	return &Handle{Op: "sym", Name: name, Rows: rows, Cols: cols}
}

// NewConst wraps a literal numeric value as a 1x1 constant handle.
func NewConst(v float64) *Handle {
	return &Handle{Op: "const", Rows: 1, Cols: 1, Const: decimal.NewFromFloat(v)}
}

// NewConstInt wraps an exact integer literal, avoiding any float64 rounding.
func NewConstInt(v int) *Handle {
	return &Handle{Op: "const", Rows: 1, Cols: 1, Const: decimal.NewFromInt(int64(v))}
}

func (h *Handle) Size() (int, int) { return h.Rows, h.Cols }

// IsSymbolic reports whether h (or any of its operands, transitively)
// references a named symbol rather than being a pure constant expression.
func (h *Handle) IsSymbolic() bool {
	if h.Op == "sym" {
		return true
	}
	for _, a := range h.Args {
		if a.IsSymbolic() {
			return true
		}
	}
	return false
}

// IsConstant is the complement of IsSymbolic, per §6's is_constant.
func (h *Handle) IsConstant() bool { return !h.IsSymbolic() }

// NDep and Dep implement §6's expression-traversal operations (n_dep, dep).
func (h *Handle) NDep() int        { return len(h.Args) }
func (h *Handle) Dep(i int) *Handle { return h.Args[i] }

func binary(op string, a, b *Handle) *Handle {
	rows, cols := broadcastShape(a, b)
	return &Handle{Op: op, Rows: rows, Cols: cols, Args: []*Handle{a, b}}
}

func broadcastShape(a, b *Handle) (int, int) {
	rows, cols := a.Rows, a.Cols
	if a.Rows == 1 && a.Cols == 1 {
		rows, cols = b.Rows, b.Cols
	}
	return rows, cols
}

func Add(a, b *Handle) *Handle { return foldOrBuild("+", a, b) }
func Sub(a, b *Handle) *Handle { return foldOrBuild("-", a, b) }
func Mul(a, b *Handle) *Handle { return foldOrBuild("*", a, b) }
func Div(a, b *Handle) *Handle { return foldOrBuild("/", a, b) }
func Pow(a, b *Handle) *Handle { return foldOrBuild("^", a, b) }

// foldOrBuild constant-folds when both operands are pure constants with
// matching 1x1 shape (the only shape dimension/linspace-count arithmetic
// ever needs), otherwise builds a lazy expression node.
func foldOrBuild(op string, a, b *Handle) *Handle {
	if a.Op == "const" && b.Op == "const" && a.Rows == 1 && a.Cols == 1 && b.Rows == 1 && b.Cols == 1 {
		var result decimal.Decimal
		switch op {
		case "+":
			result = a.Const.Add(b.Const)
		case "-":
			result = a.Const.Sub(b.Const)
		case "*":
			result = a.Const.Mul(b.Const)
		case "/":
			if b.Const.IsZero() {
				return binary(op, a, b)
			}
			result = a.Const.Div(b.Const)
		case "^":
			if !b.Const.Equal(b.Const.Truncate(0)) {
				return binary(op, a, b) // non-integer exponent: leave lazy
			}
			result = a.Const.Pow(b.Const)
		default:
			return binary(op, a, b)
		}
		return &Handle{Op: "const", Rows: 1, Cols: 1, Const: result}
	}
	return binary(op, a, b)
}

// Neg is unary negation.
func Neg(a *Handle) *Handle {
	if a.Op == "const" {
		return &Handle{Op: "const", Rows: 1, Cols: 1, Const: a.Const.Neg()}
	}
	return &Handle{Op: "neg", Rows: a.Rows, Cols: a.Cols, Args: []*Handle{a}}
}

// Compare builds one of the elementwise comparison operators.
func Compare(op string, a, b *Handle) *Handle {
	switch op {
	case "<", ">", "<=", ">=", "==", "!=":
		return binary(op, a, b)
	default:
		panic(fmt.Sprintf("symkernel: unknown comparison operator %q", op))
	}
}

// Mtimes is the left-to-right matrix product of two or more operands.
func Mtimes(args ...*Handle) *Handle {
	if len(args) == 0 {
		panic("symkernel: Mtimes requires at least one operand")
	}
	acc := args[0]
	for _, next := range args[1:] {
		acc = &Handle{Op: "mtimes", Rows: acc.Rows, Cols: next.Cols, Args: []*Handle{acc, next}}
	}
	return acc
}

// Transpose swaps rows and columns.
func Transpose(a *Handle) *Handle {
	return &Handle{Op: "transpose", Rows: a.Cols, Cols: a.Rows, Args: []*Handle{a}}
}

// Sum is the column-sum (axis 1): an (r,c) handle reduces to a (1,c) one.
func Sum(a *Handle) *Handle {
	return &Handle{Op: "sum", Rows: 1, Cols: a.Cols, Args: []*Handle{a}}
}
