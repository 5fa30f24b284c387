package generator

import (
	"fmt"

	"github.com/jaeandersson/modc/internal/ast"
	"github.com/jaeandersson/modc/internal/dae"
	"github.com/jaeandersson/modc/internal/merr"
	"github.com/jaeandersson/modc/internal/symkernel"
)

func (g *Generator) setSrc(n ast.Node, h *symkernel.Handle) {
	g.src[g.w.IDFor(n)] = h
}

func (g *Generator) getSrc(n ast.Node) *symkernel.Handle {
	return g.src[g.w.IDFor(n)]
}

func (g *Generator) ExitPrimary(p *ast.Primary) {
	if g.failed() {
		return
	}
	switch v := p.Value.(type) {
	case int:
		g.setSrc(p, symkernel.NewConstInt(v))
	case float64:
		g.setSrc(p, symkernel.NewConst(v))
	case bool:
		if v {
			g.setSrc(p, symkernel.NewConstInt(1))
		} else {
			g.setSrc(p, symkernel.NewConstInt(0))
		}
	case string:
		g.setSrc(p, symkernel.NewConstInt(0)) // strings carry no numeric DAE meaning; see §1 non-goals
	default:
		g.setSrc(p, symkernel.NewConstInt(0))
	}
}

func (g *Generator) ExitComponentRef(ref *ast.ComponentRef) {
	if g.failed() {
		return
	}

	if ctx := g.currentForLoop(); ctx != nil {
		if len(ref.Indices) > 0 {
			h, ok := ctx.indexed[ref.Name]
			if !ok {
				h = symkernel.NewSymbol(ref.Name+"[*]", 1, 1)
				ctx.indexed[ref.Name] = h
			}
			g.setSrc(ref, h)
			return
		}
		if ref.Name == ctx.indexName {
			g.setSrc(ref, ctx.idxHandle)
			return
		}
	}

	h, err := g.resolveSymbol(ref.Name)
	if err != nil {
		g.fail(err)
		return
	}
	g.setSrc(ref, h)
}

func (g *Generator) ExitArray(a *ast.Array) {
	if g.failed() {
		return
	}
	vals := make([]*symkernel.Handle, len(a.Values))
	for i, v := range a.Values {
		vals[i] = g.getSrc(v)
	}
	g.setSrc(a, symkernel.Vertcat(vals...))
}

func (g *Generator) ExitExpression(e *ast.Expression) {
	if g.failed() {
		return
	}
	opName := e.OperatorName()
	operands := make([]*symkernel.Handle, len(e.Operands))
	for i, o := range e.Operands {
		operands[i] = g.getSrc(o)
	}

	h, err := g.dispatchOperator(e, opName, operands)
	if err != nil {
		g.fail(err)
		return
	}
	g.setSrc(e, h)
}

// dispatchOperator is §4.E's operator table. Arithmetic maps to
// element-wise ops except "*", which becomes mtimes (Modelica's ".*" is
// the elementwise form and is out of scope per spec.md's Non-goals on
// general array-expression arithmetic). der/mtimes/transpose/sum/
// linspace/fill/zeros/ones/identity/diagonal/delay are special forms;
// anything else registered in the elementwise-math table is dispatched
// there; anything else still is resolved as a user function call.
func (g *Generator) dispatchOperator(e *ast.Expression, opName string, operands []*symkernel.Handle) (*symkernel.Handle, error) {
	switch opName {
	case "+":
		return foldNAry(symkernel.Add, operands), nil
	case "-":
		if len(operands) == 1 {
			return symkernel.Neg(operands[0]), nil
		}
		return foldNAry(symkernel.Sub, operands), nil
	case "*":
		return symkernel.Mtimes(operands...), nil
	case "/":
		return symkernel.Div(operands[0], operands[1]), nil
	case "^":
		return symkernel.Pow(operands[0], operands[1]), nil
	case "<", ">", "<=", ">=", "==", "!=":
		return symkernel.Compare(opName, operands[0], operands[1]), nil
	case "min":
		return symkernel.ElementwiseMath("fmin", operands...)
	case "max":
		return symkernel.ElementwiseMath("fmax", operands...)
	case "abs":
		return symkernel.ElementwiseMath("fabs", operands...)
	case "der":
		return g.derivativeOf(e.Operands[0], operands[0])
	case "mtimes":
		return symkernel.Mtimes(operands...), nil
	case "transpose":
		return symkernel.Transpose(operands[0]), nil
	case "sum":
		return symkernel.Sum(operands[0]), nil
	case "linspace":
		n, err := g.getInteger(e.Operands[2])
		if err != nil {
			return nil, err
		}
		return symkernel.Linspace(operands[0], operands[1], n), nil
	case "fill":
		return g.constShapeBuiltin(e, operands, func(rows, cols int) *symkernel.Handle {
			return symkernel.Fill(operands[0], rows, cols)
		}, 1)
	case "zeros":
		return g.constShapeBuiltin(e, operands, symkernel.Zeros, 0)
	case "ones":
		return g.constShapeBuiltin(e, operands, symkernel.Ones, 0)
	case "identity":
		n, err := g.getInteger(e.Operands[0])
		if err != nil {
			return nil, err
		}
		return symkernel.Eye(n), nil
	case "diagonal":
		return symkernel.Diagonal(operands[0]), nil
	case "delay":
		return g.delayOf(e, operands)
	default:
		if symkernel.IsElementwiseMath(opName) {
			return symkernel.ElementwiseMath(opName, operands...)
		}
		return g.inlineFunctionCall(opName, e, operands)
	}
}

func foldNAry(op func(a, b *symkernel.Handle) *symkernel.Handle, operands []*symkernel.Handle) *symkernel.Handle {
	acc := operands[0]
	for _, o := range operands[1:] {
		acc = op(acc, o)
	}
	return acc
}

// constShapeBuiltin evaluates fill/zeros/ones' trailing dimension
// arguments (skipping the leading value argument when present) via
// get_integer and builds the constant-shape handle.
func (g *Generator) constShapeBuiltin(e *ast.Expression, operands []*symkernel.Handle, build func(rows, cols int) *symkernel.Handle, skip int) (*symkernel.Handle, error) {
	dimArgs := e.Operands[skip:]
	rows, err := g.getInteger(dimArgs[0])
	if err != nil {
		return nil, err
	}
	cols := 1
	if len(dimArgs) > 1 {
		cols, err = g.getInteger(dimArgs[1])
		if err != nil {
			return nil, err
		}
	}
	return build(rows, cols), nil
}

func (g *Generator) derivativeOf(arg ast.Expr, h *symkernel.Handle) (*symkernel.Handle, error) {
	ref, ok := arg.(*ast.ComponentRef)
	if !ok {
		return nil, merr.UnsupportedConstruct("der(...)", "argument is not a simple component reference")
	}
	if d, ok := g.derivative[ref.Name]; ok {
		return d, nil
	}
	rows, cols := h.Size()
	d := symkernel.NewSymbol("der("+ref.Name+")", rows, cols)
	g.derivative[ref.Name] = d
	return d, nil
}

// delayOf implements §4.E's delay(x, tau): only a symbolic leaf argument
// is supported; anything else is NotImplemented (merr.UnsupportedConstruct).
func (g *Generator) delayOf(e *ast.Expression, operands []*symkernel.Handle) (*symkernel.Handle, error) {
	ref, ok := e.Operands[0].(*ast.ComponentRef)
	if !ok {
		return nil, merr.UnsupportedConstruct("delay(...)", "non-leaf delay argument")
	}
	tau, ok := operands[1].AsDecimal()
	if !ok {
		return nil, merr.ShapeError("delay(...)", "delay time did not fold to a constant")
	}
	name := fmt.Sprintf("%s_delayed_%s", ref.Name, tau.String())
	if h, ok := g.delayedHandles[name]; ok {
		return h, nil
	}
	rows, cols := operands[0].Size()
	h := symkernel.NewSymbol(name, rows, cols)
	g.delayedHandles[name] = h
	g.delayedStates = append(g.delayedStates, &dae.DelayedState{
		Name:       name,
		OriginName: ref.Name,
		DelayTime:  operands[1],
	})
	return h, nil
}

func (g *Generator) ExitIfExpression(ie *ast.IfExpression) {
	if g.failed() {
		return
	}
	n := len(ie.Conditions)
	chain := g.getSrc(ie.Expressions[n])
	for i := n - 1; i >= 0; i-- {
		cond := g.getSrc(ie.Conditions[i])
		then := g.getSrc(ie.Expressions[i])
		chain = symkernel.IfElse(cond, then, chain)
	}
	g.setSrc(ie, chain)
}
