package generator

import (
	"github.com/jaeandersson/modc/internal/ast"
	"github.com/jaeandersson/modc/internal/merr"
	"github.com/jaeandersson/modc/internal/symkernel"
)

// resolveSymbol materializes (or returns the cached) handle for a
// top-level declared name, deriving its shape from the declaration's
// dimensions per §4.E's deferred symbol-creation rule. "time" is the one
// name with no declaration: a global scalar.
func (g *Generator) resolveSymbol(name string) (*symkernel.Handle, error) {
	if name == "time" {
		if h, ok := g.symbols["time"]; ok {
			return h, nil
		}
		h := symkernel.NewSymbol("time", 1, 1)
		g.symbols["time"] = h
		return h, nil
	}

	if h, ok := g.symbols[name]; ok {
		return h, nil
	}
	sym, ok := g.declared[name]
	if !ok {
		return nil, merr.ClassNotFound(name)
	}

	rows := 1
	if len(sym.Dimensions) >= 1 {
		n, err := g.getInteger(sym.Dimensions[0])
		if err != nil {
			return nil, err
		}
		rows = n
	}
	cols := 1
	if len(sym.Dimensions) >= 2 {
		n, err := g.getInteger(sym.Dimensions[1])
		if err != nil {
			return nil, err
		}
		cols = n
	}

	h := symkernel.NewSymbol(name, rows, cols)
	g.symbols[name] = h
	return h, nil
}

// concreteIndexedSymbol materializes (or returns the cached) scalar handle
// for a single concretized array element, e.g. "x[2]", produced while
// expanding a for-equation (§4.E). Unlike resolveSymbol, this name never
// appears in the flattened class's own declared-symbol table — flatten
// expands record/array component structure, not per-index scalar access —
// so it is synthesized directly rather than looked up.
func (g *Generator) concreteIndexedSymbol(name string) *symkernel.Handle {
	if h, ok := g.symbols[name]; ok {
		return h
	}
	h := symkernel.NewSymbol(name, 1, 1)
	g.symbols[name] = h
	return h
}

// getInteger implements §4.E's get_integer: fold an expression required to
// be an integer constant (a dimension, or a linspace/fill count). A bare
// ComponentRef folds through its declaration's literal Value. A compound
// Expression folds only when it reduces to a constant from literals alone:
// component references inside it lower to symbols and are not replaced by
// their values, and "*" lowers to an unfolded mtimes node, so either one
// yields a ShapeError.
func (g *Generator) getInteger(e ast.Expr) (int, error) {
	switch v := e.(type) {
	case *ast.Primary:
		n, ok := ast.IntLiteral(v)
		if !ok {
			return 0, merr.ShapeError("<dimension>", "literal is not an integer")
		}
		return n, nil
	case *ast.ComponentRef:
		sym, ok := g.declared[v.Name]
		if !ok {
			return 0, merr.ShapeError(v.String(), "unresolved dimension reference")
		}
		if p, ok := sym.Value.(*ast.Primary); ok {
			if n, ok := ast.IntLiteral(p); ok {
				return n, nil
			}
		}
		return 0, merr.ShapeError(v.String(), "dimension reference does not fold to a literal")
	case *ast.Expression:
		h, err := g.lowerExpr(v)
		if err != nil {
			return 0, err
		}
		n, ok := h.ToInt()
		if !ok {
			return 0, merr.ShapeError(v.OperatorName(), "expression did not fold to an integer constant")
		}
		return n, nil
	default:
		return 0, merr.ShapeError("<dimension>", "unsupported dimension expression kind")
	}
}

// lowerExpr evaluates e outside of the normal walk (used by get_integer for
// dimension expressions that are themselves compound Expressions). It performs its own mini-walk since e may not
// be part of the currently-walked tree.
func (g *Generator) lowerExpr(e ast.Expr) (*symkernel.Handle, error) {
	save := g.err
	g.err = nil
	g.w.Walk(g, e)
	h := g.src[g.w.IDFor(e)]
	err := g.err
	g.err = save
	if err != nil {
		return nil, err
	}
	return h, nil
}
