package generator

import (
	"github.com/jaeandersson/modc/internal/ast"
	"github.com/jaeandersson/modc/internal/dae"
	"github.com/jaeandersson/modc/internal/merr"
	"github.com/jaeandersson/modc/internal/symkernel"
)

// EnterClass records which top-level equation/statement nodes belong to
// the initial_equations/initial_statements lists (the walker visits both
// lists under the same Enter/ExitEquation hooks, so this is the one place
// that can tell them apart) and rejects class-level statements outside a
// function class, per §4.E's "Reject statements at class level" rule.
func (g *Generator) EnterClass(c *ast.Class) {
	if g.failed() {
		return
	}
	g.initialNodes = map[ast.Node]bool{}
	for _, n := range c.InitialEquations {
		g.initialNodes[n] = true
	}
	for _, n := range c.InitialStatements {
		g.initialNodes[n] = true
	}
	if c.Type != ast.ClassFunction && (len(c.Statements) > 0 || len(c.InitialStatements) > 0) {
		g.fail(merr.UnsupportedConstruct("statement", "statements are only permitted inside a function class"))
	}
}

func (g *Generator) pushContext(n ast.Node) {
	initial := g.initialNodes[n]
	if len(g.contextStack) > 0 && g.contextStack[len(g.contextStack)-1] {
		initial = true
	}
	g.contextStack = append(g.contextStack, initial)
}

func (g *Generator) popContext() {
	g.contextStack = g.contextStack[:len(g.contextStack)-1]
}

func (g *Generator) inInitialContext() bool {
	return len(g.contextStack) > 0 && g.contextStack[len(g.contextStack)-1]
}

// appendEquation routes a residual to g.equations or g.initialEquations
// depending on the current walk context, unless a for-loop body is
// active, in which case the residual is captured for later concretization
// (see forloop.go's ExitForEquation).
func (g *Generator) appendEquation(residual *symkernel.Handle) {
	if ctx := g.currentForLoop(); ctx != nil {
		ctx.residuals = append(ctx.residuals, residual)
		return
	}
	if g.inInitialContext() {
		g.initialEquations = append(g.initialEquations, residual)
	} else {
		g.equations = append(g.equations, residual)
	}
}

func (g *Generator) EnterEquation(eq *ast.Equation) { g.pushContext(eq) }

// ExitEquation builds the left-right residual (§4.E: "Populate
// Model.equations with left - right residuals for every non-empty
// equation"). A trivial x = y equation (both sides bare ComponentRefs)
// additionally seeds the alias relation (§4.F); the residual itself is
// still emitted, since §4.F's substitution/elimination of non-canonical
// variables and trivial residuals is an optional downstream step at Model
// assembly ("the generator MAY substitute..."), not something ExitEquation
// performs unconditionally — §8's S3 scenario expects both connect-derived
// equalities to appear as residuals.
func (g *Generator) ExitEquation(eq *ast.Equation) {
	defer g.popContext()
	if g.failed() {
		return
	}

	if lref, lok := eq.Left.(*ast.ComponentRef); lok {
		if rref, rok := eq.Right.(*ast.ComponentRef); rok && len(lref.Indices) == 0 && len(rref.Indices) == 0 {
			g.alias.Union(lref.String(), rref.String())
		}
	}

	lh, rh, err := g.lowerEquationSides(eq.Left, eq.Right)
	if err != nil {
		g.fail(err)
		return
	}
	for i := range lh {
		g.appendEquation(symkernel.Sub(lh[i], rh[i]))
	}
}

// lowerEquationSides resolves both sides of an equation, which §3 allows
// to be a single Expr or a tuple (list) for tuple-valued function calls.
// When the two sides are tuples of differing length, the longer is
// truncated to the shorter — the original's (generator.py exitEquation)
// truncation rule, carried forward per SPEC_FULL.md's supplemented
// features since spec.md is silent on the mismatch case.
func (g *Generator) lowerEquationSides(left, right interface{}) ([]*symkernel.Handle, []*symkernel.Handle, error) {
	lh := g.sideHandles(left)
	rh := g.sideHandles(right)
	n := len(lh)
	if len(rh) < n {
		n = len(rh)
	}
	return lh[:n], rh[:n], nil
}

func (g *Generator) sideHandles(side interface{}) []*symkernel.Handle {
	switch v := side.(type) {
	case ast.Expr:
		return []*symkernel.Handle{g.getSrc(v)}
	case []ast.Expr:
		out := make([]*symkernel.Handle, len(v))
		for i, e := range v {
			out[i] = g.getSrc(e)
		}
		return out
	default:
		return nil
	}
}

func (g *Generator) EnterIfEquation(ie *ast.IfEquation) { g.pushContext(ie) }

// ExitIfEquation verifies §3's invariant (equal count per branch,
// verified already by ast.NewIfEquation at construction, re-checked here
// defensively) and emits, per branch position, a right-folded ternary
// select over that position's per-branch residual — the same
// right-associated-chain technique as if-expressions (§8 property 5:
// exactly n residuals for k branches of n equations each).
func (g *Generator) ExitIfEquation(ie *ast.IfEquation) {
	defer g.popContext()
	if g.failed() {
		return
	}
	perBranch := ie.EquationsPerBranch()
	if perBranch == 0 {
		return
	}

	branches := len(ie.Conditions) + 1
	for pos := 0; pos < perBranch; pos++ {
		var residuals []*symkernel.Handle
		for b := 0; b < branches; b++ {
			eqNode := ie.Equations[b*perBranch+pos]
			eq, ok := eqNode.(*ast.Equation)
			if !ok {
				g.fail(merr.UnsupportedConstruct("if-equation", "branch entry is not a plain equation"))
				return
			}
			lh, rh, err := g.lowerEquationSides(eq.Left, eq.Right)
			if err != nil || len(lh) == 0 {
				g.fail(err)
				return
			}
			residuals = append(residuals, symkernel.Sub(lh[0], rh[0]))
		}
		chain := residuals[branches-1]
		for b := branches - 2; b >= 0; b-- {
			cond := g.getSrc(ie.Conditions[b])
			chain = symkernel.IfElse(cond, residuals[b], chain)
		}
		g.appendEquation(chain)
	}
}

func (g *Generator) EnterConnectClause(*ast.ConnectClause) {}
func (g *Generator) ExitConnectClause(*ast.ConnectClause)  {}

// ExitClass performs §4.E's class-exit partition: constant/parameter/
// input go to their own lists, remaining symbols are states (ODE state if
// der() was ever taken, else algebraic state), and outputs are any
// state/alg_state whose prefixes include "output".
func (g *Generator) ExitClass(c *ast.Class) {
	if g.failed() {
		return
	}
	if g.onClassExit == nil {
		return
	}

	model := &dae.Model{
		AliasRelation: g.alias,
		DelayedStates: g.delayedStates,
	}
	timeHandle, _ := g.resolveSymbol("time")
	model.Time = timeHandle

	declaredNames := map[string]bool{}
	for _, name := range c.Symbols.Keys() {
		declaredNames[name] = true
		sym, _ := c.Symbols.Get(name)
		h, err := g.resolveSymbol(name)
		if err != nil {
			g.fail(err)
			return
		}
		v := &dae.Variable{
			Name:     name,
			Handle:   h,
			Min:      g.getSrc(sym.Min),
			Max:      g.getSrc(sym.Max),
			Start:    g.getSrc(sym.Start),
			Nominal:  g.getSrc(sym.Nominal),
			Fixed:    g.getSrc(sym.Fixed),
			Prefixes: sym.Prefixes,
		}

		switch {
		case sym.HasPrefix("constant"):
			model.Constants = append(model.Constants, v)
		case sym.HasPrefix("parameter"):
			model.Parameters = append(model.Parameters, v)
		case sym.HasPrefix("input"):
			model.Inputs = append(model.Inputs, v)
		default:
			if _, hasDerivative := g.derivative[name]; hasDerivative {
				model.States = append(model.States, v)
				der := g.derivative[name]
				rows, cols := der.Size()
				model.DerStates = append(model.DerStates, &dae.Variable{
					Name: "der(" + name + ")", Handle: der,
					Min: emptyHandle(rows, cols), Max: emptyHandle(rows, cols),
					Start: emptyHandle(rows, cols), Nominal: emptyHandle(rows, cols),
					Fixed: emptyHandle(rows, cols),
				})
			} else {
				model.AlgStates = append(model.AlgStates, v)
			}
			if sym.HasPrefix("output") {
				model.Outputs = append(model.Outputs, v)
			}
		}
	}

	// delay(x, tau) materializes one input symbol per distinct (x, tau)
	// pair (§4.E: "introduce input symbol x_delayed_tau... register as an
	// input"), mirroring the original's self.model.inputs.append(src) in
	// backends/casadi/generator.py. These never appear in c.Symbols, so
	// they are registered from g.delayedHandles directly rather than
	// falling through to the generic AlgStates fallback below.
	for name, h := range g.delayedHandles {
		rows, cols := h.Size()
		model.Inputs = append(model.Inputs, &dae.Variable{
			Name: name, Handle: h,
			Min: emptyHandle(rows, cols), Max: emptyHandle(rows, cols),
			Start: emptyHandle(rows, cols), Nominal: emptyHandle(rows, cols),
			Fixed: emptyHandle(rows, cols),
		})
	}

	// A for-equation's body materializes one scalar symbol per concretized
	// array element (e.g. x[1], x[2], x[3] — see forloop.go), which never
	// appear in c.Symbols since flatten only expands record/array component
	// structure, not per-index scalar access. They are genuine unknowns of
	// the assembled model, so fold them in here as algebraic states.
	for name, h := range g.symbols {
		if declaredNames[name] || name == "time" {
			continue
		}
		if _, isDelayed := g.delayedHandles[name]; isDelayed {
			continue
		}
		rows, cols := h.Size()
		model.AlgStates = append(model.AlgStates, &dae.Variable{
			Name: name, Handle: h,
			Min: emptyHandle(rows, cols), Max: emptyHandle(rows, cols),
			Start: emptyHandle(rows, cols), Nominal: emptyHandle(rows, cols),
			Fixed: emptyHandle(rows, cols),
		})
	}

	model.Equations = g.equations
	model.InitialEquations = g.initialEquations
	g.onClassExit(model)
}

func emptyHandle(rows, cols int) *symkernel.Handle {
	return symkernel.Zeros(rows, cols)
}
