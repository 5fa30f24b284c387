// Package walker implements the generic pre/post-order AST visitor of §4.C:
// for each node kind K the walker invokes EnterK before descending into its
// children and ExitK after. Children are enumerated by the fixed per-kind
// schema in §4.C. The walker carries no state beyond the recursion stack
// and its node-identity table; listeners own any visitor-specific state (the generator's src/nodes/
// derivative tables).
package walker

import (
	"github.com/google/uuid"

	"github.com/jaeandersson/modc/internal/ast"
)

// Listener receives Enter/Exit callbacks. Listener is implemented by
// embedding BaseListener and overriding only the hooks a given pass cares
// about, following the teacher's pattern of small no-op base types that
// subclasses extend.
type Listener interface {
	EnterClass(*ast.Class)
	ExitClass(*ast.Class)
	EnterSymbol(*ast.Symbol)
	ExitSymbol(*ast.Symbol)
	EnterEquation(*ast.Equation)
	ExitEquation(*ast.Equation)
	EnterIfEquation(*ast.IfEquation)
	ExitIfEquation(*ast.IfEquation)
	EnterForEquation(*ast.ForEquation)
	ExitForEquation(*ast.ForEquation)
	EnterConnectClause(*ast.ConnectClause)
	ExitConnectClause(*ast.ConnectClause)
	EnterAssignmentStatement(*ast.AssignmentStatement)
	ExitAssignmentStatement(*ast.AssignmentStatement)
	EnterIfStatement(*ast.IfStatement)
	ExitIfStatement(*ast.IfStatement)
	EnterForStatement(*ast.ForStatement)
	ExitForStatement(*ast.ForStatement)
	EnterExpression(*ast.Expression)
	ExitExpression(*ast.Expression)
	EnterIfExpression(*ast.IfExpression)
	ExitIfExpression(*ast.IfExpression)
	EnterArray(*ast.Array)
	ExitArray(*ast.Array)
	EnterPrimary(*ast.Primary)
	ExitPrimary(*ast.Primary)
	EnterComponentRef(*ast.ComponentRef)
	ExitComponentRef(*ast.ComponentRef)
}

// BaseListener provides no-op hooks; embed it and override as needed.
type BaseListener struct{}

func (BaseListener) EnterClass(*ast.Class)                               {}
func (BaseListener) ExitClass(*ast.Class)                                 {}
func (BaseListener) EnterSymbol(*ast.Symbol)                              {}
func (BaseListener) ExitSymbol(*ast.Symbol)                               {}
func (BaseListener) EnterEquation(*ast.Equation)                         {}
func (BaseListener) ExitEquation(*ast.Equation)                          {}
func (BaseListener) EnterIfEquation(*ast.IfEquation)                     {}
func (BaseListener) ExitIfEquation(*ast.IfEquation)                      {}
func (BaseListener) EnterForEquation(*ast.ForEquation)                   {}
func (BaseListener) ExitForEquation(*ast.ForEquation)                    {}
func (BaseListener) EnterConnectClause(*ast.ConnectClause)               {}
func (BaseListener) ExitConnectClause(*ast.ConnectClause)                {}
func (BaseListener) EnterAssignmentStatement(*ast.AssignmentStatement)   {}
func (BaseListener) ExitAssignmentStatement(*ast.AssignmentStatement)    {}
func (BaseListener) EnterIfStatement(*ast.IfStatement)                   {}
func (BaseListener) ExitIfStatement(*ast.IfStatement)                    {}
func (BaseListener) EnterForStatement(*ast.ForStatement)                 {}
func (BaseListener) ExitForStatement(*ast.ForStatement)                  {}
func (BaseListener) EnterExpression(*ast.Expression)                     {}
func (BaseListener) ExitExpression(*ast.Expression)                      {}
func (BaseListener) EnterIfExpression(*ast.IfExpression)                 {}
func (BaseListener) ExitIfExpression(*ast.IfExpression)                  {}
func (BaseListener) EnterArray(*ast.Array)                               {}
func (BaseListener) ExitArray(*ast.Array)                                {}
func (BaseListener) EnterPrimary(*ast.Primary)                           {}
func (BaseListener) ExitPrimary(*ast.Primary)                            {}
func (BaseListener) EnterComponentRef(*ast.ComponentRef)                 {}
func (BaseListener) ExitComponentRef(*ast.ComponentRef)                  {}

// Walker drives a single tree walk. It carries no state of its own beyond
// the node-identity table (§9: side tables keyed by node identity, not
// pointer or hash) and assigns each node a uuid.UUID the first time it is
// visited.
type Walker struct {
	ids map[ast.Node]uuid.UUID
}

func New() *Walker {
	return &Walker{ids: map[ast.Node]uuid.UUID{}}
}

// IDFor returns the stable identity assigned to node on first visit.
func (w *Walker) IDFor(node ast.Node) uuid.UUID {
	if id, ok := w.ids[node]; ok {
		return id
	}
	id := uuid.New()
	w.ids[node] = id
	return id
}

// Walk dispatches node to its Enter/Exit hooks and recurses into its
// children per the §4.C schema.
func (w *Walker) Walk(l Listener, node ast.Node) {
	if node == nil {
		return
	}
	w.IDFor(node)

	switch n := node.(type) {
	case *ast.Class:
		l.EnterClass(n)
		for _, imp := range n.Imports {
			w.Walk(l, imp)
		}
		for _, ext := range n.Extends {
			w.walkExtends(l, ext)
		}
		for _, c := range n.Classes.Values() {
			w.Walk(l, c)
		}
		for _, s := range n.Symbols.Values() {
			w.Walk(l, s)
		}
		for _, e := range n.InitialEquations {
			w.Walk(l, e)
		}
		for _, e := range n.Equations {
			w.Walk(l, e)
		}
		for _, s := range n.InitialStatements {
			w.Walk(l, s)
		}
		for _, s := range n.Statements {
			w.Walk(l, s)
		}
		l.ExitClass(n)

	case *ast.Symbol:
		l.EnterSymbol(n)
		for _, d := range n.Dimensions {
			w.Walk(l, d)
		}
		w.walkExprField(l, n.Start)
		w.walkExprField(l, n.Min)
		w.walkExprField(l, n.Max)
		w.walkExprField(l, n.Nominal)
		w.walkExprField(l, n.Value)
		w.walkExprField(l, n.Fixed)
		l.ExitSymbol(n)

	case *ast.Equation:
		l.EnterEquation(n)
		w.walkEitherSide(l, n.Left)
		w.walkEitherSide(l, n.Right)
		l.ExitEquation(n)

	case *ast.IfEquation:
		l.EnterIfEquation(n)
		for _, c := range n.Conditions {
			w.Walk(l, c)
		}
		for _, e := range n.Equations {
			w.Walk(l, e)
		}
		l.ExitIfEquation(n)

	case *ast.ForEquation:
		l.EnterForEquation(n)
		for _, idx := range n.Indices {
			w.Walk(l, idx.Expression)
		}
		for _, e := range n.Equations {
			w.Walk(l, e)
		}
		l.ExitForEquation(n)

	case *ast.ConnectClause:
		l.EnterConnectClause(n)
		w.Walk(l, n.Left)
		w.Walk(l, n.Right)
		l.ExitConnectClause(n)

	case *ast.AssignmentStatement:
		l.EnterAssignmentStatement(n)
		for _, c := range n.Left {
			w.Walk(l, c)
		}
		w.Walk(l, n.Right)
		l.ExitAssignmentStatement(n)

	case *ast.IfStatement:
		l.EnterIfStatement(n)
		for _, c := range n.Conditions {
			w.Walk(l, c)
		}
		for _, s := range n.Statements {
			w.Walk(l, s)
		}
		l.ExitIfStatement(n)

	case *ast.ForStatement:
		l.EnterForStatement(n)
		for _, idx := range n.Indices {
			w.Walk(l, idx.Expression)
		}
		for _, s := range n.Statements {
			w.Walk(l, s)
		}
		l.ExitForStatement(n)

	case *ast.Expression:
		l.EnterExpression(n)
		for _, o := range n.Operands {
			w.Walk(l, o)
		}
		l.ExitExpression(n)

	case *ast.IfExpression:
		l.EnterIfExpression(n)
		for _, c := range n.Conditions {
			w.Walk(l, c)
		}
		for _, e := range n.Expressions {
			w.Walk(l, e)
		}
		l.ExitIfExpression(n)

	case *ast.Array:
		l.EnterArray(n)
		for _, v := range n.Values {
			w.Walk(l, v)
		}
		l.ExitArray(n)

	case *ast.Primary:
		l.EnterPrimary(n)
		l.ExitPrimary(n)

	case *ast.ComponentRef:
		l.EnterComponentRef(n)
		for _, idx := range n.Indices {
			w.Walk(l, idx)
		}
		l.ExitComponentRef(n)

	case *ast.Slice:
		w.Walk(l, n.Start)
		w.Walk(l, n.Step)
		w.Walk(l, n.Stop)

	case *ast.ImportAsClause, *ast.ImportFromClause:
		// Leaves: no children to recurse into.
	}
}

func (w *Walker) walkExprField(l Listener, e ast.Expr) {
	if e == nil {
		return
	}
	w.Walk(l, e)
}

func (w *Walker) walkEitherSide(l Listener, side interface{}) {
	switch v := side.(type) {
	case nil:
		return
	case ast.Expr:
		w.Walk(l, v)
	case []ast.Expr:
		for _, e := range v {
			w.Walk(l, e)
		}
	}
}

func (w *Walker) walkExtends(l Listener, ext *ast.ExtendsClause) {
	// ExtendsClause itself carries no Enter/Exit hook in §4.C's schema; it
	// contributes its component ref for completeness of traversal only.
	if ext.Component != nil {
		w.Walk(l, ext.Component)
	}
}
