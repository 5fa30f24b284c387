package flatten

import "github.com/jaeandersson/modc/internal/ast"

// prefixExpr deep-copies e, prepending prefix to every ComponentRef leaf
// except the special "time" name, which is always a global reference.
func prefixExpr(e ast.Expr, prefix string) ast.Expr {
	switch v := e.(type) {
	case nil:
		return nil
	case *ast.Primary:
		return &ast.Primary{Value: v.Value}
	case *ast.ComponentRef:
		if v.Name == "time" {
			return cloneRef(v)
		}
		inner := &ast.ComponentRef{
			Name:    v.Name,
			Indices: prefixExprList(v.Indices, prefix),
			Child:   cloneChildRefs(v.Child),
		}
		return ast.ConcatenateComponentRefs(&ast.ComponentRef{Name: prefix}, inner)
	case *ast.Array:
		return &ast.Array{Values: prefixExprList(v.Values, prefix)}
	case *ast.Slice:
		return &ast.Slice{
			Start: prefixExpr(v.Start, prefix),
			Step:  prefixExpr(v.Step, prefix),
			Stop:  prefixExpr(v.Stop, prefix),
		}
	case *ast.Expression:
		return &ast.Expression{
			Operator: v.Operator, // function-name operators are global, never prefixed
			Operands: prefixExprList(v.Operands, prefix),
		}
	case *ast.IfExpression:
		return &ast.IfExpression{
			Conditions:  prefixExprList(v.Conditions, prefix),
			Expressions: prefixExprList(v.Expressions, prefix),
		}
	default:
		return e
	}
}

func prefixExprList(list []ast.Expr, prefix string) []ast.Expr {
	if list == nil {
		return nil
	}
	out := make([]ast.Expr, len(list))
	for i, e := range list {
		out[i] = prefixExpr(e, prefix)
	}
	return out
}

func cloneChildRefs(child []*ast.ComponentRef) []*ast.ComponentRef {
	if len(child) == 0 {
		return nil
	}
	c := child[0]
	return []*ast.ComponentRef{{
		Name:    c.Name,
		Indices: append([]ast.Expr(nil), c.Indices...),
		Child:   cloneChildRefs(c.Child),
	}}
}

func cloneRef(c *ast.ComponentRef) *ast.ComponentRef {
	return &ast.ComponentRef{
		Name:    c.Name,
		Indices: append([]ast.Expr(nil), c.Indices...),
		Child:   cloneChildRefs(c.Child),
	}
}

// prefixEquationNode deep-copies an equation-level node, rewriting every
// component reference inside it via prefixExpr. This is §4.D step 6
// (name-mangling) applied at the moment a sub-component's equations are
// inlined under its parent symbol's prefix.
func prefixEquationNode(n ast.Node, prefix string) ast.Node {
	switch v := n.(type) {
	case *ast.Equation:
		return &ast.Equation{
			Left:    prefixSide(v.Left, prefix),
			Right:   prefixSide(v.Right, prefix),
			Comment: v.Comment,
		}
	case *ast.IfEquation:
		eqs := make([]ast.Node, len(v.Equations))
		for i, e := range v.Equations {
			eqs[i] = prefixEquationNode(e, prefix)
		}
		return &ast.IfEquation{
			Conditions: prefixExprList(v.Conditions, prefix),
			Equations:  eqs,
			Comment:    v.Comment,
		}
	case *ast.ForEquation:
		idxs := make([]*ast.ForIndex, len(v.Indices))
		for i, idx := range v.Indices {
			idxs[i] = &ast.ForIndex{Name: idx.Name, Expression: prefixExpr(idx.Expression, prefix)}
		}
		eqs := make([]ast.Node, len(v.Equations))
		for i, e := range v.Equations {
			eqs[i] = prefixEquationNode(e, prefix)
		}
		return &ast.ForEquation{Indices: idxs, Equations: eqs, Comment: v.Comment}
	case *ast.ConnectClause:
		return &ast.ConnectClause{
			Left:    prefixExpr(v.Left, prefix).(*ast.ComponentRef),
			Right:   prefixExpr(v.Right, prefix).(*ast.ComponentRef),
			Comment: v.Comment,
		}
	case *ast.AssignmentStatement:
		left := make([]*ast.ComponentRef, len(v.Left))
		for i, l := range v.Left {
			left[i] = prefixExpr(l, prefix).(*ast.ComponentRef)
		}
		return &ast.AssignmentStatement{Left: left, Right: prefixExpr(v.Right, prefix), Comment: v.Comment}
	case *ast.IfStatement:
		stmts := make([]ast.Node, len(v.Statements))
		for i, s := range v.Statements {
			stmts[i] = prefixEquationNode(s, prefix)
		}
		return &ast.IfStatement{Conditions: prefixExprList(v.Conditions, prefix), Statements: stmts, Comment: v.Comment}
	case *ast.ForStatement:
		idxs := make([]*ast.ForIndex, len(v.Indices))
		for i, idx := range v.Indices {
			idxs[i] = &ast.ForIndex{Name: idx.Name, Expression: prefixExpr(idx.Expression, prefix)}
		}
		stmts := make([]ast.Node, len(v.Statements))
		for i, s := range v.Statements {
			stmts[i] = prefixEquationNode(s, prefix)
		}
		return &ast.ForStatement{Indices: idxs, Statements: stmts, Comment: v.Comment}
	default:
		return n
	}
}

func prefixSide(side interface{}, prefix string) interface{} {
	switch v := side.(type) {
	case ast.Expr:
		return prefixExpr(v, prefix)
	case []ast.Expr:
		return prefixExprList(v, prefix)
	default:
		return side
	}
}
