package flatten

import (
	"github.com/emirpasic/gods/sets/linkedhashset"

	"github.com/jaeandersson/modc/internal/ast"
	"github.com/jaeandersson/modc/internal/merr"
)

// resolveConnects rewrites every *ast.ConnectClause in out.Equations into
// the equality/sum-to-zero equations Modelica semantics assigns a connect,
// per §4.D step 5 and the GLOSSARY's connector definition: potential
// ("across", non-flow) variables are equated, flow variables sum to zero
// at the node.
func resolveConnects(coll *ast.Collection, out *ast.Class) error {
	rewritten := make([]ast.Node, 0, len(out.Equations))
	for _, eq := range out.Equations {
		cc, ok := eq.(*ast.ConnectClause)
		if !ok {
			rewritten = append(rewritten, eq)
			continue
		}
		eqs, err := connectEquations(coll, out, cc)
		if err != nil {
			return err
		}
		rewritten = append(rewritten, eqs...)
	}
	out.Equations = rewritten
	return nil
}

func connectEquations(coll *ast.Collection, out *ast.Class, cc *ast.ConnectClause) ([]ast.Node, error) {
	leftSym, ok := out.Symbols.Get(cc.Left.Name)
	if !ok {
		return nil, merr.ClassNotFound(cc.Left.String())
	}
	rightSym, ok := out.Symbols.Get(cc.Right.Name)
	if !ok {
		return nil, merr.ClassNotFound(cc.Right.String())
	}

	leftRes, err := coll.FindClass(leftSym.Type, nil, true, false)
	if err != nil {
		return nil, err
	}
	rightRes, err := coll.FindClass(rightSym.Type, nil, true, false)
	if err != nil {
		return nil, err
	}
	// Flatten both connector types so fields inherited via extends count.
	leftCls, err := flattenClass(coll, leftRes.Class, linkedhashset.New())
	if err != nil {
		return nil, err
	}
	rightCls, err := flattenClass(coll, rightRes.Class, linkedhashset.New())
	if err != nil {
		return nil, err
	}

	var eqs []ast.Node
	for _, field := range leftCls.Symbols.Keys() {
		fsym, _ := leftCls.Symbols.Get(field)
		if _, ok := rightCls.Symbols.Get(field); !ok {
			return nil, merr.ModifierTargetNotFound(cc.Right.String() + "." + field)
		}

		lref := ast.ComponentRefFromString(cc.Left.Name + "." + field)
		rref := ast.ComponentRefFromString(cc.Right.Name + "." + field)

		if fsym.HasPrefix("flow") {
			sum := &ast.Expression{Operator: "+", Operands: []ast.Expr{lref, rref}}
			eqs = append(eqs, &ast.Equation{Left: sum, Right: &ast.Primary{Value: 0}})
		} else {
			eqs = append(eqs, &ast.Equation{Left: lref, Right: rref})
		}
	}
	return eqs, nil
}
