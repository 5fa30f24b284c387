package flatten

import (
	"fmt"

	"github.com/emirpasic/gods/sets/linkedhashset"

	"github.com/jaeandersson/modc/internal/ast"
	"github.com/jaeandersson/modc/internal/merr"
)

// expandComponents inlines every symbol whose type resolves to a
// user-defined (non-builtin) class: its own symbols and equations are
// cloned under the prefix "<parent_symbol_name>.", and the aggregator
// symbol itself is removed (§4.D step 3). Array-typed components with a
// literal integer dimension produce one copy per index ("name[i]."); any
// other dimension expression is treated as a single scalar instance, since
// general constant folding belongs to the generator's symbolic kernel
// (§4.E), not the flattener.
func expandComponents(coll *ast.Collection, out *ast.Class, path *linkedhashset.Set) error {
	names := append([]string{}, out.Symbols.Keys()...)
	for _, name := range names {
		sym, ok := out.Symbols.Get(name)
		if !ok {
			continue // already inlined as part of an earlier iteration
		}

		res, err := coll.FindClass(sym.Type, nil, true, false)
		if err != nil {
			if merr.IsElementaryTypeMiss(err) {
				continue
			}
			return err
		}
		if res.Class.Type == ast.ClassBuiltin {
			continue
		}

		subFlat, err := flattenClass(coll, res.Class, path)
		if err != nil {
			return err
		}

		prefixes := componentPrefixes(sym)
		for _, prefix := range prefixes {
			inlineComponent(out, subFlat, prefix)
		}
		out.Symbols.Remove(name)
	}
	return nil
}

// componentPrefixes returns one dotted prefix per array index, or a single
// bare-name prefix for a scalar component.
func componentPrefixes(sym *ast.Symbol) []string {
	if n, ok := literalDimension(sym); ok && n > 1 {
		prefixes := make([]string, n)
		for i := 1; i <= n; i++ {
			prefixes[i-1] = fmt.Sprintf("%s[%d]", sym.Name, i)
		}
		return prefixes
	}
	return []string{sym.Name}
}

// literalDimension reads a one-dimensional literal integer dimension.
// Parameter-valued or expression-valued dimensions fall back to treating
// the component as scalar (see expandComponents' doc comment).
func literalDimension(sym *ast.Symbol) (int, bool) {
	if len(sym.Dimensions) != 1 {
		return 0, false
	}
	p, ok := sym.Dimensions[0].(*ast.Primary)
	if !ok {
		return 0, false
	}
	return ast.IntLiteral(p)
}

func inlineComponent(out *ast.Class, sub *ast.Class, prefix string) {
	for _, subName := range sub.Symbols.Keys() {
		subSym, _ := sub.Symbols.Get(subName)
		clone := *subSym
		clone.Name = prefix + "." + subName
		out.Symbols.Put(clone.Name, &clone)
	}
	for _, eq := range sub.Equations {
		out.Equations = append(out.Equations, prefixEquationNode(eq, prefix))
	}
	for _, eq := range sub.InitialEquations {
		out.InitialEquations = append(out.InitialEquations, prefixEquationNode(eq, prefix))
	}
	for _, s := range sub.Statements {
		out.Statements = append(out.Statements, prefixEquationNode(s, prefix))
	}
	for _, s := range sub.InitialStatements {
		out.InitialStatements = append(out.InitialStatements, prefixEquationNode(s, prefix))
	}
}
