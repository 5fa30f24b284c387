package flatten

import (
	"github.com/jaeandersson/modc/internal/ast"
	"github.com/jaeandersson/modc/internal/merr"
)

// attributeKeywords are the Symbol fields a class modification can target
// directly, per §4.D step 4 ("start, min, max, …").
var attributeKeywords = map[string]bool{
	"start": true, "min": true, "max": true, "nominal": true,
	"value": true, "fixed": true,
}

func setAttribute(sym *ast.Symbol, name string, val ast.Expr) {
	switch name {
	case "start":
		sym.Start = val
	case "min":
		sym.Min = val
	case "max":
		sym.Max = val
	case "nominal":
		sym.Nominal = val
	case "value":
		sym.Value = val
	case "fixed":
		sym.Fixed = val
	}
}

// applyModification applies a symbol's own inline class_modification
// (e.g. "Real x(start = 1, min = 0);") onto that symbol.
func applyModification(sym *ast.Symbol, mod *ast.ClassModification) error {
	for _, arg := range mod.Arguments {
		em, ok := arg.(*ast.ElementModification)
		if !ok {
			return merr.UnsupportedConstruct(sym.Name, "non-element-modification class modification argument")
		}
		name := em.Component.Name
		if !attributeKeywords[name] || len(em.Component.Child) > 0 {
			return merr.ModifierTargetNotFound(sym.Name + "." + name)
		}
		if len(em.Modifications) != 1 {
			return merr.ModifierTargetNotFound(sym.Name + "." + name)
		}
		val, ok := em.Modifications[0].(ast.Expr)
		if !ok {
			return merr.ModifierTargetNotFound(sym.Name + "." + name)
		}
		setAttribute(sym, name, val)
	}
	return nil
}

// applyModificationToClass applies an extends clause's class_modification,
// which targets inherited symbols by name (e.g. "extends Base(x(start=2),
// y=3)"), walking each ElementModification's component down into the
// flattened base's namespace.
func applyModificationToClass(cls *ast.Class, mod *ast.ClassModification) error {
	for _, arg := range mod.Arguments {
		em, ok := arg.(*ast.ElementModification)
		if !ok {
			return merr.UnsupportedConstruct(cls.Name, "non-element-modification class modification argument")
		}
		name := em.Component.Name
		sym, found := cls.Symbols.Get(name)
		if !found {
			return merr.ModifierTargetNotFound(cls.Name + "." + name)
		}
		if len(em.Component.Child) > 0 {
			return merr.ModifierTargetNotFound(cls.Name + "." + name)
		}
		if len(em.Modifications) != 1 {
			return merr.ModifierTargetNotFound(cls.Name + "." + name)
		}
		switch m := em.Modifications[0].(type) {
		case *ast.ClassModification:
			if err := applyModification(sym, m); err != nil {
				return err
			}
		case ast.Expr:
			sym.Value = m
		default:
			return merr.ModifierTargetNotFound(cls.Name + "." + name)
		}
	}
	return nil
}
