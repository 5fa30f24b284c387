// Package flatten implements §4.D: inheritance expansion, class
// modification application, connect-graph resolution and namespace
// prefixing, rewriting a hierarchical Collection into a single
// self-contained Class.
package flatten

import (
	"fmt"

	"github.com/emirpasic/gods/sets/linkedhashset"

	"github.com/jaeandersson/modc/internal/ast"
	"github.com/jaeandersson/modc/internal/merr"
)

// Flatten resolves target within coll and produces a Collection containing
// a single flattened Class, per §4.D's numbered steps. Each class is
// processed in a fixed order: extends inlining, then modifier application,
// then connect resolution, then component expansion; name-mangling has no
// separate final pass, since component refs are prefixed as each
// component's equations are inlined.
func Flatten(coll *ast.Collection, target *ast.ComponentRef) (*ast.Collection, error) {
	res, err := coll.FindClass(target, nil, false, false)
	if err != nil {
		return nil, err
	}

	fc, err := flattenClass(coll, res.Class, linkedhashset.New())
	if err != nil {
		return nil, err
	}
	fc.Name = res.Class.Name

	f := ast.NewFile()
	f.Classes.Put(fc.Name, fc)
	return &ast.Collection{Files: []*ast.File{f}}, nil
}

// classIdentity is a stable, comparable key for cycle detection along the
// current extends/component-expansion recursion path. Classes are value
// trees without their own identity field, so the pointer address (the
// instance the Collection actually holds) stands in for node identity
// here, same as §9's guidance to key by identity rather than by content.
func classIdentity(c *ast.Class) string {
	return fmt.Sprintf("%p:%s", c, c.Name)
}

// flattenClass produces a class with no extends and no nested classes: all
// inherited members merged in (inherited-before-local, so locals override),
// all user-typed components inlined under a dotted prefix, and all class
// modifications applied.
func flattenClass(coll *ast.Collection, cls *ast.Class, path *linkedhashset.Set) (*ast.Class, error) {
	key := classIdentity(cls)
	if path.Contains(key) {
		return nil, merr.CyclicInheritance(cls.Name)
	}
	path.Add(key)
	defer path.Remove(key)

	out, err := ast.NewClass(map[string]interface{}{
		"Name": cls.Name,
		"Type": cls.Type,
	})
	if err != nil {
		return nil, err
	}

	// 2. Extends inlining, in declaration order: inherited members are
	// merged before locals so that locally-declared members of the same
	// name take priority.
	for _, ext := range cls.Extends {
		if err := inlineExtends(coll, out, ext, path); err != nil {
			return nil, err
		}
	}

	// Locals: symbols and equations declared directly on cls override any
	// same-named inherited member and are appended after inherited content.
	for _, name := range cls.Symbols.Keys() {
		sym, _ := cls.Symbols.Get(name)
		out.Symbols.Put(name, sym)
	}
	out.Equations = append(out.Equations, cls.Equations...)
	out.InitialEquations = append(out.InitialEquations, cls.InitialEquations...)
	out.Statements = append(out.Statements, cls.Statements...)
	out.InitialStatements = append(out.InitialStatements, cls.InitialStatements...)

	// 4. Modifier application on each symbol's own class_modification
	// (e.g. "Real x(start=1)" parsed straight onto the Symbol).
	for _, name := range out.Symbols.Keys() {
		sym, _ := out.Symbols.Get(name)
		if sym.ClassModification != nil {
			if err := applyModification(sym, sym.ClassModification); err != nil {
				return nil, err
			}
		}
	}

	// 5. Connect-clause resolution. Done ahead of component expansion in
	// this implementation: a connect() argument's flow/non-flow structure
	// is read off the connector's *declared* type, which is simplest to
	// query before that same component gets inlined away. The emitted
	// equations reference dotted paths ("a.e", "a.p", ...) that component
	// expansion below materializes into real flattened symbol names, so
	// the observable result matches §4.D's step order.
	if err := resolveConnects(coll, out); err != nil {
		return nil, err
	}

	// 3. Component expansion: inline every symbol whose type resolves to a
	// user-defined (non-builtin) class.
	if err := expandComponents(coll, out, path); err != nil {
		return nil, err
	}

	return out, nil
}

// inlineExtends resolves ext's base class, flattens it, applies ext's own
// class_modification to the inherited symbols, then merges inherited
// members before out's existing (so-far-local) content.
func inlineExtends(coll *ast.Collection, out *ast.Class, ext *ast.ExtendsClause, path *linkedhashset.Set) error {
	res, err := coll.FindClass(ext.Component, nil, true, false)
	if err != nil {
		if merr.IsElementaryTypeMiss(err) {
			return nil
		}
		return err
	}

	base, err := flattenClass(coll, res.Class, path)
	if err != nil {
		return err
	}

	if ext.ClassModification != nil {
		if err := applyModificationToClass(base, ext.ClassModification); err != nil {
			return err
		}
	}

	// Merge: inherited symbols/equations come first. Visibility is
	// intersected: a public extends of a protected base stays protected.
	prevSymbols := snapshotSymbols(out)

	merged, err := ast.NewClass(map[string]interface{}{"Name": out.Name, "Type": out.Type})
	if err != nil {
		return err
	}
	for _, name := range base.Symbols.Keys() {
		sym, _ := base.Symbols.Get(name)
		intersected := *sym
		if ext.Visibility < sym.Visibility {
			intersected.Visibility = ext.Visibility
		}
		merged.Symbols.Put(name, &intersected)
	}
	for _, name := range prevSymbols {
		sym, _ := out.Symbols.Get(name)
		merged.Symbols.Put(name, sym)
	}
	merged.Equations = append(append([]ast.Node{}, base.Equations...), out.Equations...)
	merged.InitialEquations = append(append([]ast.Node{}, base.InitialEquations...), out.InitialEquations...)
	merged.Statements = append(append([]ast.Node{}, base.Statements...), out.Statements...)
	merged.InitialStatements = append(append([]ast.Node{}, base.InitialStatements...), out.InitialStatements...)

	out.Symbols = merged.Symbols
	out.Equations = merged.Equations
	out.InitialEquations = merged.InitialEquations
	out.Statements = merged.Statements
	out.InitialStatements = merged.InitialStatements
	return nil
}

func snapshotSymbols(c *ast.Class) []string {
	return append([]string{}, c.Symbols.Keys()...)
}
