package main

import (
	"fmt"

	"github.com/jaeandersson/modc/internal/ast"
)

// examples hand-builds a handful of named Modelica-equivalent Collections
// directly with ast.New* constructors, the same way the teacher's
// cmd/typecheck/demo_ast.go demonstrates a pipeline ahead of a real parser
// (see SPEC_FULL.md's CLI section): the grammar/parser is an external
// collaborator out of scope for this repo, so there is no .mo text reader
// here, only pre-built example Collections exercising the same
// FindClass -> Flatten -> Generate pipeline a real parser's output would.
var exampleNames = []string{"spring-mass", "connect-demo", "for-loop-demo"}

func loadExample(name string) (*ast.Collection, *ast.ComponentRef, error) {
	switch name {
	case "spring-mass":
		return springMassExample()
	case "connect-demo":
		return connectDemoExample()
	case "for-loop-demo":
		return forLoopDemoExample()
	default:
		return nil, nil, fmt.Errorf("unknown example %q (known: %v)", name, exampleNames)
	}
}

func realSymbol(name string, prefixes ...string) *ast.Symbol {
	sym, err := ast.NewSymbol(map[string]interface{}{
		"Name":     name,
		"Type":     ast.ComponentRefFromString("Real"),
		"Prefixes": prefixes,
	})
	if err != nil {
		panic(err) // overrides are all literal and valid, see ast.NewSymbol
	}
	return sym
}

func derOf(name string) ast.Expr {
	return &ast.Expression{Operator: "der", Operands: []ast.Expr{ast.ComponentRefFromString(name)}}
}

func collectionOf(cls *ast.Class) *ast.Collection {
	f := ast.NewFile()
	f.Classes.Put(cls.Name, cls)
	return &ast.Collection{Files: []*ast.File{f}}
}

// springMassExample: der(x) = v; m*der(v) = -k*x.
func springMassExample() (*ast.Collection, *ast.ComponentRef, error) {
	cls, err := ast.NewClass(map[string]interface{}{"Name": "SpringMass", "Type": ast.ClassModel})
	if err != nil {
		return nil, nil, err
	}
	cls.Symbols.Put("m", realSymbol("m", "parameter"))
	cls.Symbols.Put("k", realSymbol("k", "parameter"))
	cls.Symbols.Put("x", realSymbol("x"))
	cls.Symbols.Put("v", realSymbol("v"))
	cls.Equations = []ast.Node{
		&ast.Equation{Left: derOf("x"), Right: ast.ComponentRefFromString("v")},
		&ast.Equation{
			Left: &ast.Expression{Operator: "*", Operands: []ast.Expr{ast.ComponentRefFromString("m"), derOf("v")}},
			Right: &ast.Expression{Operator: "-", Operands: []ast.Expr{
				&ast.Expression{Operator: "*", Operands: []ast.Expr{ast.ComponentRefFromString("k"), ast.ComponentRefFromString("x")}},
			}},
		},
	}
	return collectionOf(cls), ast.ComponentRefFromString("SpringMass"), nil
}

// connectDemoExample: two Pin-like connectors joined by a connect clause,
// §8's S3 scenario (a.p = b.p equality, a.e + b.e = 0 flow-sum).
func connectDemoExample() (*ast.Collection, *ast.ComponentRef, error) {
	pin, err := ast.NewClass(map[string]interface{}{"Name": "Pin", "Type": ast.ClassConnector})
	if err != nil {
		return nil, nil, err
	}
	pin.Symbols.Put("p", realSymbol("p"))
	flowE := realSymbol("e", "flow")
	pin.Symbols.Put("e", flowE)

	sub, err := ast.NewClass(map[string]interface{}{"Name": "Sub"})
	if err != nil {
		return nil, nil, err
	}
	extClause := &ast.ExtendsClause{Component: ast.ComponentRefFromString("Pin")}
	sub.Extends = []*ast.ExtendsClause{extClause}

	top, err := ast.NewClass(map[string]interface{}{"Name": "ConnectDemo", "Type": ast.ClassModel})
	if err != nil {
		return nil, nil, err
	}
	aSym, err := ast.NewSymbol(map[string]interface{}{"Name": "a", "Type": ast.ComponentRefFromString("Sub")})
	if err != nil {
		return nil, nil, err
	}
	bSym, err := ast.NewSymbol(map[string]interface{}{"Name": "b", "Type": ast.ComponentRefFromString("Sub")})
	if err != nil {
		return nil, nil, err
	}
	top.Symbols.Put("a", aSym)
	top.Symbols.Put("b", bSym)
	top.Equations = []ast.Node{
		&ast.ConnectClause{Left: ast.ComponentRefFromString("a"), Right: ast.ComponentRefFromString("b")},
	}

	f := ast.NewFile()
	f.Classes.Put(pin.Name, pin)
	f.Classes.Put(sub.Name, sub)
	f.Classes.Put(top.Name, top)
	return &ast.Collection{Files: []*ast.File{f}}, ast.ComponentRefFromString("ConnectDemo"), nil
}

// forLoopDemoExample: Real x[3]; for i in 1:3 loop x[i] = i*2; end for;
func forLoopDemoExample() (*ast.Collection, *ast.ComponentRef, error) {
	cls, err := ast.NewClass(map[string]interface{}{"Name": "ForLoopDemo", "Type": ast.ClassModel})
	if err != nil {
		return nil, nil, err
	}
	xSym, err := ast.NewSymbol(map[string]interface{}{
		"Name":       "x",
		"Type":       ast.ComponentRefFromString("Real"),
		"Dimensions": []ast.Expr{&ast.Primary{Value: 3}},
	})
	if err != nil {
		return nil, nil, err
	}
	cls.Symbols.Put("x", xSym)

	slice, err := ast.NewSlice(map[string]interface{}{
		"Start": &ast.Primary{Value: 1},
		"Step":  &ast.Primary{Value: 1},
		"Stop":  &ast.Primary{Value: 3},
	})
	if err != nil {
		return nil, nil, err
	}
	body := []ast.Node{
		&ast.Equation{
			Left: &ast.ComponentRef{Name: "x", Indices: []ast.Expr{ast.ComponentRefFromString("i")}},
			Right: &ast.Expression{Operator: "*", Operands: []ast.Expr{
				ast.ComponentRefFromString("i"), &ast.Primary{Value: 2},
			}},
		},
	}
	cls.Equations = []ast.Node{
		&ast.ForEquation{Indices: []*ast.ForIndex{{Name: "i", Expression: slice}}, Equations: body},
	}
	return collectionOf(cls), ast.ComponentRefFromString("ForLoopDemo"), nil
}
