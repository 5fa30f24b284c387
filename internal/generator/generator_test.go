package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaeandersson/modc/internal/ast"
)

func realSym(t *testing.T, name string, prefixes ...string) *ast.Symbol {
	t.Helper()
	sym, err := ast.NewSymbol(map[string]interface{}{
		"Name":     name,
		"Type":     ast.ComponentRefFromString("Real"),
		"Prefixes": prefixes,
	})
	require.NoError(t, err)
	return sym
}

func der(name string) ast.Expr {
	return &ast.Expression{Operator: "der", Operands: []ast.Expr{ast.ComponentRefFromString(name)}}
}

// S1 Spring-mass: der(x) = v; m*der(v) = -k*x.
func TestGenerateSpringMass(t *testing.T) {
	cls, err := ast.NewClass(map[string]interface{}{"Name": "SpringMass", "Type": ast.ClassModel})
	require.NoError(t, err)
	cls.Symbols.Put("m", realSym(t, "m", "parameter"))
	cls.Symbols.Put("k", realSym(t, "k", "parameter"))
	cls.Symbols.Put("x", realSym(t, "x"))
	cls.Symbols.Put("v", realSym(t, "v"))
	cls.Equations = []ast.Node{
		&ast.Equation{Left: der("x"), Right: ast.ComponentRefFromString("v")},
		&ast.Equation{
			Left: &ast.Expression{Operator: "*", Operands: []ast.Expr{ast.ComponentRefFromString("m"), der("v")}},
			Right: &ast.Expression{Operator: "-", Operands: []ast.Expr{
				&ast.Expression{Operator: "*", Operands: []ast.Expr{ast.ComponentRefFromString("k"), ast.ComponentRefFromString("x")}},
			}},
		},
	}

	model, err := Generate(ast.NewCollection(), cls)
	require.NoError(t, err)
	assert.Len(t, model.States, 2)
	assert.Len(t, model.DerStates, 2)
	assert.Len(t, model.Parameters, 2)
	assert.Len(t, model.Equations, 2)
}

// S4 For-equation: for i in 1:3 loop x[i] = i*2; end for; with Real x[3].
func TestGenerateForEquation(t *testing.T) {
	cls, err := ast.NewClass(map[string]interface{}{"Name": "ForEq", "Type": ast.ClassModel})
	require.NoError(t, err)
	xSym, err := ast.NewSymbol(map[string]interface{}{
		"Name":       "x",
		"Type":       ast.ComponentRefFromString("Real"),
		"Dimensions": []ast.Expr{&ast.Primary{Value: 3}},
	})
	require.NoError(t, err)
	cls.Symbols.Put("x", xSym)

	slice, err := ast.NewSlice(map[string]interface{}{
		"Start": &ast.Primary{Value: 1},
		"Step":  &ast.Primary{Value: 1},
		"Stop":  &ast.Primary{Value: 3},
	})
	require.NoError(t, err)
	body := []ast.Node{
		&ast.Equation{
			Left: &ast.ComponentRef{Name: "x", Indices: []ast.Expr{ast.ComponentRefFromString("i")}},
			Right: &ast.Expression{Operator: "*", Operands: []ast.Expr{
				ast.ComponentRefFromString("i"), &ast.Primary{Value: 2},
			}},
		},
	}
	cls.Equations = []ast.Node{
		&ast.ForEquation{
			Indices:   []*ast.ForIndex{{Name: "i", Expression: slice}},
			Equations: body,
		},
	}

	model, err := Generate(ast.NewCollection(), cls)
	require.NoError(t, err)
	assert.Len(t, model.Equations, 3)
}

// S5 If-expression: y = if t > 1 then 2*t else t^2.
func TestGenerateIfExpression(t *testing.T) {
	cls, err := ast.NewClass(map[string]interface{}{"Name": "IfExpr", "Type": ast.ClassModel})
	require.NoError(t, err)
	cls.Symbols.Put("y", realSym(t, "y"))
	cls.Symbols.Put("t", realSym(t, "t"))

	ifExpr, err := ast.NewIfExpression(map[string]interface{}{
		"Conditions": []ast.Expr{&ast.Expression{Operator: ">", Operands: []ast.Expr{
			ast.ComponentRefFromString("t"), &ast.Primary{Value: 1},
		}}},
		"Expressions": []ast.Expr{
			&ast.Expression{Operator: "*", Operands: []ast.Expr{&ast.Primary{Value: 2}, ast.ComponentRefFromString("t")}},
			&ast.Expression{Operator: "^", Operands: []ast.Expr{ast.ComponentRefFromString("t"), &ast.Primary{Value: 2}}},
		},
	})
	require.NoError(t, err)
	cls.Equations = []ast.Node{
		&ast.Equation{Left: ast.ComponentRefFromString("y"), Right: ifExpr},
	}

	model, err := Generate(ast.NewCollection(), cls)
	require.NoError(t, err)
	require.Len(t, model.Equations, 1)
	residual := model.Equations[0]
	assert.Equal(t, "-", residual.Op)
	require.Equal(t, 2, residual.NDep())
	assert.Equal(t, "if_else", residual.Dep(1).Op)
}

// S6 Delay: y = delay(u, 0.5) where u is an input.
func TestGenerateDelay(t *testing.T) {
	cls, err := ast.NewClass(map[string]interface{}{"Name": "Delayed", "Type": ast.ClassModel})
	require.NoError(t, err)
	cls.Symbols.Put("y", realSym(t, "y"))
	cls.Symbols.Put("u", realSym(t, "u", "input"))
	cls.Equations = []ast.Node{
		&ast.Equation{
			Left: ast.ComponentRefFromString("y"),
			Right: &ast.Expression{Operator: "delay", Operands: []ast.Expr{
				ast.ComponentRefFromString("u"), &ast.Primary{Value: 0.5},
			}},
		},
	}

	model, err := Generate(ast.NewCollection(), cls)
	require.NoError(t, err)
	require.Len(t, model.DelayedStates, 1)
	ds := model.DelayedStates[0]
	assert.Equal(t, "u", ds.OriginName)
	assert.True(t, strings.HasPrefix(ds.Name, "u_delayed_"))
	require.Len(t, model.Equations, 1)

	require.Len(t, model.Inputs, 2, "the declared input u plus the delayed-state input u_delayed_0.5")
	var inputNames []string
	for _, v := range model.Inputs {
		inputNames = append(inputNames, v.Name)
	}
	assert.Contains(t, inputNames, ds.Name)
	for _, v := range model.AlgStates {
		assert.NotEqual(t, ds.Name, v.Name, "the delayed state must not also land in AlgStates")
	}
}

func TestForEquationRejectsNesting(t *testing.T) {
	cls, err := ast.NewClass(map[string]interface{}{"Name": "Nested", "Type": ast.ClassModel})
	require.NoError(t, err)
	inner := &ast.ForEquation{Indices: []*ast.ForIndex{{Name: "j", Expression: mustSlice(t, 1, 1, 2)}}}
	outer := &ast.ForEquation{Indices: []*ast.ForIndex{{Name: "i", Expression: mustSlice(t, 1, 1, 2)}}, Equations: []ast.Node{inner}}
	cls.Equations = []ast.Node{outer}

	_, err = Generate(ast.NewCollection(), cls)
	assert.Error(t, err)
}

func mustSlice(t *testing.T, start, step, stop int) *ast.Slice {
	t.Helper()
	s, err := ast.NewSlice(map[string]interface{}{
		"Start": &ast.Primary{Value: start},
		"Step":  &ast.Primary{Value: step},
		"Stop":  &ast.Primary{Value: stop},
	})
	require.NoError(t, err)
	return s
}
