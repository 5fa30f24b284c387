package flatten

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/jaeandersson/modc/internal/ast"
)

func realSymbol(t *testing.T, name string) *ast.Symbol {
	t.Helper()
	s, err := ast.NewSymbol(map[string]interface{}{
		"Name": name,
		"Type": ast.ComponentRefFromString("Real"),
	})
	require.NoError(t, err)
	return s
}

func collectionOf(t *testing.T, classes ...*ast.Class) *ast.Collection {
	t.Helper()
	f := ast.NewFile()
	for _, c := range classes {
		f.Classes.Put(c.Name, c)
	}
	return &ast.Collection{Files: []*ast.File{f}}
}

// S2 Inheritance: A defines y; B extends A adds equation y = 1.
func TestFlattenInheritance(t *testing.T) {
	a, err := ast.NewClass(map[string]interface{}{"Name": "A", "Type": ast.ClassModel})
	require.NoError(t, err)
	a.Symbols.Put("y", realSymbol(t, "y"))

	b, err := ast.NewClass(map[string]interface{}{
		"Name": "B",
		"Type": ast.ClassModel,
		"Extends": []*ast.ExtendsClause{
			{Component: ast.ComponentRefFromString("A"), Visibility: ast.Public},
		},
	})
	require.NoError(t, err)
	b.Equations = []ast.Node{
		&ast.Equation{Left: ast.ComponentRefFromString("y"), Right: &ast.Primary{Value: 1}},
	}

	coll := collectionOf(t, a, b)
	flat, err := Flatten(coll, ast.ComponentRefFromString("B"))
	require.NoError(t, err)

	cls, ok := flat.Files[0].Classes.Get("B")
	require.True(t, ok)
	require.ElementsMatch(t, []string{"y"}, cls.Symbols.Keys())
	require.Len(t, cls.Equations, 1)

	eq := cls.Equations[0].(*ast.Equation)
	require.True(t, cmp.Equal(ast.ComponentRefFromString("y"), eq.Left))
	require.Equal(t, 1, eq.Right.(*ast.Primary).Value)
}

// S3 Connect: two connectors a, b each with p (flow) and e.
// connect(a, b) yields two equations: a.e = b.e and a.p + b.p = 0.
func TestFlattenConnect(t *testing.T) {
	pin, err := ast.NewClass(map[string]interface{}{"Name": "Pin", "Type": ast.ClassConnector})
	require.NoError(t, err)
	p := realSymbol(t, "p")
	p.Prefixes = []string{"flow"}
	pin.Symbols.Put("p", p)
	pin.Symbols.Put("e", realSymbol(t, "e"))

	circuit, err := ast.NewClass(map[string]interface{}{"Name": "Circuit", "Type": ast.ClassModel})
	require.NoError(t, err)
	aSym, err := ast.NewSymbol(map[string]interface{}{"Name": "a", "Type": ast.ComponentRefFromString("Pin")})
	require.NoError(t, err)
	bSym, err := ast.NewSymbol(map[string]interface{}{"Name": "b", "Type": ast.ComponentRefFromString("Pin")})
	require.NoError(t, err)
	circuit.Symbols.Put("a", aSym)
	circuit.Symbols.Put("b", bSym)
	circuit.Equations = []ast.Node{
		&ast.ConnectClause{Left: ast.ComponentRefFromString("a"), Right: ast.ComponentRefFromString("b")},
	}

	coll := collectionOf(t, pin, circuit)
	flat, err := Flatten(coll, ast.ComponentRefFromString("Circuit"))
	require.NoError(t, err)

	cls, ok := flat.Files[0].Classes.Get("Circuit")
	require.True(t, ok)
	require.ElementsMatch(t, []string{"a.p", "a.e", "b.p", "b.e"}, cls.Symbols.Keys())
	require.Len(t, cls.Equations, 2)

	// One equation equates a.e/b.e, the other sums a.p+b.p to zero.
	var sawEquality, sawFlowSum bool
	for _, n := range cls.Equations {
		eq := n.(*ast.Equation)
		if lref, ok := eq.Left.(*ast.ComponentRef); ok && lref.String() == "a.e" {
			sawEquality = true
			require.Equal(t, "b.e", eq.Right.(*ast.ComponentRef).String())
		}
		if expr, ok := eq.Left.(*ast.Expression); ok && expr.OperatorName() == "+" {
			sawFlowSum = true
		}
	}
	require.True(t, sawEquality)
	require.True(t, sawFlowSum)
}

func TestFlattenIdempotence(t *testing.T) {
	a, err := ast.NewClass(map[string]interface{}{"Name": "Flat", "Type": ast.ClassModel})
	require.NoError(t, err)
	a.Symbols.Put("x", realSymbol(t, "x"))
	a.Equations = []ast.Node{
		&ast.Equation{Left: ast.ComponentRefFromString("x"), Right: &ast.Primary{Value: 1}},
	}

	coll := collectionOf(t, a)
	once, err := Flatten(coll, ast.ComponentRefFromString("Flat"))
	require.NoError(t, err)

	twice, err := Flatten(once, ast.ComponentRefFromString("Flat"))
	require.NoError(t, err)

	c1, _ := once.Files[0].Classes.Get("Flat")
	c2, _ := twice.Files[0].Classes.Get("Flat")
	require.Equal(t, c1.Symbols.Keys(), c2.Symbols.Keys())
	require.Equal(t, len(c1.Equations), len(c2.Equations))
}

func TestFlattenCyclicInheritanceDetected(t *testing.T) {
	a, err := ast.NewClass(map[string]interface{}{
		"Name": "A", "Type": ast.ClassModel,
		"Extends": []*ast.ExtendsClause{{Component: ast.ComponentRefFromString("B"), Visibility: ast.Public}},
	})
	require.NoError(t, err)
	b, err := ast.NewClass(map[string]interface{}{
		"Name": "B", "Type": ast.ClassModel,
		"Extends": []*ast.ExtendsClause{{Component: ast.ComponentRefFromString("A"), Visibility: ast.Public}},
	})
	require.NoError(t, err)

	coll := collectionOf(t, a, b)
	_, err = Flatten(coll, ast.ComponentRefFromString("A"))
	require.Error(t, err)
}
