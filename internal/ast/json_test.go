package ast

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestClassMarshalJSONPreservesSymbolOrder declares symbols in an order
// that sorts differently than alphabetically, to catch a regression to
// projecting OrderedSymbols through a Go map (which encoding/json would
// silently re-sort alphabetically, per §4.A/§9's declaration-order
// requirement).
func TestClassMarshalJSONPreservesSymbolOrder(t *testing.T) {
	cls, err := NewClass(map[string]interface{}{"Name": "Ordering", "Type": ClassModel})
	require.NoError(t, err)

	zeta, err := NewSymbol(map[string]interface{}{"Name": "zeta", "Type": ComponentRefFromString("Real")})
	require.NoError(t, err)
	alpha, err := NewSymbol(map[string]interface{}{"Name": "alpha", "Type": ComponentRefFromString("Real")})
	require.NoError(t, err)
	mu, err := NewSymbol(map[string]interface{}{"Name": "mu", "Type": ComponentRefFromString("Real")})
	require.NoError(t, err)

	cls.Symbols.Put(zeta.Name, zeta)
	cls.Symbols.Put(alpha.Name, alpha)
	cls.Symbols.Put(mu.Name, mu)

	b, err := json.Marshal(cls)
	require.NoError(t, err)
	out := string(b)

	iZeta := strings.Index(out, `"zeta"`)
	iAlpha := strings.Index(out, `"alpha"`)
	iMu := strings.Index(out, `"mu"`)
	require.True(t, iZeta >= 0 && iAlpha >= 0 && iMu >= 0, "all three symbol names must appear in the output: %s", out)
	require.True(t, iZeta < iAlpha, "declaration order (zeta, alpha, mu) must survive, got: %s", out)
	require.True(t, iAlpha < iMu, "declaration order (zeta, alpha, mu) must survive, got: %s", out)
}

// TestFileMarshalJSONPreservesClassOrder is the same property one level up,
// over File.Classes.
func TestFileMarshalJSONPreservesClassOrder(t *testing.T) {
	f := NewFile()
	zClass, err := NewClass(map[string]interface{}{"Name": "Zeta", "Type": ClassModel})
	require.NoError(t, err)
	aClass, err := NewClass(map[string]interface{}{"Name": "Alpha", "Type": ClassModel})
	require.NoError(t, err)
	f.Classes.Put(zClass.Name, zClass)
	f.Classes.Put(aClass.Name, aClass)

	b, err := json.Marshal(f)
	require.NoError(t, err)
	out := string(b)

	iZeta := strings.Index(out, `"Zeta"`)
	iAlpha := strings.Index(out, `"Alpha"`)
	require.True(t, iZeta >= 0 && iAlpha >= 0, "both class names must appear in the output: %s", out)
	require.True(t, iZeta < iAlpha, "declaration order (Zeta, Alpha) must survive, got: %s", out)
}

// TestClassMarshalJSONRoundTripsValidJSON guards against the raw-object
// construction in orderedObject producing syntactically broken JSON.
func TestClassMarshalJSONRoundTripsValidJSON(t *testing.T) {
	cls, err := NewClass(map[string]interface{}{"Name": "Plain", "Type": ClassModel})
	require.NoError(t, err)
	sym, err := NewSymbol(map[string]interface{}{"Name": "x", "Type": ComponentRefFromString("Real")})
	require.NoError(t, err)
	cls.Symbols.Put(sym.Name, sym)

	b, err := json.Marshal(cls)
	require.NoError(t, err)

	var generic map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &generic))
	require.Equal(t, "Plain", generic["name"])
}
