package ast

import (
	"bytes"
	"encoding/json"
)

// jsonClass mirrors Class but with the ordered maps rendered as ordinary
// JSON objects (Go's encoding/json already preserves struct field order,
// but OrderedClasses/OrderedSymbols hold only an unexported map field, which
// encoding/json would render as {}, so they need an explicit projection to
// stay structural per §4.A).
type jsonClass struct {
	Name              string           `json:"name"`
	Type              ClassType        `json:"type"`
	Encapsulated      bool             `json:"encapsulated"`
	Partial           bool             `json:"partial"`
	Final             bool             `json:"final"`
	Imports           []Node           `json:"imports"`
	Extends           []*ExtendsClause `json:"extends"`
	Classes           json.RawMessage  `json:"classes"`
	Symbols           json.RawMessage  `json:"symbols"`
	Equations         []Node           `json:"equations"`
	InitialEquations  []Node           `json:"initial_equations"`
	Statements        []Node           `json:"statements"`
	InitialStatements []Node           `json:"initial_statements"`
	Within            []*ComponentRef  `json:"within"`
}

// orderedObject renders keys/values as a raw `{"k1":v1,"k2":v2,...}` JSON
// object in the given key order. encoding/json always sorts map[string]T
// keys alphabetically, which would silently discard the declaration order
// §4.A/§9 require AST output to preserve, so the object is built directly
// rather than projected through a Go map.
func orderedObject(keys []string, value func(i int) interface{}) (json.RawMessage, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(value(i))
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalOrderedClasses(oc *OrderedClasses) (json.RawMessage, error) {
	keys := oc.Keys()
	return orderedObject(keys, func(i int) interface{} {
		v, _ := oc.Get(keys[i])
		return v
	})
}

func marshalOrderedSymbols(os *OrderedSymbols) (json.RawMessage, error) {
	keys := os.Keys()
	return orderedObject(keys, func(i int) interface{} {
		v, _ := os.Get(keys[i])
		return v
	})
}

// MarshalJSON renders Class structurally: nested children, ordered
// mappings preserved in declaration order, Visibility as its lowercase
// name (via Visibility.MarshalJSON).
func (c *Class) MarshalJSON() ([]byte, error) {
	classes, err := marshalOrderedClasses(c.Classes)
	if err != nil {
		return nil, err
	}
	symbols, err := marshalOrderedSymbols(c.Symbols)
	if err != nil {
		return nil, err
	}
	return json.Marshal(jsonClass{
		Name: c.Name, Type: c.Type, Encapsulated: c.Encapsulated,
		Partial: c.Partial, Final: c.Final, Imports: c.Imports, Extends: c.Extends,
		Classes: classes, Symbols: symbols, Equations: c.Equations,
		InitialEquations: c.InitialEquations, Statements: c.Statements,
		InitialStatements: c.InitialStatements, Within: c.Within,
	})
}

// MarshalJSON renders File with Classes as an ordinary mapping, preserving
// declaration order.
func (f *File) MarshalJSON() ([]byte, error) {
	classes, err := marshalOrderedClasses(f.Classes)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Within  []*ComponentRef `json:"within"`
		Classes json.RawMessage `json:"classes"`
	}{f.Within, classes})
}
