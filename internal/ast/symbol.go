package ast

// Symbol.ATTRIBUTES in the original: the set of per-variable numeric
// attributes a Symbol carries (§4.E). The generator copies Min, Max, Start,
// Nominal and Fixed onto a Variable; Value is not copied.
var SymbolAttributes = []string{"Value", "Min", "Max", "Start", "Fixed", "Nominal"}

// Symbol is a declared variable. Every Symbol has at least one dimension
// (scalar => [1], enforced by NewSymbol).
type Symbol struct {
	Name             string
	Type             *ComponentRef
	Prefixes         []string
	Redeclare        bool
	Final            bool
	Inner            bool
	Outer            bool
	Dimensions       []Expr
	Comment          string
	Start            Expr
	Min              Expr
	Max              Expr
	Nominal          Expr
	Value            Expr
	Fixed            Expr
	Visibility       Visibility
	ClassModification *ClassModification

	// Order is a stable, declaration-order sort key independent of Go map
	// iteration order; ID is an opaque identity carried through from
	// parsing. Both are present in the original pymola ast.Symbol but
	// omitted from spec.md's field list (see SPEC_FULL.md "Supplemented
	// features").
	Order int
	ID    int
}

func (*Symbol) nodeKind() string { return "Symbol" }

// HasPrefix reports whether prefix (e.g. "parameter", "flow") is set.
func (s *Symbol) HasPrefix(prefix string) bool {
	for _, p := range s.Prefixes {
		if p == prefix {
			return true
		}
	}
	return false
}

// NewSymbol applies field overrides and defaults Dimensions to [1] per the
// "every Symbol has at least one dimension" invariant.
func NewSymbol(overrides map[string]interface{}) (*Symbol, error) {
	s := &Symbol{
		Dimensions: []Expr{&Primary{Value: 1}},
		Start:      &Primary{Value: 0},
		Min:        &Primary{Value: nil},
		Max:        &Primary{Value: nil},
		Nominal:    &Primary{Value: nil},
		Value:      &Primary{Value: nil},
		Fixed:      &Primary{Value: false},
		Visibility: Private,
		Type:       &ComponentRef{},
	}
	if err := applyFields(s, overrides); err != nil {
		return nil, err
	}
	if len(s.Dimensions) == 0 {
		s.Dimensions = []Expr{&Primary{Value: 1}}
	}
	return s, nil
}

// ComponentClause is a declaration group sharing a type and dimensions,
// producing one or more Symbols (e.g. "parameter Real a, b = 2;").
type ComponentClause struct {
	Prefixes   []string
	Type       *ComponentRef
	Dimensions []Expr
	Comment    []string
	Symbols    []*Symbol
}

func (*ComponentClause) nodeKind() string { return "ComponentClause" }

// ImportAsClause is "import X = A.B.C;".
type ImportAsClause struct {
	Component *ComponentRef
	Name      string
}

func (*ImportAsClause) nodeKind() string { return "ImportAsClause" }

// ImportFromClause is "import A.B.{C, D};" (or the whole-module form when
// Symbols is empty).
type ImportFromClause struct {
	Component *ComponentRef
	Symbols   []string
}

func (*ImportFromClause) nodeKind() string { return "ImportFromClause" }

// ElementModification assigns Modifications onto Component within a class
// modification.
type ElementModification struct {
	Component     *ComponentRef
	Modifications []interface{} // Expr | *ClassModification | *Array
}

func (*ElementModification) nodeKind() string { return "ElementModification" }

// ShortClassDefinition is "redeclare model X = Y(...)" style redeclaration.
// Structurally represented (§3/§9); the flattener signals
// UnsupportedConstruct if one is actually exercised (SPEC_FULL.md).
type ShortClassDefinition struct {
	Name              string
	Type              string
	Component         *ComponentRef
	ClassModification *ClassModification
}

func (*ShortClassDefinition) nodeKind() string { return "ShortClassDefinition" }

// ElementReplaceable is a placeholder for "replaceable" element
// declarations; no additional fields are modeled (matches the original).
type ElementReplaceable struct{}

func (*ElementReplaceable) nodeKind() string { return "ElementReplaceable" }

// ClassModification is an ordered list of modifier arguments.
type ClassModification struct {
	Arguments []interface{} // *ElementModification | *ComponentClause | *ShortClassDefinition
}

func (*ClassModification) nodeKind() string { return "ClassModification" }

// ExtendsClause is "extends Base(modifiers);".
type ExtendsClause struct {
	Component         *ComponentRef
	ClassModification *ClassModification
	Visibility        Visibility
}

func (*ExtendsClause) nodeKind() string { return "ExtendsClause" }
