package ast

import (
	"strconv"
	"strings"

	"github.com/jaeandersson/modc/internal/merr"
)

// Expr is the subset of Node that can appear where a value is expected.
type Expr interface {
	Node
	exprNode()
}

// Primary is a literal: bool, int, float, string, or nil.
type Primary struct {
	Value interface{}
}

func (*Primary) nodeKind() string { return "Primary" }
func (*Primary) exprNode()        {}

// NewPrimary builds a Primary, accepting only the "Value" override.
func NewPrimary(overrides map[string]interface{}) (*Primary, error) {
	p := &Primary{}
	if err := applyFields(p, overrides); err != nil {
		return nil, err
	}
	return p, nil
}

// Array is a literal array/matrix-row expression.
type Array struct {
	Values []Expr
}

func (*Array) nodeKind() string { return "Array" }
func (*Array) exprNode()        {}

// Slice is a Modelica range start:step:stop, inclusive of stop when aligned.
type Slice struct {
	Start Expr
	Step  Expr
	Stop  Expr
}

func (*Slice) nodeKind() string { return "Slice" }
func (*Slice) exprNode()        {}

// NewSlice defaults to 0:1:-1, matching the Python original's defaults.
func NewSlice(overrides map[string]interface{}) (*Slice, error) {
	s := &Slice{
		Start: &Primary{Value: 0},
		Step:  &Primary{Value: 1},
		Stop:  &Primary{Value: -1},
	}
	if err := applyFields(s, overrides); err != nil {
		return nil, err
	}
	return s, nil
}

// ComponentRef is a dotted path a.b.c[i], where Child nests deeper
// qualification. Child is either empty or a singleton.
type ComponentRef struct {
	Name    string
	Indices []Expr
	Child   []*ComponentRef
}

func (*ComponentRef) nodeKind() string { return "ComponentRef" }
func (*ComponentRef) exprNode()        {}

// NewComponentRef validates the Child-is-singleton-or-empty invariant.
func NewComponentRef(overrides map[string]interface{}) (*ComponentRef, error) {
	c := &ComponentRef{}
	if err := applyFields(c, overrides); err != nil {
		return nil, err
	}
	if len(c.Child) > 1 {
		return nil, merr.InvalidArgument("ComponentRef", "Child")
	}
	return c, nil
}

// String renders the dotted path, ignoring indices.
func (c *ComponentRef) String() string {
	return strings.Join(c.ToTuple(), ".")
}

// ToTuple flattens the reference to a tuple of names, ignoring indices.
func (c *ComponentRef) ToTuple() []string {
	if len(c.Child) > 0 {
		return append([]string{c.Name}, c.Child[0].ToTuple()...)
	}
	return []string{c.Name}
}

// ComponentRefFromTuple builds a ComponentRef from a flat name tuple.
func ComponentRefFromTuple(components []string) *ComponentRef {
	root := &ComponentRef{Name: components[0]}
	cur := root
	for _, name := range components[1:] {
		next := &ComponentRef{Name: name}
		cur.Child = []*ComponentRef{next}
		cur = next
	}
	return root
}

// ComponentRefFromString parses dot notation into a ComponentRef.
func ComponentRefFromString(s string) *ComponentRef {
	return ComponentRefFromTuple(strings.Split(s, "."))
}

// ConcatenateComponentRefs appends refs to each other (e.g. a "within"
// prefix and a class name), deep-copying every operand so the result never
// aliases a ref reachable from another parent path.
func ConcatenateComponentRefs(refs ...*ComponentRef) *ComponentRef {
	if len(refs) == 0 {
		return &ComponentRef{}
	}
	head := cloneComponentRef(refs[0])
	tail := head
	for tail.Child != nil && len(tail.Child) > 0 {
		tail = tail.Child[0]
	}
	for _, r := range refs[1:] {
		tail.Child = []*ComponentRef{cloneComponentRef(r)}
		for tail.Child[0].Child != nil && len(tail.Child[0].Child) > 0 {
			tail = tail.Child[0]
		}
	}
	return head
}

func cloneComponentRef(c *ComponentRef) *ComponentRef {
	if c == nil {
		return nil
	}
	out := &ComponentRef{Name: c.Name}
	if c.Indices != nil {
		out.Indices = append([]Expr(nil), c.Indices...)
	}
	if len(c.Child) > 0 {
		out.Child = []*ComponentRef{cloneComponentRef(c.Child[0])}
	}
	return out
}

// IntLiteral reads an integer out of a Primary, used by constant-folding.
func IntLiteral(p *Primary) (int, bool) {
	switch v := p.Value.(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(v)
		return n, err == nil
	default:
		return 0, false
	}
}

// Expression is an operator applied to operands. Operator is either a
// built-in name ("+", "der", ...) or a ComponentRef naming a user function.
type Expression struct {
	Operator interface{} // string | *ComponentRef
	Operands []Expr
}

func (*Expression) nodeKind() string { return "Expression" }
func (*Expression) exprNode()        {}

// OperatorName extracts the dispatch name regardless of Operator's shape.
func (e *Expression) OperatorName() string {
	switch op := e.Operator.(type) {
	case string:
		return op
	case *ComponentRef:
		return op.Name
	default:
		return ""
	}
}

// IfExpression is conditions/expressions with len(expressions) ==
// len(conditions)+1.
type IfExpression struct {
	Conditions  []Expr
	Expressions []Expr
}

func (*IfExpression) nodeKind() string { return "IfExpression" }
func (*IfExpression) exprNode()        {}

// NewIfExpression enforces the arity invariant.
func NewIfExpression(overrides map[string]interface{}) (*IfExpression, error) {
	ie := &IfExpression{}
	if err := applyFields(ie, overrides); err != nil {
		return nil, err
	}
	if len(ie.Expressions) != len(ie.Conditions)+1 {
		return nil, merr.InvalidArgument("IfExpression", "Expressions")
	}
	return ie, nil
}
