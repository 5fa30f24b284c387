package ast

import "github.com/jaeandersson/modc/internal/merr"

// Equation is left op right, with either side possibly a list (a
// tuple-valued function call, e.g. "(a, b) = f(x)").
type Equation struct {
	Left    interface{} // Expr | []Expr
	Right   interface{} // Expr | []Expr
	Comment string
}

func (*Equation) nodeKind() string { return "Equation" }

// IfEquation requires len(equations) to be an exact multiple of
// len(conditions)+1; each branch contributes the same count of equations
// in the same order.
type IfEquation struct {
	Conditions []Expr
	Equations  []Node
	Comment    string
}

func (*IfEquation) nodeKind() string { return "IfEquation" }

// NewIfEquation enforces the branch-count invariant of §3.
func NewIfEquation(overrides map[string]interface{}) (*IfEquation, error) {
	ie := &IfEquation{}
	if err := applyFields(ie, overrides); err != nil {
		return nil, err
	}
	branches := len(ie.Conditions) + 1
	if branches == 0 || len(ie.Equations)%branches != 0 {
		return nil, merr.InvalidArgument("IfEquation", "Equations")
	}
	return ie, nil
}

// EquationsPerBranch returns how many equations each branch of ie carries.
func (ie *IfEquation) EquationsPerBranch() int {
	return len(ie.Equations) / (len(ie.Conditions) + 1)
}

// ForIndex is a single "for name in expression" clause.
type ForIndex struct {
	Name       string
	Expression Expr // typically *Slice
}

func (*ForIndex) nodeKind() string { return "ForIndex" }

// ForEquation iterates Indices over Equations. The generator accepts
// exactly one index and rejects more; nested indexed for-loops are an
// explicit Non-goal (§1/§9).
type ForEquation struct {
	Indices   []*ForIndex
	Equations []Node
	Comment   string
}

func (*ForEquation) nodeKind() string { return "ForEquation" }

// ConnectClause structurally joins two connector component refs.
type ConnectClause struct {
	Left    *ComponentRef
	Right   *ComponentRef
	Comment string
}

func (*ConnectClause) nodeKind() string { return "ConnectClause" }
