package ast

// AssignmentStatement is "left := right" (function bodies only, §4.E).
type AssignmentStatement struct {
	Left    []*ComponentRef
	Right   Expr
	Comment string
}

func (*AssignmentStatement) nodeKind() string { return "AssignmentStatement" }

// IfStatement assumes each branch writes the same left-hand sides in the
// same order (§4.E Assignment & if-statement lowering).
type IfStatement struct {
	Conditions []Expr
	Statements []Node
	Comment    string
}

func (*IfStatement) nodeKind() string { return "IfStatement" }

// ForStatement is the statement analog of ForEquation.
type ForStatement struct {
	Indices    []*ForIndex
	Statements []Node
	Comment    string
}

func (*ForStatement) nodeKind() string { return "ForStatement" }
