package ast

// ClassType enumerates the closed set of Modelica class kinds, plus the
// synthetic "" (plain, not yet classified) and "__builtin" kinds.
type ClassType string

const (
	ClassModel     ClassType = "model"
	ClassBlock     ClassType = "block"
	ClassFunction  ClassType = "function"
	ClassPackage   ClassType = "package"
	ClassRecord    ClassType = "record"
	ClassConnector ClassType = "connector"
	ClassPlain     ClassType = ""
	ClassBuiltin   ClassType = "__builtin"
)

// Class is a Modelica class/model/block/.../function definition.
type Class struct {
	Name              string
	Type              ClassType
	Encapsulated      bool
	Partial           bool
	Final             bool
	Comment           string
	Imports           []Node // *ImportAsClause | *ImportFromClause
	Extends           []*ExtendsClause
	Classes           *OrderedClasses
	Symbols           *OrderedSymbols
	Functions         *OrderedClasses
	Equations         []Node
	InitialEquations  []Node
	Statements        []Node
	InitialStatements []Node
	Within            []*ComponentRef
}

func (*Class) nodeKind() string { return "Class" }

// NewClass builds an empty Class ready for incremental population.
func NewClass(overrides map[string]interface{}) (*Class, error) {
	c := &Class{
		Classes:   NewOrderedClasses(),
		Symbols:   NewOrderedSymbols(),
		Functions: NewOrderedClasses(),
	}
	if err := applyFields(c, overrides); err != nil {
		return nil, err
	}
	return c, nil
}

// File represents a single .mo file, pre-flattening.
type File struct {
	Within  []*ComponentRef
	Classes *OrderedClasses
}

func (*File) nodeKind() string { return "File" }

func NewFile() *File {
	return &File{Classes: NewOrderedClasses()}
}
