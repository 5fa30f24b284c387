// Package dae holds §4.F's output data model: the symbolic Variable and
// DelayedState records, the assembled Model, and the alias-relation
// union-find used to eliminate redundant unknowns created by connect
// equations. Grounded on bfix-dynamo's model.go/result.go, which shape a
// Model as a flat set of named entities plus a reporting layer rather
// than a single monolithic struct with embedded logic.
package dae

import "github.com/jaeandersson/modc/internal/symkernel"

// Variable is a generated symbolic unknown together with the declaration
// metadata the downstream solver needs (§3).
type Variable struct {
	Name     string
	Handle   *symkernel.Handle
	Min      *symkernel.Handle
	Max      *symkernel.Handle
	Start    *symkernel.Handle
	Nominal  *symkernel.Handle
	Fixed    *symkernel.Handle
	Prefixes []string
}

// HasPrefix reports whether prefix (e.g. "parameter", "output") is set.
func (v *Variable) HasPrefix(prefix string) bool {
	for _, p := range v.Prefixes {
		if p == prefix {
			return true
		}
	}
	return false
}

// DelayedState records a delay(x, tau) materialization (§4.E, S6).
type DelayedState struct {
	Name       string
	OriginName string
	DelayTime  *symkernel.Handle
}

// Model is the generator's final output: the DAE F(x, xdot, y, p, t) = 0
// plus its variable categorization (§3).
type Model struct {
	Time             *symkernel.Handle
	States           []*Variable
	DerStates        []*Variable
	AlgStates        []*Variable
	Inputs           []*Variable
	Outputs          []*Variable
	Constants        []*Variable
	Parameters       []*Variable
	Equations        []*symkernel.Handle
	InitialEquations []*symkernel.Handle
	DelayedStates    []*DelayedState
	AliasRelation    *AliasRelation
}
