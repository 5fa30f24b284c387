// Package ast defines the typed, closed-variant representation of a parsed
// Modelica abstract syntax tree: the single source of truth consumed by
// class lookup, the flattener and the symbolic generator.
package ast

import (
	"fmt"
	"reflect"

	"github.com/jaeandersson/modc/internal/merr"
)

// Node is implemented by every AST variant. It carries no behavior beyond
// identification; the tree walker dispatches on the concrete type.
type Node interface {
	nodeKind() string
}

// Visibility is totally ordered PRIVATE < PROTECTED < PUBLIC.
type Visibility int

const (
	Private Visibility = iota
	Protected
	Public
)

func (v Visibility) String() string {
	switch v {
	case Private:
		return "private"
	case Protected:
		return "protected"
	case Public:
		return "public"
	default:
		return "private"
	}
}

// MarshalJSON renders Visibility as its lowercase name, per the structural
// JSON serialization contract of §4.A.
func (v Visibility) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", v.String())), nil
}

// applyFields assigns fields named in overrides onto dst (a pointer to a
// struct) by name, mirroring the Python original's Node.set_args: any key
// that does not match an exported field is rejected rather than silently
// ignored. Used by the keyword-style New* constructors.
func applyFields(dst interface{}, overrides map[string]interface{}) error {
	rv := reflect.ValueOf(dst).Elem()
	rt := rv.Type()
	for name, val := range overrides {
		f := rv.FieldByName(name)
		if !f.IsValid() {
			return merr.InvalidArgument(rt.Name(), name)
		}
		fv := reflect.ValueOf(val)
		if !fv.IsValid() {
			f.Set(reflect.Zero(f.Type()))
			continue
		}
		if !fv.Type().AssignableTo(f.Type()) {
			return merr.InvalidArgument(rt.Name(), name)
		}
		f.Set(fv)
	}
	return nil
}
