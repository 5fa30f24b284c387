// Package merr is the structured error taxonomy for the Modelica front-end,
// ported from the teacher's internal/errors package (Report/ReportError,
// phase-tagged codes) and adapted to the phases of §7 of the spec:
// class lookup, flattening and generation.
package merr

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Report is the canonical structured error type. Every translation failure
// in §7 is surfaced as one of these, wrapped as a ReportError so the
// structure survives errors.As unwrapping.
type Report struct {
	Schema    string         `json:"schema"`
	Code      string         `json:"code"`
	Phase     string         `json:"phase"`
	Message   string         `json:"message"`
	Component string         `json:"component,omitempty"` // dotted component path, §7
	Data      map[string]any `json:"data,omitempty"`
}

// ReportError wraps a Report as an error.
type ReportError struct {
	Rep *Report
}

func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown error"
	}
	if e.Rep.Component != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Rep.Code, e.Rep.Message, e.Rep.Component)
	}
	return fmt.Sprintf("%s: %s", e.Rep.Code, e.Rep.Message)
}

// AsReport extracts a *Report from an error chain.
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// WrapReport wraps r as an error.
func WrapReport(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// ToJSON renders the report deterministically.
func (r *Report) ToJSON(compact bool) (string, error) {
	if compact {
		b, err := json.Marshal(r)
		return string(b), err
	}
	b, err := json.MarshalIndent(r, "", "  ")
	return string(b), err
}

// Error codes, organized by phase per SPEC_FULL.md's AMBIENT STACK section.
const (
	LKP001ClassNotFound      = "LKP001" // §7 ClassNotFound
	LKP002ElementaryTypeMiss = "LKP002" // §7 ElementaryTypeMiss

	FLT001CyclicInheritance      = "FLT001" // §7 CyclicInheritance
	FLT002ModifierTargetNotFound = "FLT002" // §7 ModifierTargetNotFound

	GEN001UnsupportedConstruct = "GEN001" // §7 UnsupportedConstruct
	GEN002ShapeError           = "GEN002" // §7 ShapeError

	AST001InvalidArgument = "AST001" // §7 InvalidArgument
)

func new(phase, code, component, message string) error {
	return WrapReport(&Report{
		Schema:    "modc.error/v1",
		Code:      code,
		Phase:     phase,
		Message:   message,
		Component: component,
	})
}

// ClassNotFound signals resolution exhausted the scope chain (§7).
func ClassNotFound(component string) error {
	return new("lookup", LKP001ClassNotFound, component, "class not found")
}

// ElementaryTypeMiss signals a well-known primitive type name was
// referenced where a user class was expected (§7); distinct from
// ClassNotFound so the flattener can catch and ignore it (SPEC_FULL.md
// open question 3).
func ElementaryTypeMiss(component string) error {
	return new("lookup", LKP002ElementaryTypeMiss, component, "elementary type reference, not a user class")
}

// CyclicInheritance signals an extends chain revisiting a class in
// progress (§7).
func CyclicInheritance(component string) error {
	return new("flatten", FLT001CyclicInheritance, component, "cyclic inheritance detected")
}

// ModifierTargetNotFound signals a modification naming a non-existent
// field or subcomponent (§7).
func ModifierTargetNotFound(component string) error {
	return new("flatten", FLT002ModifierTargetNotFound, component, "modifier target not found")
}

// UnsupportedConstruct signals a construct outside this front-end's scope
// (nested indexed for-loops, non-leaf delay argument, class-level
// statements, pre(), ...).
func UnsupportedConstruct(component, detail string) error {
	return new("generate", GEN001UnsupportedConstruct, component, "unsupported construct: "+detail)
}

// ShapeError signals an expression required for a dimension or a
// linspace count failed to evaluate to an integer constant.
func ShapeError(component, detail string) error {
	return new("generate", GEN002ShapeError, component, "could not resolve shape: "+detail)
}

// InvalidArgument signals an AST construction with an unknown field name,
// or an arity mismatch on an invariant-protected node.
func InvalidArgument(typeName, field string) error {
	return new("ast", AST001InvalidArgument, typeName+"."+field, "invalid argument")
}

// IsElementaryTypeMiss reports whether err is an ElementaryTypeMiss report,
// the signal the flattener is allowed to swallow (§4.B).
func IsElementaryTypeMiss(err error) bool {
	rep, ok := AsReport(err)
	return ok && rep.Code == LKP002ElementaryTypeMiss
}
