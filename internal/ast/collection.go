package ast

import (
	"strings"

	"github.com/jaeandersson/modc/internal/merr"
)

// builtinTypeNames are the elementary types §4.B short-circuits on.
var builtinTypeNames = map[string]bool{
	"Real": true, "Integer": true, "String": true, "Boolean": true,
}

// elementaryTypeNames are names that, when lookup fails, are known
// elementary-type references rather than genuine typos (§4.B, §7).
var elementaryTypeNames = map[string]bool{
	"Real": true, "Integer": true, "Boolean": true, "String": true,
	"Modelica": true, "SI": true,
}

// Collection is a forest of Files, pre-flattening. It owns a lazily built
// class-lookup cache whose lifetime matches the Collection's own (§3
// Lifecycles); the cache is invalidated whenever Files is extended.
type Collection struct {
	Files []*File

	classLookup map[string]*Class
}

func NewCollection() *Collection {
	return &Collection{}
}

// Extend appends other's files and invalidates the class-lookup cache.
// This fixes the open question in spec.md §9: the original pymola never
// invalidated the cache on extend, so classes added after the first
// find_class call were invisible to later flattening.
func (c *Collection) Extend(other *Collection) {
	c.Files = append(c.Files, other.Files...)
	c.classLookup = nil
}

func (c *Collection) buildClassLookup() {
	c.classLookup = map[string]*Class{}
	for _, f := range c.Files {
		var within *ComponentRef
		if len(f.Within) > 0 {
			within = f.Within[0]
		}
		for _, name := range f.Classes.Keys() {
			cls, _ := f.Classes.Get(name)
			c.buildClassLookupFor(cls, within)
		}
	}
}

func (c *Collection) buildClassLookupFor(cls *Class, within *ComponentRef) {
	var full *ComponentRef
	if within != nil {
		full = ConcatenateComponentRefs(within, &ComponentRef{Name: cls.Name})
	} else {
		full = &ComponentRef{Name: cls.Name}
	}
	c.classLookup[strings.Join(full.ToTuple(), ".")] = cls

	for _, name := range cls.Classes.Keys() {
		nested, _ := cls.Classes.Get(name)
		c.buildClassLookupFor(nested, full)
	}
}

// BuiltinClass synthesizes the single-symbol "__builtin" class for Real,
// Integer, String and Boolean (§4.B).
func BuiltinClass(name string) (*Class, *ComponentRef) {
	cls := &Class{
		Name:    name,
		Type:    ClassBuiltin,
		Classes: NewOrderedClasses(),
		Symbols: NewOrderedSymbols(),
	}
	cref := &ComponentRef{Name: name}
	sym := &Symbol{Name: "__value", Type: cref, Dimensions: []Expr{&Primary{Value: 1}}}
	cls.Symbols.Put(sym.Name, sym)
	return cls, cref
}

// FindClassResult is returned by FindClass when ReturnRef is requested.
type FindClassResult struct {
	Class *Class
	Ref   *ComponentRef
}

// FindClass resolves ref starting at lexical scope within, per the
// candidate = within+ref, pop-and-retry algorithm of §4.B.
func (c *Collection) FindClass(ref *ComponentRef, within []*ComponentRef, checkBuiltin, returnRef bool) (*FindClassResult, error) {
	if checkBuiltin && builtinTypeNames[ref.Name] {
		cls, cref := BuiltinClass(ref.Name)
		return &FindClassResult{Class: cls, Ref: cref}, nil
	}

	if c.classLookup == nil {
		c.buildClassLookup()
	}

	var withinTuple []string
	if len(within) > 0 {
		withinTuple = within[0].ToTuple()
	}
	refTuple := ref.ToTuple()

	var found *Class
	var prevTuple []string
	for {
		candidate := append(append([]string(nil), withinTuple...), refTuple...)
		prevTuple = candidate
		if cls, ok := c.classLookup[strings.Join(candidate, ".")]; ok {
			found = cls
			break
		}
		if len(withinTuple) == 0 {
			break
		}
		withinTuple = withinTuple[:len(withinTuple)-1]
	}

	if found == nil {
		if elementaryTypeNames[ref.Name] {
			return nil, merr.ElementaryTypeMiss(ref.String())
		}
		return nil, merr.ClassNotFound(ref.String())
	}

	result := &FindClassResult{Class: found}
	if returnRef {
		result.Ref = ComponentRefFromTuple(prevTuple)
	}
	return result, nil
}

// FindSymbol is a dotted lookup recursing into the type of each
// intermediate symbol (§4.B).
func (c *Collection) FindSymbol(node *Class, ref *ComponentRef) (*Symbol, error) {
	sym, ok := node.Symbols.Get(ref.Name)
	if !ok {
		return nil, merr.ClassNotFound(ref.Name)
	}
	if len(ref.Child) > 0 {
		res, err := c.FindClass(sym.Type, nil, false, false)
		if err != nil {
			return nil, err
		}
		return c.FindSymbol(res.Class, ref.Child[0])
	}
	return sym, nil
}
