package ast

import "github.com/emirpasic/gods/maps/linkedhashmap"

// OrderedClasses is Class.classes: a name -> *Class mapping that preserves
// declaration order, required for the generator's position-sensitive
// partitioning (§9 "Ordered mappings").
type OrderedClasses struct {
	m *linkedhashmap.Map
}

func NewOrderedClasses() *OrderedClasses {
	return &OrderedClasses{m: linkedhashmap.New()}
}

func (o *OrderedClasses) Put(name string, c *Class) {
	o.m.Put(name, c)
}

func (o *OrderedClasses) Get(name string) (*Class, bool) {
	v, found := o.m.Get(name)
	if !found {
		return nil, false
	}
	return v.(*Class), true
}

func (o *OrderedClasses) Keys() []string {
	keys := o.m.Keys()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.(string)
	}
	return out
}

func (o *OrderedClasses) Values() []*Class {
	values := o.m.Values()
	out := make([]*Class, len(values))
	for i, v := range values {
		out[i] = v.(*Class)
	}
	return out
}

func (o *OrderedClasses) Size() int { return o.m.Size() }

func (o *OrderedClasses) Remove(name string) { o.m.Remove(name) }

// OrderedSymbols is Class.symbols: name -> *Symbol, declaration-ordered.
type OrderedSymbols struct {
	m *linkedhashmap.Map
}

func NewOrderedSymbols() *OrderedSymbols {
	return &OrderedSymbols{m: linkedhashmap.New()}
}

func (o *OrderedSymbols) Put(name string, s *Symbol) {
	o.m.Put(name, s)
}

func (o *OrderedSymbols) Get(name string) (*Symbol, bool) {
	v, found := o.m.Get(name)
	if !found {
		return nil, false
	}
	return v.(*Symbol), true
}

func (o *OrderedSymbols) Keys() []string {
	keys := o.m.Keys()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.(string)
	}
	return out
}

func (o *OrderedSymbols) Values() []*Symbol {
	values := o.m.Values()
	out := make([]*Symbol, len(values))
	for i, v := range values {
		out[i] = v.(*Symbol)
	}
	return out
}

func (o *OrderedSymbols) Size() int { return o.m.Size() }

func (o *OrderedSymbols) Remove(name string) { o.m.Remove(name) }
