// Package langscope implements the lexical scope chain of spec.md
// §3/§4.6: nested scopes with reserved/constant flags and a single
// monotonically increasing counter shared along the parent chain.
//
// Grounded on the teacher's internal/symbols.SymbolTable (the
// outer *SymbolTable chain, ordered store map), trimmed of the
// trait/module/generic registries that have no analog in spec.md's
// scope model. The shared counter is new machinery (§4.6, §9): a
// root-owned cell referenced by every scope in the chain, as the
// design notes suggest, instead of the teacher's per-symbol-table
// independent state.
package langscope

import (
	"fmt"
	"strings"
)

// Item is a single scope binding (spec.md §3).
type Item struct {
	Reserved bool
	Constant bool
	IsType   bool
	Counter  int
	Value    any
}

// Kind reports which of {reserved, variable, constant, type} item is.
func (it Item) Kind() string {
	switch {
	case it.Reserved:
		return "reserved"
	case it.IsType:
		return "type"
	case it.Constant:
		return "constant"
	default:
		return "variable"
	}
}

// counter is the shared, interior-mutable register counter owned by
// the root of a scope chain (spec.md §4.6's "globally-unique register
// counters").
type counter struct{ n int }

func (c *counter) next() int {
	v := c.n
	c.n++
	return v
}

// entry pairs a binding's insertion order with its Item, so toString
// can reproduce insertion order deterministically (Go maps don't).
type entry struct {
	name string
	item Item
}

// Scope is one node of the lexical scope chain.
type Scope struct {
	parent  *Scope
	counter *counter
	order   []string
	bySlot  map[string]int // name -> index into order/items
	items   []entry
}

// New creates a fresh root scope with its own counter.
func New() *Scope {
	return &Scope{counter: &counter{}, bySlot: map[string]int{}}
}

// Push creates a child scope sharing this scope's counter.
func (s *Scope) Push() *Scope {
	return &Scope{parent: s, counter: s.counter, bySlot: map[string]int{}}
}

// Pop returns the parent scope (nil at the root).
func (s *Scope) Pop() *Scope { return s.parent }

// localHas reports whether name is bound directly in this scope.
func (s *Scope) localHas(name string) bool {
	_, ok := s.bySlot[name]
	return ok
}

// chainHasReserved reports whether name is bound as reserved anywhere
// on the chain from s to the root.
func (s *Scope) chainHasReserved(name string) bool {
	for sc := s; sc != nil; sc = sc.parent {
		if idx, ok := sc.bySlot[name]; ok && sc.items[idx].item.Reserved {
			return true
		}
	}
	return false
}

// Initialize binds name to item in the current scope, assigning a
// fresh globally-unique counter value. It fails if name already exists
// in the current scope, or exists anywhere on the chain as reserved
// (spec.md §4.6).
func (s *Scope) Initialize(name string, item Item) (int, error) {
	if s.localHas(name) {
		return 0, &Error{Kind: AlreadyDefined, Name: name}
	}
	if s.chainHasReserved(name) {
		return 0, &Error{Kind: Reserved, Name: name}
	}
	item.Counter = s.counter.next()
	s.bySlot[name] = len(s.items)
	s.items = append(s.items, entry{name: name, item: item})
	s.order = append(s.order, name)
	return item.Counter, nil
}

// findChain walks from s toward the root, returning the scope holding
// name and its binding index, or (nil, -1) if unbound.
func (s *Scope) findChain(name string) (*Scope, int) {
	for sc := s; sc != nil; sc = sc.parent {
		if idx, ok := sc.bySlot[name]; ok {
			return sc, idx
		}
	}
	return nil, -1
}

// Set reassigns the value of the nearest enclosing binding of name. It
// fails if name is unbound, reserved, or constant (spec.md §4.6).
func (s *Scope) Set(name string, value any) error {
	sc, idx := s.findChain(name)
	if sc == nil {
		return &Error{Kind: NotFound, Name: name}
	}
	it := sc.items[idx].item
	if it.Reserved {
		return &Error{Kind: Reserved, Name: name}
	}
	if it.Constant {
		return &Error{Kind: Constant, Name: name}
	}
	it.Value = value
	sc.items[idx].item = it
	return nil
}

// Uninitialize removes name from the current (local) scope only. It
// fails if name is reserved or constant, or not locally bound.
func (s *Scope) Uninitialize(name string) error {
	idx, ok := s.bySlot[name]
	if !ok {
		return &Error{Kind: NotFound, Name: name}
	}
	it := s.items[idx].item
	if it.Reserved {
		return &Error{Kind: Reserved, Name: name}
	}
	if it.Constant {
		return &Error{Kind: Constant, Name: name}
	}
	delete(s.bySlot, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Has reports whether name is bound anywhere on the chain.
func (s *Scope) Has(name string) bool {
	sc, _ := s.findChain(name)
	return sc != nil
}

// Get retrieves name's binding from anywhere on the chain.
func (s *Scope) Get(name string) (Item, bool) {
	sc, idx := s.findChain(name)
	if sc == nil {
		return Item{}, false
	}
	return sc.items[idx].item, true
}

// GetVariableFull retrieves name only if it is a non-type binding.
func (s *Scope) GetVariableFull(name string) (Item, error) {
	it, ok := s.Get(name)
	if !ok {
		return Item{}, &Error{Kind: NotFound, Name: name}
	}
	if it.IsType {
		return Item{}, &Error{Kind: NotFound, Name: name}
	}
	return it, nil
}

// GetTypeFull retrieves name only if it is a type binding.
func (s *Scope) GetTypeFull(name string) (Item, error) {
	it, ok := s.Get(name)
	if !ok {
		return Item{}, &Error{Kind: NotFound, Name: name}
	}
	if !it.IsType {
		return Item{}, &Error{Kind: NotFound, Name: name}
	}
	return it, nil
}

// String renders the chain from root to this scope, 2-space indented
// per level, preserving each scope's local insertion order (spec.md
// §4.6).
func (s *Scope) String() string {
	chain := []*Scope{}
	for sc := s; sc != nil; sc = sc.parent {
		chain = append([]*Scope{sc}, chain...)
	}
	var b strings.Builder
	for depth, sc := range chain {
		indent := strings.Repeat("  ", depth)
		b.WriteString(indent + "{\n")
		for _, name := range sc.order {
			idx := sc.bySlot[name]
			it := sc.items[idx].item
			fmt.Fprintf(&b, "%s  %s = %v [%s#%d]\n", indent, name, it.Value, it.Kind(), it.Counter)
		}
	}
	for i := len(chain) - 1; i >= 0; i-- {
		b.WriteString(strings.Repeat("  ", i) + "}\n")
	}
	return b.String()
}
