package types

import "fmt"

// TypeIndex is a small ordered list of (keyType, value) pairs with
// scan-until-match lookup (spec.md §4.5). Its semantics must be
// preserved verbatim because the interpreter's and IR translator's
// operator dispatch (internal/typetable) depends on them: later entries are only reached if no earlier key
// matches, so more specific signatures should be registered first.
//
// Grounded on the shape of the teacher's per-trait instance registries
// in internal/symbols/symbol_table.go (implementations, instanceMethods
// maps), generalized here into a single ordered scan keyed by
// structural Type.Match instead of a trait/type-name map.
type TypeIndex struct {
	entries []indexEntry
}

type indexEntry struct {
	key   Type
	value any
}

// NewTypeIndex returns an empty index.
func NewTypeIndex() *TypeIndex { return &TypeIndex{} }

// Set registers value under keyType, appended after any existing
// entries (first-match-wins on Get).
func (idx *TypeIndex) Set(keyType Type, value any) {
	idx.entries = append(idx.entries, indexEntry{key: keyType, value: value})
}

// Has reports whether some entry's key matches query.
func (idx *TypeIndex) Has(query Type) bool {
	_, _, ok := idx.Get(query)
	return ok
}

// Get scans entries in registration order, returning the first whose
// key matches query, along with the mappings Match produced (e.g. for
// Polymorphic keys).
func (idx *TypeIndex) Get(query Type) (value any, mappings []Mapping, ok bool) {
	for _, e := range idx.entries {
		res := e.key.Match(query)
		if res.Matched {
			return e.value, res.Mappings, true
		}
	}
	return nil, nil, false
}

// SetCompete condenses a single {from→to} mapping into the index,
// keyed by the Polymorphic variable's name as an Atom so that lookup
// is plain name equality. If from is already bound, the existing
// binding is replaced by Intersect(to, existing); an empty
// intersection is an error. This implements spec.md §4.5's "mapping
// condensation" used to combine the mappings collected while matching
// a multi-argument signature.
func (idx *TypeIndex) SetCompete(m Mapping) error {
	key := Atom{Name: "$poly:" + m.From.Name}
	if existing, _, ok := idx.Get(key); ok {
		merged, ok := Intersect(m.To, existing.(Type))
		if !ok {
			return fmt.Errorf("no common type between %s and %s for %s", m.To, existing.(Type), m.From.Name)
		}
		idx.replace(key, merged)
		return nil
	}
	idx.Set(key, m.To)
	return nil
}

func (idx *TypeIndex) replace(key Type, value any) {
	for i, e := range idx.entries {
		if Equals(e.key, key) {
			idx.entries[i].value = value
			return
		}
	}
	idx.entries = append(idx.entries, indexEntry{key: key, value: value})
}

// Mappings returns the condensed, de-duplicated mappings accumulated
// via SetCompete, in first-bound order.
func (idx *TypeIndex) Mappings() []Mapping {
	out := make([]Mapping, 0, len(idx.entries))
	for _, e := range idx.entries {
		a := e.key.(Atom)
		name := a.Name[len("$poly:"):]
		out = append(out, Mapping{From: Polymorphic{Name: name}, To: e.value.(Type)})
	}
	return out
}

// CondenseMappings runs a full list of {from→to} mappings (as produced
// by a structural Match call) through SetCompete, returning the final
// de-duplicated set or the first condensation failure.
func CondenseMappings(mappings []Mapping) ([]Mapping, error) {
	idx := NewTypeIndex()
	for _, m := range mappings {
		if err := idx.SetCompete(m); err != nil {
			return nil, err
		}
	}
	return idx.Mappings(), nil
}
