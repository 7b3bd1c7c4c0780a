// Package types implements the algebraic type model of spec.md §3/§4.5:
// Atom, Or (union), And (tuple), Group, Array, Function, Spread,
// Polymorphic and Any, plus structural matching that produces
// type-variable mappings for unification.
//
// Grounded on the teacher's internal/typesystem (the Type sum-type
// interface shape of TCon/TUnion/TTuple/TFunc/TVar in types.go, and the
// recursive structural comparison in unify.go), restructured around
// spec.md's match-with-mappings model instead of the teacher's
// substitution-based unifier.
package types

import "strings"

// Type is the interface every type variant implements.
type Type interface {
	// String returns the canonical specification string (spec.md §6).
	String() string
	// Match attempts to structurally match this type (the "pattern",
	// potentially containing Polymorphic variables) against other (the
	// "concrete" side), producing bindings for any Polymorphic members.
	Match(other Type) MatchResult
	// ApplyMappings substitutes any Polymorphic members per mappings.
	ApplyMappings(mappings []Mapping) Type
}

// Mapping binds a Polymorphic type variable to a concrete Type,
// produced by Match and consumed by ApplyMappings.
type Mapping struct {
	From Polymorphic
	To   Type
}

// MatchResult is the result of Type.Match.
type MatchResult struct {
	Matched  bool
	Mappings []Mapping
}

func noMatch() MatchResult { return MatchResult{} }

func matchOK(mappings ...Mapping) MatchResult {
	return MatchResult{Matched: true, Mappings: mappings}
}

// --- Any ---------------------------------------------------------------

// anyType is the singleton implementation of Any, which matches
// everything (spec.md §4.5: "Any.match(_) = matched").
type anyType struct{}

// Any matches every other type.
var Any Type = anyType{}

func (anyType) String() string { return "Any" }

func (anyType) Match(Type) MatchResult { return matchOK() }

func (anyType) ApplyMappings([]Mapping) Type { return Any }

// --- Atom ----------------------------------------------------------------

// Atom is a named primitive or nominal type, e.g. Int, String.
type Atom struct {
	Name string
}

func (a Atom) String() string { return a.Name }

func (a Atom) Match(other Type) MatchResult {
	if o, ok := other.(Atom); ok && o.Name == a.Name {
		return matchOK()
	}
	return noMatch()
}

func (a Atom) ApplyMappings([]Mapping) Type { return a }

// --- Polymorphic -----------------------------------------------------------

// Polymorphic is a generic type variable, e.g. "A'".
type Polymorphic struct {
	Name string
}

func (p Polymorphic) String() string { return p.Name }

// Match always succeeds, binding p to other (spec.md §4.5).
func (p Polymorphic) Match(other Type) MatchResult {
	return matchOK(Mapping{From: p, To: other})
}

func (p Polymorphic) ApplyMappings(mappings []Mapping) Type {
	for _, m := range mappings {
		if m.From.Name == p.Name {
			return m.To
		}
	}
	return p
}

// --- Or (union) ------------------------------------------------------------

// Or is a union type. Invariant: never directly contains an Or member
// (flattened), and members are pairwise non-equivalent — enforced by
// NewOr, the only public constructor.
type Or struct {
	Children []Type
}

// NewOr builds a flattened, deduplicated union. A single resulting
// member is returned unwrapped (Or of one thing is just that thing).
func NewOr(children ...Type) Type {
	flat := make([]Type, 0, len(children))
	for _, c := range children {
		if o, ok := c.(Or); ok {
			flat = append(flat, o.Children...)
		} else {
			flat = append(flat, c)
		}
	}
	unique := make([]Type, 0, len(flat))
	for _, c := range flat {
		dup := false
		for _, u := range unique {
			if Equals(c, u) {
				dup = true
				break
			}
		}
		if !dup {
			unique = append(unique, c)
		}
	}
	if len(unique) == 0 {
		return Any
	}
	if len(unique) == 1 {
		return unique[0]
	}
	return Or{Children: unique}
}

func (o Or) String() string {
	parts := make([]string, len(o.Children))
	for i, c := range o.Children {
		parts[i] = specParen(c)
	}
	return strings.Join(parts, "|")
}

// contains reports whether t is equivalent to one of o's members.
func (o Or) contains(t Type) bool {
	for _, c := range o.Children {
		if Equals(c, t) {
			return true
		}
	}
	return false
}

func (o Or) Match(other Type) MatchResult {
	if ou, ok := other.(Or); ok {
		var all []Mapping
		for _, member := range ou.Children {
			found := false
			for _, c := range o.Children {
				if res := c.Match(member); res.Matched {
					all = append(all, res.Mappings...)
					found = true
					break
				}
			}
			if !found {
				return noMatch()
			}
		}
		return matchOK(all...)
	}
	// Scan for a member that matches other (and so that other is
	// contained in this union).
	for _, c := range o.Children {
		if res := c.Match(other); res.Matched {
			return res
		}
	}
	return noMatch()
}

func (o Or) ApplyMappings(mappings []Mapping) Type {
	applied := make([]Type, len(o.Children))
	for i, c := range o.Children {
		applied[i] = c.ApplyMappings(mappings)
	}
	return NewOr(applied...)
}

// --- And (tuple) -----------------------------------------------------------

// And is an ordered tuple type.
type And struct {
	Children []Type
}

func (a And) String() string {
	parts := make([]string, len(a.Children))
	for i, c := range a.Children {
		parts[i] = specParen(c)
	}
	return strings.Join(parts, ",")
}

func (a And) Match(other Type) MatchResult {
	o, ok := other.(And)
	if !ok || len(o.Children) != len(a.Children) {
		return noMatch()
	}
	var all []Mapping
	for i, c := range a.Children {
		res := c.Match(o.Children[i])
		if !res.Matched {
			return noMatch()
		}
		all = append(all, res.Mappings...)
	}
	return matchOK(all...)
}

func (a And) ApplyMappings(mappings []Mapping) Type {
	applied := make([]Type, len(a.Children))
	for i, c := range a.Children {
		applied[i] = c.ApplyMappings(mappings)
	}
	return And{Children: applied}
}

// --- Group -------------------------------------------------------------

// Group is a parenthesized wrapper, preserving the cardinality-1 tuple
// distinction: (A) is a Group, not a 1-tuple And.
type Group struct {
	Inner Type
}

func (g Group) String() string { return "(" + g.Inner.String() + ")" }

func (g Group) Match(other Type) MatchResult {
	if o, ok := other.(Group); ok {
		return g.Inner.Match(o.Inner)
	}
	return g.Inner.Match(other)
}

func (g Group) ApplyMappings(mappings []Mapping) Type {
	return Group{Inner: g.Inner.ApplyMappings(mappings)}
}

// --- Array -------------------------------------------------------------

// Array is a homogeneous list type; Element is the minimal Or-reduction
// of every distinct element type observed.
type Array struct {
	Element Type
}

// NewArrayFrom builds an Array type whose Element is the Or-reduction
// over observed (e.g. literal element) types; an empty slice yields
// Array{Element: Any}.
func NewArrayFrom(elementTypes ...Type) Array {
	if len(elementTypes) == 0 {
		return Array{Element: Any}
	}
	return Array{Element: NewOr(elementTypes...)}
}

func (a Array) String() string { return "[" + a.Element.String() + "]" }

func (a Array) Match(other Type) MatchResult {
	o, ok := other.(Array)
	if !ok {
		return noMatch()
	}
	return a.Element.Match(o.Element)
}

func (a Array) ApplyMappings(mappings []Mapping) Type {
	return Array{Element: a.Element.ApplyMappings(mappings)}
}

// --- Function ------------------------------------------------------------

// Function is args → return; Args is always an And (possibly empty).
type Function struct {
	Args   And
	Return Type
}

func (f Function) String() string {
	return f.Args.String() + "→" + f.Return.String()
}

func (f Function) Match(other Type) MatchResult {
	o, ok := other.(Function)
	if !ok {
		return noMatch()
	}
	argRes := f.Args.Match(o.Args)
	if !argRes.Matched {
		return noMatch()
	}
	retRes := f.Return.Match(o.Return)
	if !retRes.Matched {
		return noMatch()
	}
	return matchOK(append(argRes.Mappings, retRes.Mappings...)...)
}

func (f Function) ApplyMappings(mappings []Mapping) Type {
	return Function{
		Args:   f.Args.ApplyMappings(mappings).(And),
		Return: f.Return.ApplyMappings(mappings),
	}
}

// --- Spread ------------------------------------------------------------

// Spread matches an And of zero-or-more Inner.
type Spread struct {
	Inner Type
}

func (s Spread) String() string { return "..." + s.Inner.String() }

func (s Spread) Match(other Type) MatchResult {
	o, ok := other.(And)
	if !ok {
		return noMatch()
	}
	var all []Mapping
	for _, c := range o.Children {
		res := s.Inner.Match(c)
		if !res.Matched {
			return noMatch()
		}
		all = append(all, res.Mappings...)
	}
	return matchOK(all...)
}

func (s Spread) ApplyMappings(mappings []Mapping) Type {
	return Spread{Inner: s.Inner.ApplyMappings(mappings)}
}

// --- helpers -------------------------------------------------------------

// specParen wraps t's specification string in parentheses iff its
// top-level contains ',' or '|' (spec.md §3 "canonical specification").
func specParen(t Type) string {
	s := t.String()
	if strings.ContainsAny(topLevel(s), ",|") {
		return "(" + s + ")"
	}
	return s
}

// topLevel strips out the contents of any already-parenthesized or
// bracketed region so ContainsAny only sees top-level separators.
func topLevel(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		default:
			if depth == 0 {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

// Equals reports whether a and b denote the same type, per spec.md §8's
// invariant: Type.equals(a,b) ⇔ a.match(b).matched ∧ b.match(a).matched.
func Equals(a, b Type) bool {
	return a.Match(b).Matched && b.Match(a).Matched
}
