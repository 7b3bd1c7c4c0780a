package types

// Intersect computes the structural intersection of two types, used by
// TypeIndex.SetCompete to condense competing mappings for the same
// Polymorphic variable (spec.md §4.5). Returns ok=false for an empty
// intersection.
func Intersect(a, b Type) (Type, bool) {
	if _, ok := a.(anyType); ok {
		return b, true
	}
	if _, ok := b.(anyType); ok {
		return a, true
	}
	switch at := a.(type) {
	case Atom:
		if bt, ok := b.(Atom); ok && bt.Name == at.Name {
			return at, true
		}
		return nil, false
	case Polymorphic:
		if bt, ok := b.(Polymorphic); ok && bt.Name == at.Name {
			return at, true
		}
		return nil, false
	case Or:
		var bPool []Type
		if bo, ok := b.(Or); ok {
			bPool = bo.Children
		} else {
			bPool = []Type{b}
		}
		var common []Type
		for _, x := range at.Children {
			for _, y := range bPool {
				if t, ok := Intersect(x, y); ok {
					common = append(common, t)
				}
			}
		}
		if len(common) == 0 {
			return nil, false
		}
		return NewOr(common...), true
	case And:
		bt, ok := b.(And)
		if !ok || len(bt.Children) != len(at.Children) {
			return nil, false
		}
		out := make([]Type, len(at.Children))
		for i := range at.Children {
			t, ok := Intersect(at.Children[i], bt.Children[i])
			if !ok {
				return nil, false
			}
			out[i] = t
		}
		return And{Children: out}, true
	case Group:
		inner := at.Inner
		if bg, ok := b.(Group); ok {
			t, ok := Intersect(inner, bg.Inner)
			if !ok {
				return nil, false
			}
			return Group{Inner: t}, true
		}
		t, ok := Intersect(inner, b)
		if !ok {
			return nil, false
		}
		return Group{Inner: t}, true
	case Array:
		bt, ok := b.(Array)
		if !ok {
			return nil, false
		}
		t, ok := Intersect(at.Element, bt.Element)
		if !ok {
			return nil, false
		}
		return Array{Element: t}, true
	case Function:
		bt, ok := b.(Function)
		if !ok {
			return nil, false
		}
		args, ok := Intersect(at.Args, bt.Args)
		if !ok {
			return nil, false
		}
		ret, ok := Intersect(at.Return, bt.Return)
		if !ok {
			return nil, false
		}
		return Function{Args: args.(And), Return: ret}, true
	case Spread:
		bt, ok := b.(Spread)
		if !ok {
			return nil, false
		}
		t, ok := Intersect(at.Inner, bt.Inner)
		if !ok {
			return nil, false
		}
		return Spread{Inner: t}, true
	default:
		return nil, false
	}
}
