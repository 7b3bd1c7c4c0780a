package types

// GetReturnTypeForArgs computes the return type of t when called (or
// dispatched) with argument tuple args, or (nil, false) if t cannot be
// applied to args (spec.md §4.5).
//
// For a Function, it matches args against the function's Args and, on
// success, applies the resulting mappings to Return. For an Or of
// functions, the first matching member wins — and per spec.md §9's
// third open question, the teacher's short-circuit is preserved
// verbatim: the first non-Function member encountered aborts the whole
// lookup with (nil, false) rather than being skipped.
func GetReturnTypeForArgs(t Type, args And) (Type, bool) {
	switch v := t.(type) {
	case Function:
		res := v.Args.Match(args)
		if !res.Matched {
			return nil, false
		}
		condensed, err := CondenseMappings(res.Mappings)
		if err != nil {
			return nil, false
		}
		return v.Return.ApplyMappings(condensed), true
	case Or:
		for _, member := range v.Children {
			fn, ok := member.(Function)
			if !ok {
				// Explicitly forbid recursion by requiring subtypes to
				// be functions; short-circuit rather than continue.
				return nil, false
			}
			if ret, ok := GetReturnTypeForArgs(fn, args); ok {
				return ret, true
			}
		}
		return nil, false
	default:
		return nil, false
	}
}
