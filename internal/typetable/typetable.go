// Package typetable implements the two-level operator dispatch table
// of spec.md §4.8: name -> TypeIndex keyed by argument And-type ->
// {fn, returnSignature?}. Each built-in (Int, Float, String, Fraction,
// Variable) registers a literal constructor plus its operator
// signatures through a ValueTypeOps.
//
// Grounded on the teacher's internal/symbols type-keyed instance
// registries (the trait-implementation lookup shape) generalized here
// around internal/types.TypeIndex's structural Match instead of exact
// trait/type-name equality, and on internal/evaluator/builtins*.go for
// the concrete per-type arithmetic this dispatch table fronts.
package typetable

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/freedmand/langcore/internal/fraction"
	"github.com/freedmand/langcore/internal/types"
)

// Value is a runtime value paired with its concrete Type (spec.md
// §4.8: "if the returned value is not itself typed, it is wrapped
// with the mapped return signature").
type Value struct {
	Type types.Type
	Data any
}

// Fn is a dispatched operator implementation: given the argument
// values (already evaluated) and the mappings Match produced for the
// matched signature, it computes the result value.
type Fn func(mappings []types.Mapping, args []Value) (Value, error)

// signature is one registered signature: its declared argument And-type,
// implementation, and optional declared return type used to wrap an
// untyped Go result.
type signature struct {
	fn     Fn
	ret    types.Type
}

// Table is the two-level dispatch map of spec.md §4.8.
type Table struct {
	ops      map[string]*types.TypeIndex
	literals map[string]func(text string) (Value, error)
}

// New builds an empty table.
func New() *Table {
	return &Table{ops: map[string]*types.TypeIndex{}, literals: map[string]func(text string) (Value, error){}}
}

// RegisterLiteral registers a literal constructor for kind (e.g.
// "integer" for Int's digit-string literal).
func (t *Table) RegisterLiteral(kind string, ctor func(text string) (Value, error)) {
	t.literals[kind] = ctor
}

// Literal builds a runtime Value from token text of the given lexical
// kind (spec.md §4.7: "look up by AST node name in the literal-
// operator table and build the concrete value via the registered
// lambda").
func (t *Table) Literal(kind, text string) (Value, error) {
	ctor, ok := t.literals[kind]
	if !ok {
		return Value{}, fmt.Errorf("typetable: no literal constructor registered for %q", kind)
	}
	return ctor(text)
}

// Register adds a signature for name over argType, with fn computing
// the result and ret declaring its Type (possibly polymorphic, applied
// via mappings before wrapping — see Dispatch).
func (t *Table) Register(name string, argType types.Type, ret types.Type, fn Fn) {
	idx, ok := t.ops[name]
	if !ok {
		idx = types.NewTypeIndex()
		t.ops[name] = idx
	}
	idx.Set(argType, &signature{fn: fn, ret: ret})
}

// Dispatch looks up name's TypeIndex, matches argType against its
// registered signatures, and invokes the winner (spec.md §4.8).
// SignatureError is the caller's responsibility to raise (it needs the
// whole table plus the AST/values for substitution suggestions, which
// this package does not have); Dispatch reports ok=false on a miss.
func (t *Table) Dispatch(name string, argType types.And, args []Value) (Value, bool, error) {
	idx, ok := t.ops[name]
	if !ok {
		return Value{}, false, nil
	}
	valAny, mappings, ok := idx.Get(argType)
	if !ok {
		return Value{}, false, nil
	}
	sig := valAny.(*signature)
	result, err := sig.fn(mappings, args)
	if err != nil {
		return Value{}, true, err
	}
	if result.Type == nil && sig.ret != nil {
		result.Type = sig.ret.ApplyMappings(mappings)
	}
	return result, true, nil
}

// Has reports whether name has any registered signature at all (used
// by the interpreter to distinguish "unknown operator" from "no
// signature matched this argument type").
func (t *Table) Has(name string) bool {
	_, ok := t.ops[name]
	return ok
}

// GetReturnTypeForArgs resolves name's declared return type for argType
// without invoking the signature's implementation — the static
// counterpart of Dispatch, used by the IR translator (spec.md §4.9) to
// type a function-like node from its already-lowered children's types
// instead of executing anything.
func (t *Table) GetReturnTypeForArgs(name string, argType types.And) (types.Type, bool) {
	idx, ok := t.ops[name]
	if !ok {
		return nil, false
	}
	valAny, mappings, ok := idx.Get(argType)
	if !ok {
		return nil, false
	}
	sig := valAny.(*signature)
	if sig.ret == nil {
		return nil, false
	}
	return sig.ret.ApplyMappings(mappings), true
}

// CanDispatch reports whether name has a registered signature matching
// argType, without invoking it — used by SignatureError's substitution
// search to probe a candidate argument-type rewrite (spec.md §4.7)
// without risking a panic from calling fn with placeholder values.
func (t *Table) CanDispatch(name string, argType types.And) bool {
	idx, ok := t.ops[name]
	if !ok {
		return false
	}
	return idx.Has(argType)
}

// --- built-in type registration --------------------------------------

var (
	intT      = types.Atom{Name: "Int"}
	floatT    = types.Atom{Name: "Float"}
	stringT   = types.Atom{Name: "String"}
	fractionT = types.Atom{Name: "Fraction"}
	polyA     = types.Polymorphic{Name: "A'"}
)

// IntType, FloatType, StringType, FractionType are the canonical Atom
// instances built-in operators are registered and dispatched against.
func IntType() types.Type      { return intT }
func FloatType() types.Type    { return floatT }
func StringType() types.Type   { return stringT }
func FractionType() types.Type { return fractionT }

// builtinTypeNames maps a declared type name (e.g. the "Float" in
// "a Float := 2") onto its canonical built-in Atom, for callers that
// check a declared type annotation without going through a
// langscope.Scope lookup (spec.md §8 scenario 7).
var builtinTypeNames = map[string]types.Type{
	"Int":      intT,
	"Float":    floatT,
	"String":   stringT,
	"Fraction": fractionT,
}

// TypeByName resolves a built-in type's name to its canonical Type.
func TypeByName(name string) (types.Type, bool) {
	t, ok := builtinTypeNames[name]
	return t, ok
}

// NewBuiltins builds the table of spec.md §4.8's summary: Int, Float,
// String, Fraction literal constructors and arithmetic, plus
// Variable's assign/reassign signatures.
func NewBuiltins() *Table {
	t := New()
	registerInt(t)
	registerFloat(t)
	registerString(t)
	registerFraction(t)
	registerVariable(t)
	return t
}

func and2(a, b types.Type) types.And { return types.And{Children: []types.Type{a, b}} }
func and1(a types.Type) types.And    { return types.And{Children: []types.Type{a}} }

func asInt(v Value) int64         { return v.Data.(int64) }
func asFloat(v Value) float64     { return v.Data.(float64) }
func asString(v Value) string     { return v.Data.(string) }
func asFraction(v Value) fraction.Fraction { return v.Data.(fraction.Fraction) }

func registerInt(t *Table) {
	t.RegisterLiteral("integer", func(text string) (Value, error) {
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid integer literal %q: %w", text, err)
		}
		return Value{Type: intT, Data: n}, nil
	})

	t.Register("+", and2(intT, intT), intT, func(_ []types.Mapping, args []Value) (Value, error) {
		return Value{Type: intT, Data: asInt(args[0]) + asInt(args[1])}, nil
	})
	t.Register("-", and2(intT, intT), intT, func(_ []types.Mapping, args []Value) (Value, error) {
		return Value{Type: intT, Data: asInt(args[0]) - asInt(args[1])}, nil
	})
	t.Register("*", and2(intT, intT), intT, func(_ []types.Mapping, args []Value) (Value, error) {
		return Value{Type: intT, Data: asInt(args[0]) * asInt(args[1])}, nil
	})
	// FractionDiv ("/") on Int,Int -> Fraction (spec.md §4.8, §8
	// scenario 5: "3/4 + 2/3" must produce a Fraction, not a truncated
	// Int quotient).
	t.Register("/", and2(intT, intT), fractionT, func(_ []types.Mapping, args []Value) (Value, error) {
		b := asInt(args[1])
		if b == 0 {
			return Value{}, fmt.Errorf("fraction division by zero")
		}
		return Value{Type: fractionT, Data: fraction.New(asInt(args[0]), b)}, nil
	})
	// Floor division ("//") on Int,Int -> Int (spec.md §4.8).
	t.Register("//", and2(intT, intT), intT, func(_ []types.Mapping, args []Value) (Value, error) {
		b := asInt(args[1])
		if b == 0 {
			return Value{}, fmt.Errorf("integer division by zero")
		}
		return Value{Type: intT, Data: asInt(args[0]) / b}, nil
	})
	t.Register("**", and2(intT, intT), intT, func(_ []types.Mapping, args []Value) (Value, error) {
		return Value{Type: intT, Data: intPow(asInt(args[0]), asInt(args[1]))}, nil
	})
	t.Register("unary-", and1(intT), intT, func(_ []types.Mapping, args []Value) (Value, error) {
		return Value{Type: intT, Data: -asInt(args[0])}, nil
	})

	// Range ("..") on Int,Int -> [Int]: eagerly materializes every
	// integer from the left endpoint to the right, inclusive, counting
	// down when the right endpoint is smaller (spec.md §1's "primitive
	// range operator"; no concrete scenario pins the exact semantics,
	// so this mirrors the array literal it shares its element type
	// with rather than introducing a separate lazy iterator type).
	rangeT := types.Array{Element: intT}
	t.Register("..", and2(intT, intT), rangeT, func(_ []types.Mapping, args []Value) (Value, error) {
		from, to := asInt(args[0]), asInt(args[1])
		var elements []Value
		if from <= to {
			for i := from; i <= to; i++ {
				elements = append(elements, Value{Type: intT, Data: i})
			}
		} else {
			for i := from; i >= to; i-- {
				elements = append(elements, Value{Type: intT, Data: i})
			}
		}
		return Value{Type: rangeT, Data: elements}, nil
	})
}

// intPow computes base**exp for a non-negative exponent by repeated
// squaring (spec.md §8 scenario 3: "2**2**3" -> Int(256), right-
// associative so exp is itself already reduced to 2**3=8 by the time
// the outer 2**8 call is dispatched).
func intPow(base, exp int64) int64 {
	if exp < 0 {
		return 0
	}
	var result int64 = 1
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

func registerFloat(t *Table) {
	t.RegisterLiteral("float", func(text string) (Value, error) {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid float literal %q: %w", text, err)
		}
		return Value{Type: floatT, Data: f}, nil
	})

	t.Register("+", and2(floatT, floatT), floatT, func(_ []types.Mapping, args []Value) (Value, error) {
		return Value{Type: floatT, Data: asFloat(args[0]) + asFloat(args[1])}, nil
	})
	t.Register("-", and2(floatT, floatT), floatT, func(_ []types.Mapping, args []Value) (Value, error) {
		return Value{Type: floatT, Data: asFloat(args[0]) - asFloat(args[1])}, nil
	})
	t.Register("*", and2(floatT, floatT), floatT, func(_ []types.Mapping, args []Value) (Value, error) {
		return Value{Type: floatT, Data: asFloat(args[0]) * asFloat(args[1])}, nil
	})
	t.Register("/", and2(floatT, floatT), floatT, func(_ []types.Mapping, args []Value) (Value, error) {
		return Value{Type: floatT, Data: asFloat(args[0]) / asFloat(args[1])}, nil
	})
	t.Register("**", and2(floatT, floatT), floatT, func(_ []types.Mapping, args []Value) (Value, error) {
		return Value{Type: floatT, Data: math.Pow(asFloat(args[0]), asFloat(args[1]))}, nil
	})
	t.Register("unary-", and1(floatT), floatT, func(_ []types.Mapping, args []Value) (Value, error) {
		return Value{Type: floatT, Data: -asFloat(args[0])}, nil
	})
}

func registerString(t *Table) {
	t.RegisterLiteral("string", func(text string) (Value, error) {
		// Opaque payload between single quotes (spec.md §6): escapes
		// are not yet processed.
		unquoted := text
		if len(text) >= 2 && strings.HasPrefix(text, "'") && strings.HasSuffix(text, "'") {
			unquoted = text[1 : len(text)-1]
		}
		return Value{Type: stringT, Data: unquoted}, nil
	})

	t.Register("+", and2(stringT, stringT), stringT, func(_ []types.Mapping, args []Value) (Value, error) {
		return Value{Type: stringT, Data: asString(args[0]) + asString(args[1])}, nil
	})
	// Mul (String,Int): n<0 returns the reversed string repeated |n|
	// times (spec.md §4.8).
	t.Register("*", and2(stringT, intT), stringT, func(_ []types.Mapping, args []Value) (Value, error) {
		s := asString(args[0])
		n := asInt(args[1])
		if n < 0 {
			s = reverseString(s)
			n = -n
		}
		if n <= 0 {
			return Value{Type: stringT, Data: ""}, nil
		}
		return Value{Type: stringT, Data: strings.Repeat(s, int(n))}, nil
	})
	t.Register("unary-", and1(stringT), stringT, func(_ []types.Mapping, args []Value) (Value, error) {
		return Value{Type: stringT, Data: reverseString(asString(args[0]))}, nil
	})
}

func reverseString(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

func registerFraction(t *Table) {
	// Literal `(num,den)` reduced (spec.md §4.8). Text is "num/den".
	t.RegisterLiteral("fraction", func(text string) (Value, error) {
		parts := strings.SplitN(text, "/", 2)
		if len(parts) != 2 {
			return Value{}, fmt.Errorf("invalid fraction literal %q", text)
		}
		num, ok1 := new(big.Int).SetString(strings.TrimSpace(parts[0]), 10)
		den, ok2 := new(big.Int).SetString(strings.TrimSpace(parts[1]), 10)
		if !ok1 || !ok2 {
			return Value{}, fmt.Errorf("invalid fraction literal %q", text)
		}
		return Value{Type: fractionT, Data: fraction.Reduce(fraction.Fraction{Num: num, Den: den})}, nil
	})

	t.Register("+", and2(fractionT, fractionT), fractionT, func(_ []types.Mapping, args []Value) (Value, error) {
		return Value{Type: fractionT, Data: fraction.Add(asFraction(args[0]), asFraction(args[1]))}, nil
	})
	t.Register("-", and2(fractionT, fractionT), fractionT, func(_ []types.Mapping, args []Value) (Value, error) {
		return Value{Type: fractionT, Data: fraction.Sub(asFraction(args[0]), asFraction(args[1]))}, nil
	})
	t.Register("*", and2(fractionT, fractionT), fractionT, func(_ []types.Mapping, args []Value) (Value, error) {
		return Value{Type: fractionT, Data: fraction.Mul(asFraction(args[0]), asFraction(args[1]))}, nil
	})
	t.Register("/", and2(fractionT, fractionT), fractionT, func(_ []types.Mapping, args []Value) (Value, error) {
		return Value{Type: fractionT, Data: fraction.Div(asFraction(args[0]), asFraction(args[1]))}, nil
	})

	// (Fraction,Int) and (Int,Fraction) overloads.
	t.Register("+", and2(fractionT, intT), fractionT, func(_ []types.Mapping, args []Value) (Value, error) {
		return Value{Type: fractionT, Data: fraction.Add(asFraction(args[0]), fraction.New(asInt(args[1]), 1))}, nil
	})
	t.Register("+", and2(intT, fractionT), fractionT, func(_ []types.Mapping, args []Value) (Value, error) {
		return Value{Type: fractionT, Data: fraction.Add(fraction.New(asInt(args[0]), 1), asFraction(args[1]))}, nil
	})
	t.Register("-", and2(fractionT, intT), fractionT, func(_ []types.Mapping, args []Value) (Value, error) {
		return Value{Type: fractionT, Data: fraction.Sub(asFraction(args[0]), fraction.New(asInt(args[1]), 1))}, nil
	})
	t.Register("-", and2(intT, fractionT), fractionT, func(_ []types.Mapping, args []Value) (Value, error) {
		return Value{Type: fractionT, Data: fraction.Sub(fraction.New(asInt(args[0]), 1), asFraction(args[1]))}, nil
	})
	t.Register("*", and2(fractionT, intT), fractionT, func(_ []types.Mapping, args []Value) (Value, error) {
		return Value{Type: fractionT, Data: fraction.Mul(asFraction(args[0]), fraction.New(asInt(args[1]), 1))}, nil
	})
	t.Register("*", and2(intT, fractionT), fractionT, func(_ []types.Mapping, args []Value) (Value, error) {
		return Value{Type: fractionT, Data: fraction.Mul(fraction.New(asInt(args[0]), 1), asFraction(args[1]))}, nil
	})
	t.Register("/", and2(fractionT, intT), fractionT, func(_ []types.Mapping, args []Value) (Value, error) {
		return Value{Type: fractionT, Data: fraction.Div(asFraction(args[0]), fraction.New(asInt(args[1]), 1))}, nil
	})
	t.Register("/", and2(intT, fractionT), fractionT, func(_ []types.Mapping, args []Value) (Value, error) {
		return Value{Type: fractionT, Data: fraction.Div(fraction.New(asInt(args[0]), 1), asFraction(args[1]))}, nil
	})

	// Unary '-' multiplies the numerator by -1 (spec.md §4.8).
	t.Register("unary-", and1(fractionT), fractionT, func(_ []types.Mapping, args []Value) (Value, error) {
		return Value{Type: fractionT, Data: fraction.Neg(asFraction(args[0]))}, nil
	})
}

// VariableMarker is the Type registered for a Variable node's own
// "value" prior to assignment dispatch resolving it to A' (spec.md
// §4.8: "assign / reassign operators that accept (Variable, A') and
// return A'").
var VariableMarker = types.Atom{Name: "Variable"}

func registerVariable(t *Table) {
	assignReturn := types.Polymorphic{Name: "A'"}
	t.Register(":=", and2(VariableMarker, polyA), assignReturn, func(mappings []types.Mapping, args []Value) (Value, error) {
		return args[1], nil
	})
	t.Register("=", and2(VariableMarker, polyA), assignReturn, func(mappings []types.Mapping, args []Value) (Value, error) {
		return args[1], nil
	})
}
