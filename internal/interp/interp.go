// Package interp implements the tree-walking interpreter of spec.md
// §4.7: State{Scope}, interpret(ast, state) -> {value, state}, with
// SignatureError substitution-suggestion deltas on a dispatch miss.
//
// Grounded on the teacher's internal/evaluator (the Evaluator-carries-
// environment shape of evaluator.go, and expressions.go's per-
// construct eval functions), restructured around a single dispatch
// switch over langast.Node.Flags/Name feeding internal/typetable's
// two-level operator table instead of the teacher's Go-type-switch
// Visitor and per-trait ClassImplementations registry.
package interp

import (
	"fmt"

	"github.com/freedmand/langcore/internal/diagnostics"
	"github.com/freedmand/langcore/internal/langast"
	"github.com/freedmand/langcore/internal/langscope"
	"github.com/freedmand/langcore/internal/langtoken"
	"github.com/freedmand/langcore/internal/naming"
	"github.com/freedmand/langcore/internal/types"
	"github.com/freedmand/langcore/internal/typetable"
)

// State carries the interpreter's mutable context (spec.md §4.7:
// "State = {scope}").
type State struct {
	Scope *Scope
}

// Scope is an alias for langscope.Scope; each variable's Item.Value
// holds a binding (below), so its runtime Value (not just its static
// Type) travels with it.
type Scope = langscope.Scope

// Interp holds the operator table used to resolve literals and
// dispatch operator nodes; it is immutable once constructed (spec.md
// §5: "the type table is populated once at construction and treated as
// read-only thereafter").
type Interp struct {
	Ops *typetable.Table
}

// New builds an interpreter over the built-in Int/Float/String/
// Fraction/Variable operator table.
func New() *Interp {
	return &Interp{Ops: typetable.NewBuiltins()}
}

// NewState builds a fresh top-level State with an empty root scope.
func NewState() *State {
	return &State{Scope: langscope.New()}
}

// binding is what a variable's scope Item.Value holds: its current
// runtime value.
type binding struct {
	value typetable.Value
}

// Interpret evaluates ast under state, returning the result value and
// the (possibly same) state — child-scope constructs like blocks
// return the outer state unchanged, matching spec.md §4.7's "block
// groups create a child state" being local to that evaluation.
func (ip *Interp) Interpret(node *langast.Node, state *State) (typetable.Value, *State, error) {
	if node == nil {
		return typetable.Value{}, state, nil
	}

	switch {
	case node.Flags.Has(langast.FlagBlock):
		// Block groups create a child state (spec.md §4.7); the outer
		// state is returned unchanged to the caller. Checked before the
		// plain FlagStatements case below since a block node carries
		// both bits (langast.Block sets FlagBlock|FlagStatements).
		child := &State{Scope: state.Scope.Push()}
		val, _, err := ip.Interpret(node.Get("body"), child)
		if err != nil {
			return typetable.Value{}, state, err
		}
		return val, state, nil

	case node.Flags.Has(langast.FlagStatements):
		var last typetable.Value
		cur := state
		for _, stmt := range node.Params {
			var err error
			last, cur, err = ip.Interpret(stmt, cur)
			if err != nil {
				return typetable.Value{}, state, err
			}
		}
		return last, state, nil

	case node.Flags.Has(langast.FlagGroup):
		return ip.Interpret(node.Get("value"), state)

	case node.Flags.Has(langast.FlagLiteral):
		val, err := ip.Ops.Literal(node.Name, node.TokenLiteral())
		if err != nil {
			return typetable.Value{}, state, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrTypeMismatch, err.Error(), node.Token)
		}
		return val, state, nil

	case node.Flags.Has(langast.FlagVariable):
		item, ok := state.Scope.Get(node.TokenLiteral())
		if !ok {
			return typetable.Value{}, state, diagnostics.New(diagnostics.PhaseScope, diagnostics.ErrScopeNotFound, fmt.Sprintf("undefined variable %q", node.TokenLiteral()), node.Token)
		}
		b, _ := item.Value.(binding)
		return b.value, state, nil

	case node.Flags.Has(langast.FlagAssign):
		value, _, err := ip.Interpret(node.Get("value"), state)
		if err != nil {
			return typetable.Value{}, state, err
		}
		if declared := node.Get("type"); declared != nil {
			want, ok := typetable.TypeByName(declared.TokenLiteral())
			if !ok {
				return typetable.Value{}, state, diagnostics.New(diagnostics.PhaseScope, diagnostics.ErrScopeNotFound,
					fmt.Sprintf("type %q is not in scope", declared.TokenLiteral()), declared.Token)
			}
			if !want.Match(value.Type).Matched {
				return typetable.Value{}, state, diagnostics.New(diagnostics.PhaseTypes, diagnostics.ErrTypeMismatch,
					fmt.Sprintf("cannot assign %s to declared type %s", value.Type, want), node.Token)
			}
		}
		name := node.Get("variable").TokenLiteral()
		if _, err := state.Scope.Initialize(name, langscope.Item{Value: binding{value: value}}); err != nil {
			return typetable.Value{}, state, wrapScopeError(err, node.Token)
		}
		return value, state, nil

	case node.Flags.Has(langast.FlagReassign):
		value, _, err := ip.Interpret(node.Get("value"), state)
		if err != nil {
			return typetable.Value{}, state, err
		}
		name := node.Get("variable").TokenLiteral()
		current, ok := state.Scope.Get(name)
		if ok {
			if currentBinding, isBinding := current.Value.(binding); isBinding && currentBinding.value.Type != nil && value.Type != nil {
				if !types.Equals(currentBinding.value.Type, value.Type) {
					return typetable.Value{}, state, diagnostics.New(diagnostics.PhaseTypes, diagnostics.ErrTypeMismatch,
						fmt.Sprintf("cannot reassign %q of type %s with value of type %s", name, currentBinding.value.Type, value.Type), node.Token)
				}
			}
		}
		if err := state.Scope.Set(name, binding{value: value}); err != nil {
			return typetable.Value{}, state, wrapScopeError(err, node.Token)
		}
		return value, state, nil

	case node.Name == "array":
		return ip.interpretList(node, state, func(elementTypes []types.Type) types.Type {
			return types.NewArrayFrom(elementTypes...)
		})

	case node.Name == "tuple":
		return ip.interpretList(node, state, func(elementTypes []types.Type) types.Type {
			return types.And{Children: elementTypes}
		})

	default:
		return ip.interpretOperator(node, state)
	}
}

// interpretList evaluates an array or tuple literal's elements
// left-to-right and wraps them as a single Value whose Data is the
// []typetable.Value of evaluated elements and whose Type is built from
// the elements' types by reduceType (spec.md §8 scenario 8: "[2, 3.0]"
// has type "[Int|Float]").
func (ip *Interp) interpretList(node *langast.Node, state *State, reduceType func([]types.Type) types.Type) (typetable.Value, *State, error) {
	elements := make([]typetable.Value, len(node.Params))
	elementTypes := make([]types.Type, len(node.Params))
	for i, child := range node.Params {
		val, _, err := ip.Interpret(child, state)
		if err != nil {
			return typetable.Value{}, state, err
		}
		elements[i] = val
		elementTypes[i] = val.Type
	}
	return typetable.Value{Type: reduceType(elementTypes), Data: elements}, state, nil
}

// interpretOperator implements spec.md §4.7's fallback case: evaluate
// each parameter, form argType = And(values...), dispatch
// opTable[ast.name][argType], and raise SignatureError on a miss.
func (ip *Interp) interpretOperator(node *langast.Node, state *State) (typetable.Value, *State, error) {
	values := make([]typetable.Value, len(node.Params))
	argTypes := make([]types.Type, len(node.Params))
	for i, child := range node.Params {
		val, _, err := ip.Interpret(child, state)
		if err != nil {
			return typetable.Value{}, state, err
		}
		values[i] = val
		argTypes[i] = val.Type
	}

	name := dispatchName(node)
	argType := types.And{Children: argTypes}
	result, ok, err := ip.Ops.Dispatch(name, argType, values)
	if err != nil {
		return typetable.Value{}, state, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrTypeMismatch, err.Error(), node.Token)
	}
	if !ok {
		return typetable.Value{}, state, ip.signatureError(node, name, argType)
	}
	return result, state, nil
}

// dispatchName maps a unary operator node (one param, shared symbol
// with its binary form, e.g. '-') onto the distinct "unary-" typetable
// registration so Int/Float/String/Fraction's unary overloads don't
// collide with their binary ones of the same symbol.
func dispatchName(node *langast.Node) string {
	if node.Name == "-" && len(node.Params) == 1 {
		return "unary-"
	}
	if node.Name == "range" {
		return ".."
	}
	return node.Name
}

func wrapScopeError(err error, tok *langtoken.Token) error {
	se, ok := err.(*langscope.Error)
	if !ok {
		return err
	}
	var code diagnostics.ErrorCode
	switch se.Kind {
	case langscope.AlreadyDefined:
		code = diagnostics.ErrScopeDefined
	case langscope.Reserved:
		code = diagnostics.ErrScopeReserved
	case langscope.Constant:
		code = diagnostics.ErrScopeConstant
	default:
		code = diagnostics.ErrScopeNotFound
	}
	return diagnostics.New(diagnostics.PhaseScope, code, se.Error(), tok)
}

// substitution describes one of spec.md §4.7's named unary rewrites:
// "Int -> String by quoting, String -> Int if the literal parses as
// '\d+'". Each entry tries to produce a same-position replacement for
// one argument and re-dispatch with that argument's type swapped.
type substitution struct {
	from, to types.Type
	rewrite  func(tok string) (newText string, ok bool)
}

var substitutions = []substitution{
	{
		from: typetable.IntType(), to: typetable.StringType(),
		rewrite: func(tok string) (string, bool) { return "'" + tok + "'", true },
	},
	{
		from: typetable.StringType(), to: typetable.IntType(),
		rewrite: func(tok string) (string, bool) {
			inner := tok
			if len(tok) >= 2 && tok[0] == '\'' && tok[len(tok)-1] == '\'' {
				inner = tok[1 : len(tok)-1]
			}
			for _, r := range inner {
				if r < '0' || r > '9' {
					return "", false
				}
			}
			if inner == "" {
				return "", false
			}
			return inner, true
		},
	},
}

// signatureError builds spec.md §4.7's SignatureError: for each
// argument whose type has a known unary substitution, test whether
// swapping that one argument's type makes argType dispatch, and if so
// emit a Delta suggesting the source rewrite.
func (ip *Interp) signatureError(node *langast.Node, name string, argType types.And) error {
	var deltas []naming.Delta
	for i, child := range argType.Children {
		if child == nil || i >= len(node.Params) {
			continue
		}
		argTok := node.Params[i].Token
		if argTok == nil {
			continue
		}
		for _, sub := range substitutions {
			if !types.Equals(child, sub.from) {
				continue
			}
			newText, ok := sub.rewrite(argTok.Text)
			if !ok {
				continue
			}
			candidate := make([]types.Type, len(argType.Children))
			copy(candidate, argType.Children)
			candidate[i] = sub.to
			if ip.Ops.CanDispatch(name, types.And{Children: candidate}) {
				deltas = append(deltas, naming.Delta{
					CharPosition: argTok.CharPosition,
					Length:       len(argTok.Text),
					Replacement:  newText,
				})
			}
		}
	}
	msg := fmt.Sprintf("no signature for %q matches argument types %s", name, argType.String())
	return diagnostics.NewSignature(msg, node.Token, deltas)
}
