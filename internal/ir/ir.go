// Package ir implements the IR translator of spec.md §4.9: a static
// lowering from langast.Node to a typed IR tree, used for scope
// analysis and type checking ahead of (or instead of) interpretation.
//
// Grounded on the teacher's internal/analyzer (the "infer, check
// against scope, lower" shape shared by inference.go/declarations.go/
// statements.go) restructured to build an explicit IR tree per spec.md
// §4.9, rather than annotating the original AST in place the way the
// teacher's analyzer does via its TypeMap side table.
package ir

import (
	"fmt"
	"strings"

	"github.com/freedmand/langcore/internal/diagnostics"
	"github.com/freedmand/langcore/internal/langast"
	"github.com/freedmand/langcore/internal/langscope"
	"github.com/freedmand/langcore/internal/langtoken"
	"github.com/freedmand/langcore/internal/types"
	"github.com/freedmand/langcore/internal/typetable"
)

// Kind names an IR node's class (spec.md §4.9).
type Kind string

const (
	Statements Kind = "STATEMENTS"
	Literal    Kind = "LITERAL"
	Variable   Kind = "VARIABLE"
	Assign     Kind = "ASSIGN"
	Operator   Kind = "OPERATOR"
	Array      Kind = "ARRAY"
	Tuple      Kind = "TUPLE"
)

// Node is one IR tree node: a Kind, its resolved Type, and a payload
// whose shape depends on Kind (spec.md §4.9):
//
//   - Literal:  Value holds the literal's raw token text.
//   - Variable: Value holds its scope counter (int).
//   - Assign:   Value holds []any{counter int, valueIR *Node}.
//   - Operator: Value holds []*Node (the lowered children).
//   - Array, Tuple: Value holds []*Node (the lowered elements).
//   - Statements: Value holds []*Node (the lowered statements).
type Node struct {
	Kind  Kind
	Type  types.Type
	Name  string // operator symbol for Operator nodes; "" otherwise
	Value any
}

// Translator lowers AST into IR against the built-in operator table.
type Translator struct {
	Ops *typetable.Table
}

// New builds a Translator over the built-in Int/Float/String/Fraction/
// Variable operator table.
func New() *Translator {
	return &Translator{Ops: typetable.NewBuiltins()}
}

// builtinTypes lists the Type instances pre-populated into a fresh
// scope, each marked type:true, constant:true, reserved:true (spec.md
// §4.9).
var builtinTypes = map[string]types.Type{
	"Int":      typetable.IntType(),
	"Float":    typetable.FloatType(),
	"String":   typetable.StringType(),
	"Fraction": typetable.FractionType(),
}

// NewScope builds a fresh scope pre-populated with the built-in types
// (spec.md §4.9).
func NewScope() *langscope.Scope {
	scope := langscope.New()
	for name, t := range builtinTypes {
		// Initialize cannot fail on a fresh scope with distinct names.
		_, _ = scope.Initialize(name, langscope.Item{
			IsType: true, Constant: true, Reserved: true, Value: t,
		})
	}
	return scope
}

// Translate lowers ast into an IR tree. If scope is nil, a fresh
// built-in-populated scope is derived (spec.md §4.9: "A fresh scope is
// derived when none is supplied").
func (tr *Translator) Translate(ast *langast.Node, scope *langscope.Scope) (*langscope.Scope, *Node, error) {
	if scope == nil {
		scope = NewScope()
	}
	if ast == nil {
		return scope, nil, nil
	}

	switch {
	case ast.Flags.Has(langast.FlagBlock):
		// In a new child scope (spec.md §4.9: "Group: ... if block, in
		// a new child scope"); the parent's scope is returned
		// unchanged, since the block-local bindings don't escape.
		child := scope.Push()
		_, node, err := tr.Translate(ast.Get("body"), child)
		return scope, node, err

	case ast.Flags.Has(langast.FlagGroup):
		return tr.Translate(ast.Get("value"), scope)

	case ast.Flags.Has(langast.FlagStatements):
		children := make([]*Node, 0, len(ast.Params))
		cur := scope
		for _, stmt := range ast.Params {
			var node *Node
			var err error
			cur, node, err = tr.Translate(stmt, cur)
			if err != nil {
				return scope, nil, err
			}
			children = append(children, node)
		}
		return scope, &Node{Kind: Statements, Value: children}, nil

	case ast.Flags.Has(langast.FlagLiteral):
		// Resolve the literal's declared type name in scope (spec.md
		// §4.9), rather than hardcoding it, so a caller that rebinds
		// "Int"/"Float"/"String" in a custom scope is honored.
		typeName, ok := literalTypeNames[ast.Name]
		if !ok {
			return scope, nil, fmt.Errorf("ir: unknown literal kind %q", ast.Name)
		}
		item, err := scope.GetTypeFull(typeName)
		if err != nil {
			return scope, nil, diagnostics.New(diagnostics.PhaseScope, diagnostics.ErrScopeNotFound,
				fmt.Sprintf("type %q is not in scope", typeName), ast.Token)
		}
		return scope, &Node{Kind: Literal, Type: item.Value.(types.Type), Value: ast.TokenLiteral()}, nil

	case ast.Flags.Has(langast.FlagVariable):
		item, err := scope.GetVariableFull(ast.TokenLiteral())
		if err != nil {
			return scope, nil, diagnostics.New(diagnostics.PhaseScope, diagnostics.ErrScopeNotFound,
				fmt.Sprintf("undefined variable %q", ast.TokenLiteral()), ast.Token)
		}
		return scope, &Node{Kind: Variable, Type: item.Value.(types.Type), Value: item.Counter}, nil

	case ast.Flags.Has(langast.FlagAssign):
		_, valueIR, err := tr.Translate(ast.Get("value"), scope)
		if err != nil {
			return scope, nil, err
		}
		if declared := ast.Get("type"); declared != nil {
			declaredType, err := scope.GetTypeFull(declared.TokenLiteral())
			if err != nil {
				return scope, nil, diagnostics.New(diagnostics.PhaseScope, diagnostics.ErrScopeNotFound,
					fmt.Sprintf("type %q is not in scope", declared.TokenLiteral()), declared.Token)
			}
			want := declaredType.Value.(types.Type)
			if !want.Match(valueIR.Type).Matched {
				return scope, nil, diagnostics.New(diagnostics.PhaseTypes, diagnostics.ErrTypeMismatch,
					fmt.Sprintf("cannot assign %s to declared type %s", valueIR.Type, want), ast.Token)
			}
		}
		name := ast.Get("variable").TokenLiteral()
		counter, err := scope.Initialize(name, langscope.Item{Value: valueIR.Type})
		if err != nil {
			return scope, nil, wrapScopeErr(err, ast.Token)
		}
		return scope, &Node{Kind: Assign, Type: valueIR.Type, Value: []any{counter, valueIR}}, nil

	case ast.Flags.Has(langast.FlagReassign):
		name := ast.Get("variable").TokenLiteral()
		existing, err := scope.GetVariableFull(name)
		if err != nil {
			return scope, nil, diagnostics.New(diagnostics.PhaseScope, diagnostics.ErrScopeNotFound,
				fmt.Sprintf("undefined variable %q", name), ast.Token)
		}
		_, valueIR, err := tr.Translate(ast.Get("value"), scope)
		if err != nil {
			return scope, nil, err
		}
		expected := existing.Value.(types.Type)
		if !expected.Match(valueIR.Type).Matched {
			return scope, nil, diagnostics.New(diagnostics.PhaseTypes, diagnostics.ErrTypeMismatch,
				fmt.Sprintf("cannot reassign %q: expected %s, got %s", name, expected, valueIR.Type), ast.Token)
		}
		if err := scope.Set(name, expected); err != nil {
			return scope, nil, wrapScopeErr(err, ast.Token)
		}
		return scope, &Node{Kind: Assign, Type: expected, Value: []any{existing.Counter, valueIR}}, nil

	case ast.Name == "array":
		return tr.translateList(ast, scope, Array, func(elementTypes []types.Type) types.Type {
			return types.NewArrayFrom(elementTypes...)
		})

	case ast.Name == "tuple":
		return tr.translateList(ast, scope, Tuple, func(elementTypes []types.Type) types.Type {
			return types.And{Children: elementTypes}
		})

	default:
		return tr.translateOperator(ast, scope)
	}
}

// translateList lowers an array or tuple literal's elements, threading
// scope sequentially the way translateOperator does, and reduces their
// types via reduceType (spec.md §8 scenario 8's "[2, 3.0]" -> Array
// whose Element is the Or-reduction "Int|Float").
func (tr *Translator) translateList(ast *langast.Node, scope *langscope.Scope, kind Kind, reduceType func([]types.Type) types.Type) (*langscope.Scope, *Node, error) {
	children := make([]*Node, len(ast.Params))
	elementTypes := make([]types.Type, len(ast.Params))
	cur := scope
	for i, child := range ast.Params {
		var node *Node
		var err error
		cur, node, err = tr.Translate(child, cur)
		if err != nil {
			return scope, nil, err
		}
		children[i] = node
		elementTypes[i] = node.Type
	}
	return scope, &Node{Kind: kind, Type: reduceType(elementTypes), Value: children}, nil
}

// translateOperator implements spec.md §4.9's function-like case:
// lower each child, compute argType = And(childReturnTypes...), and
// resolve the return type via the argument-type table — resolving
// §9's open question in favor of a real lookup over the "first
// child's type" placeholder the spec explicitly flags as likely wrong.
func (tr *Translator) translateOperator(ast *langast.Node, scope *langscope.Scope) (*langscope.Scope, *Node, error) {
	children := make([]*Node, len(ast.Params))
	argTypes := make([]types.Type, len(ast.Params))
	cur := scope
	for i, child := range ast.Params {
		var node *Node
		var err error
		cur, node, err = tr.Translate(child, cur)
		if err != nil {
			return scope, nil, err
		}
		children[i] = node
		argTypes[i] = node.Type
	}

	name := dispatchName(ast)
	argType := types.And{Children: argTypes}
	retType, ok := tr.Ops.GetReturnTypeForArgs(name, argType)
	if !ok {
		return scope, nil, diagnostics.New(diagnostics.PhaseTypes, diagnostics.ErrTypeMismatch,
			fmt.Sprintf("no operator signature for %q matches argument types %s", name, argType.String()), ast.Token)
	}
	return scope, &Node{Kind: Operator, Type: retType, Name: ast.Name, Value: children}, nil
}

func dispatchName(ast *langast.Node) string {
	if ast.Name == "-" && len(ast.Params) == 1 {
		return "unary-"
	}
	if ast.Name == "range" {
		return ".."
	}
	return ast.Name
}

// literalTypeNames maps an AST literal node's Name to the built-in
// scope type name it resolves to (spec.md §4.9).
var literalTypeNames = map[string]string{
	"integer": "Int",
	"float":   "Float",
	"string":  "String",
}

func wrapScopeErr(err error, tok *langtoken.Token) error {
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

// String renders the IR using 2-space indentation tokens, used for
// structural test comparisons (spec.md §4.9).
func (n *Node) String() string {
	return n.render(0)
}

func (n *Node) render(depth int) string {
	if n == nil {
		return ""
	}
	indent := strings.Repeat("  ", depth)
	switch n.Kind {
	case Statements:
		var b strings.Builder
		for _, c := range n.Value.([]*Node) {
			b.WriteString(indent + c.render(depth) + "\n")
		}
		return strings.TrimRight(b.String(), "\n")
	case Literal:
		return fmt.Sprintf("%sLITERAL(%s:%v)", indent, n.Type, n.Value)
	case Variable:
		return fmt.Sprintf("%sVARIABLE(%s:#%v)", indent, n.Type, n.Value)
	case Assign:
		pair := n.Value.([]any)
		return fmt.Sprintf("%sASSIGN(%s:#%v,\n%s)", indent, n.Type, pair[0], pair[1].(*Node).render(depth+1))
	case Operator:
		children := n.Value.([]*Node)
		parts := make([]string, len(children))
		for i, c := range children {
			parts[i] = c.render(depth + 1)
		}
		return fmt.Sprintf("%s%s(%s):%s", indent, n.Name, strings.Join(parts, ","), n.Type)
	case Array, Tuple:
		children := n.Value.([]*Node)
		parts := make([]string, len(children))
		for i, c := range children {
			parts[i] = c.render(depth + 1)
		}
		return fmt.Sprintf("%s%s(%s):%s", indent, n.Kind, strings.Join(parts, ","), n.Type)
	default:
		return indent + "?"
	}
}
