package optable

import (
	"github.com/freedmand/langcore/internal/diagnostics"
	"github.com/freedmand/langcore/internal/langast"
	"github.com/freedmand/langcore/internal/langconfig"
	"github.com/freedmand/langcore/internal/langtoken"
)

// typeAnnotationBindingPower is the left-binding-power a Type token
// uses when it appears in infix position directly after a variable
// (the "a Float := 2" form, spec.md §8 scenario 7). It sits below
// langconfig.PrecAssignColon so the declared type binds to the
// variable before "(variable type) := value" is itself reduced by
// the assignment operator.
const typeAnnotationBindingPower = 2

// Table is an ordered registry of behaviors, scanned by Match much
// like internal/types.TypeIndex scans by Type.Match (spec.md §4.3).
type Table struct {
	entries []*Behavior
}

// New builds a fresh Table and registers every behavior in one place,
// mirroring the teacher's single init()-time precedence map but
// sourced from langconfig.AllOperators instead of scattered constants.
func New() *Table {
	t := &Table{}

	// Value operators: literals, variables, type names.
	t.Add(NewValue([]langtoken.Kind{langtoken.Integer}, func(tok langtoken.Token) Node {
		return langast.Literal("integer", &tok)
	}))
	t.Add(NewValue([]langtoken.Kind{langtoken.Float}, func(tok langtoken.Token) Node {
		return langast.Literal("float", &tok)
	}))
	t.Add(NewValue([]langtoken.Kind{langtoken.String}, func(tok langtoken.Token) Node {
		return langast.Literal("string", &tok)
	}))
	t.Add(NewValue([]langtoken.Kind{langtoken.Variable}, func(tok langtoken.Token) Node {
		return langast.Variable(&tok)
	}))
	// Type tokens read as a bare type literal in prefix position, but
	// also bind infix directly after a variable to parse the declared
	// type of a typed assignment ("a Float := 2"); the `:=`/`=`
	// constructors below unwrap the resulting typed-variable node.
	t.Add(&Behavior{
		Kind:             KindValue,
		Kinds:            []langtoken.Kind{langtoken.Type},
		LeftBindingPower: typeAnnotationBindingPower,
		Prefix: func(d Driver, tok langtoken.Token) (Node, error) {
			return langast.TypeLiteral(&tok), nil
		},
		Infix: func(d Driver, tok langtoken.Token, left Node) (Node, error) {
			variable, ok := left.(*langast.Node)
			if !ok || !variable.Flags.Has(langast.FlagVariable) {
				return nil, diagnostics.New(diagnostics.PhaseParser, diagnostics.ErrParse, "a declared type must directly follow a variable", &tok)
			}
			return langast.TypedVariable(&tok, variable, langast.TypeLiteral(&tok)), nil
		},
	})

	// Simple (binary, some also unary) operators, sourced from
	// langconfig's single source of truth.
	for _, op := range langconfig.AllOperators {
		op := op
		switch op.Symbol {
		case ":=", "=":
			// Registered below with their own infix handlers, which
			// deal with a typed-variable left operand (no unary
			// reading, always right-associative).
			continue
		}
		var unaryCtor func(tok langtoken.Token, operand Node) Node
		if op.UnaryPrecedence != 0 {
			unaryCtor = func(tok langtoken.Token, operand Node) Node {
				return langast.Unary(op.Symbol, &tok, operand.(*langast.Node))
			}
		}
		infixCtor := func(tok langtoken.Token, left, right Node) Node {
			if op.Symbol == ".." {
				return langast.Range(&tok, left.(*langast.Node), right.(*langast.Node))
			}
			return langast.Binary(op.Symbol, &tok, left.(*langast.Node), right.(*langast.Node))
		}
		t.Add(NewSimple(op.Symbol, float64(op.Precedence), op.Assoc == langconfig.AssocRight, infixCtor, float64(op.UnaryPrecedence), unaryCtor))
	}

	assignOp := langconfig.GetOperator(":=")
	reassignOp := langconfig.GetOperator("=")
	assignBeh := NewSimple(":=", float64(assignOp.Precedence), true, nil, 0, nil)
	assignBeh.Infix = func(d Driver, tok langtoken.Token, left Node) (Node, error) {
		right, err := d.Expression(assignBeh.RightBindingPowerFor(), nil)
		if err != nil {
			return nil, err
		}
		value := right.(*langast.Node)
		if typed, ok := left.(*langast.Node); ok && typed.Name == "typed-variable" {
			return langast.AssignTyped(&tok, typed.Get("variable"), typed.Get("type"), value), nil
		}
		return langast.Assign(&tok, left.(*langast.Node), value), nil
	}
	t.Add(assignBeh)

	reassignBeh := NewSimple("=", float64(reassignOp.Precedence), true, nil, 0, nil)
	reassignBeh.Infix = func(d Driver, tok langtoken.Token, left Node) (Node, error) {
		variable, ok := left.(*langast.Node)
		if !ok || variable.Name == "typed-variable" {
			return nil, diagnostics.New(diagnostics.PhaseParser, diagnostics.ErrParse, "a reassignment cannot carry a declared type", &tok)
		}
		right, err := d.Expression(reassignBeh.RightBindingPowerFor(), nil)
		if err != nil {
			return nil, err
		}
		return langast.Reassign(&tok, variable, right.(*langast.Node)), nil
	}
	t.Add(reassignBeh)

	// Brace operators: `(...)` grouping/tuple, `[...]` array literal,
	// `{...}` block introducing a new scope (spec.md §4.3).
	parenClose := func(tok langtoken.Token) bool { return tok.Kind == langtoken.Parenthesis && tok.Text == ")" }
	t.Add(NewBrace("(", parenClose, func(tok langtoken.Token, children []Node) Node {
		return langast.Tuple(&tok, toAstNodes(children)...)
	}, func(tok langtoken.Token, inner Node) Node {
		return langast.Group(&tok, inner.(*langast.Node))
	}, false))

	bracketClose := func(tok langtoken.Token) bool { return tok.Kind == langtoken.SquareBracket && tok.Text == "]" }
	t.Add(NewBrace("[", bracketClose, func(tok langtoken.Token, children []Node) Node {
		return langast.Array(&tok, toAstNodes(children)...)
	}, nil, false))

	braceClose := func(tok langtoken.Token) bool { return tok.Kind == langtoken.CurlyBrace && tok.Text == "}" }
	t.Add(NewBlock("{", braceClose, func(tok langtoken.Token, statements []Node) Node {
		return langast.Block(&tok, langast.Statements(&tok, toAstNodes(statements)...))
	}))

	// Dummy operators: closing braces and newlines occupy the table so
	// the parser can recognize them as stream punctuation without a
	// handler of their own.
	t.Add(NewDummy([]langtoken.Kind{langtoken.Parenthesis}, ")"))
	t.Add(NewDummy([]langtoken.Kind{langtoken.SquareBracket}, "]"))
	t.Add(NewDummy([]langtoken.Kind{langtoken.CurlyBrace}, "}"))
	t.Add(NewDummy([]langtoken.Kind{langtoken.Newline}, ""))

	// End operator: synthetic, injected for an exhausted stream.
	t.Add(NewEnd())

	return t
}

func toAstNodes(nodes []Node) []*langast.Node {
	out := make([]*langast.Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.(*langast.Node)
	}
	return out
}

// Add registers a behavior, first-match-wins on later lookups that
// share a Kinds entry (langconfig operators are all distinguished by
// exact Symbol, so collisions don't arise in practice).
func (t *Table) Add(b *Behavior) { t.entries = append(t.entries, b) }

// Lookup scans the table for the first behavior matching tok.
func (t *Table) Lookup(tok langtoken.Token) *Behavior {
	for _, b := range t.entries {
		if b.Match(tok) {
			return b
		}
	}
	return nil
}
