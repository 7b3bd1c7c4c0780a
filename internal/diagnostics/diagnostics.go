// Package diagnostics implements the error surface of spec.md §6/§7:
// TokenizerError, ParseError, SignatureError, TypeMismatchError, and
// ScopeError are all represented as one Error type distinguished by
// Code, each carrying a Phase, a source token, and a templated
// message — exactly as the teacher represents its lexer/parser/
// analyzer/runtime error families as one DiagnosticError type.
//
// Grounded on internal/diagnostics/diagnostics.go, trimmed to the
// error codes spec.md names and extended with SignatureError's
// suggested-substitution deltas (spec.md §7).
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/freedmand/langcore/internal/langtoken"
	"github.com/freedmand/langcore/internal/naming"
)

// Phase is the pipeline stage that raised the error.
type Phase string

const (
	PhaseLexer  Phase = "lexer"
	PhaseParser Phase = "parser"
	PhaseTypes  Phase = "types"
	PhaseScope  Phase = "scope"
	PhaseRuntime Phase = "runtime"
)

// ErrorCode names one of spec.md §6's error kinds.
type ErrorCode string

const (
	ErrTokenizer      ErrorCode = "TOKENIZER"
	ErrParse          ErrorCode = "PARSE"
	ErrSignature      ErrorCode = "SIGNATURE"
	ErrTypeMismatch   ErrorCode = "TYPE_MISMATCH"
	ErrScopeNotFound  ErrorCode = "SCOPE_NOT_FOUND"
	ErrScopeDefined   ErrorCode = "SCOPE_ALREADY_DEFINED"
	ErrScopeReserved  ErrorCode = "SCOPE_RESERVED"
	ErrScopeConstant  ErrorCode = "SCOPE_CONSTANT"
)

// Error is the single error type behind every named error family in
// spec.md §6: distinguished by Code, not by distinct Go types.
type Error struct {
	Phase   Phase
	Code    ErrorCode
	Message string
	Token   *langtoken.Token

	// Deltas holds SignatureError's suggested source rewrites
	// (spec.md §7); nil for every other error code.
	Deltas []naming.Delta
}

// New builds an Error with no suggested substitutions.
func New(phase Phase, code ErrorCode, message string, tok *langtoken.Token) *Error {
	return &Error{Phase: phase, Code: code, Message: message, Token: tok}
}

// NewSignature builds a SignatureError carrying candidate deltas.
func NewSignature(message string, tok *langtoken.Token, deltas []naming.Delta) *Error {
	return &Error{Phase: PhaseRuntime, Code: ErrSignature, Message: message, Token: tok, Deltas: deltas}
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Phase != "" {
		fmt.Fprintf(&b, "[%s] ", e.Phase)
	}
	fmt.Fprintf(&b, "%s: %s", e.Code, e.Message)
	if e.Token != nil {
		fmt.Fprintf(&b, " (at %d:%d)", e.Token.LineNumber, e.Token.LinePosition)
	}
	if len(e.Deltas) > 0 {
		b.WriteString(" [suggestions:")
		for _, d := range e.Deltas {
			fmt.Fprintf(&b, " %q@%d", d.Replacement, d.CharPosition)
		}
		b.WriteString("]")
	}
	return b.String()
}
