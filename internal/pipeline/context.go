package pipeline

import (
	"github.com/freedmand/langcore/internal/diagnostics"
	"github.com/freedmand/langcore/internal/ir"
	"github.com/freedmand/langcore/internal/langast"
	"github.com/freedmand/langcore/internal/langscope"
	"github.com/freedmand/langcore/internal/typetable"
)

// Context holds all the data passed between pipeline stages: source in,
// AST/IR/value out, plus the first error that stopped the pipeline.
//
// Grounded on the teacher's internal/pipeline/context.go PipelineContext
// (source/AST/symbol-table/error fields carried through one struct),
// trimmed of the trait/module registries this language has no analog
// for, and retargeted at langast/langscope/typetable instead of the
// teacher's ast/symbols/typesystem packages.
type Context struct {
	SourceCode string
	AstRoot    *langast.Node
	IRRoot     *ir.Node
	IRScope    *langscope.Scope
	Value      typetable.Value
	Err        error
}

// NewContext initializes a fresh Context for source.
func NewContext(source string) *Context {
	return &Context{SourceCode: source}
}

// Failed reports whether a stage has already recorded a terminal error.
func (c *Context) Failed() bool { return c.Err != nil }

// AsDiagnostic narrows Err to *diagnostics.Error when possible (every
// error this pipeline's stages raise is one; a nil or foreign error
// returns ok=false).
func (c *Context) AsDiagnostic() (*diagnostics.Error, bool) {
	de, ok := c.Err.(*diagnostics.Error)
	return de, ok
}
