// Package pipeline glues the tokenizer, parser, interpreter, and IR
// translator into the two call paths spec.md's system overview names:
// parse-then-interpret (run a program to a value) and
// parse-then-translate (lower a program to a typed IR tree).
//
// Grounded on the teacher's internal/pipeline.Pipeline (a linear list
// of Processor stages threading one context object through), trimmed
// to these two concrete stage sequences instead of the teacher's
// open-ended trait/module-resolution pipeline.
package pipeline

import (
	"github.com/freedmand/langcore/internal/interp"
	"github.com/freedmand/langcore/internal/ir"
	"github.com/freedmand/langcore/internal/optable"
	"github.com/freedmand/langcore/internal/parser"
)

// Pipeline runs an ordered list of stages over one Context.
type Pipeline struct {
	processors []Processor
}

// New builds a Pipeline from explicit stages, for callers that want to
// compose their own sequence (e.g. drop the interpret stage to only
// type-check).
func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes every stage in order, short-circuiting once a stage
// leaves the context Failed (spec.md §7: errors propagate verbatim,
// no partial recovery).
func (p *Pipeline) Run(c *Context) *Context {
	for _, proc := range p.processors {
		if c.Failed() {
			return c
		}
		c = proc.Process(c)
	}
	return c
}

// parseStage tokenizes and parses c.SourceCode into c.AstRoot.
func parseStage(table *optable.Table) Processor {
	return ProcessorFunc(func(c *Context) *Context {
		p := parser.New(c.SourceCode, table)
		ast, err := p.Parse()
		if err != nil {
			c.Err = err
			return c
		}
		c.AstRoot = ast
		return c
	})
}

// interpretStage tree-walks c.AstRoot into c.Value.
func interpretStage(ip *interp.Interp) Processor {
	return ProcessorFunc(func(c *Context) *Context {
		val, _, err := ip.Interpret(c.AstRoot, interp.NewState())
		if err != nil {
			c.Err = err
			return c
		}
		c.Value = val
		return c
	})
}

// translateStage lowers c.AstRoot into c.IRRoot/c.IRScope.
func translateStage(tr *ir.Translator) Processor {
	return ProcessorFunc(func(c *Context) *Context {
		scope, node, err := tr.Translate(c.AstRoot, nil)
		if err != nil {
			c.Err = err
			return c
		}
		c.IRRoot = node
		c.IRScope = scope
		return c
	})
}

// NewInterpretPipeline builds the parse -> interpret path: tokenize,
// parse, and tree-walk source to a runtime value.
func NewInterpretPipeline() *Pipeline {
	table := optable.New()
	return New(parseStage(table), interpretStage(interp.New()))
}

// NewTranslatePipeline builds the parse -> translate path: tokenize,
// parse, and lower source to a typed IR tree without executing it.
func NewTranslatePipeline() *Pipeline {
	table := optable.New()
	return New(parseStage(table), translateStage(ir.New()))
}

// Interpret runs source through NewInterpretPipeline in one call.
func Interpret(source string) *Context {
	return NewInterpretPipeline().Run(NewContext(source))
}

// Translate runs source through NewTranslatePipeline in one call.
func Translate(source string) *Context {
	return NewTranslatePipeline().Run(NewContext(source))
}
