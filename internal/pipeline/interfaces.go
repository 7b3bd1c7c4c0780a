package pipeline

// Processor is any pipeline stage that consumes and returns a Context;
// a stage that finds c.Failed() true should normally pass c through
// unchanged rather than attempt further work (spec.md §7: "the core
// does not recover").
type Processor interface {
	Process(c *Context) *Context
}

// ProcessorFunc adapts a plain function to Processor.
type ProcessorFunc func(c *Context) *Context

func (f ProcessorFunc) Process(c *Context) *Context { return f(c) }
