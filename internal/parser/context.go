package parser

import (
	"github.com/pythia-lang/pythia/internal/ast"
	"github.com/pythia-lang/pythia/internal/diagnostics"
	"github.com/pythia-lang/pythia/internal/position"
)

// Context carries the per-parse state: the file being parsed, the
// diagnostics sink, and ownership of the resulting tree.
type Context struct {
	fileName string
	diags    *diagnostics.Bag
	prog     *ast.Program
}

// NewContext creates a parse context. A nil bag discards diagnostics.
func NewContext(fileName string, diags *diagnostics.Bag) *Context {
	return &Context{fileName: fileName, diags: diags}
}

// FileName returns the name of the file being parsed.
func (c *Context) FileName() string { return c.fileName }

// Diags returns the diagnostics sink, which may be nil.
func (c *Context) Diags() *diagnostics.Bag { return c.diags }

// Program returns the parsed tree, or nil when Parse did not produce
// one.
func (c *Context) Program() *ast.Program { return c.prog }

func (c *Context) report(kind diagnostics.Kind, span position.Span) {
	if c.diags != nil {
		c.diags.Report(kind, span)
	}
}

func (c *Context) takeAST(prog *ast.Program) {
	c.prog = prog
}
