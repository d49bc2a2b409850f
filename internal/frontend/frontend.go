// Package frontend assembles the lexer and parser into a file-level
// API: load source, pick a dialect, parse, hand back the tree and the
// accumulated diagnostics.
package frontend

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/pythia-lang/pythia/internal/ast"
	"github.com/pythia-lang/pythia/internal/diagnostics"
	"github.com/pythia-lang/pythia/internal/lexer"
	"github.com/pythia-lang/pythia/internal/parser"
)

// Options selects the filesystem and language level for a parse. The
// zero value reads from the host filesystem at the default dialect.
type Options struct {
	// FS is the filesystem LoadFile reads from. Nil means the host
	// filesystem.
	FS afero.Fs
	// LangVersion is a semver language level, such as "2.7" or "3.4".
	// Empty selects the default dialect.
	LangVersion string
}

func (o Options) dialect() (lexer.Dialect, error) {
	if o.LangVersion == "" {
		return lexer.DefaultDialect(), nil
	}
	return lexer.NewDialect(o.LangVersion)
}

func (o Options) fs() afero.Fs {
	if o.FS == nil {
		return afero.NewOsFs()
	}
	return o.FS
}

// Result is the outcome of one parse. Program is nil when the source
// held no statements; Diags always holds whatever was reported.
type Result struct {
	Filename string
	Program  *ast.Program
	Diags    *diagnostics.Bag
}

// Ok reports whether a tree was produced without diagnostics.
func (r *Result) Ok() bool {
	return r.Program != nil && r.Diags.Empty()
}

// Parse runs the full pipeline over in-memory source.
func Parse(filename, source string, opts Options) (*Result, error) {
	dialect, err := opts.dialect()
	if err != nil {
		return nil, err
	}

	bag := diagnostics.NewBag()
	lx := lexer.NewWithConfig(source, lexer.Config{
		Filename: filename,
		Syntax:   lexer.NewSyntax(dialect),
		Diags:    bag,
	})
	ctx := parser.NewContext(filename, bag)
	parser.Parse(lx, ctx)

	return &Result{Filename: filename, Program: ctx.Program(), Diags: bag}, nil
}

// LoadFile reads a file through the configured filesystem and parses
// it.
func LoadFile(path string, opts Options) (*Result, error) {
	source, err := afero.ReadFile(opts.fs(), path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(path, string(source), opts)
}

// Tokenize runs only the lexer, returning the full token stream up to
// and including EOF.
func Tokenize(filename, source string, opts Options) ([]lexer.Token, *diagnostics.Bag, error) {
	dialect, err := opts.dialect()
	if err != nil {
		return nil, nil, err
	}

	bag := diagnostics.NewBag()
	lx := lexer.NewWithConfig(source, lexer.Config{
		Filename: filename,
		Syntax:   lexer.NewSyntax(dialect),
		Diags:    bag,
	})

	var tokens []lexer.Token
	for {
		tok := lx.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == lexer.TokenEOF {
			return tokens, bag, nil
		}
	}
}
