// Package ast defines the abstract syntax tree produced by the Pythia
// parser. Nodes fall into disjoint families (Name, Expr, Stmt, Decl,
// Spec) distinguished by marker methods; semantic differences per
// variant are handled by type switches at the use site.
//
// Every node carries source spans for error reporting and tooling.
// Child lists record the location of the separating token before each
// non-first element, so a tree preserves enough of the input for
// round-trip inspection.
package ast

import (
	"strings"

	"github.com/pythia-lang/pythia/internal/position"
)

// Node is the base interface for all AST nodes.
type Node interface {
	// GetSpan returns the source span covered by this node.
	GetSpan() position.Span
	// String returns a compact, human-readable rendering of the node.
	String() string
}

// Name represents identifier-shaped nodes: simple names, dotted paths,
// and the wildcard of a selective import.
type Name interface {
	Node
	nameNode()
}

// Expr represents all expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt represents all statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Decl represents all declaration nodes.
type Decl interface {
	Node
	declNode()
}

// Spec represents specification nodes: the signature-like part of a
// function or class declaration, kept separate from the declared name.
type Spec interface {
	Node
	specNode()
}

// List is an ordered child list. Delims holds the span of the
// separating token before each non-first element; it may grow one past
// the item count when a permitted trailing separator was consumed.
type List[T Node] struct {
	Items  []T
	Delims []position.Span
}

// Append adds an item to the list.
func (l *List[T]) Append(item T) {
	l.Items = append(l.Items, item)
}

// AppendDelim records the span of a consumed separator.
func (l *List[T]) AppendDelim(span position.Span) {
	l.Delims = append(l.Delims, span)
}

// Merge appends another list's items and delimiter records.
func (l *List[T]) Merge(other List[T]) {
	l.Items = append(l.Items, other.Items...)
	l.Delims = append(l.Delims, other.Delims...)
}

// Len returns the number of items.
func (l *List[T]) Len() int { return len(l.Items) }

// GetSpan returns the smallest span covering every item.
func (l *List[T]) GetSpan() position.Span {
	var span position.Span
	for _, item := range l.Items {
		span = position.Join(span, item.GetSpan())
	}
	return span
}

func (l *List[T]) String() string {
	parts := make([]string, len(l.Items))
	for i, item := range l.Items {
		parts[i] = item.String()
	}
	return strings.Join(parts, ", ")
}

// Program is the root of a parsed source file.
type Program struct {
	Span  position.Span
	Stmts []Stmt
}

func (p *Program) GetSpan() position.Span { return p.Span }
func (p *Program) String() string {
	parts := make([]string, len(p.Stmts))
	for i, stmt := range p.Stmts {
		parts[i] = stmt.String()
	}
	return strings.Join(parts, "\n")
}

// ===== Names =====

// SimpleName is a single identifier.
type SimpleName struct {
	Span  position.Span
	Value string
}

func (n *SimpleName) GetSpan() position.Span { return n.Span }
func (n *SimpleName) nameNode()              {}
func (n *SimpleName) String() string         { return n.Value }

// DottedName is a dot-separated module path, as in imports and
// decorators.
type DottedName struct {
	Names List[*SimpleName]
}

func (n *DottedName) GetSpan() position.Span { return n.Names.GetSpan() }
func (n *DottedName) nameNode()              {}
func (n *DottedName) String() string {
	parts := make([]string, len(n.Names.Items))
	for i, name := range n.Names.Items {
		parts[i] = name.Value
	}
	return strings.Join(parts, ".")
}

// StarName is the wildcard of a selective import (from m import *).
type StarName struct {
	Span position.Span
}

func (n *StarName) GetSpan() position.Span { return n.Span }
func (n *StarName) nameNode()              {}
func (n *StarName) String() string         { return "*" }
