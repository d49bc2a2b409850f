// Package diagnostics collects the reports produced while lexing and
// parsing. Reports are plain values accumulated in a Bag; nothing at
// this layer aborts, throws, or ranks severity. Classification, if
// any, belongs to the consumer.
package diagnostics

import (
	"fmt"

	"github.com/pythia-lang/pythia/internal/position"
)

// Kind identifies the grammar or lexical violation being reported.
type Kind int

const (
	UnexpectedToken Kind = iota
	NameRequired
	UnterminatedString
	InvalidRadixDigit
)

func (k Kind) String() string {
	switch k {
	case UnexpectedToken:
		return "unexpected-token"
	case NameRequired:
		return "name-required"
	case UnterminatedString:
		return "unterminated-string"
	case InvalidRadixDigit:
		return "invalid-radix-digit"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Message returns the human-readable report text for the kind.
func (k Kind) Message() string {
	switch k {
	case UnexpectedToken:
		return "unexpected token"
	case NameRequired:
		return "a plain name is required here"
	case UnterminatedString:
		return "unterminated string literal"
	case InvalidRadixDigit:
		return "at least one digit required after radix prefix"
	default:
		return "unknown diagnostic"
	}
}

// Diagnostic is a single report anchored at a source span.
type Diagnostic struct {
	Kind Kind
	Span position.Span
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Span, d.Kind.Message())
}

// Bag accumulates diagnostics for one parse. Reporting never fails
// and never stops the caller.
type Bag struct {
	diags []Diagnostic
}

// NewBag creates an empty diagnostics bag.
func NewBag() *Bag {
	return &Bag{}
}

// Report records one diagnostic.
func (b *Bag) Report(kind Kind, span position.Span) {
	b.diags = append(b.diags, Diagnostic{Kind: kind, Span: span})
}

// All returns the accumulated diagnostics in report order.
func (b *Bag) All() []Diagnostic {
	return b.diags
}

// Count returns the number of accumulated diagnostics.
func (b *Bag) Count() int {
	return len(b.diags)
}

// Empty returns true if nothing has been reported.
func (b *Bag) Empty() bool {
	return len(b.diags) == 0
}
