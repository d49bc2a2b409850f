package ast

import (
	"fmt"
	"strings"

	"github.com/pythia-lang/pythia/internal/position"
)

// ImportMember is one selected name of a from-import, optionally
// aliased. Name is a StarName for the wildcard form.
type ImportMember struct {
	Name  Name
	AsLoc position.Span
	Alias *SimpleName
}

func (d *ImportMember) GetSpan() position.Span {
	if d.Alias != nil {
		return position.Join(d.Name.GetSpan(), d.Alias.GetSpan())
	}
	return d.Name.GetSpan()
}
func (d *ImportMember) declNode() {}
func (d *ImportMember) String() string {
	if d.Alias != nil {
		return d.Name.String() + " as " + d.Alias.Value
	}
	return d.Name.String()
}

// ImportModule is one imported module path, optionally aliased. In the
// selective form (from mod import a, b) the selected names are in
// Members and SelectLoc marks the import keyword.
type ImportModule struct {
	Name      Name
	AsLoc     position.Span
	Alias     *SimpleName
	SelectLoc position.Span
	Members   List[*ImportMember]
}

func (d *ImportModule) GetSpan() position.Span {
	span := d.Name.GetSpan()
	if d.Alias != nil {
		span = position.Join(span, d.Alias.GetSpan())
	}
	return position.Join(span, d.Members.GetSpan())
}
func (d *ImportModule) declNode() {}
func (d *ImportModule) String() string {
	if d.Members.Len() > 0 {
		return fmt.Sprintf("from %s import %s", d.Name, &d.Members)
	}
	if d.Alias != nil {
		return d.Name.String() + " as " + d.Alias.Value
	}
	return d.Name.String()
}

// ImportDecl is an import or from-import statement. Dots counts the
// leading relative dots of a from-import; DotsLoc covers them. The
// dots-only relative form (from . import m) has Dots > 0 and modules
// without a selective member list.
type ImportDecl struct {
	KeyLoc  position.Span
	Dots    int
	DotsLoc position.Span
	Modules List[*ImportModule]
}

func (d *ImportDecl) GetSpan() position.Span {
	return position.Join(d.KeyLoc, d.Modules.GetSpan())
}
func (d *ImportDecl) declNode() {}
func (d *ImportDecl) String() string {
	if d.Dots > 0 || (d.Modules.Len() == 1 && d.Modules.Items[0].Members.Len() > 0) {
		prefix := "from " + strings.Repeat(".", d.Dots)
		if d.Modules.Len() == 1 && d.Modules.Items[0].Members.Len() > 0 {
			mod := d.Modules.Items[0]
			return fmt.Sprintf("%s%s import %s", prefix, mod.Name, &mod.Members)
		}
		return fmt.Sprintf("%s import %s", prefix, &d.Modules)
	}
	return "import " + (&d.Modules).String()
}

// VarGroup declares a group of plain names, as in a global statement
// or the identifier targets of a for loop.
type VarGroup struct {
	KeyLoc position.Span
	Names  List[*SimpleName]
}

func (d *VarGroup) GetSpan() position.Span {
	return position.Join(d.KeyLoc, d.Names.GetSpan())
}
func (d *VarGroup) declNode() {}
func (d *VarGroup) String() string {
	return "global " + (&d.Names).String()
}

// ParamKind classifies a formal parameter.
type ParamKind int

const (
	PlainParam ParamKind = iota
	// ListParam collects positional rest arguments (*name).
	ListParam
	// MapParam collects keyword rest arguments (**name).
	MapParam
)

// Param is one formal parameter of a def or lambda.
type Param struct {
	Kind      ParamKind
	StarLoc   position.Span
	Name      *SimpleName
	AssignLoc position.Span
	Default   Expr
}

func (d *Param) GetSpan() position.Span {
	span := d.Name.GetSpan()
	if d.Kind != PlainParam {
		span = position.Join(d.StarLoc, span)
	}
	if d.Default != nil {
		span = position.Join(span, d.Default.GetSpan())
	}
	return span
}
func (d *Param) declNode() {}
func (d *Param) String() string {
	var sb strings.Builder
	switch d.Kind {
	case ListParam:
		sb.WriteByte('*')
	case MapParam:
		sb.WriteString("**")
	}
	sb.WriteString(d.Name.Value)
	if d.Default != nil {
		sb.WriteByte('=')
		sb.WriteString(d.Default.String())
	}
	return sb.String()
}

// ParamClause is a full parameter list. Lparen and Rparen are zero for
// the unparenthesized lambda form.
type ParamClause struct {
	Lparen position.Span
	Params List[*Param]
	Rparen position.Span
}

func (d *ParamClause) GetSpan() position.Span {
	span := position.Join(d.Lparen, d.Rparen)
	return position.Join(span, d.Params.GetSpan())
}
func (d *ParamClause) declNode()      {}
func (d *ParamClause) String() string { return (&d.Params).String() }

// Decorator is one @name or @name(args) line before a def or class.
type Decorator struct {
	AtLoc   position.Span
	Name    Name
	Lparen  position.Span
	Args    List[Expr]
	Rparen  position.Span
	HasCall bool
}

func (d *Decorator) GetSpan() position.Span {
	span := position.Join(d.AtLoc, d.Name.GetSpan())
	if d.HasCall {
		span = position.Join(span, d.Rparen)
	}
	return span
}
func (d *Decorator) String() string {
	if d.HasCall {
		return fmt.Sprintf("@%s(%s)", d.Name, &d.Args)
	}
	return "@" + d.Name.String()
}

// FuncSpec is the signature part of a function: the def keyword, the
// parameter clause, and the colon before the body.
type FuncSpec struct {
	KeyLoc   position.Span
	Params   *ParamClause
	ColonLoc position.Span
}

func (s *FuncSpec) GetSpan() position.Span {
	return position.Join(s.KeyLoc, s.ColonLoc)
}
func (s *FuncSpec) specNode()      {}
func (s *FuncSpec) String() string { return "(" + s.Params.String() + ")" }

// FuncDecl is a def statement.
type FuncDecl struct {
	Decorators []*Decorator
	Name       *SimpleName
	Spec       *FuncSpec
	Body       Stmt
}

func (d *FuncDecl) GetSpan() position.Span {
	span := position.Join(d.Spec.KeyLoc, d.Body.GetSpan())
	for _, dec := range d.Decorators {
		span = position.Join(dec.GetSpan(), span)
	}
	return span
}
func (d *FuncDecl) declNode() {}
func (d *FuncDecl) String() string {
	return fmt.Sprintf("def %s%s: %s", d.Name, d.Spec, d.Body)
}

// RecordSpec is the signature part of a class: the class keyword, the
// base names, and the colon before the body.
type RecordSpec struct {
	KeyLoc   position.Span
	Bases    List[Name]
	ColonLoc position.Span
}

func (s *RecordSpec) GetSpan() position.Span {
	return position.Join(s.KeyLoc, s.ColonLoc)
}
func (s *RecordSpec) specNode() {}
func (s *RecordSpec) String() string {
	if s.Bases.Len() > 0 {
		return "(" + (&s.Bases).String() + ")"
	}
	return ""
}

// ClassDecl is a class statement. Bases hold the names extracted from
// identifier-shaped base expressions.
type ClassDecl struct {
	Decorators []*Decorator
	Name       *SimpleName
	Spec       *RecordSpec
	Body       Stmt
}

func (d *ClassDecl) GetSpan() position.Span {
	span := position.Join(d.Spec.KeyLoc, d.Body.GetSpan())
	for _, dec := range d.Decorators {
		span = position.Join(dec.GetSpan(), span)
	}
	return span
}
func (d *ClassDecl) declNode() {}
func (d *ClassDecl) String() string {
	return fmt.Sprintf("class %s%s: %s", d.Name, d.Spec, d.Body)
}
