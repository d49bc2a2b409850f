package ast

import (
	"fmt"
	"strings"

	"github.com/pythia-lang/pythia/internal/position"
)

// BadStmt is a placeholder produced during error recovery.
type BadStmt struct {
	Span position.Span
}

func (s *BadStmt) GetSpan() position.Span { return s.Span }
func (s *BadStmt) stmtNode()              {}
func (s *BadStmt) String() string         { return "<bad stmt>" }

// ExprStmt evaluates expressions for effect, including assignments.
type ExprStmt struct {
	Exprs List[Expr]
}

func (s *ExprStmt) GetSpan() position.Span { return s.Exprs.GetSpan() }
func (s *ExprStmt) stmtNode()              {}
func (s *ExprStmt) String() string         { return (&s.Exprs).String() }

// BlockStmt groups statements: an indented suite, or several small
// statements joined by semicolons on one line.
type BlockStmt struct {
	Stmts []Stmt
}

func (s *BlockStmt) GetSpan() position.Span {
	var span position.Span
	for _, stmt := range s.Stmts {
		span = position.Join(span, stmt.GetSpan())
	}
	return span
}
func (s *BlockStmt) stmtNode() {}
func (s *BlockStmt) String() string {
	parts := make([]string, len(s.Stmts))
	for i, stmt := range s.Stmts {
		parts[i] = stmt.String()
	}
	return strings.Join(parts, "; ")
}

// DeclStmt wraps a declaration appearing in statement position.
type DeclStmt struct {
	Decl Decl
}

func (s *DeclStmt) GetSpan() position.Span { return s.Decl.GetSpan() }
func (s *DeclStmt) stmtNode()              {}
func (s *DeclStmt) String() string         { return s.Decl.String() }

// PassStmt is the no-op statement.
type PassStmt struct {
	KeyLoc position.Span
}

func (s *PassStmt) GetSpan() position.Span { return s.KeyLoc }
func (s *PassStmt) stmtNode()              {}
func (s *PassStmt) String() string         { return "pass" }

// BreakStmt exits the innermost loop.
type BreakStmt struct {
	KeyLoc position.Span
}

func (s *BreakStmt) GetSpan() position.Span { return s.KeyLoc }
func (s *BreakStmt) stmtNode()              {}
func (s *BreakStmt) String() string         { return "break" }

// ContinueStmt advances the innermost loop.
type ContinueStmt struct {
	KeyLoc position.Span
}

func (s *ContinueStmt) GetSpan() position.Span { return s.KeyLoc }
func (s *ContinueStmt) stmtNode()              {}
func (s *ContinueStmt) String() string         { return "continue" }

// ReturnStmt returns zero or more values from the enclosing function.
type ReturnStmt struct {
	KeyLoc position.Span
	Values List[Expr]
}

func (s *ReturnStmt) GetSpan() position.Span {
	if s.Values.Len() == 0 {
		return s.KeyLoc
	}
	return position.Join(s.KeyLoc, s.Values.GetSpan())
}
func (s *ReturnStmt) stmtNode() {}
func (s *ReturnStmt) String() string {
	if s.Values.Len() == 0 {
		return "return"
	}
	return "return " + (&s.Values).String()
}

// RaiseStmt raises an exception. All three positions are optional:
// raise, raise exc, raise exc, arg, raise exc, arg, traceback.
type RaiseStmt struct {
	KeyLoc    position.Span
	Exc       Expr
	Arg       Expr
	Traceback Expr
}

func (s *RaiseStmt) GetSpan() position.Span {
	span := s.KeyLoc
	for _, e := range []Expr{s.Exc, s.Arg, s.Traceback} {
		if e != nil {
			span = position.Join(span, e.GetSpan())
		}
	}
	return span
}
func (s *RaiseStmt) stmtNode() {}
func (s *RaiseStmt) String() string {
	var sb strings.Builder
	sb.WriteString("raise")
	for i, e := range []Expr{s.Exc, s.Arg, s.Traceback} {
		if e == nil {
			break
		}
		if i == 0 {
			sb.WriteByte(' ')
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(e.String())
	}
	return sb.String()
}

// YieldStmt is a yield expression in statement position.
type YieldStmt struct {
	X *YieldExpr
}

func (s *YieldStmt) GetSpan() position.Span { return s.X.GetSpan() }
func (s *YieldStmt) stmtNode()              {}
func (s *YieldStmt) String() string         { return s.X.String() }

// PrintStmt is the legacy print statement. Dest is the chevron target
// of the "print >>dest" form. TrailingComma records the final comma
// that suppresses the newline.
type PrintStmt struct {
	KeyLoc        position.Span
	DestLoc       position.Span
	Dest          Expr
	Args          List[Expr]
	TrailingComma bool
}

func (s *PrintStmt) GetSpan() position.Span {
	span := s.KeyLoc
	if s.Dest != nil {
		span = position.Join(span, s.Dest.GetSpan())
	}
	return position.Join(span, s.Args.GetSpan())
}
func (s *PrintStmt) stmtNode() {}
func (s *PrintStmt) String() string {
	var sb strings.Builder
	sb.WriteString("print")
	if s.Dest != nil {
		sb.WriteString(" >>")
		sb.WriteString(s.Dest.String())
		if s.Args.Len() > 0 {
			sb.WriteByte(',')
		}
	}
	if s.Args.Len() > 0 {
		sb.WriteByte(' ')
		sb.WriteString((&s.Args).String())
	}
	return sb.String()
}

// DelStmt unbinds its targets.
type DelStmt struct {
	KeyLoc  position.Span
	Targets List[Expr]
}

func (s *DelStmt) GetSpan() position.Span {
	return position.Join(s.KeyLoc, s.Targets.GetSpan())
}
func (s *DelStmt) stmtNode()      {}
func (s *DelStmt) String() string { return "del " + (&s.Targets).String() }

// ExecStmt is the legacy exec statement, with optional globals and
// locals after "in".
type ExecStmt struct {
	KeyLoc  position.Span
	Code    Expr
	InLoc   position.Span
	Globals Expr
	Locals  Expr
}

func (s *ExecStmt) GetSpan() position.Span {
	span := position.Join(s.KeyLoc, s.Code.GetSpan())
	if s.Locals != nil {
		span = position.Join(span, s.Locals.GetSpan())
	} else if s.Globals != nil {
		span = position.Join(span, s.Globals.GetSpan())
	}
	return span
}
func (s *ExecStmt) stmtNode() {}
func (s *ExecStmt) String() string {
	var sb strings.Builder
	sb.WriteString("exec ")
	sb.WriteString(s.Code.String())
	if s.Globals != nil {
		sb.WriteString(" in ")
		sb.WriteString(s.Globals.String())
		if s.Locals != nil {
			sb.WriteString(", ")
			sb.WriteString(s.Locals.String())
		}
	}
	return sb.String()
}

// AssertStmt checks a condition, with an optional message.
type AssertStmt struct {
	KeyLoc position.Span
	Cond   Expr
	Msg    Expr
}

func (s *AssertStmt) GetSpan() position.Span {
	span := position.Join(s.KeyLoc, s.Cond.GetSpan())
	if s.Msg != nil {
		span = position.Join(span, s.Msg.GetSpan())
	}
	return span
}
func (s *AssertStmt) stmtNode() {}
func (s *AssertStmt) String() string {
	if s.Msg != nil {
		return fmt.Sprintf("assert %s, %s", s.Cond, s.Msg)
	}
	return "assert " + s.Cond.String()
}

// IfStmt is a conditional. An elif chain nests: each elif becomes the
// IfStmt stored in Else.
type IfStmt struct {
	IfLoc   position.Span
	Cond    Expr
	Body    Stmt
	ElseLoc position.Span
	Else    Stmt
}

func (s *IfStmt) GetSpan() position.Span {
	span := position.Join(s.IfLoc, s.Body.GetSpan())
	if s.Else != nil {
		span = position.Join(span, s.Else.GetSpan())
	}
	return span
}
func (s *IfStmt) stmtNode() {}
func (s *IfStmt) String() string {
	out := fmt.Sprintf("if %s: %s", s.Cond, s.Body)
	if s.Else != nil {
		out += " else: " + s.Else.String()
	}
	return out
}

// WhileStmt loops while the condition holds; the optional else suite
// runs when the loop ends without a break.
type WhileStmt struct {
	KeyLoc  position.Span
	Cond    Expr
	Body    Stmt
	ElseLoc position.Span
	Else    Stmt
}

func (s *WhileStmt) GetSpan() position.Span {
	span := position.Join(s.KeyLoc, s.Body.GetSpan())
	if s.Else != nil {
		span = position.Join(span, s.Else.GetSpan())
	}
	return span
}
func (s *WhileStmt) stmtNode() {}
func (s *WhileStmt) String() string {
	out := fmt.Sprintf("while %s: %s", s.Cond, s.Body)
	if s.Else != nil {
		out += " else: " + s.Else.String()
	}
	return out
}

// ForStmt iterates targets over a range list; the optional else suite
// runs when the loop ends without a break.
type ForStmt struct {
	KeyLoc  position.Span
	Targets List[Expr]
	InLoc   position.Span
	Iter    List[Expr]
	Body    Stmt
	ElseLoc position.Span
	Else    Stmt
}

func (s *ForStmt) GetSpan() position.Span {
	span := position.Join(s.KeyLoc, s.Body.GetSpan())
	if s.Else != nil {
		span = position.Join(span, s.Else.GetSpan())
	}
	return span
}
func (s *ForStmt) stmtNode() {}
func (s *ForStmt) String() string {
	out := fmt.Sprintf("for %s in %s: %s", &s.Targets, &s.Iter, s.Body)
	if s.Else != nil {
		out += " else: " + s.Else.String()
	}
	return out
}

// CatchClause handles one except arm. Exc is the optional exception
// expression; Binding names the caught value after "as" or a comma.
type CatchClause struct {
	KeyLoc   position.Span
	Exc      Expr
	AsLoc    position.Span
	Binding  *SimpleName
	ColonLoc position.Span
	Body     Stmt
}

func (c *CatchClause) GetSpan() position.Span {
	return position.Join(c.KeyLoc, c.Body.GetSpan())
}
func (c *CatchClause) String() string {
	var sb strings.Builder
	sb.WriteString("except")
	if c.Exc != nil {
		sb.WriteByte(' ')
		sb.WriteString(c.Exc.String())
	}
	if c.Binding != nil {
		sb.WriteString(" as ")
		sb.WriteString(c.Binding.Value)
	}
	sb.WriteString(": ")
	sb.WriteString(c.Body.String())
	return sb.String()
}

// FinallyClause is the cleanup suite of a try statement.
type FinallyClause struct {
	KeyLoc position.Span
	Body   Stmt
}

func (c *FinallyClause) GetSpan() position.Span {
	return position.Join(c.KeyLoc, c.Body.GetSpan())
}
func (c *FinallyClause) String() string { return "finally: " + c.Body.String() }

// TryStmt is try/except/else/finally. Else requires at least one
// catch; a try with no catches requires a finally.
type TryStmt struct {
	KeyLoc  position.Span
	Body    Stmt
	Catches []*CatchClause
	ElseLoc position.Span
	Else    Stmt
	Finally *FinallyClause
}

func (s *TryStmt) GetSpan() position.Span {
	span := position.Join(s.KeyLoc, s.Body.GetSpan())
	for _, c := range s.Catches {
		span = position.Join(span, c.GetSpan())
	}
	if s.Else != nil {
		span = position.Join(span, s.Else.GetSpan())
	}
	if s.Finally != nil {
		span = position.Join(span, s.Finally.GetSpan())
	}
	return span
}
func (s *TryStmt) stmtNode() {}
func (s *TryStmt) String() string {
	var sb strings.Builder
	sb.WriteString("try: ")
	sb.WriteString(s.Body.String())
	for _, c := range s.Catches {
		sb.WriteByte(' ')
		sb.WriteString(c.String())
	}
	if s.Else != nil {
		sb.WriteString(" else: ")
		sb.WriteString(s.Else.String())
	}
	if s.Finally != nil {
		sb.WriteByte(' ')
		sb.WriteString(s.Finally.String())
	}
	return sb.String()
}

// WithStmt runs its body under one or more context managers. Items
// with an "as" target are AssignExpr nodes.
type WithStmt struct {
	KeyLoc   position.Span
	Items    List[Expr]
	ColonLoc position.Span
	Body     Stmt
}

func (s *WithStmt) GetSpan() position.Span {
	return position.Join(s.KeyLoc, s.Body.GetSpan())
}
func (s *WithStmt) stmtNode() {}
func (s *WithStmt) String() string {
	return fmt.Sprintf("with %s: %s", &s.Items, s.Body)
}
