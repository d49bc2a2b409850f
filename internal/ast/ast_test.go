package ast

import (
	"testing"

	"github.com/pythia-lang/pythia/internal/position"
)

func spanAt(line, col, width int) position.Span {
	return position.Span{
		Start: position.Position{Line: line, Column: col, Offset: col - 1},
		End:   position.Position{Line: line, Column: col + width, Offset: col - 1 + width},
	}
}

func name(value string, col int) *SimpleName {
	return &SimpleName{Span: spanAt(1, col, len(value)), Value: value}
}

func TestStringRendering(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{
			"binary",
			&BinaryExpr{
				Left:  &NumLit{Text: "1"},
				Op:    OpAdd,
				Right: &BinaryExpr{Left: &NumLit{Text: "2"}, Op: OpMul, Right: &NumLit{Text: "3"}},
			},
			"(1 + (2 * 3))",
		},
		{
			"not in",
			&BinaryExpr{Left: &IdentExpr{Name: name("x", 1)}, Op: OpNotIn, Right: &IdentExpr{Name: name("xs", 10)}},
			"(x not in xs)",
		},
		{
			"conditional",
			&CondExpr{Then: &NumLit{Text: "1"}, Cond: &IdentExpr{Name: name("ok", 6)}, Else: &NumLit{Text: "2"}},
			"(1 if ok else 2)",
		},
		{
			"member call",
			&CallExpr{
				Fn:   &MemberExpr{Target: &IdentExpr{Name: name("os", 1)}, Sel: name("getcwd", 4)},
				Args: List[Expr]{},
			},
			"os.getcwd()",
		},
		{
			"dotted import",
			&ImportDecl{Modules: List[*ImportModule]{Items: []*ImportModule{{
				Name: &DottedName{Names: List[*SimpleName]{Items: []*SimpleName{name("os", 8), name("path", 11)}}},
			}}}},
			"import os.path",
		},
		{
			"relative from import",
			&ImportDecl{
				Dots: 2,
				Modules: List[*ImportModule]{Items: []*ImportModule{{
					Name: name("pkg", 8),
					Members: List[*ImportMember]{Items: []*ImportMember{
						{Name: name("a", 19), Alias: name("b", 24)},
						{Name: name("c", 27)},
					}},
				}}},
			},
			"from ..pkg import a as b, c",
		},
		{
			"print with dest",
			&PrintStmt{Dest: &IdentExpr{Name: name("sys", 9)}, Args: List[Expr]{Items: []Expr{&StrLit{Text: `"x"`}}}},
			`print >>sys, "x"`,
		},
		{
			"comprehension",
			&CompreExpr{
				Kind: ListCompre,
				Elem: &IdentExpr{Name: name("x", 2)},
				Gens: []*Generator{{
					Targets: List[Expr]{Items: []Expr{&IdentExpr{Name: name("x", 8)}}},
					Range:   &IdentExpr{Name: name("ys", 13)},
					Filters: []Expr{&IdentExpr{Name: name("x", 19)}},
				}},
			},
			"x for x in ys if x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSpanJoining(t *testing.T) {
	left := &NumLit{Span: spanAt(1, 1, 1), Text: "1"}
	right := &NumLit{Span: spanAt(1, 5, 1), Text: "2"}
	bin := &BinaryExpr{Left: left, Op: OpAdd, OpLoc: spanAt(1, 3, 1), Right: right}

	span := bin.GetSpan()
	if span.Start != left.Span.Start || span.End != right.Span.End {
		t.Errorf("GetSpan() = %v, want cover of operands", span)
	}
}

func TestListSpanAndDelims(t *testing.T) {
	var list List[Expr]
	list.Append(&NumLit{Span: spanAt(1, 1, 1), Text: "1"})
	list.AppendDelim(spanAt(1, 2, 1))
	list.Append(&NumLit{Span: spanAt(1, 4, 1), Text: "2"})

	if list.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", list.Len())
	}
	if got := list.GetSpan(); got.End.Column != 5 {
		t.Errorf("GetSpan().End.Column = %d, want 5", got.End.Column)
	}
	if len(list.Delims) != 1 {
		t.Errorf("len(Delims) = %d, want 1", len(list.Delims))
	}
}

func TestDumpShape(t *testing.T) {
	stmt := &IfStmt{
		IfLoc: spanAt(1, 1, 2),
		Cond:  &IdentExpr{Name: name("x", 4)},
		Body:  &PassStmt{KeyLoc: spanAt(2, 5, 4)},
	}

	dumped, ok := Dump(stmt).(map[string]any)
	if !ok {
		t.Fatalf("Dump did not produce a map: %T", Dump(stmt))
	}
	if dumped["node"] != "IfStmt" {
		t.Errorf(`dumped["node"] = %v, want IfStmt`, dumped["node"])
	}
	cond, ok := dumped["cond"].(map[string]any)
	if !ok || cond["node"] != "IdentExpr" {
		t.Errorf("dumped cond = %v, want IdentExpr map", dumped["cond"])
	}
	if _, present := dumped["else"]; present {
		t.Errorf("nil else clause should be omitted, got %v", dumped["else"])
	}
}

func TestDumpNilNode(t *testing.T) {
	if got := Dump(nil); got != nil {
		t.Errorf("Dump(nil) = %v, want nil", got)
	}
}
