package diagnostics

import (
	"testing"

	"github.com/pythia-lang/pythia/internal/position"
)

func TestBagAccumulates(t *testing.T) {
	bag := NewBag()
	if !bag.Empty() {
		t.Fatal("new bag should be empty")
	}

	span := position.Span{
		Start: position.Position{Filename: "t.py", Line: 1, Column: 1, Offset: 0},
		End:   position.Position{Filename: "t.py", Line: 1, Column: 2, Offset: 1},
	}
	bag.Report(UnexpectedToken, span)
	bag.Report(NameRequired, span)

	if bag.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", bag.Count())
	}
	all := bag.All()
	if all[0].Kind != UnexpectedToken || all[1].Kind != NameRequired {
		t.Errorf("diagnostics out of order: %v", all)
	}
}

func TestKindStrings(t *testing.T) {
	tests := []struct {
		kind Kind
		name string
	}{
		{UnexpectedToken, "unexpected-token"},
		{NameRequired, "name-required"},
		{UnterminatedString, "unterminated-string"},
		{InvalidRadixDigit, "invalid-radix-digit"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.name {
			t.Errorf("Kind(%d).String() = %q, want %q", int(tt.kind), got, tt.name)
		}
	}
}
