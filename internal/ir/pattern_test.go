package ir

import (
	"testing"

	coreerrors "github.com/latticelang/lattice/internal/errors"
)

func TestNewListPatRejectsMultipleSplices(t *testing.T) {
	_, err := NewListPat([]ListPart{Splice{}, Item{Pattern: WildCard{}}, Splice{}})
	if err == nil {
		t.Fatal("expected an error for two splices")
	}
	rep, ok := coreerrors.AsReport(err)
	if !ok {
		t.Fatalf("expected a *Report, got %v", err)
	}
	if rep.Code != coreerrors.InvalidPattern {
		t.Errorf("Code = %q, want %q", rep.Code, coreerrors.InvalidPattern)
	}
}

func TestNewListPatAllowsOneSplice(t *testing.T) {
	lp, err := NewListPat([]ListPart{Item{Pattern: Var{Name: 0}}, Splice{Name: intPtr(1)}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lp.Parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(lp.Parts))
	}
}

func TestNewUnionFlattensNested(t *testing.T) {
	inner, err := NewUnion(PatLiteral{Value: IntegerLiteral(nil)}, []Pattern{PatLiteral{Value: IntegerLiteral(nil)}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	u, err := NewUnion(WildCard{}, []Pattern{inner})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Flattened: Head=WildCard, Rest = [Literal, Literal] (two arms from inner).
	if len(u.Rest) != 2 {
		t.Fatalf("expected nested union to flatten to 2 rest arms, got %d: %v", len(u.Rest), u.Rest)
	}
}

func TestNewUnionRejectsEmptyRest(t *testing.T) {
	_, err := NewUnion(WildCard{}, nil)
	if err == nil {
		t.Fatal("expected an error for empty union rest")
	}
}

func TestNewStrPatRejectsEmpty(t *testing.T) {
	_, err := NewStrPat(nil)
	if err == nil {
		t.Fatal("expected an error for empty string pattern")
	}
}

func TestVarCount(t *testing.T) {
	cases := []struct {
		name string
		pat  Pattern
		want int
	}{
		{"wildcard", WildCard{}, 0},
		{"literal", PatLiteral{Value: IntegerLiteral(nil)}, 0},
		{"var", Var{Name: 3}, 4},
		{"named", Named{Name: 2, Inner: Var{Name: 0}}, 3},
		{"positional-struct-max-of-params", PositionalStruct{Params: []Pattern{Var{Name: 0}, Var{Name: 2}}}, 3},
		{"union-uses-head-only", func() Pattern {
			u, _ := NewUnion(Var{Name: 5}, []Pattern{WildCard{}})
			return u
		}(), 6},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := VarCount(c.pat); got != c.want {
				t.Errorf("VarCount() = %d, want %d", got, c.want)
			}
		})
	}
}

func TestVarCountListPat(t *testing.T) {
	lp, err := NewListPat([]ListPart{
		Item{Pattern: Var{Name: 0}},
		Splice{Name: intPtr(1)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := VarCount(lp); got != 2 {
		t.Errorf("VarCount(listpat) = %d, want 2", got)
	}
}
