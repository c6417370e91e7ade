package ir

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func intLit(n int64) Expr {
	return &Literal{Value: IntegerLiteral(big.NewInt(n))}
}

func consList(items ...Expr) Expr {
	return ExprHooks{}.FromList(toAny(items)).(Expr)
}

func toAny(items []Expr) []any {
	out := make([]any, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

// scenario 5: ListPat([Item(Var(0)), Splice(Some(1))]) against [10,20,30]
// matches {0: 10, 1: cons(20,30)}.
func TestMatchOneListSplice(t *testing.T) {
	pat, err := NewListPat([]ListPart{
		Item{Pattern: Var{Name: 0}},
		Splice{Name: intPtr(1)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	value := consList(intLit(10), intLit(20), intLit(30))
	r := MatchOne(ExprHooks{}, pat, value, Env{})
	if r.Outcome != Matches {
		t.Fatalf("Outcome = %v, want Matches", r.Outcome)
	}
	wantTail := consList(intLit(20), intLit(30))
	got := r.Env
	if diff := cmp.Diff(intLit(10), got[0], bigIntComparer()); diff != "" {
		t.Errorf("env[0] mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantTail, got[1], bigIntComparer()); diff != "" {
		t.Errorf("env[1] mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchOneListMultipleItemsBeforeSplice(t *testing.T) {
	// Regression: a splice-compile bug once silently dropped any Item
	// preceding a trailing splice beyond the first. [a, b, *rest]
	// against [1,2,3,4] must bind a=1, b=2, rest=[3,4].
	pat, err := NewListPat([]ListPart{
		Item{Pattern: Var{Name: 0}},
		Item{Pattern: Var{Name: 1}},
		Splice{Name: intPtr(2)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	value := consList(intLit(1), intLit(2), intLit(3), intLit(4))
	r := MatchOne(ExprHooks{}, pat, value, Env{})
	if r.Outcome != Matches {
		t.Fatalf("Outcome = %v, want Matches", r.Outcome)
	}
	if diff := cmp.Diff(intLit(1), r.Env[0], bigIntComparer()); diff != "" {
		t.Errorf("env[0] mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(intLit(2), r.Env[1], bigIntComparer()); diff != "" {
		t.Errorf("env[1] mismatch (-want +got):\n%s", diff)
	}
	wantRest := consList(intLit(3), intLit(4))
	if diff := cmp.Diff(wantRest, r.Env[2], bigIntComparer()); diff != "" {
		t.Errorf("env[2] mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchOneListItemsAfterSplice(t *testing.T) {
	// [*rest, last] against [1,2,3]: rest should bind the exact-length
	// prefix [1,2], last should bind 3.
	pat, err := NewListPat([]ListPart{
		Splice{Name: intPtr(0)},
		Item{Pattern: Var{Name: 1}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	value := consList(intLit(1), intLit(2), intLit(3))
	r := MatchOne(ExprHooks{}, pat, value, Env{})
	if r.Outcome != Matches {
		t.Fatalf("Outcome = %v, want Matches", r.Outcome)
	}
	wantRest := consList(intLit(1), intLit(2))
	if diff := cmp.Diff(wantRest, r.Env[0], bigIntComparer()); diff != "" {
		t.Errorf("env[0] mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(intLit(3), r.Env[1], bigIntComparer()); diff != "" {
		t.Errorf("env[1] mismatch (-want +got):\n%s", diff)
	}
}

// scenario 6: Union(Literal(1), [Literal(2)]) first-match semantics.
func TestMatchOneUnionFirstMatch(t *testing.T) {
	u, err := NewUnion(PatLiteral{Value: IntegerLiteral(big.NewInt(1))}, []Pattern{PatLiteral{Value: IntegerLiteral(big.NewInt(2))}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := MatchOne(ExprHooks{}, u, intLit(2), Env{})
	if r.Outcome != Matches {
		t.Errorf("against 2: Outcome = %v, want Matches", r.Outcome)
	}

	r = MatchOne(ExprHooks{}, u, intLit(3), Env{})
	if r.Outcome != NoMatch {
		t.Errorf("against 3: Outcome = %v, want NoMatch", r.Outcome)
	}

	r = MatchOne(ExprHooks{}, u, &LambdaVar{Index: 0}, Env{})
	if r.Outcome != NotProvable {
		t.Errorf("against LambdaVar(0): Outcome = %v, want NotProvable", r.Outcome)
	}
}

func TestMatchOnePositionalStructTagMismatch(t *testing.T) {
	pat := PositionalStruct{Tag: intPtr(0), Family: Enum}
	value := &Struct{Tag: 1, Family: Enum}
	r := MatchOne(ExprHooks{}, pat, value, Env{})
	if r.Outcome != NoMatch {
		t.Errorf("Outcome = %v, want NoMatch", r.Outcome)
	}
}

func TestMatchOneNotProvableOnOpaqueScrutinee(t *testing.T) {
	pat := PositionalStruct{Tag: intPtr(0), Family: Enum}
	r := MatchOne(ExprHooks{}, pat, &LambdaVar{Index: 0}, Env{})
	if r.Outcome != NotProvable {
		t.Errorf("Outcome = %v, want NotProvable", r.Outcome)
	}
}

func TestFindMatchStopsAtNotProvable(t *testing.T) {
	branches := []Branch{
		{Pattern: PositionalStruct{Tag: intPtr(0), Family: Enum}, Body: intLit(1)},
		{Pattern: WildCard{}, Body: intLit(2)},
	}
	_, _, ok := FindMatch(ExprHooks{}, &LambdaVar{Index: 0}, branches)
	if ok {
		t.Fatal("expected FindMatch to fail to decide against an opaque scrutinee")
	}
}

func TestFindMatchSkipsNoMatchBranches(t *testing.T) {
	branches := []Branch{
		{Pattern: PositionalStruct{Tag: intPtr(0), Family: Enum}, Body: intLit(1)},
		{Pattern: WildCard{}, Body: intLit(2)},
	}
	i, r, ok := FindMatch(ExprHooks{}, &Struct{Tag: 1, Family: Enum}, branches)
	if !ok || i != 1 {
		t.Fatalf("FindMatch = (%d, %v, %v), want (1, Matches, true)", i, r, ok)
	}
}
