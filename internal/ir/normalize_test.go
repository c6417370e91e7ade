package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	coreerrors "github.com/latticelang/lattice/internal/errors"
)

func TestNormalizeCurriedIdentityBeta(t *testing.T) {
	e := &App{Fn: &Lambda{Body: &LambdaVar{Index: 0}}, Arg: intLit(42)}
	got, err := Normalize(e, DefaultReductionBudget)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := intLit(42)
	if diff := cmp.Diff(want, got, bigIntComparer()); diff != "" {
		t.Errorf("Normalize mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeReachesNormalFormThroughChildren(t *testing.T) {
	// A Match whose scrutinee is a beta-redex, where normalizing the
	// scrutinee child reveals the constructor the head rule needs.
	ctorApp := &App{Fn: &Lambda{Body: &LambdaVar{Index: 0}}, Arg: &Struct{Tag: 0, Family: Enum}}
	m := &Match{
		Scrutinee: ctorApp,
		Branches: []Branch{
			{Pattern: PositionalStruct{Tag: intPtr(0), Family: Enum}, Body: intLit(1)},
			{Pattern: WildCard{}, Body: intLit(2)},
		},
	}
	got, err := Normalize(m, DefaultReductionBudget)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := intLit(1)
	if diff := cmp.Diff(want, got, bigIntComparer()); diff != "" {
		t.Errorf("Normalize mismatch (-want +got):\n%s", diff)
	}
}

// P2: normalize is idempotent.
func TestNormalizeIdempotent(t *testing.T) {
	e := &App{Fn: &Lambda{Body: &App{Fn: &LambdaVar{Index: 0}, Arg: intLit(1)}}, Arg: &Lambda{Body: &LambdaVar{Index: 0}}}
	once, err := Normalize(e, DefaultReductionBudget)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err := Normalize(once, DefaultReductionBudget)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(once, twice, bigIntComparer()); diff != "" {
		t.Errorf("normalize is not idempotent (-once +twice):\n%s", diff)
	}
}

// P-DTREE: compiling the decision tree never changes which branch a
// Match normalizes to, only how find_match locates it.
func TestNormalizeWithTreeMatchesLinearScan(t *testing.T) {
	scrutinee := &Struct{Tag: 2, Family: Enum}
	m := &Match{
		Scrutinee: scrutinee,
		Branches: []Branch{
			{Pattern: PositionalStruct{Tag: intPtr(0), Family: Enum}, Body: intLit(10)},
			{Pattern: PositionalStruct{Tag: intPtr(1), Family: Enum}, Body: intLit(20)},
			{Pattern: PositionalStruct{Tag: intPtr(2), Family: Enum}, Body: intLit(30)},
		},
	}
	linear, err := NormalizeWithTree(m, DefaultReductionBudget, false)
	if err != nil {
		t.Fatalf("unexpected error (linear): %v", err)
	}
	viaTree, err := NormalizeWithTree(m, DefaultReductionBudget, true)
	if err != nil {
		t.Fatalf("unexpected error (decision tree): %v", err)
	}
	if diff := cmp.Diff(linear, viaTree, bigIntComparer()); diff != "" {
		t.Errorf("decision-tree normalize diverged from linear scan (-linear +tree):\n%s", diff)
	}
	want := intLit(30)
	if diff := cmp.Diff(want, viaTree, bigIntComparer()); diff != "" {
		t.Errorf("Normalize mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeBudgetExceeded(t *testing.T) {
	// (\x. x x)(\x. x x) diverges under beta; a tiny budget must trip
	// RewriteBudgetExceeded rather than loop forever.
	omega := &Lambda{Body: &App{Fn: &LambdaVar{Index: 0}, Arg: &LambdaVar{Index: 0}}}
	e := &App{Fn: omega, Arg: omega}
	_, err := Normalize(e, 5)
	if err == nil {
		t.Fatal("expected RewriteBudgetExceeded, got nil")
	}
	rep, ok := coreerrors.AsReport(err)
	if !ok {
		t.Fatalf("expected a *Report, got %v", err)
	}
	if rep.Code != coreerrors.RewriteBudgetExceeded {
		t.Errorf("Code = %q, want %q", rep.Code, coreerrors.RewriteBudgetExceeded)
	}
}
