package ir

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// P3: head_reduce(App(Lambda(b), a)) == substitute(b, Some(a), 0).
func TestPropertyHeadReduceEqualsSubstitute(t *testing.T) {
	b := &App{Fn: &LambdaVar{Index: 0}, Arg: &LambdaVar{Index: 1}}
	a := Expr(intLit(5))
	e := &App{Fn: &Lambda{Body: b}, Arg: a}

	got := HeadReduce(ExprHooks{}, e)
	want := Substitute(b, a, 0)
	if diff := cmp.Diff(want, got, bigIntComparer()); diff != "" {
		t.Errorf("property P3 violated (-want +got):\n%s", diff)
	}
}

// P5: if match_one reports Matches, every Var/Named name in the
// pattern is present in the result env.
func TestPropertyMatcherSoundnessBindsEveryName(t *testing.T) {
	pat := Named{Name: 2, Inner: PositionalStruct{
		Tag:    intPtr(1),
		Params: []Pattern{Var{Name: 0}, Var{Name: 1}},
		Family: Enum,
	}}
	value := &Struct{Tag: 1, Args: []Expr{intLit(1), intLit(2)}, Family: Enum}

	r := MatchOne(ExprHooks{}, pat, value, Env{})
	if r.Outcome != Matches {
		t.Fatalf("Outcome = %v, want Matches", r.Outcome)
	}
	for _, name := range []int{0, 1, 2} {
		if _, ok := r.Env[name]; !ok {
			t.Errorf("env missing binding for name %d", name)
		}
	}
}

// P5, NoMatch half: a definite NoMatch must not depend on how any
// NotProvable sub-position might later resolve.
func TestPropertyMatcherSoundnessNoMatchIsFinal(t *testing.T) {
	// First field is opaque (NotProvable), second field definitely
	// mismatches its literal pattern: the overall verdict must still be
	// NoMatch, not NotProvable, because the second field alone proves
	// rejection regardless of the first.
	pat := PositionalStruct{
		Tag: intPtr(0),
		Params: []Pattern{
			PatLiteral{Value: IntegerLiteral(big.NewInt(99))},
			PatLiteral{Value: IntegerLiteral(big.NewInt(1))},
		},
		Family: Enum,
	}
	value := &Struct{
		Tag:    0,
		Args:   []Expr{&LambdaVar{Index: 0}, intLit(2)},
		Family: Enum,
	}
	r := MatchOne(ExprHooks{}, pat, value, Env{})
	if r.Outcome != NoMatch {
		t.Errorf("Outcome = %v, want NoMatch", r.Outcome)
	}
}

// P6: constructing ListPat with two splices fails with InvalidPattern
// (exercised in detail in pattern_test.go; restated here as the
// numbered property for traceability).
func TestPropertySplicesAtMostOne(t *testing.T) {
	_, err := NewListPat([]ListPart{Splice{}, Splice{}})
	if err == nil {
		t.Fatal("expected P6 to reject a second splice")
	}
}
