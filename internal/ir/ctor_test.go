package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// scenario 8: constructor synthesis for arity 2.
func TestSynthesizeConstructorArity2(t *testing.T) {
	got := SynthesizeConstructor(3, 2, Enum)
	want := &Lambda{Body: &Lambda{Body: &Struct{
		Tag:    3,
		Args:   []Expr{&LambdaVar{Index: 1}, &LambdaVar{Index: 0}},
		Family: Enum,
	}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SynthesizeConstructor mismatch (-want +got):\n%s", diff)
	}
}

func TestSynthesizeConstructorArity0(t *testing.T) {
	got := SynthesizeConstructor(0, 0, Enum)
	want := &Struct{Tag: 0, Args: nil, Family: Enum}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SynthesizeConstructor mismatch (-want +got):\n%s", diff)
	}
}

// Applying the synthesized arity-2 constructor to two literals and
// normalizing must yield the populated Struct (scenario 8, second half).
func TestSynthesizeConstructorAppliedAndNormalized(t *testing.T) {
	ctor := SynthesizeConstructor(3, 2, Enum)
	applied := Expr(&App{Fn: &App{Fn: ctor, Arg: intLit(10)}, Arg: intLit(20)})
	got, err := Normalize(applied, DefaultReductionBudget)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := &Struct{Tag: 3, Args: []Expr{intLit(10), intLit(20)}, Family: Enum}
	if diff := cmp.Diff(want, got, bigIntComparer()); diff != "" {
		t.Errorf("Normalize mismatch (-want +got):\n%s", diff)
	}
}
