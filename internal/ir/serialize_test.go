package ir

import (
	"testing"

	coreerrors "github.com/latticelang/lattice/internal/errors"
)

func TestSerializeDeterministic(t *testing.T) {
	e := &App{Fn: &Lambda{Body: &LambdaVar{Index: 0}}, Arg: intLit(42)}
	a := Serialize(e)
	b := Serialize(e)
	if a != b {
		t.Fatalf("Serialize is not deterministic: %q != %q", a, b)
	}
}

func TestSerializeStructuralEquality(t *testing.T) {
	a := &App{Fn: &Lambda{Body: &LambdaVar{Index: 0}}, Arg: intLit(42)}
	b := &App{Fn: &Lambda{Body: &LambdaVar{Index: 0}}, Arg: intLit(42)}
	c := &App{Fn: &Lambda{Body: &LambdaVar{Index: 0}}, Arg: intLit(7)}
	if Serialize(a) != Serialize(b) {
		t.Errorf("expected structurally equal exprs to serialize identically")
	}
	if Serialize(a) == Serialize(c) {
		t.Errorf("expected structurally different exprs to serialize differently")
	}
}

func TestFingerprintIsStableAndShort(t *testing.T) {
	e := intLit(1)
	a := Fingerprint(e)
	b := Fingerprint(e)
	if a != b {
		t.Fatalf("Fingerprint is not deterministic: %q != %q", a, b)
	}
	if len(a) != 16 {
		t.Errorf("len(Fingerprint) = %d, want 16", len(a))
	}
}

func TestSerializeWithDepthUnlimitedWhenZero(t *testing.T) {
	e := &Lambda{Body: &Lambda{Body: &LambdaVar{Index: 0}}}
	got, err := SerializeWithDepth(e, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != Serialize(e) {
		t.Errorf("SerializeWithDepth(e, 0) = %q, want %q", got, Serialize(e))
	}
}

func TestSerializeWithDepthRejectsTooDeep(t *testing.T) {
	e := &Lambda{Body: &Lambda{Body: &Lambda{Body: &LambdaVar{Index: 0}}}}
	_, err := SerializeWithDepth(e, 2)
	if err == nil {
		t.Fatal("expected an error for a term deeper than max_serialize_depth")
	}
	rep, ok := coreerrors.AsReport(err)
	if !ok || rep.Code != coreerrors.SerializeDepthExceeded {
		t.Errorf("error = %v, want a Report with code %s", err, coreerrors.SerializeDepthExceeded)
	}
}

func TestSerializeWithDepthAllowsExactDepth(t *testing.T) {
	e := &Lambda{Body: &LambdaVar{Index: 0}}
	if _, err := SerializeWithDepth(e, exprDepth(e)); err != nil {
		t.Errorf("unexpected error at exact depth: %v", err)
	}
}

func TestFingerprintWithDepthMatchesFingerprintWhenUnderLimit(t *testing.T) {
	e := intLit(9)
	got, err := FingerprintWithDepth(e, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != Fingerprint(e) {
		t.Errorf("FingerprintWithDepth = %q, want %q", got, Fingerprint(e))
	}
}

func TestQuoteUnquoteEscaping(t *testing.T) {
	s := `it's a \backslash`
	q := quote(s)
	got, err := unquote(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != s {
		t.Errorf("unquote(quote(%q)) = %q, want %q", s, got, s)
	}
}
