package errors

import (
	"errors"
	"testing"
)

func TestWrapAndAsReport(t *testing.T) {
	err := New(InvalidPattern, "pattern", "list pattern has two splices", map[string]any{"count": 2})

	rep, ok := AsReport(err)
	if !ok {
		t.Fatalf("AsReport() = false, want true")
	}
	if rep.Code != InvalidPattern {
		t.Errorf("Code = %q, want %q", rep.Code, InvalidPattern)
	}
	if rep.Phase != "pattern" {
		t.Errorf("Phase = %q, want %q", rep.Phase, "pattern")
	}
}

func TestAsReportMissesPlainErrors(t *testing.T) {
	if _, ok := AsReport(errors.New("boom")); ok {
		t.Errorf("AsReport() = true for a plain error, want false")
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil) != nil {
		t.Errorf("Wrap(nil) != nil")
	}
}
