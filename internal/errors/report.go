// Package errors provides the structured error report used by the
// converter and the normalizer. The errors the converter, the
// reduction budget, the pattern constructors and the depth-guarded
// serializer return are *Report values wrapped as *ReportError, so
// callers can inspect Code/Phase/Data instead of pattern-matching on
// message text. ir.Parse/ir.ParsePattern return plain errors, and
// malformed IR can still surface as a plain error or a panic.
package errors

import (
	"encoding/json"
	"errors"

	"github.com/latticelang/lattice/internal/ast"
)

// Error code taxonomy, one per kind named in spec §7.
const (
	// IllFormedInput covers unknown variables and unknown constructors
	// discovered while converting the typed AST.
	IllFormedInput = "CVT001"

	// RewriteBudgetExceeded is raised by the normalizer when a single
	// top-level binding exceeds its configured reduction budget.
	RewriteBudgetExceeded = "NRM001"

	// NonExhaustivePatternMatch is a diagnostic surfaced by downstream
	// code when find_match reports NotProvable against a scrutinee that
	// later turns out to be fully known; the core rewriter itself never
	// raises it, it only leaves the Match untouched.
	NonExhaustivePatternMatch = "MAT001"

	// InvalidPattern is a construction-time failure: more than one
	// splice in a ListPat, an empty Union tail, or empty StrPat parts.
	InvalidPattern = "PAT001"

	// SerializeDepthExceeded is raised when a term's nesting depth
	// exceeds the configured MaxSerializeDepth guard before Serialize
	// ever walks it, mirroring the reduction budget's fail-closed
	// posture for the serializer's own cache-key path.
	SerializeDepthExceeded = "SER001"
)

// Report is the canonical structured error value for this module.
type Report struct {
	Schema  string         `json:"schema"`
	Code    string         `json:"code"`
	Phase   string         `json:"phase"`
	Message string         `json:"message"`
	Span    *ast.Span      `json:"span,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

// ReportError wraps a Report so it survives errors.As unwrapping.
type ReportError struct {
	Rep *Report
}

func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown error"
	}
	return e.Rep.Code + ": " + e.Rep.Message
}

// AsReport extracts a Report from an error chain, if present.
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// Wrap returns r as an error, or nil if r is nil.
func Wrap(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// New builds and wraps a Report in one call.
func New(code, phase, message string, data map[string]any) error {
	return Wrap(&Report{
		Schema:  "lattice.error/v1",
		Code:    code,
		Phase:   phase,
		Message: message,
		Data:    data,
	})
}

// ToJSON renders the report as deterministic JSON.
func (r *Report) ToJSON(compact bool) (string, error) {
	if compact {
		data, err := json.Marshal(r)
		return string(data), err
	}
	data, err := json.MarshalIndent(r, "", "  ")
	return string(data), err
}
