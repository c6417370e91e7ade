// Package ast holds the small set of source-position types that
// internal/errors attaches to a diagnostic Report.
// The surface lexer and parser that populate these positions are out
// of scope for this repository; only the shapes they hand off survive
// here.
package ast

import "fmt"

// Pos identifies a single point in a source file.
type Pos struct {
	Line   int
	Column int
	File   string
	Offset int
}

func (p Pos) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Span is a half-open range between two positions, the optional
// source range of a diagnostic Report; the converter does not set it.
type Span struct {
	Start Pos
	End   Pos
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}
