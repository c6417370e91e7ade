package ir

import (
	"fmt"

	coreerrors "github.com/latticelang/lattice/internal/errors"
)

// Pattern is the sum type used by Match branches. Construction of the
// variable-length cases (ListPat, Union, StrPat) validates the
// invariants spec'd for each case and returns an error rather than
// panicking, so malformed patterns are caught at the converter
// boundary instead of surfacing as a confusing matcher bug later.
type Pattern interface {
	String() string
	patternNode()
}

// WildCard matches anything without binding.
type WildCard struct{}

func (WildCard) patternNode()    {}
func (WildCard) String() string { return "_" }

// PatLiteral matches a value equal to Value.
type PatLiteral struct {
	Value Lit
}

func (PatLiteral) patternNode()    {}
func (p PatLiteral) String() string { return p.Value.String() }

// Var binds the matched value at the given slot index. Slot indices
// are assigned densely over [0, VarCount) by the converter, see
// VarCount below.
type Var struct {
	Name int
}

func (Var) patternNode()    {}
func (v Var) String() string { return fmt.Sprintf("$%d", v.Name) }

// Named binds Name to the whole value matched by Inner, in addition
// to whatever Inner itself binds.
type Named struct {
	Name  int
	Inner Pattern
}

func (Named) patternNode()    {}
func (n Named) String() string { return fmt.Sprintf("%s@$%d", n.Inner, n.Name) }

// ListPart is one element of a ListPat: either a fixed Item pattern
// or the (at most one) Splice binding the remainder of the list.
type ListPart interface {
	listPart()
	String() string
}

// Splice binds the rest of the list being matched (or discards it, if
// Name is nil).
type Splice struct {
	Name *int
}

func (Splice) listPart() {}
func (s Splice) String() string {
	if s.Name == nil {
		return "*_"
	}
	return fmt.Sprintf("*$%d", *s.Name)
}

// Item is a fixed-position element pattern.
type Item struct {
	Pattern Pattern
}

func (Item) listPart() {}
func (i Item) String() string { return i.Pattern.String() }

// ListPat matches a cons-list. At most one Splice is allowed; a
// second Splice is rejected at construction with InvalidPattern.
type ListPat struct {
	Parts []ListPart
}

func (ListPat) patternNode() {}
func (l ListPat) String() string { return fmt.Sprintf("[%v]", l.Parts) }

// NewListPat validates the at-most-one-splice invariant (P6) and
// builds a ListPat.
func NewListPat(parts []ListPart) (ListPat, error) {
	spliceCount := 0
	for _, p := range parts {
		if _, ok := p.(Splice); ok {
			spliceCount++
		}
	}
	if spliceCount > 1 {
		return ListPat{}, coreerrors.New(
			coreerrors.InvalidPattern, "pattern",
			fmt.Sprintf("list pattern has %d splices, at most one is allowed", spliceCount),
			map[string]any{"splices": spliceCount},
		)
	}
	return ListPat{Parts: parts}, nil
}

// PositionalStruct matches constructed values by tag and position.
// Tag == nil matches any constructor of Family (valid only when Family
// has a single constructor); Tag pointing at k restricts the match to
// constructor index k.
type PositionalStruct struct {
	Tag    *int
	Params []Pattern
	Family DataFamily
}

func (PositionalStruct) patternNode() {}
func (p PositionalStruct) String() string {
	tag := "_"
	if p.Tag != nil {
		tag = fmt.Sprintf("%d", *p.Tag)
	}
	return fmt.Sprintf("Ctor(%s,%v,%s)", tag, p.Params, p.Family)
}

// Union is a first-match, flattened alternation of patterns. All
// union arms must bind the same names by construction; only Head's
// names are consulted by VarCount.
type Union struct {
	Head Pattern
	Rest []Pattern
}

func (Union) patternNode() {}
func (u Union) String() string { return fmt.Sprintf("(%s | %v)", u.Head, u.Rest) }

// NewUnion flattens nested Unions and rejects an empty Rest.
func NewUnion(head Pattern, rest []Pattern) (Union, error) {
	if len(rest) == 0 {
		return Union{}, coreerrors.New(
			coreerrors.InvalidPattern, "pattern",
			"union pattern requires at least one alternative beyond its head", nil,
		)
	}
	arms := make([]Pattern, 0, len(rest)+1)
	arms = append(arms, flattenUnionArm(head)...)
	for _, r := range rest {
		arms = append(arms, flattenUnionArm(r)...)
	}
	return Union{Head: arms[0], Rest: arms[1:]}, nil
}

func flattenUnionArm(p Pattern) []Pattern {
	if u, ok := p.(Union); ok {
		arms := append([]Pattern{u.Head}, u.Rest...)
		out := make([]Pattern, 0, len(arms))
		for _, a := range arms {
			out = append(out, flattenUnionArm(a)...)
		}
		return out
	}
	return []Pattern{p}
}

// StrPart is one segment of a StrPat.
type StrPart interface {
	strPart()
	String() string
}

type WildStr struct{}

func (WildStr) strPart()      {}
func (WildStr) String() string { return "_" }

type NamedStr struct {
	Name int
}

func (NamedStr) strPart()      {}
func (n NamedStr) String() string { return fmt.Sprintf("$%d", n.Name) }

type LitStr struct {
	Value string
}

func (LitStr) strPart()      {}
func (l LitStr) String() string { return fmt.Sprintf("%q", l.Value) }

// StrPat is a sequence of string segments. The core matcher reports
// NotProvable for every StrPat; a later phase decides string matches
// (spec §4.4, §9 open question).
type StrPat struct {
	Parts []StrPart
}

func (StrPat) patternNode() {}
func (s StrPat) String() string { return fmt.Sprintf("str%v", s.Parts) }

// NewStrPat rejects an empty Parts sequence.
func NewStrPat(parts []StrPart) (StrPat, error) {
	if len(parts) == 0 {
		return StrPat{}, coreerrors.New(
			coreerrors.InvalidPattern, "pattern",
			"string pattern requires at least one part", nil,
		)
	}
	return StrPat{Parts: parts}, nil
}

// VarCount returns the pattern's bound-variable count: the number of
// Lambda binders the converter must wrap a branch body in before the
// environment produced by MatchOne lines up with LambdaVar indices
// (see SolveMatch).
func VarCount(p Pattern) int {
	switch pat := p.(type) {
	case WildCard, PatLiteral:
		return 0
	case Var:
		return max(0, pat.Name+1)
	case Named:
		return max(pat.Name+1, VarCount(pat.Inner))
	case ListPat:
		n := 0
		for _, part := range pat.Parts {
			switch pp := part.(type) {
			case Item:
				n = max(n, VarCount(pp.Pattern))
			case Splice:
				if pp.Name != nil {
					n = max(n, *pp.Name+1)
				}
			}
		}
		return n
	case PositionalStruct:
		n := 0
		for _, sub := range pat.Params {
			n = max(n, VarCount(sub))
		}
		return n
	case Union:
		return VarCount(pat.Head)
	case StrPat:
		n := 0
		for _, part := range pat.Parts {
			if ns, ok := part.(NamedStr); ok {
				n = max(n, ns.Name+1)
			}
		}
		return n
	default:
		return 0
	}
}
