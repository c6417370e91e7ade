// Package ir implements the let-free intermediate representation for
// lattice's middle-end: a de Bruijn-indexed untyped lambda calculus
// extended with structured data constructors, pattern matching and a
// fixpoint operator. See the package-level docs on Expr for the
// grammar and Normalize for the rewriter built on top of it.
package ir

import (
	"fmt"
	"math/big"
)

// DataFamily is an advisory marker carried on Struct values and
// PositionalStruct/ListPat patterns, telling downstream code how to
// interpret a constructed value. It never affects reduction.
type DataFamily int

const (
	Enum DataFamily = iota
	// StructFamily is named to avoid colliding with the Struct Expr
	// case below; spec §3 calls this family "Struct".
	StructFamily
	Nat
)

func (f DataFamily) String() string {
	switch f {
	case Enum:
		return "Enum"
	case StructFamily:
		return "Struct"
	case Nat:
		return "Nat"
	default:
		return fmt.Sprintf("DataFamily(%d)", int(f))
	}
}

// LitKind distinguishes the two literal shapes the IR carries.
type LitKind int

const (
	IntegerLit LitKind = iota
	StringLit
)

// Lit is an immutable literal value: an arbitrary-precision integer or
// a unicode string. String values are NFC-normalized before they ever
// reach a Lit, so two Lits with equal Kind/String content are always
// byte-for-byte identical regardless of source encoding.
type Lit struct {
	Kind   LitKind
	Int    *big.Int
	String string
}

// IntegerLiteral builds an integer Lit.
func IntegerLiteral(v *big.Int) Lit {
	return Lit{Kind: IntegerLit, Int: v}
}

// StringLiteral builds a string Lit. The caller is expected to have
// already run the value through norm.NFC.String (internal/convert's
// literal conversion and Parse both do this at their respective
// boundaries).
func StringLiteral(s string) Lit {
	return Lit{Kind: StringLit, String: s}
}

// Equal reports whether two literals denote the same value.
func (l Lit) Equal(o Lit) bool {
	if l.Kind != o.Kind {
		return false
	}
	switch l.Kind {
	case IntegerLit:
		return l.Int.Cmp(o.Int) == 0
	case StringLit:
		return l.String == o.String
	default:
		return false
	}
}

func (l Lit) String() string {
	switch l.Kind {
	case IntegerLit:
		return l.Int.String()
	case StringLit:
		return fmt.Sprintf("%q", l.String)
	default:
		return "<invalid-lit>"
	}
}

// Expr is the sum type of the let-free IR. Every case below is a
// pointer-typed implementation so expressions are structurally
// comparable and cheap to share between rewrites; IR values are
// immutable once constructed, the normalizer always returns fresh
// values rather than mutating in place.
type Expr interface {
	// MaxLambdaVar returns the largest free LambdaVar index under
	// this expression, or nil for "no free lambda var" (-infinity).
	// Passing under a Lambda decrements the value, so it can be
	// negative; a term is closed iff it is nil or negative (IsClosed).
	MaxLambdaVar() *int

	// VarSet returns the set of free de Bruijn indices in this term.
	VarSet() map[int]struct{}

	String() string

	exprNode()
}

// LambdaVar is a de Bruijn-indexed reference to an enclosing binder;
// index 0 names the innermost Lambda.
type LambdaVar struct {
	Index int
}

func (v *LambdaVar) exprNode() {}
func (v *LambdaVar) String() string { return fmt.Sprintf("v%d", v.Index) }
func (v *LambdaVar) MaxLambdaVar() *int {
	i := v.Index
	return &i
}
func (v *LambdaVar) VarSet() map[int]struct{} {
	return map[int]struct{}{v.Index: {}}
}

// Lambda is a single-argument function; multi-argument surface
// functions are curried into nested Lambdas by the converter.
type Lambda struct {
	Body Expr
}

func (l *Lambda) exprNode() {}
func (l *Lambda) String() string { return fmt.Sprintf("(\\ %s)", l.Body) }
func (l *Lambda) MaxLambdaVar() *int {
	return decrementOption(l.Body.MaxLambdaVar())
}
func (l *Lambda) VarSet() map[int]struct{} {
	return shiftDownVarSet(l.Body.VarSet())
}

// App is function application.
type App struct {
	Fn  Expr
	Arg Expr
}

func (a *App) exprNode() {}
func (a *App) String() string { return fmt.Sprintf("(%s %s)", a.Fn, a.Arg) }
func (a *App) MaxLambdaVar() *int {
	return maxOption(a.Fn.MaxLambdaVar(), a.Arg.MaxLambdaVar())
}
func (a *App) VarSet() map[int]struct{} {
	return unionVarSets(a.Fn.VarSet(), a.Arg.VarSet())
}

// ExternalVar references a binding resolved outside this term: a
// value imported from another package via the type-checker's output.
type ExternalVar struct {
	Pack string
	Name string
	Type string
}

func (e *ExternalVar) exprNode() {}
func (e *ExternalVar) String() string { return fmt.Sprintf("%s.%s", e.Pack, e.Name) }
func (e *ExternalVar) MaxLambdaVar() *int  { return nil }
func (e *ExternalVar) VarSet() map[int]struct{} { return map[int]struct{}{} }

// Literal wraps an immediate Lit value.
type Literal struct {
	Value Lit
}

func (l *Literal) exprNode() {}
func (l *Literal) String() string { return l.Value.String() }
func (l *Literal) MaxLambdaVar() *int  { return nil }
func (l *Literal) VarSet() map[int]struct{} { return map[int]struct{}{} }

// Struct constructs a tagged, fixed-arity value: the i-th data
// constructor of some type, carrying args in declaration order.
type Struct struct {
	Tag    int
	Args   []Expr
	Family DataFamily
}

func (s *Struct) exprNode() {}
func (s *Struct) String() string {
	return fmt.Sprintf("Struct(%d,%v,%s)", s.Tag, s.Args, s.Family)
}
func (s *Struct) MaxLambdaVar() *int {
	var m *int
	for _, a := range s.Args {
		m = maxOption(m, a.MaxLambdaVar())
	}
	return m
}
func (s *Struct) VarSet() map[int]struct{} {
	out := map[int]struct{}{}
	for _, a := range s.Args {
		out = unionVarSets(out, a.VarSet())
	}
	return out
}

// Branch is one (pattern, body) arm of a Match. Body is expected to be
// wrapped in VarCount(Pattern) nested Lambdas by the converter (see
// SolveMatch), one per name the pattern binds.
type Branch struct {
	Pattern Pattern
	Body    Expr
}

// Match scrutinizes an expression against an ordered, nonempty
// sequence of pattern branches.
type Match struct {
	Scrutinee Expr
	Branches  []Branch
}

func (m *Match) exprNode() {}
func (m *Match) String() string {
	return fmt.Sprintf("match %s %v", m.Scrutinee, m.Branches)
}
func (b Branch) String() string {
	return fmt.Sprintf("(%s => %s)", b.Pattern, b.Body)
}
func (m *Match) MaxLambdaVar() *int {
	mv := m.Scrutinee.MaxLambdaVar()
	for _, br := range m.Branches {
		mv = maxOption(mv, br.Body.MaxLambdaVar())
	}
	return mv
}
func (m *Match) VarSet() map[int]struct{} {
	out := unionVarSets(map[int]struct{}{}, m.Scrutinee.VarSet())
	for _, br := range m.Branches {
		// Branch.Body is already wrapped in VarCount(Pattern) nested
		// Lambdas by the converter (see SolveMatch), so the pattern's
		// bound names are already shifted away by Lambda.VarSet; no
		// extra shift is applied here.
		out = unionVarSets(out, br.Body.VarSet())
	}
	return out
}

// Recursion is a fixpoint operator; Inner is expected to be a Lambda
// in well-formed input, whose bound variable is the self-reference.
type Recursion struct {
	Inner Expr
}

func (r *Recursion) exprNode() {}
func (r *Recursion) String() string { return fmt.Sprintf("fix(%s)", r.Inner) }
func (r *Recursion) MaxLambdaVar() *int { return r.Inner.MaxLambdaVar() }
func (r *Recursion) VarSet() map[int]struct{} { return r.Inner.VarSet() }

// --- shared index arithmetic -------------------------------------------------

func decrementOption(m *int) *int {
	if m == nil {
		return nil
	}
	d := *m - 1
	return &d
}

func maxOption(a, b *int) *int {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case *a >= *b:
		return a
	default:
		return b
	}
}

func unionVarSets(a, b map[int]struct{}) map[int]struct{} {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(map[int]struct{}, len(a)+len(b))
	for k := range a {
		out[k] = struct{}{}
	}
	for k := range b {
		out[k] = struct{}{}
	}
	return out
}

// shiftDownVarSet is the effect of passing a VarSet under one binder:
// indices > 0 are decremented by one, index 0 is dropped.
func shiftDownVarSet(s map[int]struct{}) map[int]struct{} {
	return shiftVarSetBy(s, 1)
}

// shiftVarSetBy decrements every index by delta and drops anything
// that lands below zero. Its only caller is shiftDownVarSet, with
// delta==1 for a single Lambda binder.
func shiftVarSetBy(s map[int]struct{}, delta int) map[int]struct{} {
	if delta == 0 {
		return s
	}
	out := make(map[int]struct{}, len(s))
	for idx := range s {
		shifted := idx - delta
		if shifted >= 0 {
			out[shifted] = struct{}{}
		}
	}
	return out
}
