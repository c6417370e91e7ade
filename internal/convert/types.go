// Package convert translates a typed, name-resolved surface program
// into the let-free IR of internal/ir (spec §4.7). It never parses or
// type-checks; its only input is the minimal TypedExpr/PackageMap
// surface below, modeled on the teacher's ast+typedast node shapes but
// trimmed to exactly what the converter consumes.
package convert

import "github.com/latticelang/lattice/internal/ir"

// RecursionKind distinguishes a Let's binding mode (spec §3, §4.7).
type RecursionKind int

const (
	NonRecursive RecursionKind = iota
	Recursive
)

// TypedExpr is the sum type the converter consumes. Each case mirrors
// one bullet of spec §4.7 one-to-one.
type TypedExpr interface {
	typedExprNode()
}

// TIdent references a local name, resolved by the enclosing
// lambda_stack at conversion time.
type TIdent struct {
	Name string
}

func (TIdent) typedExprNode() {}

// TLit is an immediate literal.
type TLit struct {
	Value ir.Lit
}

func (TLit) typedExprNode() {}

// TLambda is a (possibly curried, pre-curried by the caller) single
// parameter abstraction.
type TLambda struct {
	Param string
	Body  TypedExpr
}

func (TLambda) typedExprNode() {}

// TApp is function application.
type TApp struct {
	Fn  TypedExpr
	Arg TypedExpr
}

func (TApp) typedExprNode() {}

// TLet is a let binding, recursive or not (spec §4.7).
type TLet struct {
	Name      string
	Recursion RecursionKind
	Value     TypedExpr
	Body      TypedExpr
}

func (TLet) typedExprNode() {}

// TMatchArm is one (pattern, body) arm of a TMatch, keyed by the
// surface names the pattern binds — the converter assigns each a
// dense slot index via names.indexOf before building the ir.Pattern.
type TMatchArm struct {
	Pattern TypedPattern
	Body    TypedExpr
}

// TMatch scrutinizes an expression against an ordered, nonempty
// sequence of arms.
type TMatch struct {
	Scrutinee TypedExpr
	Arms      []TMatchArm
}

func (TMatch) typedExprNode() {}

// TCtorRef references a data constructor by (package, type, tag);
// the converter looks up its arity and family via PackageMap and
// synthesizes the eta-expanded term (spec §4.6).
type TCtorRef struct {
	Package string
	Type    string
	Tag     int
}

func (TCtorRef) typedExprNode() {}

// TExternalRef references a binding defined outside this term (an
// external/foreign definition, spec §4.7's "External definition").
type TExternalRef struct {
	Package string
	Name    string
	Type    string
}

func (TExternalRef) typedExprNode() {}

// TImportRef references a let-binding in another package by name; the
// converter resolves it against that package's PackageMap with an
// empty environment and surfaces the resulting tag (spec §4.7's
// "Import" rule).
type TImportRef struct {
	Package string
	Name    string
}

func (TImportRef) typedExprNode() {}

// TypedPattern is the surface-named counterpart of ir.Pattern: the
// same shapes, but binder positions carry surface names instead of
// dense indices. convertPattern assigns indices via names.indexOf
// over the pattern's own name list (spec §3 invariant).
type TypedPattern interface {
	typedPatternNode()
}

type TWildCardPat struct{}

func (TWildCardPat) typedPatternNode() {}

type TLitPat struct{ Value ir.Lit }

func (TLitPat) typedPatternNode() {}

type TVarPat struct{ Name string }

func (TVarPat) typedPatternNode() {}

type TNamedPat struct {
	Name  string
	Inner TypedPattern
}

func (TNamedPat) typedPatternNode() {}

type TListPart interface{ typedListPart() }

type TSplicePat struct{ Name *string }

func (TSplicePat) typedListPart() {}

type TItemPat struct{ Pattern TypedPattern }

func (TItemPat) typedListPart() {}

type TListPat struct{ Parts []TListPart }

func (TListPat) typedPatternNode() {}

type TPositionalStructPat struct {
	Tag    *int
	Params []TypedPattern
	Family ir.DataFamily
}

func (TPositionalStructPat) typedPatternNode() {}

type TUnionPat struct {
	Head TypedPattern
	Rest []TypedPattern
}

func (TUnionPat) typedPatternNode() {}

type TStrPart interface{ typedStrPart() }

type TWildStrPat struct{}

func (TWildStrPat) typedStrPart() {}

type TNamedStrPat struct{ Name string }

func (TNamedStrPat) typedStrPart() {}

type TLitStrPat struct{ Value string }

func (TLitStrPat) typedStrPart() {}

type TStrPat struct{ Parts []TStrPart }

func (TStrPat) typedPatternNode() {}

// ConstructorInfo describes one data constructor, as returned by
// PackageMap.LookupConstructor.
type ConstructorInfo struct {
	Tag    int
	Arity  int
	Family ir.DataFamily
}

// TypeInfo describes a data type's full constructor list, in
// declaration order (needed for PositionalStruct(Tag=nil), which
// matches any constructor of a single-constructor family).
type TypeInfo struct {
	Constructors []ConstructorInfo
}

// Binding is one top-level let-binding as enumerated by
// PackageMap.Bindings (spec §6).
type Binding struct {
	Name      string
	Recursion RecursionKind
	Expr      TypedExpr
}

// PackageMap is the converter's sole input interface (spec §6): the
// ability to look up a constructor's defined type and to enumerate a
// package's top-level let-bindings.
type PackageMap interface {
	LookupConstructor(pkg, typeName string) (TypeInfo, bool)
	Bindings(pkg string) []Binding
}
