package convert

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	coreerrors "github.com/latticelang/lattice/internal/errors"
	"github.com/latticelang/lattice/internal/ir"
)

// convertExpr dispatches on TypedExpr's concrete case, mirroring the
// teacher's normalize(ast.Expr) switch in internal/elaborate/expressions.go
// one case at a time, per spec §4.7.
func (c *Converter) convertExpr(pkg string, expr TypedExpr, stack lambdaStack) (ExprTag, error) {
	switch e := expr.(type) {
	case TIdent:
		return c.convertIdent(e, stack)
	case TLit:
		node := &ir.Literal{Value: normalizeLit(e.Value)}
		return childTag(node), nil
	case TLambda:
		return c.convertLambda(pkg, e, stack)
	case TApp:
		return c.convertApp(pkg, e, stack)
	case TLet:
		return c.convertLet(pkg, e, stack)
	case TMatch:
		return c.convertMatch(pkg, e, stack)
	case TCtorRef:
		return c.convertCtorRef(pkg, e)
	case TExternalRef:
		node := &ir.ExternalVar{Pack: e.Package, Name: e.Name, Type: e.Type}
		return childTag(node), nil
	case TImportRef:
		return c.resolveImport(e.Package, e.Name)
	default:
		return ExprTag{}, coreerrors.New(
			coreerrors.IllFormedInput, "convert",
			fmt.Sprintf("unsupported typed expression %T", expr), nil,
		)
	}
}

// normalizeLit NFC-normalizes a string Lit's content at the point it
// enters the IR, so two differently-encoded source literals denoting
// the same Unicode text convert to byte-for-byte identical Lits (spec
// §3, §4.8) and therefore compare equal under Lit.Equal's raw string
// ==. Integer Lits pass through unchanged.
func normalizeLit(l ir.Lit) ir.Lit {
	if l.Kind != ir.StringLit {
		return l
	}
	return ir.StringLiteral(norm.NFC.String(l.String))
}

// convertIdent resolves a local reference against stack; a TIdent that
// escapes every enclosing binder is ill-formed input (spec §4.7's
// "Local reference" rule has no fallback — every TIdent must name a
// lambda, a let, or a match-bound variable already in scope).
func (c *Converter) convertIdent(e TIdent, stack lambdaStack) (ExprTag, error) {
	idx, ok := stack.index(e.Name)
	if !ok {
		return ExprTag{}, coreerrors.New(
			coreerrors.IllFormedInput, "convert",
			fmt.Sprintf("unresolved identifier %q", e.Name),
			map[string]any{"name": e.Name},
		)
	}
	node := &ir.LambdaVar{Index: idx}
	return childTag(node), nil
}

func (c *Converter) convertLambda(pkg string, e TLambda, stack lambdaStack) (ExprTag, error) {
	bodyTag, err := c.convertExpr(pkg, e.Body, stack.push(e.Param))
	if err != nil {
		return ExprTag{}, err
	}
	node := &ir.Lambda{Body: bodyTag.IR}
	return childTag(node, bodyTag), nil
}

func (c *Converter) convertApp(pkg string, e TApp, stack lambdaStack) (ExprTag, error) {
	fnTag, err := c.convertExpr(pkg, e.Fn, stack)
	if err != nil {
		return ExprTag{}, err
	}
	argTag, err := c.convertExpr(pkg, e.Arg, stack)
	if err != nil {
		return ExprTag{}, err
	}
	node := &ir.App{Fn: fnTag.IR, Arg: argTag.IR}
	return childTag(node, fnTag, argTag), nil
}

// convertLet compiles a let binding away, since the IR is let-free: a
// non-recursive let is a beta-redex App(Lambda(body'), value); a
// recursive let instead applies body' to Recursion(Lambda(value')),
// both converted with name pushed onto stack so references inside
// resolve to LambdaVar(0).
func (c *Converter) convertLet(pkg string, e TLet, stack lambdaStack) (ExprTag, error) {
	inner := stack.push(e.Name)

	bodyTag, err := c.convertExpr(pkg, e.Body, inner)
	if err != nil {
		return ExprTag{}, err
	}

	var valueTag ExprTag
	if e.Recursion == Recursive {
		raw, err := c.convertExpr(pkg, e.Value, inner)
		if err != nil {
			return ExprTag{}, err
		}
		wrapped := &ir.Recursion{Inner: &ir.Lambda{Body: raw.IR}}
		valueTag = childTag(wrapped, raw)
	} else {
		raw, err := c.convertExpr(pkg, e.Value, stack)
		if err != nil {
			return ExprTag{}, err
		}
		valueTag = raw
	}

	lambdaNode := &ir.Lambda{Body: bodyTag.IR}
	lambdaTag := childTag(lambdaNode, bodyTag)
	redex := &ir.App{Fn: lambdaTag.IR, Arg: valueTag.IR}
	return childTag(redex, lambdaTag, valueTag), nil
}

// convertMatch converts the scrutinee, then each arm: the pattern's
// bound names get dense slot indices via collectPatternNames, the
// body is converted with those slots pushed onto stack innermost-last
// so LambdaVar(i) names slot i, and the body is wrapped in
// VarCount(pattern) nested Lambdas so SolveMatch's reverse-order App
// chain lines the environment back up with those slots.
func (c *Converter) convertMatch(pkg string, e TMatch, stack lambdaStack) (ExprTag, error) {
	scrutTag, err := c.convertExpr(pkg, e.Scrutinee, stack)
	if err != nil {
		return ExprTag{}, err
	}

	subTags := []ExprTag{scrutTag}
	branches := make([]ir.Branch, len(e.Arms))

	for i, arm := range e.Arms {
		names := collectPatternNames(arm.Pattern)

		pat, err := convertPattern(arm.Pattern, names)
		if err != nil {
			return ExprTag{}, err
		}

		bodyStack := stack
		for i := len(names) - 1; i >= 0; i-- {
			bodyStack = bodyStack.push(names[i])
		}

		bodyTag, err := c.convertExpr(pkg, arm.Body, bodyStack)
		if err != nil {
			return ExprTag{}, err
		}
		subTags = append(subTags, bodyTag)

		wrapped := bodyTag.IR
		for range names {
			wrapped = &ir.Lambda{Body: wrapped}
		}
		branches[i] = ir.Branch{Pattern: pat, Body: wrapped}
	}

	node := &ir.Match{Scrutinee: scrutTag.IR, Branches: branches}
	return childTag(node, subTags...), nil
}

func (c *Converter) convertCtorRef(pkg string, e TCtorRef) (ExprTag, error) {
	info, ok := c.packages.LookupConstructor(e.Package, e.Type)
	if !ok {
		return ExprTag{}, coreerrors.New(
			coreerrors.IllFormedInput, "convert",
			fmt.Sprintf("unknown type %s.%s", e.Package, e.Type),
			map[string]any{"package": e.Package, "type": e.Type},
		)
	}
	if e.Tag < 0 || e.Tag >= len(info.Constructors) {
		return ExprTag{}, coreerrors.New(
			coreerrors.IllFormedInput, "convert",
			fmt.Sprintf("constructor tag %d out of range for %s.%s", e.Tag, e.Package, e.Type),
			map[string]any{"package": e.Package, "type": e.Type, "tag": e.Tag},
		)
	}
	ctor := info.Constructors[e.Tag]
	node := ir.SynthesizeConstructor(ctor.Tag, ctor.Arity, ctor.Family)
	return childTag(node), nil
}
