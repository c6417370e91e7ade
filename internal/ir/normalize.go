package ir

import (
	"fmt"

	coreerrors "github.com/latticelang/lattice/internal/errors"
)

// DefaultReductionBudget is the number of rewrite steps normalize
// spends on a single top-level binding before giving up, per spec
// §4.3. internal/config exposes this as a tunable.
const DefaultReductionBudget = 10000

// budget is a decrement-before-use step counter threaded through one
// call to Normalize; it is never shared across bindings (spec §5).
type budget struct {
	remaining int
}

func (b *budget) step() error {
	if b.remaining <= 0 {
		return coreerrors.New(
			coreerrors.RewriteBudgetExceeded, "normalize",
			"reduction budget exceeded while normalizing a top-level binding",
			map[string]any{"budget": b.remaining},
		)
	}
	b.remaining--
	return nil
}

// Normalize reduces expr to a normal form under the fixed step
// budget, using ExprHooks to decide Match branches against IR terms
// and always the linear FindMatch scan for Match dispatch. It returns
// RewriteBudgetExceeded if the budget is exhausted before a fixpoint
// is reached. It is NormalizeWithTree with useDecisionTree=false.
func Normalize(expr Expr, stepBudget int) (Expr, error) {
	return NormalizeWithTree(expr, stepBudget, false)
}

// NormalizeWithTree is Normalize with Match dispatch optionally
// accelerated by a compiled DecisionTree (config.NormalizerConfig's
// EnableDecisionTree); see HeadReduceWithTree. It produces identical
// results to Normalize regardless of useDecisionTree, only faster.
func NormalizeWithTree(expr Expr, stepBudget int, useDecisionTree bool) (Expr, error) {
	b := &budget{remaining: stepBudget}
	return normalize(ExprHooks{}, expr, b, useDecisionTree)
}

// normalize implements the state machine in spec §4.5: Raw ->
// HeadReduced -> ChildrenNormalized -> (Raw if changed else Final).
// Each iteration is a pure function of its input; the loop here plays
// the role of the implicit "state lives on the call stack" described
// there, made explicit as a for-loop for stack safety on the top
// level while still recursing structurally into children.
func normalize(hooks Hooks, expr Expr, b *budget, useDecisionTree bool) (Expr, error) {
	for {
		headReduced, err := normalizeHeadToFixpoint(hooks, expr, b, useDecisionTree)
		if err != nil {
			return nil, err
		}

		withNormalChildren, err := normalizeChildren(hooks, headReduced, b, useDecisionTree)
		if err != nil {
			return nil, err
		}

		if exprEqual(withNormalChildren, expr) {
			return withNormalChildren, nil
		}
		expr = withNormalChildren
	}
}

// normalizeHeadToFixpoint repeatedly applies HeadReduce's single rule
// dispatch, charging the budget once per successful rewrite, until the
// head stops changing.
func normalizeHeadToFixpoint(hooks Hooks, expr Expr, b *budget, useDecisionTree bool) (Expr, error) {
	for {
		next, changed := headReduceOnce(hooks, expr, useDecisionTree)
		if !changed {
			return expr, nil
		}
		if err := b.step(); err != nil {
			return nil, err
		}
		expr = next
	}
}

func normalizeChildren(hooks Hooks, expr Expr, b *budget, useDecisionTree bool) (Expr, error) {
	switch e := expr.(type) {
	case *App:
		fn, err := normalize(hooks, e.Fn, b, useDecisionTree)
		if err != nil {
			return nil, err
		}
		arg, err := normalize(hooks, e.Arg, b, useDecisionTree)
		if err != nil {
			return nil, err
		}
		return &App{Fn: fn, Arg: arg}, nil

	case *Match:
		scrutinee, err := normalize(hooks, e.Scrutinee, b, useDecisionTree)
		if err != nil {
			return nil, err
		}
		branches := make([]Branch, len(e.Branches))
		for i, br := range e.Branches {
			body, err := normalize(hooks, br.Body, b, useDecisionTree)
			if err != nil {
				return nil, err
			}
			branches[i] = Branch{Pattern: br.Pattern, Body: body}
		}
		return &Match{Scrutinee: scrutinee, Branches: branches}, nil

	case *Lambda:
		body, err := normalize(hooks, e.Body, b, useDecisionTree)
		if err != nil {
			return nil, err
		}
		return &Lambda{Body: body}, nil

	case *Recursion:
		inner, err := normalize(hooks, e.Inner, b, useDecisionTree)
		if err != nil {
			return nil, err
		}
		return &Recursion{Inner: inner}, nil

	case *Struct:
		args := make([]Expr, len(e.Args))
		for i, a := range e.Args {
			arg, err := normalize(hooks, a, b, useDecisionTree)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return &Struct{Tag: e.Tag, Args: args, Family: e.Family}, nil

	case *Literal, *LambdaVar, *ExternalVar:
		return e, nil

	default:
		return nil, fmt.Errorf("ir: normalize: unhandled expr type %T", expr)
	}
}

// exprEqual compares two IR terms by their serialized form, which is
// exactly the notion of structural value equality spec.md §3 asks
// for and is cheap enough to use as the fixpoint test in normalize's
// outer loop.
func exprEqual(a, b Expr) bool {
	return Serialize(a) == Serialize(b)
}
