package ir

// Shift returns expr with every free LambdaVar(i) where i >= cutoff
// replaced by LambdaVar(i+1). Linear in expression size; used to push
// a replacement term under a binder before substituting it in.
func Shift(expr Expr, cutoff int) Expr {
	switch e := expr.(type) {
	case *LambdaVar:
		if e.Index >= cutoff {
			return &LambdaVar{Index: e.Index + 1}
		}
		return e

	case *Lambda:
		return &Lambda{Body: Shift(e.Body, cutoff+1)}

	case *App:
		return &App{Fn: Shift(e.Fn, cutoff), Arg: Shift(e.Arg, cutoff)}

	case *Match:
		// Branch.Body already carries VarCount(Pattern) nested real
		// Lambda nodes (the converter wraps it that way, see
		// SolveMatch), so the Lambda case above already
		// applies the "+var_count(pattern)" cutoff bump spec.md
		// describes for Match branches; no separate bookkeeping is
		// needed here.
		branches := make([]Branch, len(e.Branches))
		for i, br := range e.Branches {
			branches[i] = Branch{Pattern: br.Pattern, Body: Shift(br.Body, cutoff)}
		}
		return &Match{Scrutinee: Shift(e.Scrutinee, cutoff), Branches: branches}

	case *Struct:
		args := make([]Expr, len(e.Args))
		for i, a := range e.Args {
			args[i] = Shift(a, cutoff)
		}
		return &Struct{Tag: e.Tag, Args: args, Family: e.Family}

	case *Recursion:
		return &Recursion{Inner: Shift(e.Inner, cutoff)}

	case *ExternalVar, *Literal:
		return e

	default:
		return e
	}
}

// Substitute implements the capture-avoiding substitution beta
// reduction and the fixpoint unfold both need. replacement == nil is
// only ever observed from the fixpoint rule, where MaxLambdaVar(inner)
// < 0 guarantees LambdaVar(idx) never actually occurs; the traversal
// still needs to run to compress indices above idx.
func Substitute(expr Expr, replacement Expr, idx int) Expr {
	switch e := expr.(type) {
	case *LambdaVar:
		switch {
		case e.Index == idx:
			if replacement == nil {
				panic("ir: Substitute observed LambdaVar(idx) with a nil replacement")
			}
			return replacement
		case e.Index > idx:
			return &LambdaVar{Index: e.Index - 1}
		default:
			return e
		}

	case *Lambda:
		var shifted Expr
		if replacement != nil {
			shifted = Shift(replacement, 0)
		}
		return &Lambda{Body: Substitute(e.Body, shifted, idx+1)}

	case *App:
		return &App{Fn: Substitute(e.Fn, replacement, idx), Arg: Substitute(e.Arg, replacement, idx)}

	case *Match:
		branches := make([]Branch, len(e.Branches))
		for i, br := range e.Branches {
			branches[i] = Branch{
				Pattern: br.Pattern,
				Body:    Substitute(br.Body, replacement, idx),
			}
		}
		return &Match{Scrutinee: Substitute(e.Scrutinee, replacement, idx), Branches: branches}

	case *Struct:
		args := make([]Expr, len(e.Args))
		for i, a := range e.Args {
			args[i] = Substitute(a, replacement, idx)
		}
		return &Struct{Tag: e.Tag, Args: args, Family: e.Family}

	case *Recursion:
		return &Recursion{Inner: Substitute(e.Inner, replacement, idx)}

	case *ExternalVar, *Literal:
		return e

	default:
		return e
	}
}
